// Package export renders selections as downloadable JSON documents.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aliskhannn/mcq-bank/internal/domain/entities"
)

// All marks a filter field that was not set.
const All = "All"

var ErrEmptyDocument = errors.New("document contains no questions")

// Document is the exported file layout.
type Document struct {
	SelectionInfo SelectionInfo  `json:"selection_info"`
	Questions     []entities.MCQ `json:"questions"`
}

type SelectionInfo struct {
	TotalQuestions int            `json:"total_questions"`
	Requested      int            `json:"requested"`
	Partial        bool           `json:"partial"`
	FiltersApplied FiltersApplied `json:"filters_applied"`
	GeneratedAt    time.Time      `json:"generated_at"`
	Source         string         `json:"source"`
}

// FiltersApplied holds each filter value, or "All" when the filter was unset.
type FiltersApplied struct {
	Difficulty   string `json:"difficulty"`
	Subject      string `json:"subject"`
	QuestionType string `json:"question_type"`
	Year         any    `json:"year"` // int or "All"
	Tags         any    `json:"tags"` // []string or "All"
}

// NewDocument builds the export document for sel.
func NewDocument(sel *entities.Selection) Document {
	questions := sel.Questions
	if questions == nil {
		questions = []entities.MCQ{}
	}

	return Document{
		SelectionInfo: SelectionInfo{
			TotalQuestions: len(questions),
			Requested:      sel.Requested,
			Partial:        sel.Partial,
			FiltersApplied: describeFilter(sel.Filter),
			GeneratedAt:    sel.GeneratedAt,
			Source:         sel.Source,
		},
		Questions: questions,
	}
}

// JSON renders sel as an indented JSON document.
func JSON(sel *entities.Selection) ([]byte, error) {
	data, err := json.MarshalIndent(NewDocument(sel), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export: %w", err)
	}
	return data, nil
}

// FileName returns the download name for an export generated at t.
func FileName(t time.Time) string {
	return fmt.Sprintf("random_mcqs_%s.json", t.Format("20060102_150405"))
}

// Decode reads the questions back out of an exported document, or out of a
// JSON store file, as authoring inputs ready for import.
func Decode(data []byte) ([]entities.MCQInput, error) {
	var doc struct {
		Questions []entities.MCQ `json:"questions"`
		MCQs      []entities.MCQ `json:"mcqs"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal export: %w", err)
	}

	mcqs := doc.Questions
	if len(mcqs) == 0 {
		mcqs = doc.MCQs
	}
	if len(mcqs) == 0 {
		return nil, ErrEmptyDocument
	}

	inputs := make([]entities.MCQInput, 0, len(mcqs))
	for _, m := range mcqs {
		inputs = append(inputs, entities.InputFromMCQ(m))
	}
	return inputs, nil
}

func describeFilter(f entities.FilterSpec) FiltersApplied {
	out := FiltersApplied{
		Difficulty:   All,
		Subject:      All,
		QuestionType: All,
		Year:         All,
		Tags:         All,
	}
	if f.Difficulty != nil {
		out.Difficulty = string(*f.Difficulty)
	}
	if f.Subject != nil {
		out.Subject = *f.Subject
	}
	if f.QuestionType != nil {
		out.QuestionType = string(*f.QuestionType)
	}
	if f.YearApplies() {
		out.Year = *f.Year
	}
	if len(f.Tags) > 0 {
		out.Tags = f.Tags
	}
	return out
}
