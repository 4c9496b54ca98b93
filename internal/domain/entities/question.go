package entities

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidMCQ = errors.New("invalid mcq")

// Options holds the text of the four answer options keyed by label.
type Options struct {
	A string `json:"A" dynamodbav:"A"`
	B string `json:"B" dynamodbav:"B"`
	C string `json:"C" dynamodbav:"C"`
	D string `json:"D" dynamodbav:"D"`
}

// Get returns the option text for the given label.
func (o Options) Get(l Label) string {
	switch l {
	case LabelA:
		return o.A
	case LabelB:
		return o.B
	case LabelC:
		return o.C
	case LabelD:
		return o.D
	}
	return ""
}

func (o Options) trimmed() Options {
	return Options{
		A: strings.TrimSpace(o.A),
		B: strings.TrimSpace(o.B),
		C: strings.TrimSpace(o.C),
		D: strings.TrimSpace(o.D),
	}
}

// MCQ is a stored multiple-choice question.
type MCQ struct {
	ID            string       `json:"id" dynamodbav:"id"`                                         // storage key, assigned on create
	Question      string       `json:"question" dynamodbav:"question"`                             // question text
	Options       Options      `json:"options" dynamodbav:"options"`                               // answer options A-D
	CorrectAnswer Label        `json:"correct_answer" dynamodbav:"correct_answer"`                 // label of the correct option
	Difficulty    Difficulty   `json:"difficulty" dynamodbav:"difficulty"`                         // Easy, Medium or Hard
	Solution      string       `json:"solution" dynamodbav:"solution"`                             // explanation, may be empty
	QuestionType  QuestionType `json:"question_type" dynamodbav:"question_type"`                   // QuestionBank or PYQ
	Year          *int         `json:"year" dynamodbav:"year,omitempty"`                           // exam year, PYQ only
	Subject       *string      `json:"subject" dynamodbav:"subject,omitempty"`                     // free-form subject, e.g. "Physics - Optics"
	SubjectName   *string      `json:"subject_name,omitempty" dynamodbav:"subject_name,omitempty"` // syllabus subject
	TopicName     *string      `json:"topic_name,omitempty" dynamodbav:"topic_name,omitempty"`     // syllabus topic
	Tags          []string     `json:"tags" dynamodbav:"tags"`                                     // free-form tags, set semantics
	CreatedAt     time.Time    `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at" dynamodbav:"updated_at"`
}

// Answer returns the text of the correct option.
func (m MCQ) Answer() string {
	return m.Options.Get(m.CorrectAnswer)
}

// MCQInput is the raw, unvalidated content of a new question as it comes from
// an authoring surface.
type MCQInput struct {
	Question      string   `json:"question"`
	Options       Options  `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Difficulty    string   `json:"difficulty"`
	Solution      string   `json:"solution"`
	QuestionType  string   `json:"question_type"`
	Year          *int     `json:"year,omitempty"`
	Subject       string   `json:"subject,omitempty"`
	SubjectName   string   `json:"subject_name,omitempty"`
	TopicName     string   `json:"topic_name,omitempty"`
	Tags          []string `json:"tags,omitempty"`
}

// InputFromMCQ turns a stored record back into authoring input, e.g. for import.
func InputFromMCQ(m MCQ) MCQInput {
	return MCQInput{
		Question:      m.Question,
		Options:       m.Options,
		CorrectAnswer: string(m.CorrectAnswer),
		Difficulty:    string(m.Difficulty),
		Solution:      m.Solution,
		QuestionType:  string(m.QuestionType),
		Year:          m.Year,
		Subject:       deref(m.Subject),
		SubjectName:   deref(m.SubjectName),
		TopicName:     deref(m.TopicName),
		Tags:          m.Tags,
	}
}

// NewMCQ validates input and builds a record stamped with now.
// The ID is left empty for the storage layer to assign.
func NewMCQ(in MCQInput, now time.Time) (*MCQ, error) {
	question := strings.TrimSpace(in.Question)
	if question == "" {
		return nil, fmt.Errorf("%w: question is required", ErrInvalidMCQ)
	}

	opts := in.Options.trimmed()
	for _, l := range Labels {
		if opts.Get(l) == "" {
			return nil, fmt.Errorf("%w: option %s is required", ErrInvalidMCQ, l)
		}
	}

	correct, err := ParseLabel(in.CorrectAnswer)
	if err != nil {
		return nil, fmt.Errorf("%w: correct_answer: %w", ErrInvalidMCQ, err)
	}

	difficulty, err := ParseDifficulty(in.Difficulty)
	if err != nil {
		return nil, fmt.Errorf("%w: difficulty: %w", ErrInvalidMCQ, err)
	}

	qType, err := ParseQuestionType(in.QuestionType)
	if err != nil {
		return nil, fmt.Errorf("%w: question_type: %w", ErrInvalidMCQ, err)
	}

	var year *int
	if qType == QuestionTypePYQ {
		if in.Year == nil {
			return nil, fmt.Errorf("%w: year is required for PYQ questions", ErrInvalidMCQ)
		}
		if *in.Year <= 0 {
			return nil, fmt.Errorf("%w: year must be positive", ErrInvalidMCQ)
		}
		y := *in.Year
		year = &y
	}

	subjectName := optional(in.SubjectName)
	topicName := optional(in.TopicName)
	subject := optional(in.Subject)
	if subject == nil && subjectName != nil && topicName != nil {
		s := *subjectName + " - " + *topicName
		subject = &s
	}

	now = now.UTC()
	return &MCQ{
		Question:      question,
		Options:       opts,
		CorrectAnswer: correct,
		Difficulty:    difficulty,
		Solution:      strings.TrimSpace(in.Solution),
		QuestionType:  qType,
		Year:          year,
		Subject:       subject,
		SubjectName:   subjectName,
		TopicName:     topicName,
		Tags:          NormalizeTags(in.Tags),
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// SplitTags splits a comma separated tag list as typed into a form.
func SplitTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return NormalizeTags(strings.Split(s, ","))
}

// NormalizeTags trims tags, drops empty ones and removes case-insensitive
// duplicates keeping the first spelling.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
