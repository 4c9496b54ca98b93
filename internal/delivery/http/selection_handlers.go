package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/mcq-bank/internal/delivery/params"
	"github.com/aliskhannn/mcq-bank/internal/domain/entities"
	"github.com/aliskhannn/mcq-bank/internal/export"
	"github.com/aliskhannn/mcq-bank/internal/service"
)

// SelectionResponse is the API view of a selection.
type SelectionResponse struct {
	Filter      entities.FilterSpec `json:"filter"`
	Requested   int                 `json:"requested"`
	Available   int                 `json:"available"`
	Partial     bool                `json:"partial"`
	NoMatches   bool                `json:"no_matches"`
	Warnings    []string            `json:"warnings"`
	Questions   []entities.MCQ      `json:"questions"`
	GeneratedAt time.Time           `json:"generated_at"`
	Source      string              `json:"source"`
}

func NewSelectionResponse(sel *entities.Selection) SelectionResponse {
	warnings := sel.Warnings()
	if warnings == nil {
		warnings = []string{}
	}
	questions := sel.Questions
	if questions == nil {
		questions = []entities.MCQ{}
	}
	return SelectionResponse{
		Filter:      sel.Filter,
		Requested:   sel.Requested,
		Available:   sel.Available,
		Partial:     sel.Partial,
		NoMatches:   sel.NoMatches,
		Warnings:    warnings,
		Questions:   questions,
		GeneratedAt: sel.GeneratedAt,
		Source:      sel.Source,
	}
}

// SelectHandler runs a selection described by a JSON body {filter, count}.
func SelectHandler(sel Selector, defaultCount int, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeSelectionRequest(r, defaultCount)
		if err != nil {
			writeError(w, logger, err)
			return
		}

		s, err := sel.Select(r.Context(), req)
		if err != nil {
			writeError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, NewSelectionResponse(s))
	}
}

// SelectFromQueryHandler runs a selection described by query parameters,
// e.g. ?count=5&difficulty=Easy&tags=algebra,geometry.
func SelectFromQueryHandler(sel Selector, defaultCount int, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := params.Selection(r.URL.Query().Get, defaultCount)
		if err != nil {
			writeError(w, logger, err)
			return
		}

		s, err := sel.Select(r.Context(), req)
		if err != nil {
			writeError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, NewSelectionResponse(s))
	}
}

// ExportHandler runs a selection and returns it as a JSON file download.
func ExportHandler(sel Selector, defaultCount int, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeSelectionRequest(r, defaultCount)
		if err != nil {
			writeError(w, logger, err)
			return
		}

		s, err := sel.Select(r.Context(), req)
		if err != nil {
			writeError(w, logger, err)
			return
		}

		data, err := export.JSON(s)
		if err != nil {
			writeError(w, logger, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(s.GeneratedAt)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

// selectionBody is the JSON body of a selection request. A missing count
// means the default; an explicit one must be positive.
type selectionBody struct {
	Filter entities.FilterSpec `json:"filter"`
	Count  *int                `json:"count"`
}

func decodeSelectionRequest(r *http.Request, defaultCount int) (service.SelectionRequest, error) {
	var body selectionBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return service.SelectionRequest{}, fmt.Errorf("%w: bad json: %w", service.ErrInvalidRequest, err)
	}

	req := service.SelectionRequest{Filter: body.Filter, Count: defaultCount}
	if body.Count != nil {
		req.Count = *body.Count
	}
	if req.Count <= 0 {
		return req, fmt.Errorf("%w: count must be positive, got %d", service.ErrInvalidRequest, req.Count)
	}
	if req.Count > params.MaxCount {
		return req, fmt.Errorf("%w: count must not exceed %d", service.ErrInvalidRequest, params.MaxCount)
	}

	// Enum values arrive as free text; canonicalise them so "easy" matches "Easy".
	if req.Filter.Difficulty != nil {
		d, err := entities.ParseDifficulty(string(*req.Filter.Difficulty))
		if err != nil {
			return req, fmt.Errorf("%w: %w", service.ErrInvalidRequest, err)
		}
		req.Filter.Difficulty = &d
	}
	if req.Filter.QuestionType != nil {
		t, err := entities.ParseQuestionType(string(*req.Filter.QuestionType))
		if err != nil {
			return req, fmt.Errorf("%w: %w", service.ErrInvalidRequest, err)
		}
		req.Filter.QuestionType = &t
	}

	return req, nil
}
