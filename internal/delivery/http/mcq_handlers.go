package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/aliskhannn/mcq-bank/internal/domain/entities"
	"github.com/aliskhannn/mcq-bank/internal/export"
	"github.com/aliskhannn/mcq-bank/internal/service"
)

const maxBodyBytes = 8 << 20

func CreateMCQHandler(svc MCQService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in entities.MCQInput
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&in); err != nil {
			writeError(w, logger, fmt.Errorf("%w: bad json: %w", service.ErrInvalidRequest, err))
			return
		}

		mcq, err := svc.Create(r.Context(), in)
		if err != nil {
			writeError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusCreated, mcq)
	}
}

type importResponse struct {
	Imported int      `json:"imported"`
	IDs      []string `json:"ids"`
}

// ImportMCQsHandler accepts either a JSON array of questions or a document
// produced by the export endpoint.
func ImportMCQsHandler(svc MCQService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			writeError(w, logger, fmt.Errorf("%w: read body: %w", service.ErrInvalidRequest, err))
			return
		}

		inputs, err := decodeImport(body)
		if err != nil {
			writeError(w, logger, fmt.Errorf("%w: %w", service.ErrInvalidRequest, err))
			return
		}

		mcqs, err := svc.Import(r.Context(), inputs)
		if err != nil {
			writeError(w, logger, err)
			return
		}

		resp := importResponse{Imported: len(mcqs), IDs: make([]string, 0, len(mcqs))}
		for _, m := range mcqs {
			resp.IDs = append(resp.IDs, m.ID)
		}
		writeJSON(w, http.StatusCreated, resp)
	}
}

func decodeImport(body []byte) ([]entities.MCQInput, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var inputs []entities.MCQInput
		if err := json.Unmarshal(trimmed, &inputs); err != nil {
			return nil, fmt.Errorf("bad json: %w", err)
		}
		return inputs, nil
	}
	return export.Decode(trimmed)
}

func RecentMCQsHandler(svc MCQService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := parseIntDefault(r.URL.Query().Get("limit"), service.DefaultRecentLimit)

		mcqs, err := svc.Recent(r.Context(), limit)
		if err != nil {
			writeError(w, logger, err)
			return
		}
		if mcqs == nil {
			mcqs = []entities.MCQ{}
		}
		writeJSON(w, http.StatusOK, mcqs)
	}
}

func FilterOptionsHandler(svc MCQService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := svc.FilterOptions(r.Context())
		if err != nil {
			writeError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, opts)
	}
}

func SyllabusHandler(s Syllabus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s == nil {
			writeJSON(w, http.StatusOK, map[string]any{})
			return
		}
		writeJSON(w, http.StatusOK, s.Tree())
	}
}

func HealthHandler(svc MCQService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := svc.Count(r.Context())
		if err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "unavailable", "error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "questions": n})
	}
}
