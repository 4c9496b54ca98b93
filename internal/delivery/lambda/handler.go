// Package lambda serves random selections from an API Gateway proxy event.
package lambda

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"github.com/aliskhannn/mcq-bank/internal/delivery/params"
	"github.com/aliskhannn/mcq-bank/internal/domain/entities"
	"github.com/aliskhannn/mcq-bank/internal/export"
	"github.com/aliskhannn/mcq-bank/internal/service"
)

type Selector interface {
	Select(ctx context.Context, req service.SelectionRequest) (*entities.Selection, error)
}

type Handler struct {
	selector     Selector
	defaultCount int
	logger       *zap.Logger
}

func NewHandler(selector Selector, defaultCount int, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{selector: selector, defaultCount: defaultCount, logger: logger}
}

type selectionBody struct {
	Requested int            `json:"requested"`
	Available int            `json:"available"`
	Partial   bool           `json:"partial"`
	NoMatches bool           `json:"no_matches"`
	Warnings  []string       `json:"warnings"`
	Questions []entities.MCQ `json:"questions"`
	Source    string         `json:"source"`
}

// Handle runs a selection described by the query string. With export=true the
// response is the downloadable export document instead.
func (h *Handler) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	q := event.QueryStringParameters
	if q == nil {
		q = map[string]string{}
	}

	h.logger.Debug("selection requested", zap.Any("query", q))

	req, err := params.Selection(params.FromMap(q), h.defaultCount)
	if err != nil {
		return h.errorResponse(err), nil
	}

	sel, err := h.selector.Select(ctx, req)
	if err != nil {
		return h.errorResponse(err), nil
	}

	if exp, _ := strconv.ParseBool(q["export"]); exp {
		data, err := export.JSON(sel)
		if err != nil {
			return h.errorResponse(err), nil
		}
		resp := jsonResponse(http.StatusOK, string(data))
		resp.Headers["Content-Disposition"] = fmt.Sprintf("attachment; filename=%q", export.FileName(sel.GeneratedAt))
		return resp, nil
	}

	warnings := sel.Warnings()
	if warnings == nil {
		warnings = []string{}
	}
	questions := sel.Questions
	if questions == nil {
		questions = []entities.MCQ{}
	}
	body, err := json.Marshal(selectionBody{
		Requested: sel.Requested,
		Available: sel.Available,
		Partial:   sel.Partial,
		NoMatches: sel.NoMatches,
		Warnings:  warnings,
		Questions: questions,
		Source:    sel.Source,
	})
	if err != nil {
		return h.errorResponse(fmt.Errorf("failed to marshal response: %w", err)), nil
	}

	return jsonResponse(http.StatusOK, string(body)), nil
}

func (h *Handler) errorResponse(err error) events.APIGatewayProxyResponse {
	status := http.StatusInternalServerError
	msg := http.StatusText(status)
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrSourceUnavailable):
		status, msg = http.StatusServiceUnavailable, err.Error()
	default:
		h.logger.Error("selection failed", zap.Error(err))
	}

	body, _ := json.Marshal(map[string]string{"error": msg})
	return jsonResponse(status, string(body))
}

func jsonResponse(status int, body string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": "*",
		},
		Body: body,
	}
}
