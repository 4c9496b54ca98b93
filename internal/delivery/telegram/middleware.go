package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aliskhannn/mcq-bank/internal/domain/entities"
	"github.com/aliskhannn/mcq-bank/internal/service"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

// withErrorHandling reports input errors back to the user verbatim and hides
// everything else behind a generic message.
func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		err := fn(ctx, chatID)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, service.ErrInvalidRequest), errors.Is(err, entities.ErrInvalidMCQ):
			h.logger.Debug("rejected input", zap.Int64("chat_id", chatID), zap.Error(err))
			h.sendError(chatID, "⚠️ "+err.Error())
		case errors.Is(err, service.ErrSourceUnavailable):
			h.logger.Error("question store unavailable", zap.Int64("chat_id", chatID), zap.Error(err))
			h.sendError(chatID, msgStoreUnavailable)
		default:
			h.logger.Error("handle error",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			h.sendError(chatID, msgInternalError)
		}
		return nil
	}
}
