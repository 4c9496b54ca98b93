package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answerCallback(cb.ID, "")
		return
	}

	chatID := cb.Message.Chat.ID
	cd := decodeCallback(cb.Data)
	notice := ""

	switch cd.Action {
	case actionSolution:
		if len(cd.Params) != 1 || !h.revealSolution(chatID, cb.Message.MessageID, cd.Params[0]) {
			notice = msgSelectionExpired
		}
	case actionAgain:
		_ = h.withErrorHandling(h.handleAgain())(ctx, chatID)
	case actionExport:
		_ = h.withErrorHandling(h.handleExport())(ctx, chatID)
	default:
		h.logger.Debug("unknown callback", zap.String("data", cb.Data))
	}

	// Remove the user's "clock".
	h.answerCallback(cb.ID, notice)
}

// revealSolution edits the question message to include its answer.
func (h *Handler) revealSolution(chatID int64, messageID int, mcqID string) bool {
	sel := h.selections.Get(chatID)
	if sel == nil {
		return false
	}

	for i, q := range sel.Questions {
		if q.ID != mcqID {
			continue
		}
		edit := newEdit(chatID, messageID, renderQuestion(i+1, q)+"\n\n"+renderSolution(q))
		_ = h.send(edit)
		return true
	}

	return false
}

func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.logger.Warn("callback answer error", zap.Error(err))
	}
}
