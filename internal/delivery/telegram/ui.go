package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// buildQuestionKeyboard builds the keyboard under a single question.
func buildQuestionKeyboard(mcqID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💡 Show answer", buildSolutionCallback(mcqID)),
		),
	)
}

// buildSelectionKeyboard builds the keyboard under a selection summary.
func buildSelectionKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 New selection", buildAgainCallback()),
			tgbotapi.NewInlineKeyboardButtonData("📄 Download JSON", buildExportCallback()),
		),
	)
}
