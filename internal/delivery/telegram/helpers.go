package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Commands returns the command menu shown by Telegram clients.
func Commands() []tgbotapi.BotCommand {
	return []tgbotapi.BotCommand{
		{Command: "start", Description: "Start the bot"},
		{Command: "random", Description: "Draw random questions (usage: /random 5 difficulty=Easy)"},
		{Command: "again", Description: "Repeat the last draw"},
		{Command: "solution", Description: "Show answers of the last draw"},
		{Command: "export", Description: "Download the last draw as JSON"},
		{Command: "recent", Description: "Recently added questions"},
		{Command: "filters", Description: "Available filter values"},
		{Command: "subjects", Description: "Syllabus subjects and topics"},
		{Command: "add", Description: "Add a question"},
		{Command: "help", Description: "Help"},
	}
}
