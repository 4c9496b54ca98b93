// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/mcq-bank/internal/domain/entities"
	"github.com/aliskhannn/mcq-bank/internal/service"
)

// Error messages.
const (
	msgInternalError     = "Something went wrong. Please try again later."
	msgStoreUnavailable  = "The question bank is unavailable right now. Please try again later."
	msgNoSelection       = "There is no selection yet. Use /random to draw some questions."
	msgSelectionExpired  = "This question is no longer part of your last selection."
	msgNoSyllabus        = "No syllabus is loaded, so any subject is accepted."
	msgEmptyBank         = "The question bank is empty. Add a question with /add."
	msgIncorrectSolution = "Usage: /solution N, where N is the question number in your last selection."
	msgUnknownCommand    = "Unknown command. Send /help to see what I can do."
)

const msgHelp = `Commands:

/random [count] [difficulty=Easy|Medium|Hard] [type=QuestionBank|PYQ] [year=2020] [subject="Physics"] [tags=a,b]
  draw random questions, e.g. /random 5 difficulty=Easy tags=algebra
/again - repeat the last draw with the same filters
/solution N - show the answer and solution of question N (all when N is omitted)
/export - download the last draw as JSON
/recent - the five newest questions
/filters - values you can filter by
/subjects [subject] - syllabus subjects, or the topics of one subject
/add - author a question, one "Field: value" per line:

/add
Question: What is 2 + 2?
A: 3
B: 4
C: 5
D: 22
Answer: B
Difficulty: Easy
Type: PYQ
Year: 2021
Subject: Mathematics
Topic: Algebra
Tags: arithmetic, basics
Solution: Two plus two is four.`

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

// welcomeMarkdownV2 builds welcome message safely for MarkdownV2.
func welcomeMarkdownV2() string {
	var sb strings.Builder

	sb.WriteString(bold("MCQ Bank"))
	sb.WriteString("\n\n")
	sb.WriteString(md("I draw random multiple-choice questions from the bank, filtered by difficulty, subject, question type, year and tags."))
	sb.WriteString("\n\n")
	sb.WriteString(md("Try /random 5 or send /help for every command."))

	return sb.String()
}

// renderQuestion formats the n-th question of a selection without its answer.
func renderQuestion(n int, m entities.MCQ) string {
	var sb strings.Builder

	sb.WriteString(bold(fmt.Sprintf("%d. %s", n, m.Question)))
	sb.WriteString("\n\n")
	for _, l := range entities.Labels {
		sb.WriteString(md(fmt.Sprintf("%s) %s", l, m.Options.Get(l))))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(italic(describe(m)))

	return sb.String()
}

// renderSolution formats the answer block appended to a question.
func renderSolution(m entities.MCQ) string {
	var sb strings.Builder

	sb.WriteString(bold(fmt.Sprintf("✅ Answer: %s) %s", m.CorrectAnswer, m.Answer())))
	if m.Solution != "" {
		sb.WriteString("\n")
		sb.WriteString(md(m.Solution))
	}

	return sb.String()
}

// describe summarises the metadata of a question in one line.
func describe(m entities.MCQ) string {
	parts := []string{string(m.Difficulty)}

	typ := string(m.QuestionType)
	if m.Year != nil {
		typ += " " + strconv.Itoa(*m.Year)
	}
	parts = append(parts, typ)

	if m.Subject != nil {
		parts = append(parts, *m.Subject)
	}
	if len(m.Tags) > 0 {
		parts = append(parts, "#"+strings.Join(m.Tags, " #"))
	}

	return strings.Join(parts, " · ")
}

// renderSummary formats the closing message of a selection.
func renderSummary(sel *entities.Selection) string {
	var sb strings.Builder

	sb.WriteString(bold(fmt.Sprintf("🎲 %d of %d matching questions", len(sel.Questions), sel.Available)))
	for _, w := range sel.Warnings() {
		sb.WriteString("\n")
		sb.WriteString(md("⚠️ " + w))
	}

	return sb.String()
}

func renderRecent(mcqs []entities.MCQ) string {
	var sb strings.Builder

	sb.WriteString(bold("🕒 Recently added"))
	for i, m := range mcqs {
		sb.WriteString("\n\n")
		sb.WriteString(md(fmt.Sprintf("%d. %s", i+1, m.Question)))
		sb.WriteString("\n")
		sb.WriteString(italic(fmt.Sprintf("%s · %s", describe(m), m.CreatedAt.Format("2006-01-02 15:04"))))
	}

	return sb.String()
}

func renderFilterOptions(opts *service.FilterOptions) string {
	var sb strings.Builder

	sb.WriteString(bold(fmt.Sprintf("🔎 Filters (%d questions)", opts.Total)))
	sb.WriteString("\n\n")

	line := func(title string, values []string) {
		if len(values) == 0 {
			values = []string{"-"}
		}
		sb.WriteString(bold(title + ": "))
		sb.WriteString(md(strings.Join(values, ", ")))
		sb.WriteString("\n")
	}

	difficulties := make([]string, 0, len(opts.Difficulties))
	for _, d := range opts.Difficulties {
		difficulties = append(difficulties, string(d))
	}
	types := make([]string, 0, len(opts.Types))
	for _, t := range opts.Types {
		types = append(types, string(t))
	}
	years := make([]string, 0, len(opts.Years))
	for _, y := range opts.Years {
		years = append(years, strconv.Itoa(y))
	}

	line("Difficulty", difficulties)
	line("Type", types)
	line("Year", years)
	line("Subject", opts.Subjects)
	line("Tags", opts.Tags)

	return sb.String()
}

func renderCreated(m *entities.MCQ) string {
	return bold("✅ Question saved") + "\n\n" + md(m.Question) + "\n" + italic(describe(*m))
}
