package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/mcq-bank/internal/delivery/params"
	"github.com/aliskhannn/mcq-bank/internal/export"
	"github.com/aliskhannn/mcq-bank/internal/service"
)

// maxBotCount caps a draw so a chat is not flooded with messages.
const maxBotCount = 20

// handleRandom draws questions using the filters given as command arguments.
func (h *Handler) handleRandom(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		kv, err := parseRandomArgs(args)
		if err != nil {
			return err
		}

		req, err := params.Selection(params.FromMap(kv), h.defaultCount)
		if err != nil {
			return err
		}
		if req.Count > maxBotCount {
			return fmt.Errorf("%w: at most %d questions per draw", service.ErrInvalidRequest, maxBotCount)
		}

		return h.runSelection(ctx, chatID, req)
	}
}

// handleAgain repeats the last draw with the same filters.
func (h *Handler) handleAgain() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		req, ok := h.selections.Request(chatID)
		if !ok {
			return h.send(newPlainMessage(chatID, msgNoSelection))
		}
		return h.runSelection(ctx, chatID, req)
	}
}

func (h *Handler) runSelection(ctx context.Context, chatID int64, req service.SelectionRequest) error {
	sel, err := h.selector.Select(ctx, req)
	if err != nil {
		return err
	}
	h.selections.Store(chatID, req, sel)

	h.logger.Info("selection sent",
		zap.Int64("chat_id", chatID),
		zap.Int("requested", sel.Requested),
		zap.Int("selected", len(sel.Questions)),
	)

	if sel.NoMatches {
		return h.send(newMessage(chatID, md("🤷 No questions match these filters. Check /filters for the available values.")))
	}

	for i, q := range sel.Questions {
		msg := newMessage(chatID, renderQuestion(i+1, q))
		if q.ID != "" {
			msg.ReplyMarkup = buildQuestionKeyboard(q.ID)
		}
		if err := h.send(msg); err != nil {
			return err
		}
	}

	summary := newMessage(chatID, renderSummary(sel))
	summary.ReplyMarkup = buildSelectionKeyboard()
	return h.send(summary)
}

// handleSolution reveals the answer of question N of the last draw, or of
// every question when N is omitted.
func (h *Handler) handleSolution(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		sel := h.selections.Get(chatID)
		if sel == nil || len(sel.Questions) == 0 {
			return h.send(newPlainMessage(chatID, msgNoSelection))
		}

		args = strings.TrimSpace(args)
		if args == "" {
			var sb strings.Builder
			for i, q := range sel.Questions {
				if i > 0 {
					sb.WriteString("\n\n")
				}
				sb.WriteString(bold(fmt.Sprintf("%d.", i+1)))
				sb.WriteString(" ")
				sb.WriteString(renderSolution(q))
			}
			return h.send(newMessage(chatID, sb.String()))
		}

		n, err := strconv.Atoi(args)
		if err != nil || n < 1 || n > len(sel.Questions) {
			return h.send(newPlainMessage(chatID, msgIncorrectSolution))
		}

		q := sel.Questions[n-1]
		return h.send(newMessage(chatID, renderQuestion(n, q)+"\n\n"+renderSolution(q)))
	}
}

// handleExport uploads the last draw as a JSON document.
func (h *Handler) handleExport() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		sel := h.selections.Get(chatID)
		if sel == nil {
			return h.send(newPlainMessage(chatID, msgNoSelection))
		}

		data, err := export.JSON(sel)
		if err != nil {
			return err
		}

		doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
			Name:  export.FileName(sel.GeneratedAt),
			Bytes: data,
		})
		doc.Caption = fmt.Sprintf("%d questions", len(sel.Questions))

		return h.send(doc)
	}
}

func (h *Handler) handleRecent() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		mcqs, err := h.mcqService.Recent(ctx, service.DefaultRecentLimit)
		if err != nil {
			return err
		}
		if len(mcqs) == 0 {
			return h.send(newPlainMessage(chatID, msgEmptyBank))
		}
		return h.send(newMessage(chatID, renderRecent(mcqs)))
	}
}

func (h *Handler) handleFilters() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		opts, err := h.mcqService.FilterOptions(ctx)
		if err != nil {
			return err
		}
		if opts.Total == 0 {
			return h.send(newPlainMessage(chatID, msgEmptyBank))
		}
		return h.send(newMessage(chatID, renderFilterOptions(opts)))
	}
}

// handleSubjects lists syllabus subjects, or the topics of the subject given.
func (h *Handler) handleSubjects(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if h.syllabus == nil {
			return h.send(newPlainMessage(chatID, msgNoSyllabus))
		}

		subject := strings.Trim(strings.TrimSpace(args), `"`)
		if subject == "" {
			text := bold("📚 Subjects") + "\n\n" + md(strings.Join(h.syllabus.Subjects(), "\n"))
			return h.send(newMessage(chatID, text))
		}

		topics, err := h.syllabus.Topics(subject)
		if err != nil {
			return fmt.Errorf("%w: %w", service.ErrInvalidRequest, err)
		}
		text := bold("📚 "+subject) + "\n\n" + md(strings.Join(topics, "\n"))
		return h.send(newMessage(chatID, text))
	}
}

// handleAdd stores a question authored as a "Field: value" message.
func (h *Handler) handleAdd(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if strings.TrimSpace(args) == "" {
			return h.send(newPlainMessage(chatID, msgHelp))
		}

		in, err := parseAuthoring(args)
		if err != nil {
			return err
		}

		mcq, err := h.mcqService.Create(ctx, in)
		if err != nil {
			return err
		}

		return h.send(newMessage(chatID, renderCreated(mcq)))
	}
}
