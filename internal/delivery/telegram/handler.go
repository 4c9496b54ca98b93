package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/mcq-bank/internal/domain/entities"
	"github.com/aliskhannn/mcq-bank/internal/service"
)

// BotAPI is the part of *tgbotapi.BotAPI the handler uses.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

type MCQService interface {
	Create(ctx context.Context, in entities.MCQInput) (*entities.MCQ, error)
	Recent(ctx context.Context, limit int) ([]entities.MCQ, error)
	FilterOptions(ctx context.Context) (*service.FilterOptions, error)
}

type Selector interface {
	Select(ctx context.Context, req service.SelectionRequest) (*entities.Selection, error)
}

type SelectionStorage interface {
	Store(chatID int64, req service.SelectionRequest, sel *entities.Selection)
	Get(chatID int64) *entities.Selection
	Request(chatID int64) (service.SelectionRequest, bool)
}

type Syllabus interface {
	Subjects() []string
	Topics(subject string) ([]string, error)
}

type Handler struct {
	bot          BotAPI
	logger       *zap.Logger
	mcqService   MCQService
	selector     Selector
	selections   SelectionStorage
	syllabus     Syllabus // may be nil
	defaultCount int
}

func NewHandler(
	bot BotAPI,
	logger *zap.Logger,
	mcqService MCQService,
	selector Selector,
	selections SelectionStorage,
	syllabus Syllabus,
	defaultCount int,
) *Handler {
	if defaultCount <= 0 || defaultCount > maxBotCount {
		defaultCount = 5
	}
	return &Handler{
		bot:          bot,
		logger:       logger,
		mcqService:   mcqService,
		selector:     selector,
		selections:   selections,
		syllabus:     syllabus,
		defaultCount: defaultCount,
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID

	if !update.Message.IsCommand() {
		_ = h.send(newMessage(chatID, md(msgUnknownCommand)))
		return
	}

	args := update.Message.CommandArguments()

	switch update.Message.Command() {
	case "start":
		_ = h.send(newMessage(chatID, welcomeMarkdownV2()))

	case "help":
		_ = h.send(newMessage(chatID, md(msgHelp)))

	case "random":
		_ = h.withErrorHandling(h.handleRandom(args))(ctx, chatID)

	case "again":
		_ = h.withErrorHandling(h.handleAgain())(ctx, chatID)

	case "solution":
		_ = h.withErrorHandling(h.handleSolution(args))(ctx, chatID)

	case "export":
		_ = h.withErrorHandling(h.handleExport())(ctx, chatID)

	case "recent":
		_ = h.withErrorHandling(h.handleRecent())(ctx, chatID)

	case "filters":
		_ = h.withErrorHandling(h.handleFilters())(ctx, chatID)

	case "subjects":
		_ = h.withErrorHandling(h.handleSubjects(args))(ctx, chatID)

	case "add":
		_ = h.withErrorHandling(h.handleAdd(args))(ctx, chatID)

	default:
		_ = h.send(newMessage(chatID, md(msgUnknownCommand)))
	}
}

func (h *Handler) sendError(chatID int64, text string) {
	_ = h.send(newPlainMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return err
	}
	return nil
}
