package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"fplwatch/internal/report"
	"fplwatch/pkg/logger"
)

// DigestService produces the message text for each pipeline
type DigestService interface {
	PriceChanges(ctx context.Context) (string, error)
	Predictions(ctx context.Context) (string, error)
	Trends(ctx context.Context) (string, error)
}

type botAPI interface {
	SetMessageHandler(handler func(update tgbotapi.Update))
	SendMessageWithContext(ctx context.Context, chatID int64, text string) error
}

// Handler routes bot commands to the digest pipelines. Replies always go
// to the originating chat; the scheduled pushes to the configured channel
// run the same pipelines via the worker scheduler instead.
type Handler struct {
	bot    botAPI
	digest DigestService
	log    *logger.Logger
}

// NewHandler creates a new command handler
func NewHandler(bot *Bot, digest DigestService, log *logger.Logger) *Handler {
	return &Handler{
		bot:    bot,
		digest: digest,
		log:    log.With("component", "telegram_handler"),
	}
}

// Register installs the handler as the bot's update handler
func (h *Handler) Register() {
	h.bot.SetMessageHandler(h.handleUpdate)
}

// handleUpdate processes one incoming update. Non-command chatter and
// unknown commands are ignored.
func (h *Handler) handleUpdate(update tgbotapi.Update) {
	if update.Message == nil || !update.Message.IsCommand() {
		return
	}

	ctx := context.Background()
	chatID := update.Message.Chat.ID
	command := update.Message.Command()

	h.log.Debugw("Routing command",
		"chat_id", chatID,
		"command", command,
	)

	switch command {
	case "start":
		h.reply(ctx, chatID, report.WelcomeMessage())
	case "pricechanges":
		h.runPipeline(ctx, chatID, "FPL Price Update Error", h.digest.PriceChanges)
	case "predictions":
		h.runPipeline(ctx, chatID, "Price Prediction Error", h.digest.Predictions)
	case "trends":
		h.runPipeline(ctx, chatID, "Transfer Trends Error", h.digest.Trends)
	}
}

// runPipeline executes one pipeline and replies with its text, or with a
// framed error message when the run failed.
func (h *Handler) runPipeline(ctx context.Context, chatID int64, errTitle string, run func(context.Context) (string, error)) {
	text, err := run(ctx)
	if err != nil {
		h.log.Errorw("Command pipeline failed",
			"chat_id", chatID,
			"error", err,
		)
		h.reply(ctx, chatID, report.PipelineErrorMessage(errTitle, err))
		return
	}

	h.reply(ctx, chatID, text)
}

func (h *Handler) reply(ctx context.Context, chatID int64, text string) {
	if err := h.bot.SendMessageWithContext(ctx, chatID, text); err != nil {
		h.log.Errorw("Failed to reply",
			"chat_id", chatID,
			"error", err,
		)
	}
}
