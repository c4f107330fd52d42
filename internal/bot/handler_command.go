package bot

import (
	"context"
	"log"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"memobot/internal/observability"
)

const intro = "Hi! I'm a chat bot with a long memory.\n" +
	"Just write me something and I'll answer.\n\n" +
	"Commands:\n" +
	"/history — show recent conversation\n" +
	"/stats — conversation stats\n" +
	"/policy — how I pick what to remember\n" +
	"/clear — wipe our conversation"

// CommandHandler answers /start.
type CommandHandler struct {
	Metrics *observability.Metrics
}

func NewCommandHandler(m *observability.Metrics) *CommandHandler {
	return &CommandHandler{Metrics: m}
}

func (h *CommandHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.Message == nil {
		return
	}
	h.Metrics.HandledUpdates.WithLabelValues("start").Inc()

	if err := sendWithMenu(ctx, b, update.Message.Chat.ID, intro); err != nil {
		log.Println("[CommandHandler.Handle] sendWithMenu:", err)
	}
}
