package bot

import (
	"context"
	"log"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"memobot/internal/chat"
	"memobot/internal/observability"
)

// TextHandler runs the conversation flow for plain messages.
type TextHandler struct {
	Session *chat.Session
	Metrics *observability.Metrics
}

func NewTextHandler(s *chat.Session, m *observability.Metrics) *TextHandler {
	return &TextHandler{Session: s, Metrics: m}
}

func (h *TextHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.Message == nil || update.Message.Text == "" {
		return
	}
	// Commands have their own handlers.
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}
	h.Metrics.HandledUpdates.WithLabelValues("text").Inc()

	chatID := update.Message.Chat.ID
	userID := userKey(update)

	typingCtx, stopTyping := context.WithCancel(ctx)
	defer stopTyping()
	go keepTyping(typingCtx, b, chatID)

	reply := h.Session.Respond(ctx, userID, update.Message.Text)
	stopTyping()

	if err := sendWithMenu(ctx, b, chatID, reply); err != nil {
		log.Printf("[TextHandler.Handle] send reply failed chatID=%d err=%v", chatID, err)
	}
}
