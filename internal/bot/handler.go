package bot

import (
	"context"
	"strconv"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

type Handler interface {
	Handle(ctx context.Context, b *bot.Bot, update *models.Update)
}

// userKey is the per-user log key. Falls back to the chat id for updates
// without a sender (channels).
func userKey(update *models.Update) string {
	if update.Message.From != nil {
		return strconv.FormatInt(update.Message.From.ID, 10)
	}
	return strconv.FormatInt(update.Message.Chat.ID, 10)
}
