package bot

import (
	"context"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const typingPeriod = 4 * time.Second

// keepTyping keeps the "typing…" indicator alive while the generation
// call blocks. It stops as soon as ctx is cancelled; the caller cancels
// unconditionally when the call resolves.
func keepTyping(ctx context.Context, b *bot.Bot, chatID int64) {
	sendTyping(ctx, b, chatID)

	ticker := time.NewTicker(typingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sendTyping(ctx, b, chatID)
		}
	}
}

func sendTyping(ctx context.Context, b *bot.Bot, chatID int64) {
	_, _ = b.SendChatAction(ctx, &bot.SendChatActionParams{
		ChatID: chatID,
		Action: models.ChatActionTyping,
	})
}
