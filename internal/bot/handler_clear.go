package bot

import (
	"context"
	"log"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"memobot/internal/observability"
	"memobot/internal/store"
)

// ClearHandler answers /clear by wiping the user's whole log.
type ClearHandler struct {
	Repository store.Repository
	Metrics    *observability.Metrics
}

func NewClearHandler(r store.Repository, m *observability.Metrics) *ClearHandler {
	return &ClearHandler{Repository: r, Metrics: m}
}

func (h *ClearHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.Message == nil {
		return
	}
	h.Metrics.HandledUpdates.WithLabelValues("clear").Inc()

	chatID := update.Message.Chat.ID
	userID := userKey(update)

	if err := h.Repository.DeleteAll(ctx, userID); err != nil {
		log.Printf("[ClearHandler.Handle] delete failed userID=%s err=%v", userID, err)
		h.Metrics.StoreErrors.WithLabelValues("delete").Inc()
		if serr := sendWithMenu(ctx, b, chatID, "Couldn't clear the history, please try again."); serr != nil {
			log.Println("[ClearHandler.Handle] sendWithMenu:", serr)
		}
		return
	}

	log.Printf("[ClearHandler.Handle] history cleared userID=%s", userID)
	if err := sendWithMenu(ctx, b, chatID, "History cleared. We're starting fresh."); err != nil {
		log.Println("[ClearHandler.Handle] sendWithMenu:", err)
	}
}
