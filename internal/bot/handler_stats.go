package bot

import (
	"context"
	"log"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"memobot/internal/observability"
	"memobot/internal/stats"
	"memobot/internal/store"
)

// StatsHandler answers /stats with counts over the full log.
type StatsHandler struct {
	Repository store.Repository
	Metrics    *observability.Metrics
}

func NewStatsHandler(r store.Repository, m *observability.Metrics) *StatsHandler {
	return &StatsHandler{Repository: r, Metrics: m}
}

func (h *StatsHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.Message == nil {
		return
	}
	h.Metrics.HandledUpdates.WithLabelValues("stats").Inc()

	chatID := update.Message.Chat.ID
	userID := userKey(update)

	summary, err := stats.Collect(ctx, h.Repository, userID)
	if err != nil {
		log.Printf("[StatsHandler.Handle] collect failed userID=%s err=%v", userID, err)
		h.Metrics.StoreErrors.WithLabelValues("all").Inc()
		if serr := sendWithMenu(ctx, b, chatID, "Stats are unavailable right now."); serr != nil {
			log.Println("[StatsHandler.Handle] sendWithMenu:", serr)
		}
		return
	}

	if err := sendWithMenu(ctx, b, chatID, summary.Describe()); err != nil {
		log.Println("[StatsHandler.Handle] sendWithMenu:", err)
	}
}
