package bot

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"memobot/internal/observability"
	"memobot/internal/store"
)

const historyPreviewLen = 120

// HistoryHandler answers /history with the most recent stored turns,
// reading the store directly past the selector.
type HistoryHandler struct {
	Repository store.Repository
	Limit      int
	Metrics    *observability.Metrics
}

func NewHistoryHandler(r store.Repository, limit int, m *observability.Metrics) *HistoryHandler {
	return &HistoryHandler{Repository: r, Limit: limit, Metrics: m}
}

func (h *HistoryHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.Message == nil {
		return
	}
	h.Metrics.HandledUpdates.WithLabelValues("history").Inc()

	chatID := update.Message.Chat.ID
	userID := userKey(update)

	turns, err := h.Repository.Recent(ctx, userID, h.Limit)
	if err != nil {
		log.Printf("[HistoryHandler.Handle] read failed userID=%s err=%v", userID, err)
		h.Metrics.StoreErrors.WithLabelValues("recent").Inc()
		turns = nil
	}

	if len(turns) == 0 {
		if err := sendWithMenu(ctx, b, chatID, "No history yet. Write me something!"); err != nil {
			log.Println("[HistoryHandler.Handle] sendWithMenu:", err)
		}
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Last %d turns:\n", len(turns))
	for _, t := range turns {
		who := "you"
		if t.Role == store.RoleAssistant {
			who = "me"
		}
		fmt.Fprintf(&sb, "[%s] %s: %s\n", t.CreatedAt.Format("02 Jan 15:04"), who, preview(t.Content))
	}

	if err := sendWithMenu(ctx, b, chatID, sb.String()); err != nil {
		log.Println("[HistoryHandler.Handle] sendWithMenu:", err)
	}
}

func preview(content string) string {
	content = strings.ReplaceAll(content, "\n", " ")
	runes := []rune(content)
	if len(runes) <= historyPreviewLen {
		return content
	}
	return string(runes[:historyPreviewLen]) + "…"
}
