package bot

import (
	"context"
	"log"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"memobot/internal/memory"
	"memobot/internal/observability"
)

// PolicyHandler answers /policy with the active memory policy.
type PolicyHandler struct {
	Policy  memory.Policy
	Metrics *observability.Metrics
}

func NewPolicyHandler(p memory.Policy, m *observability.Metrics) *PolicyHandler {
	return &PolicyHandler{Policy: p, Metrics: m}
}

func (h *PolicyHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.Message == nil {
		return
	}
	h.Metrics.HandledUpdates.WithLabelValues("policy").Inc()

	if err := sendWithMenu(ctx, b, update.Message.Chat.ID, h.Policy.Describe()); err != nil {
		log.Println("[PolicyHandler.Handle] sendWithMenu:", err)
	}
}
