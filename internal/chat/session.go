package chat

import (
	"context"
	"errors"
	"log"
	"time"

	"memobot/internal/ai_model"
	"memobot/internal/memory"
	"memobot/internal/observability"
	"memobot/internal/store"
)

const (
	// TimeoutReply is returned when the generation call runs past its
	// deadline. Nothing is stored for that attempt.
	TimeoutReply = "Sorry, that took me too long to answer. Please try again."
	// FailureReply is returned on any other generation failure.
	FailureReply = "Sorry, something went wrong on my side. Please try again later."
)

// Session orchestrates one request/response turn per user: store the
// incoming turn, select context, call the model, store and return the
// reply. Store failures never stop the conversation.
type Session struct {
	Repository store.Repository
	Selector   *memory.Selector
	Model      ai_model.AiModel
	Metrics    *observability.Metrics

	SystemPrompt string
	TruncateAt   int
	Timeout      time.Duration
}

// Respond handles one user message and always returns something to send
// back; failures map to the fixed replies above.
func (s *Session) Respond(ctx context.Context, userID, text string) string {
	appended, err := s.Repository.Append(ctx, userID, store.RoleUser, text)
	if err != nil {
		log.Printf("[Session.Respond] append user turn failed userID=%s err=%v", userID, err)
		s.Metrics.StoreErrors.WithLabelValues("append").Inc()
	}

	selected := s.Selector.Select(ctx, userID)
	s.Metrics.ContextTurns.Observe(float64(len(selected)))

	messages := make([]ai_model.Message, 0, len(selected)+2)
	messages = append(messages, ai_model.Message{Role: ai_model.RoleSystem, Content: s.SystemPrompt})
	for _, t := range selected {
		// The turn we just stored comes back out of the selector when the
		// store kept up; it goes last, not twice.
		if err == nil && t.ID == appended.ID {
			continue
		}
		messages = append(messages, ai_model.Message{Role: t.Role, Content: truncate(t.Content, s.TruncateAt)})
	}
	messages = append(messages, ai_model.Message{Role: ai_model.RoleUser, Content: truncate(text, s.TruncateAt)})

	gctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	started := time.Now()
	reply, err := s.Model.Generate(gctx, messages)
	elapsed := time.Since(started)

	switch {
	case err == nil:
		s.Metrics.ObserveGeneration("ok", elapsed)
	case errors.Is(err, ai_model.ErrTimeout) || errors.Is(err, context.DeadlineExceeded):
		log.Printf("[Session.Respond] generation timed out userID=%s after=%s", userID, elapsed)
		s.Metrics.ObserveGeneration("timeout", elapsed)
		return TimeoutReply
	default:
		log.Printf("[Session.Respond] generation failed userID=%s err=%v", userID, err)
		s.Metrics.ObserveGeneration("error", elapsed)
		return FailureReply
	}

	if _, err := s.Repository.Append(ctx, userID, store.RoleAssistant, reply); err != nil {
		log.Printf("[Session.Respond] append assistant turn failed userID=%s err=%v", userID, err)
		s.Metrics.StoreErrors.WithLabelValues("append").Inc()
	}
	return reply
}

// truncate caps content by rune count when it is sent as context; stored
// turns stay untruncated.
func truncate(content string, max int) string {
	if max <= 0 {
		return content
	}
	runes := []rune(content)
	if len(runes) <= max {
		return content
	}
	return string(runes[:max])
}
