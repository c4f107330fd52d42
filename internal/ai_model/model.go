package ai_model

import (
	"context"
	"errors"
)

// Message is one role-tagged entry of a generation request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ErrTimeout marks a generation call that ran past its deadline, so the
// caller can answer with the dedicated timeout message.
var ErrTimeout = errors.New("generation request timed out")

// AiModel is the text generation boundary: one request, one completion,
// no streaming, no retries.
type AiModel interface {
	Generate(ctx context.Context, messages []Message) (string, error)
}
