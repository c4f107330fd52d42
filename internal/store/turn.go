package store

import (
	"context"
	"time"
)

// Turn is one stored message in a user's conversation log.
type Turn struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Repository is the remote log store boundary. Reads return turns in
// chronological order, oldest first.
type Repository interface {
	Append(ctx context.Context, userID, role, content string) (Turn, error)
	Recent(ctx context.Context, userID string, limit int) ([]Turn, error)
	All(ctx context.Context, userID string) ([]Turn, error)
	DeleteAll(ctx context.Context, userID string) error
	Close() error
}
