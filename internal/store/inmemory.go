package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// RepositoryInMemory keeps logs in process memory. It backs local runs
// without a database and doubles as the test repository.
type RepositoryInMemory struct {
	mu    sync.RWMutex
	turns map[string][]Turn
}

func NewRepositoryInMemory() *RepositoryInMemory {
	return &RepositoryInMemory{turns: make(map[string][]Turn)}
}

func (r *RepositoryInMemory) Append(_ context.Context, userID, role, content string) (Turn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := Turn{
		ID:        uuid.NewString(),
		UserID:    userID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	// Timestamps from time.Now can collide on fast appends; keep them
	// strictly increasing so reads stay in append order.
	if turns := r.turns[userID]; len(turns) > 0 {
		last := turns[len(turns)-1].CreatedAt
		if !t.CreatedAt.After(last) {
			t.CreatedAt = last.Add(time.Microsecond)
		}
	}
	r.turns[userID] = append(r.turns[userID], t)
	return t, nil
}

func (r *RepositoryInMemory) Recent(_ context.Context, userID string, limit int) ([]Turn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	turns := r.turns[userID]
	if len(turns) == 0 || limit <= 0 {
		return nil, nil
	}
	if limit > len(turns) {
		limit = len(turns)
	}

	out := make([]Turn, limit)
	copy(out, turns[len(turns)-limit:])
	return out, nil
}

func (r *RepositoryInMemory) All(_ context.Context, userID string) ([]Turn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	turns := r.turns[userID]
	out := make([]Turn, len(turns))
	copy(out, turns)
	return out, nil
}

func (r *RepositoryInMemory) DeleteAll(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.turns, userID)
	return nil
}

func (r *RepositoryInMemory) Close() error { return nil }
