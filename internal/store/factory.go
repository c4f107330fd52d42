package store

import (
	"context"
	"log"
	"strings"
)

// NewRepository picks the postgres-backed repository when a database URL is
// configured, otherwise falls back to the in-process one.
func NewRepository(ctx context.Context, databaseURL string) (Repository, error) {
	if strings.TrimSpace(databaseURL) == "" {
		log.Println("[store.NewRepository] no DATABASE_URL, using in-memory repository")
		return NewRepositoryInMemory(), nil
	}
	return NewRepositoryPostgres(ctx, databaseURL)
}
