package store

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryPostgres persists conversation turns in a remote PostgreSQL
// database reached through a pgx connection pool.
type RepositoryPostgres struct {
	pool *pgxpool.Pool
}

func NewRepositoryPostgres(ctx context.Context, databaseURL string) (*RepositoryPostgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := initSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	log.Println("[RepositoryPostgres] connected, schema ready")
	return &RepositoryPostgres{pool: pool}, nil
}

func initSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS turns (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
		`CREATE INDEX IF NOT EXISTS idx_turns_user_created ON turns (user_id, created_at);`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema failed on %q: %w", stmt, err)
		}
	}
	return nil
}

func (r *RepositoryPostgres) Append(ctx context.Context, userID, role, content string) (Turn, error) {
	t := Turn{
		ID:        uuid.NewString(),
		UserID:    userID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO turns (id, user_id, role, content, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		t.ID, t.UserID, t.Role, t.Content, t.CreatedAt,
	)
	if err != nil {
		return Turn{}, fmt.Errorf("append turn: %w", err)
	}
	return t, nil
}

func (r *RepositoryPostgres) Recent(ctx context.Context, userID string, limit int) ([]Turn, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, role, content, created_at
		 FROM turns WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent turns: %w", err)
	}
	defer rows.Close()

	turns, err := scanTurns(rows, limit)
	if err != nil {
		return nil, err
	}

	// The store hands back newest-first; callers expect chronological order.
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
	return turns, nil
}

func (r *RepositoryPostgres) All(ctx context.Context, userID string) ([]Turn, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, role, content, created_at
		 FROM turns WHERE user_id=$1 ORDER BY created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query all turns: %w", err)
	}
	defer rows.Close()

	return scanTurns(rows, 0)
}

func (r *RepositoryPostgres) DeleteAll(ctx context.Context, userID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM turns WHERE user_id=$1`, userID)
	if err != nil {
		return fmt.Errorf("delete turns: %w", err)
	}
	log.Printf("[RepositoryPostgres.DeleteAll] userID=%s deleted=%d", userID, tag.RowsAffected())
	return nil
}

func (r *RepositoryPostgres) Close() error {
	log.Println("[RepositoryPostgres.Close] closing pool")
	r.pool.Close()
	return nil
}

func scanTurns(rows pgx.Rows, capacity int) ([]Turn, error) {
	turns := make([]Turn, 0, capacity)
	for rows.Next() {
		var t Turn
		if err := rows.Scan(&t.ID, &t.UserID, &t.Role, &t.Content, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan turn row: %w", err)
		}
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate turn rows: %w", err)
	}
	return turns, nil
}
