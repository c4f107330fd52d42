package stats

import (
	"context"
	"fmt"
	"time"

	"memobot/internal/store"
)

// Summary is a read-only view over a user's full log.
type Summary struct {
	Total        int
	User         int
	Assistant    int
	LastActivity time.Time
}

// Collect derives the summary from every stored turn for the user.
func Collect(ctx context.Context, r store.Repository, userID string) (Summary, error) {
	turns, err := r.All(ctx, userID)
	if err != nil {
		return Summary{}, fmt.Errorf("collect stats: %w", err)
	}

	var s Summary
	for _, t := range turns {
		s.Total++
		switch t.Role {
		case store.RoleUser:
			s.User++
		case store.RoleAssistant:
			s.Assistant++
		}
		if t.CreatedAt.After(s.LastActivity) {
			s.LastActivity = t.CreatedAt
		}
	}
	return s, nil
}

func (s Summary) Describe() string {
	last := "never"
	if !s.LastActivity.IsZero() {
		last = s.LastActivity.Format(time.RFC3339)
	}
	return fmt.Sprintf(
		"Conversation stats:\n"+
			"• total turns: %d\n"+
			"• yours: %d\n"+
			"• mine: %d\n"+
			"• last activity: %s",
		s.Total, s.User, s.Assistant, last,
	)
}
