package memory

import (
	"context"
	"log"
	"sort"

	"memobot/internal/store"
)

// Selector reduces a user's log to a bounded context window: the recency
// window for local coherence, an anchor of the earliest turns for the
// conversation's origin, and a random sample of the middle so old content
// still surfaces occasionally. Output size is bounded by
// Recent+Anchor+Sample no matter how long the log grows.
type Selector struct {
	Repository store.Repository
	Policy     Policy
	Sampler    Sampler
}

func NewSelector(r store.Repository, p Policy, s Sampler) *Selector {
	return &Selector{Repository: r, Policy: p, Sampler: s}
}

// Select returns the context window for userID in chronological order.
// It never fails: a broken store read degrades to the plain recent-Target
// read, and a broken fallback read to an empty window.
func (s *Selector) Select(ctx context.Context, userID string) []store.Turn {
	p := s.Policy

	turns, err := s.Repository.Recent(ctx, userID, p.Cap)
	if err != nil {
		log.Printf("[Selector.Select] capped read failed userID=%s err=%v", userID, err)
		return s.fallback(ctx, userID)
	}

	n := len(turns)
	if n <= p.Target {
		return turns
	}

	picked := make([]store.Turn, 0, p.Recent+p.Anchor+p.Sample)

	recentFrom := n - p.Recent
	if recentFrom < 0 {
		recentFrom = 0
	}
	picked = append(picked, turns[recentFrom:]...)

	if n > p.Recent {
		anchor := p.Anchor
		if anchor > n {
			anchor = n
		}
		picked = append(picked, turns[:anchor]...)
	}

	// Middle region between the recency window's complement boundary and
	// the window itself; empty unless the log outgrows both.
	if lo, hi := p.Recent, n-p.Recent; hi > lo {
		for _, i := range s.Sampler.Sample(p.Sample, lo, hi) {
			picked = append(picked, turns[i])
		}
	}

	picked = dedupeByID(picked)
	sort.Slice(picked, func(i, j int) bool {
		return picked[i].CreatedAt.Before(picked[j].CreatedAt)
	})
	return picked
}

func (s *Selector) fallback(ctx context.Context, userID string) []store.Turn {
	turns, err := s.Repository.Recent(ctx, userID, s.Policy.Target)
	if err != nil {
		log.Printf("[Selector.fallback] recent read failed userID=%s err=%v", userID, err)
		return nil
	}
	return turns
}

// The three regions can overlap when the log is only slightly above
// Target; ids win over positions.
func dedupeByID(turns []store.Turn) []store.Turn {
	seen := make(map[string]struct{}, len(turns))
	out := turns[:0]
	for _, t := range turns {
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}
		out = append(out, t)
	}
	return out
}
