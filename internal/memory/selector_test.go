package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"memobot/internal/store"
)

// firstKSampler always picks the first k indices of the range.
type firstKSampler struct{}

func (firstKSampler) Sample(k, lo, hi int) []int {
	if hi-lo < k {
		k = hi - lo
	}
	out := make([]int, 0, k)
	for i := 0; i < k; i++ {
		out = append(out, lo+i)
	}
	return out
}

// flakyRepository fails capped reads but lets the fallback read through.
type flakyRepository struct {
	store.Repository
	failLimit int
}

func (f *flakyRepository) Recent(ctx context.Context, userID string, limit int) ([]store.Turn, error) {
	if limit == f.failLimit {
		return nil, errors.New("store down")
	}
	return f.Repository.Recent(ctx, userID, limit)
}

func testPolicy() Policy {
	return Policy{Cap: 80, Target: 40, Recent: 30, Anchor: 5, Sample: 5}
}

func fillLog(t *testing.T, r store.Repository, userID string, n int) []store.Turn {
	t.Helper()
	turns := make([]store.Turn, 0, n)
	for i := 0; i < n; i++ {
		role := store.RoleUser
		if i%2 == 1 {
			role = store.RoleAssistant
		}
		turn, err := r.Append(context.Background(), userID, role, fmt.Sprintf("turn %d", i))
		if err != nil {
			t.Fatalf("Append error = %v", err)
		}
		turns = append(turns, turn)
	}
	return turns
}

func TestSelectShortLogReturnedUnchanged(t *testing.T) {
	repo := store.NewRepositoryInMemory()
	all := fillLog(t, repo, "u1", 10)
	sel := NewSelector(repo, testPolicy(), firstKSampler{})

	got := sel.Select(context.Background(), "u1")
	if len(got) != 10 {
		t.Fatalf("len(got) = %d, want 10", len(got))
	}
	for i := range got {
		if got[i].ID != all[i].ID {
			t.Fatalf("turn %d = %q, want %q", i, got[i].ID, all[i].ID)
		}
	}
}

func TestSelectEmptyLog(t *testing.T) {
	repo := store.NewRepositoryInMemory()
	sel := NewSelector(repo, testPolicy(), firstKSampler{})

	if got := sel.Select(context.Background(), "nobody"); len(got) != 0 {
		t.Fatalf("len(got) = %d, want 0", len(got))
	}
}

func TestSelectLongLogBoundsAndRecency(t *testing.T) {
	repo := store.NewRepositoryInMemory()
	all := fillLog(t, repo, "u1", 100)
	p := testPolicy()
	sel := NewSelector(repo, p, RandSampler{})

	got := sel.Select(context.Background(), "u1")

	if len(got) < p.Recent || len(got) > p.Recent+p.Anchor+p.Sample {
		t.Fatalf("len(got) = %d, want between %d and %d", len(got), p.Recent, p.Recent+p.Anchor+p.Sample)
	}

	seen := make(map[string]bool)
	for _, turn := range got {
		if seen[turn.ID] {
			t.Fatalf("duplicate id %q in selection", turn.ID)
		}
		seen[turn.ID] = true
	}

	for i := 1; i < len(got); i++ {
		if got[i].CreatedAt.Before(got[i-1].CreatedAt) {
			t.Fatalf("selection not in chronological order at %d", i)
		}
	}

	// The chronologically last Recent turns must always survive selection.
	for _, turn := range all[len(all)-p.Recent:] {
		if !seen[turn.ID] {
			t.Fatalf("recency window turn %q missing from selection", turn.Content)
		}
	}
}

func TestSelectIncludesAnchorAndSample(t *testing.T) {
	repo := store.NewRepositoryInMemory()
	fillLog(t, repo, "u1", 100)
	p := testPolicy()
	sel := NewSelector(repo, p, firstKSampler{})

	got := sel.Select(context.Background(), "u1")

	// Fetch is capped at 80, so the fetched log is turns 20..99. Anchor is
	// 20..24, sample indices 30..34 of the fetched log are turns 50..54,
	// recency is turns 70..99.
	want := map[string]bool{}
	for i := 20; i < 25; i++ {
		want[fmt.Sprintf("turn %d", i)] = true
	}
	for i := 50; i < 55; i++ {
		want[fmt.Sprintf("turn %d", i)] = true
	}
	for i := 70; i < 100; i++ {
		want[fmt.Sprintf("turn %d", i)] = true
	}

	if len(got) != len(want) {
		t.Fatalf("len(got) = %d, want %d", len(got), len(want))
	}
	for _, turn := range got {
		if !want[turn.Content] {
			t.Fatalf("unexpected turn %q in selection", turn.Content)
		}
	}
}

func TestSelectSlightlyOverTargetDeduplicates(t *testing.T) {
	repo := store.NewRepositoryInMemory()
	fillLog(t, repo, "u1", 42)
	p := testPolicy()
	sel := NewSelector(repo, p, firstKSampler{})

	got := sel.Select(context.Background(), "u1")

	seen := make(map[string]bool)
	for _, turn := range got {
		if seen[turn.ID] {
			t.Fatalf("duplicate id %q in selection", turn.ID)
		}
		seen[turn.ID] = true
	}
	if len(got) > p.Recent+p.Anchor+p.Sample {
		t.Fatalf("len(got) = %d, want at most %d", len(got), p.Recent+p.Anchor+p.Sample)
	}
}

func TestSelectDegradesToPlainRecentOnReadFailure(t *testing.T) {
	inner := store.NewRepositoryInMemory()
	fillLog(t, inner, "u1", 100)
	p := testPolicy()
	repo := &flakyRepository{Repository: inner, failLimit: p.Cap}
	sel := NewSelector(repo, p, RandSampler{})

	got := sel.Select(context.Background(), "u1")
	if len(got) != p.Target {
		t.Fatalf("len(got) = %d, want plain recent read of %d", len(got), p.Target)
	}
	for i := 1; i < len(got); i++ {
		if got[i].CreatedAt.Before(got[i-1].CreatedAt) {
			t.Fatalf("fallback not in chronological order at %d", i)
		}
	}
}

func TestSelectReturnsEmptyWhenStoreIsFullyDown(t *testing.T) {
	p := testPolicy()
	repo := &downRepository{}
	sel := NewSelector(repo, p, RandSampler{})

	if got := sel.Select(context.Background(), "u1"); len(got) != 0 {
		t.Fatalf("len(got) = %d, want 0", len(got))
	}
}

type downRepository struct{ store.Repository }

func (*downRepository) Recent(context.Context, string, int) ([]store.Turn, error) {
	return nil, errors.New("store down")
}
