package memory

import "testing"

func TestRandSamplerStaysInRange(t *testing.T) {
	s := RandSampler{}

	for i := 0; i < 100; i++ {
		picked := s.Sample(5, 30, 50)
		if len(picked) != 5 {
			t.Fatalf("len(picked) = %d, want 5", len(picked))
		}
		seen := make(map[int]bool)
		for _, idx := range picked {
			if idx < 30 || idx >= 50 {
				t.Fatalf("index %d outside [30, 50)", idx)
			}
			if seen[idx] {
				t.Fatalf("index %d drawn twice", idx)
			}
			seen[idx] = true
		}
	}
}

func TestRandSamplerClampsToRangeWidth(t *testing.T) {
	s := RandSampler{}

	picked := s.Sample(10, 4, 7)
	if len(picked) != 3 {
		t.Fatalf("len(picked) = %d, want 3", len(picked))
	}
}

func TestRandSamplerEmptyRange(t *testing.T) {
	s := RandSampler{}

	if picked := s.Sample(5, 10, 10); picked != nil {
		t.Fatalf("Sample on empty range = %v, want nil", picked)
	}
	if picked := s.Sample(0, 0, 10); picked != nil {
		t.Fatalf("Sample with k=0 = %v, want nil", picked)
	}
}
