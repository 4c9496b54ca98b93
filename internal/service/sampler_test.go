package service_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/aliskhannn/mcq-bank/internal/service"
)

func TestSampler_SizeAndDistinct(t *testing.T) {
	records := tenRecords()
	s := service.NewSampler(42)

	for k := 1; k <= 12; k++ {
		got, err := s.Sample(records, k)
		if err != nil {
			t.Fatalf("k=%d: %v", k, err)
		}
		if want := min(k, len(records)); len(got.Questions) != want {
			t.Fatalf("k=%d: len = %d, want %d", k, len(got.Questions), want)
		}
		if got.Partial != (k > len(records)) {
			t.Fatalf("k=%d: partial = %v", k, got.Partial)
		}
		if got.NoMatches {
			t.Fatalf("k=%d: no matches reported", k)
		}

		seen := map[string]bool{}
		for _, m := range got.Questions {
			if seen[m.ID] {
				t.Fatalf("k=%d: duplicate %s", k, m.ID)
			}
			seen[m.ID] = true
		}
	}
}

func TestSampler_ShortPool(t *testing.T) {
	records := tenRecords()[:3]

	got, err := service.NewSampler(1).Sample(records, 5)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if len(got.Questions) != 3 || !got.Partial || got.NoMatches {
		t.Fatalf("got %d questions, partial=%v, noMatches=%v", len(got.Questions), got.Partial, got.NoMatches)
	}
}

func TestSampler_EmptyPool(t *testing.T) {
	got, err := service.NewSampler(1).Sample(nil, 3)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if got.Questions == nil || len(got.Questions) != 0 {
		t.Fatalf("questions = %v, want empty slice", got.Questions)
	}
	if !got.NoMatches || !got.Partial {
		t.Fatalf("flags: partial=%v noMatches=%v", got.Partial, got.NoMatches)
	}
}

func TestSampler_InvalidCount(t *testing.T) {
	for _, k := range []int{0, -1} {
		if _, err := service.NewSampler(1).Sample(tenRecords(), k); !errors.Is(err, service.ErrInvalidRequest) {
			t.Fatalf("k=%d: err = %v", k, err)
		}
	}
}

func TestSampler_Deterministic(t *testing.T) {
	records := tenRecords()

	a, _ := service.NewSampler(7).Sample(records, 4)
	b, _ := service.NewSampler(7).Sample(records, 4)
	if !reflect.DeepEqual(ids(a.Questions), ids(b.Questions)) {
		t.Fatalf("same seed gave %v and %v", ids(a.Questions), ids(b.Questions))
	}

	differ := false
	for seed := int64(8); seed < 18; seed++ {
		c, _ := service.NewSampler(seed).Sample(records, 4)
		if !reflect.DeepEqual(ids(a.Questions), ids(c.Questions)) {
			differ = true
			break
		}
	}
	if !differ {
		t.Fatal("ten different seeds all produced the same sample")
	}
}

func TestSampler_DoesNotMutateInput(t *testing.T) {
	records := tenRecords()
	before := ids(records)

	_, _ = service.NewSampler(3).Sample(records, 10)

	if !reflect.DeepEqual(ids(records), before) {
		t.Fatal("input was modified")
	}
}

func TestSampler_RoughlyUniform(t *testing.T) {
	records := tenRecords()
	s := service.NewSampler(99)
	counts := map[string]int{}

	const rounds = 5000
	for i := 0; i < rounds; i++ {
		got, _ := s.Sample(records, 1)
		counts[got.Questions[0].ID]++
	}

	// expected 500 each; allow a wide margin
	for _, r := range records {
		if c := counts[r.ID]; c < 350 || c > 650 {
			t.Fatalf("record %s drawn %d times out of %d", r.ID, c, rounds)
		}
	}
}

func TestSampler_FullDrawIsPermutation(t *testing.T) {
	records := tenRecords()
	got, _ := service.NewSampler(5).Sample(records, len(records))

	if got.Partial {
		t.Fatal("k == n must not be partial")
	}
	seen := map[string]bool{}
	for _, m := range got.Questions {
		seen[m.ID] = true
	}
	for _, r := range records {
		if !seen[r.ID] {
			t.Fatalf("record %s missing", r.ID)
		}
	}
}
