package service_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/aliskhannn/mcq-bank/internal/domain/entities"
	"github.com/aliskhannn/mcq-bank/internal/service"
)

func TestQuestionSelector_Select(t *testing.T) {
	src := &fakeSource{records: tenRecords()}
	sel := service.NewQuestionSelector(src, "memory", 11, nil)

	got, err := sel.Select(context.Background(), service.SelectionRequest{
		Filter: entities.FilterSpec{Difficulty: ptr(entities.DifficultyEasy)},
		Count:  3,
	})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}

	if got.Requested != 3 || got.Available != 5 || len(got.Questions) != 3 {
		t.Fatalf("requested=%d available=%d got=%d", got.Requested, got.Available, len(got.Questions))
	}
	if got.Partial || got.NoMatches || got.Warnings() != nil {
		t.Fatalf("unexpected flags: %+v", got)
	}
	for _, q := range got.Questions {
		if q.Difficulty != entities.DifficultyEasy {
			t.Fatalf("question %s has difficulty %s", q.ID, q.Difficulty)
		}
	}
	if got.Source != "memory" || got.GeneratedAt.IsZero() {
		t.Fatalf("source=%q generated_at=%v", got.Source, got.GeneratedAt)
	}
}

func TestQuestionSelector_PartialAndEmpty(t *testing.T) {
	src := &fakeSource{records: tenRecords()[:3]}
	sel := service.NewQuestionSelector(src, "memory", 1, nil)

	got, err := sel.Select(context.Background(), service.SelectionRequest{Count: 5})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(got.Questions) != 3 || !got.Partial || got.NoMatches {
		t.Fatalf("got %d, partial=%v, noMatches=%v", len(got.Questions), got.Partial, got.NoMatches)
	}

	empty := service.NewQuestionSelector(&fakeSource{}, "memory", 1, nil)
	got, err = empty.Select(context.Background(), service.SelectionRequest{Count: 3})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(got.Questions) != 0 || !got.NoMatches {
		t.Fatalf("got %d, noMatches=%v", len(got.Questions), got.NoMatches)
	}
	if w := got.Warnings(); len(w) != 1 {
		t.Fatalf("warnings = %v", w)
	}
}

func TestQuestionSelector_InvalidCount(t *testing.T) {
	src := &fakeSource{records: tenRecords()}
	sel := service.NewQuestionSelector(src, "memory", 1, nil)

	_, err := sel.Select(context.Background(), service.SelectionRequest{Count: 0})
	if !errors.Is(err, service.ErrInvalidRequest) {
		t.Fatalf("err = %v", err)
	}
	if src.lists != 0 {
		t.Fatal("source should not be read for an invalid request")
	}
}

func TestQuestionSelector_SourceUnavailable(t *testing.T) {
	cause := errors.New("connection refused")
	sel := service.NewQuestionSelector(&fakeSource{err: cause}, "postgres", 1, nil)

	_, err := sel.Select(context.Background(), service.SelectionRequest{Count: 1})
	if !errors.Is(err, service.ErrSourceUnavailable) || !errors.Is(err, cause) {
		t.Fatalf("err = %v", err)
	}
}

func TestQuestionSelector_PushDownIsReFiltered(t *testing.T) {
	records := tenRecords()
	records = append(records, newRecord(10, entities.DifficultyEasy, withSubject("History")))
	src := &fakeQuerier{fakeSource: fakeSource{records: records}}
	sel := service.NewQuestionSelector(src, "sqlite", 1, nil)

	filter := entities.FilterSpec{Difficulty: ptr(entities.DifficultyEasy), Subject: ptr("history")}
	matched, err := sel.Match(context.Background(), filter)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}

	if !reflect.DeepEqual(ids(matched), []string{"q10"}) {
		t.Fatalf("matched %v", ids(matched))
	}
	if len(src.queries) != 1 || src.lists != 0 {
		t.Fatalf("queries=%d lists=%d", len(src.queries), src.lists)
	}
}

func TestQuestionSelector_EmptyFilterLists(t *testing.T) {
	src := &fakeQuerier{fakeSource: fakeSource{records: tenRecords()}}
	sel := service.NewQuestionSelector(src, "sqlite", 1, nil)

	// A year alone is not a constraint, so the whole bank is listed.
	if _, err := sel.Select(context.Background(), service.SelectionRequest{
		Filter: entities.FilterSpec{Year: ptr(2020)},
		Count:  2,
	}); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(src.queries) != 0 || src.lists != 1 {
		t.Fatalf("queries=%d lists=%d", len(src.queries), src.lists)
	}
}

func TestQuestionSelector_SeedIsDeterministic(t *testing.T) {
	req := service.SelectionRequest{Count: 4}

	a, _ := service.NewQuestionSelector(&fakeSource{records: tenRecords()}, "memory", 5, nil).Select(context.Background(), req)
	b, _ := service.NewQuestionSelector(&fakeSource{records: tenRecords()}, "memory", 5, nil).Select(context.Background(), req)

	if !reflect.DeepEqual(ids(a.Questions), ids(b.Questions)) {
		t.Fatalf("%v vs %v", ids(a.Questions), ids(b.Questions))
	}
}
