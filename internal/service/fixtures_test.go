package service_test

import (
	"context"
	"fmt"
	"time"

	"github.com/aliskhannn/mcq-bank/internal/domain/entities"
)

func ptr[T any](v T) *T { return &v }

var base = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type mcqOpt func(*entities.MCQ)

func withSubject(s string) mcqOpt { return func(m *entities.MCQ) { m.Subject = &s } }
func withTags(tags ...string) mcqOpt {
	return func(m *entities.MCQ) { m.Tags = tags }
}
func withPYQ(year int) mcqOpt {
	return func(m *entities.MCQ) { m.QuestionType = entities.QuestionTypePYQ; m.Year = &year }
}
func withSyllabus(subject, topic string) mcqOpt {
	return func(m *entities.MCQ) { m.SubjectName = &subject; m.TopicName = &topic }
}

func newRecord(i int, d entities.Difficulty, opts ...mcqOpt) entities.MCQ {
	m := entities.MCQ{
		ID:            fmt.Sprintf("q%02d", i),
		Question:      fmt.Sprintf("Question %d?", i),
		Options:       entities.Options{A: "a", B: "b", C: "c", D: "d"},
		CorrectAnswer: entities.LabelA,
		Difficulty:    d,
		QuestionType:  entities.QuestionTypeBank,
		Tags:          []string{},
		CreatedAt:     base.Add(time.Duration(i) * time.Minute),
		UpdatedAt:     base.Add(time.Duration(i) * time.Minute),
	}
	for _, o := range opts {
		o(&m)
	}
	return m
}

// tenRecords returns 5 Easy Geography and 5 Hard History questions, interleaved.
func tenRecords() []entities.MCQ {
	out := make([]entities.MCQ, 0, 10)
	for i := 0; i < 10; i++ {
		if i%2 == 0 {
			out = append(out, newRecord(i, entities.DifficultyEasy, withSubject("Geography")))
		} else {
			out = append(out, newRecord(i, entities.DifficultyHard, withSubject("History")))
		}
	}
	return out
}

func ids(mcqs []entities.MCQ) []string {
	out := make([]string, 0, len(mcqs))
	for _, m := range mcqs {
		out = append(out, m.ID)
	}
	return out
}

// fakeSource is a RecordSource that counts calls and can fail.
type fakeSource struct {
	records []entities.MCQ
	err     error
	lists   int
}

func (f *fakeSource) List(_ context.Context) ([]entities.MCQ, error) {
	f.lists++
	if f.err != nil {
		return nil, f.err
	}
	return append([]entities.MCQ(nil), f.records...), nil
}

// fakeQuerier also implements RecordQuerier. It returns a superset of the
// match (difficulty only) to check that the full filter is re-applied.
type fakeQuerier struct {
	fakeSource
	queries []entities.FilterSpec
}

func (f *fakeQuerier) Query(_ context.Context, spec entities.FilterSpec) ([]entities.MCQ, error) {
	f.queries = append(f.queries, spec)
	if f.err != nil {
		return nil, f.err
	}
	var out []entities.MCQ
	for _, r := range f.records {
		if spec.Difficulty == nil || r.Difficulty == *spec.Difficulty {
			out = append(out, r)
		}
	}
	return out, nil
}
