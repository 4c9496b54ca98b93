package entities_test

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/aliskhannn/mcq-bank/internal/domain/entities"
)

func validInput() entities.MCQInput {
	return entities.MCQInput{
		Question:      "  What is the capital of France?  ",
		Options:       entities.Options{A: "Paris", B: "Rome", C: "Berlin", D: "Madrid"},
		CorrectAnswer: "a",
		Difficulty:    "easy",
		Solution:      "Paris has been the capital since 987.",
		QuestionType:  "Question Bank",
		SubjectName:   "Geography",
		TopicName:     "Europe",
		Tags:          []string{" capitals ", "Europe", "", "europe"},
	}
}

func TestNewMCQ_Valid(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("X", 3600))

	m, err := entities.NewMCQ(validInput(), now)
	if err != nil {
		t.Fatalf("NewMCQ: %v", err)
	}

	if m.Question != "What is the capital of France?" {
		t.Fatalf("question not trimmed: %q", m.Question)
	}
	if m.CorrectAnswer != entities.LabelA || m.Answer() != "Paris" {
		t.Fatalf("answer = %s/%q", m.CorrectAnswer, m.Answer())
	}
	if m.Difficulty != entities.DifficultyEasy {
		t.Fatalf("difficulty = %q", m.Difficulty)
	}
	if m.QuestionType != entities.QuestionTypeBank {
		t.Fatalf("type = %q", m.QuestionType)
	}
	if m.Subject == nil || *m.Subject != "Geography - Europe" {
		t.Fatalf("subject = %v", m.Subject)
	}
	if want := []string{"capitals", "Europe"}; !reflect.DeepEqual(m.Tags, want) {
		t.Fatalf("tags = %v, want %v", m.Tags, want)
	}
	if !m.CreatedAt.Equal(now) || m.CreatedAt.Location() != time.UTC || !m.UpdatedAt.Equal(m.CreatedAt) {
		t.Fatalf("timestamps = %v / %v", m.CreatedAt, m.UpdatedAt)
	}
	if m.ID != "" {
		t.Fatalf("id should be left to storage, got %q", m.ID)
	}
}

func TestNewMCQ_Invalid(t *testing.T) {
	year := 2020
	zero := 0

	tests := []struct {
		name   string
		mutate func(*entities.MCQInput)
	}{
		{"empty question", func(in *entities.MCQInput) { in.Question = "   " }},
		{"missing option", func(in *entities.MCQInput) { in.Options.C = "" }},
		{"bad label", func(in *entities.MCQInput) { in.CorrectAnswer = "E" }},
		{"bad difficulty", func(in *entities.MCQInput) { in.Difficulty = "Insane" }},
		{"bad type", func(in *entities.MCQInput) { in.QuestionType = "Quiz" }},
		{"pyq without year", func(in *entities.MCQInput) { in.QuestionType = "PYQ"; in.Year = nil }},
		{"pyq with zero year", func(in *entities.MCQInput) { in.QuestionType = "PYQ"; in.Year = &zero }},
		{"blank option after trim", func(in *entities.MCQInput) { in.Options.D = "  " }},
		{"pyq year fine but label lower e", func(in *entities.MCQInput) { in.QuestionType = "PYQ"; in.Year = &year; in.CorrectAnswer = "e" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			if _, err := entities.NewMCQ(in, time.Now()); !errors.Is(err, entities.ErrInvalidMCQ) {
				t.Fatalf("err = %v, want ErrInvalidMCQ", err)
			}
		})
	}
}

func TestNewMCQ_Year(t *testing.T) {
	year := 2019

	in := validInput()
	in.QuestionType = "pyq"
	in.Year = &year
	m, err := entities.NewMCQ(in, time.Now())
	if err != nil {
		t.Fatalf("NewMCQ: %v", err)
	}
	if m.Year == nil || *m.Year != 2019 {
		t.Fatalf("year = %v", m.Year)
	}

	// A year on a non-PYQ question is dropped.
	in = validInput()
	in.Year = &year
	m, err = entities.NewMCQ(in, time.Now())
	if err != nil {
		t.Fatalf("NewMCQ: %v", err)
	}
	if m.Year != nil {
		t.Fatalf("year should be dropped, got %d", *m.Year)
	}
}

func TestNewMCQ_ExplicitSubjectWins(t *testing.T) {
	in := validInput()
	in.Subject = "World capitals"
	m, err := entities.NewMCQ(in, time.Now())
	if err != nil {
		t.Fatalf("NewMCQ: %v", err)
	}
	if *m.Subject != "World capitals" {
		t.Fatalf("subject = %q", *m.Subject)
	}
}

func TestInputFromMCQ_RoundTrip(t *testing.T) {
	now := time.Now()
	m, err := entities.NewMCQ(validInput(), now)
	if err != nil {
		t.Fatalf("NewMCQ: %v", err)
	}
	again, err := entities.NewMCQ(entities.InputFromMCQ(*m), now)
	if err != nil {
		t.Fatalf("NewMCQ(InputFromMCQ): %v", err)
	}
	if !reflect.DeepEqual(m, again) {
		t.Fatalf("round trip changed record:\n%+v\n%+v", m, again)
	}
}

func TestSplitTags(t *testing.T) {
	got := entities.SplitTags(" algebra, Geometry ,, algebra ,ALGEBRA")
	want := []string{"algebra", "Geometry"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitTags = %v, want %v", got, want)
	}
	if got := entities.SplitTags("   "); len(got) != 0 {
		t.Fatalf("SplitTags(blank) = %v", got)
	}
}

func TestParseEnums(t *testing.T) {
	if d, err := entities.ParseDifficulty(" HARD "); err != nil || d != entities.DifficultyHard {
		t.Fatalf("ParseDifficulty = %q, %v", d, err)
	}
	if _, err := entities.ParseDifficulty("trivial"); !errors.Is(err, entities.ErrUnknownDifficulty) {
		t.Fatalf("err = %v", err)
	}

	for _, s := range []string{"QuestionBank", "question bank", "bank"} {
		if qt, err := entities.ParseQuestionType(s); err != nil || qt != entities.QuestionTypeBank {
			t.Fatalf("ParseQuestionType(%q) = %q, %v", s, qt, err)
		}
	}
	if qt, err := entities.ParseQuestionType("pyq"); err != nil || qt != entities.QuestionTypePYQ {
		t.Fatalf("ParseQuestionType(pyq) = %q, %v", qt, err)
	}
	if _, err := entities.ParseQuestionType("mock"); !errors.Is(err, entities.ErrUnknownQuestionType) {
		t.Fatalf("err = %v", err)
	}

	if l, err := entities.ParseLabel("c"); err != nil || l != entities.LabelC {
		t.Fatalf("ParseLabel = %q, %v", l, err)
	}
	if _, err := entities.ParseLabel("Z"); !errors.Is(err, entities.ErrUnknownLabel) {
		t.Fatalf("err = %v", err)
	}
}
