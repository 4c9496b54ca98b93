package repository_test

import (
	"reflect"
	"testing"

	"github.com/aliskhannn/mcq-bank/internal/domain/entities"
	"github.com/aliskhannn/mcq-bank/internal/infra/postgres/repository"
)

func ptr[T any](v T) *T { return &v }

func TestBuildFilter(t *testing.T) {
	tests := []struct {
		name      string
		spec      entities.FilterSpec
		wantWhere string
		wantArgs  []any
	}{
		{
			name: "empty",
			spec: entities.FilterSpec{Subject: ptr("  "), Tags: []string{" "}},
		},
		{
			name:      "difficulty and type",
			spec:      entities.FilterSpec{Difficulty: ptr(entities.DifficultyHard), QuestionType: ptr(entities.QuestionTypeBank)},
			wantWhere: " WHERE difficulty = $1 AND question_type = $2",
			wantArgs:  []any{"Hard", "QuestionBank"},
		},
		{
			name:      "year needs pyq",
			spec:      entities.FilterSpec{QuestionType: ptr(entities.QuestionTypeBank), Year: ptr(2020)},
			wantWhere: " WHERE question_type = $1",
			wantArgs:  []any{"QuestionBank"},
		},
		{
			name:      "pyq year",
			spec:      entities.FilterSpec{QuestionType: ptr(entities.QuestionTypePYQ), Year: ptr(2020)},
			wantWhere: " WHERE question_type = $1 AND year = $2",
			wantArgs:  []any{"PYQ", 2020},
		},
		{
			name: "text fields stay in process",
			spec: entities.FilterSpec{
				Difficulty:  ptr(entities.DifficultyEasy),
				Subject:     ptr("économie"),
				SubjectName: ptr("Économie"),
				TopicName:   ptr("Optics"),
				Tags:        []string{"Optics"},
			},
			wantWhere: " WHERE difficulty = $1",
			wantArgs:  []any{"Easy"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := repository.BuildFilter(tt.spec)
			if where != tt.wantWhere {
				t.Fatalf("where = %q, want %q", where, tt.wantWhere)
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Fatalf("args = %#v, want %#v", args, tt.wantArgs)
			}
		})
	}
}
