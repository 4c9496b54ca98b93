package service

import (
	"context"

	"github.com/aliskhannn/mcq-bank/internal/domain/entities"
)

// RecordSource lists every stored question. All backends implement it.
type RecordSource interface {
	List(ctx context.Context) ([]entities.MCQ, error)
}

// RecordQuerier is implemented by backends that can evaluate part of a
// FilterSpec server-side. Results may be a superset of the exact match;
// the selector always re-applies the full filter in-process.
type RecordQuerier interface {
	Query(ctx context.Context, spec entities.FilterSpec) ([]entities.MCQ, error)
}

// MCQRepository persists questions.
type MCQRepository interface {
	RecordSource
	Create(ctx context.Context, mcq *entities.MCQ) (string, error)
	CreateMany(ctx context.Context, mcqs []*entities.MCQ) ([]string, error)
	Recent(ctx context.Context, limit int) ([]entities.MCQ, error)
}

// Syllabus validates subject and topic names chosen by an author.
type Syllabus interface {
	Validate(subject, topic string) error
}
