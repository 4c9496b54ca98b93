package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/aliskhannn/mcq-bank/internal/domain/entities"
	"github.com/aliskhannn/mcq-bank/internal/infra/postgres"
	"github.com/aliskhannn/mcq-bank/internal/infra/postgres/repository"
)

// fakeTx records inserts. Methods it does not override panic through the
// nil embedded interface.
type fakeTx struct {
	pgx.Tx
	inserted   []any
	failAt     int
	committed  bool
	rolledBack bool
}

func (tx *fakeTx) Exec(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
	if tx.failAt > 0 && len(tx.inserted)+1 == tx.failAt {
		return pgconn.CommandTag{}, errors.New("duplicate key")
	}
	tx.inserted = append(tx.inserted, args[0])
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (tx *fakeTx) Commit(context.Context) error {
	tx.committed = true
	return nil
}

func (tx *fakeTx) Rollback(context.Context) error {
	if !tx.committed {
		tx.rolledBack = true
	}
	return nil
}

type fakeBeginner struct{ tx *fakeTx }

func (b fakeBeginner) Begin(context.Context) (pgx.Tx, error) { return b.tx, nil }

func newMCQs(n int) []*entities.MCQ {
	now := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	out := make([]*entities.MCQ, n)
	for i := range out {
		out[i] = &entities.MCQ{
			Question:      "q",
			Options:       entities.Options{A: "a", B: "b", C: "c", D: "d"},
			CorrectAnswer: entities.LabelA,
			Difficulty:    entities.DifficultyEasy,
			QuestionType:  entities.QuestionTypeBank,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
	}
	return out
}

func TestCreateMany_Commits(t *testing.T) {
	tx := &fakeTx{}
	repo := repository.NewMCQRepository(nil, postgres.NewTransactor(fakeBeginner{tx}))

	ids, err := repo.CreateMany(context.Background(), newMCQs(3))
	if err != nil {
		t.Fatalf("CreateMany: %v", err)
	}
	if len(ids) != 3 || len(tx.inserted) != 3 || !tx.committed || tx.rolledBack {
		t.Fatalf("ids=%v inserted=%d committed=%v rolledBack=%v", ids, len(tx.inserted), tx.committed, tx.rolledBack)
	}
	for i, id := range ids {
		if tx.inserted[i] != id {
			t.Fatalf("insert %d used id %v, returned %s", i, tx.inserted[i], id)
		}
	}
}

func TestCreateMany_RollsBack(t *testing.T) {
	tx := &fakeTx{failAt: 2}
	repo := repository.NewMCQRepository(nil, postgres.NewTransactor(fakeBeginner{tx}))

	ids, err := repo.CreateMany(context.Background(), newMCQs(3))
	if err == nil || ids != nil {
		t.Fatalf("ids=%v err=%v", ids, err)
	}
	if tx.committed || !tx.rolledBack {
		t.Fatalf("committed=%v rolledBack=%v", tx.committed, tx.rolledBack)
	}
}
