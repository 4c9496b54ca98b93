package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/mcq-bank/internal/domain/entities"
	"github.com/aliskhannn/mcq-bank/internal/infra/postgres"
)

const selectColumns = `
	SELECT id, question, option_a, option_b, option_c, option_d,
	       correct_answer, difficulty, solution, question_type,
	       year, subject, subject_name, topic_name, tags,
	       created_at, updated_at
	FROM mcqs`

const insertQuery = `
	INSERT INTO mcqs (
		id, question, option_a, option_b, option_c, option_d,
		correct_answer, difficulty, solution, question_type,
		year, subject, subject_name, topic_name, tags,
		created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

// MCQRepository provides access to questions stored in PostgreSQL.
type MCQRepository struct {
	db         postgres.DBTX
	transactor *postgres.Transactor
}

// NewMCQRepository creates a new MCQRepository. transactor is used by CreateMany.
func NewMCQRepository(db postgres.DBTX, transactor *postgres.Transactor) *MCQRepository {
	return &MCQRepository{db: db, transactor: transactor}
}

// Create inserts a question and returns its generated ID.
func (r *MCQRepository) Create(ctx context.Context, mcq *entities.MCQ) (string, error) {
	id := uuid.NewString()
	if err := insert(ctx, r.db, id, mcq); err != nil {
		return "", err
	}
	return id, nil
}

// CreateMany inserts all questions in one transaction.
func (r *MCQRepository) CreateMany(ctx context.Context, mcqs []*entities.MCQ) ([]string, error) {
	ids := make([]string, len(mcqs))
	for i := range mcqs {
		ids[i] = uuid.NewString()
	}

	err := r.transactor.WithinTx(ctx, func(ctx context.Context, tx postgres.DBTX) error {
		for i, m := range mcqs {
			if err := insert(ctx, tx, ids[i], m); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ids, nil
}

// List returns all questions in creation order.
func (r *MCQRepository) List(ctx context.Context) ([]entities.MCQ, error) {
	return r.query(ctx, selectColumns+` ORDER BY created_at, id`)
}

// Query returns the questions matching spec, evaluated by the database.
func (r *MCQRepository) Query(ctx context.Context, spec entities.FilterSpec) ([]entities.MCQ, error) {
	where, args := BuildFilter(spec)
	return r.query(ctx, selectColumns+where+` ORDER BY created_at, id`, args...)
}

// Recent returns up to limit questions, newest first.
func (r *MCQRepository) Recent(ctx context.Context, limit int) ([]entities.MCQ, error) {
	return r.query(ctx, selectColumns+` ORDER BY created_at DESC, id LIMIT $1`, limit)
}

func (r *MCQRepository) query(ctx context.Context, sql string, args ...any) ([]entities.MCQ, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query mcqs: %w", err)
	}
	defer rows.Close()

	var out []entities.MCQ
	for rows.Next() {
		m, err := scanMCQ(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mcqs: %w", err)
	}

	return out, nil
}

// BuildFilter turns the exact-match parts of spec into a WHERE clause with
// positional arguments. Subject, syllabus names and tags stay in-process:
// ILIKE and lower() follow the database collation and under "C" only fold
// ASCII, which would drop matching rows.
func BuildFilter(spec entities.FilterSpec) (string, []any) {
	spec = spec.Normalize()

	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if spec.Difficulty != nil {
		conds = append(conds, "difficulty = "+arg(string(*spec.Difficulty)))
	}
	if spec.QuestionType != nil {
		conds = append(conds, "question_type = "+arg(string(*spec.QuestionType)))
	}
	if spec.YearApplies() {
		conds = append(conds, "year = "+arg(*spec.Year))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func insert(ctx context.Context, db postgres.DBTX, id string, m *entities.MCQ) error {
	tags := m.Tags
	if tags == nil {
		tags = []string{}
	}

	_, err := db.Exec(ctx, insertQuery,
		id,
		m.Question,
		m.Options.A,
		m.Options.B,
		m.Options.C,
		m.Options.D,
		string(m.CorrectAnswer),
		string(m.Difficulty),
		m.Solution,
		string(m.QuestionType),
		m.Year,
		m.Subject,
		m.SubjectName,
		m.TopicName,
		tags,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert mcq: %w", err)
	}
	return nil
}

func scanMCQ(row pgx.Row) (entities.MCQ, error) {
	var (
		m                                entities.MCQ
		correct, difficulty, questionTyp string
	)
	err := row.Scan(
		&m.ID,
		&m.Question,
		&m.Options.A,
		&m.Options.B,
		&m.Options.C,
		&m.Options.D,
		&correct,
		&difficulty,
		&m.Solution,
		&questionTyp,
		&m.Year,
		&m.Subject,
		&m.SubjectName,
		&m.TopicName,
		&m.Tags,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return entities.MCQ{}, fmt.Errorf("scan mcq: %w", err)
	}

	m.CorrectAnswer = entities.Label(correct)
	m.Difficulty = entities.Difficulty(difficulty)
	m.QuestionType = entities.QuestionType(questionTyp)

	return m, nil
}
