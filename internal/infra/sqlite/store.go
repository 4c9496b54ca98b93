package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // driver: sqlite

	"github.com/aliskhannn/mcq-bank/internal/domain/entities"
)

const defaultDSN = "file:mcqs.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"

// Open opens a SQLite database and ensures the schema exists.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	if dsn == "" {
		dsn = defaultDSN
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if strings.Contains(dsn, ":memory:") {
		// every connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS mcqs (
  id             TEXT PRIMARY KEY,
  question       TEXT NOT NULL,
  option_a       TEXT NOT NULL,
  option_b       TEXT NOT NULL,
  option_c       TEXT NOT NULL,
  option_d       TEXT NOT NULL,
  correct_answer TEXT NOT NULL,
  difficulty     TEXT NOT NULL,
  solution       TEXT NOT NULL DEFAULT '',
  question_type  TEXT NOT NULL,
  year           INTEGER,
  subject        TEXT,
  subject_name   TEXT,
  topic_name     TEXT,
  tags_json      TEXT NOT NULL DEFAULT '[]',
  created_at     INTEGER NOT NULL, -- unix nanoseconds
  updated_at     INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_mcqs_created_at ON mcqs (created_at);
`

const selectColumns = `SELECT id,question,option_a,option_b,option_c,option_d,correct_answer,difficulty,solution,question_type,year,subject,subject_name,topic_name,tags_json,created_at,updated_at FROM mcqs`

// Store keeps questions in a SQLite database.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) Create(ctx context.Context, mcq *entities.MCQ) (string, error) {
	id := uuid.NewString()
	if err := insert(ctx, s.db, id, mcq); err != nil {
		return "", err
	}
	return id, nil
}

// CreateMany inserts all questions in a single transaction.
func (s *Store) CreateMany(ctx context.Context, mcqs []*entities.MCQ) ([]string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	ids := make([]string, 0, len(mcqs))
	for _, m := range mcqs {
		id := uuid.NewString()
		if err := insert(ctx, tx, id, m); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return ids, nil
}

func (s *Store) List(ctx context.Context) ([]entities.MCQ, error) {
	return s.query(ctx, selectColumns+` ORDER BY created_at, id`)
}

// Query evaluates the exact-match parts of spec in SQL. Text fields are
// left to the in-process filter: LIKE and NOCASE only fold ASCII, so pushing
// them down would drop rows such as "Économie" for "économie". Tags are
// stored as JSON text.
func (s *Store) Query(ctx context.Context, spec entities.FilterSpec) ([]entities.MCQ, error) {
	where, args := buildFilter(spec)
	return s.query(ctx, selectColumns+where+` ORDER BY created_at, id`, args...)
}

func (s *Store) Recent(ctx context.Context, limit int) ([]entities.MCQ, error) {
	return s.query(ctx, selectColumns+` ORDER BY created_at DESC, id LIMIT ?`, limit)
}

func buildFilter(spec entities.FilterSpec) (string, []any) {
	spec = spec.Normalize()

	var (
		conds []string
		args  []any
	)
	if spec.Difficulty != nil {
		conds = append(conds, "difficulty = ?")
		args = append(args, string(*spec.Difficulty))
	}
	if spec.QuestionType != nil {
		conds = append(conds, "question_type = ?")
		args = append(args, string(*spec.QuestionType))
	}
	if spec.YearApplies() {
		conds = append(conds, "year = ?")
		args = append(args, *spec.Year)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func insert(ctx context.Context, db execer, id string, m *entities.MCQ) error {
	tags := m.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `INSERT INTO mcqs
		(id,question,option_a,option_b,option_c,option_d,correct_answer,difficulty,solution,question_type,year,subject,subject_name,topic_name,tags_json,created_at,updated_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		id, m.Question, m.Options.A, m.Options.B, m.Options.C, m.Options.D,
		string(m.CorrectAnswer), string(m.Difficulty), m.Solution, string(m.QuestionType),
		nullableInt(m.Year), nullableString(m.Subject), nullableString(m.SubjectName), nullableString(m.TopicName), string(tagsJSON),
		m.CreatedAt.UnixNano(), m.UpdatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("insert mcq: %w", err)
	}
	return nil
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]entities.MCQ, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query mcqs: %w", err)
	}
	defer rows.Close()

	var out []entities.MCQ
	for rows.Next() {
		var (
			m                                 entities.MCQ
			correct, difficulty, questionType string
			year                              sql.NullInt64
			subject, subjectName, topicName   sql.NullString
			tagsJSON                          string
			createdAt, updatedAt              int64
		)
		if err := rows.Scan(&m.ID, &m.Question, &m.Options.A, &m.Options.B, &m.Options.C, &m.Options.D,
			&correct, &difficulty, &m.Solution, &questionType,
			&year, &subject, &subjectName, &topicName, &tagsJSON,
			&createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan mcq: %w", err)
		}
		if err := json.Unmarshal([]byte(tagsJSON), &m.Tags); err != nil {
			m.Tags = []string{}
		}

		m.CorrectAnswer = entities.Label(correct)
		m.Difficulty = entities.Difficulty(difficulty)
		m.QuestionType = entities.QuestionType(questionType)
		if year.Valid {
			y := int(year.Int64)
			m.Year = &y
		}
		m.Subject = nullString(subject)
		m.SubjectName = nullString(subjectName)
		m.TopicName = nullString(topicName)
		m.CreatedAt = time.Unix(0, createdAt).UTC()
		m.UpdatedAt = time.Unix(0, updatedAt).UTC()

		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mcqs: %w", err)
	}
	return out, nil
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return int64(*v)
}

func nullableString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}
