package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/mcq-bank/internal/domain/entities"
)

const DefaultRecentLimit = 5

// FilterOptions lists the distinct values present in the bank, used to build
// filter pickers.
type FilterOptions struct {
	Difficulties []entities.Difficulty   `json:"difficulties"`
	Subjects     []string                `json:"subjects"`
	Types        []entities.QuestionType `json:"types"`
	Years        []int                   `json:"years"` // newest first
	Tags         []string                `json:"tags"`
	Total        int                     `json:"total"`
}

// MCQService handles authoring and browsing of questions.
type MCQService struct {
	repository MCQRepository
	syllabus   Syllabus
	logger     *zap.Logger
	now        func() time.Time
}

// NewMCQService creates a new MCQService. syllabus may be nil, in which case
// subject and topic names are not checked.
func NewMCQService(repository MCQRepository, syllabus Syllabus, logger *zap.Logger) *MCQService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MCQService{
		repository: repository,
		syllabus:   syllabus,
		logger:     logger,
		now:        time.Now,
	}
}

// Create validates and stores a new question.
func (s *MCQService) Create(ctx context.Context, in entities.MCQInput) (*entities.MCQ, error) {
	mcq, err := s.build(in)
	if err != nil {
		return nil, err
	}

	id, err := s.repository.Create(ctx, mcq)
	if err != nil {
		return nil, fmt.Errorf("save mcq: %w", err)
	}
	mcq.ID = id

	s.logger.Info("mcq created",
		zap.String("id", id),
		zap.String("difficulty", string(mcq.Difficulty)),
		zap.String("question_type", string(mcq.QuestionType)),
	)

	return mcq, nil
}

// Import validates every input before storing any of them.
func (s *MCQService) Import(ctx context.Context, inputs []entities.MCQInput) ([]*entities.MCQ, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: nothing to import", ErrInvalidRequest)
	}

	mcqs := make([]*entities.MCQ, 0, len(inputs))
	for i, in := range inputs {
		mcq, err := s.build(in)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		mcqs = append(mcqs, mcq)
	}

	ids, err := s.repository.CreateMany(ctx, mcqs)
	if err != nil {
		return nil, fmt.Errorf("save mcqs: %w", err)
	}
	for i, id := range ids {
		mcqs[i].ID = id
	}

	s.logger.Info("mcqs imported", zap.Int("count", len(mcqs)))

	return mcqs, nil
}

// Recent returns the newest questions first.
func (s *MCQService) Recent(ctx context.Context, limit int) ([]entities.MCQ, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	mcqs, err := s.repository.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	return mcqs, nil
}

// All returns every stored question.
func (s *MCQService) All(ctx context.Context) ([]entities.MCQ, error) {
	mcqs, err := s.repository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	return mcqs, nil
}

// Count returns the number of stored questions.
func (s *MCQService) Count(ctx context.Context) (int, error) {
	mcqs, err := s.All(ctx)
	if err != nil {
		return 0, err
	}
	return len(mcqs), nil
}

// FilterOptions collects the distinct filterable values in the bank.
func (s *MCQService) FilterOptions(ctx context.Context) (*FilterOptions, error) {
	mcqs, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	return CollectFilterOptions(mcqs), nil
}

// CollectFilterOptions builds FilterOptions from a record set.
func CollectFilterOptions(mcqs []entities.MCQ) *FilterOptions {
	difficulties := map[entities.Difficulty]struct{}{}
	types := map[entities.QuestionType]struct{}{}
	subjects := map[string]struct{}{}
	years := map[int]struct{}{}
	tags := map[string]string{} // lower -> first spelling

	for _, m := range mcqs {
		difficulties[m.Difficulty] = struct{}{}
		types[m.QuestionType] = struct{}{}
		if m.Subject != nil {
			subjects[*m.Subject] = struct{}{}
		}
		if m.Year != nil {
			years[*m.Year] = struct{}{}
		}
		for _, t := range m.Tags {
			key := strings.ToLower(t)
			if _, ok := tags[key]; !ok {
				tags[key] = t
			}
		}
	}

	opts := &FilterOptions{
		Difficulties: []entities.Difficulty{},
		Subjects:     make([]string, 0, len(subjects)),
		Types:        []entities.QuestionType{},
		Years:        make([]int, 0, len(years)),
		Tags:         make([]string, 0, len(tags)),
		Total:        len(mcqs),
	}
	for _, d := range entities.Difficulties {
		if _, ok := difficulties[d]; ok {
			opts.Difficulties = append(opts.Difficulties, d)
		}
	}
	for _, t := range entities.QuestionTypes {
		if _, ok := types[t]; ok {
			opts.Types = append(opts.Types, t)
		}
	}
	for sub := range subjects {
		opts.Subjects = append(opts.Subjects, sub)
	}
	sort.Strings(opts.Subjects)
	for y := range years {
		opts.Years = append(opts.Years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(opts.Years)))
	for _, t := range tags {
		opts.Tags = append(opts.Tags, t)
	}
	sort.Slice(opts.Tags, func(i, j int) bool {
		return strings.ToLower(opts.Tags[i]) < strings.ToLower(opts.Tags[j])
	})

	return opts
}

func (s *MCQService) build(in entities.MCQInput) (*entities.MCQ, error) {
	mcq, err := entities.NewMCQ(in, s.now())
	if err != nil {
		return nil, err
	}

	if s.syllabus != nil && mcq.SubjectName != nil {
		topic := ""
		if mcq.TopicName != nil {
			topic = *mcq.TopicName
		}
		if err := s.syllabus.Validate(*mcq.SubjectName, topic); err != nil {
			return nil, fmt.Errorf("%w: %w", entities.ErrInvalidMCQ, err)
		}
	}

	return mcq, nil
}
