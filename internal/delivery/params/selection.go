// Package params turns loosely typed key/value input (query strings, bot
// command arguments) into selection requests.
package params

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aliskhannn/mcq-bank/internal/domain/entities"
	"github.com/aliskhannn/mcq-bank/internal/service"
)

// MaxCount caps how many questions one request may ask for.
const MaxCount = 200

// Getter returns the value for key, or "" when it is absent.
type Getter func(key string) string

// FromMap adapts a plain map, e.g. API Gateway query parameters.
func FromMap(m map[string]string) Getter {
	return func(key string) string { return m[key] }
}

// Selection builds a SelectionRequest. Recognised keys are count, difficulty,
// type (or question_type), year, subject, subject_name, topic and tags
// (comma separated). Empty values and "All" are wildcards.
func Selection(get Getter, defaultCount int) (service.SelectionRequest, error) {
	var req service.SelectionRequest

	req.Count = defaultCount
	if v := value(get, "count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return req, fmt.Errorf("%w: count must be a positive number", service.ErrInvalidRequest)
		}
		req.Count = n
	}
	if req.Count > MaxCount {
		return req, fmt.Errorf("%w: count must not exceed %d", service.ErrInvalidRequest, MaxCount)
	}

	f, err := Filter(get)
	if err != nil {
		return req, err
	}
	req.Filter = f

	return req, nil
}

// Filter builds a FilterSpec from the same keys as Selection.
func Filter(get Getter) (entities.FilterSpec, error) {
	var f entities.FilterSpec

	if v := value(get, "difficulty"); v != "" {
		d, err := entities.ParseDifficulty(v)
		if err != nil {
			return f, fmt.Errorf("%w: %w", service.ErrInvalidRequest, err)
		}
		f.Difficulty = &d
	}

	typ := value(get, "type")
	if typ == "" {
		typ = value(get, "question_type")
	}
	if typ != "" {
		t, err := entities.ParseQuestionType(typ)
		if err != nil {
			return f, fmt.Errorf("%w: %w", service.ErrInvalidRequest, err)
		}
		f.QuestionType = &t
	}

	if v := value(get, "year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y <= 0 {
			return f, fmt.Errorf("%w: year must be a positive number", service.ErrInvalidRequest)
		}
		f.Year = &y
	}

	f.Subject = optional(value(get, "subject"))
	f.SubjectName = optional(value(get, "subject_name"))
	f.TopicName = optional(value(get, "topic"))

	if v := value(get, "tags"); v != "" {
		f.Tags = entities.SplitTags(v)
	}

	return f.Normalize(), nil
}

func value(get Getter, key string) string {
	v := strings.TrimSpace(get(key))
	if strings.EqualFold(v, "all") {
		return ""
	}
	return v
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
