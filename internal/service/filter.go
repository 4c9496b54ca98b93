package service

import (
	"strings"

	"github.com/aliskhannn/mcq-bank/internal/domain/entities"
)

// FilterRecords returns the records that satisfy every field set in spec,
// keeping their original order. The input slice is not modified.
func FilterRecords(records []entities.MCQ, spec entities.FilterSpec) []entities.MCQ {
	spec = spec.Normalize()
	m := newMatcher(spec)

	out := make([]entities.MCQ, 0, len(records))
	for _, r := range records {
		if m.match(r) {
			out = append(out, r)
		}
	}
	return out
}

// matcher holds a FilterSpec with its text fields pre-lowered.
type matcher struct {
	spec        entities.FilterSpec
	subject     string
	subjectName string
	topicName   string
	tags        map[string]struct{}
}

func newMatcher(spec entities.FilterSpec) matcher {
	m := matcher{spec: spec}
	if spec.Subject != nil {
		m.subject = strings.ToLower(*spec.Subject)
	}
	if spec.SubjectName != nil {
		m.subjectName = strings.ToLower(*spec.SubjectName)
	}
	if spec.TopicName != nil {
		m.topicName = strings.ToLower(*spec.TopicName)
	}
	if len(spec.Tags) > 0 {
		m.tags = make(map[string]struct{}, len(spec.Tags))
		for _, t := range spec.LowerTags() {
			m.tags[t] = struct{}{}
		}
	}
	return m
}

func (m matcher) match(r entities.MCQ) bool {
	s := m.spec

	if s.Difficulty != nil && r.Difficulty != *s.Difficulty {
		return false
	}
	if s.QuestionType != nil && r.QuestionType != *s.QuestionType {
		return false
	}
	if s.YearApplies() && (r.Year == nil || *r.Year != *s.Year) {
		return false
	}
	if s.Subject != nil {
		if r.Subject == nil || !strings.Contains(strings.ToLower(*r.Subject), m.subject) {
			return false
		}
	}
	if s.SubjectName != nil && !equalFoldPtr(r.SubjectName, m.subjectName) {
		return false
	}
	if s.TopicName != nil && !equalFoldPtr(r.TopicName, m.topicName) {
		return false
	}
	if m.tags != nil && !m.anyTag(r.Tags) {
		return false
	}
	return true
}

// anyTag reports whether at least one of tags was requested.
func (m matcher) anyTag(tags []string) bool {
	for _, t := range tags {
		if _, ok := m.tags[strings.ToLower(strings.TrimSpace(t))]; ok {
			return true
		}
	}
	return false
}

func equalFoldPtr(v *string, lowered string) bool {
	return v != nil && strings.ToLower(strings.TrimSpace(*v)) == lowered
}
