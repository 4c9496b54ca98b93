package entities

import (
	"strings"
)

// FilterSpec describes which fields constrain a question selection.
// A nil or empty field is a wildcard.
type FilterSpec struct {
	Difficulty   *Difficulty   `json:"difficulty,omitempty"`
	Subject      *string       `json:"subject,omitempty"` // case-insensitive substring
	QuestionType *QuestionType `json:"question_type,omitempty"`
	Year         *int          `json:"year,omitempty"` // honoured only together with QuestionType PYQ
	Tags         []string      `json:"tags,omitempty"` // any-of
	SubjectName  *string       `json:"subject_name,omitempty"`
	TopicName    *string       `json:"topic_name,omitempty"`
}

// Normalize drops blank text fields and tags so they act as wildcards.
func (f FilterSpec) Normalize() FilterSpec {
	out := f
	out.Subject = blankToNil(f.Subject)
	out.SubjectName = blankToNil(f.SubjectName)
	out.TopicName = blankToNil(f.TopicName)
	out.Tags = NormalizeTags(f.Tags)
	if len(out.Tags) == 0 {
		out.Tags = nil
	}
	return out
}

// IsEmpty reports whether the spec constrains nothing.
func (f FilterSpec) IsEmpty() bool {
	n := f.Normalize()
	return n.Difficulty == nil &&
		n.Subject == nil &&
		n.QuestionType == nil &&
		!n.YearApplies() &&
		len(n.Tags) == 0 &&
		n.SubjectName == nil &&
		n.TopicName == nil
}

// YearApplies reports whether the year constraint takes effect. A year without
// the PYQ question type is ignored rather than rejected.
func (f FilterSpec) YearApplies() bool {
	return f.Year != nil && f.QuestionType != nil && *f.QuestionType == QuestionTypePYQ
}

// LowerTags returns the requested tags lower-cased.
func (f FilterSpec) LowerTags() []string {
	out := make([]string, 0, len(f.Tags))
	for _, t := range NormalizeTags(f.Tags) {
		out = append(out, strings.ToLower(t))
	}
	return out
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
