package entities

import (
	"fmt"
	"time"
)

// Selection is the result of drawing random questions from the bank.
type Selection struct {
	Filter      FilterSpec // filters the questions were matched against
	Requested   int        // number of questions asked for
	Available   int        // number of questions matching the filters
	Questions   []MCQ      // drawn questions in random order
	Partial     bool       // fewer questions returned than requested
	NoMatches   bool       // nothing matched the filters
	GeneratedAt time.Time
	Source      string // storage backend the questions came from
}

// Warnings returns the messages a caller should surface next to the result.
// Neither condition is an error.
func (s *Selection) Warnings() []string {
	switch {
	case s.NoMatches:
		return []string{"no matching questions"}
	case s.Partial:
		return []string{fmt.Sprintf("only %d of %d requested questions available", len(s.Questions), s.Requested)}
	}
	return nil
}
