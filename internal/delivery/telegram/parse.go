package telegram

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/aliskhannn/mcq-bank/internal/domain/entities"
	"github.com/aliskhannn/mcq-bank/internal/service"
)

var randomKeys = map[string]string{
	"count":         "count",
	"n":             "count",
	"difficulty":    "difficulty",
	"d":             "difficulty",
	"type":          "type",
	"question_type": "type",
	"year":          "year",
	"subject":       "subject",
	"subject_name":  "subject_name",
	"topic":         "topic",
	"tags":          "tags",
	"tag":           "tags",
}

// parseRandomArgs turns "/random 5 difficulty=Easy subject=\"Modern History\""
// arguments into key/value pairs understood by params.Selection.
func parseRandomArgs(args string) (map[string]string, error) {
	tokens, err := tokenize(args)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(tokens))
	for i, tok := range tokens {
		key, val, ok := strings.Cut(tok, "=")
		if !ok {
			if i == 0 {
				if _, err := strconv.Atoi(tok); err == nil {
					out["count"] = tok
					continue
				}
			}
			return nil, fmt.Errorf("%w: unexpected argument %q, expected key=value", service.ErrInvalidRequest, tok)
		}

		canonical, known := randomKeys[strings.ToLower(strings.TrimSpace(key))]
		if !known {
			return nil, fmt.Errorf("%w: unknown filter %q", service.ErrInvalidRequest, key)
		}
		out[canonical] = strings.TrimSpace(val)
	}

	return out, nil
}

// tokenize splits on whitespace, keeping double-quoted runs together.
func tokenize(s string) ([]string, error) {
	var (
		tokens  []string
		cur     strings.Builder
		inQuote bool
		started bool
	)
	flush := func() {
		if started {
			tokens = append(tokens, cur.String())
		}
		cur.Reset()
		started = false
	}

	for _, r := range s {
		switch {
		case r == '"' || r == '“' || r == '”':
			inQuote = !inQuote
			started = true
		case unicode.IsSpace(r) && !inQuote:
			flush()
		default:
			cur.WriteRune(r)
			started = true
		}
	}
	if inQuote {
		return nil, fmt.Errorf("%w: unterminated quote", service.ErrInvalidRequest)
	}
	flush()

	return tokens, nil
}

// authoringFields maps the accepted "Field:" names of an /add message.
var authoringFields = map[string]string{
	"question":       "question",
	"q":              "question",
	"a":              "a",
	"b":              "b",
	"c":              "c",
	"d":              "d",
	"answer":         "answer",
	"correct":        "answer",
	"correct answer": "answer",
	"difficulty":     "difficulty",
	"type":           "type",
	"question type":  "type",
	"year":           "year",
	"subject":        "subject",
	"topic":          "topic",
	"tags":           "tags",
	"solution":       "solution",
	"explanation":    "solution",
}

// parseAuthoring reads an /add message made of "Field: value" lines. A line
// without a known field continues the previous field, so questions and
// solutions may span several lines.
func parseAuthoring(text string) (entities.MCQInput, error) {
	var (
		in     entities.MCQInput
		fields = map[string]*strings.Builder{}
		last   string
	)

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if name, value, ok := strings.Cut(trimmed, ":"); ok {
			if field, known := authoringFields[strings.ToLower(strings.TrimSpace(name))]; known {
				if _, dup := fields[field]; dup {
					return in, fmt.Errorf("%w: field %q given twice", service.ErrInvalidRequest, name)
				}
				b := &strings.Builder{}
				b.WriteString(strings.TrimSpace(value))
				fields[field] = b
				last = field
				continue
			}
		}

		if last == "" {
			return in, fmt.Errorf("%w: expected \"Field: value\", got %q", service.ErrInvalidRequest, trimmed)
		}
		b := fields[last]
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(trimmed)
	}

	if len(fields) == 0 {
		return in, fmt.Errorf("%w: the question is empty, see /help", service.ErrInvalidRequest)
	}

	get := func(field string) string {
		if b, ok := fields[field]; ok {
			return b.String()
		}
		return ""
	}

	in.Question = get("question")
	in.Options = entities.Options{A: get("a"), B: get("b"), C: get("c"), D: get("d")}
	in.CorrectAnswer = get("answer")
	in.Difficulty = get("difficulty")
	in.QuestionType = get("type")
	if in.QuestionType == "" {
		in.QuestionType = string(entities.QuestionTypeBank)
	}
	in.SubjectName = get("subject")
	in.TopicName = get("topic")
	in.Tags = entities.SplitTags(get("tags"))
	in.Solution = get("solution")

	if y := get("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			return in, fmt.Errorf("%w: year must be a number", service.ErrInvalidRequest)
		}
		in.Year = &year
	}

	return in, nil
}
