// Package syllabus loads the subject and topic catalogue authors pick from.
package syllabus

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"go.yaml.in/yaml/v3"
)

var (
	ErrUnknownSubject = errors.New("unknown subject")
	ErrUnknownTopic   = errors.New("unknown topic")
)

// Topic describes a single syllabus topic.
type Topic struct {
	Description string `yaml:"description" json:"description"`
}

// Syllabus maps subjects to their topics. Lookups are case-insensitive.
type Syllabus struct {
	subjects map[string]subject // keyed by lower-cased name
}

type subject struct {
	name   string
	topics map[string]topicEntry
}

type topicEntry struct {
	name string
	Topic
}

// Load reads a syllabus file of the form
//
//	Physics:
//	  Mechanics:
//	    description: Motion, forces and energy
func Load(fs afero.Fs, path string) (*Syllabus, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read syllabus: %w", err)
	}
	return Parse(data)
}

// Parse decodes a syllabus document.
func Parse(data []byte) (*Syllabus, error) {
	var raw map[string]map[string]*Topic
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal syllabus YAML: %w", err)
	}

	s := &Syllabus{subjects: make(map[string]subject, len(raw))}
	for subjName, topics := range raw {
		subjName = strings.TrimSpace(subjName)
		if subjName == "" {
			continue
		}
		sub := subject{name: subjName, topics: make(map[string]topicEntry, len(topics))}
		for topicName, t := range topics {
			topicName = strings.TrimSpace(topicName)
			if topicName == "" {
				continue
			}
			e := topicEntry{name: topicName}
			if t != nil {
				e.Topic = *t
			}
			sub.topics[strings.ToLower(topicName)] = e
		}
		s.subjects[strings.ToLower(subjName)] = sub
	}

	return s, nil
}

// Subjects returns subject names in alphabetical order.
func (s *Syllabus) Subjects() []string {
	out := make([]string, 0, len(s.subjects))
	for _, sub := range s.subjects {
		out = append(out, sub.name)
	}
	sort.Strings(out)
	return out
}

// Topics returns the topics of subjectName in alphabetical order.
func (s *Syllabus) Topics(subjectName string) ([]string, error) {
	sub, ok := s.subjects[strings.ToLower(strings.TrimSpace(subjectName))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSubject, subjectName)
	}

	out := make([]string, 0, len(sub.topics))
	for _, t := range sub.topics {
		out = append(out, t.name)
	}
	sort.Strings(out)
	return out, nil
}

// Describe returns the description of a topic.
func (s *Syllabus) Describe(subjectName, topicName string) (string, error) {
	t, err := s.lookup(subjectName, topicName)
	if err != nil {
		return "", err
	}
	return t.Description, nil
}

// Validate checks that subjectName exists and, when topicName is non-empty,
// that it belongs to the subject.
func (s *Syllabus) Validate(subjectName, topicName string) error {
	if strings.TrimSpace(topicName) == "" {
		if _, ok := s.subjects[strings.ToLower(strings.TrimSpace(subjectName))]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownSubject, subjectName)
		}
		return nil
	}
	_, err := s.lookup(subjectName, topicName)
	return err
}

// Tree returns the whole syllabus as subject -> topic -> description.
func (s *Syllabus) Tree() map[string]map[string]Topic {
	out := make(map[string]map[string]Topic, len(s.subjects))
	for _, sub := range s.subjects {
		topics := make(map[string]Topic, len(sub.topics))
		for _, t := range sub.topics {
			topics[t.name] = t.Topic
		}
		out[sub.name] = topics
	}
	return out
}

func (s *Syllabus) lookup(subjectName, topicName string) (topicEntry, error) {
	sub, ok := s.subjects[strings.ToLower(strings.TrimSpace(subjectName))]
	if !ok {
		return topicEntry{}, fmt.Errorf("%w: %q", ErrUnknownSubject, subjectName)
	}
	t, ok := sub.topics[strings.ToLower(strings.TrimSpace(topicName))]
	if !ok {
		return topicEntry{}, fmt.Errorf("%w: %q in %q", ErrUnknownTopic, topicName, sub.name)
	}
	return t, nil
}

// LoadOptional loads the syllabus at path. It returns nil without error when
// path is empty, which disables subject and topic validation.
func LoadOptional(fs afero.Fs, path string) (*Syllabus, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	return Load(fs, path)
}
