package entities

import (
	"errors"
	"strings"
)

var (
	ErrUnknownDifficulty   = errors.New("unknown difficulty")
	ErrUnknownQuestionType = errors.New("unknown question type")
	ErrUnknownLabel        = errors.New("unknown option label")
)

// Difficulty represents how hard a question is.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Difficulties lists all difficulty levels in ascending order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// ParseDifficulty converts user input into a Difficulty, ignoring case.
func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range Difficulties {
		if strings.EqualFold(strings.TrimSpace(s), string(d)) {
			return d, nil
		}
	}
	return "", ErrUnknownDifficulty
}

// QuestionType tells where a question comes from.
type QuestionType string

const (
	QuestionTypeBank QuestionType = "QuestionBank" // authored for the question bank
	QuestionTypePYQ  QuestionType = "PYQ"          // previous year question, carries an exam year
)

// QuestionTypes lists all question types.
var QuestionTypes = []QuestionType{QuestionTypeBank, QuestionTypePYQ}

// ParseQuestionType converts user input into a QuestionType.
// Spaces and case are ignored, so "Question Bank" and "questionbank" both parse.
func ParseQuestionType(s string) (QuestionType, error) {
	norm := strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	for _, t := range QuestionTypes {
		if strings.EqualFold(norm, string(t)) {
			return t, nil
		}
	}
	if strings.EqualFold(norm, "bank") {
		return QuestionTypeBank, nil
	}
	return "", ErrUnknownQuestionType
}

// Label identifies one of the four answer options.
type Label string

const (
	LabelA Label = "A"
	LabelB Label = "B"
	LabelC Label = "C"
	LabelD Label = "D"
)

// Labels lists option labels in display order.
var Labels = []Label{LabelA, LabelB, LabelC, LabelD}

// ParseLabel converts user input ("b", " C ") into a Label.
func ParseLabel(s string) (Label, error) {
	for _, l := range Labels {
		if strings.EqualFold(strings.TrimSpace(s), string(l)) {
			return l, nil
		}
	}
	return "", ErrUnknownLabel
}
