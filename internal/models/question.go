package models

import (
	"errors"
	"fmt"
)

// QuestionType identifies how a question is asked and answered
type QuestionType string

// Supported question types
const (
	QuestionText   QuestionType = "text"
	QuestionNumber QuestionType = "number"
	QuestionYesNo  QuestionType = "yes_no"
	QuestionSelect QuestionType = "select"
)

// Question is a single question within a section. Immutable once defined.
type Question struct {
	ID        string       // Unique question id; doubles as the field name for answers
	Prompt    string       // Text shown to the user
	Type      QuestionType // text, number, yes_no or select
	Options   []string     // Ordered choices, required iff Type is select
	Required  bool         // Whether an answer must be supplied when visible
	Condition *Condition   // Optional intra-section visibility condition (nil = always shown)
}

// Validate checks that the question definition is well formed
func (q *Question) Validate() error {
	if q.ID == "" {
		return errors.New("question id is required")
	}
	if q.Prompt == "" {
		return fmt.Errorf("question %s: prompt is required", q.ID)
	}
	switch q.Type {
	case QuestionText, QuestionNumber, QuestionYesNo:
		if len(q.Options) > 0 {
			return fmt.Errorf("question %s: options are only valid for select questions", q.ID)
		}
	case QuestionSelect:
		if len(q.Options) == 0 {
			return fmt.Errorf("question %s: select questions require options", q.ID)
		}
	default:
		return fmt.Errorf("question %s: invalid type %q", q.ID, q.Type)
	}
	if q.Condition != nil {
		if err := q.Condition.Validate(); err != nil {
			return fmt.Errorf("question %s: %w", q.ID, err)
		}
	}
	return nil
}

// AcceptsValue reports whether the value is a well-typed answer for this question.
// Select answers must be one of the declared options.
func (q *Question) AcceptsValue(v FieldValue) bool {
	switch q.Type {
	case QuestionNumber:
		return v.Kind == KindNumber
	case QuestionYesNo:
		return v.Kind == KindBool
	case QuestionText:
		return v.Kind == KindText && v.Text != ""
	case QuestionSelect:
		if v.Kind != KindText {
			return false
		}
		for _, opt := range q.Options {
			if opt == v.Text {
				return true
			}
		}
		return false
	}
	return false
}
