package models

import (
	"errors"
	"fmt"
)

// Section is an ordered group of questions gated by an unlock condition.
// Sections are defined once at questionnaire construction and never mutated
// at runtime; all mutable progress lives in the questionnaire flow state.
type Section struct {
	ID          string     // Unique section id
	Name        string     // Display name
	Description string     // Short introduction shown before the questions
	Order       int        // Default presentation sequence
	Unlock      *Condition // Unlock condition over the field store (nil = always unlocked)
	Questions   []Question // Ordered questions
}

// Validate checks the section definition and every question in it
func (s *Section) Validate() error {
	if s.ID == "" {
		return errors.New("section id is required")
	}
	if s.Name == "" {
		return fmt.Errorf("section %s: name is required", s.ID)
	}
	if len(s.Questions) == 0 {
		return fmt.Errorf("section %s: at least one question is required", s.ID)
	}
	if s.Unlock != nil {
		if err := s.Unlock.Validate(); err != nil {
			return fmt.Errorf("section %s unlock: %w", s.ID, err)
		}
	}
	seen := make(map[string]bool)
	for i := range s.Questions {
		q := &s.Questions[i]
		if err := q.Validate(); err != nil {
			return fmt.Errorf("section %s: %w", s.ID, err)
		}
		if seen[q.ID] {
			return fmt.Errorf("section %s: duplicate question id %s", s.ID, q.ID)
		}
		seen[q.ID] = true
	}
	return nil
}
