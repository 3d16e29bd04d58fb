package models

import "strings"

// FAQ is a question/answer pair attached to a scheme record
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Scheme is a raw government scheme record as supplied by the catalog
// loader. The core treats it as read-only input; structured eligibility
// constraints are derived from it once at load time.
type Scheme struct {
	Name               string   // Scheme name
	State              string   // State the scheme belongs to
	URL                string   // Official scheme page
	Details            string   // Free-text description
	Benefits           []string // Benefit lines
	Eligibility        []string // Free-text eligibility clauses
	ApplicationProcess []string // How to apply
	DocumentsRequired  []string // Required documents
	FAQs               []FAQ    // Frequently asked questions
}

// EligibilityText joins all eligibility clauses into one lower-cased string
// for pattern extraction
func (s *Scheme) EligibilityText() string {
	return strings.ToLower(strings.Join(s.Eligibility, " "))
}

// SearchText joins the scheme name and details into one lower-cased string
// for keyword extraction
func (s *Scheme) SearchText() string {
	return strings.ToLower(s.Name + " " + s.Details)
}
