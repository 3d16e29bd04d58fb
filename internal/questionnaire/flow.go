// Package questionnaire drives the sectioned, conditionally-branching
// questionnaire: which section is current, which questions are visible,
// and when the flow is finished.
package questionnaire

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Anujchouhan001/GovernmentScheme/internal/models"
	"github.com/Anujchouhan001/GovernmentScheme/internal/rules"
)

// ErrNoInitialSection is returned when no section's unlock condition passes
// an empty field store. This is a configuration error, not a runtime state.
var ErrNoInitialSection = errors.New("no section satisfies its unlock condition at start")

// FieldIssue describes a single missing or mistyped answer in a submission
type FieldIssue struct {
	QuestionID string // The offending question id
	Reason     string // "missing required answer" or a type description
}

// ValidationError rejects a section submission. The questionnaire state is
// unchanged when it is returned; the caller re-prompts the same section.
type ValidationError struct {
	SectionID string
	Issues    []FieldIssue
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	ids := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		ids[i] = issue.QuestionID
	}
	return fmt.Sprintf("section %s: invalid answers for: %s", e.SectionID, strings.Join(ids, ", "))
}

// State is the serializable progress of one questionnaire session.
// One State exists per session; sessions share nothing.
type State struct {
	Fields    *models.FieldStore `json:"fields"`
	Completed []string           `json:"completed_sections"`
	Current   string             `json:"current_section"`
}

// SectionView is the current section filtered to the questions whose
// intra-section condition holds against the live field store. Views are
// recomputed on demand, never cached.
type SectionView struct {
	ID          string
	Name        string
	Description string
	Questions   []models.Question
}

// Flow is the questionnaire state machine. Section definitions are immutable
// after construction; all progress lives in the field store, the completed
// set and the current section id.
type Flow struct {
	sections  []models.Section // sorted by Order
	fields    *models.FieldStore
	completed map[string]bool
	order     []string // completed section ids in completion order
	current   string   // empty once finished
	diag      rules.DiagnosticFunc
}

// Option configures a Flow
type Option func(*Flow)

// WithDiagnostics routes malformed-condition reports to the given sink
func WithDiagnostics(diag rules.DiagnosticFunc) Option {
	return func(f *Flow) { f.diag = diag }
}

// NewFlow builds a flow over the given sections. Sections are sorted by
// Order; the first section whose unlock condition passes an empty field
// store becomes current. Returns ErrNoInitialSection if nothing unlocks.
func NewFlow(sections []models.Section, opts ...Option) (*Flow, error) {
	if len(sections) == 0 {
		return nil, errors.New("questionnaire has no sections")
	}

	sorted := make([]models.Section, len(sections))
	copy(sorted, sections)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })

	f := &Flow{
		sections:  sorted,
		fields:    models.NewFieldStore(),
		completed: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(f)
	}

	f.recomputeCurrent()
	if f.current == "" {
		return nil, ErrNoInitialSection
	}
	return f, nil
}

// Restore rebuilds a flow from persisted session state. The stored current
// section is recomputed rather than trusted, so a definition change between
// requests cannot leave the flow pointing at a vanished section.
func Restore(sections []models.Section, state State, opts ...Option) (*Flow, error) {
	f, err := NewFlow(sections, opts...)
	if err != nil {
		return nil, err
	}
	if state.Fields != nil {
		f.fields = state.Fields.Clone()
	}
	for _, id := range state.Completed {
		if !f.completed[id] {
			f.completed[id] = true
			f.order = append(f.order, id)
		}
	}
	f.recomputeCurrent()
	return f, nil
}

// Fields returns the live field store
func (f *Flow) Fields() *models.FieldStore {
	return f.fields
}

// Finished reports whether no locked or pending section remains
func (f *Flow) Finished() bool {
	return f.current == ""
}

// State snapshots the flow for persistence
func (f *Flow) State() State {
	completed := make([]string, len(f.order))
	copy(completed, f.order)
	return State{
		Fields:    f.fields.Clone(),
		Completed: completed,
		Current:   f.current,
	}
}

// CurrentSectionView returns the current section with only its visible
// questions. The second return is false once the flow is finished.
func (f *Flow) CurrentSectionView() (SectionView, bool) {
	if f.current == "" {
		return SectionView{}, false
	}
	section := f.sectionByID(f.current)
	if section == nil {
		return SectionView{}, false
	}

	view := SectionView{
		ID:          section.ID,
		Name:        section.Name,
		Description: section.Description,
	}
	for _, q := range section.Questions {
		if rules.EvaluateWithDiagnostics(q.Condition, f.fields, f.diag) {
			view.Questions = append(view.Questions, q)
		}
	}
	return view, true
}

// SubmitSection validates and records the answers for a section.
//
// Every required question that is visible (its intra-section condition holds
// against the field store merged with the submitted answers) must have a
// well-typed answer; otherwise a *ValidationError listing the offending
// question ids is returned and no state changes.
//
// On success the answers merge into the field store, the section is marked
// completed (completion is sticky: it never reverts, and the section is
// never shown again even if its unlock condition later turns false) and the
// next current section is recomputed. Submitting once the flow is finished,
// or re-submitting a completed section, is a no-op.
func (f *Flow) SubmitSection(sectionID string, answers map[string]models.FieldValue) error {
	if f.current == "" || f.completed[sectionID] {
		return nil
	}
	section := f.sectionByID(sectionID)
	if section == nil {
		return fmt.Errorf("unknown section %q", sectionID)
	}
	if sectionID != f.current {
		return fmt.Errorf("section %q is not the current section (%s)", sectionID, f.current)
	}

	if err := f.validateAnswers(section, answers); err != nil {
		return err
	}

	for _, q := range section.Questions {
		if value, ok := answers[q.ID]; ok {
			f.fields.Set(q.ID, value, section.ID)
		}
	}
	f.completed[section.ID] = true
	f.order = append(f.order, section.ID)
	f.recomputeCurrent()
	return nil
}

// Progress summarizes questionnaire completion for display
type Progress struct {
	TotalSections     int
	CompletedSections int
	CurrentSection    string // display name, empty when finished
	Percent           int
}

// Progress reports how far the session has advanced
func (f *Flow) Progress() Progress {
	p := Progress{
		TotalSections:     len(f.sections),
		CompletedSections: len(f.order),
	}
	if section := f.sectionByID(f.current); section != nil {
		p.CurrentSection = section.Name
	}
	if p.TotalSections > 0 {
		p.Percent = p.CompletedSections * 100 / p.TotalSections
	}
	return p
}

// validateAnswers checks required visible questions and answer types.
// Visibility is evaluated against the field store merged with the submitted
// answers, because intra-section conditions may reference answers from the
// same submission.
func (f *Flow) validateAnswers(section *models.Section, answers map[string]models.FieldValue) error {
	merged := f.fields.Clone()
	for _, q := range section.Questions {
		if value, ok := answers[q.ID]; ok {
			merged.Set(q.ID, value, section.ID)
		}
	}

	var issues []FieldIssue
	for _, q := range section.Questions {
		if !rules.EvaluateWithDiagnostics(q.Condition, merged, f.diag) {
			continue
		}
		value, answered := answers[q.ID]
		if !answered {
			if q.Required {
				issues = append(issues, FieldIssue{QuestionID: q.ID, Reason: "missing required answer"})
			}
			continue
		}
		if !q.AcceptsValue(value) {
			issues = append(issues, FieldIssue{
				QuestionID: q.ID,
				Reason:     fmt.Sprintf("answer does not match question type %s", q.Type),
			})
		}
	}

	if len(issues) > 0 {
		return &ValidationError{SectionID: section.ID, Issues: issues}
	}
	return nil
}

// recomputeCurrent finds the lowest-order section that is not completed and
// whose unlock condition holds against the live field store. Re-evaluated on
// every submission because later sections may newly unlock; completed
// sections are never revisited.
func (f *Flow) recomputeCurrent() {
	for i := range f.sections {
		section := &f.sections[i]
		if f.completed[section.ID] {
			continue
		}
		if rules.EvaluateWithDiagnostics(section.Unlock, f.fields, f.diag) {
			f.current = section.ID
			return
		}
	}
	f.current = ""
}

func (f *Flow) sectionByID(id string) *models.Section {
	for i := range f.sections {
		if f.sections[i].ID == id {
			return &f.sections[i]
		}
	}
	return nil
}
