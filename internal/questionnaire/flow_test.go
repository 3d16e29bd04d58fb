package questionnaire

import (
	"errors"
	"testing"

	"github.com/Anujchouhan001/GovernmentScheme/internal/models"
)

// testSections is a three-section graph: basics always unlocked, farm
// unlocked for farmers, wrapup always unlocked.
func testSections() []models.Section {
	return []models.Section{
		{
			ID:    "basics",
			Name:  "Basics",
			Order: 1,
			Questions: []models.Question{
				{ID: "age", Prompt: "Age?", Type: models.QuestionNumber, Required: true},
				{ID: "occupation", Prompt: "Occupation?", Type: models.QuestionSelect, Options: []string{"Farmer", "Other"}, Required: true},
				{
					ID: "is_farmer", Prompt: "Farmer anyway?", Type: models.QuestionYesNo, Required: true,
					Condition: &models.Condition{Field: "occupation", Operator: models.OpNotEquals, Value: "Farmer"},
				},
			},
		},
		{
			ID:    "farm",
			Name:  "Farm",
			Order: 2,
			Unlock: &models.Condition{Any: []models.Condition{
				{Field: "occupation", Operator: models.OpEquals, Value: "Farmer"},
				{Field: "is_farmer", Operator: models.OpEquals, Value: true},
			}},
			Questions: []models.Question{
				{ID: "land_acres", Prompt: "Land?", Type: models.QuestionNumber, Required: true},
			},
		},
		{
			ID:    "wrapup",
			Name:  "Wrap Up",
			Order: 3,
			Questions: []models.Question{
				{ID: "notes", Prompt: "Anything else?", Type: models.QuestionText, Required: false},
			},
		},
	}
}

func TestNewFlow_FirstUnlockedSectionIsCurrent(t *testing.T) {
	flow, err := NewFlow(testSections())
	if err != nil {
		t.Fatalf("NewFlow failed: %v", err)
	}
	view, ok := flow.CurrentSectionView()
	if !ok {
		t.Fatal("expected a current section")
	}
	if view.ID != "basics" {
		t.Errorf("expected basics first, got %s", view.ID)
	}
}

func TestNewFlow_NoInitialSection(t *testing.T) {
	sections := []models.Section{
		{
			ID: "gated", Name: "Gated", Order: 1,
			Unlock:    &models.Condition{Field: "never", Operator: models.OpEquals, Value: true},
			Questions: []models.Question{{ID: "q", Prompt: "?", Type: models.QuestionText}},
		},
	}
	_, err := NewFlow(sections)
	if !errors.Is(err, ErrNoInitialSection) {
		t.Errorf("expected ErrNoInitialSection, got %v", err)
	}
}

func TestFlow_ViewFiltersConditionalQuestions(t *testing.T) {
	flow, err := NewFlow(testSections())
	if err != nil {
		t.Fatalf("NewFlow failed: %v", err)
	}

	// Before occupation is answered, is_farmer's not_equals condition fails
	// closed and the question stays hidden.
	view, _ := flow.CurrentSectionView()
	if len(view.Questions) != 2 {
		t.Fatalf("expected 2 visible questions before occupation answered, got %d", len(view.Questions))
	}
	for _, q := range view.Questions {
		if q.ID == "is_farmer" {
			t.Error("is_farmer should be hidden while occupation is unanswered")
		}
	}
}

func TestFlow_SubmitValidationFailure(t *testing.T) {
	flow, err := NewFlow(testSections())
	if err != nil {
		t.Fatalf("NewFlow failed: %v", err)
	}

	err = flow.SubmitSection("basics", map[string]models.FieldValue{
		"age": models.NumberValue(30),
		// occupation missing, and its absence also hides is_farmer... but
		// occupation itself is required and visible
	})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.SectionID != "basics" {
		t.Errorf("expected section basics, got %s", verr.SectionID)
	}
	found := false
	for _, issue := range verr.Issues {
		if issue.QuestionID == "occupation" {
			found = true
		}
		if issue.QuestionID == "age" {
			t.Error("age was answered, should not be an issue")
		}
	}
	if !found {
		t.Error("expected occupation in validation issues")
	}

	// State unchanged: still on basics, nothing recorded
	if flow.Fields().Len() != 0 {
		t.Error("failed submission must not modify the field store")
	}
	view, _ := flow.CurrentSectionView()
	if view.ID != "basics" {
		t.Errorf("expected to stay on basics, got %s", view.ID)
	}
}

func TestFlow_SubmitTypeMismatch(t *testing.T) {
	flow, err := NewFlow(testSections())
	if err != nil {
		t.Fatalf("NewFlow failed: %v", err)
	}

	err = flow.SubmitSection("basics", map[string]models.FieldValue{
		"age":        models.TextValue("thirty"),
		"occupation": models.TextValue("Farmer"),
	})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Issues) != 1 || verr.Issues[0].QuestionID != "age" {
		t.Errorf("expected single issue for age, got %+v", verr.Issues)
	}
}

func TestFlow_IntraSectionConditionUsesSubmittedAnswers(t *testing.T) {
	flow, err := NewFlow(testSections())
	if err != nil {
		t.Fatalf("NewFlow failed: %v", err)
	}

	// occupation = Other makes is_farmer visible and required within the
	// same submission
	err = flow.SubmitSection("basics", map[string]models.FieldValue{
		"age":        models.NumberValue(30),
		"occupation": models.TextValue("Other"),
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for hidden-then-visible is_farmer, got %v", err)
	}
	if verr.Issues[0].QuestionID != "is_farmer" {
		t.Errorf("expected is_farmer issue, got %+v", verr.Issues)
	}
}

func TestFlow_UnlockRecomputedOnSubmission(t *testing.T) {
	flow, err := NewFlow(testSections())
	if err != nil {
		t.Fatalf("NewFlow failed: %v", err)
	}

	// Non-farmer: farm section never unlocks, wrapup comes next
	err = flow.SubmitSection("basics", map[string]models.FieldValue{
		"age":        models.NumberValue(30),
		"occupation": models.TextValue("Other"),
		"is_farmer":  models.BoolValue(false),
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	view, ok := flow.CurrentSectionView()
	if !ok || view.ID != "wrapup" {
		t.Errorf("expected wrapup for non-farmer, got %+v", view)
	}
}

func TestFlow_FarmerUnlocksFarmSection(t *testing.T) {
	flow, err := NewFlow(testSections())
	if err != nil {
		t.Fatalf("NewFlow failed: %v", err)
	}

	if err := flow.SubmitSection("basics", map[string]models.FieldValue{
		"age":        models.NumberValue(30),
		"occupation": models.TextValue("Farmer"),
	}); err != nil {
		t.Fatalf("submit basics failed: %v", err)
	}

	view, _ := flow.CurrentSectionView()
	if view.ID != "farm" {
		t.Fatalf("expected farm section for farmer, got %s", view.ID)
	}

	if err := flow.SubmitSection("farm", map[string]models.FieldValue{
		"land_acres": models.NumberValue(2.5),
	}); err != nil {
		t.Fatalf("submit farm failed: %v", err)
	}

	if err := flow.SubmitSection("wrapup", map[string]models.FieldValue{}); err != nil {
		t.Fatalf("submit wrapup failed: %v", err)
	}

	if !flow.Finished() {
		t.Error("expected flow to be finished")
	}
}

// Completion is monotonic: completed sections never reopen even when their
// unlock condition would no longer hold against the field store.
func TestFlow_CompletionIsSticky(t *testing.T) {
	flow, err := NewFlow(testSections())
	if err != nil {
		t.Fatalf("NewFlow failed: %v", err)
	}

	answers := map[string]models.FieldValue{
		"age":        models.NumberValue(30),
		"occupation": models.TextValue("Farmer"),
	}
	if err := flow.SubmitSection("basics", answers); err != nil {
		t.Fatalf("submit basics failed: %v", err)
	}

	// Re-submitting a completed section is a no-op, not an error
	if err := flow.SubmitSection("basics", answers); err != nil {
		t.Fatalf("re-submit of completed section should be no-op, got %v", err)
	}

	state := flow.State()
	if len(state.Completed) != 1 || state.Completed[0] != "basics" {
		t.Errorf("expected completed=[basics], got %v", state.Completed)
	}
}

func TestFlow_SubmitWrongSection(t *testing.T) {
	flow, err := NewFlow(testSections())
	if err != nil {
		t.Fatalf("NewFlow failed: %v", err)
	}
	if err := flow.SubmitSection("wrapup", nil); err == nil {
		t.Error("submitting a non-current section should fail")
	}
	if err := flow.SubmitSection("missing", nil); err == nil {
		t.Error("submitting an unknown section should fail")
	}
}

func TestFlow_FinishedIsIdempotent(t *testing.T) {
	flow, err := NewFlow(testSections())
	if err != nil {
		t.Fatalf("NewFlow failed: %v", err)
	}

	submissions := 0
	for !flow.Finished() {
		view, ok := flow.CurrentSectionView()
		if !ok {
			t.Fatal("unfinished flow must have a current section")
		}
		answers := make(map[string]models.FieldValue)
		for _, q := range view.Questions {
			switch q.Type {
			case models.QuestionNumber:
				answers[q.ID] = models.NumberValue(30)
			case models.QuestionYesNo:
				answers[q.ID] = models.BoolValue(false)
			case models.QuestionSelect:
				answers[q.ID] = models.TextValue(q.Options[0])
			default:
				answers[q.ID] = models.TextValue("n/a")
			}
		}
		if err := flow.SubmitSection(view.ID, answers); err != nil {
			t.Fatalf("submit %s failed: %v", view.ID, err)
		}
		submissions++
		if submissions > len(testSections()) {
			t.Fatal("flow did not finish within the section count")
		}
	}

	stateBefore := flow.State()
	if err := flow.SubmitSection("basics", nil); err != nil {
		t.Errorf("submit after finished should be a no-op, got %v", err)
	}
	stateAfter := flow.State()
	if stateAfter.Current != stateBefore.Current || len(stateAfter.Completed) != len(stateBefore.Completed) {
		t.Error("submit after finished must not change state")
	}
}

func TestFlow_RestoreResumesSession(t *testing.T) {
	flow, err := NewFlow(testSections())
	if err != nil {
		t.Fatalf("NewFlow failed: %v", err)
	}
	if err := flow.SubmitSection("basics", map[string]models.FieldValue{
		"age":        models.NumberValue(30),
		"occupation": models.TextValue("Farmer"),
	}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	restored, err := Restore(testSections(), flow.State())
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	view, ok := restored.CurrentSectionView()
	if !ok || view.ID != "farm" {
		t.Errorf("restored flow should resume at farm, got %+v", view)
	}
	if age, ok := restored.Fields().Number("age"); !ok || age != 30 {
		t.Error("restored flow lost field values")
	}

	p := restored.Progress()
	if p.CompletedSections != 1 || p.TotalSections != 3 {
		t.Errorf("unexpected progress %+v", p)
	}
}
