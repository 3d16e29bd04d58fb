package questionnaire

import (
	"strings"
	"testing"

	"github.com/Anujchouhan001/GovernmentScheme/internal/models"
)

func TestDefault_LoadsEmbeddedQuestionnaire(t *testing.T) {
	sections, err := Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}
	if len(sections) != 10 {
		t.Fatalf("expected 10 sections, got %d", len(sections))
	}
	if sections[0].ID != "section_a" {
		t.Errorf("expected section_a first, got %s", sections[0].ID)
	}

	// The embedded definition must produce a startable flow
	flow, err := NewFlow(sections)
	if err != nil {
		t.Fatalf("embedded questionnaire cannot start: %v", err)
	}
	view, ok := flow.CurrentSectionView()
	if !ok || view.ID != "section_a" {
		t.Errorf("expected section_a current, got %+v", view)
	}
}

func TestDefault_RequiredDefaultsTrue(t *testing.T) {
	sections, err := Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}

	var membershipYears, age *models.Question
	for i := range sections {
		for j := range sections[i].Questions {
			q := &sections[i].Questions[j]
			switch q.ID {
			case "bbocwwb_membership_years":
				membershipYears = q
			case "age":
				age = q
			}
		}
	}
	if age == nil || !age.Required {
		t.Error("age should default to required")
	}
	if membershipYears == nil || membershipYears.Required {
		t.Error("bbocwwb_membership_years is declared optional")
	}
}

func TestLoad_ValidDefinition(t *testing.T) {
	const def = `
sections:
  - id: s1
    name: First
    order: 1
    questions:
      - id: q1
        prompt: Pick one
        type: select
        options: [a, b]
`
	sections, err := Load(strings.NewReader(def))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(sections) != 1 || sections[0].Questions[0].Type != models.QuestionSelect {
		t.Errorf("unexpected sections: %+v", sections)
	}
}

func TestLoad_RejectsBadDefinitions(t *testing.T) {
	tests := []struct {
		name string
		def  string
	}{
		{
			name: "no sections",
			def:  "title: empty\n",
		},
		{
			name: "select without options",
			def: `
sections:
  - id: s1
    name: First
    order: 1
    questions:
      - id: q1
        prompt: Pick one
        type: select
`,
		},
		{
			name: "unknown question type",
			def: `
sections:
  - id: s1
    name: First
    order: 1
    questions:
      - id: q1
        prompt: Hmm
        type: multi_select
`,
		},
		{
			name: "duplicate section ids",
			def: `
sections:
  - id: s1
    name: First
    order: 1
    questions:
      - {id: q1, prompt: A, type: text}
  - id: s1
    name: Second
    order: 2
    questions:
      - {id: q2, prompt: B, type: text}
`,
		},
		{
			name: "unknown condition operator",
			def: `
sections:
  - id: s1
    name: First
    order: 1
    unlock:
      field: x
      operator: resembles
      value: y
    questions:
      - {id: q1, prompt: A, type: text}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(strings.NewReader(tt.def)); err == nil {
				t.Error("expected definition to be rejected")
			}
		})
	}
}
