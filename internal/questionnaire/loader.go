package questionnaire

import (
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Anujchouhan001/GovernmentScheme/internal/models"
)

//go:embed default_questionnaire.yaml
var defaultQuestionnaireYAML []byte

// questionYAML mirrors models.Question for decoding. Required defaults to
// true when omitted, which the struct zero value cannot express directly.
type questionYAML struct {
	ID        string            `yaml:"id"`
	Prompt    string            `yaml:"prompt"`
	Type      string            `yaml:"type"`
	Options   []string          `yaml:"options"`
	Required  *bool             `yaml:"required"`
	Condition *models.Condition `yaml:"condition"`
}

type sectionYAML struct {
	ID          string            `yaml:"id"`
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Order       int               `yaml:"order"`
	Unlock      *models.Condition `yaml:"unlock"`
	Questions   []questionYAML    `yaml:"questions"`
}

type definitionYAML struct {
	Title    string        `yaml:"title"`
	Sections []sectionYAML `yaml:"sections"`
}

// Load reads questionnaire section definitions from YAML and validates them
func Load(r io.Reader) ([]models.Section, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read questionnaire definition: %w", err)
	}
	return parseDefinition(data)
}

// LoadFile loads questionnaire definitions from a YAML file on disk
func LoadFile(path string) ([]models.Section, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read questionnaire file: %w", err)
	}
	sections, err := parseDefinition(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return sections, nil
}

// Default returns the built-in sectioned questionnaire shipped with the
// binary. Panics are impossible here short of a broken build: the embedded
// definition is covered by tests.
func Default() ([]models.Section, error) {
	return parseDefinition(defaultQuestionnaireYAML)
}

func parseDefinition(data []byte) ([]models.Section, error) {
	var def definitionYAML
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse questionnaire YAML: %w", err)
	}
	if len(def.Sections) == 0 {
		return nil, fmt.Errorf("questionnaire defines no sections")
	}

	sections := make([]models.Section, 0, len(def.Sections))
	seen := make(map[string]bool)
	for _, sy := range def.Sections {
		if seen[sy.ID] {
			return nil, fmt.Errorf("duplicate section id %q", sy.ID)
		}
		seen[sy.ID] = true

		section := models.Section{
			ID:          sy.ID,
			Name:        sy.Name,
			Description: sy.Description,
			Order:       sy.Order,
			Unlock:      sy.Unlock,
		}
		for _, qy := range sy.Questions {
			required := true
			if qy.Required != nil {
				required = *qy.Required
			}
			section.Questions = append(section.Questions, models.Question{
				ID:        qy.ID,
				Prompt:    qy.Prompt,
				Type:      models.QuestionType(qy.Type),
				Options:   qy.Options,
				Required:  required,
				Condition: qy.Condition,
			})
		}
		if err := section.Validate(); err != nil {
			return nil, err
		}
		sections = append(sections, section)
	}
	return sections, nil
}
