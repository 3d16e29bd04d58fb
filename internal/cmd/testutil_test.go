package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

const testCatalogCSV = `scheme_name,state_name,scheme_url,details,eligibility
Kisan Samman,Bihar,https://example.gov.in/kisan,Support for farmers,"[""Age between 18-60 years"",""Applicant must be a farmer""]"
Widow Pension,Bihar,https://example.gov.in/widow,Monthly pension for widows,"[""Women only"",""Age above 40 years""]"
Student Scholarship,Jharkhand,,Scholarship for students,"[""Must be a student"",""Age 16 to 30 years""]"
`

const degradedCatalogCSV = `scheme_name,state_name,details,eligibility
Vague Scheme,Bihar,Support,"[""Annual family income criteria apply""]"
`

const testQuestionnaireYAML = `title: Short test questionnaire
sections:
  - id: basics
    name: Basics
    order: 1
    questions:
      - id: age
        prompt: How old are you?
        type: number
      - id: occupation
        prompt: What is your occupation?
        type: text
        required: false
  - id: income
    name: Income
    order: 2
    questions:
      - id: annual_income
        prompt: Annual family income in rupees?
        type: number
        required: false
`

// writeTestFile writes contents into a fresh temp dir and returns the path.
func writeTestFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	writeFile(t, path, contents)
	return path
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// setTestHome points the scheme finder home at a temp dir so command
// runs never touch the working directory.
func setTestHome(t *testing.T) {
	t.Helper()
	t.Setenv("SCHEMEFINDER_HOME", t.TempDir())
}
