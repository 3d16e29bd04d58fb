package catalog

import (
	"strings"
	"testing"
)

const testCatalogCSV = `scheme_name,state_name,scheme_url,details,benefits,eligibility,application_process,documents_required,faqs
Mukhyamantri Kisan Sahayata Yojana,Bihar,https://example.gov.in/kisan,Financial assistance for farmers affected by crop loss,"[""₹3500 per affected farmer""]","[""Applicant must be aged 18 to 60 years"",""Annual family income below ₹60,000"",""Must be a farmer""]","[""Apply online at the DBT portal""]","[""Aadhaar card"",""Land records""]","[{""question"":""Who can apply?"",""answer"":""Farmers of Bihar""}]"
Widow Pension Scheme,Bihar,https://example.gov.in/widow,Monthly pension for widows,"First benefit|Second benefit","For women only, widow aged above 40","Apply at block office","Death certificate|Aadhaar card",
Post-Matric Scholarship,Bihar,https://example.gov.in/scholarship,Scholarship for students pursuing higher education,"[""Tuition fee reimbursement""]","[""Scheduled Caste and Scheduled Tribe students"",""Must have passed 12th""]","[""Apply via scholarship portal""]","[""Caste certificate""]",
`

func TestRead_LoadsAllRows(t *testing.T) {
	c, err := Read(strings.NewReader(testCatalogCSV), nil)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if c.Len() != 3 {
		t.Fatalf("expected 3 schemes, got %d", c.Len())
	}

	first := c.Entries()[0]
	if first.Scheme.Name != "Mukhyamantri Kisan Sahayata Yojana" {
		t.Errorf("unexpected first scheme: %q", first.Scheme.Name)
	}
	if first.Index != 0 {
		t.Errorf("first entry index = %d, expected 0", first.Index)
	}
	if len(first.Scheme.Eligibility) != 3 {
		t.Errorf("expected 3 eligibility clauses, got %v", first.Scheme.Eligibility)
	}
	if len(first.Scheme.FAQs) != 1 || first.Scheme.FAQs[0].Question != "Who can apply?" {
		t.Errorf("FAQ not parsed: %+v", first.Scheme.FAQs)
	}
}

func TestRead_CriteriaMaterializedAtLoad(t *testing.T) {
	c, err := Read(strings.NewReader(testCatalogCSV), nil)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	kisan := c.Entries()[0].Criteria
	if kisan.AgeMin != 18 || kisan.AgeMax != 60 {
		t.Errorf("kisan age = [%d, %d], expected [18, 60]", kisan.AgeMin, kisan.AgeMax)
	}
	if kisan.IncomeMax == nil || *kisan.IncomeMax != 60000 {
		t.Errorf("kisan income ceiling = %v, expected 60000", kisan.IncomeMax)
	}

	widow := c.Entries()[1].Criteria
	if len(widow.Genders) != 1 || widow.Genders[0] != "female" {
		t.Errorf("widow genders = %v, expected [female]", widow.Genders)
	}
	if widow.AgeMin != 40 {
		t.Errorf("widow age min = %d, expected 40", widow.AgeMin)
	}
}

func TestRead_PipeSeparatedFallback(t *testing.T) {
	c, err := Read(strings.NewReader(testCatalogCSV), nil)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	widow := c.Entries()[1].Scheme
	if len(widow.Benefits) != 2 || widow.Benefits[0] != "First benefit" {
		t.Errorf("pipe-separated benefits not parsed: %v", widow.Benefits)
	}
	if len(widow.DocumentsRequired) != 2 {
		t.Errorf("pipe-separated documents not parsed: %v", widow.DocumentsRequired)
	}
}

func TestRead_SkipsBadRowsKeepsRest(t *testing.T) {
	csv := "scheme_name,state_name\n" +
		",Bihar\n" + // missing name
		"Good Scheme,Bihar\n"
	c, err := Read(strings.NewReader(csv), nil)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 scheme after skipping bad row, got %d", c.Len())
	}
	if c.Entries()[0].Scheme.Name != "Good Scheme" {
		t.Errorf("wrong surviving scheme: %q", c.Entries()[0].Scheme.Name)
	}
}

func TestRead_EmptyCatalogIsError(t *testing.T) {
	if _, err := Read(strings.NewReader(""), nil); err == nil {
		t.Error("expected error for empty input")
	}
	if _, err := Read(strings.NewReader("scheme_name,state_name\n"), nil); err == nil {
		t.Error("expected error for header-only catalog")
	}
	if _, err := Read(strings.NewReader("scheme_name\n,\n"), nil); err == nil {
		t.Error("expected error when every row is unusable")
	}
}

func TestRead_MissingNameColumnIsError(t *testing.T) {
	if _, err := Read(strings.NewReader("title,state\nX,Bihar\n"), nil); err == nil {
		t.Error("expected error for header without scheme_name")
	}
}

func TestSchemeByName(t *testing.T) {
	c, err := Read(strings.NewReader(testCatalogCSV), nil)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	e, ok := c.SchemeByName("widow pension scheme")
	if !ok {
		t.Fatal("case-insensitive lookup failed")
	}
	if e.Scheme.Name != "Widow Pension Scheme" {
		t.Errorf("wrong scheme: %q", e.Scheme.Name)
	}

	if _, ok := c.SchemeByName("No Such Scheme"); ok {
		t.Error("lookup of unknown scheme should report not found")
	}
}

func TestFilterByStateAndStates(t *testing.T) {
	csv := "scheme_name,state_name\nA,Bihar\nB,Kerala\nC,bihar\n"
	c, err := Read(strings.NewReader(csv), nil)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	bihar := c.FilterByState("BIHAR")
	if len(bihar) != 2 {
		t.Errorf("expected 2 Bihar schemes, got %d", len(bihar))
	}

	states := c.States()
	if len(states) != 3 {
		t.Errorf("States() = %v", states)
	}
}

func TestStatistics(t *testing.T) {
	c, err := Read(strings.NewReader(testCatalogCSV), nil)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	stats := c.Statistics()
	if stats.TotalSchemes != 3 {
		t.Errorf("TotalSchemes = %d", stats.TotalSchemes)
	}
	if stats.ByState["Bihar"] != 3 {
		t.Errorf("ByState = %v", stats.ByState)
	}
	if stats.ByCategory["sc"] != 1 || stats.ByCategory["st"] != 1 {
		t.Errorf("ByCategory = %v", stats.ByCategory)
	}
	if stats.ByGender["female"] != 1 || stats.ByGender["all"] != 2 {
		t.Errorf("ByGender = %v", stats.ByGender)
	}
	if stats.WithAgeLimit != 2 {
		t.Errorf("WithAgeLimit = %d, expected 2", stats.WithAgeLimit)
	}
	if stats.WithIncomeLimit != 1 {
		t.Errorf("WithIncomeLimit = %d, expected 1", stats.WithIncomeLimit)
	}
}

type capturingLogger struct {
	warns []string
	infos []string
}

func (l *capturingLogger) LogInfo(m string) { l.infos = append(l.infos, m) }
func (l *capturingLogger) LogWarn(m string) { l.warns = append(l.warns, m) }

func TestRead_WarnsOnSkippedRows(t *testing.T) {
	log := &capturingLogger{}
	csv := "scheme_name,state_name\n,Bihar\nGood Scheme,Bihar\n"
	if _, err := Read(strings.NewReader(csv), log); err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(log.warns) != 1 {
		t.Errorf("expected 1 warning, got %v", log.warns)
	}
	if len(log.infos) != 1 {
		t.Errorf("expected load summary info, got %v", log.infos)
	}
}
