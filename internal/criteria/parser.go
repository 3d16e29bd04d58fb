// Package criteria derives structured eligibility constraints from the
// free-text fields of raw scheme records.
//
// Parsing is pure and deterministic and never fails a whole scheme: any
// single field that cannot be extracted degrades to "unconstrained" for that
// field, with the degradation recorded for catalog diagnostics. Degradations
// are never surfaced to the scoring path.
package criteria

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/Anujchouhan001/GovernmentScheme/internal/models"
)

// Degradation records a criterion field that could not be parsed from
// catalog text and fell back to unconstrained. It is a diagnostic for the
// catalog maintainer, not an error.
type Degradation struct {
	Scheme string // Scheme name
	Field  string // Criterion field: age, income, ...
	Reason string // Why the extraction degraded
}

var (
	ageRangeRe = regexp.MustCompile(`(\d+)\s*(?:-|to|and)\s*(\d+)\s*(?:years?)?`)
	// The bare-number form insists on "years" so counts like "2 or more
	// children" are not read as an age floor.
	ageAboveRe   = regexp.MustCompile(`(?:above|over)\s*(\d+)|(\d+)\s*years?\s*(?:or\s+)?(?:above|older|more)`)
	ageBelowRe   = regexp.MustCompile(`(?:below|under|less\s+than|not\s+more\s+than|up\s*to)\s*(\d+)\s*years?`)
	ageSignalRe  = regexp.MustCompile(`\bage[ds]?\b|\byears?\s+old\b|\bage\s+limit\b`)
	anyAgeRe     = regexp.MustCompile(`\b(?:any|all)\s+ages?\b|\bno\s+age\s+(?:limit|bar)\b`)
	incomeRe     = regexp.MustCompile(`(?:₹|\brs\.?|\brupees\b|\binr\b)\s*(\d+(?:,\d+)*(?:\.\d+)?)\s*(lakhs?|lacs?|crores?)?`)
	femaleRe     = regexp.MustCompile(`\b(?:female\s*(?:only|applicants?)|women\s+only|for\s+women|widow)\b`)
	maleRe       = regexp.MustCompile(`\bmale\s*(?:only|applicants?)\b`)
	bplRe        = regexp.MustCompile(`\bbpl\b|below\s+poverty\s+line|ultra.?poor`)
	disabilityRe = regexp.MustCompile(`\bdisabilit|divyangjan|differently\s+abled`)
)

// categoryPhrases maps catalog text phrases to canonical category tokens
var categoryPhrases = map[string]string{
	"scheduled caste":             "sc",
	"scheduled tribe":             "st",
	"backward class":              "bc",
	"extremely backward":          "ebc",
	"general":                     "general",
	"ews":                         "ews",
	"economically weaker section": "ews",
	"minority":                    "minority",
}

// occupationPhrases maps catalog text phrases to occupation keywords used
// for substring matching against the user's stated occupation
var occupationPhrases = map[string]string{
	"farmer":              "farmer",
	"student":             "student",
	"construction worker": "construction worker",
	"worker":              "worker",
	"entrepreneur":        "entrepreneur",
	"business":            "business",
	"fisherman":           "fisherman",
	"artisan":             "artisan",
	"craftsman":           "artisan",
}

// schemeKeywords are domain terms extracted from the scheme name and details
// for free-text matching against user answers
var schemeKeywords = []string{
	"kisan", "krishi", "farmer", "agriculture", "horticulture",
	"student", "scholarship", "education", "school",
	"women", "female", "girl", "widow",
	"divyangjan", "disability", "handicapped",
	"startup", "entrepreneur", "business",
	"pension", "welfare", "social security",
	"marriage", "vivah",
	"fisheries", "matsya", "fish",
	"land", "awas", "housing",
}

// educationTerms picked up from eligibility text into the keyword set
var educationTerms = []string{
	"10th", "12th", "graduate", "post-graduate", "iti", "polytechnic", "diploma",
}

// Parse derives eligibility criteria from a raw scheme record. The input is
// never mutated; criteria default to unconstrained wherever extraction fails
// and each such fallback is reported as a Degradation.
func Parse(scheme *models.Scheme) (models.Criteria, []Degradation) {
	c := models.UnconstrainedCriteria()
	var degradations []Degradation
	degrade := func(field, reason string) {
		degradations = append(degradations, Degradation{Scheme: scheme.Name, Field: field, Reason: reason})
	}

	text := scheme.EligibilityText()

	// Age
	if min, max, ok := ParseAgeRange(text); ok {
		c.AgeMin, c.AgeMax = min, max
	} else if ageSignalRe.MatchString(text) && !anyAgeRe.MatchString(text) {
		degrade("age", "age mentioned but no range recognized")
	}

	// Income ceiling
	if ceiling, ok := ParseIncomeCeiling(text); ok {
		c.IncomeMax = &ceiling
	} else if strings.Contains(text, "income") {
		degrade("income", "income mentioned but no amount recognized")
	}

	// Gender
	switch {
	case femaleRe.MatchString(text):
		c.Genders = []string{"female"}
	case maleRe.MatchString(text):
		c.Genders = []string{"male"}
	}

	// Categories
	for _, phrase := range sortedKeys(categoryPhrases) {
		token := categoryPhrases[phrase]
		if strings.Contains(text, phrase) && !contains(c.Categories, token) {
			c.Categories = append(c.Categories, token)
		}
	}

	// Occupations
	for _, phrase := range sortedKeys(occupationPhrases) {
		keyword := occupationPhrases[phrase]
		if strings.Contains(text, phrase) && !contains(c.OccupationKeywords, keyword) {
			c.OccupationKeywords = append(c.OccupationKeywords, keyword)
		}
	}

	// BPL and disability requirements
	if bplRe.MatchString(text) {
		required := true
		c.BPLRequired = &required
	}
	if disabilityRe.MatchString(text) {
		required := true
		c.DisabilityRequired = &required
	}

	// Keywords from name + details, plus education terms from eligibility
	searchText := scheme.SearchText()
	for _, kw := range schemeKeywords {
		if strings.Contains(searchText, kw) && !contains(c.OtherKeywords, kw) {
			c.OtherKeywords = append(c.OtherKeywords, kw)
		}
	}
	for _, term := range educationTerms {
		if strings.Contains(text, term) && !contains(c.OtherKeywords, term) {
			c.OtherKeywords = append(c.OtherKeywords, term)
		}
	}

	return c, degradations
}

// ParseAgeRange extracts an inclusive age range from free text.
// Recognized forms: "18-60", "18 to 60 years", "between 18 and 60",
// "above 60", "60 years or above", "below 18", "up to 18 years",
// "any age". Returns ok=false when nothing is recognized; callers keep the
// unconstrained default [0, NoAgeLimit).
func ParseAgeRange(text string) (min, max int, ok bool) {
	text = strings.ToLower(text)

	if anyAgeRe.MatchString(text) {
		return 0, models.NoAgeLimit, true
	}
	if m := ageRangeRe.FindStringSubmatch(text); m != nil {
		lo, _ := strconv.Atoi(m[1])
		hi, _ := strconv.Atoi(m[2])
		if lo <= hi && plausibleAge(lo) && plausibleAge(hi) {
			return lo, hi, true
		}
	}
	if m := ageAboveRe.FindStringSubmatch(text); m != nil {
		raw := m[1]
		if raw == "" {
			raw = m[2]
		}
		lo, _ := strconv.Atoi(raw)
		if plausibleAge(lo) {
			return lo, models.NoAgeLimit, true
		}
	}
	if m := ageBelowRe.FindStringSubmatch(text); m != nil {
		hi, _ := strconv.Atoi(m[1])
		if plausibleAge(hi) {
			return 0, hi, true
		}
	}
	return 0, 0, false
}

// ParseIncomeCeiling extracts an annual income ceiling in rupees from free
// text with currency markers and optional magnitude suffixes ("1.5 lakh",
// "₹60,000"). The first amount found is taken as the ceiling, mirroring how
// catalog eligibility clauses are written.
func ParseIncomeCeiling(text string) (float64, bool) {
	m := incomeRe.FindStringSubmatch(strings.ToLower(text))
	if m == nil {
		return 0, false
	}
	amount, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return 0, false
	}
	switch {
	case strings.HasPrefix(m[2], "lakh"), strings.HasPrefix(m[2], "lac"):
		amount *= 100000
	case strings.HasPrefix(m[2], "crore"):
		amount *= 10000000
	}
	return amount, true
}

// ParseList tokenizes a comma- or slash-separated list field, normalizing
// case and whitespace. The literal tokens "all" and "any" (case-insensitive)
// mean unconstrained, represented as an empty set.
func ParseList(raw string) []string {
	var tokens []string
	for _, part := range strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == '/' }) {
		token := strings.ToLower(strings.TrimSpace(part))
		if token == "" {
			continue
		}
		if token == "all" || token == "any" {
			return nil
		}
		if !contains(tokens, token) {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// plausibleAge filters out years and amounts the age regexes can latch onto
func plausibleAge(n int) bool {
	return n >= 0 && n <= 120
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// sortedKeys keeps map iteration deterministic so parsed criteria are
// byte-identical run to run
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
