// Package scoring ranks catalog schemes against a completed field store
// using a weighted criterion table.
//
// Scoring is all-or-nothing per criterion: a satisfied criterion awards
// its full weight, an unsatisfied one awards zero, and no scheme is ever
// rejected outright. An unconstrained criterion is trivially satisfied
// and awards its weight silently, with neither a matched nor an
// unmatched reason. Scoring never mutates its inputs and is
// deterministic: the same fields and catalog produce the same ranked
// output on every run.
package scoring

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/Anujchouhan001/GovernmentScheme/internal/catalog"
	"github.com/Anujchouhan001/GovernmentScheme/internal/models"
)

// Weights is the criterion weight table. The weights must sum to 100 so
// that scores read as a percentage.
type Weights struct {
	Age        float64 `yaml:"age" json:"age"`
	Gender     float64 `yaml:"gender" json:"gender"`
	Category   float64 `yaml:"category" json:"category"`
	Occupation float64 `yaml:"occupation" json:"occupation"`
	Income     float64 `yaml:"income" json:"income"`
	BPL        float64 `yaml:"bpl" json:"bpl"`
	Disability float64 `yaml:"disability" json:"disability"`
	Keyword    float64 `yaml:"keyword" json:"keyword"`
}

// DefaultWeights returns the standard weight table.
func DefaultWeights() Weights {
	return Weights{
		Age:        20,
		Gender:     15,
		Category:   15,
		Occupation: 15,
		Income:     10,
		BPL:        10,
		Disability: 10,
		Keyword:    5,
	}
}

// Total returns the sum of all weights.
func (w Weights) Total() float64 {
	return w.Age + w.Gender + w.Category + w.Occupation + w.Income +
		w.BPL + w.Disability + w.Keyword
}

// Validate checks that the weight table honors the out-of-100 contract.
func (w Weights) Validate() error {
	if w.Age < 0 || w.Gender < 0 || w.Category < 0 || w.Occupation < 0 ||
		w.Income < 0 || w.BPL < 0 || w.Disability < 0 || w.Keyword < 0 {
		return fmt.Errorf("scoring weights must not be negative")
	}
	if total := w.Total(); total != 100 {
		return fmt.Errorf("scoring weights must sum to 100, got %g", total)
	}
	return nil
}

// Engine scores schemes against user answers. Construct with NewEngine;
// the zero value has no weights and scores everything zero.
type Engine struct {
	weights Weights
}

// NewEngine creates an Engine with a validated weight table.
func NewEngine(weights Weights) (*Engine, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	return &Engine{weights: weights}, nil
}

// Score evaluates every catalog entry against the field store, discards
// results below minScore, and returns the rest ordered by score
// descending. Entries with equal scores keep their catalog order.
func (e *Engine) Score(fields *models.FieldStore, entries []catalog.Entry, minScore float64) []models.MatchResult {
	var results []models.MatchResult
	for _, entry := range entries {
		r := e.ScoreScheme(fields, entry)
		if r.Score >= minScore {
			results = append(results, r)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].CatalogIndex < results[j].CatalogIndex
	})
	return results
}

// FindEligibleSchemes returns only the schemes the user is 100% eligible
// for: every constrained criterion satisfied, score exactly the maximum.
func (e *Engine) FindEligibleSchemes(fields *models.FieldStore, entries []catalog.Entry) []models.MatchResult {
	return e.Score(fields, entries, 100)
}

// TopSchemes returns the n best-scoring schemes regardless of threshold.
func (e *Engine) TopSchemes(fields *models.FieldStore, entries []catalog.Entry, n int) []models.MatchResult {
	results := e.Score(fields, entries, 0)
	if n >= 0 && len(results) > n {
		results = results[:n]
	}
	return results
}

// ScoreScheme scores a single scheme. Each satisfied constrained
// criterion appends a matched reason; each unsatisfied constrained
// criterion appends an unmatched reason. A criterion whose answer is
// missing from the field store counts as unsatisfied.
func (e *Engine) ScoreScheme(fields *models.FieldStore, entry catalog.Entry) models.MatchResult {
	r := models.MatchResult{
		Scheme:       entry.Scheme,
		CatalogIndex: entry.Index,
	}
	c := entry.Criteria

	award := func(weight float64, reason string) {
		r.Score += weight
		r.MatchedReasons = append(r.MatchedReasons, reason)
	}
	awardSilent := func(weight float64) {
		r.Score += weight
	}
	miss := func(reason string) {
		r.UnmatchedCriteria = append(r.UnmatchedCriteria, reason)
	}

	// Age
	if !c.AgeConstrained() {
		awardSilent(e.weights.Age)
	} else if age, ok := fields.Number(models.FieldAge); !ok {
		miss(fmt.Sprintf("Age requirement: %s (age not provided)", c.AgeRangeString()))
	} else if int(age) >= c.AgeMin && int(age) <= c.AgeMax {
		award(e.weights.Age, fmt.Sprintf("Age %s is within range %s", formatNumber(age), c.AgeRangeString()))
	} else {
		miss(fmt.Sprintf("Age requirement: %s (your age: %s)", c.AgeRangeString(), formatNumber(age)))
	}

	// Gender
	if len(c.Genders) == 0 {
		awardSilent(e.weights.Gender)
	} else if gender, ok := fields.Text(models.FieldGender); !ok {
		miss(fmt.Sprintf("Gender requirement: %s (gender not provided)", strings.Join(c.Genders, ", ")))
	} else if c.ContainsGender(gender) {
		award(e.weights.Gender, fmt.Sprintf("Gender matches: %s", gender))
	} else {
		miss(fmt.Sprintf("Gender requirement: %s (your gender: %s)", strings.Join(c.Genders, ", "), gender))
	}

	// Category
	if len(c.Categories) == 0 {
		awardSilent(e.weights.Category)
	} else if category, ok := fields.Text(models.FieldCategory); !ok {
		miss(fmt.Sprintf("Category requirement: %s (category not provided)", strings.Join(c.Categories, ", ")))
	} else if categoryMatches(c.Categories, category) {
		award(e.weights.Category, fmt.Sprintf("Category matches: %s", category))
	} else {
		miss(fmt.Sprintf("Category requirement: %s (your category: %s)", strings.Join(c.Categories, ", "), category))
	}

	// Occupation
	if len(c.OccupationKeywords) == 0 {
		awardSilent(e.weights.Occupation)
	} else if occupation, ok := fields.Text(models.FieldOccupation); !ok {
		miss(fmt.Sprintf("Occupation requirement: %s (occupation not provided)", strings.Join(c.OccupationKeywords, ", ")))
	} else if occupationMatches(c.OccupationKeywords, occupation) {
		award(e.weights.Occupation, fmt.Sprintf("Occupation matches: %s", occupation))
	} else {
		miss(fmt.Sprintf("Occupation requirement: %s (your occupation: %s)", strings.Join(c.OccupationKeywords, ", "), occupation))
	}

	// Income
	if c.IncomeMax == nil {
		awardSilent(e.weights.Income)
	} else if income, ok := fields.Number(models.FieldAnnualIncome); !ok {
		miss(fmt.Sprintf("Income limit: ₹%s (income not provided)", formatNumber(*c.IncomeMax)))
	} else if income <= *c.IncomeMax {
		award(e.weights.Income, fmt.Sprintf("Income ₹%s is within limit ₹%s", formatNumber(income), formatNumber(*c.IncomeMax)))
	} else {
		miss(fmt.Sprintf("Income ₹%s exceeds limit ₹%s", formatNumber(income), formatNumber(*c.IncomeMax)))
	}

	// BPL status
	if c.BPLRequired == nil {
		awardSilent(e.weights.BPL)
	} else if isBPL, ok := fields.Bool(models.FieldBPL); ok && isBPL == *c.BPLRequired {
		award(e.weights.BPL, "BPL status matches")
	} else if *c.BPLRequired {
		miss("BPL certificate required")
	} else {
		miss("Scheme is not for BPL cardholders")
	}

	// Disability status
	if c.DisabilityRequired == nil {
		awardSilent(e.weights.Disability)
	} else if hasDisability, ok := fields.Bool(models.FieldDisability); ok && hasDisability == *c.DisabilityRequired {
		award(e.weights.Disability, "Disability status matches")
	} else if *c.DisabilityRequired {
		miss("Disability certificate required")
	} else {
		miss("Scheme is not for persons with disability")
	}

	// Keywords against every free-text answer
	if len(c.OtherKeywords) == 0 {
		awardSilent(e.weights.Keyword)
	} else if matched := matchKeywords(c.OtherKeywords, fields.TextFields()); len(matched) > 0 {
		award(e.weights.Keyword, fmt.Sprintf("Matched keywords: %s", strings.Join(matched, ", ")))
	} else {
		miss(fmt.Sprintf("No keyword match: %s", strings.Join(c.OtherKeywords, ", ")))
	}

	return r
}

// ExplainIneligibility lists the criteria keeping a scheme below a full
// score. An empty result means every constrained criterion is satisfied.
func (e *Engine) ExplainIneligibility(fields *models.FieldStore, entry catalog.Entry) []string {
	r := e.ScoreScheme(fields, entry)
	return r.UnmatchedCriteria
}

// categoryMatches compares criteria tokens against the words of the
// user's category answer, so "SC (Scheduled Caste)" matches the token
// "sc" without substring false positives.
func categoryMatches(allowed []string, userCategory string) bool {
	words := strings.FieldsFunc(strings.ToLower(userCategory), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, token := range allowed {
		for _, w := range words {
			if w == token {
				return true
			}
		}
	}
	return false
}

// occupationMatches reports whether any criteria keyword appears in the
// user's stated occupation, case-insensitive.
func occupationMatches(keywords []string, occupation string) bool {
	occupation = strings.ToLower(occupation)
	for _, kw := range keywords {
		if strings.Contains(occupation, kw) {
			return true
		}
	}
	return false
}

// matchKeywords returns the scheme keywords present in any free-text
// answer, in the keyword set's stable order.
func matchKeywords(keywords []string, textFields map[string]string) []string {
	var matched []string
	for _, kw := range keywords {
		for _, value := range textFields {
			if strings.Contains(strings.ToLower(value), kw) {
				matched = append(matched, kw)
				break
			}
		}
	}
	return matched
}

// formatNumber renders an amount without a trailing fraction for whole
// values ("25", "60000", "1.5")
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
