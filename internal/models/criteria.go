package models

import (
	"fmt"
	"math"
	"strings"
)

// NoAgeLimit is the AgeMax value of a criteria set with no upper age bound
const NoAgeLimit = math.MaxInt32

// Criteria is the structured eligibility constraint set derived from a raw
// scheme record. Derived once per scheme at load time and immutable
// thereafter. Throughout, an empty set means "unconstrained": the criterion
// is trivially satisfied and awards its full weight.
type Criteria struct {
	AgeMin             int      // Inclusive lower age bound (0 = unbounded)
	AgeMax             int      // Inclusive upper age bound (NoAgeLimit = unbounded)
	Genders            []string // Allowed genders, normalized lower-case (empty = all)
	Categories         []string // Allowed social categories, normalized lower-case (empty = all)
	OccupationKeywords []string // Occupation substrings, normalized lower-case (empty = all)
	IncomeMax          *float64 // Annual income ceiling (nil = no ceiling)
	BPLRequired        *bool    // Required BPL card status (nil = unconstrained)
	DisabilityRequired *bool    // Required disability status (nil = unconstrained)
	OtherKeywords      []string // Scheme keywords for free-text matching (empty = unconstrained)
}

// UnconstrainedCriteria returns a criteria set that every profile satisfies
func UnconstrainedCriteria() Criteria {
	return Criteria{AgeMax: NoAgeLimit}
}

// AgeConstrained reports whether the criteria restrict age at all
func (c *Criteria) AgeConstrained() bool {
	return c.AgeMin > 0 || c.AgeMax < NoAgeLimit
}

// AgeRangeString renders the age bounds for reason strings,
// e.g. "18-60", "60 and above", "up to 18"
func (c *Criteria) AgeRangeString() string {
	switch {
	case c.AgeMin > 0 && c.AgeMax < NoAgeLimit:
		return fmt.Sprintf("%d-%d", c.AgeMin, c.AgeMax)
	case c.AgeMin > 0:
		return fmt.Sprintf("%d and above", c.AgeMin)
	case c.AgeMax < NoAgeLimit:
		return fmt.Sprintf("up to %d", c.AgeMax)
	default:
		return "any"
	}
}

// ContainsGender reports whether the gender passes the criteria
// (unconstrained or listed, case-insensitive)
func (c *Criteria) ContainsGender(gender string) bool {
	return containsFold(c.Genders, gender)
}

// ContainsCategory reports whether the category passes the criteria
func (c *Criteria) ContainsCategory(category string) bool {
	return containsFold(c.Categories, category)
}

func containsFold(set []string, v string) bool {
	if len(set) == 0 {
		return true
	}
	v = strings.ToLower(strings.TrimSpace(v))
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
