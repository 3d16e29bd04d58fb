package models

// MatchResult is the scored outcome of matching one scheme against a
// completed field store. Created fresh per scoring run; never persisted
// by the core. Field names are stable for report consumers.
type MatchResult struct {
	Scheme            *Scheme  `json:"scheme"`             // The matched scheme
	CatalogIndex      int      `json:"catalog_index"`      // Position in the loaded catalog (tie-break order)
	Score             float64  `json:"score"`              // 0-100 weighted score
	MatchedReasons    []string `json:"matched_reasons"`    // Human-readable satisfied criteria
	UnmatchedCriteria []string `json:"unmatched_criteria"` // Human-readable unsatisfied criteria
}

// FullyEligible reports whether the scheme scored the maximum 100 points
func (r *MatchResult) FullyEligible() bool {
	return r.Score >= 100
}
