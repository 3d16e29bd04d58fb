// Package catalog loads the government scheme catalog from CSV and
// materializes structured eligibility criteria for every record.
//
// Criteria are derived once at load time and cached for the process
// lifetime. A malformed row is skipped with a warning; an entirely empty
// catalog is an error because nothing downstream can work without schemes.
package catalog

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/Anujchouhan001/GovernmentScheme/internal/criteria"
	"github.com/Anujchouhan001/GovernmentScheme/internal/models"
)

// Logger defines the interface for reporting catalog load progress.
type Logger interface {
	LogInfo(message string)
	LogWarn(message string)
}

// Entry pairs a raw scheme record with its parsed criteria and its
// position in the catalog file. The position is the tie-break order for
// equal scores.
type Entry struct {
	Scheme   *models.Scheme
	Criteria models.Criteria
	Index    int
}

// Statistics summarizes the loaded catalog for the stats command.
type Statistics struct {
	TotalSchemes    int            `json:"total_schemes"`
	ByState         map[string]int `json:"by_state"`
	ByCategory      map[string]int `json:"by_category"`
	ByGender        map[string]int `json:"by_gender"`
	WithAgeLimit    int            `json:"with_age_limit"`
	WithIncomeLimit int            `json:"with_income_limit"`
	ForBPL          int            `json:"for_bpl"`
	ForDisabled     int            `json:"for_disabled"`
	Degradations    int            `json:"degradations"`
}

// Catalog is the immutable set of loaded schemes with parsed criteria.
type Catalog struct {
	entries      []Entry
	degradations []criteria.Degradation
}

// Load reads the scheme catalog from a CSV file.
func Load(path string, log Logger) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	c, err := Read(f, log)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog from %s: %w", path, err)
	}
	return c, nil
}

// Read parses CSV catalog data from r. The first row is the header;
// columns are located by name so column order does not matter.
func Read(r io.Reader, log Logger) (*Catalog, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("catalog is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(strings.ToLower(name))] = i
	}
	if _, ok := columns["scheme_name"]; !ok {
		return nil, fmt.Errorf("catalog header missing scheme_name column")
	}

	c := &Catalog{}
	rowNum := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			warnf(log, "skipping catalog row %d: %v", rowNum, err)
			continue
		}

		scheme, err := parseRow(columns, record)
		if err != nil {
			warnf(log, "skipping catalog row %d: %v", rowNum, err)
			continue
		}

		parsed, degradations := criteria.Parse(scheme)
		c.entries = append(c.entries, Entry{
			Scheme:   scheme,
			Criteria: parsed,
			Index:    len(c.entries),
		})
		c.degradations = append(c.degradations, degradations...)
	}

	if len(c.entries) == 0 {
		return nil, fmt.Errorf("catalog contains no usable schemes")
	}
	if log != nil {
		log.LogInfo(fmt.Sprintf("Loaded %d schemes from catalog", len(c.entries)))
	}
	return c, nil
}

func warnf(log Logger, format string, args ...interface{}) {
	if log != nil {
		log.LogWarn(fmt.Sprintf(format, args...))
	}
}

func parseRow(columns map[string]int, record []string) (*models.Scheme, error) {
	get := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	name := get("scheme_name")
	if name == "" {
		return nil, fmt.Errorf("missing scheme_name")
	}

	return &models.Scheme{
		Name:               name,
		State:              get("state_name"),
		URL:                get("scheme_url"),
		Details:            get("details"),
		Benefits:           parseListField(get("benefits")),
		Eligibility:        parseListField(get("eligibility")),
		ApplicationProcess: parseListField(get("application_process")),
		DocumentsRequired:  parseListField(get("documents_required")),
		FAQs:               parseFAQs(get("faqs")),
	}, nil
}

// parseListField decodes a list column. The catalog stores lists as JSON
// arrays; older exports used pipe-separated values, kept as a fallback.
func parseListField(value string) []string {
	if value == "" {
		return nil
	}

	var items []string

	var arr []interface{}
	if err := json.Unmarshal([]byte(value), &arr); err == nil {
		for _, item := range arr {
			if s := strings.TrimSpace(fmt.Sprintf("%v", item)); s != "" {
				items = append(items, s)
			}
		}
		return items
	}

	for _, part := range strings.Split(value, "|") {
		if s := strings.TrimSpace(part); s != "" {
			items = append(items, s)
		}
	}
	return items
}

func parseFAQs(value string) []models.FAQ {
	if value == "" {
		return nil
	}
	var faqs []models.FAQ
	if err := json.Unmarshal([]byte(value), &faqs); err != nil {
		return nil
	}
	return faqs
}

// Entries returns the loaded schemes in catalog order.
func (c *Catalog) Entries() []Entry {
	return c.entries
}

// Len returns the number of loaded schemes.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Degradations returns the criteria extraction fallbacks recorded during
// load, for the catalog validate command.
func (c *Catalog) Degradations() []criteria.Degradation {
	return c.degradations
}

// SchemeByName looks up a scheme by exact name, case-insensitive.
func (c *Catalog) SchemeByName(name string) (Entry, bool) {
	for _, e := range c.entries {
		if strings.EqualFold(e.Scheme.Name, name) {
			return e, true
		}
	}
	return Entry{}, false
}

// FilterByState returns the entries whose state matches, case-insensitive.
func (c *Catalog) FilterByState(state string) []Entry {
	var filtered []Entry
	for _, e := range c.entries {
		if strings.EqualFold(e.Scheme.State, state) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// States returns the distinct state names in the catalog, sorted.
func (c *Catalog) States() []string {
	seen := make(map[string]bool)
	var states []string
	for _, e := range c.entries {
		if e.Scheme.State != "" && !seen[e.Scheme.State] {
			seen[e.Scheme.State] = true
			states = append(states, e.Scheme.State)
		}
	}
	sort.Strings(states)
	return states
}

// Statistics computes summary counts over the loaded catalog.
func (c *Catalog) Statistics() Statistics {
	stats := Statistics{
		TotalSchemes: len(c.entries),
		ByState:      make(map[string]int),
		ByCategory:   make(map[string]int),
		ByGender:     make(map[string]int),
		Degradations: len(c.degradations),
	}

	for _, e := range c.entries {
		if e.Scheme.State != "" {
			stats.ByState[e.Scheme.State]++
		}

		if len(e.Criteria.Categories) == 0 {
			stats.ByCategory["all"]++
		} else {
			for _, cat := range e.Criteria.Categories {
				stats.ByCategory[cat]++
			}
		}

		if len(e.Criteria.Genders) == 0 {
			stats.ByGender["all"]++
		} else {
			for _, g := range e.Criteria.Genders {
				stats.ByGender[g]++
			}
		}

		if e.Criteria.AgeConstrained() {
			stats.WithAgeLimit++
		}
		if e.Criteria.IncomeMax != nil {
			stats.WithIncomeLimit++
		}
		if e.Criteria.BPLRequired != nil && *e.Criteria.BPLRequired {
			stats.ForBPL++
		}
		if e.Criteria.DisabilityRequired != nil && *e.Criteria.DisabilityRequired {
			stats.ForDisabled++
		}
	}

	return stats
}
