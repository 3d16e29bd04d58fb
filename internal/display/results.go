package display

import (
	"fmt"
	"io"
	"sort"

	"github.com/Anujchouhan001/GovernmentScheme/internal/catalog"
	"github.com/Anujchouhan001/GovernmentScheme/internal/models"
	"github.com/Anujchouhan001/GovernmentScheme/internal/questionnaire"
)

const (
	ansiCyan   = "\x1b[36m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBold   = "\x1b[1m"
	ansiReset  = "\x1b[0m"
)

// RenderResults prints the ranked match results. Scores of 100 are
// highlighted green, partial scores yellow.
func RenderResults(w io.Writer, results []models.MatchResult, colorOutput bool) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No matching schemes found.")
		return
	}

	fmt.Fprintf(w, "Found %d matching scheme(s):\n\n", len(results))

	for i, r := range results {
		score := fmt.Sprintf("%g/100", r.Score)
		name := r.Scheme.Name
		if colorOutput {
			if r.FullyEligible() {
				score = ansiGreen + score + ansiReset
			} else {
				score = ansiYellow + score + ansiReset
			}
			name = ansiBold + name + ansiReset
		}
		fmt.Fprintf(w, "%d. %s [%s]\n", i+1, name, score)

		if r.Scheme.State != "" {
			fmt.Fprintf(w, "   State: %s\n", r.Scheme.State)
		}
		for _, reason := range r.MatchedReasons {
			if colorOutput {
				fmt.Fprintf(w, "   %s+%s %s\n", ansiGreen, ansiReset, reason)
			} else {
				fmt.Fprintf(w, "   + %s\n", reason)
			}
		}
		for _, reason := range r.UnmatchedCriteria {
			if colorOutput {
				fmt.Fprintf(w, "   %s-%s %s\n", ansiYellow, ansiReset, reason)
			} else {
				fmt.Fprintf(w, "   - %s\n", reason)
			}
		}
		if r.Scheme.URL != "" {
			fmt.Fprintf(w, "   %s\n", r.Scheme.URL)
		}
		fmt.Fprintln(w)
	}
}

// RenderSection prints a questionnaire section header and its visible
// questions with numbering.
func RenderSection(w io.Writer, view questionnaire.SectionView, progress questionnaire.Progress, colorOutput bool) {
	name := view.Name
	if colorOutput {
		name = ansiBold + name + ansiReset
	}
	fmt.Fprintf(w, "\n%s (%d/%d sections complete)\n", name, progress.CompletedSections, progress.TotalSections)
	if view.Description != "" {
		fmt.Fprintf(w, "%s\n", view.Description)
	}
	fmt.Fprintln(w)
}

// RenderQuestion prints a single question prompt with its options.
func RenderQuestion(w io.Writer, q models.Question, colorOutput bool) {
	prompt := q.Prompt
	if colorOutput {
		prompt = ansiCyan + prompt + ansiReset
	}
	fmt.Fprintf(w, "%s", prompt)
	if !q.Required {
		fmt.Fprintf(w, " (optional, press Enter to skip)")
	}
	fmt.Fprintln(w)

	switch q.Type {
	case models.QuestionSelect:
		for i, opt := range q.Options {
			fmt.Fprintf(w, "  %d) %s\n", i+1, opt)
		}
		fmt.Fprintf(w, "> ")
	case models.QuestionYesNo:
		fmt.Fprintf(w, "  [y/n] > ")
	default:
		fmt.Fprintf(w, "> ")
	}
}

// RenderStatistics prints catalog summary counts in a stable order.
func RenderStatistics(w io.Writer, stats catalog.Statistics, colorOutput bool) {
	header := "=== Catalog Statistics ==="
	if colorOutput {
		header = ansiBold + header + ansiReset
	}
	fmt.Fprintln(w, header)
	fmt.Fprintf(w, "Total schemes: %d\n", stats.TotalSchemes)
	fmt.Fprintf(w, "With age limit: %d\n", stats.WithAgeLimit)
	fmt.Fprintf(w, "With income limit: %d\n", stats.WithIncomeLimit)
	fmt.Fprintf(w, "BPL-targeted: %d\n", stats.ForBPL)
	fmt.Fprintf(w, "Disability-targeted: %d\n", stats.ForDisabled)
	fmt.Fprintf(w, "Criteria degradations: %d\n", stats.Degradations)

	renderCountMap(w, "By state", stats.ByState)
	renderCountMap(w, "By category", stats.ByCategory)
	renderCountMap(w, "By gender", stats.ByGender)
}

func renderCountMap(w io.Writer, title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintf(w, "%s:\n", title)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s: %d\n", k, counts[k])
	}
}
