// Package report renders ranked match results as Markdown, HTML and
// colored console output, and persists reports atomically.
package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"github.com/Anujchouhan001/GovernmentScheme/internal/filelock"
	"github.com/Anujchouhan001/GovernmentScheme/internal/models"
)

// Metadata describes the scoring run a report was generated from.
type Metadata struct {
	SessionID   string
	GeneratedAt time.Time
	MinScore    float64
	TotalScored int
}

// RenderMarkdown renders the ranked results as a Markdown document.
// Field content comes straight from the catalog; results keep their
// ranked order.
func RenderMarkdown(results []models.MatchResult, meta Metadata) string {
	var sb strings.Builder

	sb.WriteString("# Government Scheme Eligibility Report\n\n")
	if meta.SessionID != "" {
		fmt.Fprintf(&sb, "Session: `%s`\n\n", meta.SessionID)
	}
	if !meta.GeneratedAt.IsZero() {
		fmt.Fprintf(&sb, "Generated: %s\n\n", meta.GeneratedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(&sb, "Matched %d of %d schemes (minimum score %g).\n\n",
		len(results), meta.TotalScored, meta.MinScore)

	if len(results) == 0 {
		sb.WriteString("No schemes matched your answers. Try lowering the minimum score.\n")
		return sb.String()
	}

	for i, r := range results {
		fmt.Fprintf(&sb, "## %d. %s\n\n", i+1, r.Scheme.Name)
		fmt.Fprintf(&sb, "**Match score: %g/100**", r.Score)
		if r.FullyEligible() {
			sb.WriteString(" (fully eligible)")
		}
		sb.WriteString("\n\n")

		if r.Scheme.State != "" {
			fmt.Fprintf(&sb, "- State: %s\n", r.Scheme.State)
		}
		if r.Scheme.URL != "" {
			fmt.Fprintf(&sb, "- Official page: <%s>\n", r.Scheme.URL)
		}
		sb.WriteString("\n")

		if r.Scheme.Details != "" {
			fmt.Fprintf(&sb, "%s\n\n", r.Scheme.Details)
		}

		if len(r.MatchedReasons) > 0 {
			sb.WriteString("### Why you match\n\n")
			for _, reason := range r.MatchedReasons {
				fmt.Fprintf(&sb, "- %s\n", reason)
			}
			sb.WriteString("\n")
		}
		if len(r.UnmatchedCriteria) > 0 {
			sb.WriteString("### Criteria not met\n\n")
			for _, reason := range r.UnmatchedCriteria {
				fmt.Fprintf(&sb, "- %s\n", reason)
			}
			sb.WriteString("\n")
		}

		writeListSection(&sb, "Benefits", r.Scheme.Benefits)
		writeListSection(&sb, "How to apply", r.Scheme.ApplicationProcess)
		writeListSection(&sb, "Documents required", r.Scheme.DocumentsRequired)
	}

	return sb.String()
}

func writeListSection(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "### %s\n\n", title)
	for _, item := range items {
		fmt.Fprintf(sb, "- %s\n", item)
	}
	sb.WriteString("\n")
}

// RenderHTML converts the Markdown report to a standalone HTML page.
func RenderHTML(results []models.MatchResult, meta Metadata) (string, error) {
	md := RenderMarkdown(results, meta)

	var body bytes.Buffer
	if err := goldmark.New().Convert([]byte(md), &body); err != nil {
		return "", fmt.Errorf("failed to convert report to HTML: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	sb.WriteString("<meta charset=\"utf-8\">\n")
	sb.WriteString("<title>Government Scheme Eligibility Report</title>\n")
	sb.WriteString("<style>body{font-family:sans-serif;max-width:48rem;margin:2rem auto;padding:0 1rem;line-height:1.5}</style>\n")
	sb.WriteString("</head>\n<body>\n")
	sb.Write(body.Bytes())
	sb.WriteString("</body>\n</html>\n")
	return sb.String(), nil
}

// Writer persists reports into a directory. Writes are atomic and
// serialized with a file lock so concurrent runs never interleave.
type Writer struct {
	dir string
}

// NewWriter creates a Writer that saves reports under dir, creating it
// if needed.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create report directory: %w", err)
	}
	return &Writer{dir: dir}, nil
}

// WriteMarkdown saves the Markdown report and returns its path.
func (w *Writer) WriteMarkdown(name string, results []models.MatchResult, meta Metadata) (string, error) {
	path := filepath.Join(w.dir, name+".md")
	if err := filelock.LockAndWrite(path, []byte(RenderMarkdown(results, meta))); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}

// WriteHTML saves the HTML report and returns its path.
func (w *Writer) WriteHTML(name string, results []models.MatchResult, meta Metadata) (string, error) {
	html, err := RenderHTML(results, meta)
	if err != nil {
		return "", err
	}
	path := filepath.Join(w.dir, name+".html")
	if err := filelock.LockAndWrite(path, []byte(html)); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}
