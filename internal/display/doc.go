// Package display provides terminal UI utilities for the scheme finder CLI.
//
// This package centralizes terminal output formatting, ANSI color codes,
// and user-facing display logic. It renders questionnaire sections,
// ranked match results, catalog statistics, and warning messages.
//
// # Match Results
//
//	display.RenderResults(os.Stdout, results, isatty.IsTerminal(os.Stdout.Fd()))
//
// # Warning Messages
//
// Display warnings with optional components:
//
//	warning := display.Warning{
//	    Title:      "Criteria extraction degraded",
//	    Message:    "Some scheme texts could not be fully parsed",
//	    Items:      []string{"Scheme X: age mentioned but no range recognized"},
//	    Suggestion: "Review the eligibility text of these schemes",
//	}
//	warning.Display(os.Stderr)
//
// # ANSI Colors
//
// The package uses ANSI escape codes for terminal colors:
//   - Cyan (\x1b[36m) for prompts and identifiers
//   - Green (\x1b[32m) for success messages and high scores
//   - Yellow (\x1b[33m) for warnings and partial scores
//   - Reset (\x1b[0m) after each colored section
//
// All functions accept io.Writer interfaces for testability. Callers
// decide whether color is appropriate (typically via isatty).
package display
