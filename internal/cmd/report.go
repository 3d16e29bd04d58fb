package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Anujchouhan001/GovernmentScheme/internal/report"
	"github.com/Anujchouhan001/GovernmentScheme/internal/scoring"
	"github.com/Anujchouhan001/GovernmentScheme/internal/session"
)

// NewReportCommand creates the report command
func NewReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <session-id>",
		Short: "Generate a report from a saved session",
		Long: `Re-score a saved session against the current catalog and write the
results as a Markdown or HTML report.

Examples:
  schemefinder report 4f0c57e6-1b2a-4d8e-9c3f-8a7b6d5e4f30
  schemefinder report 4f0c57e6 --format html --report-dir ./reports`,
		Args: cobra.ExactArgs(1),
		RunE: reportCommand,
	}

	addCommonFlags(cmd)
	cmd.Flags().Float64("min-score", -1, "Minimum score a scheme must reach to appear (0-100)")
	cmd.Flags().String("format", "md", "Report format: md, html or both")

	return cmd
}

// reportCommand implements the report command logic
func reportCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadMergedConfig(cmd)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "md", "html", "both":
	default:
		return fmt.Errorf("invalid report format %q: use md, html or both", format)
	}

	log := newLogger(cfg)
	cat, err := loadCatalog(cfg, log)
	if err != nil {
		return err
	}

	store, err := session.NewStore(cfg.SessionDBPath)
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}
	defer store.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	sessionID := args[0]
	state, err := store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return fmt.Errorf("session %s not found", sessionID)
		}
		return fmt.Errorf("failed to load session: %w", err)
	}
	if state.Fields == nil || state.Fields.Len() == 0 {
		return fmt.Errorf("session %s has no answers to score", sessionID)
	}

	engine, err := scoring.NewEngine(cfg.Weights)
	if err != nil {
		return err
	}
	results := engine.Score(state.Fields, cat.Entries(), cfg.MinScore)

	meta := report.Metadata{
		SessionID:   sessionID,
		GeneratedAt: time.Now(),
		MinScore:    cfg.MinScore,
		TotalScored: cat.Len(),
	}
	paths, err := writeReports(cfg.ReportDir, sessionID, format, results, meta)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, p := range paths {
		fmt.Fprintf(out, "Report written: %s\n", p)
	}
	return nil
}
