package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Anujchouhan001/GovernmentScheme/internal/display"
	"github.com/Anujchouhan001/GovernmentScheme/internal/logger"
	"github.com/Anujchouhan001/GovernmentScheme/internal/models"
	"github.com/Anujchouhan001/GovernmentScheme/internal/questionnaire"
	"github.com/Anujchouhan001/GovernmentScheme/internal/report"
	"github.com/Anujchouhan001/GovernmentScheme/internal/scoring"
	"github.com/Anujchouhan001/GovernmentScheme/internal/session"
)

// AnswerReader defines interface for reading user input (for testing)
type AnswerReader interface {
	ReadString(delim byte) (string, error)
}

// DefaultAnswerReader wraps bufio.Reader
type DefaultAnswerReader struct {
	reader *bufio.Reader
}

func (d *DefaultAnswerReader) ReadString(delim byte) (string, error) {
	return d.reader.ReadString(delim)
}

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Answer the questionnaire and find matching schemes",
		Long: `Walk through the eligibility questionnaire section by section, then
score every scheme in the catalog against the answers.

Sections unlock based on earlier answers: a farmer sees the farming
section, a student the education section. Optional questions can be
skipped by pressing Enter. Answers are saved after every section so an
interrupted session can be resumed with --resume.

Configuration is loaded from .schemefinder/config.yaml if present.
CLI flags override configuration file settings.

Examples:
  schemefinder run
  schemefinder run --catalog data/schemes.csv --min-score 60
  schemefinder run --resume 4f0c57e6-1b2a-4d8e-9c3f-8a7b6d5e4f30
  schemefinder run --report both --report-dir ./reports`,
		Args: cobra.NoArgs,
		RunE: runCommand,
	}

	addCommonFlags(cmd)
	cmd.Flags().Float64("min-score", -1, "Minimum score a scheme must reach to be shown (0-100)")
	cmd.Flags().Bool("eligible-only", false, "Only show schemes with a full score of 100")
	cmd.Flags().String("resume", "", "Session id to resume")
	cmd.Flags().String("report", "", "Write a report after matching: md, html or both")
	cmd.Flags().Bool("no-save", false, "Do not persist the session")

	return cmd
}

// runCommand implements the run command logic
func runCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadMergedConfig(cmd)
	if err != nil {
		return err
	}

	reportFormat, _ := cmd.Flags().GetString("report")
	switch reportFormat {
	case "", "md", "html", "both":
	default:
		return fmt.Errorf("invalid report format %q: use md, html or both", reportFormat)
	}

	noSave, _ := cmd.Flags().GetBool("no-save")
	resumeID, _ := cmd.Flags().GetString("resume")
	if resumeID != "" && noSave {
		return fmt.Errorf("cannot use both --resume and --no-save")
	}

	log := newLogger(cfg)
	out := cmd.OutOrStdout()
	colorOut := colorEnabled()

	cat, err := loadCatalog(cfg, log)
	if err != nil {
		return err
	}
	if degradations := cat.Degradations(); len(degradations) > 0 {
		items := make([]string, 0, len(degradations))
		for _, d := range degradations {
			items = append(items, fmt.Sprintf("%s: %s", d.Scheme, d.Reason))
		}
		display.WarnDegradations("Some eligibility criteria could not be fully extracted", items).Display(out)
	}

	sections, err := loadSections(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var store *session.Store
	if !noSave {
		store, err = session.NewStore(cfg.SessionDBPath)
		if err != nil {
			return fmt.Errorf("failed to open session store: %w", err)
		}
		defer store.Close()
	}

	var flow *questionnaire.Flow
	sessionID := resumeID
	if resumeID != "" {
		state, err := store.Get(ctx, resumeID)
		if err != nil {
			return fmt.Errorf("failed to load session %s: %w", resumeID, err)
		}
		flow, err = questionnaire.Restore(sections, state)
		if err != nil {
			return fmt.Errorf("failed to restore session %s: %w", resumeID, err)
		}
	} else {
		sessionID = session.NewSessionID()
		flow, err = questionnaire.NewFlow(sections)
		if err != nil {
			return err
		}
	}

	reader := &DefaultAnswerReader{reader: bufio.NewReader(cmd.InOrStdin())}
	if err := runQuestionnaire(ctx, flow, reader, out, colorOut, store, sessionID); err != nil {
		return err
	}

	engine, err := scoring.NewEngine(cfg.Weights)
	if err != nil {
		return err
	}

	eligibleOnly, _ := cmd.Flags().GetBool("eligible-only")
	start := time.Now()
	var results []models.MatchResult
	if eligibleOnly {
		results = engine.FindEligibleSchemes(flow.Fields(), cat.Entries())
	} else {
		results = engine.Score(flow.Fields(), cat.Entries(), cfg.MinScore)
	}
	log.LogMatchSummary(len(results), cat.Len(), cfg.MinScore, time.Since(start))

	fmt.Fprintln(out)
	display.RenderResults(out, results, colorOut)
	if !noSave {
		fmt.Fprintf(out, "Session saved: %s\n", sessionID)
	}

	if reportFormat != "" {
		meta := report.Metadata{
			SessionID:   sessionID,
			GeneratedAt: time.Now(),
			MinScore:    cfg.MinScore,
			TotalScored: cat.Len(),
		}
		paths, err := writeReports(cfg.ReportDir, sessionID, reportFormat, results, meta)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintf(out, "Report written: %s\n", p)
		}
	}

	return nil
}

// runQuestionnaire drives the flow to completion, persisting the state
// after every section so an interrupted run can be resumed.
func runQuestionnaire(ctx context.Context, flow *questionnaire.Flow, reader AnswerReader, out io.Writer, colorOut bool, store *session.Store, sessionID string) error {
	for {
		view, ok := flow.CurrentSectionView()
		if !ok {
			break
		}

		display.RenderSection(out, view, flow.Progress(), colorOut)

		answers, err := collectSectionAnswers(view, reader, out, colorOut)
		if err != nil {
			return err
		}

		if err := flow.SubmitSection(view.ID, answers); err != nil {
			var verr *questionnaire.ValidationError
			if errors.As(err, &verr) {
				fmt.Fprintf(out, "\n%s\nPlease answer the section again.\n", verr.Error())
				continue
			}
			return err
		}

		progress := flow.Progress()
		bar := logger.NewProgressBar(progress.TotalSections, 30, colorOut)
		bar.SetPrefix("Sections")
		bar.Update(progress.CompletedSections)
		fmt.Fprintf(out, "\n%s\n", bar.Render())

		if store != nil {
			if err := store.Put(ctx, sessionID, flow.State()); err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}
		}
	}
	return nil
}

// collectSectionAnswers prompts for every visible question in a section.
// Invalid input re-prompts the same question; an empty line skips an
// optional question.
func collectSectionAnswers(view questionnaire.SectionView, reader AnswerReader, out io.Writer, colorOut bool) (map[string]models.FieldValue, error) {
	answers := make(map[string]models.FieldValue)
	for _, q := range view.Questions {
		for {
			display.RenderQuestion(out, q, colorOut)

			line, err := reader.ReadString('\n')
			if err != nil && (line == "" || err != io.EOF) {
				return nil, fmt.Errorf("failed to read input: %w", err)
			}

			value, skipped, perr := parseAnswer(q, line)
			if perr != nil {
				fmt.Fprintf(out, "%s\n", perr.Error())
				if err == io.EOF {
					return nil, fmt.Errorf("input ended before question %q was answered", q.ID)
				}
				continue
			}
			if !skipped {
				answers[q.ID] = value
			}
			break
		}
		fmt.Fprintln(out)
	}
	return answers, nil
}

// parseAnswer converts one line of user input into a typed field value.
// The second return is true when an optional question was skipped.
func parseAnswer(q models.Question, input string) (models.FieldValue, bool, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		if q.Required {
			return models.FieldValue{}, false, fmt.Errorf("an answer is required")
		}
		return models.FieldValue{}, true, nil
	}

	switch q.Type {
	case models.QuestionNumber:
		n, err := strconv.ParseFloat(input, 64)
		if err != nil {
			return models.FieldValue{}, false, fmt.Errorf("please enter a number")
		}
		return models.NumberValue(n), false, nil

	case models.QuestionYesNo:
		switch strings.ToLower(input) {
		case "y", "yes":
			return models.BoolValue(true), false, nil
		case "n", "no":
			return models.BoolValue(false), false, nil
		}
		return models.FieldValue{}, false, fmt.Errorf("please answer y or n")

	case models.QuestionSelect:
		if idx, err := strconv.Atoi(input); err == nil {
			if idx < 1 || idx > len(q.Options) {
				return models.FieldValue{}, false, fmt.Errorf("please choose 1-%d", len(q.Options))
			}
			return models.TextValue(q.Options[idx-1]), false, nil
		}
		for _, opt := range q.Options {
			if strings.EqualFold(opt, input) {
				return models.TextValue(opt), false, nil
			}
		}
		return models.FieldValue{}, false, fmt.Errorf("please choose 1-%d or type an option", len(q.Options))

	default:
		return models.TextValue(input), false, nil
	}
}

// writeReports renders the requested report formats and returns the
// written file paths.
func writeReports(dir, name, format string, results []models.MatchResult, meta report.Metadata) ([]string, error) {
	w, err := report.NewWriter(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to create report directory: %w", err)
	}

	var paths []string
	if format == "md" || format == "both" {
		p, err := w.WriteMarkdown(name, results, meta)
		if err != nil {
			return nil, fmt.Errorf("failed to write markdown report: %w", err)
		}
		paths = append(paths, p)
	}
	if format == "html" || format == "both" {
		p, err := w.WriteHTML(name, results, meta)
		if err != nil {
			return nil, fmt.Errorf("failed to write html report: %w", err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}
