package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Anujchouhan001/GovernmentScheme/internal/catalog"
	"github.com/Anujchouhan001/GovernmentScheme/internal/display"
	"github.com/Anujchouhan001/GovernmentScheme/internal/models"
	"github.com/Anujchouhan001/GovernmentScheme/internal/scoring"
	"github.com/Anujchouhan001/GovernmentScheme/internal/session"
)

// NewMatchCommand creates the match command
func NewMatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Score schemes without the interactive questionnaire",
		Long: `Score every catalog scheme against a profile given on the command line
or taken from a saved session.

Examples:
  # Profile from flags
  schemefinder match --age 25 --gender Male --occupation farmer --income 40000

  # Profile from a YAML answers file, age overridden on top
  schemefinder match --answers profile.yaml --age 26

  # Re-score a saved session against the current catalog
  schemefinder match --session 4f0c57e6-1b2a-4d8e-9c3f-8a7b6d5e4f30

  # Only schemes where every constrained criterion is satisfied
  schemefinder match --age 25 --occupation farmer --eligible

  # Best five matches regardless of threshold
  schemefinder match --session 4f0c57e6 --top 5

  # Why does a specific scheme not fully match?
  schemefinder match --age 70 --explain "PM Kisan Samman Nidhi"`,
		Args: cobra.NoArgs,
		RunE: matchCommand,
	}

	addCommonFlags(cmd)
	cmd.Flags().Float64("min-score", -1, "Minimum score a scheme must reach to be shown (0-100)")
	cmd.Flags().String("session", "", "Score the answers of a saved session")
	cmd.Flags().String("answers", "", "YAML file mapping question ids to answers")
	cmd.Flags().String("state", "", "Only consider schemes of this state")
	cmd.Flags().Bool("eligible", false, "Only show schemes with a full score of 100")
	cmd.Flags().Int("top", 0, "Show the N best matches, ignoring the minimum score")
	cmd.Flags().String("explain", "", "Explain why the named scheme does not fully match")

	cmd.Flags().Int("age", 0, "Age in years")
	cmd.Flags().String("gender", "", "Gender")
	cmd.Flags().String("category", "", "Social category (general, sc, st, obc, ews)")
	cmd.Flags().String("occupation", "", "Occupation")
	cmd.Flags().Float64("income", 0, "Annual family income in rupees")
	cmd.Flags().Bool("bpl", false, "Holds a BPL card")
	cmd.Flags().Bool("disability", false, "Has a disability certificate")

	return cmd
}

// matchCommand implements the match command logic
func matchCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadMergedConfig(cmd)
	if err != nil {
		return err
	}

	sessionID, _ := cmd.Flags().GetString("session")
	answersPath, _ := cmd.Flags().GetString("answers")
	if sessionID != "" && (answersPath != "" || profileFlagsChanged(cmd)) {
		return fmt.Errorf("cannot combine --session with --answers or profile flags")
	}

	log := newLogger(cfg)
	out := cmd.OutOrStdout()
	colorOut := colorEnabled()

	cat, err := loadCatalog(cfg, log)
	if err != nil {
		return err
	}

	fields, err := matchFields(cmd, cfg.SessionDBPath, sessionID, answersPath)
	if err != nil {
		return err
	}
	if fields.Len() == 0 {
		return fmt.Errorf("no profile given: use profile flags, --answers or --session")
	}

	entries := cat.Entries()
	if state, _ := cmd.Flags().GetString("state"); state != "" {
		entries = cat.FilterByState(state)
		if len(entries) == 0 {
			return fmt.Errorf("no schemes found for state %q", state)
		}
	}

	engine, err := scoring.NewEngine(cfg.Weights)
	if err != nil {
		return err
	}

	if name, _ := cmd.Flags().GetString("explain"); name != "" {
		return explainScheme(out, engine, fields, cat, name)
	}

	eligibleOnly, _ := cmd.Flags().GetBool("eligible")
	topN, _ := cmd.Flags().GetInt("top")
	if eligibleOnly && topN > 0 {
		return fmt.Errorf("cannot use both --eligible and --top")
	}

	start := time.Now()
	var results []models.MatchResult
	switch {
	case eligibleOnly:
		results = engine.FindEligibleSchemes(fields, entries)
	case topN > 0:
		results = engine.TopSchemes(fields, entries, topN)
	default:
		results = engine.Score(fields, entries, cfg.MinScore)
	}
	log.LogMatchSummary(len(results), len(entries), cfg.MinScore, time.Since(start))

	display.RenderResults(out, results, colorOut)
	return nil
}

// matchFields builds the profile. With --session the saved answers are
// used as-is; otherwise the answers file (if any) is loaded and profile
// flags are applied on top.
func matchFields(cmd *cobra.Command, dbPath, sessionID, answersPath string) (*models.FieldStore, error) {
	if sessionID == "" {
		fields := models.NewFieldStore()
		if answersPath != "" {
			loaded, err := loadAnswersFile(answersPath)
			if err != nil {
				return nil, err
			}
			fields = loaded
		}
		fields.Merge(fieldsFromFlags(cmd))
		return fields, nil
	}

	store, err := session.NewStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	defer store.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	state, err := store.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}
	if state.Fields == nil {
		return models.NewFieldStore(), nil
	}
	return state.Fields, nil
}

// loadAnswersFile reads a flat YAML map of question id to answer value.
// Booleans, numbers and strings are accepted; anything else is rejected.
func loadAnswersFile(path string) (*models.FieldStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read answers file: %w", err)
	}
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse answers file %s: %w", path, err)
	}

	fields := models.NewFieldStore()
	for name, v := range raw {
		switch value := v.(type) {
		case bool:
			fields.Set(name, models.BoolValue(value), "answers")
		case int:
			fields.Set(name, models.NumberValue(float64(value)), "answers")
		case float64:
			fields.Set(name, models.NumberValue(value), "answers")
		case string:
			fields.Set(name, models.TextValue(value), "answers")
		default:
			return nil, fmt.Errorf("answer %q has unsupported type %T", name, v)
		}
	}
	return fields, nil
}

var profileFlagNames = []string{"age", "gender", "category", "occupation", "income", "bpl", "disability"}

func profileFlagsChanged(cmd *cobra.Command) bool {
	for _, name := range profileFlagNames {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// fieldsFromFlags converts explicitly set profile flags into a field
// store. Untouched flags stay unanswered so unconstrained schemes still
// score in full.
func fieldsFromFlags(cmd *cobra.Command) *models.FieldStore {
	fields := models.NewFieldStore()

	if cmd.Flags().Changed("age") {
		v, _ := cmd.Flags().GetInt("age")
		fields.Set(models.FieldAge, models.NumberValue(float64(v)), "flags")
	}
	if cmd.Flags().Changed("gender") {
		v, _ := cmd.Flags().GetString("gender")
		fields.Set(models.FieldGender, models.TextValue(v), "flags")
	}
	if cmd.Flags().Changed("category") {
		v, _ := cmd.Flags().GetString("category")
		fields.Set(models.FieldCategory, models.TextValue(v), "flags")
	}
	if cmd.Flags().Changed("occupation") {
		v, _ := cmd.Flags().GetString("occupation")
		fields.Set(models.FieldOccupation, models.TextValue(v), "flags")
	}
	if cmd.Flags().Changed("income") {
		v, _ := cmd.Flags().GetFloat64("income")
		fields.Set(models.FieldAnnualIncome, models.NumberValue(v), "flags")
	}
	if cmd.Flags().Changed("bpl") {
		v, _ := cmd.Flags().GetBool("bpl")
		fields.Set(models.FieldBPL, models.BoolValue(v), "flags")
	}
	if cmd.Flags().Changed("disability") {
		v, _ := cmd.Flags().GetBool("disability")
		fields.Set(models.FieldDisability, models.BoolValue(v), "flags")
	}

	return fields
}

// explainScheme prints the unmet criteria for a single scheme.
func explainScheme(out io.Writer, engine *scoring.Engine, fields *models.FieldStore, cat *catalog.Catalog, name string) error {
	entry, ok := cat.SchemeByName(name)
	if !ok {
		return fmt.Errorf("scheme %q not found in catalog", name)
	}

	result := engine.ScoreScheme(fields, entry)
	unmet := result.UnmatchedCriteria
	fmt.Fprintf(out, "%s scores %g/100\n", entry.Scheme.Name, result.Score)
	if len(unmet) == 0 {
		fmt.Fprintln(out, "Every constrained criterion is satisfied.")
		return nil
	}
	fmt.Fprintln(out, "Criteria not met:")
	for _, reason := range unmet {
		fmt.Fprintf(out, "  - %s\n", reason)
	}
	return nil
}
