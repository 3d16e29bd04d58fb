package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/Anujchouhan001/GovernmentScheme/internal/catalog"
	"github.com/Anujchouhan001/GovernmentScheme/internal/config"
	"github.com/Anujchouhan001/GovernmentScheme/internal/logger"
	"github.com/Anujchouhan001/GovernmentScheme/internal/models"
	"github.com/Anujchouhan001/GovernmentScheme/internal/questionnaire"
)

// addCommonFlags registers the flags shared by every subcommand that
// loads the catalog or touches the session store.
func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "Path to config file (default: .schemefinder/config.yaml)")
	cmd.Flags().String("catalog", "", "Path to the scheme catalog CSV")
	cmd.Flags().String("questionnaire", "", "Path to a questionnaire YAML (default: built-in)")
	cmd.Flags().String("session-db", "", "Path to the session database")
	cmd.Flags().String("report-dir", "", "Directory for generated reports")
	cmd.Flags().String("log-level", "", "Log level (trace, debug, info, warn, error)")
}

// loadMergedConfig loads configuration from the --config flag or the
// default .schemefinder/config.yaml, then overlays any flags that were
// explicitly set. Flags take precedence over the file.
func loadMergedConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.LoadConfigFromHome()
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	stringPtr := func(name string) *string {
		if !cmd.Flags().Changed(name) {
			return nil
		}
		v, _ := cmd.Flags().GetString(name)
		return &v
	}

	var minScorePtr *float64
	if cmd.Flags().Changed("min-score") {
		v, _ := cmd.Flags().GetFloat64("min-score")
		minScorePtr = &v
	}

	cfg.MergeWithFlags(
		stringPtr("catalog"),
		stringPtr("questionnaire"),
		stringPtr("session-db"),
		stringPtr("report-dir"),
		stringPtr("log-level"),
		minScorePtr,
	)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadCatalog reads the scheme catalog named by the config.
func loadCatalog(cfg *config.Config, log catalog.Logger) (*catalog.Catalog, error) {
	cat, err := catalog.Load(cfg.CatalogPath, log)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", cfg.CatalogPath, err)
	}
	return cat, nil
}

// loadSections returns the questionnaire definition: the file named by
// the config when set, the embedded default otherwise.
func loadSections(cfg *config.Config) ([]models.Section, error) {
	if cfg.QuestionnairePath != "" {
		sections, err := questionnaire.LoadFile(cfg.QuestionnairePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load questionnaire %s: %w", cfg.QuestionnairePath, err)
		}
		return sections, nil
	}
	return questionnaire.Default()
}

// newLogger builds the console logger for a command run.
func newLogger(cfg *config.Config) *logger.ConsoleLogger {
	return logger.NewConsoleLogger(os.Stderr, cfg.LogLevel)
}

// colorEnabled reports whether stdout is a terminal that can take ANSI
// color codes.
func colorEnabled() bool {
	return isatty.IsTerminal(os.Stdout.Fd())
}
