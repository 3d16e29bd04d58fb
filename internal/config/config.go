package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Anujchouhan001/GovernmentScheme/internal/scoring"
)

// Config represents scheme finder configuration options
type Config struct {
	// CatalogPath is the path to the scheme catalog CSV
	CatalogPath string `yaml:"catalog_path"`

	// QuestionnairePath is the path to a questionnaire definition YAML.
	// Empty means the built-in questionnaire.
	QuestionnairePath string `yaml:"questionnaire_path"`

	// SessionDBPath is the path to the session database
	SessionDBPath string `yaml:"session_db_path"`

	// ReportDir is the directory where reports are written
	ReportDir string `yaml:"report_dir"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// MinScore is the minimum match score (0-100) for a scheme to appear
	// in results
	MinScore float64 `yaml:"min_score"`

	// Weights is the criterion weight table for scoring
	Weights scoring.Weights `yaml:"weights"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		CatalogPath:   "data/schemes.csv",
		SessionDBPath: ".schemefinder/sessions.db",
		ReportDir:     ".schemefinder/reports",
		LogLevel:      "info",
		MinScore:      50,
		Weights:       scoring.DefaultWeights(),
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply non-zero values from file (merging with defaults)
	if fileCfg.CatalogPath != "" {
		cfg.CatalogPath = fileCfg.CatalogPath
	}
	if fileCfg.QuestionnairePath != "" {
		cfg.QuestionnairePath = fileCfg.QuestionnairePath
	}
	if fileCfg.SessionDBPath != "" {
		cfg.SessionDBPath = fileCfg.SessionDBPath
	}
	if fileCfg.ReportDir != "" {
		cfg.ReportDir = fileCfg.ReportDir
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if fileCfg.MinScore != 0 {
		cfg.MinScore = fileCfg.MinScore
	}

	// The weight table is all-or-nothing: a partially specified table
	// would silently break the out-of-100 contract.
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err == nil {
		if weights, exists := rawMap["weights"]; exists && weights != nil {
			cfg.Weights = fileCfg.Weights
		}
	}

	return cfg, nil
}

// LoadConfigFromHome loads config.yaml from the scheme finder home
// directory and anchors the default session database and report paths
// there. Paths set explicitly in the file are left alone.
func LoadConfigFromHome() (*Config, error) {
	home, err := GetHome()
	if err != nil {
		return nil, err
	}
	cfg, err := LoadConfig(filepath.Join(home, "config.yaml"))
	if err != nil {
		return nil, err
	}

	def := DefaultConfig()
	if cfg.SessionDBPath == def.SessionDBPath {
		cfg.SessionDBPath = filepath.Join(home, "sessions.db")
	}
	if cfg.ReportDir == def.ReportDir {
		cfg.ReportDir = filepath.Join(home, "reports")
	}
	return cfg, nil
}

// MergeWithFlags merges CLI flags into the configuration.
// Non-nil flag values override configuration values, so CLI flags take
// precedence over config file settings.
func (c *Config) MergeWithFlags(catalogPath, questionnairePath, sessionDBPath, reportDir, logLevel *string, minScore *float64) {
	if catalogPath != nil {
		c.CatalogPath = *catalogPath
	}
	if questionnairePath != nil {
		c.QuestionnairePath = *questionnairePath
	}
	if sessionDBPath != nil {
		c.SessionDBPath = *sessionDBPath
	}
	if reportDir != nil {
		c.ReportDir = *reportDir
	}
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if minScore != nil {
		c.MinScore = *minScore
	}
}

// Validate validates the configuration values.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	if c.CatalogPath == "" {
		return fmt.Errorf("catalog_path must not be empty")
	}

	switch c.LogLevel {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q (valid: trace, debug, info, warn, error)", c.LogLevel)
	}

	if c.MinScore < 0 || c.MinScore > 100 {
		return fmt.Errorf("min_score must be between 0 and 100, got %g", c.MinScore)
	}

	if err := c.Weights.Validate(); err != nil {
		return fmt.Errorf("invalid weights: %w", err)
	}

	return nil
}
