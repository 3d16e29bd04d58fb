package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for schemefinder
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schemefinder",
		Short: "Government welfare scheme eligibility finder",
		Long: `Schemefinder matches citizens against a catalog of government welfare
schemes. It walks the user through a conditional questionnaire, scores
each scheme in the catalog against the answers out of 100 weighted
points, and explains what matched and what is missing for every scheme.

Sessions are saved locally so a questionnaire can be resumed, re-scored
against an updated catalog, or exported as a Markdown or HTML report.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	// Add subcommands
	cmd.AddCommand(NewRunCommand())
	cmd.AddCommand(NewMatchCommand())
	cmd.AddCommand(NewCatalogCommand())
	cmd.AddCommand(NewSessionsCommand())
	cmd.AddCommand(NewReportCommand())

	return cmd
}
