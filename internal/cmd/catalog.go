package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Anujchouhan001/GovernmentScheme/internal/display"
)

// NewCatalogCommand creates the catalog command group
func NewCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the scheme catalog",
	}

	cmd.AddCommand(newCatalogStatsCommand())
	cmd.AddCommand(newCatalogValidateCommand())
	cmd.AddCommand(newCatalogListCommand())

	return cmd
}

func newCatalogStatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show catalog summary counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadMergedConfig(cmd)
			if err != nil {
				return err
			}
			cat, err := loadCatalog(cfg, newLogger(cfg))
			if err != nil {
				return err
			}
			display.RenderStatistics(cmd.OutOrStdout(), cat.Statistics(), colorEnabled())
			return nil
		},
	}
	addCommonFlags(cmd)
	return cmd
}

func newCatalogValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the catalog for extraction problems",
		Long: `Load the catalog and report every scheme whose eligibility text
mentioned a criterion that could not be recognized. Such criteria are
skipped during matching, so affected schemes may score higher than the
official rules allow.

Exit code: 0 if clean, 1 if problems found`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadMergedConfig(cmd)
			if err != nil {
				return err
			}
			cat, err := loadCatalog(cfg, newLogger(cfg))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			degradations := cat.Degradations()
			if len(degradations) == 0 {
				fmt.Fprintf(out, "Catalog is clean: %d scheme(s), all criteria extracted.\n", cat.Len())
				return nil
			}

			items := make([]string, 0, len(degradations))
			for _, d := range degradations {
				items = append(items, fmt.Sprintf("%s (%s): %s", d.Scheme, d.Field, d.Reason))
			}
			display.WarnDegradations("Criteria extraction fell back for some schemes", items).Display(out)
			return fmt.Errorf("%d extraction problem(s) in %d scheme(s)", len(degradations), cat.Len())
		},
	}
	addCommonFlags(cmd)
	return cmd
}

func newCatalogListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List schemes in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadMergedConfig(cmd)
			if err != nil {
				return err
			}
			cat, err := loadCatalog(cfg, newLogger(cfg))
			if err != nil {
				return err
			}

			entries := cat.Entries()
			if state, _ := cmd.Flags().GetString("state"); state != "" {
				entries = cat.FilterByState(state)
				if len(entries) == 0 {
					states := cat.States()
					return fmt.Errorf("no schemes for state %q (known states: %s)", state, strings.Join(states, ", "))
				}
			}

			names := make([]string, 0, len(entries))
			for _, e := range entries {
				names = append(names, e.Scheme.Name)
			}
			sort.Strings(names)

			out := cmd.OutOrStdout()
			for _, name := range names {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}
	addCommonFlags(cmd)
	cmd.Flags().String("state", "", "Only list schemes of this state")
	return cmd
}
