package cmd

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Anujchouhan001/GovernmentScheme/internal/session"
)

// NewSessionsCommand creates the sessions command group
func NewSessionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage saved questionnaire sessions",
	}

	cmd.AddCommand(newSessionsListCommand())
	cmd.AddCommand(newSessionsShowCommand())
	cmd.AddCommand(newSessionsDeleteCommand())

	return cmd
}

// openStore opens the session store named by the merged config.
func openStore(cmd *cobra.Command) (*session.Store, context.Context, error) {
	cfg, err := loadMergedConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	store, err := session.NewStore(cfg.SessionDBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open session store: %w", err)
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return store, ctx, nil
}

func newSessionsListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved sessions, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, ctx, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			infos, err := store.List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list sessions: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(infos) == 0 {
				fmt.Fprintln(out, "No saved sessions.")
				return nil
			}
			for _, info := range infos {
				fmt.Fprintf(out, "%s  updated %s\n", info.ID, info.UpdatedAt.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
	addCommonFlags(cmd)
	return cmd
}

func newSessionsShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <session-id>",
		Short: "Show the answers of a saved session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, ctx, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			state, err := store.Get(ctx, args[0])
			if err != nil {
				if errors.Is(err, session.ErrNotFound) {
					return fmt.Errorf("session %s not found", args[0])
				}
				return fmt.Errorf("failed to load session: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Session %s\n", args[0])
			fmt.Fprintf(out, "Completed sections: %d\n", len(state.Completed))
			if state.Current != "" {
				fmt.Fprintf(out, "Next section: %s\n", state.Current)
			} else {
				fmt.Fprintln(out, "Questionnaire finished.")
			}

			if state.Fields == nil || state.Fields.Len() == 0 {
				fmt.Fprintln(out, "No answers recorded.")
				return nil
			}

			names := state.Fields.Names()
			sort.Strings(names)
			fmt.Fprintln(out, "Answers:")
			for _, name := range names {
				if value, ok := state.Fields.Get(name); ok {
					fmt.Fprintf(out, "  %s: %s\n", name, value.String())
				}
			}
			return nil
		},
	}
	addCommonFlags(cmd)
	return cmd
}

func newSessionsDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <session-id>",
		Short: "Delete a saved session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, ctx, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Delete(ctx, args[0]); err != nil {
				if errors.Is(err, session.ErrNotFound) {
					return fmt.Errorf("session %s not found", args[0])
				}
				return fmt.Errorf("failed to delete session: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted session %s\n", args[0])
			return nil
		},
	}
	addCommonFlags(cmd)
	return cmd
}
