package main

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aretw0/quill/internal/cli"
	"github.com/aretw0/quill/internal/logging"
	"github.com/aretw0/quill/pkg/session"
	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage stored sessions",
	Long:  `List, inspect, and remove the answer logs of resumable builds.`,
}

var sessionsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List stored sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, closeFn, err := openSessions(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		ids, err := mgr.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}
		if len(ids) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No stored sessions.")
			return nil
		}
		for _, id := range ids {
			fmt.Fprintln(cmd.OutOrStdout(), "- "+id)
		}
		return nil
	},
}

var sessionsInspectCmd = &cobra.Command{
	Use:   "inspect <session-id>",
	Short: "Print the stored answers of a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, closeFn, err := openSessions(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		cp, err := mgr.Load(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to load session '%s': %w", args[0], err)
		}
		data, err := json.MarshalIndent(cp, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var sessionsDeleteCmd = &cobra.Command{
	Use:     "delete <session-id>...",
	Aliases: []string{"rm"},
	Short:   "Remove one or more sessions",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, closeFn, err := openSessions(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		failed := 0
		for _, id := range args {
			if err := mgr.Delete(cmd.Context(), id); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error removing '%s': %v\n", id, err)
				failed++
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed session '%s'\n", id)
		}
		if failed > 0 {
			return fmt.Errorf("%d session(s) not removed", failed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsInspectCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)
}

func openSessions(cmd *cobra.Command) (*session.Manager, func() error, error) {
	logger := logging.NewNop()
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		logger = logging.New(slog.LevelDebug)
	}
	return cli.OpenSessions(storeOptions(cmd), logger)
}
