package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lwd-temp/helang/internal/store"
)

var (
	sessionsHistory string
	sessionsLimit   int
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List recorded shell sessions",
	Args:  cobra.NoArgs,
	RunE:  runSessions,
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.Flags().StringVar(&sessionsHistory, "history", "", "print the history of a session")
	sessionsCmd.Flags().IntVarP(&sessionsLimit, "limit", "n", 20, "maximum number of entries")
}

func runSessions(cmd *cobra.Command, args []string) error {
	st, err := store.Open(store.Config{Path: appConfig.Store.Path, Logger: logger})
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	out := cmd.OutOrStdout()

	if sessionsHistory != "" {
		entries, err := st.History(ctx, sessionsHistory, sessionsLimit)
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Fprintf(out, "%4d  %s\n", e.Seq, e.Source)
		}
		return nil
	}

	sessions, err := st.ListSessions(ctx, sessionsLimit)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Fprintln(out, "No stored sessions.")
		return nil
	}
	for _, s := range sessions {
		name := s.Name
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(out, "%s  %-12s %3d vars  %s\n", s.ID, name, s.Bindings, s.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
