package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noahlilabs/team-claude/internal/wire"
)

// SessionCmd returns the session command
func SessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage the team tmux session",
		Long: `The team runs inside one tmux session with a window per agent.
These commands start, inspect, and stop that session.`,
	}

	cmd.AddCommand(sessionStartCmd())
	cmd.AddCommand(sessionStatusCmd())
	cmd.AddCommand(sessionStopCmd())

	return cmd
}

func sessionStartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the team session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := wire.Config()
			adapter, err := wire.Tmux()
			if err != nil {
				return err
			}

			if err := adapter.StartSession(cfg.TmuxSession, cfg.RosterNames()); err != nil {
				return fmt.Errorf("failed to start session: %w", err)
			}

			fmt.Printf("✓ Session started: %s (%d agent windows)\n", cfg.TmuxSession, len(cfg.Agents))
			fmt.Println()
			fmt.Print(adapter.AttachInstructions(cfg.TmuxSession))
			return nil
		},
	}

	return cmd
}

func sessionStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show session windows",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := wire.Config()
			adapter, err := wire.Tmux()
			if err != nil {
				return err
			}

			if !adapter.SessionExists(cfg.TmuxSession) {
				fmt.Printf("Session %s is not running\n", cfg.TmuxSession)
				return nil
			}

			windows, err := adapter.Windows(cfg.TmuxSession)
			if err != nil {
				return err
			}

			fmt.Printf("Session %s is running with %d windows:\n", cfg.TmuxSession, len(windows))
			for _, w := range windows {
				fmt.Printf("  %s\n", w)
			}
			fmt.Println()
			fmt.Print(adapter.AttachInstructions(cfg.TmuxSession))
			return nil
		},
	}

	return cmd
}

func sessionStopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Kill the team session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := wire.Config()
			adapter, err := wire.Tmux()
			if err != nil {
				return err
			}

			if err := adapter.KillSession(cfg.TmuxSession); err != nil {
				return fmt.Errorf("failed to stop session: %w", err)
			}

			fmt.Printf("✓ Session stopped: %s\n", cfg.TmuxSession)
			return nil
		},
	}

	return cmd
}
