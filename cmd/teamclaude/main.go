package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/noahlilabs/team-claude/internal/cli"
	"github.com/noahlilabs/team-claude/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "teamclaude",
		Short:   "teamclaude - coordination layer for a team of Claude agents",
		Version: version.String(),
		Long: `teamclaude coordinates a team of autonomous agents through a shared,
crash-safe state file: tasks, messages, branches, pull requests, and
reasoning logs. Agents run in tmux windows and talk through this CLI.`,
	}

	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.AgentCmd())
	rootCmd.AddCommand(cli.TaskCmd())
	rootCmd.AddCommand(cli.MailCmd())
	rootCmd.AddCommand(cli.BranchCmd())
	rootCmd.AddCommand(cli.PRCmd())
	rootCmd.AddCommand(cli.ReasoningCmd())
	rootCmd.AddCommand(cli.StatusCmd())
	rootCmd.AddCommand(cli.AnalyzeCmd())
	rootCmd.AddCommand(cli.SessionCmd())
	rootCmd.AddCommand(cli.CacheCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
