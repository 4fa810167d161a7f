package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/noahlilabs/team-claude/internal/state"
	"github.com/noahlilabs/team-claude/internal/wire"
)

// ReasoningCmd returns the reasoning command
func ReasoningCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reasoning",
		Short: "Record and inspect agent reasoning",
		Long: `Agents log why they made decisions; the log is searchable by
agent, task, and tags.`,
	}

	cmd.AddCommand(reasoningLogCmd())
	cmd.AddCommand(reasoningListCmd())

	return cmd
}

func reasoningLogCmd() *cobra.Command {
	var agent, taskID, tags string

	cmd := &cobra.Command{
		Use:   "log <reasoning>",
		Short: "Record a reasoning entry",
		Long: `Record why an agent did something, optionally tied to a task.

Example:
  teamclaude reasoning log "Chose SQLite for the cache, no server needed" --agent agent3 --task task_1718000000_a1b2c3d4 --tags storage,decision`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reasoning := args[0]
			if agent == "" {
				return fmt.Errorf("--agent is required")
			}

			logID, err := wire.Store().LogReasoning(agent, taskID, reasoning, tags)
			if err != nil {
				return fmt.Errorf("failed to log reasoning: %w", err)
			}

			fmt.Printf("✓ Reasoning logged: %s\n", logID)
			return nil
		},
	}

	cmd.Flags().StringVar(&agent, "agent", "", "Agent recording the reasoning")
	cmd.Flags().StringVar(&taskID, "task", "", "Related task ID")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma-separated tags")

	return cmd
}

func reasoningListCmd() *cobra.Command {
	var agent, taskID, tags string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reasoning entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			logs, err := wire.Store().GetReasoningLogs(state.ReasoningFilters{
				Agent:  agent,
				TaskID: taskID,
				Tags:   state.SplitTags(tags),
				Limit:  limit,
			})
			if err != nil {
				return fmt.Errorf("failed to list reasoning: %w", err)
			}

			if len(logs) == 0 {
				fmt.Println("No reasoning entries")
				return nil
			}

			for _, l := range logs {
				fmt.Printf("%s [%s]\n", l.ID, l.Timestamp.Format(time.RFC3339))
				fmt.Printf("  Agent: %s\n", l.Agent)
				if l.TaskID != "" {
					fmt.Printf("  Task: %s\n", l.TaskID)
				}
				if len(l.Tags) > 0 {
					fmt.Printf("  Tags: %s\n", strings.Join(l.Tags, ", "))
				}
				fmt.Printf("  %s\n", l.Reasoning)
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&agent, "agent", "", "Filter by agent")
	cmd.Flags().StringVar(&taskID, "task", "", "Filter by task ID")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma-separated tags, any match")
	cmd.Flags().IntVar(&limit, "limit", state.DefaultReasoningLimit, "Maximum entries to show")

	return cmd
}
