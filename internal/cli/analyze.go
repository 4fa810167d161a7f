package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noahlilabs/team-claude/internal/analyzer"
	"github.com/noahlilabs/team-claude/internal/wire"
)

// AnalyzeCmd returns the analyze command
func AnalyzeCmd() *cobra.Command {
	var rulesFile string
	var create bool

	cmd := &cobra.Command{
		Use:   "analyze <task-id> <description>",
		Short: "Classify a task and suggest a subtask breakdown",
		Long: `Classify a task description into a work type and print the
suggested subtasks for that type.

With --create the suggestions are created as real subtasks of the given
task. Custom classification rules can be loaded from a YAML file.

Examples:
  teamclaude analyze task_1718000000_a1b2c3d4 "Build a data analysis dashboard"
  teamclaude analyze task_1718000000_a1b2c3d4 "Build the REST backend" --create
  teamclaude analyze task_1718000000_a1b2c3d4 "Ship the android app" --rules team-rules.yaml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, description := args[0], args[1]

			a := wire.Analyzer()
			if rulesFile != "" {
				var err error
				a, err = analyzer.LoadRules(rulesFile)
				if err != nil {
					return fmt.Errorf("failed to load rules: %w", err)
				}
			}

			analysis := a.Analyze(taskID, description)

			fmt.Printf("Task type: %s\n", analysis.Type)
			if len(analysis.Subtasks) == 0 {
				fmt.Println("No suggested breakdown for this type")
				return nil
			}

			fmt.Printf("Suggested subtasks (%d):\n", len(analysis.Subtasks))
			for i, st := range analysis.Subtasks {
				fmt.Printf("%d. %s\n", i+1, st.Description)
				fmt.Printf("   Agent: %s, Capabilities: %s\n", st.Agent, st.Capabilities)
			}

			if !create {
				return nil
			}

			fmt.Println()
			for _, st := range analysis.Subtasks {
				subtaskID, err := wire.Store().CreateSubtask(taskID, st.Description, st.Agent, splitList(st.Capabilities))
				if err != nil {
					return fmt.Errorf("failed to create subtask: %w", err)
				}
				if subtaskID == "" {
					return fmt.Errorf("parent task %s not found", taskID)
				}
				fmt.Printf("✓ Subtask created: %s (%s)\n", subtaskID, st.Agent)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&rulesFile, "rules", "", "YAML file with extra classification rules")
	cmd.Flags().BoolVar(&create, "create", false, "Create the suggested subtasks")

	return cmd
}
