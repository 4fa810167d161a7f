package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/noahlilabs/team-claude/internal/models"
	"github.com/noahlilabs/team-claude/internal/state"
	"github.com/noahlilabs/team-claude/internal/wire"
)

// TaskCmd returns the task command
func TaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
		Long: `Create, update, list, and delete tasks. Tasks live in per-branch
buckets; subtasks link back to their parent task.`,
	}

	cmd.AddCommand(taskAddCmd())
	cmd.AddCommand(taskUpdateCmd())
	cmd.AddCommand(taskListCmd())
	cmd.AddCommand(taskSubtaskCmd())
	cmd.AddCommand(taskDeleteCmd())
	cmd.AddCommand(taskClearCmd())

	return cmd
}

func taskAddCmd() *cobra.Command {
	var branch, assignedTo, priority, capabilities string
	var auto bool

	cmd := &cobra.Command{
		Use:   "add <description>",
		Short: "Create a new task",
		Long: `Create a task on a branch, optionally assigning it to an agent.

With --auto the assignee is chosen by scoring active agents against the
required capabilities.

Examples:
  teamclaude task add "Build the login page" --branch feature-login --assign agent1
  teamclaude task add "Expose the REST API" --capabilities api,python --auto`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			description := args[0]
			if err := validateChoice("priority", priority, models.TaskPriorities); err != nil {
				return err
			}
			caps := splitList(capabilities)

			if auto {
				best, err := wire.Store().FindBestAgentForTask(caps)
				if err != nil {
					return fmt.Errorf("failed to find agent: %w", err)
				}
				if best == "" {
					return fmt.Errorf("no active agents available for auto-assignment")
				}
				assignedTo = best
			}

			taskID, err := wire.Store().AddTask(branch, description, assignedTo, priority, caps)
			if err != nil {
				return fmt.Errorf("failed to add task: %w", err)
			}

			fmt.Printf("✓ Task created: %s\n", taskID)
			fmt.Printf("  Branch: %s\n", branch)
			if assignedTo != "" {
				fmt.Printf("  Assigned to: %s\n", assignedTo)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&branch, "branch", "main", "Branch bucket for the task")
	cmd.Flags().StringVar(&assignedTo, "assign", "", "Agent to assign the task to")
	cmd.Flags().StringVar(&priority, "priority", models.TaskPriorityMedium, "Task priority (low, medium, high, critical)")
	cmd.Flags().StringVar(&capabilities, "capabilities", "", "Comma-separated required capabilities")
	cmd.Flags().BoolVar(&auto, "auto", false, "Auto-assign to the best matching agent")

	return cmd
}

func taskUpdateCmd() *cobra.Command {
	var branch, message string

	cmd := &cobra.Command{
		Use:   "update <task-id> <status>",
		Short: "Update a task's status",
		Long: `Move a task to a new status. Completion credits the assignee and
clears the task from its current workload.

Example:
  teamclaude task update task_1718000000_a1b2c3d4 completed --message "Shipped"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, status := args[0], args[1]
			if err := validateChoice("status", status, models.TaskStatuses); err != nil {
				return err
			}

			updated, err := wire.Store().UpdateTaskStatus(taskID, status, branch, message)
			if err != nil {
				return fmt.Errorf("failed to update task: %w", err)
			}
			if !updated {
				return fmt.Errorf("task %s not found", taskID)
			}

			fmt.Printf("✓ Task %s is now %s\n", taskID, colorTaskStatus(status))
			return nil
		},
	}

	cmd.Flags().StringVar(&branch, "branch", "", "Branch to search (all branches when omitted)")
	cmd.Flags().StringVar(&message, "message", "", "Note recorded in the status history")

	return cmd
}

func taskListCmd() *cobra.Command {
	var branch, agent, status, parent string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateChoice("status", status, models.TaskStatuses); err != nil {
				return err
			}
			tasks, err := wire.Store().GetTasks(state.TaskFilters{
				Agent:    agent,
				Branch:   branch,
				Status:   status,
				ParentID: parent,
			})
			if err != nil {
				return fmt.Errorf("failed to list tasks: %w", err)
			}

			if len(tasks) == 0 {
				fmt.Println("No tasks found")
				return nil
			}

			for _, t := range tasks {
				fmt.Printf("%s [%s] %s\n", t.ID, colorTaskStatus(t.Status), colorPriority(t.Priority))
				fmt.Printf("  %s\n", truncate(t.Description, 80))
				fmt.Printf("  Branch: %s\n", t.Branch)
				if t.AssignedTo != "" {
					fmt.Printf("  Assigned to: %s\n", t.AssignedTo)
				}
				if len(t.RequiredCapabilities) > 0 {
					fmt.Printf("  Capabilities: %s\n", strings.Join(t.RequiredCapabilities, ", "))
				}
				if len(t.Subtasks) > 0 {
					fmt.Printf("  Subtasks: %d\n", len(t.Subtasks))
				}
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&branch, "branch", "", "Filter by branch")
	cmd.Flags().StringVar(&agent, "agent", "", "Filter by assigned agent")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status")
	cmd.Flags().StringVar(&parent, "parent", "", "Filter by parent task ID")

	return cmd
}

func taskSubtaskCmd() *cobra.Command {
	var assignedTo, capabilities string

	cmd := &cobra.Command{
		Use:   "subtask <parent-task-id> <description>",
		Short: "Create a subtask under an existing task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			parentID, description := args[0], args[1]

			subtaskID, err := wire.Store().CreateSubtask(parentID, description, assignedTo, splitList(capabilities))
			if err != nil {
				return fmt.Errorf("failed to create subtask: %w", err)
			}
			if subtaskID == "" {
				return fmt.Errorf("parent task %s not found", parentID)
			}

			fmt.Printf("✓ Subtask created: %s\n", subtaskID)
			fmt.Printf("  Parent: %s\n", parentID)
			return nil
		},
	}

	cmd.Flags().StringVar(&assignedTo, "assign", "", "Agent to assign the subtask to")
	cmd.Flags().StringVar(&capabilities, "capabilities", "", "Comma-separated required capabilities")

	return cmd
}

func taskDeleteCmd() *cobra.Command {
	var branch string

	cmd := &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task and its direct subtasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID := args[0]

			deleted, err := wire.Store().DeleteTask(taskID, branch)
			if err != nil {
				return fmt.Errorf("failed to delete task: %w", err)
			}
			if !deleted {
				return fmt.Errorf("task %s not found", taskID)
			}

			fmt.Printf("✓ Task deleted: %s\n", taskID)
			return nil
		},
	}

	cmd.Flags().StringVar(&branch, "branch", "", "Branch to search (all branches when omitted)")

	return cmd
}

func taskClearCmd() *cobra.Command {
	var branch string
	var confirm bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all tasks",
		Long:  `Delete every task, or every task on one branch. Requires --confirm.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				return fmt.Errorf("refusing to clear tasks without --confirm")
			}

			cleared, err := wire.Store().DeleteAllTasks(branch)
			if err != nil {
				return fmt.Errorf("failed to clear tasks: %w", err)
			}
			if !cleared {
				fmt.Println("No tasks to clear")
				return nil
			}

			if branch != "" {
				fmt.Printf("✓ Cleared all tasks on %s\n", branch)
			} else {
				fmt.Println("✓ Cleared all tasks")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&branch, "branch", "", "Only clear this branch")
	cmd.Flags().BoolVar(&confirm, "confirm", false, "Confirm the destructive clear")

	return cmd
}
