package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/noahlilabs/team-claude/internal/state"
	"github.com/noahlilabs/team-claude/internal/wire"
)

// AgentCmd returns the agent command
func AgentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Manage team agents",
		Long: `Register agents, update their status, and find the best agent
for a set of required capabilities.`,
	}

	cmd.AddCommand(agentRegisterCmd())
	cmd.AddCommand(agentStatusCmd())
	cmd.AddCommand(agentListCmd())
	cmd.AddCommand(agentFindCmd())

	return cmd
}

func agentRegisterCmd() *cobra.Command {
	var agentType, capabilities string

	cmd := &cobra.Command{
		Use:   "register <agent-id>",
		Short: "Register an agent with the team",
		Long: `Register an agent so it can receive tasks and messages.

Examples:
  teamclaude agent register agent1 --type frontend --capabilities html,css,javascript
  teamclaude agent register team_lead --type manager --capabilities planning,integration`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			registered, err := wire.Store().RegisterAgent(id, agentType, splitList(capabilities))
			if err != nil {
				return fmt.Errorf("failed to register agent: %w", err)
			}
			if !registered {
				return fmt.Errorf("agent %s was not registered (duplicate ID or team is full)", id)
			}

			fmt.Printf("✓ Agent registered: %s\n", id)
			fmt.Printf("  Type: %s\n", agentType)
			fmt.Printf("  Capabilities: %s\n", capabilities)
			return nil
		},
	}

	cmd.Flags().StringVar(&agentType, "type", "generic", "Agent type (manager, frontend, backend, ...)")
	cmd.Flags().StringVar(&capabilities, "capabilities", "", "Comma-separated capability list")

	return cmd
}

func agentStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <agent-id> <status>",
		Short: "Update an agent's status",
		Long:  `Set an agent's status to active, inactive, or error.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, status := args[0], args[1]

			updated, err := wire.Store().UpdateAgentStatus(id, status)
			if err != nil {
				return fmt.Errorf("failed to update agent status: %w", err)
			}
			if !updated {
				return fmt.Errorf("agent %s not found", id)
			}

			fmt.Printf("✓ Agent %s is now %s\n", id, status)
			return nil
		},
	}

	return cmd
}

func agentListCmd() *cobra.Command {
	var status, agentType, capability string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered agents",
		RunE: func(cmd *cobra.Command, args []string) error {
			agents, err := wire.Store().GetAgents(state.AgentFilters{
				Status: status,
				Type:   agentType,
			})
			if err != nil {
				return fmt.Errorf("failed to list agents: %w", err)
			}

			if capability != "" {
				filtered := agents[:0]
				for _, a := range agents {
					if a.HasCapability(capability) {
						filtered = append(filtered, a)
					}
				}
				agents = filtered
			}

			if len(agents) == 0 {
				fmt.Println("No agents registered")
				return nil
			}

			for _, a := range agents {
				fmt.Printf("%s [%s]\n", a.ID, colorAgentStatus(a.Status))
				fmt.Printf("  Type: %s\n", a.Type)
				fmt.Printf("  Capabilities: %s\n", strings.Join(a.Capabilities, ", "))
				fmt.Printf("  Tasks: %d current, %d completed\n", len(a.TasksCurrent), a.TasksCompleted)
				fmt.Printf("  Last active: %s\n", a.LastActive.Format(time.RFC3339))
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status (active, inactive, error)")
	cmd.Flags().StringVar(&agentType, "type", "", "Filter by agent type")
	cmd.Flags().StringVar(&capability, "capability", "", "Only show agents advertising this capability")

	return cmd
}

func agentFindCmd() *cobra.Command {
	var capabilities string

	cmd := &cobra.Command{
		Use:   "find",
		Short: "Find the best agent for a set of capabilities",
		Long: `Score all active agents against the required capabilities and
print the best match. Scoring favors capability coverage over current
workload.

Example:
  teamclaude agent find --capabilities python,api`,
		RunE: func(cmd *cobra.Command, args []string) error {
			best, err := wire.Store().FindBestAgentForTask(splitList(capabilities))
			if err != nil {
				return fmt.Errorf("failed to find agent: %w", err)
			}
			if best == "" {
				fmt.Println("No active agents available")
				return nil
			}

			fmt.Printf("Best agent: %s\n", best)
			return nil
		},
	}

	cmd.Flags().StringVar(&capabilities, "capabilities", "", "Comma-separated required capabilities")

	return cmd
}
