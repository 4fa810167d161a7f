package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/noahlilabs/team-claude/internal/wire"
)

// BranchCmd returns the branch command
func BranchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "branch",
		Short: "Manage work branches",
	}

	cmd.AddCommand(branchRegisterCmd())
	cmd.AddCommand(branchListCmd())

	return cmd
}

func branchRegisterCmd() *cobra.Command {
	var description, owner string

	cmd := &cobra.Command{
		Use:   "register <name>",
		Short: "Register a branch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			registered, err := wire.Store().RegisterBranch(name, description, owner)
			if err != nil {
				return fmt.Errorf("failed to register branch: %w", err)
			}
			if !registered {
				return fmt.Errorf("branch %s already registered", name)
			}

			fmt.Printf("✓ Branch registered: %s\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "What the branch is for")
	cmd.Flags().StringVar(&owner, "owner", "", "Agent owning the branch")

	return cmd
}

func branchListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered branches",
		RunE: func(cmd *cobra.Command, args []string) error {
			branches, err := wire.Store().GetBranches()
			if err != nil {
				return fmt.Errorf("failed to list branches: %w", err)
			}

			if len(branches) == 0 {
				fmt.Println("No branches registered")
				return nil
			}

			for _, b := range branches {
				fmt.Printf("%s [%s]\n", b.Name, b.Status)
				if b.Owner != "" {
					fmt.Printf("  Owner: %s\n", b.Owner)
				}
				if b.Description != "" {
					fmt.Printf("  %s\n", b.Description)
				}
				fmt.Printf("  Created: %s\n", b.CreatedAt.Format(time.RFC3339))
				fmt.Println()
			}
			return nil
		},
	}

	return cmd
}
