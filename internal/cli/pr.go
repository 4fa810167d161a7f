package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/noahlilabs/team-claude/internal/models"
	"github.com/noahlilabs/team-claude/internal/state"
	"github.com/noahlilabs/team-claude/internal/wire"
)

// PRCmd returns the pr command
func PRCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pr",
		Short: "Manage pull requests",
	}

	cmd.AddCommand(prCreateCmd())
	cmd.AddCommand(prUpdateCmd())
	cmd.AddCommand(prListCmd())

	return cmd
}

func prCreateCmd() *cobra.Command {
	var title, description, source, target, author string

	cmd := &cobra.Command{
		Use:   "create <pr-id>",
		Short: "Create a pull request record",
		Long: `Record a pull request from a source branch into a target branch.

Example:
  teamclaude pr create pr-42 --title "Login page" --source feature-login --target master --author agent1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			created, err := wire.Store().CreatePullRequest(id, title, description, source, target, author)
			if err != nil {
				return fmt.Errorf("failed to create pull request: %w", err)
			}
			if !created {
				return fmt.Errorf("pull request %s already exists", id)
			}

			fmt.Printf("✓ Pull request created: %s\n", id)
			fmt.Printf("  %s -> %s\n", source, target)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Pull request title")
	cmd.Flags().StringVar(&description, "description", "", "Pull request description")
	cmd.Flags().StringVar(&source, "source", "", "Source branch")
	cmd.Flags().StringVar(&target, "target", "master", "Target branch")
	cmd.Flags().StringVar(&author, "author", "", "Authoring agent")

	return cmd
}

func prUpdateCmd() *cobra.Command {
	var status, comment, commentBy, approveBy string

	cmd := &cobra.Command{
		Use:   "update <pr-id>",
		Short: "Update a pull request",
		Long: `Change status, add a comment, or record an approval. A second
approval by the same agent is ignored.

Examples:
  teamclaude pr update pr-42 --approve-by team_lead
  teamclaude pr update pr-42 --status merged
  teamclaude pr update pr-42 --comment "Needs tests" --comment-by agent2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if err := validateChoice("status", status, models.PRStatuses); err != nil {
				return err
			}

			updated, err := wire.Store().UpdatePullRequest(id, state.PRUpdate{
				Status:         status,
				CommentAuthor:  commentBy,
				CommentContent: comment,
				ApprovalAuthor: approveBy,
			})
			if err != nil {
				return fmt.Errorf("failed to update pull request: %w", err)
			}
			if !updated {
				return fmt.Errorf("pull request %s not found", id)
			}

			fmt.Printf("✓ Pull request updated: %s\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "New status (open, closed, merged)")
	cmd.Flags().StringVar(&comment, "comment", "", "Comment text")
	cmd.Flags().StringVar(&commentBy, "comment-by", "", "Comment author")
	cmd.Flags().StringVar(&approveBy, "approve-by", "", "Approving agent")

	return cmd
}

func prListCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pull requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateChoice("status", status, models.PRStatuses); err != nil {
				return err
			}
			prs, err := wire.Store().GetPullRequests(status)
			if err != nil {
				return fmt.Errorf("failed to list pull requests: %w", err)
			}

			if len(prs) == 0 {
				fmt.Println("No pull requests")
				return nil
			}

			for _, pr := range prs {
				fmt.Printf("%s [%s] %s\n", pr.ID, pr.Status, pr.Title)
				fmt.Printf("  %s -> %s (by %s)\n", pr.SourceBranch, pr.TargetBranch, pr.Author)
				fmt.Printf("  Comments: %d, Approvals: %d\n", len(pr.Comments), len(pr.Approvals))
				fmt.Printf("  Updated: %s\n", pr.UpdatedAt.Format(time.RFC3339))
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status (open, closed, merged)")

	return cmd
}
