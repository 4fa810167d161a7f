package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/noahlilabs/team-claude/internal/models"
	"github.com/noahlilabs/team-claude/internal/wire"
)

// StatusCmd returns the status command
func StatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show a team overview",
		Long: `Print a snapshot of the whole team: agents, tasks per branch,
unread mail, branches, and open pull requests.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := wire.Store().StateData()
			if err != nil {
				return fmt.Errorf("failed to read state: %w", err)
			}

			bold := color.New(color.Bold)

			bold.Println("Agents")
			if len(doc.Agents) == 0 {
				fmt.Println("  (none registered)")
			}
			for _, id := range sortedDocKeys(doc.Agents) {
				a := doc.Agents[id]
				fmt.Printf("  %s [%s] %d current / %d completed\n",
					a.ID, colorAgentStatus(a.Status), len(a.TasksCurrent), a.TasksCompleted)
			}
			fmt.Println()

			bold.Println("Tasks")
			total := 0
			byStatus := map[string]int{}
			for _, branch := range sortedDocKeys(doc.Tasks) {
				bucket := doc.Tasks[branch]
				if len(bucket) == 0 {
					continue
				}
				fmt.Printf("  %s (%d)\n", branch, len(bucket))
				for _, t := range bucket {
					fmt.Printf("    %s [%s] %s\n", t.ID, colorTaskStatus(t.Status), truncate(t.Description, 60))
					byStatus[t.Status]++
					total++
				}
			}
			if total == 0 {
				fmt.Println("  (no tasks)")
			} else {
				fmt.Printf("  %d total", total)
				for _, st := range models.TaskStatuses {
					if byStatus[st] > 0 {
						fmt.Printf(", %d %s", byStatus[st], st)
					}
				}
				fmt.Println()
			}
			fmt.Println()

			unread := 0
			for _, m := range doc.Messages {
				if !m.Read {
					unread++
				}
			}
			bold.Println("Mail")
			fmt.Printf("  %d messages (%d unread)\n\n", len(doc.Messages), unread)

			bold.Println("Branches")
			if len(doc.Branches) == 0 {
				fmt.Println("  (none registered)")
			}
			for _, name := range sortedDocKeys(doc.Branches) {
				b := doc.Branches[name]
				owner := b.Owner
				if owner == "" {
					owner = "unowned"
				}
				fmt.Printf("  %s [%s] %s\n", b.Name, b.Status, owner)
			}
			fmt.Println()

			open := 0
			for _, pr := range doc.PullRequests {
				if pr.Status == models.PRStatusOpen {
					open++
				}
			}
			bold.Println("Pull requests")
			fmt.Printf("  %d total (%d open)\n", len(doc.PullRequests), open)

			return nil
		},
	}

	return cmd
}
