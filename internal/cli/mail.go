package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/noahlilabs/team-claude/internal/models"
	"github.com/noahlilabs/team-claude/internal/state"
	"github.com/noahlilabs/team-claude/internal/wire"
)

// MailCmd returns the mail command
func MailCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mail",
		Short: "Inter-agent messaging",
		Long: `Send and receive messages between agents.

Messages are async and persistent in the shared state file.`,
	}

	cmd.AddCommand(mailSendCmd())
	cmd.AddCommand(mailBroadcastCmd())
	cmd.AddCommand(mailInboxCmd())
	cmd.AddCommand(mailReadCmd())

	return cmd
}

func mailSendCmd() *cobra.Command {
	var from, to, priority string

	cmd := &cobra.Command{
		Use:   "send <content>",
		Short: "Send a message to another agent",
		Long: `Send a direct message to one agent.

Example:
  teamclaude mail send "Please review the login page" --from team_lead --to agent1 --priority high`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content := args[0]
			if to == "" {
				return fmt.Errorf("--to is required")
			}
			if err := validateChoice("priority", priority, models.MessagePriorities); err != nil {
				return err
			}

			msgID, err := wire.Store().AddMessage(from, to, content, models.ChannelDirect, priority)
			if err != nil {
				return fmt.Errorf("failed to send message: %w", err)
			}

			fmt.Printf("✓ Message sent: %s\n", msgID)
			fmt.Printf("  From: %s\n", from)
			fmt.Printf("  To: %s\n", to)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "system", "Sender agent ID")
	cmd.Flags().StringVar(&to, "to", "", "Recipient agent ID")
	cmd.Flags().StringVar(&priority, "priority", models.MessagePriorityNormal, "Message priority (low, normal, high)")

	return cmd
}

func mailBroadcastCmd() *cobra.Command {
	var from, priority string

	cmd := &cobra.Command{
		Use:   "broadcast <content>",
		Short: "Broadcast a message to every other agent",
		Long: `Fan a message out to all active agents except the sender. When no
agents have registered yet, the configured roster is used instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content := args[0]
			if err := validateChoice("priority", priority, models.MessagePriorities); err != nil {
				return err
			}

			ids, err := wire.Store().BroadcastMessage(from, content, priority)
			if err != nil {
				return fmt.Errorf("failed to broadcast: %w", err)
			}

			fmt.Printf("✓ Broadcast delivered to %d agents\n", len(ids))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "system", "Sender agent ID")
	cmd.Flags().StringVar(&priority, "priority", models.MessagePriorityNormal, "Message priority (low, normal, high)")

	return cmd
}

func mailInboxCmd() *cobra.Command {
	var agent, channel, priority string
	var all bool

	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "View an agent's inbox",
		Long: `List messages for an agent, newest first.

By default, shows only unread messages. Use --all to show everything.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if agent == "" {
				return fmt.Errorf("--agent is required")
			}
			if err := validateChoice("channel", channel, models.MessageChannels); err != nil {
				return err
			}
			if err := validateChoice("priority", priority, models.MessagePriorities); err != nil {
				return err
			}

			messages, err := wire.Store().GetMessages(state.MessageFilters{
				Agent:      agent,
				UnreadOnly: !all,
				Channel:    channel,
				Priority:   priority,
			})
			if err != nil {
				return fmt.Errorf("failed to list messages: %w", err)
			}

			if len(messages) == 0 {
				if all {
					fmt.Println("No messages")
				} else {
					fmt.Println("No unread messages")
				}
				return nil
			}

			fmt.Printf("Inbox for %s\n\n", agent)
			unread := 0
			for _, msg := range messages {
				status := "✉"
				if msg.Read {
					status = "✓"
				} else {
					unread++
				}
				fmt.Printf("%s %s [%s]\n", status, msg.ID, msg.Timestamp.Format(time.RFC3339))
				fmt.Printf("  From: %s (%s, %s)\n", msg.Sender, msg.Channel, msg.Priority)
				fmt.Printf("  %s\n", truncate(strings.ReplaceAll(msg.Content, "\n", " "), 70))
				fmt.Println()
			}
			fmt.Printf("Total: %d messages (%d unread)\n", len(messages), unread)
			return nil
		},
	}

	cmd.Flags().StringVar(&agent, "agent", "", "Agent whose inbox to show")
	cmd.Flags().StringVar(&channel, "channel", "", "Filter by channel (direct, broadcast, group)")
	cmd.Flags().StringVar(&priority, "priority", "", "Filter by priority")
	cmd.Flags().BoolVar(&all, "all", false, "Include already-read messages")

	return cmd
}

func mailReadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read <message-id>",
		Short: "Mark a message as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msgID := args[0]

			marked, err := wire.Store().MarkMessageRead(msgID)
			if err != nil {
				return fmt.Errorf("failed to mark message read: %w", err)
			}
			if !marked {
				return fmt.Errorf("message %s not found", msgID)
			}

			fmt.Printf("✓ Marked read: %s\n", msgID)
			return nil
		},
	}

	return cmd
}
