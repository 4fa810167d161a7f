package state

import (
	"sort"
	"time"

	"github.com/noahlilabs/team-claude/internal/core/ident"
	"github.com/noahlilabs/team-claude/internal/models"
)

// AddMessage appends a direct message and returns its ID.
func (s *Store) AddMessage(from, to, content, channel, priority string) (string, error) {
	var msgID string
	err := s.run(func(doc *models.Document) error {
		msgID = ident.New(ident.PrefixMessage)
		doc.Messages = append(doc.Messages, &models.Message{
			ID:        msgID,
			Sender:    from,
			Receiver:  to,
			Content:   content,
			Channel:   channel,
			Priority:  priority,
			Timestamp: time.Now(),
		})
		return nil
	})
	if err != nil {
		return "", err
	}
	return msgID, nil
}

// BroadcastMessage fans one message out to every active agent except the
// sender, all sharing one timestamp on the broadcast channel. When no
// agents are registered yet, the static roster from the configuration
// serves as the recipient list.
func (s *Store) BroadcastMessage(from, content, priority string) ([]string, error) {
	var msgIDs []string
	err := s.run(func(doc *models.Document) error {
		var recipients []string
		for _, id := range sortedKeys(doc.Agents) {
			if id != from && doc.Agents[id].Status == models.AgentStatusActive {
				recipients = append(recipients, id)
			}
		}
		if len(recipients) == 0 {
			for _, name := range s.opts.Roster {
				if name != from {
					recipients = append(recipients, name)
				}
			}
		}

		timestamp := time.Now()
		for _, to := range recipients {
			msgID := ident.New(ident.PrefixMessage)
			doc.Messages = append(doc.Messages, &models.Message{
				ID:        msgID,
				Sender:    from,
				Receiver:  to,
				Content:   content,
				Channel:   models.ChannelBroadcast,
				Priority:  priority,
				Timestamp: timestamp,
			})
			msgIDs = append(msgIDs, msgID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return msgIDs, nil
}

// MessageFilters narrows GetMessages results. Agent matches the receiver;
// set fields combine with AND semantics.
type MessageFilters struct {
	Agent      string
	UnreadOnly bool
	Channel    string
	Priority   string
}

// GetMessages returns detached copies of matching messages, newest first.
func (s *Store) GetMessages(filters MessageFilters) ([]*models.Message, error) {
	var result []*models.Message
	err := s.run(func(doc *models.Document) error {
		for _, msg := range doc.Messages {
			if filters.Agent != "" && msg.Receiver != filters.Agent {
				continue
			}
			if filters.UnreadOnly && msg.Read {
				continue
			}
			if filters.Channel != "" && msg.Channel != filters.Channel {
				continue
			}
			if filters.Priority != "" && msg.Priority != filters.Priority {
				continue
			}
			result = append(result, msg.Clone())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Timestamp.After(result[j].Timestamp)
	})
	return result, nil
}

// MarkMessageRead flips a message's read flag. Returns false when the
// message is unknown.
func (s *Store) MarkMessageRead(messageID string) (bool, error) {
	marked := false
	err := s.run(func(doc *models.Document) error {
		for _, msg := range doc.Messages {
			if msg.ID == messageID {
				msg.Read = true
				marked = true
				return nil
			}
		}
		return nil
	})
	return marked, err
}
