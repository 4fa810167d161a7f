package models

import "time"

// Message is one inter-agent message. Messages are append-only; the only
// mutation is the read flag flipping false to true.
type Message struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Receiver  string    `json:"receiver"`
	Content   string    `json:"content"`
	Channel   string    `json:"channel"`
	Priority  string    `json:"priority"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
}

// Message channel constants
const (
	ChannelDirect    = "direct"
	ChannelBroadcast = "broadcast"
	ChannelGroup     = "group"
)

// Message priority constants
const (
	MessagePriorityLow    = "low"
	MessagePriorityNormal = "normal"
	MessagePriorityHigh   = "high"
)

// MessageChannels lists the valid communication channels.
var MessageChannels = []string{ChannelDirect, ChannelBroadcast, ChannelGroup}

// MessagePriorities lists the valid message priorities.
var MessagePriorities = []string{MessagePriorityLow, MessagePriorityNormal, MessagePriorityHigh}

// Clone returns a copy of the message.
func (m *Message) Clone() *Message {
	c := *m
	return &c
}
