// Package ident contains the pure ID-generation rules for store entities.
// IDs combine the creation time with a random suffix so they stay unique
// across the whole document even when buckets shrink through deletions.
package ident

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Entity prefixes. These match the on-disk format the agents already
// parse, so they are part of the persisted contract.
const (
	PrefixTask    = "task"
	PrefixSubtask = "subtask"
	PrefixMessage = "msg"
	PrefixLog     = "log"
)

// New generates an ID of the form <prefix>_<unixtime>_<random8>.
func New(prefix string) string {
	return NewAt(prefix, time.Now())
}

// NewAt generates an ID for the given creation time. Split out so tests
// can pin the time component.
func NewAt(prefix string, t time.Time) string {
	u := uuid.New()
	return fmt.Sprintf("%s_%d_%x", prefix, t.Unix(), u[:4])
}
