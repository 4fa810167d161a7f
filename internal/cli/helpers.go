// Package cli contains the cobra commands for the teamclaude binary.
package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/noahlilabs/team-claude/internal/models"
)

// sortedDocKeys returns a map's keys in sorted order for stable output.
func sortedDocKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// colorTaskStatus renders a task status with the usual traffic-light
// scheme.
func colorTaskStatus(status string) string {
	switch status {
	case models.TaskStatusCompleted:
		return color.New(color.FgGreen).Sprint(status)
	case models.TaskStatusInProgress:
		return color.New(color.FgCyan).Sprint(status)
	case models.TaskStatusBlocked, models.TaskStatusFailed:
		return color.New(color.FgRed).Sprint(status)
	default:
		return color.New(color.FgYellow).Sprint(status)
	}
}

func colorAgentStatus(status string) string {
	switch status {
	case models.AgentStatusActive:
		return color.New(color.FgGreen).Sprint(status)
	case models.AgentStatusError:
		return color.New(color.FgRed).Sprint(status)
	default:
		return color.New(color.FgYellow).Sprint(status)
	}
}

func colorPriority(priority string) string {
	switch priority {
	case models.TaskPriorityCritical:
		return color.New(color.FgHiRed).Sprint(priority)
	case models.TaskPriorityHigh:
		return color.New(color.FgRed).Sprint(priority)
	case models.TaskPriorityLow:
		return color.New(color.FgBlue).Sprint(priority)
	default:
		return color.New(color.FgYellow).Sprint(priority)
	}
}

// validateChoice rejects a value outside the allowed set. The empty
// value passes so optional filters stay optional.
func validateChoice(name, value string, valid []string) error {
	if value == "" {
		return nil
	}
	for _, v := range valid {
		if value == v {
			return nil
		}
	}
	return fmt.Errorf("invalid %s %q (valid: %s)", name, value, strings.Join(valid, ", "))
}

// splitList parses a comma-separated flag value into trimmed items.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
