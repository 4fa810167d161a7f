// Package config loads the team-claude configuration. Settings live in
// .teamclaude/config.json; a missing file yields the defaults so the CLI
// works out of the box.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// StateFileEnv overrides the state file path when set.
const StateFileEnv = "TEAMCLAUDE_STATE_FILE"

// RosterAgent is one statically configured agent. The roster seeds the
// broadcast fan-out before any agent has registered itself.
type RosterAgent struct {
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Branch       string   `json:"branch,omitempty"`
	Description  string   `json:"description,omitempty"`
	Capabilities []string `json:"capabilities,omitempty"`
}

// Config represents the flat team-claude configuration.
type Config struct {
	StateFile       string        `json:"state_file"`
	MaxAgents       int           `json:"max_agents"`
	LockWaitSeconds int           `json:"lock_wait_seconds"`
	ForceUnlock     bool          `json:"force_unlock,omitempty"`
	CachePath       string        `json:"cache_path"`
	CacheTTLSeconds int           `json:"cache_ttl_seconds"`
	CacheEnabled    bool          `json:"cache_enabled"`
	TmuxSession     string        `json:"tmux_session"`
	Agents          []RosterAgent `json:"agents,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		StateFile:       "claude_state.json",
		MaxAgents:       10,
		LockWaitSeconds: 30,
		CachePath:       filepath.Join(".teamclaude", "cache.db"),
		CacheTTLSeconds: 7 * 24 * 3600,
		CacheEnabled:    true,
		TmuxSession:     "claude-team",
		Agents: []RosterAgent{
			{Name: "team_lead", Type: "manager", Branch: "master", Capabilities: []string{"planning", "task_assignment", "integration", "architecture"}},
			{Name: "agent1", Type: "frontend", Branch: "feature-login", Capabilities: []string{"html", "css", "javascript", "auth"}},
			{Name: "agent2", Type: "frontend", Branch: "feature-dashboard", Capabilities: []string{"html", "css", "javascript", "visualization"}},
			{Name: "agent3", Type: "backend", Branch: "feature-api", Capabilities: []string{"python", "api", "database", "server"}},
		},
	}
}

// Load reads .teamclaude/config.json from the specified directory,
// falling back to defaults when the file is absent. The state file path
// can always be overridden via TEAMCLAUDE_STATE_FILE.
func Load(dir string) (*Config, error) {
	cfg := Default()

	path := filepath.Join(dir, ".teamclaude", "config.json")
	data, err := os.ReadFile(path)
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if env := os.Getenv(StateFileEnv); env != "" {
		cfg.StateFile = env
	}
	return cfg, nil
}

// Save writes config.json to the directory's .teamclaude folder.
func Save(dir string, cfg *Config) error {
	confDir := filepath.Join(dir, ".teamclaude")
	if err := os.MkdirAll(confDir, 0755); err != nil {
		return fmt.Errorf("failed to create .teamclaude dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(confDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// RosterNames returns the names of all configured roster agents.
func (c *Config) RosterNames() []string {
	names := make([]string, 0, len(c.Agents))
	for _, a := range c.Agents {
		names = append(names, a.Name)
	}
	return names
}
