// Package wire provides dependency injection for the teamclaude
// application. It creates singleton services with lazy initialization.
package wire

import (
	"log"
	"sync"
	"time"

	"github.com/noahlilabs/team-claude/internal/analyzer"
	"github.com/noahlilabs/team-claude/internal/apicache"
	"github.com/noahlilabs/team-claude/internal/config"
	"github.com/noahlilabs/team-claude/internal/state"
	"github.com/noahlilabs/team-claude/internal/tmux"
)

var (
	cfg       *config.Config
	store     *state.Store
	taskRules *analyzer.Analyzer
	once      sync.Once

	cache     *apicache.Cache
	cacheErr  error
	cacheOnce sync.Once
)

// Config returns the singleton configuration, loaded from the working
// directory.
func Config() *config.Config {
	once.Do(initDeps)
	return cfg
}

// Store returns the singleton state store.
func Store() *state.Store {
	once.Do(initDeps)
	return store
}

// Analyzer returns the singleton task analyzer with built-in rules.
func Analyzer() *analyzer.Analyzer {
	once.Do(initDeps)
	return taskRules
}

// Cache returns the singleton API response cache. Returns an error when
// caching is disabled in configuration.
func Cache() (*apicache.Cache, error) {
	once.Do(initDeps)
	cacheOnce.Do(func() {
		if !cfg.CacheEnabled {
			cacheErr = apicache.ErrDisabled
			return
		}
		ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
		cache, cacheErr = apicache.Open(cfg.CachePath, ttl)
	})
	return cache, cacheErr
}

// Tmux returns a new tmux adapter. Each call creates a fresh client.
func Tmux() (*tmux.Adapter, error) {
	return tmux.NewAdapter()
}

// initDeps initializes the shared dependencies. Called once via sync.Once.
func initDeps() {
	var err error
	cfg, err = config.Load(".")
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	store, err = state.New(cfg.StateFile, state.Options{
		LockWait:    time.Duration(cfg.LockWaitSeconds) * time.Second,
		ForceUnlock: cfg.ForceUnlock,
		MaxAgents:   cfg.MaxAgents,
		Roster:      cfg.RosterNames(),
	})
	if err != nil {
		log.Fatalf("failed to open state store: %v", err)
	}

	taskRules = analyzer.Default()
}
