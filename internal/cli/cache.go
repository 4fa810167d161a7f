package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/noahlilabs/team-claude/internal/wire"
)

// CacheCmd returns the cache command
func CacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the API response cache",
	}

	cmd.AddCommand(cacheListCmd())
	cmd.AddCommand(cacheStatsCmd())
	cmd.AddCommand(cachePruneCmd())

	return cmd
}

func cacheListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cached responses, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := wire.Cache()
			if err != nil {
				return err
			}

			entries, err := cache.List(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("failed to list cache: %w", err)
			}

			if len(entries) == 0 {
				fmt.Println("Cache is empty")
				return nil
			}

			for _, e := range entries {
				fmt.Printf("%s [%s]\n", e.Key[:8], e.CreatedAt.Local().Format(time.RFC3339))
				fmt.Printf("  %s\n", e.PromptPreview)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum entries to show")

	return cmd
}

func cacheStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show cache entry count and age",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := wire.Cache()
			if err != nil {
				return err
			}

			count, oldest, err := cache.Stats(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to read cache stats: %w", err)
			}

			fmt.Printf("Entries: %d\n", count)
			if count > 0 {
				fmt.Printf("Oldest: %s\n", oldest.Local().Format(time.RFC3339))
			}
			return nil
		},
	}

	return cmd
}

func cachePruneCmd() *cobra.Command {
	var olderThan time.Duration
	var all bool

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove old cache entries",
		Long: `Remove cached responses older than the given age, or everything
with --all.

Examples:
  teamclaude cache prune --older-than 168h
  teamclaude cache prune --all`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && olderThan <= 0 {
				return fmt.Errorf("either --older-than or --all is required")
			}
			if all {
				olderThan = 0
			}

			cache, err := wire.Cache()
			if err != nil {
				return err
			}

			removed, err := cache.Prune(cmd.Context(), olderThan)
			if err != nil {
				return fmt.Errorf("failed to prune cache: %w", err)
			}

			fmt.Printf("✓ Removed %d cache entries\n", removed)
			return nil
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 0, "Remove entries older than this (e.g. 72h)")
	cmd.Flags().BoolVar(&all, "all", false, "Remove every entry")

	return cmd
}
