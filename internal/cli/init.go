package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/noahlilabs/team-claude/internal/config"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration",
		Long: `Create .teamclaude/config.json in the current directory with the
default team roster and settings, ready to edit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(".teamclaude", "config.json")
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", path)
			}

			if err := config.Save(".", config.Default()); err != nil {
				return err
			}

			fmt.Printf("✓ Wrote %s\n", path)
			fmt.Println("Edit the agent roster and settings, then start the team with:")
			fmt.Println("  teamclaude session start")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config")

	return cmd
}
