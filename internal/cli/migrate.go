package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"projdeck/internal/config"
	"projdeck/internal/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate <state|settings>",
	Short: "Migrate the project list to another storage backend",
	Long: `Copy the project list from the current storage backend to the given one.

The migration is idempotent: when the target backend already holds projects,
nothing is copied. The source is left intact; switch the storage.backend
config key after migrating.

Examples:
  projdeck migrate settings   # copy state-file projects into the settings file`,
	Args: cobra.ExactArgs(1),
	RunE: runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	target := config.StorageBackend(args[0])
	switch target {
	case config.BackendState, config.BackendSettings:
	default:
		return fmt.Errorf("unknown backend %q (want state or settings)", args[0])
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	source := cfg.Storage.Backend
	if source == target {
		fmt.Printf("Already on the %s backend\n", target)
		return nil
	}

	copied, err := store.Migrate(source, target)
	if err != nil {
		return err
	}
	if !copied {
		fmt.Printf("Target backend %s already has projects; nothing copied\n", target)
		return nil
	}
	fmt.Printf("Copied projects from %s to %s\n", source, target)
	fmt.Printf("Set storage.backend = %q in your config to switch over\n", target)
	return nil
}
