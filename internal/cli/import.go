package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"projdeck/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the project list from a JSON or YAML export",
	Long: `Replace the stored project list with the contents of an export file.

The document is validated before anything is written: every group needs an
id and a projects array, every project an id, name, and path. A document
that fails validation leaves the stored list untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	// YAML imports are normalized to JSON so both formats run through the
	// same structural validation.
	if format := formatFromExtension(args[0], "json"); format == "yaml" {
		var doc interface{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("file is not valid YAML: %w", err)
		}
		data, err = json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to normalize YAML document: %w", err)
		}
	}

	groups, result, err := store.ParseDocument(data)
	if err != nil {
		return fmt.Errorf("file is not a valid project document: %w", err)
	}
	if !result.OK() {
		return fmt.Errorf("import rejected:\n%s", result.Error())
	}

	a, cleanup, err := setupApp()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := a.Store.Replace(groups); err != nil {
		return err
	}
	log.Info().Int("projects", a.Store.ProjectCount()).Msg("imported project list")
	fmt.Printf("Imported %d projects in %d groups\n", a.Store.ProjectCount(), len(groups))
	return nil
}
