package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the project list",
	Long: `Export the project list as JSON or YAML.

Without a file argument the document is written to stdout. The format is
taken from the file extension, or from --format when writing to stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "output format: json or yaml")
}

func runExport(cmd *cobra.Command, args []string) error {
	a, cleanup, err := setupApp()
	if err != nil {
		return err
	}
	defer cleanup()

	format := exportFormat
	target := ""
	if len(args) == 1 {
		target = args[0]
		format = formatFromExtension(target, format)
	}

	var data []byte
	switch format {
	case "json":
		data, err = json.MarshalIndent(a.Store.Groups, "", "  ")
	case "yaml", "yml":
		data, err = yaml.Marshal(a.Store.Groups)
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode project list: %w", err)
	}
	if format == "json" {
		data = append(data, '\n')
	}

	if target == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return err
	}
	fmt.Printf("Exported %d projects to %s\n", a.Store.ProjectCount(), target)
	return nil
}

// formatFromExtension maps a file extension to an export format, falling
// back to the flag value.
func formatFromExtension(path, fallback string) string {
	switch {
	case strings.HasSuffix(path, ".yaml"), strings.HasSuffix(path, ".yml"):
		return "yaml"
	case strings.HasSuffix(path, ".json"):
		return "json"
	}
	return fallback
}
