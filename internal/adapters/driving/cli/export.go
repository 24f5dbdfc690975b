package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [output-file]",
	Short: "Export the document index to JSON",
	Long: `Writes every indexed document, newest first, as a JSON array to
the given file. Non-ASCII text is preserved as UTF-8.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	outPath := args[0]

	if err := ensureStore(); err != nil {
		return err
	}

	count, err := exportService.Export(context.Background(), outPath)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	cmd.Printf("Exported %d records to %s\n", count, outPath)
	return nil
}
