package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/inkwell-labs/scandex-cli/internal/core/domain"
)

// timeRounding keeps printed durations readable.
const timeRounding = 10 * time.Millisecond

var (
	indexLang      string
	indexDPI       int
	indexRecursive bool
	indexForce     bool
	indexNoCache   bool
	indexPipeline  bool
	indexJSON      bool
)

var indexCmd = &cobra.Command{
	Use:   "index [path]",
	Short: "Recognise and index a PDF file or folder",
	Long: `Runs OCR over the given PDF file, or over every PDF in the given
folder, and stores the recognised text in the local index. Files whose
content is unchanged since the last run are skipped unless --force is
set.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().StringVar(&indexLang, "lang", "", "tesseract language spec (default from config)")
	indexCmd.Flags().IntVar(&indexDPI, "dpi", 0, "rasterisation DPI (default from config)")
	indexCmd.Flags().BoolVarP(&indexRecursive, "recursive", "r", false, "descend into subdirectories")
	indexCmd.Flags().BoolVarP(&indexForce, "force", "f", false, "re-index files even if unchanged")
	indexCmd.Flags().BoolVar(&indexNoCache, "no-cache", false, "bypass the recognition cache")
	indexCmd.Flags().BoolVar(&indexPipeline, "pipeline", false, "use the searchable-PDF pipeline instead of direct OCR")
	indexCmd.Flags().BoolVar(&indexJSON, "json", false, "output the batch summary as JSON")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	path := args[0]

	if err := ensureIndexer(); err != nil {
		return err
	}

	opts := indexOptions(cmd)

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access %s: %w", path, err)
	}

	ctx := context.Background()

	if !info.IsDir() {
		action, err := indexerService.IndexFile(ctx, path, opts)
		if err != nil {
			return fmt.Errorf("indexing failed: %w", err)
		}
		cmd.Printf("Indexed %s (%s)\n", path, action)
		return nil
	}

	result, err := indexerService.IndexFolder(ctx, path, opts, progressSink(cmd))
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	if indexJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal summary: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println()
	cmd.Printf("Indexed %d of %d files (%d updated, %d skipped, %d errors) in %s\n",
		result.Indexed, result.Total, result.Updated, result.Skipped,
		len(result.Errors), result.Duration.Round(timeRounding))
	for i := range result.Errors {
		cmd.Printf("  error: %s: %s\n", result.Errors[i].FilePath, result.Errors[i].Err)
	}
	return nil
}

// indexOptions collects the batch options shared by index and watch,
// falling back to configured defaults for language and DPI. The
// invoking command's flag set decides whether --pipeline was given
// explicitly, so a flag on either command overrides the config default.
func indexOptions(cmd *cobra.Command) domain.BatchOptions {
	lang := indexLang
	if lang == "" {
		lang = settings.Language
	}
	dpi := indexDPI
	if dpi == 0 {
		dpi = settings.DPI
	}
	pipeline := indexPipeline
	if settings.Pipeline && !cmd.Flags().Changed("pipeline") {
		pipeline = true
	}

	return domain.BatchOptions{
		Lang:      lang,
		DPI:       dpi,
		Recursive: indexRecursive,
		Force:     indexForce,
		NoCache:   indexNoCache,
		Pipeline:  pipeline,
	}
}

// progressSink renders per-file progress lines. Start events are only
// shown in verbose runs; the terminal state of each file always prints.
func progressSink(cmd *cobra.Command) domain.ProgressSink {
	return func(event domain.ProgressEvent) {
		switch event.Status {
		case domain.ProgressStart:
			if verboseFlag {
				cmd.Printf("[%d/%d] %s...\n", event.Index, event.Total, event.FilePath)
			}
		case domain.ProgressError:
			cmd.Printf("[%d/%d] %s: ERROR %s\n", event.Index, event.Total, event.FilePath, event.Message)
		default:
			cmd.Printf("[%d/%d] %s: %s\n", event.Index, event.Total, event.FilePath, event.Message)
		}
	}
}
