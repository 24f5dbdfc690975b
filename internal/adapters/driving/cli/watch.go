package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/inkwell-labs/scandex-cli/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch [folder]",
	Short: "Watch a folder and re-index on change",
	Long: `Runs an initial indexing pass over the folder, then watches it for
filesystem changes and re-indexes when PDFs are added, modified or
removed. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&indexLang, "lang", "", "tesseract language spec (default from config)")
	watchCmd.Flags().IntVar(&indexDPI, "dpi", 0, "rasterisation DPI (default from config)")
	watchCmd.Flags().BoolVarP(&indexRecursive, "recursive", "r", false, "descend into subdirectories")
	watchCmd.Flags().BoolVar(&indexPipeline, "pipeline", false, "use the searchable-PDF pipeline instead of direct OCR")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	folder := args[0]

	if err := ensureIndexer(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s (ctrl-c to stop)\n", folder)

	w := watcher.New(indexerService, folder, indexOptions(cmd), progressSink(cmd))
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watch failed: %w", err)
	}

	cmd.Println("Stopped.")
	return nil
}
