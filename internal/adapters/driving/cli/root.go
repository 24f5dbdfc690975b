// Package cli implements the cobra command tree for Scandex.
package cli

import (
	"github.com/spf13/cobra"

	filecache "github.com/inkwell-labs/scandex-cli/internal/adapters/driven/cache/file"
	config "github.com/inkwell-labs/scandex-cli/internal/adapters/driven/config/file"
	"github.com/inkwell-labs/scandex-cli/internal/adapters/driven/pdftext"
	"github.com/inkwell-labs/scandex-cli/internal/adapters/driven/recognition/ocrmypdf"
	"github.com/inkwell-labs/scandex-cli/internal/adapters/driven/recognition/poppler"
	"github.com/inkwell-labs/scandex-cli/internal/adapters/driven/recognition/tesseract"
	"github.com/inkwell-labs/scandex-cli/internal/adapters/driven/storage/sqlite"
	"github.com/inkwell-labs/scandex-cli/internal/core/services"
	"github.com/inkwell-labs/scandex-cli/internal/logger"
)

// version is overridden at build time via -ldflags.
var version = "dev"

var (
	configDir   string
	verboseFlag bool

	// Wired lazily; version and help must not touch the database or
	// probe OCR binaries.
	settings       config.Settings
	settingsLoaded bool
	store          *sqlite.Store
	trail          *logger.Trail
	indexerService *services.IndexerService
	searchService  *services.SearchService
	exportService  *services.ExportService
)

var rootCmd = &cobra.Command{
	Use:   "scandex",
	Short: "OCR extraction and search indexing for scanned PDFs",
	Long: `Scandex recognises text in scanned PDFs, keeps the results in a
searchable local index, and answers keyword queries with page numbers
and context snippets. Recognition results are cached by file
fingerprint so unchanged files are never re-processed.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default ~/.scandex)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "verbose logging to stderr")
}

// Execute runs the command tree and releases wired resources.
func Execute() error {
	defer closeStore()
	return rootCmd.Execute()
}

// loadSettings reads the TOML config once per invocation.
func loadSettings() (config.Settings, error) {
	if settingsLoaded {
		return settings, nil
	}
	s, err := config.Load(configDir)
	if err != nil {
		return config.Settings{}, err
	}
	settings = s
	settingsLoaded = true
	return settings, nil
}

// ensureStore wires the document index, search and export services.
// Search and export must work without any OCR binary installed.
func ensureStore() error {
	if store != nil {
		return nil
	}

	s, err := loadSettings()
	if err != nil {
		return err
	}

	store, err = sqlite.NewStore(s.DataDir)
	if err != nil {
		return err
	}

	trail = logger.NewTrail(s.LogPathOrDefault())
	searchService = services.NewSearchService(store)
	exportService = services.NewExportService(store, trail)
	return nil
}

// ensureIndexer additionally wires the recognition pipeline, probing
// collaborator availability once.
func ensureIndexer() error {
	if indexerService != nil {
		return nil
	}
	if err := ensureStore(); err != nil {
		return err
	}

	cache, err := filecache.NewCache(settings.CacheDir)
	if err != nil {
		return err
	}

	recognition, err := services.NewRecognitionService(
		poppler.NewRasterizer(),
		tesseract.NewRecognizer(),
		ocrmypdf.NewProducer(),
		pdftext.NewExtractor(),
		cache,
	)
	if err != nil {
		return err
	}

	indexerService = services.NewIndexerService(store, recognition, trail)
	return nil
}

// closeStore releases the database handle if one was opened.
func closeStore() {
	if store != nil {
		_ = store.Close()
		store = nil
	}
}
