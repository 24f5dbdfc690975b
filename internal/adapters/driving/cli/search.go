package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkwell-labs/scandex-cli/internal/core/domain"
)

var (
	searchLimit   int
	searchContext int
	searchJSON    bool
)

var searchCmd = &cobra.Command{
	Use:   "search [keyword]",
	Short: "Search indexed documents",
	Long: `Performs a case-insensitive keyword search over all indexed
documents and prints the matching files with page numbers and context
snippets.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 20, "maximum number of results")
	searchCmd.Flags().IntVar(&searchContext, "context", 80, "snippet context characters on each side of the match")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	keyword := args[0]

	if err := ensureStore(); err != nil {
		return err
	}

	ctx := context.Background()
	opts := domain.SearchOptions{
		Limit:        searchLimit,
		ContextChars: searchContext,
	}

	results, err := searchService.Search(ctx, keyword, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		cmd.Printf("  [%d] %s (page %d)\n", i+1, results[i].FilePath, results[i].Page)
		if results[i].Snippet != "" {
			cmd.Printf("      %s\n", results[i].Snippet)
		}
		cmd.Println()
	}

	return nil
}
