// Package cli provides the command-line interface for the document
// pipeline: local ingestion, context queries and the MCP server.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/Franklivania/tax-yasef-sub001/internal/core/ports/driving"
	"github.com/Franklivania/tax-yasef-sub001/internal/logger"
)

var (
	verboseFlag bool

	libraryService driving.LibraryService
	ingestService  driving.IngestService
)

var rootCmd = &cobra.Command{
	Use:   "taxdocs",
	Short: "Statute ingestion and retrieval for conversational agents",
	Long: `taxdocs ingests statute PDFs into a content-addressed cache,
recovers their section structure, and serves token-bounded context
for queries, either directly or over MCP.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
}

// SetServices wires the driving services into the command tree.
// Must be called before Execute.
func SetServices(library driving.LibraryService, ingest driving.IngestService) {
	libraryService = library
	ingestService = ingest
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
