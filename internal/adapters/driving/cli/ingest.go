package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Franklivania/tax-yasef-sub001/internal/core/ports/driven"
	"github.com/Franklivania/tax-yasef-sub001/internal/core/ports/driving"
)

var ingestForce bool

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Ingest a document into the cache",
	Long: `Parses a local PDF, recovers its section structure, chunks and
indexes it, and stores the result in the content-addressed cache.
Re-ingesting identical content is a no-op unless --force is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVar(&ingestForce, "force", false, "re-ingest even on a cache hit")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	src := driven.Source{
		Data:     data,
		Filename: filepath.Base(args[0]),
	}
	doc, err := ingestService.Ingest(context.Background(), src, driving.IngestOptions{Force: ingestForce})
	if err != nil {
		return fmt.Errorf("ingesting %s: %w", args[0], err)
	}

	cmd.Printf("Ingested %s\n", src.Filename)
	cmd.Printf("  hash:   %s\n", doc.Hash)
	cmd.Printf("  pages:  %d\n", doc.Meta.PageCount)
	cmd.Printf("  chunks: %d\n", len(doc.Chunks))
	return nil
}
