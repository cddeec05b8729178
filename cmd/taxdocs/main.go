// Command taxdocs wires the adapters to the core services and runs
// the CLI.
package main

import (
	"fmt"
	"os"

	"github.com/Franklivania/tax-yasef-sub001/internal/adapters/driven/config/file"
	"github.com/Franklivania/tax-yasef-sub001/internal/adapters/driven/extractor/pdf"
	"github.com/Franklivania/tax-yasef-sub001/internal/adapters/driven/index/memindex"
	"github.com/Franklivania/tax-yasef-sub001/internal/adapters/driven/storage/memory"
	"github.com/Franklivania/tax-yasef-sub001/internal/adapters/driven/storage/sqlite"
	"github.com/Franklivania/tax-yasef-sub001/internal/adapters/driven/tokens"
	"github.com/Franklivania/tax-yasef-sub001/internal/adapters/driving/cli"
	"github.com/Franklivania/tax-yasef-sub001/internal/core/ports/driven"
	"github.com/Franklivania/tax-yasef-sub001/internal/core/services"
	"github.com/Franklivania/tax-yasef-sub001/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	// A failing durable cache degrades to in-memory operation rather
	// than refusing to start.
	var cache driven.DocumentCache
	sqliteCache, err := sqlite.NewCache(os.Getenv("TAXDOCS_DATA_DIR"))
	if err != nil {
		logger.Warn("Durable cache unavailable, using in-memory cache: %v", err)
		cache = memory.NewCache()
	} else {
		defer sqliteCache.Close()
		cache = sqliteCache
	}

	catalog := file.DefaultCatalog()
	if path := os.Getenv("TAXDOCS_CATALOG"); path != "" {
		catalog, err = file.LoadCatalog(path)
		if err != nil {
			return fmt.Errorf("loading catalog: %w", err)
		}
	}

	counter := tokens.NewCounter()
	pipeline := services.NewIngestPipeline(
		pdf.New(),
		cache,
		services.WithChunker(services.NewChunker(counter)),
	)
	engine := services.NewQueryEngine(counter)

	library, err := services.NewLibrary(catalog, pipeline, engine, memindex.NewBuilder())
	if err != nil {
		return fmt.Errorf("creating library: %w", err)
	}

	cli.SetServices(library, pipeline)
	return cli.Execute()
}
