// Package file loads the document catalog from TOML configuration.
package file

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/Franklivania/tax-yasef-sub001/internal/core/domain"
)

// LoadCatalog reads a catalog from a TOML file.
// The catalog is static configuration: it is read once and never
// written back.
func LoadCatalog(path string) (domain.Catalog, error) {
	var catalog domain.Catalog

	data, err := os.ReadFile(path)
	if err != nil {
		return catalog, fmt.Errorf("reading catalog file: %w", err)
	}
	if err := toml.Unmarshal(data, &catalog); err != nil {
		return catalog, fmt.Errorf("parsing catalog file: %w", err)
	}

	if len(catalog.Entries) == 0 {
		return catalog, domain.ErrNoCatalog
	}
	if catalog.DefaultID == "" {
		catalog.DefaultID = catalog.Entries[0].ID
	}
	if _, ok := catalog.Get(catalog.DefaultID); !ok {
		return catalog, fmt.Errorf("%w: default id %q not in catalog", domain.ErrUnknownDocument, catalog.DefaultID)
	}

	return catalog, nil
}

// DefaultCatalog is the built-in set of Nigerian tax statutes used
// when no catalog file is configured.
func DefaultCatalog() domain.Catalog {
	return domain.Catalog{
		DefaultID: "cita",
		Entries: []domain.CatalogEntry{
			{
				ID:         "cita",
				Title:      "Companies Income Tax Act",
				ShortTitle: "CITA",
				SourceURL:  "https://old.firs.gov.ng/wp-content/uploads/2021/01/CITA.pdf",
				Keywords: []string{
					"companies income tax", "company tax", "corporate tax",
					"total profits", "minimum tax", "company",
				},
			},
			{
				ID:         "pita",
				Title:      "Personal Income Tax Act",
				ShortTitle: "PITA",
				SourceURL:  "https://old.firs.gov.ng/wp-content/uploads/2021/01/PITA.pdf",
				Keywords: []string{
					"personal income tax", "paye", "individual income",
					"consolidated relief", "employee", "employment income",
				},
			},
			{
				ID:         "vata",
				Title:      "Value Added Tax Act",
				ShortTitle: "VAT Act",
				SourceURL:  "https://old.firs.gov.ng/wp-content/uploads/2021/01/VAT-Act.pdf",
				Keywords: []string{
					"value added tax", "vat", "taxable supplies",
					"input tax", "output tax", "zero-rated",
				},
			},
			{
				ID:         "firsea",
				Title:      "Federal Inland Revenue Service (Establishment) Act",
				ShortTitle: "FIRS Act",
				SourceURL:  "https://old.firs.gov.ng/wp-content/uploads/2021/01/FIRS-Establishment-Act.pdf",
				Keywords: []string{
					"penalties", "penalty", "late filing", "offences",
					"enforcement", "tax administration", "federal inland revenue",
				},
			},
		},
	}
}
