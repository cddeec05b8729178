package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() Catalog {
	return Catalog{
		DefaultID: "cita",
		Entries: []CatalogEntry{
			{ID: "cita", Title: "Companies Income Tax Act", Keywords: []string{"companies income tax", "corporate tax"}},
			{ID: "vata", Title: "Value Added Tax Act", Keywords: []string{"value added tax", "vat"}},
		},
	}
}

func TestCatalog_Get(t *testing.T) {
	catalog := testCatalog()

	entry, ok := catalog.Get("vata")
	require.True(t, ok)
	assert.Equal(t, "Value Added Tax Act", entry.Title)

	_, ok = catalog.Get("missing")
	assert.False(t, ok)
}

func TestCatalog_Default(t *testing.T) {
	catalog := testCatalog()

	entry, ok := catalog.Default()
	require.True(t, ok)
	assert.Equal(t, "cita", entry.ID)
}

func TestCatalogEntry_Score_FullKeyword(t *testing.T) {
	entry := CatalogEntry{Keywords: []string{"value added tax"}}

	assert.Equal(t, 2, entry.Score("how do I register for value added tax"))
}

func TestCatalogEntry_Score_PartialWord(t *testing.T) {
	entry := CatalogEntry{Keywords: []string{"consolidated relief allowance"}}

	// Only one word of the multi-word keyword appears.
	assert.Equal(t, 1, entry.Score("what relief can I claim"))
}

func TestCatalogEntry_Score_PluralKeyword(t *testing.T) {
	entry := CatalogEntry{Keywords: []string{"penalties"}}

	assert.Positive(t, entry.Score("what is the penalty for late filing"))
}

func TestCatalogEntry_Score_NoOverlap(t *testing.T) {
	entry := CatalogEntry{Keywords: []string{"value added tax"}}

	assert.Zero(t, entry.Score("completely unrelated question"))
	assert.Zero(t, entry.Score(""))
}
