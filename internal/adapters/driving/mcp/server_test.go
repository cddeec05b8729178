package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Franklivania/tax-yasef-sub001/internal/core/domain"
	"github.com/Franklivania/tax-yasef-sub001/internal/core/ports/driving"
)

// fakeLibrary satisfies the library port with canned answers.
var _ driving.LibraryService = (*fakeLibrary)(nil)

type fakeLibrary struct {
	catalog domain.Catalog
	loaded  map[string]*driving.LoadedDocument
	result  *domain.ContextResult
	err     error
}

func (f *fakeLibrary) Catalog() domain.Catalog { return f.catalog }

func (f *fakeLibrary) EnsureLoaded(_ context.Context, id string) (*driving.LoadedDocument, error) {
	return f.loaded[id], nil
}

func (f *fakeLibrary) Loaded(id string) (*driving.LoadedDocument, bool) {
	d, ok := f.loaded[id]
	return d, ok
}

func (f *fakeLibrary) RouteForQuery(string) string { return f.catalog.DefaultID }

func (f *fakeLibrary) BuildContext(context.Context, string, string) (*domain.ContextResult, error) {
	return f.result, f.err
}

func newFakeLibrary() *fakeLibrary {
	return &fakeLibrary{
		catalog: domain.Catalog{
			DefaultID: "cita",
			Entries: []domain.CatalogEntry{
				{ID: "cita", Title: "Companies Income Tax Act", ShortTitle: "CITA", Keywords: []string{"company"}},
				{ID: "vata", Title: "Value Added Tax Act", ShortTitle: "VAT Act", Keywords: []string{"vat"}},
			},
		},
		loaded: map[string]*driving.LoadedDocument{
			"cita": {Entry: domain.CatalogEntry{ID: "cita"}},
		},
		result: &domain.ContextResult{
			Primary:    domain.CatalogEntry{ID: "cita", Title: "Companies Income Tax Act"},
			Mode:       domain.ModeAuto,
			UsedDocIDs: []string{"cita"},
			Context:    "§ PART I\nTax is imposed on profits.",
		},
	}
}

func TestPortsValidate(t *testing.T) {
	var nilPorts *Ports
	assert.Error(t, nilPorts.Validate())
	assert.Error(t, (&Ports{}).Validate())
	assert.NoError(t, (&Ports{Library: newFakeLibrary()}).Validate())
}

func TestNewServer(t *testing.T) {
	srv, err := NewServer(&Ports{Library: newFakeLibrary()})
	require.NoError(t, err)
	assert.NotNil(t, srv)

	_, err = NewServer(&Ports{})
	assert.Error(t, err)
}

func TestHandleAsk(t *testing.T) {
	lib := newFakeLibrary()
	srv, err := NewServer(&Ports{Library: lib})
	require.NoError(t, err)

	_, out, err := srv.handleAsk(context.Background(), nil, AskInput{Query: "company profits"})
	require.NoError(t, err)

	assert.Equal(t, "cita", out.DocumentID)
	assert.Equal(t, "Companies Income Tax Act", out.Title)
	assert.Equal(t, string(domain.ModeAuto), out.Mode)
	assert.Equal(t, []string{"cita"}, out.UsedDocuments)
	assert.Contains(t, out.Context, "Tax is imposed")
}

func TestHandleAsk_Error(t *testing.T) {
	lib := newFakeLibrary()
	lib.result = nil
	lib.err = domain.ErrUnknownDocument
	srv, err := NewServer(&Ports{Library: lib})
	require.NoError(t, err)

	_, _, err = srv.handleAsk(context.Background(), nil, AskInput{Query: "anything", DocumentID: "ghost"})

	assert.ErrorIs(t, err, domain.ErrUnknownDocument)
}

func TestHandleDocuments(t *testing.T) {
	srv, err := NewServer(&Ports{Library: newFakeLibrary()})
	require.NoError(t, err)

	_, out, err := srv.handleDocuments(context.Background(), nil, DocumentsInput{})
	require.NoError(t, err)

	assert.Equal(t, "cita", out.DefaultID)
	require.Len(t, out.Documents, 2)
	assert.True(t, out.Documents[0].Loaded)
	assert.False(t, out.Documents[1].Loaded)
	assert.Equal(t, "VAT Act", out.Documents[1].ShortTitle)
}
