package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Query      string `json:"query" jsonschema:"the question to retrieve statute context for"`
	DocumentID string `json:"document_id,omitempty" jsonschema:"optional catalog id to pin the primary document; omit for automatic routing"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	DocumentID    string   `json:"document_id"`
	Title         string   `json:"title"`
	Mode          string   `json:"mode"`
	UsedDocuments []string `json:"used_documents"`
	Context       string   `json:"context"`
}

// DocumentsInput is the (empty) input schema for the documents tool.
type DocumentsInput struct{}

// DocumentsOutput lists the catalog.
type DocumentsOutput struct {
	Documents []DocumentInfo `json:"documents"`
	DefaultID string         `json:"default_id"`
}

// DocumentInfo describes one catalog entry.
type DocumentInfo struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	ShortTitle string   `json:"short_title"`
	Keywords   []string `json:"keywords"`
	Loaded     bool     `json:"loaded"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Retrieve statute passages relevant to a question, routed across the document catalog",
	}, s.handleAsk)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "documents",
		Description: "List the approved document catalog and load state",
	}, s.handleDocuments)
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	result, err := s.ports.Library.BuildContext(ctx, input.Query, input.DocumentID)
	if err != nil {
		return nil, AskOutput{}, err
	}

	return nil, AskOutput{
		DocumentID:    result.Primary.ID,
		Title:         result.Primary.Title,
		Mode:          string(result.Mode),
		UsedDocuments: result.UsedDocIDs,
		Context:       result.Context,
	}, nil
}

// handleDocuments handles the documents tool invocation.
func (s *Server) handleDocuments(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ DocumentsInput,
) (*mcp.CallToolResult, DocumentsOutput, error) {
	catalog := s.ports.Library.Catalog()

	out := DocumentsOutput{
		Documents: make([]DocumentInfo, len(catalog.Entries)),
		DefaultID: catalog.DefaultID,
	}
	for i, e := range catalog.Entries {
		_, loaded := s.ports.Library.Loaded(e.ID)
		out.Documents[i] = DocumentInfo{
			ID:         e.ID,
			Title:      e.Title,
			ShortTitle: e.ShortTitle,
			Keywords:   e.Keywords,
			Loaded:     loaded,
		}
	}
	return nil, out, nil
}
