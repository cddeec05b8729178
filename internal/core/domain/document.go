package domain

import "time"

// TextItem is a single positioned text run from the extractor.
// Position and font size drive the heading heuristics downstream.
type TextItem struct {
	// Text is the raw run content.
	Text string

	// FontSize is the rendered font size in points.
	FontSize float64

	// X is the horizontal position on the page.
	X float64

	// Y is the vertical position on the page.
	Y float64

	// Page is the 1-based page number the run appears on.
	Page int
}

// ExtractedPage is one page of positioned text from the extractor.
// A page that failed extraction has an empty Items slice.
type ExtractedPage struct {
	// Number is the 1-based page number.
	Number int

	// Items are the text runs in reading order.
	Items []TextItem
}

// NodeType classifies a node in the recovered document outline.
type NodeType string

// Node types, from the document root down to leaf prose.
const (
	NodeTitle      NodeType = "title"
	NodePart       NodeType = "part"
	NodeSection    NodeType = "section"
	NodeSubsection NodeType = "subsection"
	NodeParagraph  NodeType = "paragraph"
)

// StructureNode is one node in the recovered document hierarchy.
// Nodes are built once by the structure builder and are immutable
// afterwards; the tree is owned exclusively by its IngestedDocument.
type StructureNode struct {
	// Type is the structural classification of this node.
	Type NodeType `json:"type"`

	// Level is the heading rank (0 for the root, 1 for parts, ...).
	Level int `json:"level"`

	// Title is the heading text, empty for paragraph nodes.
	Title string `json:"title,omitempty"`

	// SectionPath is the ordered list of ancestor titles from the
	// root down to (and including) this node's own title.
	SectionPath []string `json:"section_path,omitempty"`

	// Text is the body prose attached directly to this node.
	Text string `json:"text,omitempty"`

	// Children are the sub-nodes in document order.
	Children []*StructureNode `json:"children,omitempty"`
}

// Walk visits the node and all descendants depth-first in document order.
func (n *StructureNode) Walk(fn func(*StructureNode)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Chunk is a retrievable unit of document content.
// Chunks never span two documents and are immutable once created.
type Chunk struct {
	// ID is the unique identifier for the chunk within its document.
	ID string `json:"id"`

	// Content is the chunk text.
	Content string `json:"content"`

	// SectionPath locates the chunk in the document hierarchy as the
	// ordered list of ancestor heading titles. Non-empty for every
	// chunk derived from a heading-bearing node.
	SectionPath []string `json:"section_path,omitempty"`

	// TokenCount is the estimated token count of Content.
	TokenCount int `json:"token_count"`

	// NodeType is the type of the structure node the chunk came from.
	NodeType NodeType `json:"node_type"`

	// Position is the ordinal position within the document.
	Position int `json:"position"`
}

// SectionLabel renders the section path as a single display string.
func (c Chunk) SectionLabel() string {
	label := ""
	for i, p := range c.SectionPath {
		if i > 0 {
			label += " > "
		}
		label += p
	}
	return label
}

// DocumentMeta describes how and when a document was ingested.
type DocumentMeta struct {
	// SourceURL is the declared location of the source, if any.
	SourceURL string `json:"source_url,omitempty"`

	// Filename is the local file name of the source, if any.
	Filename string `json:"filename,omitempty"`

	// PageCount is the number of pages the extractor reported.
	PageCount int `json:"page_count"`

	// IngestedAt is when the pipeline produced this record.
	IngestedAt time.Time `json:"ingested_at"`
}

// IngestedDocument is the full result of ingesting one source.
// It is cached under its content hash and reused across queries.
type IngestedDocument struct {
	// Hash is the content hash identifying this document.
	Hash string `json:"hash"`

	// Root is the recovered structure tree.
	Root *StructureNode `json:"root"`

	// Chunks are the retrieval units in document order.
	Chunks []Chunk `json:"chunks"`

	// Meta carries source and ingestion metadata.
	Meta DocumentMeta `json:"meta"`
}

// CachedRecord is the durable form of an ingested document.
// The search index is not part of the record: it is a derived,
// disposable structure rebuilt from Chunks on load.
type CachedRecord struct {
	Hash   string         `json:"hash"`
	Root   *StructureNode `json:"root"`
	Chunks []Chunk        `json:"chunks"`
	Meta   DocumentMeta   `json:"meta"`
}
