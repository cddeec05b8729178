// Package driven defines the outbound ports of the core: interfaces
// the pipeline depends on and adapters implement (text extraction,
// durable caching, search indexing, token counting).
package driven
