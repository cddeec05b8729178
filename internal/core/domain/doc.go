// Package domain contains the core entities of the document pipeline:
// extracted pages, structure trees, chunks, ingested documents, the
// catalog of approved statutes, and query/context types.
//
// Domain types carry no behaviour that touches I/O; persistence and
// extraction live behind the driven ports.
package domain
