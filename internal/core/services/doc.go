// Package services implements the core document pipeline: text
// normalisation, structure recovery, chunking, the cache-aware
// ingestion pipeline, the query engine, and the document library with
// its single-flight loader.
package services
