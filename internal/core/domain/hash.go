package domain

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashBytes returns the hex sha256 digest of the full byte stream.
// Identical bytes always produce identical hashes, so the digest is a
// stable cache key for file-backed sources.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashURL returns the hex sha256 digest of the URL string itself.
//
// The content behind the URL is deliberately NOT fetched: identity
// tracks the declared location, so a URL whose content changes without
// a location change produces stale cache hits. This is a documented
// limitation of the cache design, not a bug.
func HashURL(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])
}
