package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashBytes_Deterministic(t *testing.T) {
	data := []byte("An Act to consolidate the provisions of the Companies Income Tax Act")

	first := HashBytes(data)
	second := HashBytes(data)

	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
	assert.Len(t, first, 64) // hex sha256
}

func TestHashBytes_DiffersPerContent(t *testing.T) {
	assert.NotEqual(t, HashBytes([]byte("a")), HashBytes([]byte("b")))
}

func TestHashURL_Deterministic(t *testing.T) {
	url := "https://example.org/statutes/cita.pdf"

	assert.Equal(t, HashURL(url), HashURL(url))
	assert.NotEqual(t, HashURL(url), HashURL(url+"?v=2"))
}

func TestHashURL_HashesLocationNotContent(t *testing.T) {
	// The URL string itself is the identity: the digest equals the
	// byte digest of the string, remote content never enters into it.
	url := "https://example.org/doc.pdf"
	assert.Equal(t, HashBytes([]byte(url)), HashURL(url))
}
