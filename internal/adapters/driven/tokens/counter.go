// Package tokens estimates text size in language-model token units.
package tokens

import (
	"github.com/pkoukk/tiktoken-go"

	"github.com/Franklivania/tax-yasef-sub001/internal/core/ports/driven"
	"github.com/Franklivania/tax-yasef-sub001/internal/logger"
)

// encoding is the BPE encoding used for counting.
const encoding = "cl100k_base"

// Ensure Counter implements the port.
var _ driven.TokenCounter = (*Counter)(nil)

// Counter counts tokens with tiktoken when the encoding is available
// and falls back to a four-characters-per-token heuristic otherwise,
// so ingestion keeps working offline.
type Counter struct {
	tke *tiktoken.Tiktoken
}

// NewCounter creates a counter, loading the tiktoken encoding.
func NewCounter() *Counter {
	tke, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		logger.Warn("tiktoken encoding %s unavailable, using heuristic estimates: %v", encoding, err)
		return &Counter{}
	}
	return &Counter{tke: tke}
}

// NewHeuristic creates a counter that always uses the heuristic.
// Deterministic and offline; used in tests.
func NewHeuristic() *Counter {
	return &Counter{}
}

// Count returns the estimated token count of the text.
func (c *Counter) Count(text string) int {
	if text == "" {
		return 0
	}
	if c.tke != nil {
		return len(c.tke.Encode(text, nil, nil))
	}
	return (len(text) + 3) / 4
}
