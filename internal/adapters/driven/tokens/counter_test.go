package tokens

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeuristicCount(t *testing.T) {
	c := NewHeuristic()

	assert.Equal(t, 0, c.Count(""))
	assert.Equal(t, 1, c.Count("tax"))
	assert.Equal(t, 1, c.Count("four"))
	assert.Equal(t, 2, c.Count("fives"))
	assert.Equal(t, 25, c.Count(strings.Repeat("a", 100)))
}

func TestHeuristicCount_Monotonic(t *testing.T) {
	c := NewHeuristic()

	prev := 0
	text := ""
	for i := 0; i < 40; i++ {
		text += "word "
		n := c.Count(text)
		assert.GreaterOrEqual(t, n, prev)
		prev = n
	}
}
