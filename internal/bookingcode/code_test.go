package bookingcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateRange(t *testing.T) {
	for i := 0; i < 10000; i++ {
		code := Generate()
		assert.GreaterOrEqual(t, code, Min)
		assert.LessOrEqual(t, code, Max)
	}
}

func TestGenerateCoversRange(t *testing.T) {
	seen := make(map[int]bool)
	for i := 0; i < 100000; i++ {
		seen[Generate()] = true
	}

	// 100k draws over 900 values should hit every code.
	assert.Len(t, seen, Max-Min+1)
}
