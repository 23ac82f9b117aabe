package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateRandomToken(t *testing.T) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	tok := GenerateRandomToken(6)
	assert.Len(t, tok, 6)
	for _, r := range tok {
		assert.Contains(t, charset, string(r))
	}

	// successive codes must be independent, not a replay of one seed
	seen := map[string]bool{}
	for i := 0; i < 32; i++ {
		seen[GenerateRandomToken(6)] = true
	}
	assert.Greater(t, len(seen), 1)
}
