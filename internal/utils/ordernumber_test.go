package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOrderNumber(t *testing.T) {
	t.Run("Format", func(t *testing.T) {
		num := GenerateOrderNumber()
		// Expected format: ORD-YYYYMMDD-HHMMSS-mmm-RRRR

		assert.True(t, strings.HasPrefix(num, "ORD-"), "Should start with ORD-")

		parts := strings.Split(num, "-")
		if assert.Len(t, parts, 5, "Should have 5 parts separated by hyphens") {
			assert.Equal(t, "ORD", parts[0])
			assert.Len(t, parts[1], 8, "Date part YYYYMMDD should be 8 chars")
			assert.Len(t, parts[2], 6, "Time part HHMMSS should be 6 chars")
			assert.Len(t, parts[3], 3, "Milliseconds part should be 3 chars")
			assert.Len(t, parts[4], 4, "Random part should be 4 chars")
		}
	})

	t.Run("Uniqueness", func(t *testing.T) {
		assert.NotEqual(t, GenerateOrderNumber(), GenerateOrderNumber())
	})
}
