package invitecode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlphabet(t *testing.T) {
	assert.Len(t, Alphabet, 32)
	for _, ambiguous := range []string{"I", "O", "0", "1"} {
		assert.NotContains(t, Alphabet, ambiguous)
	}
}

func TestGenerate(t *testing.T) {
	t.Run("length and alphabet", func(t *testing.T) {
		for i := 0; i < 200; i++ {
			code, err := Generate()
			require.NoError(t, err)
			assert.Len(t, code, Length)
			assert.True(t, Valid(code), "generated code %q must be valid", code)
		}
	})

	t.Run("every symbol is reachable", func(t *testing.T) {
		seen := make(map[rune]bool)
		for i := 0; i < 2000 && len(seen) < len(Alphabet); i++ {
			code, err := Generate()
			require.NoError(t, err)
			for _, c := range code {
				seen[c] = true
			}
		}
		assert.Len(t, seen, len(Alphabet))
	})

	t.Run("codes vary", func(t *testing.T) {
		codes := make(map[string]bool)
		for i := 0; i < 100; i++ {
			code, err := Generate()
			require.NoError(t, err)
			codes[code] = true
		}
		assert.Greater(t, len(codes), 95)
	})
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "K7QX9M", Normalize(" k7qx9m "))
	assert.Equal(t, "K7QX9M", Normalize("K7Q X9M"))
	assert.Equal(t, "", Normalize("   "))
}

func TestValid(t *testing.T) {
	tests := []struct {
		code     string
		expected bool
	}{
		{"K7QX9M", true},
		{"ABCDEF", true},
		{"K7QX9", false},
		{"K7QX9MM", false},
		{"K7QX0M", false},
		{"K7QXIM", false},
		{"k7qx9m", false},
		{strings.Repeat("Z", 6), true},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, Valid(tt.code))
		})
	}
}
