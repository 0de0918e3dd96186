package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Generate(t *testing.T) {
	generator := NewTokenGenerator()

	tests := []struct {
		name   string
		prefix string
	}{
		{name: "survey token", prefix: "svy_"},
		{name: "no prefix", prefix: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := generator.Generate(tt.prefix)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(token, tt.prefix))
			assert.Len(t, token, len(tt.prefix)+tokenRandomBytes*2)
		})
	}
}

func TestGenerator_Uniqueness(t *testing.T) {
	generator := NewTokenGenerator()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := generator.Generate("svy_")
		require.NoError(t, err)
		require.False(t, seen[token], "duplicate token generated")
		seen[token] = true
	}
}
