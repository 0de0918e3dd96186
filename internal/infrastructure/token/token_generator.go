package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const tokenRandomBytes = 32

// Generator produces prefixed, hex encoded random tokens.
type Generator struct{}

func NewTokenGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Generate(prefix string) (string, error) {
	randomBytes := make([]byte, tokenRandomBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return prefix + hex.EncodeToString(randomBytes), nil
}
