package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Generator produces opaque identifiers for new records. Callers must
// not parse the result; only equality is meaningful.
type Generator interface {
	NewID() (string, error)
}

type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

// NewID returns 32 hex characters backed by 16 random bytes.
func (g *RandomGenerator) NewID() (string, error) {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return hex.EncodeToString(raw), nil
}
