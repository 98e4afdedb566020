package automatic

import (
	"encoding/base64"
	"fmt"
	"strings"

	"lukechampine.com/frand"
)

// NewSeed returns a fresh random seed for a runner.
func NewSeed() [32]byte {
	return frand.Entropy256()
}

// EncodeSeed renders a seed as URL-safe base64, so a match can be replayed.
func EncodeSeed(seed [32]byte) string {
	return base64.RawURLEncoding.EncodeToString(seed[:])
}

func DecodeSeed(s string) ([32]byte, error) {
	var seed [32]byte
	decoded, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return seed, fmt.Errorf("failed to decode seed: %w", err)
	}
	if len(decoded) != len(seed) {
		return seed, fmt.Errorf("invalid seed length: got %d bytes, expected %d", len(decoded), len(seed))
	}
	copy(seed[:], decoded)
	return seed, nil
}
