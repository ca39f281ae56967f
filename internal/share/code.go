package share

import (
	"crypto/rand"
	"encoding/hex"
)

// CodeGenerator produces candidate share codes.
type CodeGenerator interface {
	Next() string
}

// DefaultCodeLength is used when a HexGenerator is given a non-positive length.
const DefaultCodeLength = 12

// HexGenerator draws codes of Length lowercase hex characters from crypto/rand.
type HexGenerator struct {
	Length int
}

// NewHexGenerator returns a generator for codes of the given length.
// A non-positive length selects DefaultCodeLength.
func NewHexGenerator(length int) *HexGenerator {
	if length <= 0 {
		length = DefaultCodeLength
	}
	return &HexGenerator{Length: length}
}

// Next returns a fresh random code. It panics only if the system entropy source fails.
func (g *HexGenerator) Next() string {
	n := g.Length
	if n <= 0 {
		n = DefaultCodeLength
	}
	buf := make([]byte, (n+1)/2)
	if _, err := rand.Read(buf); err != nil {
		panic("share: crypto/rand failed: " + err.Error())
	}
	return hex.EncodeToString(buf)[:n]
}
