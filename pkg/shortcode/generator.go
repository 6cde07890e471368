package shortcode

import (
	"crypto/rand"
	"math/big"
)

// Alphabet is the 62-character base62 alphabet codes are drawn from.
const Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

const defaultLength = 8

// Generator generates random short codes.
type Generator struct {
	length int
}

// NewGenerator creates a generator with a fixed code length (default 8 if <= 0).
func NewGenerator(length int) *Generator {
	if length <= 0 {
		length = defaultLength
	}
	return &Generator{length: length}
}

// Generate draws a code uniformly at random from the base62 alphabet.
func (g *Generator) Generate() string {
	b := make([]byte, g.length)
	base := big.NewInt(int64(len(Alphabet)))

	for i := range b {
		n, err := rand.Int(rand.Reader, base)
		if err != nil {
			// crypto/rand failing means the platform entropy source is broken.
			panic("crypto/rand failed: " + err.Error())
		}
		b[i] = Alphabet[n.Int64()]
	}

	return string(b)
}
