package shortcode_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"shortlink/pkg/shortcode"
)

func TestGenerator_DefaultLength(t *testing.T) {
	gen := shortcode.NewGenerator(0)

	for i := 0; i < 1000; i++ {
		assert.Len(t, gen.Generate(), 8)
	}
}

func TestGenerator_CustomLength(t *testing.T) {
	gen := shortcode.NewGenerator(12)
	assert.Len(t, gen.Generate(), 12)
}

func TestGenerator_StaysInAlphabet(t *testing.T) {
	gen := shortcode.NewGenerator(0)

	for i := 0; i < 1000; i++ {
		code := gen.Generate()
		for _, c := range code {
			assert.True(t, strings.ContainsRune(shortcode.Alphabet, c),
				"code %q contains invalid char %q", code, string(c))
		}
	}
}

func TestGenerator_ProducesUniqueCodesStatistically(t *testing.T) {
	gen := shortcode.NewGenerator(0)
	seen := make(map[string]bool)
	count := 10000

	for i := 0; i < count; i++ {
		seen[gen.Generate()] = true
	}

	// 62^8 possible codes; 10000 draws colliding is negligible.
	assert.Len(t, seen, count)
}
