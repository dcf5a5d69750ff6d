package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeneratePNR(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		pnr := GeneratePNR()

		assert.Len(t, pnr, 6)
		for _, c := range pnr {
			assert.True(t, strings.ContainsRune(pnrChars, c), "unexpected char %q in %s", c, pnr)
		}
		seen[pnr] = true
	}

	// 100 draws from a 36^6 space should essentially never collide.
	assert.Greater(t, len(seen), 95)
}
