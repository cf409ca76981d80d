package services

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateName(t *testing.T) {
	t.Parallel()

	t.Run("short names pass through", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Café molido", truncateName("Café molido", 38))
	})

	t.Run("long names end with ellipsis", func(t *testing.T) {
		t.Parallel()
		got := truncateName("Aceite de oliva extra virgen prensado en frío 500ml", 38)
		assert.Len(t, []rune(got), 38)
		assert.Equal(t, "...", got[len(got)-3:])
	})

	t.Run("accented name is never cut mid-character", func(t *testing.T) {
		t.Parallel()
		name := "Panela orgánica artesanal de caña señorial premium"
		for max := 5; max <= len([]rune(name)); max++ {
			got := truncateName(name, max)
			assert.True(t, utf8.ValidString(got), "max=%d produced invalid UTF-8: %q", max, got)
		}
	})
}
