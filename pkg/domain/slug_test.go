package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSlug(t *testing.T) {
	t.Run("accepts valid slugs", func(t *testing.T) {
		for _, in := range []string{"bombay", "acme-shop", "store42", "a"} {
			slug, err := ParseSlug(in)
			require.NoError(t, err, in)
			assert.Equal(t, in, slug.String())
		}
	})

	t.Run("lowercases and trims", func(t *testing.T) {
		slug, err := ParseSlug("  Bombay ")
		require.NoError(t, err)
		assert.Equal(t, "bombay", slug.String())
	})

	t.Run("rejects invalid slugs", func(t *testing.T) {
		for _, in := range []string{"", "www.acme", "has space", "-leading", "trailing-", "double--hyphen", "ünïcode"} {
			_, err := ParseSlug(in)
			assert.Error(t, err, "expected rejection of %q", in)
		}
	})

	t.Run("rejects overlong slugs", func(t *testing.T) {
		long := make([]byte, 64)
		for i := range long {
			long[i] = 'a'
		}
		_, err := ParseSlug(string(long))
		assert.Error(t, err)
	})
}
