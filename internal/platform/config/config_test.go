package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRouting(t *testing.T) {
	t.Run("decodes a valid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "routing.yaml")
		content := "root_domains:\n  - extendbee.com\n  - extendbee.shop\nreserved_subdomains:\n  - www\n  - admin\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		r, err := LoadRouting(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"extendbee.com", "extendbee.shop"}, r.RootDomains)
		assert.Equal(t, []string{"www", "admin"}, r.ReservedSubdomains)
	})

	t.Run("rejects a file without root domains", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "routing.yaml")
		require.NoError(t, os.WriteFile(path, []byte("reserved_subdomains: [www]\n"), 0o600))

		_, err := LoadRouting(path)
		assert.Error(t, err)
	})

	t.Run("rejects a missing file", func(t *testing.T) {
		_, err := LoadRouting(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestFromEnv(t *testing.T) {
	t.Setenv("EXTENDBEE_ADDR", ":9999")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("ROUTING_CONFIG", "")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "5s", cfg.RequestTimeout.String())
	assert.NotEmpty(t, cfg.Routing.RootDomains, "defaults apply when no routing file is set")
}
