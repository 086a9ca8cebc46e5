package app_config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseNewsdashAppConfig_Defaults(t *testing.T) {
	c, err := ParseNewsdashAppConfig("")
	require.NoError(t, err)
	require.Equal(t, DefaultNewsdashAppConfig(), c)

	c, err = ParseNewsdashAppConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, 300*time.Second, c.NlpCacheTTL())
	require.Equal(t, 30*time.Minute, c.ApiCacheTTL())
}

func TestParseNewsdashAppConfig_Override(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
SERVER_ADDR: ":9090"
NLP_CACHE_TTL_SECOND: 60
DEFAULT_LANGUAGE: "de"
`), 0o644))

	c, err := ParseNewsdashAppConfig(path)
	require.NoError(t, err)
	require.Equal(t, ":9090", c.SERVER_ADDR)
	require.Equal(t, time.Minute, c.NlpCacheTTL())
	require.Equal(t, "de", c.DEFAULT_LANGUAGE)
	// untouched keys keep their defaults
	require.Equal(t, 100, c.API_CACHE_SIZE)
	require.Equal(t, 24*time.Hour, c.ArticleCacheTTL())
}

func TestParseNewsdashAppConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("SERVER_ADDR: [unclosed"), 0o644))

	_, err := ParseNewsdashAppConfig(path)
	require.Error(t, err)
}
