package main

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--app_config_path", ""))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range []string{"serve", "headlines", "search", "sources", "feed", "cleanup-cache", "create-user"} {
		require.True(t, names[name], name)
	}
}

func TestCreateUserAndCleanupCache(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "cli.db"))

	out, err := execute(t, "create-user", "alice", "secret")
	require.NoError(t, err)
	require.Contains(t, out, "Created user alice with id 1.")

	_, err = execute(t, "create-user", "alice", "secret")
	require.Error(t, err)

	out, err = execute(t, "cleanup-cache")
	require.NoError(t, err)
	require.Contains(t, out, "Deleted 0 expired article(s).")
}

func TestHeadlinesWithoutApiKey(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "cli.db"))
	t.Setenv("NEWS_API_KEY", "")

	_, err := execute(t, "headlines")
	require.ErrorContains(t, err, "news api key is required")
}

func TestParseFlagTime(t *testing.T) {
	parsed, err := parseFlagTime("")
	require.NoError(t, err)
	require.Nil(t, parsed)

	parsed, err = parseFlagTime("2024-03-10 08:30")
	require.NoError(t, err)
	require.True(t, time.Date(2024, 3, 10, 8, 30, 0, 0, time.UTC).Equal(*parsed))

	_, err = parseFlagTime("someday")
	require.Error(t, err)
}
