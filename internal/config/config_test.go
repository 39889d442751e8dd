package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "tilde expands to home", input: "~/music", expected: filepath.Join(home, "music")},
		{name: "absolute path unchanged", input: "/srv/music", expected: "/srv/music"},
		{name: "relative path unchanged", input: "music/tracks", expected: "music/tracks"},
		{name: "empty string unchanged", input: "", expected: ""},
		{name: "tilde only", input: "~", expected: home},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, expandPath(tt.input))
		})
	}
}

func TestLoadFromDefaults(t *testing.T) {
	cfg, err := LoadFrom()
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.MusicDir)
	assert.NotEmpty(t, cfg.LogFile)
	assert.Equal(t, 100*time.Millisecond, cfg.PollInterval())
	assert.Equal(t, 2*time.Second, cfg.StopTimeout())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
music_dir = "/srv/platter/tracks"
log_file = "/tmp/platter-test.log"
poll_interval_ms = 10
stop_timeout_ms = 250
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/platter/tracks", cfg.MusicDir)
	assert.Equal(t, "/tmp/platter-test.log", cfg.LogFile)
	assert.Equal(t, 10*time.Millisecond, cfg.PollInterval())
	assert.Equal(t, 250*time.Millisecond, cfg.StopTimeout())
}

func TestLoadFromMissingFileSkipped(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, 100*time.Millisecond, cfg.PollInterval())
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()
	require.NotEmpty(t, paths)
	assert.Equal(t, "config.toml", paths[len(paths)-1])
}
