package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultServerURL, cfg.ServerURL)
	assert.Equal(t, time.Second, cfg.PollEvery())
	assert.Equal(t, 5*time.Second, cfg.TriggerAfter())
	assert.Equal(t, 30*time.Minute, cfg.MeetingFor())
	assert.False(t, cfg.Logging.Debug)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultServerURL, cfg.ServerURL)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "server_url: http://10.0.0.5:8000\npoll_interval: 2s\nlogging:\n  debug: true\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:8000", cfg.ServerURL)
	assert.Equal(t, 2*time.Second, cfg.PollEvery())
	assert.True(t, cfg.Logging.Debug)
	// untouched fields keep defaults
	assert.Equal(t, 5*time.Second, cfg.TriggerAfter())
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server_url: [broken"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("AIMEA_SERVER_URL", "http://envhost:9000")
	t.Setenv("AIMEA_TRIGGER_DELAY", "7s")
	t.Setenv("AIMEA_DEBUG", "1")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "http://envhost:9000", cfg.ServerURL)
	assert.Equal(t, 7*time.Second, cfg.TriggerAfter())
	assert.True(t, cfg.Logging.Debug)
}

func TestBadDurationFallsBack(t *testing.T) {
	cfg := Default()
	cfg.PollInterval = "soon"
	cfg.TriggerDelay = "-3s"
	assert.Equal(t, DefaultPollInterval, cfg.PollEvery())
	assert.Equal(t, DefaultTriggerDelay, cfg.TriggerAfter())
}

func TestWatcherDeliversReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("poll_interval: 1s\n"), 0o644))

	w, err := Watch(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("poll_interval: 3s\n"), 0o644))

	select {
	case cfg := <-w.C:
		assert.Equal(t, 3*time.Second, cfg.PollEvery())
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for config reload")
	}
}
