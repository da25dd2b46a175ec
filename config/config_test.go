package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("LAWCHAT_ENDPOINT", "")
	t.Setenv("LAWCHAT_DATA_DIR", "")
	t.Setenv("LAWCHAT_DEBUG", "")
	return home
}

func TestLoadCreatesDefaults(t *testing.T) {
	home := isolateHome(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultEndpoint, cfg.Endpoint)
	assert.Equal(t, time.Duration(0), cfg.RequestTimeout)
	assert.True(t, cfg.CheckHealth)
	assert.True(t, cfg.ShowTimestamps)
	require.NotNil(t, cfg.Keybindings)

	dataDir := filepath.Join(home, ".local", "share", "lawchat")
	assert.Equal(t, dataDir, cfg.DataDir())
	assert.FileExists(t, filepath.Join(home, ".config", "lawchat", "settings.toml"))
	assert.FileExists(t, filepath.Join(dataDir, "config.toml"))
	assert.FileExists(t, filepath.Join(dataDir, "keybindings.toml"))

	info, err := os.Stat(dataDir)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestLoadReadsUserConfig(t *testing.T) {
	isolateHome(t)
	dataDir := t.TempDir()
	t.Setenv("LAWCHAT_DATA_DIR", dataDir)

	userCfg := `[backend]
endpoint = "http://law.example:9000/ask"
request_timeout = "45s"
check_health = false
`
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "config.toml"), []byte(userCfg), 0600))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, dataDir, cfg.DataDir())
	assert.Equal(t, "http://law.example:9000/ask", cfg.Endpoint)
	assert.Equal(t, 45*time.Second, cfg.RequestTimeout)
	assert.False(t, cfg.CheckHealth)
}

func TestLoadEnvOverridesEndpoint(t *testing.T) {
	isolateHome(t)
	t.Setenv("LAWCHAT_DATA_DIR", t.TempDir())
	t.Setenv("LAWCHAT_ENDPOINT", "http://127.0.0.1:8111/ask")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8111/ask", cfg.Endpoint)
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	isolateHome(t)
	dataDir := t.TempDir()
	t.Setenv("LAWCHAT_DATA_DIR", dataDir)

	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "config.toml"),
		[]byte("[backend]\nrequest_timeout = \"soon\"\n"), 0600))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request_timeout")
}

func TestParseTimeout(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"", 0, false},
		{"0", 0, false},
		{"30s", 30 * time.Second, false},
		{"2m", 2 * time.Minute, false},
		{"-1s", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimeout(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home := isolateHome(t)

	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "data"), ExpandPath("~/data"))
	assert.Equal(t, filepath.Clean("/tmp/x/y"), ExpandPath("/tmp/x/../x/y"))
}

func TestInitDebugLogDisabled(t *testing.T) {
	isolateHome(t)
	DebugLog = nil

	dir := t.TempDir()
	InitDebugLog(dir)

	assert.Nil(t, DebugLog)
	assert.NoFileExists(t, filepath.Join(dir, "debug.log"))
}

func TestInitDebugLogEnabled(t *testing.T) {
	isolateHome(t)
	t.Setenv("LAWCHAT_DEBUG", "1")
	t.Cleanup(func() { DebugLog = nil })

	dir := t.TempDir()
	InitDebugLog(dir)

	require.NotNil(t, DebugLog)
	assert.FileExists(t, filepath.Join(dir, "debug.log"))
}
