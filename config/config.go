package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

const DefaultEndpoint = "http://localhost:8000/ask"

type SystemConfig struct {
	DataDirectory string `toml:"data_directory"`
}

type BackendConfig struct {
	Endpoint string `toml:"endpoint"`
	// RequestTimeout is a Go duration string ("30s", "2m"). Empty or "0" means no timeout.
	RequestTimeout string `toml:"request_timeout,omitempty"`
	CheckHealth    bool   `toml:"check_health"`
}

type UIConfig struct {
	ShowTimestamps bool `toml:"show_timestamps"`
}

type UserConfig struct {
	Backend BackendConfig `toml:"backend"`
	UI      UIConfig      `toml:"ui"`
}

type Config struct {
	DataDirectory  string
	Endpoint       string
	RequestTimeout time.Duration
	CheckHealth    bool
	ShowTimestamps bool
	Keybindings    *KeyBindingsConfig
}

var DebugLog *log.Logger

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

func (c *Config) applyEnvOverrides() {
	if endpoint := os.Getenv("LAWCHAT_ENDPOINT"); endpoint != "" {
		c.Endpoint = endpoint
	}
	if dataDir := os.Getenv("LAWCHAT_DATA_DIR"); dataDir != "" {
		c.DataDirectory = dataDir
	}
}

func CheckDebug() bool {
	debug := os.Getenv("LAWCHAT_DEBUG")
	return debug == "true" || debug == "1"
}

func InitDebugLog(dataDir string) {
	if !CheckDebug() {
		return
	}

	logPath := filepath.Join(dataDir, "debug.log")

	// 0600: the log carries questions and backend errors
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}

	DebugLog = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	DebugLog.Printf("=== Debug logging started (LAWCHAT_DEBUG=%s) ===", os.Getenv("LAWCHAT_DEBUG"))
	DebugLog.Printf("Log path: %s", logPath)
}

// Load resolves the configuration from settings.toml, the user config.toml in
// the data directory and LAWCHAT_* environment overrides, in that order.
func Load() (*Config, error) {
	cfg := &Config{
		DataDirectory: GetDefaultDataDir(),
		Endpoint:      DefaultEndpoint,
		CheckHealth:   true,
	}

	systemCfg, err := LoadSystemConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load system config: %w", err)
	}
	if systemCfg.DataDirectory != "" {
		cfg.DataDirectory = systemCfg.DataDirectory
	}

	// The data dir override must win before the user config is looked up
	if dataDir := os.Getenv("LAWCHAT_DATA_DIR"); dataDir != "" {
		cfg.DataDirectory = dataDir
	}

	dataDir := cfg.DataDir()
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	if err := EnsureDataDirPermissions(dataDir); err != nil {
		return nil, fmt.Errorf("failed to set data directory permissions: %w", err)
	}

	userCfg, err := LoadUserConfig(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}
	if err := cfg.applyUserConfig(userCfg); err != nil {
		return nil, err
	}

	cfg.applyEnvOverrides()

	kb, err := LoadKeybindings(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load keybindings: %w", err)
	}
	cfg.Keybindings = kb

	return cfg, nil
}

func (c *Config) applyUserConfig(userCfg *UserConfig) error {
	if userCfg.Backend.Endpoint != "" {
		c.Endpoint = userCfg.Backend.Endpoint
	}
	timeout, err := ParseTimeout(userCfg.Backend.RequestTimeout)
	if err != nil {
		return fmt.Errorf("invalid backend.request_timeout: %w", err)
	}
	c.RequestTimeout = timeout
	c.CheckHealth = userCfg.Backend.CheckHealth
	c.ShowTimestamps = userCfg.UI.ShowTimestamps
	return nil
}

// ParseTimeout accepts "", "0" or a positive Go duration.
func ParseTimeout(s string) (time.Duration, error) {
	if s == "" || s == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("timeout must not be negative: %s", s)
	}
	return d, nil
}
