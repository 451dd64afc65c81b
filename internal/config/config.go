// Package config loads and saves the application settings file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config is the whole settings file.
type Config struct {
	App      AppConfig      `yaml:"app" toml:"app"`
	Database DatabaseConfig `yaml:"database" toml:"database"`
	Theme    ThemeConfig    `yaml:"theme" toml:"theme"`
	Web      WebConfig      `yaml:"web" toml:"web"`
	Log      LogConfig      `yaml:"log" toml:"log"`
}

// AppConfig holds the window title and size.
type AppConfig struct {
	Name         string `yaml:"name" toml:"name"`
	WindowWidth  int    `yaml:"window_width" toml:"window_width"`
	WindowHeight int    `yaml:"window_height" toml:"window_height"`
}

// DatabaseConfig selects the task database file and driver.
type DatabaseConfig struct {
	Path string `yaml:"path" toml:"path"`
	// Driver is "sqlite3" (cgo) or "sqlite" (pure Go).
	Driver string `yaml:"driver" toml:"driver"`
}

// ThemeConfig holds the initial theme.
type ThemeConfig struct {
	DarkMode bool `yaml:"dark_mode" toml:"dark_mode"`
}

// WebConfig configures the web front-end.
type WebConfig struct {
	Addr string `yaml:"addr" toml:"addr"`
}

// LogConfig sets the slog level: debug, info, warn or error.
type LogConfig struct {
	Level string `yaml:"level" toml:"level"`
}

// DefaultConfig returns the settings used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:         "To-Do List",
			WindowWidth:  480,
			WindowHeight: 640,
		},
		Database: DatabaseConfig{
			Path:   "tasks.db",
			Driver: "sqlite3",
		},
		Web: WebConfig{
			Addr: ":8080",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// SlogLevel maps the configured level name onto a slog level.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Manager owns the settings file at a fixed path.
type Manager struct {
	mu         sync.RWMutex
	config     *Config
	configPath string
}

// NewManager loads the settings at path, or at DefaultPath when path is
// empty. A missing file is created with the defaults.
func NewManager(path string) (*Manager, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	m := &Manager{configPath: path}

	err := m.Reload()
	if errors.Is(err, fs.ErrNotExist) {
		m.config = DefaultConfig()
		if err := m.Save(); err != nil {
			return nil, err
		}
		return m, nil
	}
	if err != nil {
		return nil, err
	}

	return m, nil
}

// DefaultPath is ~/.todolist/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, ".todolist", "config.yaml"), nil
}

// Path returns the settings file location.
func (m *Manager) Path() string { return m.configPath }

// Config returns a copy of the current settings.
func (m *Manager) Config() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return *m.config
}

// Update changes the settings with fn and writes them to disk.
func (m *Manager) Update(fn func(*Config)) error {
	m.mu.Lock()
	fn(m.config)
	m.mu.Unlock()
	return m.Save()
}

// Reload reads the settings file again. Fields absent from the file keep
// their default values.
func (m *Manager) Reload() error {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return err
	}

	cfg, err := decode(m.configPath, data)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", m.configPath, err)
	}

	m.mu.Lock()
	m.config = cfg
	m.mu.Unlock()
	return nil
}

// Save writes the current settings to disk.
func (m *Manager) Save() error {
	m.mu.RLock()
	data, err := encode(m.configPath, m.config)
	m.mu.RUnlock()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(m.configPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return os.WriteFile(m.configPath, data, 0o644)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func decode(path string, data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if isTOML(path) {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func encode(path string, cfg *Config) ([]byte, error) {
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, fmt.Errorf("failed to encode config: %w", err)
		}
		return buf.Bytes(), nil
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}
