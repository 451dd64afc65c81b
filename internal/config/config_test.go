package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewManager_CreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	m, err := NewManager(path)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file to be written: %v", err)
	}
	cfg := m.Config()
	if cfg.Database.Path != "tasks.db" || cfg.Database.Driver != "sqlite3" {
		t.Errorf("unexpected database defaults: %+v", cfg.Database)
	}
	if cfg.Theme.DarkMode {
		t.Error("expected light theme by default")
	}
}

func TestNewManager_YAMLKeepsDefaultsForMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "theme:\n  dark_mode: true\ndatabase:\n  path: /tmp/other.db\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := NewManager(path)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	cfg := m.Config()
	if !cfg.Theme.DarkMode {
		t.Error("expected dark mode from file")
	}
	if cfg.Database.Path != "/tmp/other.db" {
		t.Errorf("expected path from file, got %q", cfg.Database.Path)
	}
	if cfg.Database.Driver != "sqlite3" || cfg.Web.Addr != ":8080" {
		t.Errorf("expected defaults for missing fields, got %+v", cfg)
	}
}

func TestNewManager_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[database]\ndriver = \"sqlite\"\n\n[web]\naddr = \":9090\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := NewManager(path)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	cfg := m.Config()
	if cfg.Database.Driver != "sqlite" || cfg.Web.Addr != ":9090" {
		t.Errorf("unexpected config from toml: %+v", cfg)
	}
	if cfg.Database.Path != "tasks.db" {
		t.Errorf("expected default path, got %q", cfg.Database.Path)
	}
}

func TestNewManager_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("theme: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewManager(path); err == nil {
		t.Fatal("expected parse error")
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "unterminated") {
		t.Error("expected broken file to be left alone")
	}
}

func TestUpdate_RoundTrip(t *testing.T) {
	for _, name := range []string{"config.yaml", "config.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			m, err := NewManager(path)
			if err != nil {
				t.Fatalf("NewManager failed: %v", err)
			}

			if err := m.Update(func(c *Config) { c.Theme.DarkMode = true }); err != nil {
				t.Fatalf("Update failed: %v", err)
			}

			again, err := NewManager(path)
			if err != nil {
				t.Fatalf("reload failed: %v", err)
			}
			if !again.Config().Theme.DarkMode {
				t.Error("expected dark mode to persist")
			}
		})
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"chatty", slog.LevelInfo},
	}

	for _, tt := range tests {
		cfg := Config{Log: LogConfig{Level: tt.level}}
		if got := cfg.SlogLevel(); got != tt.expected {
			t.Errorf("level %q: expected %v, got %v", tt.level, tt.expected, got)
		}
	}
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	m, err := NewManager(path)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan Config, 8)
	done := make(chan error, 1)
	go func() {
		done <- m.Watch(ctx, func(c Config) { changes <- c })
	}()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(path, []byte("theme:\n  dark_mode: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case c := <-changes:
			if c.Theme.DarkMode {
				cancel()
				if err := <-done; err != nil {
					t.Fatalf("Watch returned error: %v", err)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for config reload")
		}
	}
}
