package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type paths struct {
	config string
	db     string
}

func setupPaths(t *testing.T) paths {
	t.Helper()
	dir := t.TempDir()
	return paths{
		config: filepath.Join(dir, "config.yaml"),
		db:     filepath.Join(dir, "tasks.db"),
	}
}

func execute(t *testing.T, p paths, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRoot()
	cmd.SetArgs(append([]string{"--config", p.config, "--db", p.db}, args...))
	out := bytes.NewBuffer(nil)
	cmd.SetOut(out)
	cmd.SetErr(bytes.NewBuffer(nil))
	cmd.SetIn(strings.NewReader(stdin))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func mustExecute(t *testing.T, p paths, args ...string) string {
	t.Helper()
	out, err := execute(t, p, "", args...)
	if err != nil {
		t.Fatalf("%v failed: %v", args, err)
	}
	return out
}

func TestRootCommandHasSubcommands(t *testing.T) {
	cmd := NewRoot()
	if cmd.Use != "todolist" {
		t.Fatalf("expected root command, got %q", cmd.Use)
	}

	want := []string{"add", "delete", "desktop", "list", "move", "serve", "theme", "tui"}
	for _, name := range want {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected %s command", name)
		}
	}
}

func TestRootRunsDesktopByDefault(t *testing.T) {
	p := setupPaths(t)

	origRun := runDesktop
	defer func() { runDesktop = origRun }()

	called := false
	runDesktop = func(ctx context.Context, e *env, themes <-chan bool) error {
		called = true
		if e.store == nil {
			t.Error("expected an open store")
		}
		if themes == nil {
			t.Error("expected a theme channel")
		}
		return nil
	}

	mustExecute(t, p)
	if !called {
		t.Fatal("expected desktop front-end to run")
	}
	if _, err := os.Stat(p.config); err != nil {
		t.Errorf("expected default config to be written: %v", err)
	}
	if _, err := os.Stat(p.db); err != nil {
		t.Errorf("expected database file to be created: %v", err)
	}
}

func TestTUICommandLogsNextToConfig(t *testing.T) {
	p := setupPaths(t)

	origRun := runTUI
	defer func() { runTUI = origRun }()

	called := false
	runTUI = func(ctx context.Context, e *env, themes <-chan bool) error {
		called = true
		return nil
	}

	mustExecute(t, p, "tui")
	if !called {
		t.Fatal("expected terminal front-end to run")
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(p.config), "tui.log")); err != nil {
		t.Errorf("expected tui.log: %v", err)
	}
}

func TestTaskCommands(t *testing.T) {
	p := setupPaths(t)

	out := mustExecute(t, p, "add", "Buy", "milk")
	if !strings.Contains(out, "Added #1 Buy milk [Low | General]") {
		t.Errorf("unexpected add output %q", out)
	}

	out = mustExecute(t, p, "add", "Pay rent", "--priority", "high", "-c", "personal")
	if !strings.Contains(out, "Added #2 Pay rent [High | Personal]") {
		t.Errorf("unexpected add output %q", out)
	}

	out = mustExecute(t, p, "list", "--search", "rent")
	if !strings.Contains(out, "Pay rent") || strings.Contains(out, "Buy milk") {
		t.Errorf("unexpected search output %q", out)
	}

	out = mustExecute(t, p, "list", "-p", "low")
	if !strings.Contains(out, "Buy milk") || strings.Contains(out, "Pay rent") {
		t.Errorf("unexpected priority filter output %q", out)
	}

	out = mustExecute(t, p, "list", "-c", "idea")
	if !strings.Contains(out, "No tasks.") {
		t.Errorf("expected empty list, got %q", out)
	}

	out, err := execute(t, p, "n\n", "delete", "2")
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if !strings.Contains(out, `Delete "Pay rent"? [y/N]`) || !strings.Contains(out, "Kept 2") {
		t.Errorf("unexpected declined delete output %q", out)
	}

	out = mustExecute(t, p, "delete", "2", "--yes")
	if !strings.Contains(out, "Deleted 2") {
		t.Errorf("unexpected delete output %q", out)
	}

	out = mustExecute(t, p, "delete", "99", "--yes")
	if !strings.Contains(out, "No task 99") {
		t.Errorf("expected unknown id to be a no-op, got %q", out)
	}

	mustExecute(t, p, "add", "Call mom", "-p", "Medium", "-c", "Reminder")
	out = mustExecute(t, p, "move", "1", "0")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || !strings.Contains(lines[0], "Call mom") || !strings.Contains(lines[1], "Buy milk") {
		t.Errorf("unexpected move output %q", out)
	}

	if _, err := execute(t, p, "", "move", "5", "0"); err == nil {
		t.Error("expected out of range move to fail")
	}
}

func TestAddRejectsUnknownPriority(t *testing.T) {
	p := setupPaths(t)

	if _, err := execute(t, p, "", "add", "Buy milk", "-p", "urgent"); err == nil {
		t.Fatal("expected invalid priority error")
	}

	out := mustExecute(t, p, "list")
	if !strings.Contains(out, "No tasks.") {
		t.Errorf("expected nothing stored, got %q", out)
	}
}

func TestAddBlankTitle(t *testing.T) {
	p := setupPaths(t)

	out := mustExecute(t, p, "add", "   ")
	if !strings.Contains(out, "Nothing added") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestThemeCommand(t *testing.T) {
	p := setupPaths(t)

	if out := mustExecute(t, p, "theme"); strings.TrimSpace(out) != "light" {
		t.Errorf("expected light, got %q", out)
	}
	if out := mustExecute(t, p, "theme", "dark"); strings.TrimSpace(out) != "dark" {
		t.Errorf("expected dark, got %q", out)
	}

	data, err := os.ReadFile(p.config)
	if err != nil {
		t.Fatalf("failed to read config: %v", err)
	}
	if !strings.Contains(string(data), "dark_mode: true") {
		t.Errorf("expected dark mode saved, got:\n%s", data)
	}

	if out := mustExecute(t, p, "theme", "toggle"); strings.TrimSpace(out) != "light" {
		t.Errorf("expected light after toggle, got %q", out)
	}
	if _, err := execute(t, p, "", "theme", "blue"); err == nil {
		t.Error("expected unknown theme error")
	}
}

func TestPureGoDriverFromTOMLConfig(t *testing.T) {
	dir := t.TempDir()
	p := paths{
		config: filepath.Join(dir, "config.toml"),
		db:     filepath.Join(dir, "pure.db"),
	}
	cfg := "[database]\ndriver = \"sqlite\"\n"
	if err := os.WriteFile(p.config, []byte(cfg), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	mustExecute(t, p, "add", "Buy milk")
	out := mustExecute(t, p, "list")
	if !strings.Contains(out, "Buy milk [Low | General]") {
		t.Errorf("unexpected list output %q", out)
	}
}
