package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestConfigDirEnv(t *testing.T) {
	t.Setenv("VTED_CONFIG_HOME", "/tmp/vted-config")
	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir error: %v", err)
	}
	if dir != "/tmp/vted-config" {
		t.Fatalf("ConfigDir = %q, want %q", dir, "/tmp/vted-config")
	}

	t.Setenv("VTED_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err = ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir error: %v", err)
	}
	if dir != "/tmp/xdg/vted" {
		t.Fatalf("ConfigDir = %q, want %q", dir, "/tmp/xdg/vted")
	}
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("VTED_CONFIG_HOME", dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	want := Default()
	if cfg != want {
		t.Fatalf("Load = %+v, want defaults %+v", cfg, want)
	}
}

func TestLoadWithOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("VTED_CONFIG_HOME", dir)

	writeFile(t, filepath.Join(dir, "config.toml"), `
[editor]
welcome-message = "hi there"
status-timeout-ms = 1500

[theme]
foreground = "#111111"
statusline-background = "#222222"
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Editor.WelcomeMessage != "hi there" {
		t.Fatalf("WelcomeMessage = %q, want %q", cfg.Editor.WelcomeMessage, "hi there")
	}
	if cfg.Editor.StatusTimeoutMS != 1500 {
		t.Fatalf("StatusTimeoutMS = %d, want 1500", cfg.Editor.StatusTimeoutMS)
	}
	if cfg.Theme.Foreground != "#111111" {
		t.Fatalf("Foreground = %q, want %q", cfg.Theme.Foreground, "#111111")
	}
	if cfg.Theme.StatuslineBackground != "#222222" {
		t.Fatalf("StatuslineBackground = %q, want %q", cfg.Theme.StatuslineBackground, "#222222")
	}
	// Untouched fields keep defaults.
	if cfg.Theme.Background != Default().Theme.Background {
		t.Fatalf("Background = %q, want default %q", cfg.Theme.Background, Default().Theme.Background)
	}
}

func TestLoadBadTOML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("VTED_CONFIG_HOME", dir)

	writeFile(t, filepath.Join(dir, "config.toml"), "[editor\n")

	if _, err := Load(); err == nil {
		t.Fatalf("Load of malformed config did not fail")
	}
}
