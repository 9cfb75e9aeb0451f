package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.BasePath != "." {
		t.Errorf("expected default base path '.', got %q", cfg.BasePath)
	}

	if cfg.Bazel.Path != "bazel" {
		t.Errorf("expected default bazel path 'bazel', got %q", cfg.Bazel.Path)
	}

	if cfg.Bazel.X86_64Path != "" {
		t.Errorf("expected empty x86_64 path, got %q", cfg.Bazel.X86_64Path)
	}

	if cfg.Overrides.BazelVersion || cfg.Overrides.XcodeVersion {
		t.Error("expected overrides to be disabled by default")
	}

	if !cfg.History.Enabled {
		t.Error("expected history to be enabled by default")
	}

	if cfg.Log.Path != "" {
		t.Errorf("expected debug log disabled by default, got %q", cfg.Log.Path)
	}
}

func TestLoadFromPath(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
base_path: /src/app
bazel:
  path: /opt/bazel/bin/bazel
  x86_64_path: /opt/bazel/bin/bazel-x86_64
overrides:
  bazel_version: true
  xcode_version: false
history:
  enabled: false
  path: /tmp/history.db
log:
  path: /tmp/buildenv.log
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	if cfg.BasePath != "/src/app" {
		t.Errorf("expected base path '/src/app', got %q", cfg.BasePath)
	}
	if cfg.Bazel.Path != "/opt/bazel/bin/bazel" {
		t.Errorf("expected bazel path '/opt/bazel/bin/bazel', got %q", cfg.Bazel.Path)
	}
	if cfg.Bazel.X86_64Path != "/opt/bazel/bin/bazel-x86_64" {
		t.Errorf("expected x86_64 path, got %q", cfg.Bazel.X86_64Path)
	}
	if !cfg.Overrides.BazelVersion {
		t.Error("expected overrides.bazel_version to be true")
	}
	if cfg.Overrides.XcodeVersion {
		t.Error("expected overrides.xcode_version to be false")
	}
	if cfg.History.Enabled {
		t.Error("expected history.enabled to be false")
	}
	if cfg.History.Path != "/tmp/history.db" {
		t.Errorf("expected history path '/tmp/history.db', got %q", cfg.History.Path)
	}
	if cfg.Log.Path != "/tmp/buildenv.log" {
		t.Errorf("expected log path '/tmp/buildenv.log', got %q", cfg.Log.Path)
	}
}

func TestLoadFromPath_PartialUsesDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("base_path: ~/src/app\n"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	if want := filepath.Join(home, "src", "app"); cfg.BasePath != want {
		t.Errorf("expected base path %q, got %q", want, cfg.BasePath)
	}
	if cfg.Bazel.Path != "bazel" {
		t.Errorf("expected default bazel path, got %q", cfg.Bazel.Path)
	}
	if !cfg.History.Enabled {
		t.Error("expected default history.enabled true")
	}
}

func TestLoadFromPath_Missing(t *testing.T) {
	if _, err := LoadFromPath(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoad_ProjectAndEnv(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	project := t.TempDir()
	nested := filepath.Join(project, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	content := "base_path: /from/project\nbazel:\n  path: /from/project/bazel\n"
	if err := os.WriteFile(filepath.Join(project, ProjectConfigName), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write project config: %v", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(nested); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(wd) })

	t.Setenv("BUILDENV_BAZEL_PATH", "/from/env/bazel")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.BasePath != "/from/project" {
		t.Errorf("expected project base path, got %q", cfg.BasePath)
	}
	if cfg.Bazel.Path != "/from/env/bazel" {
		t.Errorf("expected env to win for bazel.path, got %q", cfg.Bazel.Path)
	}
}

func TestSaveAndLoad(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	cfg := Default()
	cfg.BasePath = "/saved/base"
	cfg.Overrides.XcodeVersion = true

	if err := Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadFromPath(GetUserConfigPath())
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if loaded.BasePath != "/saved/base" {
		t.Errorf("expected saved base path, got %q", loaded.BasePath)
	}
	if !loaded.Overrides.XcodeVersion {
		t.Error("expected saved xcode override")
	}
}

func TestGetUserConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")

	dir := getUserConfigDir()
	if dir != "/custom/config/buildenv" {
		t.Errorf("expected /custom/config/buildenv, got %s", dir)
	}
}

func TestDefaultHistoryPath(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/custom/data")

	if got := DefaultHistoryPath(); got != "/custom/data/buildenv/history.db" {
		t.Errorf("DefaultHistoryPath() = %q", got)
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/tools/bazel", filepath.Join(home, "tools", "bazel")},
		{"/usr/bin/bazel", "/usr/bin/bazel"},
		{"bazel", "bazel"},
		{"~other/bazel", "~other/bazel"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ExpandHome(tt.in); got != tt.want {
			t.Errorf("ExpandHome(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	if err := Validate(cfg); err != nil {
		t.Errorf("expected default config to validate, got %v", err)
	}

	cfg.BasePath = ""
	if err := Validate(cfg); !errors.Is(err, ErrNoBasePath) {
		t.Errorf("expected ErrNoBasePath, got %v", err)
	}

	cfg = Default()
	cfg.Bazel.Path = ""
	if err := Validate(cfg); !errors.Is(err, ErrNoBazelPath) {
		t.Errorf("expected ErrNoBazelPath, got %v", err)
	}
}
