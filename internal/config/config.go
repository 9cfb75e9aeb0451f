// Package config handles configuration loading and management for buildenv.
// It supports XDG config paths, project-level overrides, and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// ProjectConfigName is the project-level config file searched for from the
// working directory upwards.
const ProjectConfigName = ".buildenv.yaml"

// Config holds all configuration for buildenv.
type Config struct {
	BasePath  string          `mapstructure:"base_path" yaml:"base_path"`
	Bazel     BazelConfig     `mapstructure:"bazel" yaml:"bazel"`
	Overrides OverridesConfig `mapstructure:"overrides" yaml:"overrides"`
	History   HistoryConfig   `mapstructure:"history" yaml:"history"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
}

// BazelConfig holds the bazel binaries to probe.
type BazelConfig struct {
	// Path is the primary bazel binary, resolved against the clean PATH.
	Path string `mapstructure:"path" yaml:"path"`
	// X86_64Path is an optional x86_64 binary for cross-architecture builds.
	X86_64Path string `mapstructure:"x86_64_path" yaml:"x86_64_path"`
}

// OverridesConfig holds the per-tool override flags.
type OverridesConfig struct {
	BazelVersion bool `mapstructure:"bazel_version" yaml:"bazel_version"`
	XcodeVersion bool `mapstructure:"xcode_version" yaml:"xcode_version"`
}

// HistoryConfig controls the validation history database.
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path"`
}

// LogConfig controls the debug log.
type LogConfig struct {
	// Path is the debug log file. Empty disables debug logging.
	Path string `mapstructure:"path" yaml:"path"`
}

// Load loads configuration from XDG paths, project overrides, and environment variables.
// Precedence (highest to lowest):
// 1. Environment variables (BUILDENV_BASE_PATH, BUILDENV_BAZEL_PATH, ...)
// 2. Project config (.buildenv.yaml in current directory or parent)
// 3. User config (~/.config/buildenv/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(getUserConfigDir())

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	if projectConfig := findProjectConfig(); projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading project config %s: %w", projectConfig, err)
		}
		if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	bindEnv(v)

	return unmarshal(v)
}

// LoadFromPath loads configuration from a specific path (for testing).
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	return unmarshal(v)
}

// Save writes the configuration to the user config file.
func Save(cfg *Config) error {
	userConfigDir := getUserConfigDir()
	if err := os.MkdirAll(userConfigDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(filepath.Join(userConfigDir, "config.yaml"))

	v.Set("base_path", cfg.BasePath)
	v.Set("bazel.path", cfg.Bazel.Path)
	v.Set("bazel.x86_64_path", cfg.Bazel.X86_64Path)
	v.Set("overrides.bazel_version", cfg.Overrides.BazelVersion)
	v.Set("overrides.xcode_version", cfg.Overrides.XcodeVersion)
	v.Set("history.enabled", cfg.History.Enabled)
	v.Set("history.path", cfg.History.Path)
	v.Set("log.path", cfg.Log.Path)

	return v.WriteConfig()
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// GetProjectConfigPath returns the path to the project config file if it exists.
func GetProjectConfigPath() string {
	return findProjectConfig()
}

// DefaultHistoryPath returns the default location of the history database.
func DefaultHistoryPath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".", ".local", "share", "buildenv", "history.db")
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "buildenv", "history.db")
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		BasePath: ".",
		Bazel: BazelConfig{
			Path: "bazel",
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    DefaultHistoryPath(),
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("base_path", d.BasePath)

	v.SetDefault("bazel.path", d.Bazel.Path)
	v.SetDefault("bazel.x86_64_path", d.Bazel.X86_64Path)

	v.SetDefault("overrides.bazel_version", d.Overrides.BazelVersion)
	v.SetDefault("overrides.xcode_version", d.Overrides.XcodeVersion)

	v.SetDefault("history.enabled", d.History.Enabled)
	v.SetDefault("history.path", d.History.Path)

	v.SetDefault("log.path", d.Log.Path)
}

// bindEnv maps BUILDENV_* variables onto config keys.
func bindEnv(v *viper.Viper) {
	v.BindEnv("base_path", "BUILDENV_BASE_PATH")
	v.BindEnv("bazel.path", "BUILDENV_BAZEL_PATH")
	v.BindEnv("bazel.x86_64_path", "BUILDENV_BAZEL_X86_64_PATH")
	v.BindEnv("overrides.bazel_version", "BUILDENV_OVERRIDE_BAZEL_VERSION")
	v.BindEnv("overrides.xcode_version", "BUILDENV_OVERRIDE_XCODE_VERSION")
	v.BindEnv("history.enabled", "BUILDENV_HISTORY_ENABLED")
	v.BindEnv("history.path", "BUILDENV_HISTORY_PATH")
	v.BindEnv("log.path", "BUILDENV_LOG_PATH")
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.BasePath = ExpandHome(cfg.BasePath)
	cfg.Bazel.Path = ExpandHome(cfg.Bazel.Path)
	cfg.Bazel.X86_64Path = ExpandHome(cfg.Bazel.X86_64Path)
	cfg.History.Path = ExpandHome(cfg.History.Path)
	cfg.Log.Path = ExpandHome(cfg.Log.Path)

	return cfg, nil
}

// getUserConfigDir returns the XDG config directory for buildenv.
func getUserConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "buildenv")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "buildenv")
	}
	return filepath.Join(home, ".config", "buildenv")
}

// findProjectConfig searches for .buildenv.yaml in the current directory and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ProjectConfigName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}
