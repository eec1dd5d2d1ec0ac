package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// LogConfig controls where and how verbosely the application logs.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level" yaml:"level"`

	// File is the log destination. The TUI owns stdout, so logs always go
	// to a file.
	File string `mapstructure:"file" yaml:"file"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	// Theme is "auto", "dark", or "light".
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// PomodoroConfig holds the initial focus timer durations.
type PomodoroConfig struct {
	WorkMinutes  int `mapstructure:"work_minutes" yaml:"work_minutes"`
	BreakMinutes int `mapstructure:"break_minutes" yaml:"break_minutes"`
}

// TasksConfig holds task entry defaults.
type TasksConfig struct {
	DefaultCategory string `mapstructure:"default_category" yaml:"default_category"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	DBPath   string         `mapstructure:"db_path" yaml:"db_path"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	Display  DisplayConfig  `mapstructure:"display" yaml:"display"`
	Pomodoro PomodoroConfig `mapstructure:"pomodoro" yaml:"pomodoro"`
	Tasks    TasksConfig    `mapstructure:"tasks" yaml:"tasks"`
}

// configDir returns ~/.config/taskflow, falling back to the working
// directory when the home directory cannot be resolved.
func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "taskflow")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/taskflow/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	dir := configDir()
	return &AppConfig{
		DBPath: filepath.Join(dir, "taskflow.db"),
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(dir, "taskflow.log"),
		},
		Display: DisplayConfig{
			Theme: "auto",
		},
		Pomodoro: PomodoroConfig{
			WorkMinutes:  25,
			BreakMinutes: 5,
		},
		Tasks: TasksConfig{
			DefaultCategory: DefaultCategory,
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration with any
// TASKFLOW_* environment overrides applied.
func LoadConfig(path string) (*AppConfig, error) {
	def := defaultAppConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("TASKFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("db_path", def.DBPath)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.file", def.Log.File)
	v.SetDefault("display.theme", def.Display.Theme)
	v.SetDefault("pomodoro.work_minutes", def.Pomodoro.WorkMinutes)
	v.SetDefault("pomodoro.break_minutes", def.Pomodoro.BreakMinutes)
	v.SetDefault("tasks.default_category", def.Tasks.DefaultCategory)

	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &pathErr), errors.As(err, &notFound):
			// Fall through and unmarshal defaults plus env overrides.
		default:
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if strings.TrimSpace(cfg.Tasks.DefaultCategory) == "" {
		cfg.Tasks.DefaultCategory = DefaultCategory
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("db_path", cfg.DBPath)
	v.Set("log", cfg.Log)
	v.Set("display", cfg.Display)
	v.Set("pomodoro", cfg.Pomodoro)
	v.Set("tasks", cfg.Tasks)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
