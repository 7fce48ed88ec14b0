package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	Force         bool     `mapstructure:"force"`
	DaemonPort    int      `mapstructure:"daemon_port"`
	BufferSize    int      `mapstructure:"buffer_size"`
	DebounceMS    int      `mapstructure:"debounce_ms"`
	IgnoreList    []string `mapstructure:"ignore_list"`
	DBPath        string   `mapstructure:"db_path"`
	ArchiveFormat string   `mapstructure:"archive_format"`
}

var Default = Config{
	Force:         false,
	DaemonPort:    9101,
	BufferSize:    100,
	DebounceMS:    200,
	IgnoreList:    []string{".git", ".DS_Store", "*.tmp", "*.swp"},
	DBPath:        "ferry.db",
	ArchiveFormat: "zip",
}

// Dir returns ~/.ferry, creating it if needed.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home dir: %w", err)
	}

	dir := filepath.Join(home, ".ferry")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config dir: %w", err)
	}

	return dir, nil
}

func Load() (*Config, error) {
	configDir, err := Dir()
	if err != nil {
		return nil, err
	}

	return LoadFrom(configDir)
}

// LoadFrom reads config.yaml from configDir. A relative db_path is resolved
// against configDir.
func LoadFrom(configDir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	v.SetDefault("force", Default.Force)
	v.SetDefault("daemon_port", Default.DaemonPort)
	v.SetDefault("buffer_size", Default.BufferSize)
	v.SetDefault("debounce_ms", Default.DebounceMS)
	v.SetDefault("ignore_list", Default.IgnoreList)
	v.SetDefault("db_path", Default.DBPath)
	v.SetDefault("archive_format", Default.ArchiveFormat)

	v.SetEnvPrefix("FERRY")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if !filepath.IsAbs(cfg.DBPath) {
		cfg.DBPath = filepath.Join(configDir, cfg.DBPath)
	}

	return &cfg, nil
}
