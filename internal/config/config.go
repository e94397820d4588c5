package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Log      LogConfig
	UI       UIConfig
	Loader   LoaderConfig
	Prefs    PrefsConfig
}

// DatabaseConfig holds sqlite settings for the recent documents history.
type DatabaseConfig struct {
	Path string
}

// LogConfig controls the log file. The terminal belongs to the UI, so logs
// never go to stdout.
type LogConfig struct {
	Path  string
	Level string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	RecentLimit int  `mapstructure:"recent_limit"`
	AltScreen   bool `mapstructure:"alt_screen"`
}

// LoaderConfig bounds concurrent file inspecting.
type LoaderConfig struct {
	Concurrency int
}

// PrefsConfig locates the user preferences file.
type PrefsConfig struct {
	Path string
}

func home() string { return os.Getenv("HOME") }

// Load reads configuration from file and env. Env var overrides use prefix PDFSEL_.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("database.path", filepath.Join(home(), ".local", "share", "pdfsel", "pdfsel.db"))
	v.SetDefault("log.path", filepath.Join(home(), ".local", "state", "pdfsel", "pdfsel.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("ui.recent_limit", 20)
	v.SetDefault("ui.alt_screen", true)
	v.SetDefault("loader.concurrency", 4)
	v.SetDefault("prefs.path", filepath.Join(home(), ".config", "pdfsel", "prefs.toml"))

	v.SetConfigType("toml")

	cfgPath := os.Getenv("PDFSEL_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home(), ".config", "pdfsel"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("PDFSEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return normalize(c), nil
}

// Save writes cfg to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := os.Getenv("PDFSEL_CONFIG")
	if path == "" {
		path = filepath.Join(home(), ".config", "pdfsel", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("ui.recent_limit", cfg.UI.RecentLimit)
	v.Set("ui.alt_screen", cfg.UI.AltScreen)
	v.Set("loader.concurrency", cfg.Loader.Concurrency)
	v.Set("prefs.path", cfg.Prefs.Path)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func normalize(c Config) Config {
	if c.UI.RecentLimit <= 0 || c.UI.RecentLimit > 200 {
		c.UI.RecentLimit = 20
	}
	if c.Loader.Concurrency <= 0 {
		c.Loader.Concurrency = 4
	}
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	return c
}
