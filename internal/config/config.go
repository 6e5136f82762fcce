package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const appName = "pokedex"

// Config holds all application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	UI      UIConfig      `mapstructure:"ui"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds catalog API configuration
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	Transition time.Duration `mapstructure:"transition"` // Detail transition length; also the activation debounce window
	ToastTTL   time.Duration `mapstructure:"toast_ttl"`

	MarkdownStyle string `mapstructure:"markdown_style"` // glamour standard style: dark, light, notty, ...
}

// CacheConfig holds local cache configuration
type CacheConfig struct {
	Dir           string `mapstructure:"dir"`            // Empty = memory only
	MemoryEntries int    `mapstructure:"memory_entries"` // LRU size for hot reads
}

// MetricsConfig holds the optional Prometheus endpoint
type MetricsConfig struct {
	Addr string `mapstructure:"addr"` // e.g. "127.0.0.1:9109"; empty disables
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "https://pokeapi.co/api/v2",
			Timeout: 15 * time.Second,
		},
		UI: UIConfig{
			Transition:    350 * time.Millisecond,
			ToastTTL:      4 * time.Second,
			MarkdownStyle: "dark",
		},
		Cache: CacheConfig{
			Dir:           defaultCachePath(),
			MemoryEntries: 256,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName, appName+".log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", appName, appName+".log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", appName)
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), appName, "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", appName, "cache")
	}
}

// LoadConfig loads configuration from the default locations and environment
func LoadConfig() (*Config, error) {
	return load(viper.New(), defaultConfigPath(), ".")
}

// LoadConfigFrom loads configuration from a single directory (and environment)
func LoadConfigFrom(dir string) (*Config, error) {
	return load(viper.New(), dir)
}

func load(v *viper.Viper, paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	// Environment variable overrides (POKEDEX_API_BASE_URL, ...)
	v.SetEnvPrefix("POKEDEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindDefaults(v, cfg)

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// bindDefaults registers every key so AutomaticEnv can override it
func bindDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("api.base_url", cfg.API.BaseURL)
	v.SetDefault("api.timeout", cfg.API.Timeout)
	v.SetDefault("ui.transition", cfg.UI.Transition)
	v.SetDefault("ui.toast_ttl", cfg.UI.ToastTTL)
	v.SetDefault("ui.markdown_style", cfg.UI.MarkdownStyle)
	v.SetDefault("cache.dir", cfg.Cache.Dir)
	v.SetDefault("cache.memory_entries", cfg.Cache.MemoryEntries)
	v.SetDefault("metrics.addr", cfg.Metrics.Addr)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// Validate checks values that would otherwise fail later in obscure ways
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout)
	}
	if c.UI.Transition < 0 {
		return fmt.Errorf("ui.transition must not be negative, got %s", c.UI.Transition)
	}
	if c.Cache.MemoryEntries <= 0 {
		return fmt.Errorf("cache.memory_entries must be positive, got %d", c.Cache.MemoryEntries)
	}
	return nil
}

// SaveConfig writes the configuration to the default config directory
func SaveConfig(cfg *Config) error {
	return SaveConfigTo(cfg, defaultConfigPath())
}

// SaveConfigTo writes the configuration as config.yaml inside dir
func SaveConfigTo(cfg *Config, dir string) error {
	// Ensure config directory exists
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()

	// Set fields individually to ensure correct key names (snake_case)
	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("api.timeout", cfg.API.Timeout.String())
	v.Set("ui.transition", cfg.UI.Transition.String())
	v.Set("ui.toast_ttl", cfg.UI.ToastTTL.String())
	v.Set("ui.markdown_style", cfg.UI.MarkdownStyle)
	v.Set("cache.dir", cfg.Cache.Dir)
	v.Set("cache.memory_entries", cfg.Cache.MemoryEntries)
	v.Set("metrics.addr", cfg.Metrics.Addr)
	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(dir, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ClearCache removes all cached data under dir
func ClearCache(dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.RemoveAll(dir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}
