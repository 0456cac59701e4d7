// Package config provides configuration management for the application.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/amaumene/torrentfind/internal/constants"
	apperrors "github.com/amaumene/torrentfind/internal/errors"
	"github.com/amaumene/torrentfind/pkg/logger"
	"github.com/amaumene/torrentfind/pkg/security"
	"github.com/amaumene/torrentfind/pkg/torrentsearch/models"
	"github.com/amaumene/torrentfind/pkg/torrentsearch/providers"
)

const envPrefix = "TORRENTFIND"

// Config holds the application configuration.
// Priority: environment variables > config file > defaults.
type Config struct {
	Port             string        `mapstructure:"port"`
	LogLevel         string        `mapstructure:"log_level"`
	LogFormat        string        `mapstructure:"log_format"`
	HTTPTimeout      time.Duration `mapstructure:"http_timeout"`
	RequestTimeout   time.Duration `mapstructure:"request_timeout"`
	EnabledProviders []string      `mapstructure:"enabled_providers"`
	// APIKey, when set, is required on every search request.
	APIKey string `mapstructure:"api_key"`

	RateLimit   RateLimitConfig   `mapstructure:"rate_limit"`
	YTS         YTSConfig         `mapstructure:"yts"`
	Leetx       LeetxConfig       `mapstructure:"leetx"`
	ApiBay      ApiBayConfig      `mapstructure:"apibay"`
	TorrentsCSV TorrentsCSVConfig `mapstructure:"torrentscsv"`
}

// RateLimitConfig paces requests made by each provider client.
type RateLimitConfig struct {
	RequestsPerSecond int64 `mapstructure:"requests_per_second"`
	Burst             int64 `mapstructure:"burst"`
}

type YTSConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	Limit       int    `mapstructure:"limit"`
	MagnetLinks bool   `mapstructure:"magnet_links"`
}

type LeetxConfig struct {
	BaseURL           string `mapstructure:"base_url"`
	DetailConcurrency int    `mapstructure:"detail_concurrency"`
}

type ApiBayConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

type TorrentsCSVConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Size    int    `mapstructure:"size"`
}

// Load reads configuration from defaults, the optional file named by
// CONFIG_FILE and the environment. Returns an error if the configuration is
// invalid.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindLegacyEnv(v)

	if err := readConfigFile(v); err != nil {
		return nil, apperrors.NewConfigurationError("failed to load config file", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, apperrors.NewConfigurationError("failed to unmarshal config", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Default returns a validated Config holding only default values.
func Default() *Config {
	cfg := &Config{}
	_ = cfg.Validate()
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", constants.DefaultPort)
	v.SetDefault("log_level", constants.DefaultLogLevel)
	v.SetDefault("log_format", constants.DefaultLogFormat)
	v.SetDefault("http_timeout", constants.HTTPTimeout)
	v.SetDefault("request_timeout", constants.RequestTimeout)
	v.SetDefault("enabled_providers", providerNames(models.AllProviders))
	v.SetDefault("config_file", "")
	v.SetDefault("api_key", "")

	v.SetDefault("rate_limit.requests_per_second", constants.ProviderRateLimit)
	v.SetDefault("rate_limit.burst", constants.ProviderRateBurst)

	v.SetDefault("yts.base_url", providers.DefaultYTSBaseURL)
	v.SetDefault("yts.limit", providers.DefaultYTSLimit)
	v.SetDefault("yts.magnet_links", false)

	v.SetDefault("leetx.base_url", providers.DefaultLeetxBaseURL)
	v.SetDefault("leetx.detail_concurrency", providers.DefaultLeetxDetailConcurrency)

	v.SetDefault("apibay.base_url", providers.DefaultApiBayBaseURL)

	v.SetDefault("torrentscsv.base_url", providers.DefaultTorrentsCSVBaseURL)
	v.SetDefault("torrentscsv.size", providers.DefaultTorrentsCSVSize)
}

// bindLegacyEnv keeps the bare variable names working next to the prefixed ones.
func bindLegacyEnv(v *viper.Viper) {
	_ = v.BindEnv("port", envPrefix+"_PORT", "PORT")
	_ = v.BindEnv("log_level", envPrefix+"_LOG_LEVEL", "LOG_LEVEL")
	_ = v.BindEnv("log_format", envPrefix+"_LOG_FORMAT", "LOG_FORMAT")
	_ = v.BindEnv("config_file", envPrefix+"_CONFIG_FILE", "CONFIG_FILE")
}

// readConfigFile loads CONFIG_FILE when set, otherwise looks for an optional
// config.{json,yaml} in the working directory.
func readConfigFile(v *viper.Viper) error {
	if path := v.GetString("config_file"); path != "" {
		v.SetConfigFile(path)
		return v.ReadInConfig()
	}

	v.SetConfigName("config")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

// Validate checks if the configuration is valid.
// Sets default values for missing optional fields.
func (c *Config) Validate() error {
	if c.Port == "" {
		c.Port = constants.DefaultPort
	}

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = constants.DefaultLogLevel
	}
	if !logger.ValidLevel(c.LogLevel) {
		return apperrors.NewConfigurationError(fmt.Sprintf("unknown log level %q", c.LogLevel), nil)
	}

	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	switch c.LogFormat {
	case "":
		c.LogFormat = constants.DefaultLogFormat
	case "console", "json":
	default:
		return apperrors.NewConfigurationError(fmt.Sprintf("unknown log format %q", c.LogFormat), nil)
	}

	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = constants.HTTPTimeout
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = constants.RequestTimeout
	}

	c.APIKey = strings.TrimSpace(c.APIKey)
	if c.APIKey != "" && !security.NewAPIKeyValidator().ValidateAPIKey(c.APIKey) {
		return apperrors.NewConfigurationError("api key must be 8-128 characters of [a-zA-Z0-9_-]", nil)
	}

	if err := c.validateProviders(); err != nil {
		return err
	}

	c.applyProviderDefaults()
	return nil
}

func (c *Config) validateProviders() error {
	if len(c.EnabledProviders) == 0 {
		c.EnabledProviders = providerNames(models.AllProviders)
		return nil
	}

	seen := make(map[string]bool, len(c.EnabledProviders))
	normalized := make([]string, 0, len(c.EnabledProviders))
	for _, p := range c.EnabledProviders {
		name := strings.ToLower(strings.TrimSpace(p))
		if name == "" || seen[name] {
			continue
		}
		if !models.ProviderKind(name).Valid() {
			return apperrors.NewConfigurationError(fmt.Sprintf("unknown provider %q", name), nil)
		}
		seen[name] = true
		normalized = append(normalized, name)
	}
	if len(normalized) == 0 {
		return apperrors.NewConfigurationError("no provider enabled", nil)
	}

	c.EnabledProviders = normalized
	return nil
}

func (c *Config) applyProviderDefaults() {
	if c.RateLimit.RequestsPerSecond <= 0 {
		c.RateLimit.RequestsPerSecond = constants.ProviderRateLimit
	}
	if c.RateLimit.Burst <= 0 {
		c.RateLimit.Burst = constants.ProviderRateBurst
	}

	if c.YTS.BaseURL == "" {
		c.YTS.BaseURL = providers.DefaultYTSBaseURL
	}
	if c.YTS.Limit <= 0 {
		c.YTS.Limit = providers.DefaultYTSLimit
	}

	if c.Leetx.BaseURL == "" {
		c.Leetx.BaseURL = providers.DefaultLeetxBaseURL
	}
	if c.Leetx.DetailConcurrency <= 0 {
		c.Leetx.DetailConcurrency = providers.DefaultLeetxDetailConcurrency
	}
	c.Leetx.DetailConcurrency = min(c.Leetx.DetailConcurrency, constants.MaxDetailConcurrency)

	if c.ApiBay.BaseURL == "" {
		c.ApiBay.BaseURL = providers.DefaultApiBayBaseURL
	}

	if c.TorrentsCSV.BaseURL == "" {
		c.TorrentsCSV.BaseURL = providers.DefaultTorrentsCSVBaseURL
	}
	if c.TorrentsCSV.Size <= 0 {
		c.TorrentsCSV.Size = providers.DefaultTorrentsCSVSize
	}
}

// Providers returns the enabled provider kinds.
func (c *Config) Providers() []models.ProviderKind {
	kinds := make([]models.ProviderKind, 0, len(c.EnabledProviders))
	for _, p := range c.EnabledProviders {
		kinds = append(kinds, models.ProviderKind(p))
	}
	return kinds
}

// ProviderEnabled reports whether kind is in the enabled list.
func (c *Config) ProviderEnabled(kind models.ProviderKind) bool {
	for _, p := range c.EnabledProviders {
		if p == string(kind) {
			return true
		}
	}
	return false
}

// Address returns the listen address for the HTTP server.
func (c *Config) Address() string {
	return ":" + c.Port
}

func providerNames(kinds []models.ProviderKind) []string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return names
}
