package macro

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every environment variable read by ConfigFromEnvironment.
const EnvPrefix = "MAILMACRO_"

// Config contains all configuration options for the expansion engine
type Config struct {
	// LogLevel controls the verbosity of logging (debug, info, warn, error, off)
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// Locale selects weekday, meridiem and coin labels (ko, en, ja)
	Locale string `env:"LOCALE" envDefault:"ko"`
	// LookupTimeout bounds each network lookup. 0 takes the default; a negative
	// value leaves only the caller's context.
	LookupTimeout time.Duration `env:"LOOKUP_TIMEOUT" envDefault:"5s"`
	// IPLookupURL returns a JSON object with an "ip" field
	IPLookupURL string `env:"IP_LOOKUP_URL" envDefault:"https://api.ipify.org?format=json"`
	// WeatherLookupURL returns "<condition> <temperature>" as plain text
	WeatherLookupURL string `env:"WEATHER_LOOKUP_URL" envDefault:"https://wttr.in/?format=%C+%t"`
	// FallbackIP replaces /{IP} when the lookup fails
	FallbackIP string `env:"FALLBACK_IP" envDefault:"Unknown IP"`
	// FallbackWeather replaces /{Weather} when the lookup fails
	FallbackWeather string `env:"FALLBACK_WEATHER" envDefault:"Unknown Weather"`
	// CacheMaxSize is the maximum number of lexed texts to cache. 0 takes the default.
	CacheMaxSize int `env:"CACHE_MAX_SIZE" envDefault:"100"`
	// CacheTTL is the time-to-live for cached token lists. 0 means no expiration.
	CacheTTL time.Duration `env:"CACHE_TTL"`
	// MaxConcurrency bounds the number of letters ExpandAll works on at once
	MaxConcurrency int `env:"MAX_CONCURRENCY" envDefault:"8"`
}

var (
	globalConfig      *Config
	globalConfigMutex sync.RWMutex
	configOnce        sync.Once
)

func init() {
	configOnce.Do(func() {
		globalConfig = ConfigFromEnvironment()
	})
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	config := &Config{}
	// An empty environment leaves only the envDefault values.
	if err := env.ParseWithOptions(config, env.Options{Environment: map[string]string{}}); err != nil {
		panic(fmt.Sprintf("macro: invalid config defaults: %v", err))
	}
	return config
}

// LoadConfig reads the configuration from MAILMACRO_* environment variables.
func LoadConfig() (*Config, error) {
	config := &Config{}
	if err := env.ParseWithOptions(config, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return config, nil
}

// ConfigFromEnvironment is LoadConfig falling back to the defaults when a
// variable cannot be parsed.
func ConfigFromEnvironment() *Config {
	config, err := LoadConfig()
	if err != nil {
		return DefaultConfig()
	}
	return config
}

// NewConfigWithDefaults creates a new configuration with defaults applied to unset fields
func NewConfigWithDefaults(overrides *Config) *Config {
	defaults := DefaultConfig()

	if overrides == nil {
		return defaults
	}

	config := *overrides

	if config.CacheMaxSize == 0 {
		config.CacheMaxSize = defaults.CacheMaxSize
	}
	if config.LookupTimeout == 0 {
		config.LookupTimeout = defaults.LookupTimeout
	}
	if config.LogLevel == "" {
		config.LogLevel = defaults.LogLevel
	}
	if config.Locale == "" {
		config.Locale = defaults.Locale
	}
	if config.IPLookupURL == "" {
		config.IPLookupURL = defaults.IPLookupURL
	}
	if config.WeatherLookupURL == "" {
		config.WeatherLookupURL = defaults.WeatherLookupURL
	}
	if config.FallbackIP == "" {
		config.FallbackIP = defaults.FallbackIP
	}
	if config.FallbackWeather == "" {
		config.FallbackWeather = defaults.FallbackWeather
	}
	if config.MaxConcurrency == 0 {
		config.MaxConcurrency = defaults.MaxConcurrency
	}

	return &config
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var issues []ValidationIssue

	if c.CacheMaxSize < 0 {
		issues = append(issues, ValidationIssue{Field: "CacheMaxSize", Message: "cannot be negative"})
	}
	if c.CacheTTL < 0 {
		issues = append(issues, ValidationIssue{Field: "CacheTTL", Message: "cannot be negative"})
	}
	if _, ok := logLevels[strings.ToLower(c.LogLevel)]; !ok {
		issues = append(issues, ValidationIssue{Field: "LogLevel", Message: "invalid log level: " + c.LogLevel})
	}
	if c.MaxConcurrency <= 0 {
		issues = append(issues, ValidationIssue{Field: "MaxConcurrency", Message: "must be positive"})
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// GetGlobalConfig returns a copy of the global configuration
func GetGlobalConfig() *Config {
	globalConfigMutex.RLock()
	defer globalConfigMutex.RUnlock()

	if globalConfig == nil {
		return DefaultConfig()
	}

	configCopy := *globalConfig
	return &configCopy
}

// SetGlobalConfig sets the global configuration
func SetGlobalConfig(config *Config) error {
	if config == nil {
		return errors.New("config cannot be nil")
	}
	if err := config.Validate(); err != nil {
		return err
	}

	globalConfigMutex.Lock()
	globalConfig = config
	globalConfigMutex.Unlock()

	// Outside the lock: the logger reads the config back.
	UpdateLoggerFromConfig()
	return nil
}
