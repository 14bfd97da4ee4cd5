// Package config loads service configuration from a dotenv file and the
// environment, applies defaults and validates the result.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/jonathan/autoreply/internal/llm"
)

// DefaultPath is the config file read when no path is given. It may be absent.
const DefaultPath = ".env"

// Config is the full service configuration.
type Config struct {
	LLM       LLMConfig
	Server    ServerConfig
	Redis     RedisConfig
	Fetch     FetchConfig
	Sources   SourcesConfig
	JWT       JWTConfig
	Log       LogConfig
	RateLimit RateLimitConfig
}

// LLMConfig selects the generative model provider.
type LLMConfig struct {
	Provider      string `env:"LLM_PROVIDER" validate:"oneof=gemini none"`
	APIKey        string `env:"GEMINI_API_KEY"`
	ModelLite     string `env:"LLM_MODEL_LITE"`
	ModelStandard string `env:"LLM_MODEL_STANDARD"`
	ModelAdvanced string `env:"LLM_MODEL_ADVANCED"`
}

// Enabled reports whether a model client should be created.
func (c LLMConfig) Enabled() bool {
	return c.Provider != string(llm.ProviderNone) && c.APIKey != ""
}

// ModelConfig returns the model tiers with any overrides applied.
func (c LLMConfig) ModelConfig() *llm.Config {
	cfg := llm.DefaultGeminiConfig().
		WithModel(llm.TierLite, c.ModelLite).
		WithModel(llm.TierStandard, c.ModelStandard).
		WithModel(llm.TierAdvanced, c.ModelAdvanced)
	cfg.Provider = llm.Provider(c.Provider)
	return cfg
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Host           string   `env:"SERVER_HOST"`
	Port           int      `env:"SERVER_PORT" validate:"min=1,max=65535"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS"`
}

// Addr returns the listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisConfig configures the fetch cache. An empty Addr disables caching.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" validate:"omitempty,hostname_port"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" validate:"min=0"`
}

// FetchConfig configures the compensation lookups.
type FetchConfig struct {
	Timeout    time.Duration `env:"FETCH_TIMEOUT" validate:"gt=0"`
	CacheTTL   time.Duration `env:"FETCH_CACHE_TTL" validate:"gt=0"`
	UseBrowser bool          `env:"FETCH_USE_BROWSER"`
}

// SourcesConfig overrides the lookup endpoints. Empty values use the public sites.
type SourcesConfig struct {
	LevelsBaseURL    string `env:"LEVELS_BASE_URL" validate:"omitempty,url"`
	GlassdoorBaseURL string `env:"GLASSDOOR_BASE_URL" validate:"omitempty,url"`
}

// JWTConfig holds configuration for token generation and validation.
// An empty Secret disables authentication on the API.
type JWTConfig struct {
	Secret          string `env:"JWT_SECRET" validate:"omitempty,min=16"`
	ExpirationHours int    `env:"JWT_EXPIRATION_HOURS" validate:"min=1"`
}

// Enabled reports whether the API requires bearer tokens.
func (c JWTConfig) Enabled() bool {
	return c.Secret != ""
}

// LogConfig configures the default slog handler.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	Format string `env:"LOG_FORMAT" validate:"oneof=text json"`
}

// RateLimitConfig configures per-client request limits on the API.
type RateLimitConfig struct {
	Enabled         bool          `env:"RATE_LIMIT_ENABLED"`
	DefaultLimit    int           `env:"RATE_LIMIT_DEFAULT_LIMIT" validate:"min=1"`
	DefaultWindow   time.Duration `env:"RATE_LIMIT_DEFAULT_WINDOW" validate:"gt=0"`
	CleanupInterval time.Duration `env:"RATE_LIMIT_CLEANUP_INTERVAL" validate:"gt=0"`
	Whitelist       []string      `env:"RATE_LIMIT_WHITELIST" validate:"dive,ip"`
	Blacklist       []string      `env:"RATE_LIMIT_BLACKLIST" validate:"dive,ip"`
}

// envKey maps FOO_BAR to the koanf path foo.bar.
func envKey(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, "_", "."))
}

// Load reads the dotenv file at path (DefaultPath when empty), then the
// environment, which overrides the file. A missing default file is ignored;
// a missing explicit file is an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	if err := k.Load(file.Provider(path), dotenv.ParserEnv("", ".", envKey)); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	cfg := &Config{
		LLM: LLMConfig{
			Provider:      k.String("llm.provider"),
			APIKey:        k.String("gemini.api.key"),
			ModelLite:     k.String("llm.model.lite"),
			ModelStandard: k.String("llm.model.standard"),
			ModelAdvanced: k.String("llm.model.advanced"),
		},
		Server: ServerConfig{
			Host:           k.String("server.host"),
			Port:           k.Int("server.port"),
			AllowedOrigins: splitList(k.String("cors.allowed.origins")),
		},
		Redis: RedisConfig{
			Addr:     k.String("redis.addr"),
			Password: k.String("redis.password"),
			DB:       k.Int("redis.db"),
		},
		Fetch: FetchConfig{
			UseBrowser: k.Bool("fetch.use.browser"),
		},
		Sources: SourcesConfig{
			LevelsBaseURL:    k.String("levels.base.url"),
			GlassdoorBaseURL: k.String("glassdoor.base.url"),
		},
		JWT: JWTConfig{
			Secret:          k.String("jwt.secret"),
			ExpirationHours: k.Int("jwt.expiration.hours"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(k.String("log.level")),
			Format: strings.ToLower(k.String("log.format")),
		},
		RateLimit: RateLimitConfig{
			Enabled:      true,
			DefaultLimit: k.Int("rate.limit.default.limit"),
			Whitelist:    splitList(k.String("rate.limit.whitelist")),
			Blacklist:    splitList(k.String("rate.limit.blacklist")),
		},
	}
	if k.Exists("rate.limit.enabled") {
		cfg.RateLimit.Enabled = k.Bool("rate.limit.enabled")
	}

	// Apply defaults
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = string(llm.ProviderGemini)
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.JWT.ExpirationHours == 0 {
		cfg.JWT.ExpirationHours = 24
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	if cfg.RateLimit.DefaultLimit == 0 {
		cfg.RateLimit.DefaultLimit = 1000
	}

	// Parse durations
	var err error
	durations := []struct {
		key   string
		def   time.Duration
		field *time.Duration
	}{
		{"fetch.timeout", 15 * time.Second, &cfg.Fetch.Timeout},
		{"fetch.cache.ttl", 6 * time.Hour, &cfg.Fetch.CacheTTL},
		{"rate.limit.default.window", time.Minute, &cfg.RateLimit.DefaultWindow},
		{"rate.limit.cleanup.interval", 5 * time.Minute, &cfg.RateLimit.CleanupInterval},
	}
	for _, d := range durations {
		*d.field, err = parseDuration(k.String(d.key), d.def)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", d.key, err)
		}
	}

	return cfg, nil
}

func parseDuration(value string, def time.Duration) (time.Duration, error) {
	if value == "" {
		return def, nil
	}
	return time.ParseDuration(value)
}

// splitList parses a comma-separated list, dropping empty items.
func splitList(list string) []string {
	var out []string
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Validate checks every field against its constraints and reports all
// problems in one error, naming each by its environment key.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("env")
	})

	err := v.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("config validation failed: %w", err)
	}
	errs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, describe(fe))
	}
	return errors.New("config validation failed:\n  " + strings.Join(errs, "\n  "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value())
	case "min":
		return fmt.Sprintf("%s must be at least %s, got %v", fe.Field(), fe.Param(), fe.Value())
	case "max":
		return fmt.Sprintf("%s must be at most %s, got %v", fe.Field(), fe.Param(), fe.Value())
	case "gt":
		return fmt.Sprintf("%s must be positive", fe.Field())
	case "hostname_port":
		return fmt.Sprintf("%s must be host:port, got %q", fe.Field(), fe.Value())
	case "url":
		return fmt.Sprintf("%s must be a URL, got %q", fe.Field(), fe.Value())
	case "ip":
		return fmt.Sprintf("%s entries must be IP addresses, got %q", fe.Field(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
