package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig              `mapstructure:"server"`
	Log         LogConfig                 `mapstructure:"log"`
	Gateway     GatewayConfig             `mapstructure:"gateway"`
	Providers   map[string]ProviderConfig `mapstructure:"providers"`
	Redis       RedisConfig               `mapstructure:"redis"`
	Database    DatabaseConfig            `mapstructure:"database"`
	RateLimit   RateLimitConfig           `mapstructure:"rate_limit"`
	Tracing     TracingConfig             `mapstructure:"tracing"`
	UpdateCheck UpdateCheckConfig         `mapstructure:"update_check"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// GatewayConfig holds the fallback policy of the summary gateway.
type GatewayConfig struct {
	// ProviderOrder is the raw comma separated priority list (PROVIDER_ORDER).
	ProviderOrder   string        `mapstructure:"provider_order"`
	ProviderTimeout time.Duration `mapstructure:"provider_timeout"`
	AppURL          string        `mapstructure:"app_url"`
	AppTitle        string        `mapstructure:"app_title"`
}

// ProviderConfig is the per-provider slice of configuration.
type ProviderConfig struct {
	Name    string            `mapstructure:"name"`
	APIKey  string            `mapstructure:"api_key" validate:"required"`
	Model   string            `mapstructure:"model"`
	BaseURL string            `mapstructure:"base_url"`
	Config  map[string]string `mapstructure:"config"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Enabled  bool          `mapstructure:"enabled"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type DatabaseConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type TracingConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ServiceName string `mapstructure:"service_name"`
	// SampleRatio is the fraction of root traces kept, 0..1.
	SampleRatio float64 `mapstructure:"sample_ratio"`
	PrettyPrint bool    `mapstructure:"pretty_print"`
}

type UpdateCheckConfig struct {
	URL string `mapstructure:"url"`
}

// providerNames lists the providers whose credentials are read from the
// environment. The keys match the PROVIDER_ORDER tokens.
var providerNames = []string{"gemini", "openai", "anthropic", "groq", "openrouter"}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig() (*Config, error) {
	// Load .env file if present
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	setDefaults(v)

	// Environment Variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := bindLegacyEnv(v); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	for name, p := range cfg.Providers {
		p.Name = name
		cfg.Providers[name] = p
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", "development")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("gateway.provider_order", "")
	v.SetDefault("gateway.provider_timeout", 30*time.Second)
	v.SetDefault("gateway.app_url", "https://example.com")
	v.SetDefault("gateway.app_title", "Tourify Remote")

	// every provider key needs a default, otherwise Unmarshal never sees
	// values that only exist in the environment
	for _, name := range providerNames {
		v.SetDefault("providers."+name+".api_key", "")
		v.SetDefault("providers."+name+".model", "")
		v.SetDefault("providers."+name+".base_url", "")
	}
	v.SetDefault("providers.anthropic.config.version", "2023-06-01")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.ttl", time.Hour)

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.path", "gateway.db")

	v.SetDefault("rate_limit.requests_per_second", 10.0)
	v.SetDefault("rate_limit.burst", 20)

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", "summary-gateway")
	v.SetDefault("tracing.sample_ratio", 1.0)
	v.SetDefault("tracing.pretty_print", false)

	v.SetDefault("update_check.url", "")
}

// bindLegacyEnv maps the variable names used by the original deployment
// (GEMINI_API_KEY, PROVIDER_ORDER, APP_URL, ...) onto the nested keys.
func bindLegacyEnv(v *viper.Viper) error {
	bindings := map[string]string{
		"gateway.provider_order":   "PROVIDER_ORDER",
		"gateway.provider_timeout": "GATEWAY_PROVIDER_TIMEOUT",
		"gateway.app_url":          "APP_URL",
		"gateway.app_title":        "APP_TITLE",
		"update_check.url":         "UPDATE_CHECK_URL",
	}

	for _, name := range providerNames {
		prefix := strings.ToUpper(name)
		bindings["providers."+name+".api_key"] = prefix + "_API_KEY"
		bindings["providers."+name+".model"] = prefix + "_MODEL"
		bindings["providers."+name+".base_url"] = prefix + "_BASE_URL"
	}

	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("binding %s: %w", env, err)
		}
	}
	return nil
}
