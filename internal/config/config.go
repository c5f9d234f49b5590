package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. WALTI_API_KEY.
const EnvPrefix = "WALTI"

type Config struct {
	APIKey    string `mapstructure:"api-key" validate:"required"`
	APISecret string `mapstructure:"api-secret" validate:"required"`

	// APIHost and ConsoleHost default to the public service.
	APIHost     string `mapstructure:"api-host" validate:"required,url"`
	ConsoleHost string `mapstructure:"console-host" validate:"required,url"`

	UserAgent string `mapstructure:"user-agent"`

	// Timeout bounds each API call (default 30s).
	Timeout time.Duration `mapstructure:"timeout"`

	// RateLimit is the max API calls per second; 0 disables limiting.
	RateLimit float64 `mapstructure:"rate-limit" validate:"gte=0"`
	RateBurst int     `mapstructure:"rate-burst" validate:"gte=0"`

	// LogFormat is "text" (default) or "json".
	LogFormat string `mapstructure:"log-format" validate:"oneof=text json"`
	LogLevel  string `mapstructure:"log-level"`
}

var defaults = map[string]any{
	"api-host":     "https://api.walti.io",
	"console-host": "https://console.walti.io",
	"user-agent":   "Walti Go Plugin",
	"timeout":      30 * time.Second,
	"rate-limit":   0.0,
	"rate-burst":   1,
	"log-format":   "text",
	"log-level":    "info",
}

// keys lists every setting so env-only values reach Unmarshal.
func keys() []string {
	ks := []string{"api-key", "api-secret"}
	for k := range defaults {
		ks = append(ks, k)
	}
	return ks
}

// Options controls where Load looks besides the environment.
type Options struct {
	// Flags, when set, override env and file values for flags the user changed.
	Flags *pflag.FlagSet
	// File is an optional YAML/JSON/TOML config file.
	File string
	// DotEnv is loaded into the environment if it exists (default ".env").
	DotEnv string
}

// Load resolves the configuration from, in increasing priority: defaults,
// config file, .env, environment and flags. Credentials are required.
func Load(opts Options) (Config, error) {
	dotenv := opts.DotEnv
	if dotenv == "" {
		dotenv = ".env"
	}
	if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for _, k := range keys() {
		if err := v.BindEnv(k); err != nil {
			return Config{}, err
		}
	}

	if opts.File != "" {
		v.SetConfigFile(opts.File)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}
	if opts.Flags != nil {
		if err := v.BindPFlags(opts.Flags); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	cfg.APIHost = strings.TrimRight(cfg.APIHost, "/")
	cfg.ConsoleHost = strings.TrimRight(cfg.ConsoleHost, "/")

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
