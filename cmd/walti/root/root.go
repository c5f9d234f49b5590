package root

import (
	"fmt"

	"github.com/crucial707/walti/internal/config"
	"github.com/crucial707/walti/internal/logging"
	"github.com/crucial707/walti/internal/walti"
	"github.com/spf13/cobra"
)

// Exported RootCmd
var RootCmd = &cobra.Command{
	Use:           "walti",
	Short:         "Walti security scanning CLI",
	Long:          "Command line interface for the Walti security scanning API: inspect targets, queue scans and gate builds on scan results.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var configFile string

func init() {
	f := RootCmd.PersistentFlags()
	f.StringVar(&configFile, "config", "", "Config file (yaml, json or toml)")
	f.String("api-key", "", "Walti API key (env WALTI_API_KEY)")
	f.String("api-secret", "", "Walti API secret (env WALTI_API_SECRET)")
	f.String("api-host", "", "API root URL (default https://api.walti.io)")
	f.String("console-host", "", "Console root URL used for result links (default https://console.walti.io)")
	f.Duration("timeout", 0, "Per-request timeout (default 30s)")
	f.Float64("rate-limit", 0, "Max API requests per second, 0 for no limit")
	f.Int("rate-burst", 0, "Burst allowed by --rate-limit (default 1)")
	f.String("log-format", "", "Log format: text or json (default text)")
	f.String("log-level", "", "Log level: debug, info, warn, error (default info)")
}

// Optional helper to return the RootCmd
func GetRoot() *cobra.Command {
	return RootCmd
}

// Client resolves the configuration for cmd and builds an API client from it.
func Client(cmd *cobra.Command) (*walti.Client, config.Config, error) {
	cfg, err := config.Load(config.Options{
		Flags: cmd.Root().PersistentFlags(),
		File:  configFile,
	})
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("load config: %w", err)
	}

	logger := logging.New(cfg.LogFormat, cfg.LogLevel, cmd.ErrOrStderr())
	client := walti.New(cfg.APIKey, cfg.APISecret,
		walti.WithAPIHost(cfg.APIHost),
		walti.WithConsoleHost(cfg.ConsoleHost),
		walti.WithUserAgent(cfg.UserAgent),
		walti.WithTimeout(cfg.Timeout),
		walti.WithRateLimit(cfg.RateLimit, cfg.RateBurst),
		walti.WithLogger(logger),
	)
	return client, cfg, nil
}
