package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func noDotEnv(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("WALTI_API_KEY", "env-key")
	t.Setenv("WALTI_API_SECRET", "env-secret")
	t.Setenv("WALTI_TIMEOUT", "5s")
	t.Setenv("WALTI_LOG_FORMAT", "json")

	cfg, err := Load(Options{DotEnv: noDotEnv(t)})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIKey != "env-key" || cfg.APISecret != "env-secret" {
		t.Errorf("credentials = %q/%q", cfg.APIKey, cfg.APISecret)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q", cfg.LogFormat)
	}
	if cfg.APIHost != "https://api.walti.io" || cfg.ConsoleHost != "https://console.walti.io" {
		t.Errorf("hosts = %q %q", cfg.APIHost, cfg.ConsoleHost)
	}
	if cfg.UserAgent != "Walti Go Plugin" {
		t.Errorf("UserAgent = %q", cfg.UserAgent)
	}
}

func TestLoad_MissingCredentials(t *testing.T) {
	t.Setenv("WALTI_API_KEY", "")
	t.Setenv("WALTI_API_SECRET", "")
	if _, err := Load(Options{DotEnv: noDotEnv(t)}); err == nil {
		t.Fatal("expected validation error without credentials")
	}
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("WALTI_API_KEY", "env-key")
	t.Setenv("WALTI_API_SECRET", "env-secret")
	t.Setenv("WALTI_API_HOST", "https://env.example.com")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("api-key", "", "")
	fs.String("api-host", "", "")
	fs.Float64("rate-limit", 0, "")
	if err := fs.Parse([]string{"--api-key=flag-key", "--rate-limit=2.5"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(Options{Flags: fs, DotEnv: noDotEnv(t)})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIKey != "flag-key" {
		t.Errorf("APIKey = %q, want flag value", cfg.APIKey)
	}
	if cfg.APIHost != "https://env.example.com" {
		t.Errorf("unchanged flag should not override env, APIHost = %q", cfg.APIHost)
	}
	if cfg.RateLimit != 2.5 {
		t.Errorf("RateLimit = %v", cfg.RateLimit)
	}
}

func TestLoad_DotEnvAndFile(t *testing.T) {
	dir := t.TempDir()
	dotenv := filepath.Join(dir, ".env")
	if err := os.WriteFile(dotenv, []byte("WALTI_API_SECRET=dotenv-secret\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(dir, "walti.yaml")
	yaml := "api-key: file-key\nconsole-host: http://localhost:9000/\n"
	if err := os.WriteFile(file, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("WALTI_API_KEY", "")
	t.Setenv("WALTI_API_SECRET", "")
	os.Unsetenv("WALTI_API_KEY")
	os.Unsetenv("WALTI_API_SECRET")

	cfg, err := Load(Options{File: file, DotEnv: dotenv})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIKey != "file-key" || cfg.APISecret != "dotenv-secret" {
		t.Errorf("credentials = %q/%q", cfg.APIKey, cfg.APISecret)
	}
	if cfg.ConsoleHost != "http://localhost:9000" {
		t.Errorf("ConsoleHost = %q", cfg.ConsoleHost)
	}
}

func TestLoad_BadLogFormat(t *testing.T) {
	t.Setenv("WALTI_API_KEY", "k")
	t.Setenv("WALTI_API_SECRET", "s")
	t.Setenv("WALTI_LOG_FORMAT", "xml")
	if _, err := Load(Options{DotEnv: noDotEnv(t)}); err == nil {
		t.Fatal("expected error for unknown log format")
	}
}
