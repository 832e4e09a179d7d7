package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

// isolateEnv points HOME at an empty directory and clears the variables
// loadConfig reads.
func isolateEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("PORT", "")
	for _, key := range configKeys {
		t.Setenv("SECSCAN_"+strings.ToUpper(key), "")
		os.Unsetenv("SECSCAN_" + strings.ToUpper(key))
	}
	return home
}

func serveFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	addServeFlags(flags)
	flags.String("log-level", defaultLogLvl, "")
	return flags
}

func TestLoadConfigDefaults(t *testing.T) {
	isolateEnv(t)

	cfg, err := loadConfig("", nil)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Addr != ":5000" {
		t.Errorf("expected :5000, got %s", cfg.Addr)
	}
	if cfg.HistoryCapacity != 50 || cfg.LogLevel != "info" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.RateLimit != 0 || cfg.RateBurst != 20 || cfg.TrustProxy {
		t.Errorf("expected rate limiting off by default, got %+v", cfg)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("expected 30s shutdown timeout, got %s", cfg.ShutdownTimeout)
	}
	if len(cfg.CORSOrigins) != 0 {
		t.Errorf("expected no CORS origins, got %v", cfg.CORSOrigins)
	}
}

func TestLoadConfigPortEnv(t *testing.T) {
	isolateEnv(t)
	t.Setenv("PORT", "8081")

	cfg, err := loadConfig("", nil)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Addr != ":8081" {
		t.Fatalf("expected PORT to set addr, got %s", cfg.Addr)
	}

	t.Setenv("SECSCAN_ADDR", "127.0.0.1:9000")
	cfg, err = loadConfig("", nil)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Addr != "127.0.0.1:9000" {
		t.Fatalf("expected SECSCAN_ADDR to win over PORT, got %s", cfg.Addr)
	}
}

func TestLoadConfigPrecedence(t *testing.T) {
	home := isolateEnv(t)
	yaml := "rate_limit: 3\nrate_burst: 6\nhistory_capacity: 10\ncors_origins:\n  - https://ui.example\nshutdown_timeout: 5s\n"
	if err := os.WriteFile(filepath.Join(home, ".secscan.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SECSCAN_RATE_LIMIT", "7")
	t.Setenv("SECSCAN_TRUST_PROXY", "true")

	flags := serveFlags()
	if err := flags.Parse([]string{"--history-capacity", "25"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig("", flags)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.RateBurst != 6 || cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("expected file values, got %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "https://ui.example" {
		t.Errorf("expected CORS origins from file, got %v", cfg.CORSOrigins)
	}
	if cfg.RateLimit != 7 {
		t.Errorf("expected env to override file, got %d", cfg.RateLimit)
	}
	if cfg.HistoryCapacity != 25 {
		t.Errorf("expected flag to override file, got %d", cfg.HistoryCapacity)
	}
	if !cfg.TrustProxy {
		t.Error("expected trust_proxy from env")
	}
}

func TestLoadConfigExplicitFile(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "scanner.yaml")
	if err := os.WriteFile(path, []byte("addr: 127.0.0.1:7000\nlog_level: debug\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path, nil)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Addr != "127.0.0.1:7000" || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected config %+v", cfg)
	}

	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"), nil); err == nil {
		t.Fatal("expected an error for a missing explicit config file")
	}
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	isolateEnv(t)
	t.Setenv("SECSCAN_HISTORY_CAPACITY", "0")

	if _, err := loadConfig("", nil); err == nil || !strings.Contains(err.Error(), "history_capacity") {
		t.Fatalf("expected history_capacity validation error, got %v", err)
	}
}

func TestServiceConfigValidate(t *testing.T) {
	valid := ServiceConfig{
		Addr:            ":5000",
		HistoryCapacity: 50,
		LogLevel:        "info",
		RateBurst:       20,
		ShutdownTimeout: time.Second,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	invalid := ServiceConfig{
		Addr:        "5000",
		LogLevel:    "loud",
		CORSOrigins: []string{" "},
		RateLimit:   5,
	}
	err := invalid.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{"addr", "history_capacity", "log_level", "cors_origins", "rate_burst", "shutdown_timeout"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %v", want, err)
		}
	}

	negative := valid
	negative.RateLimit = -1
	if err := negative.Validate(); err == nil || !strings.Contains(err.Error(), "rate_limit") {
		t.Errorf("expected rate_limit error, got %v", err)
	}
}

func TestBindFlagsIgnoresUnknownFlags(t *testing.T) {
	isolateEnv(t)
	flags := pflag.NewFlagSet("scan", pflag.ContinueOnError)
	flags.Bool("json", false, "")
	flags.String("log-level", "info", "")
	if err := flags.Parse([]string{"--json", "--log-level", "warn"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig("", flags)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("expected log level from flag, got %s", cfg.LogLevel)
	}
}
