package cmd

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	consts "github.com/sahilmaurya2006/website-security-scanner/internal/shared/constants"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

const (
	envPrefix      = "SECSCAN"
	configName     = ".secscan"
	defaultLogLvl  = "info"
	defaultBurst   = 20
	defaultTimeout = 30 * time.Second
)

// ServiceConfig holds the settings shared by all commands.
type ServiceConfig struct {
	Addr            string        `mapstructure:"addr"`
	HistoryCapacity int           `mapstructure:"history_capacity"`
	LogLevel        string        `mapstructure:"log_level"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	RateLimit       int           `mapstructure:"rate_limit"`
	RateBurst       int           `mapstructure:"rate_burst"`
	TrustProxy      bool          `mapstructure:"trust_proxy"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// configKeys lists every key a flag may bind to.
var configKeys = []string{
	"addr",
	"history_capacity",
	"log_level",
	"cors_origins",
	"rate_limit",
	"rate_burst",
	"trust_proxy",
	"shutdown_timeout",
}

func setConfigDefaults(v *viper.Viper) {
	addr := consts.DefaultAddr
	// PORT is honoured for platforms that inject it.
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		addr = ":" + port
	}
	v.SetDefault("addr", addr)
	v.SetDefault("history_capacity", consts.DefaultHistoryCapacity)
	v.SetDefault("log_level", defaultLogLvl)
	v.SetDefault("cors_origins", []string{})
	v.SetDefault("rate_limit", 0)
	v.SetDefault("rate_burst", defaultBurst)
	v.SetDefault("trust_proxy", false)
	v.SetDefault("shutdown_timeout", defaultTimeout)
}

// loadConfig resolves configuration from defaults, the config file,
// SECSCAN_* environment variables and flags, in increasing precedence. An
// explicit path must exist; the default $HOME/.secscan.yaml is optional.
func loadConfig(path string, flags *pflag.FlagSet) (*ServiceConfig, error) {
	v := viper.New()
	setConfigDefaults(v)

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if err := bindFlags(v, flags); err != nil {
		return nil, err
	}

	var cfg ServiceConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// bindFlags binds every flag whose name maps onto a config key, so
// --rate-limit feeds rate_limit. Unset flags fall back to lower sources.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if flags == nil {
		return nil
	}
	known := make(map[string]bool, len(configKeys))
	for _, key := range configKeys {
		known[key] = true
	}

	var errs []error
	flags.VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if !known[key] {
			return
		}
		if err := v.BindPFlag(key, f); err != nil {
			errs = append(errs, fmt.Errorf("bind flag %s: %w", f.Name, err))
		}
	})
	return errors.Join(errs...)
}

// Validate checks if the configuration is valid
func (c *ServiceConfig) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("addr cannot be empty"))
	} else if _, _, err := net.SplitHostPort(c.Addr); err != nil {
		errs = append(errs, fmt.Errorf("addr %q must be host:port: %w", c.Addr, err))
	}

	if c.HistoryCapacity <= 0 {
		errs = append(errs, errors.New("history_capacity must be positive"))
	}

	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}

	for _, origin := range c.CORSOrigins {
		if strings.TrimSpace(origin) == "" {
			errs = append(errs, errors.New("cors_origins cannot contain empty entries"))
			break
		}
	}

	if c.RateLimit < 0 {
		errs = append(errs, errors.New("rate_limit cannot be negative"))
	}
	if c.RateLimit > 0 && c.RateBurst <= 0 {
		errs = append(errs, errors.New("rate_burst must be positive when rate_limit is set"))
	}

	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("shutdown_timeout must be positive"))
	}

	return errors.Join(errs...)
}
