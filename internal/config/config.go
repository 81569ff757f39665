// Package config loads and validates service configuration from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"net/netip"
	"strings"

	"github.com/spf13/viper"
)

// MinSecretLength is the minimum accepted length of SESSION_SECRET in bytes.
const MinSecretLength = 32

// Config holds application configuration loaded from the environment.
type Config struct {
	// HTTPAddr is the address the HTTP API listens on.
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	// GRPCAddr is the address of the gRPC health endpoint; empty disables it.
	GRPCAddr string `mapstructure:"GRPC_ADDR"`
	// DatabaseURL is the Postgres DSN. Empty selects the in-memory stores.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// SessionSecret is the HMAC key for session tokens. Required, no default.
	SessionSecret string `mapstructure:"SESSION_SECRET"`
	// Env is the application environment; "production" turns on Secure cookies.
	Env string `mapstructure:"APP_ENV"`
	// BcryptCost is the bcrypt cost factor (4-31).
	BcryptCost int `mapstructure:"BCRYPT_COST"`
	// RedisAddr enables the Redis-backed login limiter when set.
	RedisAddr string `mapstructure:"REDIS_ADDR"`
	// LoginRateLimit is the number of login attempts allowed per client IP per minute.
	LoginRateLimit int `mapstructure:"LOGIN_RATE_LIMIT"`
	// TrustedProxies is a comma-separated list of proxy IPs or CIDRs whose
	// X-Forwarded-For header is honoured. Empty trusts no one.
	TrustedProxies string `mapstructure:"TRUSTED_PROXIES"`
	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64 `mapstructure:"MAX_BODY_BYTES"`
	// TransitionPolicy selects the complaint status transition policy: permissive or forward-only.
	TransitionPolicy string `mapstructure:"TRANSITION_POLICY"`

	BootstrapAdminName     string `mapstructure:"BOOTSTRAP_ADMIN_NAME"`
	BootstrapAdminEmail    string `mapstructure:"BOOTSTRAP_ADMIN_EMAIL"`
	BootstrapAdminPassword string `mapstructure:"BOOTSTRAP_ADMIN_PASSWORD"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Env vars override .env values.
func Load() (*Config, error) {
	return load(newViper())
}

// LoadTooling reads the same sources as Load without validating server-only
// settings such as SESSION_SECRET. Used by the migrate CLI.
func LoadTooling() (*Config, error) {
	cfg, err := read(newViper())
	if err != nil {
		return nil, err
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return nil, errors.New("config: BCRYPT_COST must be between 4 and 31")
	}
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig()
	return v
}

func load(v *viper.Viper) (*Config, error) {
	cfg, err := read(v)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func read(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("GRPC_ADDR", ":9090")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("SESSION_SECRET", "")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("BCRYPT_COST", 12)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("LOGIN_RATE_LIMIT", 10)
	v.SetDefault("TRUSTED_PROXIES", "")
	v.SetDefault("MAX_BODY_BYTES", 1<<20)
	v.SetDefault("TRANSITION_POLICY", "permissive")
	v.SetDefault("BOOTSTRAP_ADMIN_NAME", "System Admin")
	v.SetDefault("BOOTSTRAP_ADMIN_EMAIL", "")
	v.SetDefault("BOOTSTRAP_ADMIN_PASSWORD", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.HTTPAddr) == "" {
		return errors.New("config: HTTP_ADDR must be set")
	}
	if strings.TrimSpace(c.SessionSecret) == "" {
		return errors.New("config: SESSION_SECRET must be set")
	}
	if len(c.SessionSecret) < MinSecretLength {
		return fmt.Errorf("config: SESSION_SECRET must be at least %d bytes", MinSecretLength)
	}
	if c.BcryptCost == 0 {
		c.BcryptCost = 12
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return errors.New("config: BCRYPT_COST must be between 4 and 31")
	}
	if c.LoginRateLimit <= 0 {
		return errors.New("config: LOGIN_RATE_LIMIT must be positive")
	}
	if c.MaxBodyBytes <= 0 {
		return errors.New("config: MAX_BODY_BYTES must be positive")
	}
	if _, err := c.ProxyPrefixes(); err != nil {
		return err
	}
	switch c.TransitionPolicy {
	case "permissive", "forward-only":
	default:
		return fmt.Errorf("config: unknown TRANSITION_POLICY %q", c.TransitionPolicy)
	}
	return nil
}

// ProxyPrefixes parses TrustedProxies. A bare address is a single-host prefix.
func (c *Config) ProxyPrefixes() ([]netip.Prefix, error) {
	var out []netip.Prefix
	for _, f := range strings.Split(c.TrustedProxies, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if strings.Contains(f, "/") {
			p, err := netip.ParsePrefix(f)
			if err != nil {
				return nil, fmt.Errorf("config: TRUSTED_PROXIES entry %q: %w", f, err)
			}
			out = append(out, p.Masked())
			continue
		}
		a, err := netip.ParseAddr(f)
		if err != nil {
			return nil, fmt.Errorf("config: TRUSTED_PROXIES entry %q: %w", f, err)
		}
		a = a.Unmap()
		out = append(out, netip.PrefixFrom(a, a.BitLen()))
	}
	return out, nil
}

// Production reports whether the service runs with production cookie settings.
func (c *Config) Production() bool {
	return strings.EqualFold(c.Env, "production")
}
