package config

import (
	"fmt"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
// Every field has a sensible default; nothing is required.
type Config struct {
	// Server
	HTTPPort        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// Logging: debug, info, warn or error
	LogLevel string

	// Rate limiting: steady-state requests per second per client IP (0 disables)
	RateLimit     int
	RateBurst     int
	RateIdleTTL   time.Duration
	SweepInterval time.Duration

	// CORS
	AllowedOrigins []string

	// Peers whose X-Forwarded-For / X-Real-IP headers are believed.
	// Empty means the client key is always the TCP peer address.
	TrustedProxies []netip.Prefix
}

func Load() (*Config, error) {
	l := &loader{}

	cfg := &Config{
		HTTPPort:        l.str("HTTP_PORT", "8080"),
		ReadTimeout:     l.duration("READ_TIMEOUT", 5*time.Second),
		WriteTimeout:    l.duration("WRITE_TIMEOUT", 10*time.Second),
		ShutdownTimeout: l.duration("SHUTDOWN_TIMEOUT", 30*time.Second),

		LogLevel: strings.ToLower(l.str("LOG_LEVEL", "info")),

		RateLimit:     l.integer("RATE_LIMIT_PER_CLIENT", 50),
		RateBurst:     l.integer("RATE_LIMIT_BURST", 100),
		RateIdleTTL:   l.duration("RATE_LIMIT_IDLE_TTL", 5*time.Minute),
		SweepInterval: l.duration("RATE_LIMIT_SWEEP_INTERVAL", time.Minute),

		AllowedOrigins: l.list("CORS_ALLOWED_ORIGINS", []string{"*"}),
		TrustedProxies: l.prefixes("TRUSTED_PROXIES"),
	}
	if l.err != nil {
		return nil, l.err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if _, err := strconv.ParseUint(c.HTTPPort, 10, 16); err != nil {
		return fmt.Errorf("HTTP_PORT %q: must be a port number", c.HTTPPort)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL %q: must be debug, info, warn, or error", c.LogLevel)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_CLIENT must not be negative, got %d", c.RateLimit)
	}
	if c.RateLimit > 0 && c.RateBurst < 1 {
		return fmt.Errorf("RATE_LIMIT_BURST must be at least 1 when rate limiting is enabled, got %d", c.RateBurst)
	}
	if c.RateLimit > 0 && c.SweepInterval <= 0 {
		return fmt.Errorf("RATE_LIMIT_SWEEP_INTERVAL must be positive when rate limiting is enabled, got %v", c.SweepInterval)
	}
	return nil
}

// loader reads typed values and keeps the first parse error so Load can
// report it once instead of checking after every field.
type loader struct {
	err error
}

func (l *loader) str(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func (l *loader) integer(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		l.fail(fmt.Errorf("%s %q: %w", key, v, err))
		return defaultVal
	}
	return n
}

func (l *loader) duration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		l.fail(fmt.Errorf("%s %q: %w", key, v, err))
		return defaultVal
	}
	if d < 0 {
		l.fail(fmt.Errorf("%s %q: must not be negative", key, v))
		return defaultVal
	}
	return d
}

func (l *loader) list(key string, defaultVal []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}

// prefixes parses a comma-separated list of CIDRs or bare IPs; a bare IP
// becomes a single-address prefix.
func (l *loader) prefixes(key string) []netip.Prefix {
	var out []netip.Prefix
	for _, item := range l.list(key, nil) {
		if p, err := netip.ParsePrefix(item); err == nil {
			out = append(out, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(item)
		if err != nil {
			l.fail(fmt.Errorf("%s %q: not an IP or CIDR", key, item))
			return nil
		}
		addr = addr.Unmap()
		out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return out
}

func (l *loader) fail(err error) {
	if l.err == nil {
		l.err = err
	}
}
