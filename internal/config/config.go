package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BobTheBuilderB/Eaglerserver-list/internal/probe"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Directory
	DataDir        string        // directory for the file storage backend
	StorageBackend string        // "file" | "redis"
	ProbeTimeout   time.Duration // per-probe deadline (default: 3s)
	SweepInterval  time.Duration // interval between background sweeps (0 = disabled)

	// Redis (only read when StorageBackend == "redis")
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	// Access restrictions
	AllowedCIDRS []string // optional, restrict access to specific IP ranges
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)

	// Probe endpoint rate limiting
	ProbeRateBurst     int // tokens available per client at once
	ProbeRatePerMinute int // token refill rate
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("SERVERLIST_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("SERVERLIST_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("SERVERLIST_LOG_LEVEL", "info"),
		PrettyLog: mustBool("SERVERLIST_PRETTY_LOG", true),

		// Directory
		DataDir:        getenv("SERVERLIST_DATA_DIR", "./data"),
		StorageBackend: getenv("SERVERLIST_STORAGE_BACKEND", "file"),
		ProbeTimeout:   mustDuration("SERVERLIST_PROBE_TIMEOUT", probe.DefaultTimeout),
		SweepInterval:  mustDuration("SERVERLIST_SWEEP_INTERVAL", 0),

		// Redis settings
		RedisAddr:             getenv("SERVERLIST_REDIS_ADDR", "localhost:6379"),
		RedisUser:             getenv("SERVERLIST_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("SERVERLIST_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("SERVERLIST_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("SERVERLIST_REDIS_DB", 0),
		RedisDT:               mustDuration("SERVERLIST_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("SERVERLIST_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("SERVERLIST_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("SERVERLIST_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("SERVERLIST_REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("SERVERLIST_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("SERVERLIST_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("SERVERLIST_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("SERVERLIST_REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedCIDRS: parseAllowedIPs(getenv("SERVERLIST_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("SERVERLIST_TRUST_PROXY", true),

		// Probe rate limiting
		ProbeRateBurst:     getenvInt("SERVERLIST_PROBE_RATE_BURST", 5),
		ProbeRatePerMinute: getenvInt("SERVERLIST_PROBE_RATE_PER_MINUTE", 30),
	}

	if cfg.StorageBackend != "file" && cfg.StorageBackend != "redis" {
		panic(fmt.Sprintf("❌ FATAL: SERVERLIST_STORAGE_BACKEND must be \"file\" or \"redis\", got %q", cfg.StorageBackend))
	}
	if cfg.StorageBackend == "redis" && cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: SERVERLIST_REDIS_PASSWORD is required when SERVERLIST_REDIS_PASSWORD_REQUIRED=true")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
