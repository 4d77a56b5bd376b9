package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // exact path, or a prefix when it ends with "/"
	Method string        // HTTP method
	Limit  int           // requests per window
	Window time.Duration // time window
	Burst  int           // burst capacity, defaults to Limit
}

// LoadConfig builds the HTTP limiter configuration from the environment.
// defaultLimit and defaultWindow come from the application config and are
// overridden by RATE_LIMIT_DEFAULT_LIMIT and RATE_LIMIT_DEFAULT_WINDOW.
func LoadConfig(defaultLimit int, defaultWindow time.Duration) *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}
	if defaultLimit <= 0 {
		defaultLimit = 600
	}
	if defaultWindow <= 0 {
		defaultWindow = time.Minute
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", defaultLimit),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", defaultWindow),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the per-endpoint budgets.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// remote model calls
		{Path: "/jobs/recommend", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/keywords/recommend", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},

		// OCR and document conversion
		{Path: "/ocr/extract", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/ocr/extract_from_path", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/document/", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/text/analyze", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/url/analyze", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},

		// pure computation
		{Path: "/keywords/extract", Method: "POST", Limit: 300, Window: time.Minute, Burst: 50},
		{Path: "/skills/categorize", Method: "POST", Limit: 300, Window: time.Minute, Burst: 50},
	}
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of client IDs into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
