package ratelimit

import "strings"

// unlimited endpoints: health and static format listings
var unlimited = map[string]bool{
	"GET /health":                     true,
	"GET /document/supported_formats": true,
	"GET /ocr/languages":              true,
}

// MatchEndpoint returns the configuration for path and method, or nil to use
// the default. Exact paths win over prefixes; a prefix is a Path ending in "/".
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if unlimited[method+" "+path] {
		return &EndpointConfig{Path: path, Method: method}
	}

	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
			return &configs[i]
		}
	}

	var best *EndpointConfig
	for i := range configs {
		c := &configs[i]
		if c.Method != method || !strings.HasSuffix(c.Path, "/") || !strings.HasPrefix(path, c.Path) {
			continue
		}
		if best == nil || len(c.Path) > len(best.Path) {
			best = c
		}
	}
	return best
}
