// Package config provides configuration loading and validation for the server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/career-analyzer/internal/extraction"
	"github.com/jonathan/career-analyzer/internal/ratelimit"
	"github.com/jonathan/career-analyzer/internal/recommend"
)

const (
	DefaultPort                    = 8000
	DefaultMaxFileSizeBytes        = 10 << 20
	DefaultMinRequestIntervalMS    = 1200
	DefaultRecommendTimeoutSeconds = 60
	DefaultOCRDPI                  = 300
	DefaultTesseractLang           = "eng"
)

// Config represents the application configuration that can be loaded from a JSON file.
// Missing values use defaults; environment variables and CLI flags override the file.
type Config struct {
	// Server
	Port      int    `json:"port,omitempty"`
	UploadDir string `json:"upload_dir,omitempty"` // temp directory for uploads; empty = os.TempDir()

	// Remote model
	APIKey               string `json:"api_key,omitempty"` // Gemini API key
	Model                string `json:"model,omitempty"`   // tried before the default candidates
	MinRequestIntervalMS int    `json:"min_request_interval_ms,omitempty"`
	DisableRemote        bool   `json:"disable_remote,omitempty"`

	// External tools
	Tesseract     string `json:"tesseract,omitempty"`
	Pdftotext     string `json:"pdftotext,omitempty"`
	Pdftoppm      string `json:"pdftoppm,omitempty"`
	TesseractLang string `json:"tesseract_lang,omitempty"`
	TessdataDir   string `json:"tessdata_dir,omitempty"`
	OCRDPI        int    `json:"ocr_dpi,omitempty"`

	// Limits
	MaxFileSizeBytes        int64 `json:"max_file_size_bytes,omitempty"`
	RecommendTimeoutSeconds int   `json:"recommend_timeout_seconds,omitempty"`
	RateLimitRequests       int   `json:"rate_limit_requests,omitempty"`        // default HTTP budget per window
	RateLimitWindowSeconds  int   `json:"rate_limit_window_seconds,omitempty"` // default HTTP window

	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:                    DefaultPort,
		MinRequestIntervalMS:    DefaultMinRequestIntervalMS,
		TesseractLang:           DefaultTesseractLang,
		OCRDPI:                  DefaultOCRDPI,
		MaxFileSizeBytes:        DefaultMaxFileSizeBytes,
		RecommendTimeoutSeconds: DefaultRecommendTimeoutSeconds,
	}
}

// Load builds the effective configuration: defaults, then the JSON file at
// path (if any), then the process environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides fields from environment variables. Unset or blank
// variables are ignored; malformed numbers are an error.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	num := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		*dst = n
		return nil
	}

	str("GEMINI_API_KEY", &c.APIKey)
	str("GEMINI_MODEL", &c.Model)
	str("TESSERACT_CMD", &c.Tesseract)
	str("TESSDATA_PREFIX", &c.TessdataDir)
	str("TESSERACT_LANG", &c.TesseractLang)
	str("PDFTOTEXT_CMD", &c.Pdftotext)
	str("PDFTOPPM_CMD", &c.Pdftoppm)
	str("UPLOAD_DIR", &c.UploadDir)

	for key, dst := range map[string]*int{
		"PORT":                      &c.Port,
		"OCR_DPI":                   &c.OCRDPI,
		"GEMINI_MIN_INTERVAL_MS":    &c.MinRequestIntervalMS,
		"RECOMMEND_TIMEOUT_SECONDS": &c.RecommendTimeoutSeconds,
	} {
		if err := num(key, dst); err != nil {
			return err
		}
	}

	if v, ok := lookup("MAX_FILE_SIZE_BYTES"); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid MAX_FILE_SIZE_BYTES: %w", err)
		}
		c.MaxFileSizeBytes = n
	}
	if v, ok := lookup("DISABLE_REMOTE"); ok && strings.TrimSpace(v) != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid DISABLE_REMOTE: %w", err)
		}
		c.DisableRemote = b
	}
	return nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535, got %d", c.Port)
	}
	if c.MinRequestIntervalMS < 0 {
		return fmt.Errorf("config error: 'min_request_interval_ms' must be non-negative")
	}
	if c.MaxFileSizeBytes < 0 {
		return fmt.Errorf("config error: 'max_file_size_bytes' must be non-negative")
	}
	if c.RecommendTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'recommend_timeout_seconds' must be non-negative")
	}
	if c.OCRDPI < 0 {
		return fmt.Errorf("config error: 'ocr_dpi' must be non-negative")
	}
	if c.RateLimitRequests < 0 || c.RateLimitWindowSeconds < 0 {
		return fmt.Errorf("config error: rate limit values must be non-negative")
	}

	if c.UploadDir != "" {
		if info, err := os.Stat(c.UploadDir); err != nil || !info.IsDir() {
			return fmt.Errorf("config error: upload directory not found: %s", c.UploadDir)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from defaults.
// Bool fields cannot distinguish unset from false, so they are not merged.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	for _, f := range []struct{ dst, def *string }{
		{&result.UploadDir, &defaults.UploadDir},
		{&result.APIKey, &defaults.APIKey},
		{&result.Model, &defaults.Model},
		{&result.Tesseract, &defaults.Tesseract},
		{&result.Pdftotext, &defaults.Pdftotext},
		{&result.Pdftoppm, &defaults.Pdftoppm},
		{&result.TesseractLang, &defaults.TesseractLang},
		{&result.TessdataDir, &defaults.TessdataDir},
	} {
		if *f.dst == "" {
			*f.dst = *f.def
		}
	}

	for _, f := range []struct{ dst, def *int }{
		{&result.Port, &defaults.Port},
		{&result.MinRequestIntervalMS, &defaults.MinRequestIntervalMS},
		{&result.OCRDPI, &defaults.OCRDPI},
		{&result.RecommendTimeoutSeconds, &defaults.RecommendTimeoutSeconds},
		{&result.RateLimitRequests, &defaults.RateLimitRequests},
		{&result.RateLimitWindowSeconds, &defaults.RateLimitWindowSeconds},
	} {
		if *f.dst == 0 {
			*f.dst = *f.def
		}
	}

	if result.MaxFileSizeBytes == 0 {
		result.MaxFileSizeBytes = defaults.MaxFileSizeBytes
	}

	return result
}

// Extraction converts the tool settings into an extraction.Config.
func (c *Config) Extraction() extraction.Config {
	return extraction.Config{
		Tesseract:     c.Tesseract,
		Pdftotext:     c.Pdftotext,
		Pdftoppm:      c.Pdftoppm,
		TesseractLang: c.TesseractLang,
		TessdataDir:   c.TessdataDir,
		DPI:           c.OCRDPI,
		MaxFileSize:   c.MaxFileSizeBytes,
	}
}

// Recommend converts the remote model settings into a recommend.Config.
func (c *Config) Recommend() recommend.Config {
	return recommend.Config{
		APIKey:        c.APIKey,
		Model:         c.Model,
		MinInterval:   time.Duration(c.MinRequestIntervalMS) * time.Millisecond,
		DisableRemote: c.DisableRemote,
	}
}

// RecommendTimeout is the deadline for one recommendation stage.
func (c *Config) RecommendTimeout() time.Duration {
	return time.Duration(c.RecommendTimeoutSeconds) * time.Second
}

// RateLimit builds the HTTP limiter configuration.
func (c *Config) RateLimit() *ratelimit.Config {
	return ratelimit.LoadConfig(c.RateLimitRequests, time.Duration(c.RateLimitWindowSeconds)*time.Second)
}
