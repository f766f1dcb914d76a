package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

type NomadsConfig struct {
	Username string
	Key      string
	BaseURL  string
	Timeout  time.Duration
	// ThumbnailsFile is a JSON object of city name to thumbnail URL.
	ThumbnailsFile string
}

type GithubConfig struct {
	Owner    string
	Gist     string
	CacheTTL time.Duration
}

type ObservabilityConfig struct {
	MetricsAddr  string
	PprofAddr    string
	OTLPEndpoint string
}

type Config struct {
	ServerPort    string
	BaseURL       string
	LogLevel      string
	Nomads        NomadsConfig
	Github        GithubConfig
	Observability ObservabilityConfig
}

// Load reads the configuration from the environment. Every malformed
// variable is reported in a single error.
func Load() (*Config, error) {
	var invalid []string

	cfg := &Config{
		ServerPort: getEnvOrDefault("SERVER_PORT", "8091"),
		BaseURL:    getEnvOrDefault("BASE_URL", "http://localhost:8091"),
		LogLevel:   getEnvOrDefault("LOG_LEVEL", "info"),
		Nomads: NomadsConfig{
			Username:       getEnvOrDefault("NOMADLIST_USERNAME", "jorgechato"),
			Key:            os.Getenv("NOMADLIST_KEY"),
			BaseURL:        strings.TrimSuffix(getEnvOrDefault("NOMADLIST_BASE_URL", "https://nomads.com"), "/"),
			ThumbnailsFile: os.Getenv("THUMBNAILS_FILE"),
		},
		Github: GithubConfig{
			Owner: getEnvOrDefault("GITHUB_OWNER", "jorgechato"),
			Gist:  os.Getenv("GITHUB_GIST"),
		},
		Observability: ObservabilityConfig{
			MetricsAddr:  getEnvOrDefault("METRICS_ADDR", ":9092"),
			PprofAddr:    getEnvOrDefault("PPROF_ADDR", ":6060"),
			OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		},
	}

	var err error
	if cfg.Nomads.Timeout, err = getDurationOrDefault("NOMADLIST_TIMEOUT", 10*time.Second); err != nil {
		invalid = append(invalid, "NOMADLIST_TIMEOUT")
	}
	if cfg.Github.CacheTTL, err = getDurationOrDefault("GIST_CACHE_TTL", 15*time.Minute); err != nil {
		invalid = append(invalid, "GIST_CACHE_TTL")
	}
	if !isAbsoluteURL(cfg.BaseURL) {
		invalid = append(invalid, "BASE_URL")
	}
	if !isAbsoluteURL(cfg.Nomads.BaseURL) {
		invalid = append(invalid, "NOMADLIST_BASE_URL")
	}
	if cfg.Nomads.Username == "" {
		invalid = append(invalid, "NOMADLIST_USERNAME")
	}

	if len(invalid) > 0 {
		return nil, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue, err
	}
	if d <= 0 {
		return defaultValue, fmt.Errorf("%s must be positive", key)
	}
	return d, nil
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
