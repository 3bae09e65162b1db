// Package config loads propview settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvAPIURL       = "PROPVIEW_API_URL"
	EnvLogFile      = "PROPVIEW_LOG_FILE"
	EnvLogLevel     = "PROPVIEW_LOG_LEVEL"
	EnvMockAddr     = "PROPVIEW_MOCK_ADDR"
	EnvOTLPEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	EnvServiceName  = "OTEL_SERVICE_NAME"
)

// legacyAPIURLEnvs are the names earlier front-ends used for the API base,
// consulted in order when EnvAPIURL is unset.
var legacyAPIURLEnvs = []string{"NEXT_PUBLIC_API_URL", "REACT_APP_API_URL"}

const (
	DefaultLogFile     = "propview.log"
	DefaultLogLevel    = "info"
	DefaultMockAddr    = ":8080"
	DefaultServiceName = "propview"
)

// ErrMissingAPIURL is returned when no API base is configured.
var ErrMissingAPIURL = errors.New("api base url is not configured (set " + EnvAPIURL + ")")

// Config holds all process configuration. It is read once at startup and
// passed down explicitly.
type Config struct {
	APIBase      string
	LogFile      string
	LogLevel     string
	MockAddr     string
	OTLPEndpoint string
	ServiceName  string
}

// Load reads an optional .env file (envPath, or ./.env when empty) and then
// the environment. A missing .env file is not an error. The API base is not
// validated here; call Validate once flag overrides are applied.
func Load(envPath string) (*Config, error) {
	var err error
	if envPath != "" {
		err = godotenv.Load(envPath)
	} else {
		err = godotenv.Load()
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	cfg := &Config{
		APIBase:      apiBaseFromEnv(),
		LogFile:      getEnvAsString(EnvLogFile, DefaultLogFile),
		LogLevel:     getEnvAsString(EnvLogLevel, DefaultLogLevel),
		MockAddr:     getEnvAsString(EnvMockAddr, DefaultMockAddr),
		OTLPEndpoint: os.Getenv(EnvOTLPEndpoint),
		ServiceName:  getEnvAsString(EnvServiceName, DefaultServiceName),
	}
	return cfg, nil
}

// Validate checks the API base and normalizes it by trimming trailing slashes.
func (c *Config) Validate() error {
	base := strings.TrimSpace(c.APIBase)
	if base == "" {
		return ErrMissingAPIURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return fmt.Errorf("invalid api base url %q: %w", base, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api base url %q: want absolute http(s) url", base)
	}
	c.APIBase = strings.TrimRight(base, "/")
	return nil
}

func apiBaseFromEnv() string {
	if v := os.Getenv(EnvAPIURL); v != "" {
		return v
	}
	for _, key := range legacyAPIURLEnvs {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}
