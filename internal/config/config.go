package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	Analyzer AnalyzerConfig
	Browser  BrowserConfig
	Report   ReportConfig
	Log      LogConfig
	Auth     AuthConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// MongoDBConfig holds MongoDB connection configuration
type MongoDBConfig struct {
	URI            string
	Database       string
	CollectionName string
	Timeout        time.Duration
}

// AnalyzerConfig holds probe configuration. A zero RequestTimeout
// leaves the HTTP client without a deadline, so a hung request can
// stall the whole pipeline; that matches the documented contract.
type AnalyzerConfig struct {
	RequestTimeout time.Duration
	UserAgent      string
}

// BrowserConfig holds headless browser configuration
type BrowserConfig struct {
	Disabled bool
	Timeout  time.Duration
}

// ReportConfig holds report sink configuration
type ReportConfig struct {
	Dir string
}

// LogConfig holds logging configuration
type LogConfig struct {
	File  string
	Level string
}

// AuthConfig holds API authentication configuration
type AuthConfig struct {
	APIKeys []string
}

// New creates a new Config with values from environment variables
func New() (*Config, error) {
	port := getEnv("PORT", "9090")
	readTimeout, err := strconv.Atoi(getEnv("READ_TIMEOUT", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := strconv.Atoi(getEnv("WRITE_TIMEOUT", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid WRITE_TIMEOUT: %w", err)
	}

	shutdownTimeout, err := strconv.Atoi(getEnv("SHUTDOWN_TIMEOUT", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}

	requestTimeout, err := strconv.Atoi(getEnv("REQUEST_TIMEOUT", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
	}

	mongoTimeout, err := strconv.Atoi(getEnv("MONGO_TIMEOUT", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid MONGO_TIMEOUT: %w", err)
	}

	browserDisabled, err := strconv.ParseBool(getEnv("BROWSER_DISABLED", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid BROWSER_DISABLED: %w", err)
	}

	browserTimeout, err := strconv.Atoi(getEnv("BROWSER_TIMEOUT", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid BROWSER_TIMEOUT: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Port:            port,
			ReadTimeout:     time.Duration(readTimeout) * time.Second,
			WriteTimeout:    time.Duration(writeTimeout) * time.Second,
			ShutdownTimeout: time.Duration(shutdownTimeout) * time.Second,
		},
		MongoDB: MongoDBConfig{
			URI:            getEnv("MONGO_URI", "mongodb://host.docker.internal:27017"),
			Database:       getEnv("MONGO_DB", "web_perf_analyzer"),
			CollectionName: getEnv("MONGO_COLLECTION", "reports"),
			Timeout:        time.Duration(mongoTimeout) * time.Second,
		},
		Analyzer: AnalyzerConfig{
			RequestTimeout: time.Duration(requestTimeout) * time.Second,
			UserAgent:      getEnv("USER_AGENT", "WebPerfAnalyzer/1.0"),
		},
		Browser: BrowserConfig{
			Disabled: browserDisabled,
			Timeout:  time.Duration(browserTimeout) * time.Second,
		},
		Report: ReportConfig{
			Dir: getEnv("REPORT_DIR", "."),
		},
		Log: LogConfig{
			File:  getEnv("LOG_FILE", "website_performance.log"),
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			APIKeys: splitKeys(getEnv("API_KEYS", "")),
		},
	}, nil
}

// splitKeys parses a comma-separated key list, dropping empty entries
func splitKeys(s string) []string {
	var keys []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
