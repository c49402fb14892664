// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	App     AppConfig
	Logger  LoggerConfig
	Data    DataConfig
	Library LibraryConfig
	Catalog CatalogConfig
	Sync    SyncConfig
	Server  ServerConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// DataConfig holds persistent storage configuration.
type DataConfig struct {
	BasePath string
}

// LibraryConfig holds the local filesystem library configuration.
type LibraryConfig struct {
	// Path to the local audiobook library. Empty disables the filesystem source.
	Path string
	// Watch enables the filesystem watcher that flags the library dirty.
	Watch bool
}

// CatalogConfig holds remote catalog source configuration.
type CatalogConfig struct {
	// URL is the base URL of the remote catalog server. Empty disables the source.
	URL string
	// Timeout for catalog HTTP requests (default: 30s).
	Timeout time.Duration
}

// SyncConfig holds sync pass configuration.
type SyncConfig struct {
	// MinInterval is the minimum time between non-forced sync passes (default: 15m).
	MinInterval time.Duration
	// PollInterval is how often the scheduler wakes up to consider a pass (default: 1m).
	PollInterval time.Duration
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Name         string
	Port         string        // Server port (default: 8080)
	ReadTimeout  time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout time.Duration // HTTP write timeout (default: 15s)
	IdleTimeout  time.Duration // HTTP idle timeout (default: 60s)
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	dataPath := flag.String("data-path", "", "Base path for persistent storage")
	libraryPath := flag.String("library-path", "", "Path to local audiobook library")
	libraryWatch := flag.String("library-watch", "", "Watch the library for changes (default: true)")
	catalogURL := flag.String("catalog-url", "", "Base URL of remote catalog server")
	catalogTimeout := flag.String("catalog-timeout", "", "Catalog request timeout (default: 30s)")
	syncMinInterval := flag.String("sync-min-interval", "", "Minimum interval between sync passes (default: 15m)")
	syncPollInterval := flag.String("sync-poll-interval", "", "Scheduler poll interval (default: 1m)")
	serverName := flag.String("server-name", "", "Name for the server")
	serverPort := flag.String("port", "", "Server port (default: 8080)")
	readTimeout := flag.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := flag.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := flag.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	envFile := flag.String("env-file", ".env", "Path to .env file")

	flag.Parse()

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Data: DataConfig{
			BasePath: getConfigValue(*dataPath, "DATA_PATH", ""),
		},
		Library: LibraryConfig{
			Path:  getConfigValue(*libraryPath, "LIBRARY_PATH", ""),
			Watch: getBoolConfigValue(*libraryWatch, "LIBRARY_WATCH", true),
		},
		Catalog: CatalogConfig{
			URL: getConfigValue(*catalogURL, "CATALOG_URL", ""),
		},
		Server: ServerConfig{
			Name: getConfigValue(*serverName, "SERVER_NAME", "ShelfSync Server"),
			Port: getConfigValue(*serverPort, "SERVER_PORT", "8080"),
		},
	}

	// Parse durations.
	var err error
	if cfg.Catalog.Timeout, err = parseDurationValue(*catalogTimeout, "CATALOG_TIMEOUT", "30s"); err != nil {
		return nil, err
	}
	if cfg.Sync.MinInterval, err = parseDurationValue(*syncMinInterval, "SYNC_MIN_INTERVAL", "15m"); err != nil {
		return nil, err
	}
	if cfg.Sync.PollInterval, err = parseDurationValue(*syncPollInterval, "SYNC_POLL_INTERVAL", "1m"); err != nil {
		return nil, err
	}
	if cfg.Server.ReadTimeout, err = parseDurationValue(*readTimeout, "SERVER_READ_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.Server.WriteTimeout, err = parseDurationValue(*writeTimeout, "SERVER_WRITE_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.Server.IdleTimeout, err = parseDurationValue(*idleTimeout, "SERVER_IDLE_TIMEOUT", "60s"); err != nil {
		return nil, err
	}

	// Expand and validate storage paths.
	if err := cfg.expandDataPath(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}
	if err := cfg.expandLibraryPath(); err != nil {
		return nil, fmt.Errorf("invalid library path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Data.BasePath == "" {
		return errors.New("data base path cannot be empty after expansion")
	}

	if c.Sync.MinInterval < 0 {
		return errors.New("sync min interval cannot be negative")
	}
	if c.Sync.PollInterval <= 0 {
		return errors.New("sync poll interval must be positive")
	}

	// Library and catalog may both be empty; a server with no sources is valid
	// (sources can be registered later) but there is nothing to sync.

	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// expandDataPath expands ~ and makes the path absolute.
func (c *Config) expandDataPath() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	defaultPath := filepath.Join(homeDir, "ShelfSync", "data")

	expanded, err := expandPath(c.Data.BasePath, defaultPath)
	if err != nil {
		return err
	}
	c.Data.BasePath = expanded
	return nil
}

// expandLibraryPath expands ~ and makes the path absolute.
// If empty, leaves it empty so the filesystem source stays disabled.
func (c *Config) expandLibraryPath() error {
	if c.Library.Path == "" {
		return nil
	}

	expanded, err := expandPath(c.Library.Path, "")
	if err != nil {
		return err
	}
	c.Library.Path = expanded
	return nil
}

// parseDurationValue resolves a duration from flag, env var, or default and parses it.
func parseDurationValue(flagValue, envKey, defaultValue string) (time.Duration, error) {
	str := getConfigValue(flagValue, envKey, defaultValue)
	d, err := time.ParseDuration(str)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", strings.ToLower(envKey), str, err)
	}
	return d, nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getBoolConfigValue returns a bool from flag, env var, or default.
// Accepts: "true", "1", "yes" (case-insensitive) as true; anything else is false.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	strValue = strings.ToLower(strValue)
	return strValue == "true" || strValue == "1" || strValue == "yes"
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), `"'`)

		// Only set if not already set (env vars take precedence over .env file).
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
