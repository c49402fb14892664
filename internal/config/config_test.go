package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:    AppConfig{Environment: "development"},
		Logger: LoggerConfig{Level: "info"},
		Data:   DataConfig{BasePath: "/some/path"},
		Sync: SyncConfig{
			MinInterval:  15 * time.Minute,
			PollInterval: time.Minute,
		},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.env

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_LogLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"debug", true},
		{"info", true},
		{"warn", true},
		{"error", true},
		{"ERROR", true}, // levels are case insensitive
		{"verbose", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := validConfig()
			cfg.Logger.Level = tt.level

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_EmptyDataPath(t *testing.T) {
	cfg := validConfig()
	cfg.Data.BasePath = ""
	assert.Error(t, cfg.Validate())
}

func TestValidate_SyncIntervals(t *testing.T) {
	cfg := validConfig()
	cfg.Sync.MinInterval = -time.Minute
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Sync.PollInterval = 0
	assert.Error(t, cfg.Validate())
}

func TestExpandDataPath_EmptyUsesDefault(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, cfg.expandDataPath())

	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(homeDir, "ShelfSync", "data"), cfg.Data.BasePath)
}

func TestExpandLibraryPath_EmptyStaysEmpty(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, cfg.expandLibraryPath())
	assert.Empty(t, cfg.Library.Path)
}

func TestExpandLibraryPath_TildeExpansion(t *testing.T) {
	cfg := &Config{Library: LibraryConfig{Path: "~/audiobooks"}}
	require.NoError(t, cfg.expandLibraryPath())

	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(homeDir, "audiobooks"), cfg.Library.Path)
}

func TestGetConfigValue_Precedence(t *testing.T) {
	t.Setenv("SHELFSYNC_TEST_KEY", "from-env")

	// Flag wins over env.
	assert.Equal(t, "from-flag", getConfigValue("from-flag", "SHELFSYNC_TEST_KEY", "default"))

	// Env wins over default.
	assert.Equal(t, "from-env", getConfigValue("", "SHELFSYNC_TEST_KEY", "default"))

	// Default when nothing else is set.
	assert.Equal(t, "default", getConfigValue("", "SHELFSYNC_TEST_MISSING", "default"))
}

func TestGetBoolConfigValue(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"true", true},
		{"1", true},
		{"yes", true},
		{"TRUE", true},
		{"false", false},
		{"0", false},
		{"banana", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.expected, getBoolConfigValue(tt.value, "UNSET_KEY", !tt.expected))
		})
	}

	// Empty falls back to default.
	assert.True(t, getBoolConfigValue("", "UNSET_KEY", true))
	assert.False(t, getBoolConfigValue("", "UNSET_KEY", false))
}

func TestParseDurationValue(t *testing.T) {
	d, err := parseDurationValue("45s", "UNSET_KEY", "15m")
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, d)

	d, err = parseDurationValue("", "UNSET_KEY", "15m")
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, d)

	_, err = parseDurationValue("not-a-duration", "UNSET_KEY", "15m")
	assert.Error(t, err)
}

func TestLoadEnvFile_ValidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# comment\n\nSHELFSYNC_ENVFILE_A=hello\nSHELFSYNC_ENVFILE_B=\"quoted\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("SHELFSYNC_ENVFILE_A", "")
	t.Setenv("SHELFSYNC_ENVFILE_B", "")
	os.Unsetenv("SHELFSYNC_ENVFILE_A")
	os.Unsetenv("SHELFSYNC_ENVFILE_B")

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "hello", os.Getenv("SHELFSYNC_ENVFILE_A"))
	assert.Equal(t, "quoted", os.Getenv("SHELFSYNC_ENVFILE_B"))
}

func TestLoadEnvFile_ExistingEnvVarsNotOverwritten(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("SHELFSYNC_ENVFILE_C=file-value\n"), 0o600))

	t.Setenv("SHELFSYNC_ENVFILE_C", "env-value")

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "env-value", os.Getenv("SHELFSYNC_ENVFILE_C"))
}

func TestLoadEnvFile_InvalidFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("NOT A VALID LINE\n"), 0o600))

	assert.Error(t, loadEnvFile(path))
}

func TestLoadEnvFile_NonExistentFile(t *testing.T) {
	assert.Error(t, loadEnvFile("/nonexistent/.env"))
}
