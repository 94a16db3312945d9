package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"Cryptbook/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	"CRYPTBOOK_BACKEND_URL", "CRYPTBOOK_LOG_LEVEL", "CRYPTBOOK_LOG_FILE",
	"CRYPTBOOK_FETCH_TIMEOUT", "CRYPTBOOK_ALERT_TIMEOUT", "CRYPTBOOK_STRENGTH_DEBOUNCE",
	"CRYPTBOOK_ROUNDS_THROTTLE", "CRYPTBOOK_PROGRESS_DELAY", "CRYPTBOOK_PROGRESS_DURATION",
	"CRYPTBOOK_MAX_UPLOAD_MIB", "CRYPTBOOK_ENFORCE_POLICY",
}

// clearEnv unsets every variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:5000", cfg.BackendURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.AlertTimeout)
	assert.Equal(t, 300*time.Millisecond, cfg.StrengthDebounce)
	assert.Equal(t, 500*time.Millisecond, cfg.ProgressDelay)
	assert.Equal(t, 2*time.Second, cfg.ProgressDuration)
	assert.Equal(t, int64(500*util.MiB), cfg.MaxUploadBytes())
	assert.True(t, cfg.EnforcePolicy)
}

func TestLoadEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("CRYPTBOOK_BACKEND_URL", "https://books.example.com")
	t.Setenv("CRYPTBOOK_LOG_LEVEL", "debug")
	t.Setenv("CRYPTBOOK_MAX_UPLOAD_MIB", "0")
	t.Setenv("CRYPTBOOK_STRENGTH_DEBOUNCE", "1s")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "https://books.example.com", cfg.BackendURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, time.Second, cfg.StrengthDebounce)
	assert.Zero(t, cfg.MaxUploadBytes())
}

func TestLoadDotenv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(
		"CRYPTBOOK_BACKEND_URL=http://dotenv.local:8080\nCRYPTBOOK_LOG_LEVEL=warn\n"), 0o600))
	t.Setenv("CRYPTBOOK_LOG_LEVEL", "error")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://dotenv.local:8080", cfg.BackendURL)
	assert.Equal(t, "error", cfg.LogLevel, "environment wins over dotenv")

	// godotenv sets variables process-wide; unset what it added
	require.NoError(t, os.Unsetenv("CRYPTBOOK_BACKEND_URL"))
}

func TestLoadInvalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("CRYPTBOOK_LOG_LEVEL", "loud")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{
		BackendURL:       "http://localhost:5000",
		LogLevel:         "info",
		FetchTimeout:     time.Second,
		AlertTimeout:     time.Second,
		ProgressDuration: time.Second,
	}
	assert.NoError(t, valid.Validate())

	bad := valid
	bad.BackendURL = "not a url"
	assert.Error(t, bad.Validate())

	bad = valid
	bad.AlertTimeout = 0
	assert.Error(t, bad.Validate())
}
