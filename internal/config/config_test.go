package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"RECIPIENTS_FILE", "TEMPLATES_FILE", "SESSION_TTL", "RATE_LIMIT", "API_PORT", "METRICS_PORT",
}

// cleanEnv unsets every config variable for the test and runs it from an
// empty directory so no .env file is picked up.
func cleanEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	t.Chdir(t.TempDir())
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	cleanEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "au_parliament_contacts.csv", filepath.Base(cfg.RecipientsFile))
	assert.True(t, filepath.IsAbs(cfg.RecipientsFile))
	assert.Equal(t, "templates.yaml", filepath.Base(cfg.TemplatesFile))
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 10, cfg.RateLimit)
	assert.Equal(t, "8080", cfg.APIPort)
	assert.Equal(t, "9090", cfg.MetricsPort)
}

func TestLoad_Env(t *testing.T) {
	cleanEnv(t)
	abs := filepath.Join(t.TempDir(), "contacts.csv")
	t.Setenv("RECIPIENTS_FILE", abs)
	t.Setenv("SESSION_TTL", "5m")
	t.Setenv("API_PORT", "3000")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, abs, cfg.RecipientsFile)
	assert.Equal(t, 5*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "3000", cfg.APIPort)
}

func TestLoad_DotEnv(t *testing.T) {
	cleanEnv(t)
	require.NoError(t, os.WriteFile(".env", []byte("API_PORT=4000\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("API_PORT") })

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "4000", cfg.APIPort)
}

func TestLoad_FallsBackToWorkingDir(t *testing.T) {
	cleanEnv(t)
	writeFile(t, "templates.yaml")
	wd, err := os.Getwd()
	require.NoError(t, err)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "templates.yaml"), cfg.TemplatesFile)
}

func TestResolve(t *testing.T) {
	t.Run("absolute", func(t *testing.T) {
		assert.Equal(t, "/data/a.csv", Resolve("/opt/app", "/data/a.csv"))
	})

	t.Run("next to executable wins", func(t *testing.T) {
		base := t.TempDir()
		t.Chdir(t.TempDir())
		writeFile(t, filepath.Join(base, "a.csv"))
		writeFile(t, "a.csv")

		assert.Equal(t, filepath.Join(base, "a.csv"), Resolve(base, "a.csv"))
	})

	t.Run("working directory fallback", func(t *testing.T) {
		base := t.TempDir()
		t.Chdir(t.TempDir())
		writeFile(t, "a.csv")
		wd, err := os.Getwd()
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(wd, "a.csv"), Resolve(base, "a.csv"))
	})

	t.Run("missing everywhere", func(t *testing.T) {
		base := t.TempDir()
		t.Chdir(t.TempDir())

		assert.Equal(t, filepath.Join(base, "a.csv"), Resolve(base, "a.csv"))
	})
}
