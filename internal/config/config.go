package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// ----------------------------
	// Input files
	// ----------------------------
	RecipientsFile string `envconfig:"RECIPIENTS_FILE" default:"au_parliament_contacts.csv"`
	TemplatesFile  string `envconfig:"TEMPLATES_FILE" default:"templates.yaml"`

	// ----------------------------
	// Sessions
	// ----------------------------
	SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"30m"`
	RateLimit  int           `envconfig:"RATE_LIMIT" default:"10"`

	// ----------------------------
	// HTTP API
	// ----------------------------
	APIPort string `envconfig:"API_PORT" default:"8080"`

	// ----------------------------
	// Metrics
	// ----------------------------
	MetricsPort string `envconfig:"METRICS_PORT" default:"9090"`
}

// Load reads the config from the environment, after an optional .env file.
// Relative file paths are resolved against the executable's directory, then
// the working directory. `go run` builds into a temp dir, so the fallback is
// what finds the files in the repo.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	exe, err := os.Executable()
	if err != nil {
		return nil, err
	}
	base := filepath.Dir(exe)
	cfg.RecipientsFile = Resolve(base, cfg.RecipientsFile)
	cfg.TemplatesFile = Resolve(base, cfg.TemplatesFile)

	return &cfg, nil
}

// Resolve returns path joined onto base when that file exists, otherwise
// path under the working directory when that exists. When neither exists the
// base location is returned so errors name where the file is expected.
// Absolute paths are returned as is.
func Resolve(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	candidate := filepath.Join(base, path)
	if exists(candidate) {
		return candidate
	}
	if wd, err := filepath.Abs(path); err == nil && exists(wd) {
		return wd
	}
	return candidate
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
