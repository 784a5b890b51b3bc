package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/rapidophilia/policypdf/internal/config"
)

// envPrefix namespaces every variable the CLI reads.
const envPrefix = "POLICYPDF_"

// dotEnvFile is read from the site root before the environment is parsed.
const dotEnvFile = ".env"

// envConfig holds configuration from environment variables.
// Values override the config file; flags override both.
type envConfig struct {
	Config   string        `env:"CONFIG"`    // POLICYPDF_CONFIG: config file name or path
	Root     string        `env:"ROOT"`      // POLICYPDF_ROOT: site root
	Output   string        `env:"OUTPUT"`    // POLICYPDF_OUTPUT: PDF path
	CopyTo   string        `env:"COPY_TO"`   // POLICYPDF_COPY_TO: copy target
	Style    string        `env:"STYLE"`     // POLICYPDF_STYLE: CSS style name or path
	Timeout  time.Duration `env:"TIMEOUT"`   // POLICYPDF_TIMEOUT: PDF generation timeout
	PageSize string        `env:"PAGE_SIZE"` // POLICYPDF_PAGE_SIZE: a4, letter, legal
	Date     string        `env:"DATE"`      // POLICYPDF_DATE: cover date or "auto"
}

// knownEnvVars lists valid POLICYPDF_* variables, used to flag typos.
var knownEnvVars = map[string]bool{
	"POLICYPDF_CONFIG":    true,
	"POLICYPDF_ROOT":      true,
	"POLICYPDF_OUTPUT":    true,
	"POLICYPDF_COPY_TO":   true,
	"POLICYPDF_STYLE":     true,
	"POLICYPDF_TIMEOUT":   true,
	"POLICYPDF_PAGE_SIZE": true,
	"POLICYPDF_DATE":      true,
	// Read by the doctor command only.
	"POLICYPDF_CONTAINER": true,
}

// envMap turns KEY=VALUE pairs into a map. Later duplicates win.
func envMap(environ []string) map[string]string {
	m := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		m[k] = v
	}
	return m
}

// mergeDotEnv adds variables from root/.env that are not already set.
// A missing file is not an error.
func mergeDotEnv(environ map[string]string, root string) error {
	path := filepath.Join(root, dotEnvFile)
	vars, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: %s: %v", ErrInvalidEnv, path, err)
	}
	for k, v := range vars {
		if _, set := environ[k]; !set {
			environ[k] = v
		}
	}
	return nil
}

// loadEnvConfig parses POLICYPDF_* variables from environ.
func loadEnvConfig(environ map[string]string) (*envConfig, error) {
	cfg := &envConfig{}
	opts := env.Options{
		Prefix:      envPrefix,
		Environment: environ,
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEnv, err)
	}
	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("%w: %sTIMEOUT must be positive, got %s", ErrInvalidEnv, envPrefix, cfg.Timeout)
	}
	return cfg, nil
}

// warnUnknownEnvVars prints a warning for each unrecognized POLICYPDF_*
// variable, in name order.
func warnUnknownEnvVars(w io.Writer, environ map[string]string) {
	var unknown []string
	for name := range environ {
		if strings.HasPrefix(name, envPrefix) && !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig copies every set environment value onto cfg.
func applyEnvConfig(e *envConfig, cfg *config.Config) {
	if e.Root != "" {
		cfg.Root = e.Root
	}
	if e.Output != "" {
		cfg.Output.Path = e.Output
	}
	if e.CopyTo != "" {
		cfg.Output.CopyTo = e.CopyTo
	}
	if e.Style != "" {
		cfg.CSS.Style = e.Style
	}
	if e.Timeout > 0 {
		cfg.Timeout = e.Timeout.String()
	}
	if e.PageSize != "" {
		cfg.Page.Size = e.PageSize
	}
	if e.Date != "" {
		cfg.Cover.Date = e.Date
	}
}
