package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rapidophilia/policypdf/internal/config"
	"github.com/rapidophilia/policypdf/internal/extract"
	"github.com/rapidophilia/policypdf/internal/hints"
)

// resolveConfig builds the effective configuration shared by every command:
// defaults, then the config file, then .env and the environment, then
// --root. Command-specific flags are merged by the caller.
func resolveConfig(f *commonFlags, env *Environment) (*config.Config, error) {
	environ := envMap(env.Environ())

	dotEnvRoot := f.root
	if dotEnvRoot == "" {
		dotEnvRoot = environ[envPrefix+"ROOT"]
	}
	if dotEnvRoot == "" {
		dotEnvRoot = "."
	}
	if err := mergeDotEnv(environ, dotEnvRoot); err != nil {
		return nil, err
	}

	if !f.quiet {
		warnUnknownEnvVars(env.Stderr, environ)
	}

	envCfg, err := loadEnvConfig(environ)
	if err != nil {
		return nil, err
	}

	name := f.config
	if name == "" {
		name = envCfg.Config
	}

	cfg := config.DefaultConfig()
	if name != "" {
		cfg, err = config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(envCfg, cfg)
	if f.root != "" {
		cfg.Root = f.root
	}
	return cfg, nil
}

// sourcesFor returns the sources to extract. Positional arguments replace
// the configured list and are taken relative to the working directory.
func sourcesFor(cfg *config.Config, args []string) []extract.Source {
	if len(args) > 0 {
		sources := make([]extract.Source, len(args))
		for i, a := range args {
			sources[i] = extract.Source{Path: a}
		}
		return sources
	}

	sources := make([]extract.Source, len(cfg.Sources))
	for i, s := range cfg.Sources {
		sources[i] = extract.Source{
			Path:   cfg.Resolve(s.Path),
			Title:  s.Title,
			Format: s.Format,
		}
	}
	return sources
}

// withSourceHint appends a --root hint to missing-file errors.
func withSourceHint(err error, root string) error {
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w%s", err, hints.ForSourceNotFound(root))
	}
	return err
}
