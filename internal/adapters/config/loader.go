// Package config loads squares settings from squares.yaml, a .env file and
// the environment, in increasing order of precedence.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.trai.ch/squares/internal/core/domain"
	"go.trai.ch/squares/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// PathEnv names the variable that points at an alternative config file.
const PathEnv = "SQUARES_CONFIG"

var knownBackends = []string{
	domain.StoreMemory,
	domain.StoreFile,
	domain.StoreSQLite,
	domain.StoreRedis,
}

// Loader resolves domain.Settings.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load resolves settings for the working directory dir.
// A missing config file is not an error; defaults apply.
func (l *Loader) Load(dir string) (domain.Settings, error) {
	if err := l.loadDotEnv(dir); err != nil {
		return domain.Settings{}, err
	}

	path := os.Getenv(PathEnv)
	explicit := path != ""
	if !explicit {
		path = filepath.Join(dir, domain.ConfigFileName)
	}

	file := fromSettings(domain.DefaultSettings())

	data, err := os.ReadFile(path) //nolint:gosec // path is operator supplied
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &file); err != nil {
			return domain.Settings{}, zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, err.Error()), "path", path)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// Defaults only.
	default:
		return domain.Settings{}, zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, err.Error()), "path", path)
	}

	if err := env.Parse(&file); err != nil {
		return domain.Settings{}, zerr.Wrap(errors.Join(domain.ErrConfigParseFailed, err), "failed to parse environment")
	}

	settings := file.toSettings()
	if settings.StoreBackend == domain.StoreSQLite && settings.StorePath == domain.DefaultStatePath {
		settings.StorePath = domain.DefaultSQLitePath
	}
	if settings.StorePath != "" && !filepath.IsAbs(settings.StorePath) {
		settings.StorePath = filepath.Join(dir, settings.StorePath)
	}

	if err := validate(&settings); err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}

func (l *Loader) loadDotEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, err.Error()), "path", path)
	}
	if l.Logger != nil {
		l.Logger.Info("loaded " + path)
	}
	return nil
}

func validate(s *domain.Settings) error {
	if !slices.Contains(knownBackends, s.StoreBackend) {
		return zerr.With(zerr.Wrap(domain.ErrUnknownStoreBackend, "unsupported store backend"), "backend", s.StoreBackend)
	}
	if s.StoreBackend == domain.StoreRedis && s.RedisURL == "" {
		return zerr.Wrap(domain.ErrInvalidConfig, "store.redis_url is required for the redis backend")
	}
	if len(s.SolverCommand) == 0 {
		return zerr.Wrap(domain.ErrInvalidConfig, "solver.command must not be empty")
	}
	if s.SolverTimeout <= 0 {
		return zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "solver.timeout must be positive"), "timeout", s.SolverTimeout)
	}
	if s.RetryAttempts < 1 {
		return zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "retry.attempts must be at least 1"), "attempts", s.RetryAttempts)
	}
	if s.RetryDelay < 0 {
		return zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "retry.delay must not be negative"), "delay", s.RetryDelay)
	}
	return nil
}

func fromSettings(s domain.Settings) Squaresfile {
	return Squaresfile{
		Server: SectionServer{Listen: s.ListenAddr, URL: s.ServerURL},
		Solver: SectionSolver{Command: slices.Clone(s.SolverCommand), Timeout: s.SolverTimeout},
		Retry:  SectionRetry{Attempts: s.RetryAttempts, Delay: s.RetryDelay},
		Store:  SectionStore{Backend: s.StoreBackend, Path: s.StorePath, RedisURL: s.RedisURL},
		Log:    SectionLog{JSON: s.LogJSON},
	}
}

func (f *Squaresfile) toSettings() domain.Settings {
	return domain.Settings{
		ListenAddr:    f.Server.Listen,
		ServerURL:     f.Server.URL,
		SolverCommand: f.Solver.Command,
		SolverTimeout: f.Solver.Timeout,
		RetryAttempts: f.Retry.Attempts,
		RetryDelay:    f.Retry.Delay,
		StoreBackend:  f.Store.Backend,
		StorePath:     f.Store.Path,
		RedisURL:      f.Store.RedisURL,
		LogJSON:       f.Log.JSON,
	}
}
