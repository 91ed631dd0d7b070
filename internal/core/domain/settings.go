package domain

import "time"

// Store backends.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

const (
	// DefaultListenAddr is where the solve server listens.
	DefaultListenAddr = ":3000"
	// DefaultServerURL is the solve endpoint observers call.
	DefaultServerURL = "http://localhost:3000"
	// DefaultSolverTimeout bounds a single solver run.
	DefaultSolverTimeout = 30 * time.Second
	// DefaultRetryAttempts is how often the observer tries the server.
	DefaultRetryAttempts = 3
	// DefaultRetryDelay is the pause between attempts.
	DefaultRetryDelay = time.Second
	// DefaultStatePath is the file store location relative to the working directory.
	DefaultStatePath = ".squares/state.json"
	// DefaultSQLitePath replaces DefaultStatePath for the sqlite backend.
	DefaultSQLitePath = ".squares/state.db"
	// ConfigFileName is the default configuration file.
	ConfigFileName = "squares.yaml"
)

// Settings is the resolved runtime configuration.
type Settings struct {
	ListenAddr    string
	ServerURL     string
	SolverCommand []string
	SolverTimeout time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
	StoreBackend  string
	StorePath     string
	RedisURL      string
	LogJSON       bool
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		ListenAddr:    DefaultListenAddr,
		ServerURL:     DefaultServerURL,
		SolverCommand: []string{"./solver"},
		SolverTimeout: DefaultSolverTimeout,
		RetryAttempts: DefaultRetryAttempts,
		RetryDelay:    DefaultRetryDelay,
		StoreBackend:  StoreFile,
		StorePath:     DefaultStatePath,
	}
}
