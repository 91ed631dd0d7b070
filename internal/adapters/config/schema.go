package config

import "time"

// Squaresfile is the structure of squares.yaml. Every field can be
// overridden from the environment.
type Squaresfile struct {
	Server SectionServer `yaml:"server" envPrefix:"SQUARES_SERVER_"`
	Solver SectionSolver `yaml:"solver" envPrefix:"SQUARES_SOLVER_"`
	Retry  SectionRetry  `yaml:"retry"  envPrefix:"SQUARES_RETRY_"`
	Store  SectionStore  `yaml:"store"  envPrefix:"SQUARES_STORE_"`
	Log    SectionLog    `yaml:"log"    envPrefix:"SQUARES_LOG_"`
}

// SectionServer configures the solve server and the client that calls it.
type SectionServer struct {
	Listen string `yaml:"listen" env:"LISTEN"`
	URL    string `yaml:"url"    env:"URL"`
}

// SectionSolver configures the external solver process.
type SectionSolver struct {
	Command []string      `yaml:"command" env:"COMMAND" envSeparator:" "`
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT"`
}

// SectionRetry configures how observers retry the server.
type SectionRetry struct {
	Attempts int           `yaml:"attempts" env:"ATTEMPTS"`
	Delay    time.Duration `yaml:"delay"    env:"DELAY"`
}

// SectionStore selects and configures the shared state backend.
type SectionStore struct {
	Backend  string `yaml:"backend"   env:"BACKEND"`
	Path     string `yaml:"path"      env:"PATH"`
	RedisURL string `yaml:"redis_url" env:"REDIS_URL"`
}

// SectionLog configures logging.
type SectionLog struct {
	JSON bool `yaml:"json" env:"JSON"`
}
