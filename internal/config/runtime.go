package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Verbosity levels for console reports. Everything is always written to the
// report file.
const (
	VerbosityQuiet     = 0 // nothing on the console
	VerbositySolutions = 1 // solutions and final reports
	VerbosityProgress  = 2 // plus interim progress reports
)

// Runtime holds the process-level configuration that does not change the
// result of a search. Values come from the environment and may be overridden
// by command line flags.
type Runtime struct {
	OutputDir      string        `env:"DOMINATION_OUTPUT_DIR" envDefault:"results"`
	UpdateInterval time.Duration `env:"DOMINATION_UPDATE_INTERVAL" envDefault:"1m"`
	Verbosity      int           `env:"DOMINATION_VERBOSITY" envDefault:"2"`
	Workers        int           `env:"DOMINATION_WORKERS" envDefault:"1"`
	Partitions     int           `env:"DOMINATION_PARTITIONS" envDefault:"1"`
	LogLevel       string        `env:"DOMINATION_LOG_LEVEL" envDefault:"info"`
}

// LoadRuntime reads the runtime configuration from environment variables.
func LoadRuntime() (Runtime, error) {
	var rt Runtime
	if err := env.Parse(&rt); err != nil {
		return Runtime{}, fmt.Errorf("parse env: %w", err)
	}
	return rt, nil
}

// ConsoleLevel reports whether reports of the given level go to the console.
func (r Runtime) ConsoleLevel(level int) bool {
	return r.Verbosity >= level
}
