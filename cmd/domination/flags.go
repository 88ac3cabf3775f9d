// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"time"

	"github.com/lgbarn/domination-go/internal/config"
)

var (
	// Search input
	searchFile   = flag.String("f", "", "File of search strings, one per line ('#' starts a comment)")
	typeSets     = flag.String("typesets", "", "Generate piece sets: minPoints,maxPoints,queens,rooks,bishops,knights")
	typeTemplate = flag.String("template", "8x8,0,D,N,", "Settings after the piece set for generated searches")

	// Output options
	outputDir = flag.String("o", "", "Report directory (default: $DOMINATION_OUTPUT_DIR or results)")
	verbosity = flag.Int("verbosity", -1, "Console reports: 0 none, 1 solutions and final, 2 progress")
	quiet     = flag.Bool("q", false, "No reports on the console")
	interval  = flag.Duration("interval", 0, "Time between interim reports (default: $DOMINATION_UPDATE_INTERVAL or 1m)")
	logLevel  = flag.String("loglevel", "", "Log level: debug, info, warn, error (default: $DOMINATION_LOG_LEVEL or info)")

	// Parallelism
	workers    = flag.Int("workers", 0, "Searches run at once (default: $DOMINATION_WORKERS or 1)")
	partitions = flag.Int("partitions", 0, "Ranges each fresh search is split into (default: $DOMINATION_PARTITIONS or 1)")

	// Misc
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags overrides the environment configuration with the flags that
// were given.
func applyFlags(rt *config.Runtime) {
	applyOutputFlags(rt)
	applyParallelFlags(rt)
}

func applyOutputFlags(rt *config.Runtime) {
	if *outputDir != "" {
		rt.OutputDir = *outputDir
	}
	if *verbosity >= 0 {
		rt.Verbosity = *verbosity
	}
	if *quiet {
		rt.Verbosity = config.VerbosityQuiet
	}
	if *interval > 0 {
		rt.UpdateInterval = *interval
	}
	if rt.UpdateInterval <= 0 {
		rt.UpdateInterval = time.Minute
	}
	if *logLevel != "" {
		rt.LogLevel = *logLevel
	}
}

func applyParallelFlags(rt *config.Runtime) {
	if *workers > 0 {
		rt.Workers = *workers
	}
	if *partitions > 0 {
		rt.Partitions = *partitions
	}
}
