// domination searches for placements of chess pieces that, completed with
// pawns, attack every square of the board.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/lgbarn/domination-go/internal/config"
	domerrors "github.com/lgbarn/domination-go/internal/errors"
	"github.com/lgbarn/domination-go/internal/output"
	"github.com/lgbarn/domination-go/internal/search"
	"github.com/lgbarn/domination-go/internal/worker"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("domination version %s\n", programVersion)
		os.Exit(0)
	}

	rt, err := config.LoadRuntime()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading environment: %v\n", err)
		os.Exit(1)
	}
	applyFlags(&rt)

	logger, err := newLogger(rt.LogLevel, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	searches, err := collectSearches(flag.Args(), *searchFile, *typeSets, *typeTemplate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(searches) == 0 {
		usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	failed := runSearches(ctx, searches, rt, logger, os.Stdout)
	stop()

	if failed > 0 {
		os.Exit(1)
	}
}

// newLogger builds a console logger at the named level.
func newLogger(level string, w io.Writer) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level %q: %w", level, err)
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.DateTime}).
		Level(lvl).
		With().Timestamp().
		Logger(), nil
}

// collectSearches gathers the search strings from the arguments, the search
// file and the generated piece sets, in that order.
func collectSearches(args []string, file, typeSetSpec, template string) ([]string, error) {
	searches := append([]string(nil), args...)

	if file != "" {
		fromFile, err := loadSearchFile(file)
		if err != nil {
			return nil, err
		}
		searches = append(searches, fromFile...)
	}

	if typeSetSpec != "" {
		generated, err := generatedSearches(typeSetSpec, template)
		if err != nil {
			return nil, err
		}
		searches = append(searches, generated...)
	}
	return searches, nil
}

// loadSearchFile reads one search string per line, skipping blank lines and
// '#' comments.
func loadSearchFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open search file: %w", err)
	}
	defer f.Close()

	var searches []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		searches = append(searches, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read search file: %w", err)
	}
	return searches, nil
}

// parseTypeSets parses "minPoints,maxPoints,queens,rooks,bishops,knights".
func parseTypeSets(spec string) (minPoints, maxPoints int, limits search.TypeLimits, err error) {
	parts := strings.Split(spec, ",")
	if len(parts) != 6 {
		return 0, 0, limits, &domerrors.ParseError{Err: domerrors.ErrInvalidSettings, Input: spec, Field: "typesets", Expected: "6 comma separated counts"}
	}

	var n [6]int
	for i, part := range parts {
		v, convErr := strconv.Atoi(strings.TrimSpace(part))
		if convErr != nil || v < 0 {
			return 0, 0, limits, &domerrors.ParseError{Err: domerrors.ErrInvalidSettings, Input: spec, Field: "typesets", Expected: "non-negative integer", Got: part}
		}
		n[i] = v
	}

	limits = search.TypeLimits{Queens: n[2], Rooks: n[3], Bishops: n[4], Knights: n[5]}
	return n[0], n[1], limits, nil
}

// generatedSearches builds a fresh search for every generated piece set,
// completing each with the settings template.
func generatedSearches(spec, template string) ([]string, error) {
	minPoints, maxPoints, limits, err := parseTypeSets(spec)
	if err != nil {
		return nil, err
	}

	sets := search.TypeSets(minPoints, maxPoints, limits)
	searches := make([]string, 0, len(sets))
	for _, set := range sets {
		searches = append(searches, "|"+set+","+template)
	}
	return searches, nil
}

// runSearches runs every search on the worker pool and returns how many did
// not complete.
func runSearches(ctx context.Context, searches []string, rt config.Runtime, logger zerolog.Logger, console io.Writer) (failed int) {
	reporter := output.NewReporter(rt, console)
	run := worker.SearchRunner(search.RunnerConfig{
		Logger:         logger,
		Reports:        reporter,
		UpdateInterval: rt.UpdateInterval,
	}, rt.Partitions)

	pool := worker.NewPool(ctx, run, worker.WithWorkers(rt.Workers), worker.WithBufferSize(len(searches)))
	// An interrupt stops the pool: running searches write their continue
	// strings and queued ones are drained without starting.
	stopOnCancel := context.AfterFunc(ctx, pool.Stop)
	defer stopOnCancel()

	logger.Info().Int("workers", pool.NumWorkers()).Int("searches", len(searches)).Msg("starting searches")
	pool.Start()

	var skipped int
	for i, s := range searches {
		job := worker.Job{Search: s, Index: i}
		if pool.TrySubmit(job) {
			continue
		}
		if pool.IsStopped() {
			skipped = len(searches) - i
			logger.Warn().Int("skipped", skipped).Msg("searches not started")
			break
		}
		pool.Submit(job)
	}
	go pool.Close()

	for res := range pool.Results() {
		log := logger.With().Str("search", res.Job.Search).Logger()
		switch {
		case res.Err == nil:
			log.Info().
				Int64("major_boards", res.Stats.MajorBoards).
				Int64("total_boards", res.Stats.TotalBoards).
				Int64("solutions", res.Stats.Solutions).
				Msg("search finished")
			continue
		case errors.Is(res.Err, context.Canceled), errors.Is(res.Err, worker.ErrStopped):
			log.Warn().Msg("search interrupted")
		case errors.Is(res.Err, domerrors.ErrInfeasibleBoard):
			log.Warn().Err(res.Err).Msg("no legal board")
		default:
			log.Error().Err(res.Err).Msg("search failed")
		}
		failed++
	}
	return failed + skipped
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: domination [options] [search-strings...]\n\n")
	fmt.Fprintf(os.Stderr, "Searches for placements of major pieces that, completed with pawns,\n")
	fmt.Fprintf(os.Stderr, "attack every square of the board.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nSearch strings:\n")
	fmt.Fprintf(os.Stderr, "  <board>|<pieces>,<files>x<ranks>,<target>,<A|D>,<V|N>,<rules>|<start>-<end>|<stats>\n")
	fmt.Fprintf(os.Stderr, "  The board is empty for a fresh search. Range and stats may be omitted.\n")
	fmt.Fprintf(os.Stderr, "  Example: \"|QRRBBNN,8x8,16,D,N,\"\n")
	fmt.Fprintf(os.Stderr, "\nRules:\n%s", rulesHelp)
}

const rulesHelp = `  R      rooks and queens may not share a rank or file
  P      no pawns on the first rank: the pieces must cover it, and an
         uncovered second-rank square needs a pawn on it (self-cover only)
  F      full search, no mirror pruning
  <n>    at most n non-rook pieces on the edge
`
