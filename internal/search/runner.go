// Package search drives domination searches: it walks every placement of a
// board, runs the pawn feasibility check on each, and reports progress and
// solutions.
package search

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/lgbarn/domination-go/internal/board"
	"github.com/lgbarn/domination-go/internal/config"
	"github.com/lgbarn/domination-go/internal/errors"
	"github.com/lgbarn/domination-go/internal/output"
)

// RunnerConfig configures a Runner.
type RunnerConfig struct {
	Logger zerolog.Logger

	// Reports receives solution, interim and final reports. Required.
	Reports output.ReportWriter

	// UpdateInterval is the time between interim reports. Zero means one
	// minute.
	UpdateInterval time.Duration

	// Now is the clock; tests replace it.
	Now func() time.Time
}

// Runner runs one search on its own board.
type Runner struct {
	cfg   RunnerConfig
	log   zerolog.Logger
	info  *config.SearchInfo
	board *board.Board

	// Pawn sets tried and skipped as duplicates during this run.
	pawnSets      int64
	duplicateSets int64
}

// NewRunner prepares a search. A search string with a board resumes from
// that board; otherwise the board is seeded from the settings.
func NewRunner(info *config.SearchInfo, cfg RunnerConfig) (*Runner, error) {
	if cfg.Reports == nil {
		return nil, fmt.Errorf("search: report writer required")
	}
	if cfg.UpdateInterval == 0 {
		cfg.UpdateInterval = time.Minute
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	s := info.Settings
	var (
		b   *board.Board
		err error
	)
	if info.Board == "" {
		b, err = board.New(s)
	} else {
		b, err = board.FromRepresentation(info.Board, s)
	}
	if err != nil {
		return nil, searchError(err, s)
	}

	return &Runner{
		cfg:   cfg,
		log:   cfg.Logger.With().Str("pieces", s.Pieces).Str("range", s.RangeString()).Logger(),
		info:  info,
		board: b,
	}, nil
}

func searchError(err error, s *config.Settings) error {
	return &errors.SearchError{Err: err, Pieces: s.Pieces, Start: s.LastPieceStart, End: s.LastPieceEnd}
}

// Info returns the search state. Its board and stats are updated as the
// search runs.
func (r *Runner) Info() *config.SearchInfo {
	return r.info
}

// Run evaluates every placement until the board is exhausted or ctx is
// done. The context is checked between placements; on cancellation an
// interim report is written so the search can be resumed, and ctx.Err() is
// returned. The returned stats include those carried in the search string.
func (r *Runner) Run(ctx context.Context) (config.Stats, error) {
	s := r.info.Settings
	stats := &r.info.Stats
	lastUpdate := r.cfg.Now()

	r.log.Info().Str("board", r.board.Representation()).Int64("major_boards", stats.MajorBoards).Msg("search started")

	for {
		if err := ctx.Err(); err != nil {
			stats.Elapsed += r.cfg.Now().Sub(lastUpdate)
			r.info.Board = r.board.Representation()
			if reportErr := r.cfg.Reports.Interim(r.info); reportErr != nil {
				r.log.Warn().Err(reportErr).Msg("interim report failed")
			}
			r.log.Info().Str("continue", r.info.ContinueString()).Msg("search stopped")
			return *stats, err
		}

		stats.MajorBoards++
		f := r.board.EvaluatePawns(s)
		stats.TotalBoards += f.Evaluated
		r.pawnSets += int64(f.PawnSets)
		r.duplicateSets += int64(f.DuplicateSets)
		if f.OK {
			stats.Solutions++
			r.log.Info().Str("solution", f.Solution.Representation()).Int64("solutions", stats.Solutions).Msg("solution found")
			if err := r.cfg.Reports.Solution(r.info, f.Solution); err != nil {
				return *stats, searchError(err, s)
			}
		}

		if !r.board.Next(s) {
			break
		}

		if now := r.cfg.Now(); now.Sub(lastUpdate) > r.cfg.UpdateInterval {
			stats.Elapsed += now.Sub(lastUpdate)
			lastUpdate = now
			r.info.Board = r.board.Representation()
			r.log.Debug().
				Int64("major_boards", stats.MajorBoards).
				Int64("total_boards", stats.TotalBoards).
				Int64("solutions", stats.Solutions).
				Int64("pawn_sets", r.pawnSets).
				Int64("duplicate_pawn_sets", r.duplicateSets).
				Msg("progress")
			if err := r.cfg.Reports.Interim(r.info); err != nil {
				return *stats, searchError(err, s)
			}
		}
	}

	stats.Elapsed += r.cfg.Now().Sub(lastUpdate)
	r.info.Board = ""
	r.log.Info().
		Int64("major_boards", stats.MajorBoards).
		Int64("total_boards", stats.TotalBoards).
		Int64("solutions", stats.Solutions).
		Int64("pawn_sets", r.pawnSets).
		Int64("duplicate_pawn_sets", r.duplicateSets).
		Dur("elapsed", stats.Elapsed).
		Msg("search complete")

	if err := r.cfg.Reports.Final(r.info); err != nil {
		return *stats, searchError(err, s)
	}
	return *stats, nil
}
