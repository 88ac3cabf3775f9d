package search

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/lgbarn/domination-go/internal/config"
	domerrors "github.com/lgbarn/domination-go/internal/errors"
)

// Range is a half-open range [Start, End) of symmetry piece positions.
type Range struct {
	Start, End int
}

// Partitions splits [start, end) into n contiguous ranges of near equal
// size. It returns fewer ranges when the range holds fewer than n positions.
func Partitions(start, end, n int) []Range {
	size := end - start
	if size <= 0 {
		return nil
	}
	n = max(1, min(n, size))

	ranges := make([]Range, 0, n)
	for i := 0; i < n; i++ {
		ranges = append(ranges, Range{
			Start: start + size*i/n,
			End:   start + size*(i+1)/n,
		})
	}
	return ranges
}

// RunPartitioned splits a fresh search into n ranges of the symmetry piece
// and runs them concurrently, each on its own board. A partition in which no
// board can be placed contributes nothing. The first failing partition
// cancels the others. The returned stats are the sum over all partitions.
func RunPartitioned(ctx context.Context, info *config.SearchInfo, n int, cfg RunnerConfig) (config.Stats, error) {
	s := info.Settings
	if n <= 1 {
		r, err := NewRunner(info, cfg)
		if err != nil {
			return config.Stats{}, err
		}
		return r.Run(ctx)
	}
	if info.Board != "" {
		return config.Stats{}, fmt.Errorf("partitioning a resumed search: %w", domerrors.ErrInvalidSearch)
	}

	parts := Partitions(s.LastPieceStart, s.LastPieceEnd, n)
	results := make([]config.Stats, len(parts))

	g, gctx := errgroup.WithContext(ctx)
	for i, part := range parts {
		i := i
		partInfo := &config.SearchInfo{Settings: s.WithRange(part.Start, part.End)}
		g.Go(func() error {
			r, err := NewRunner(partInfo, cfg)
			if errors.Is(err, domerrors.ErrInfeasibleBoard) {
				cfg.Logger.Debug().Str("range", partInfo.Settings.RangeString()).Msg("empty partition")
				return nil
			}
			if err != nil {
				return err
			}
			results[i], err = r.Run(gctx)
			return err
		})
	}
	err := g.Wait()

	var total config.Stats
	total.Add(info.Stats)
	for _, st := range results {
		total.Add(st)
	}
	return total, err
}
