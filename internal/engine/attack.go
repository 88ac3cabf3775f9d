// Package engine computes attack coverage: the set of squares attacked by
// the pieces on a board.
package engine

import (
	"fmt"

	"github.com/lgbarn/domination-go/internal/chess"
	"github.com/lgbarn/domination-go/internal/errors"
)

// Evaluator computes attack coverage for a set of placed pieces.
type Evaluator interface {
	// Coverage returns a grid marking every square attacked by at least one
	// on-board piece. Rays stop on the first occupied square, which is itself
	// marked. With includeOwn, each piece also covers its own square.
	Coverage(pieces []*chess.Piece, occupied *chess.Grid, includeOwn bool) *chess.Grid
}

// NewEvaluator returns the fastest evaluator available for the dimensions:
// the bitboard evaluator on a standard board, the ray scanner otherwise.
func NewEvaluator(d chess.Dims) Evaluator {
	if d == chess.Standard {
		return BitboardEvaluator{}
	}
	return NewRayEvaluator(d)
}

var (
	knightOffsets   = [][2]int{{1, 2}, {-1, 2}, {1, -2}, {-1, -2}, {2, 1}, {-2, 1}, {2, -1}, {-2, -1}}
	kingOffsets     = [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	straightDirs    = [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagonalDirs    = [][2]int{{1, 1}, {-1, 1}, {1, -1}, {-1, -1}}
	pawnAttackFiles = []int{-1, 1}
)

// RayEvaluator scans rays square by square and works for any board size.
type RayEvaluator struct {
	dims chess.Dims
}

// NewRayEvaluator creates a ray-scanning evaluator for the dimensions.
func NewRayEvaluator(d chess.Dims) *RayEvaluator {
	return &RayEvaluator{dims: d}
}

// Coverage implements Evaluator.
func (e *RayEvaluator) Coverage(pieces []*chess.Piece, occupied *chess.Grid, includeOwn bool) *chess.Grid {
	covered := chess.NewGrid(e.dims)

	for _, p := range pieces {
		if !p.OnBoard {
			continue
		}
		if includeOwn {
			covered.Set(p.Rank, p.File)
		}

		switch p.Type {
		case chess.Queen:
			e.rays(p, straightDirs, occupied, covered)
			e.rays(p, diagonalDirs, occupied, covered)
		case chess.Rook:
			e.rays(p, straightDirs, occupied, covered)
		case chess.Bishop:
			e.rays(p, diagonalDirs, occupied, covered)
		case chess.Knight:
			e.steps(p, knightOffsets, covered)
		case chess.King:
			e.steps(p, kingOffsets, covered)
		case chess.Pawn:
			e.pawn(p, covered)
		default:
			panicUnknown(p)
		}
	}

	return covered
}

// rays marks each direction up to and including the first occupied square.
func (e *RayEvaluator) rays(p *chess.Piece, dirs [][2]int, occupied, covered *chess.Grid) {
	for _, dir := range dirs {
		rank, file := p.Rank+dir[0], p.File+dir[1]
		for e.dims.Contains(rank, file) {
			covered.Set(rank, file)
			if occupied.Get(rank, file) {
				break // Blocked
			}
			rank += dir[0]
			file += dir[1]
		}
	}
}

// steps marks fixed offsets that land on the board.
func (e *RayEvaluator) steps(p *chess.Piece, offsets [][2]int, covered *chess.Grid) {
	for _, off := range offsets {
		rank, file := p.Rank+off[0], p.File+off[1]
		if e.dims.Contains(rank, file) {
			covered.Set(rank, file)
		}
	}
}

// pawn marks the two forward diagonals. A pawn on the last rank attacks nothing.
func (e *RayEvaluator) pawn(p *chess.Piece, covered *chess.Grid) {
	rank := p.Rank + 1
	for _, df := range pawnAttackFiles {
		if e.dims.Contains(rank, p.File+df) {
			covered.Set(rank, p.File+df)
		}
	}
}

func panicUnknown(p *chess.Piece) {
	panic(fmt.Errorf("coverage of %s at %s: %w", p.Type, p, errors.ErrUnknownPieceType))
}
