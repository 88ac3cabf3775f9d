package board

import (
	"github.com/lgbarn/domination-go/internal/chess"
	"github.com/lgbarn/domination-go/internal/config"
)

// Next advances the board to the next legal major-piece placement. It
// returns false once the slowest piece has passed the end of its range, at
// which point the board is exhausted and must not be used further.
//
// The fastest piece is moved forward first. When a piece cannot move it is
// taken off the board and the next slower piece moves instead; all faster
// pieces are then reseeded in their lowest legal positions. If a reseed
// fails, the piece that moved is advanced again.
func (b *Board) Next(s *config.Settings) bool {
	idx := b.advance(0, s)
	for idx < len(b.pieces) {
		if b.reseed(idx, s) {
			return true
		}
		idx = b.advance(idx, s)
	}
	return false
}

// advance removes the piece at idx and moves it to its next legal square,
// falling through to slower pieces when it has none. It returns the index of
// the piece that moved, or len(b.pieces) when none could.
func (b *Board) advance(idx int, s *config.Settings) int {
	last := b.dims.Squares() - 1
	for ; idx < len(b.pieces); idx++ {
		p := b.pieces[idx]
		b.remove(p)
		if p.Position(b.dims) == last {
			continue
		}
		if b.moveSingle(idx, s) {
			return idx
		}
	}
	return idx
}

// moveSingle steps an off-board piece forward to the next legal square and
// adds it to the board. It returns false, leaving the piece off the board,
// when no legal square remains.
func (b *Board) moveSingle(idx int, s *config.Settings) bool {
	p := b.pieces[idx]
	isLast := idx == len(b.pieces)-1
	restricted := b.isRestricted(idx)
	lastRank := b.dims.Ranks - 1
	lastSquare := b.dims.Squares() - 1

	moveRank, moveFile := false, true
	for moveRank || moveFile {
		switch {
		case moveRank, restricted && p.File >= b.leftHalfLimit():
			if p.Rank == lastRank {
				return false
			}
			p.MoveToNextRank(b.dims)
		default:
			if p.Position(b.dims) == lastSquare {
				return false
			}
			p.MoveToNextPosition(b.dims)
		}

		if isLast && p.Position(b.dims) >= s.LastPieceEnd {
			return false
		}
		moveRank, moveFile = b.invalidRankThenFile(p.Rank, p.File, s)
	}

	b.add(p)
	return true
}

// reseed places the pieces faster than idx, slowest first, in their lowest
// legal positions. On failure the pieces up to and including idx are taken
// off the board.
func (b *Board) reseed(idx int, s *config.Settings) bool {
	for i := idx - 1; i >= 0; i-- {
		if !b.placeLowest(i, s) {
			for j := 0; j <= idx; j++ {
				b.remove(b.pieces[j])
			}
			return false
		}
	}
	return true
}

// placeLowest puts the piece at idx on the first legal square after the next
// piece of its type, or from square 0 when the next piece is another type.
func (b *Board) placeLowest(idx int, s *config.Settings) bool {
	p := b.pieces[idx]
	if idx < len(b.pieces)-1 && b.pieces[idx+1].Type == p.Type {
		p.MoveTo(b.pieces[idx+1])
		return b.moveSingle(idx, s)
	}

	p.MoveToOrigin()
	if !b.occupancy.At(0) {
		if invalidRank, invalidFile := b.invalidRankThenFile(0, 0, s); !invalidRank && !invalidFile {
			b.add(p)
			return true
		}
	}
	return b.moveSingle(idx, s)
}

// invalidRankThenFile checks a candidate square. The rank is checked first so
// the caller can skip a whole rank when it is forbidden.
func (b *Board) invalidRankThenFile(rank, file int, s *config.Settings) (invalidRank, invalidFile bool) {
	if !s.AllowRooksQueensOnSameLines {
		for _, group := range [][]*chess.Piece{b.typeGroups[chess.Rook], b.typeGroups[chess.Queen]} {
			for _, p := range group {
				if !p.OnBoard {
					continue
				}
				if p.Rank == rank {
					return true, false
				}
				if p.File == file {
					invalidFile = true
				}
			}
		}
	}

	if b.edgeCount >= s.MaxNonRookNonPawnOnEdge {
		if rank == 0 || rank == b.dims.Ranks-1 {
			return true, false
		}
		if file == 0 || file == b.dims.Files-1 {
			invalidFile = true
		}
	}

	if invalidFile {
		return false, true
	}
	return false, b.occupancy.Get(rank, file)
}

// isRestricted reports whether the piece at idx is kept on the left half.
func (b *Board) isRestricted(idx int) bool {
	return idx >= len(b.pieces)-b.restricted
}

// leftHalfLimit is the last file a restricted piece may stand on. On boards
// with an odd number of files the centre file is included.
func (b *Board) leftHalfLimit() int {
	return (b.dims.Files+1)/2 - 1
}
