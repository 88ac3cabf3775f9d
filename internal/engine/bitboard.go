package engine

import (
	"math/bits"

	"github.com/dylhunn/dragontoothmg"

	"github.com/lgbarn/domination-go/internal/chess"
)

// Precomputed leaper masks, indexed by square (a1 = 0, h1 = 7, h8 = 63).
var (
	knightMasks    [64]uint64
	kingMasks      [64]uint64
	pawnAttackMask [64]uint64
)

func init() {
	for sq := 0; sq < 64; sq++ {
		rank, file := sq/8, sq%8
		knightMasks[sq] = leaperMask(rank, file, knightOffsets)
		kingMasks[sq] = leaperMask(rank, file, kingOffsets)
		if rank < 7 {
			for _, df := range pawnAttackFiles {
				if f := file + df; f >= 0 && f < 8 {
					pawnAttackMask[sq] |= uint64(1) << ((rank+1)*8 + f)
				}
			}
		}
	}
}

func leaperMask(rank, file int, offsets [][2]int) uint64 {
	var mask uint64
	for _, off := range offsets {
		r, f := rank+off[0], file+off[1]
		if chess.Standard.Contains(r, f) {
			mask |= uint64(1) << (r*8 + f)
		}
	}
	return mask
}

// BitboardEvaluator computes coverage on the standard 8x8 board with
// bitboards. Slider rays come from dragontoothmg's magic bitboards, which
// include the first blocker exactly like the ray scanner.
type BitboardEvaluator struct{}

// Coverage implements Evaluator. The grid dimensions must be 8x8.
func (BitboardEvaluator) Coverage(pieces []*chess.Piece, occupied *chess.Grid, includeOwn bool) *chess.Grid {
	occ := Occupancy(occupied)

	var attacks uint64
	for _, p := range pieces {
		if !p.OnBoard {
			continue
		}
		sq := uint8(p.Rank*8 + p.File)
		if includeOwn {
			attacks |= uint64(1) << sq
		}

		switch p.Type {
		case chess.Queen:
			attacks |= dragontoothmg.CalculateRookMoveBitboard(sq, occ)
			attacks |= dragontoothmg.CalculateBishopMoveBitboard(sq, occ)
		case chess.Rook:
			attacks |= dragontoothmg.CalculateRookMoveBitboard(sq, occ)
		case chess.Bishop:
			attacks |= dragontoothmg.CalculateBishopMoveBitboard(sq, occ)
		case chess.Knight:
			attacks |= knightMasks[sq]
		case chess.King:
			attacks |= kingMasks[sq]
		case chess.Pawn:
			attacks |= pawnAttackMask[sq]
		default:
			panicUnknown(p)
		}
	}

	return gridFromBitboard(attacks)
}

// Occupancy packs an 8x8 grid into a bitboard.
func Occupancy(g *chess.Grid) uint64 {
	var bb uint64
	for sq := 0; sq < 64; sq++ {
		if g.At(sq) {
			bb |= uint64(1) << sq
		}
	}
	return bb
}

func gridFromBitboard(bb uint64) *chess.Grid {
	g := chess.NewGrid(chess.Standard)
	for bb != 0 {
		sq := bits.TrailingZeros64(bb)
		g.Set(sq/8, sq%8)
		bb &= bb - 1
	}
	return g
}
