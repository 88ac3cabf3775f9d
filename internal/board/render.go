package board

import (
	"strings"

	"github.com/lgbarn/domination-go/internal/chess"
)

// Representation returns the pieces in internal order as semicolon separated
// tokens ("Rb2;Ra1;Qd4"). FromRepresentation restores it.
func (b *Board) Representation() string {
	tokens := make([]string, len(b.pieces))
	for i, p := range b.pieces {
		tokens[i] = p.String()
	}
	return strings.Join(tokens, ";")
}

// String returns the representation of the board.
func (b *Board) String() string {
	return b.Representation()
}

// Render draws the board rank-descending: piece letters, '.' for attacked
// squares and 'x' for squares nothing attacks. A piece does not cover its
// own square here.
func (b *Board) Render() string {
	attacked := b.Coverage(false)

	letters := make(map[int]byte, len(b.pieces))
	for _, p := range b.pieces {
		if p.OnBoard {
			letters[p.Position(b.dims)] = p.Type.Letter()
		}
	}

	var sb strings.Builder
	sb.Grow(b.dims.Squares() + b.dims.Ranks)
	for rank := b.dims.Ranks - 1; rank >= 0; rank-- {
		for file := 0; file < b.dims.Files; file++ {
			pos := b.dims.Position(rank, file)
			switch letter, ok := letters[pos]; {
			case ok:
				sb.WriteByte(letter)
			case attacked.At(pos):
				sb.WriteByte('.')
			default:
				sb.WriteByte('x')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Pawns returns copies of the pawns on the board.
func (b *Board) Pawns() []*chess.Piece {
	pawns := b.typeGroups[chess.Pawn]
	out := make([]*chess.Piece, len(pawns))
	for i, p := range pawns {
		out[i] = p.Clone()
	}
	return out
}
