// Package chess provides the piece and board-geometry types shared by the
// domination search.
package chess

import "fmt"

// PieceType represents one of the six fixed piece kinds.
type PieceType byte

const (
	NoPiece PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	NumPieceTypes
)

// String returns the name of a piece type.
func (t PieceType) String() string {
	names := []string{"None", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if int(t) < len(names) {
		return names[t]
	}
	return "Unknown"
}

// Letter returns the single letter used for a piece type in piece sets,
// board representations and rendered boards.
func (t PieceType) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if int(t) < len(letters) {
		return letters[t]
	}
	return '?'
}

// Points returns the fixed point value of a piece type.
func (t PieceType) Points() int {
	switch t {
	case Queen:
		return 9
	case Rook:
		return 5
	case King:
		return 4
	case Bishop, Knight:
		return 3
	case Pawn:
		return 1
	}
	return 0
}

// IsMajor reports whether the type is a non-pawn piece.
func (t PieceType) IsMajor() bool {
	return t >= Knight && t <= King
}

// Valid reports whether t is one of the six piece types.
func (t PieceType) Valid() bool {
	return t > NoPiece && t < NumPieceTypes
}

// ParsePieceType converts a piece letter to its type. The caret is accepted
// as an alternative pawn symbol.
func ParsePieceType(c byte) (PieceType, bool) {
	switch c {
	case 'Q', 'q':
		return Queen, true
	case 'R', 'r':
		return Rook, true
	case 'B', 'b':
		return Bishop, true
	case 'N', 'n':
		return Knight, true
	case 'K', 'k':
		return King, true
	case 'P', 'p', '^':
		return Pawn, true
	}
	return NoPiece, false
}

// OrderPreference is the fixed type-priority order. Pieces are laid out in
// this order from fastest to slowest, and ties for the symmetry piece go to
// the earliest type listed.
var OrderPreference = []PieceType{Pawn, Rook, Bishop, Knight, King, Queen}

// Dims holds the board dimensions. It is threaded explicitly through every
// component that needs the board geometry.
type Dims struct {
	Ranks int
	Files int
}

// Standard is the ordinary 8x8 chessboard.
var Standard = Dims{Ranks: 8, Files: 8}

// Squares returns the number of squares on the board.
func (d Dims) Squares() int {
	return d.Ranks * d.Files
}

// Position returns the linear index of a square.
func (d Dims) Position(rank, file int) int {
	return rank*d.Files + file
}

// Square converts a linear index back to rank and file.
func (d Dims) Square(pos int) (rank, file int) {
	return pos / d.Files, pos % d.Files
}

// Contains reports whether (rank, file) lies on the board.
func (d Dims) Contains(rank, file int) bool {
	return rank >= 0 && rank < d.Ranks && file >= 0 && file < d.Files
}

// IsEdge reports whether (rank, file) lies on the outer ring of the board.
func (d Dims) IsEdge(rank, file int) bool {
	return rank == 0 || rank == d.Ranks-1 || file == 0 || file == d.Files-1
}

// Valid reports whether the dimensions describe a usable board.
func (d Dims) Valid() bool {
	return d.Ranks >= 1 && d.Files >= 1 && d.Files <= 26
}

// String formats dimensions as files x ranks.
func (d Dims) String() string {
	return fmt.Sprintf("%dx%d", d.Files, d.Ranks)
}
