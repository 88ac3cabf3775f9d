package chess

import (
	"strconv"

	"github.com/lgbarn/domination-go/internal/errors"
)

// Piece is a single placed unit. Its type never changes; the coordinates are
// moved in place by the enumerator.
type Piece struct {
	Type    PieceType
	Rank    int // 0-based
	File    int // 0-based
	OnBoard bool
}

// NewPiece creates a piece of the given type at (rank, file). The piece is
// not on a board until a Board adds it.
func NewPiece(t PieceType, rank, file int) *Piece {
	return &Piece{Type: t, Rank: rank, File: file}
}

// ParsePiece parses the three character form used in board representations:
// type letter, file letter, 1-based rank ("Qb6").
func ParsePiece(s string) (*Piece, error) {
	if len(s) < 3 {
		return nil, &errors.ParseError{Err: errors.ErrInvalidPiece, Input: s, Expected: "type, file and rank"}
	}

	t, ok := ParsePieceType(s[0])
	if !ok {
		return nil, &errors.ParseError{Err: errors.ErrInvalidPiece, Input: s, Field: "type", Expected: "one of QRBNKP", Got: s[:1]}
	}

	if s[1] < 'a' || s[1] > 'z' {
		return nil, &errors.ParseError{Err: errors.ErrInvalidPiece, Input: s, Field: "file", Expected: "file letter", Got: s[1:2]}
	}

	rank, err := strconv.Atoi(s[2:])
	if err != nil || rank < 1 {
		return nil, &errors.ParseError{Err: errors.ErrInvalidPiece, Input: s, Field: "rank", Expected: "rank number", Got: s[2:]}
	}

	return NewPiece(t, rank-1, int(s[1]-'a')), nil
}

// Clone returns an off-board copy of the piece.
func (p *Piece) Clone() *Piece {
	return NewPiece(p.Type, p.Rank, p.File)
}

// Points returns the point value of the piece.
func (p *Piece) Points() int {
	return p.Type.Points()
}

// Position returns the linear board index of the piece.
func (p *Piece) Position(d Dims) int {
	return d.Position(p.Rank, p.File)
}

// IsOnEdge reports whether the piece sits on the outer ring of the board.
func (p *Piece) IsOnEdge(d Dims) bool {
	return d.IsEdge(p.Rank, p.File)
}

// MoveToNextPosition steps one square forward, wrapping to the next rank.
// It panics when stepping past the last square.
func (p *Piece) MoveToNextPosition(d Dims) {
	p.File++
	if p.File == d.Files {
		p.MoveToNextRank(d)
	}
}

// MoveToNextRank moves to the first file of the next rank.
// It panics when already on the last rank.
func (p *Piece) MoveToNextRank(d Dims) {
	if p.Rank == d.Ranks-1 {
		panic("chess: tried to move piece off board")
	}
	p.File = 0
	p.Rank++
}

// MoveTo places the piece on the same square as other.
func (p *Piece) MoveTo(other *Piece) {
	p.Rank = other.Rank
	p.File = other.File
}

// MoveToOrigin places the piece on the first square.
func (p *Piece) MoveToOrigin() {
	p.Rank = 0
	p.File = 0
}

// String returns the piece in its three character form.
func (p *Piece) String() string {
	return string([]byte{p.Type.Letter(), byte('a' + p.File)}) + strconv.Itoa(p.Rank+1)
}
