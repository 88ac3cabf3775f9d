// Package board holds the placement state of a domination search: the
// ordered pieces, the occupancy grid and the per-type index. It enumerates
// major-piece placements and decides whether pawns can complete domination.
//
// A Board is mutated in place and is not safe for concurrent use; run
// independent searches on independent boards.
package board

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lgbarn/domination-go/internal/chess"
	"github.com/lgbarn/domination-go/internal/config"
	"github.com/lgbarn/domination-go/internal/engine"
	"github.com/lgbarn/domination-go/internal/errors"
)

// Board is the placement state. The three views of it (pieces, occupancy and
// typeGroups) and the cached aggregates are only changed through add and
// remove, which keep them consistent.
type Board struct {
	dims chess.Dims

	// pieces is ordered from the most frequently moved to the least. Pieces
	// of one type are contiguous, the higher positioned one first.
	pieces     []*chess.Piece
	occupancy  *chess.Grid
	typeGroups map[chess.PieceType][]*chess.Piece

	totalPoints int
	edgeCount   int // on-board non-rook, non-pawn pieces on the edge

	// restricted is how many of the last pieces are kept on the left half.
	restricted int

	eval engine.Evaluator
}

func newBoard(d chess.Dims, capacity int) *Board {
	return &Board{
		dims:       d,
		pieces:     make([]*chess.Piece, 0, capacity),
		occupancy:  chess.NewGrid(d),
		typeGroups: make(map[chess.PieceType][]*chess.Piece),
		eval:       engine.NewEvaluator(d),
	}
}

// New seeds a board for the piece set of s in the lowest legal positions. The
// symmetry piece starts at s.LastPieceStart. It returns an error wrapping
// errors.ErrInfeasibleBoard when no legal placement exists.
func New(s *config.Settings) (*Board, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	b := newBoard(s.Dims, len(s.Pieces))
	for _, t := range pieceOrder(s.PieceCounts()) {
		b.track(chess.NewPiece(t, 0, 0))
	}
	if s.MirrorSymmetry {
		b.restricted = 1
	}

	last := len(b.pieces) - 1
	lastPiece := b.pieces[last]
	lastPiece.Rank, lastPiece.File = s.Dims.Square(s.LastPieceStart)

	if !b.startLegal(last, s) && !b.moveSingle(last, s) {
		return nil, errors.Wrapf(errors.ErrInfeasibleBoard, "pieces %s", s.Pieces)
	}
	if b.reseed(last, s) {
		return b, nil
	}

	for idx := b.advance(last, s); idx < len(b.pieces); idx = b.advance(idx, s) {
		if b.reseed(idx, s) {
			return b, nil
		}
	}
	return nil, errors.Wrapf(errors.ErrInfeasibleBoard, "pieces %s", s.Pieces)
}

// pieceOrder lays out the piece types from fastest to slowest: the types in
// chess.OrderPreference, then the symmetry type last.
func pieceOrder(counts map[chess.PieceType]int) []chess.PieceType {
	symmetryType, minCount := symmetryPieceType(counts)

	var order []chess.PieceType
	for _, t := range chess.OrderPreference {
		if t == symmetryType {
			continue
		}
		for i := 0; i < counts[t]; i++ {
			order = append(order, t)
		}
	}
	for i := 0; i < minCount; i++ {
		order = append(order, symmetryType)
	}
	return order
}

// symmetryPieceType picks the type with the fewest pieces, ties going to the
// earliest type in chess.OrderPreference.
func symmetryPieceType(counts map[chess.PieceType]int) (chess.PieceType, int) {
	best, minCount := chess.NoPiece, 0
	for _, t := range chess.OrderPreference {
		n := counts[t]
		if n > 0 && (minCount == 0 || n < minCount) {
			best, minCount = t, n
		}
	}
	return best, minCount
}

// startLegal places the piece at its current square if the square is legal
// for it, and reports whether it did.
func (b *Board) startLegal(idx int, s *config.Settings) bool {
	p := b.pieces[idx]
	if b.isRestricted(idx) && p.File > b.leftHalfLimit() {
		return false
	}
	if invalidRank, invalidFile := b.invalidRankThenFile(p.Rank, p.File, s); invalidRank || invalidFile {
		return false
	}
	b.add(p)
	return true
}

// FromPieces builds a board holding copies of pieces, plus a copy of extra
// when it is not nil. The inputs are never modified, so a trial board can be
// derived from a board being enumerated.
func FromPieces(d chess.Dims, pieces []*chess.Piece, extra *chess.Piece) *Board {
	b := newBoard(d, len(pieces)+1)
	for _, p := range pieces {
		c := p.Clone()
		b.track(c)
		b.add(c)
	}
	if extra != nil {
		c := extra.Clone()
		b.track(c)
		b.add(c)
	}
	return b
}

// FromRepresentation restores a board saved with Representation so a search
// can resume from it. The pieces must match the piece set of s, lie on the
// board and stand on distinct squares, in the order New lays them out with
// same-type pieces strictly descending. The last piece keeps the symmetry
// restriction of s.
func FromRepresentation(repr string, s *config.Settings) (*Board, error) {
	tokens := strings.Split(strings.TrimSpace(repr), ";")
	pieces := make([]*chess.Piece, 0, len(tokens))
	letters := make([]byte, 0, len(tokens))

	for _, token := range tokens {
		p, err := chess.ParsePiece(strings.TrimSpace(token))
		if err != nil {
			return nil, errors.Wrapf(err, "board %q", repr)
		}
		if !s.Dims.Contains(p.Rank, p.File) {
			return nil, &errors.ParseError{Err: errors.ErrInvalidBoard, Input: repr, Field: "square", Expected: "square on a " + s.Dims.String() + " board", Got: token}
		}
		pieces = append(pieces, p)
		letters = append(letters, p.Type.Letter())
	}

	slices.Sort(letters)
	if string(letters) != s.Pieces {
		return nil, &errors.ParseError{Err: errors.ErrInvalidBoard, Input: repr, Field: "pieces", Expected: s.Pieces, Got: string(letters)}
	}

	if err := checkOrder(pieces, s); err != nil {
		return nil, &errors.ParseError{Err: errors.ErrInvalidBoard, Input: repr, Field: "order", Expected: "pieces in enumeration order", Got: err.Error()}
	}

	b := FromPieces(s.Dims, pieces, nil)
	if b.occupancy.Count() != len(pieces) {
		return nil, &errors.ParseError{Err: errors.ErrInvalidBoard, Input: repr, Expected: "distinct squares"}
	}
	if s.MirrorSymmetry {
		b.restricted = 1
	}
	return b, nil
}

// checkOrder reports the first piece that is out of enumeration order.
func checkOrder(pieces []*chess.Piece, s *config.Settings) error {
	order := pieceOrder(s.PieceCounts())
	for i, p := range pieces {
		if p.Type != order[i] {
			return fmt.Errorf("%s at index %d, want a %s", p, i, order[i])
		}
		if i > 0 && pieces[i-1].Type == p.Type && pieces[i-1].Position(s.Dims) <= p.Position(s.Dims) {
			return fmt.Errorf("%s must come before %s", p, pieces[i-1])
		}
	}
	return nil
}

// track appends p to the piece order and the type index.
func (b *Board) track(p *chess.Piece) {
	b.pieces = append(b.pieces, p)
	b.typeGroups[p.Type] = append(b.typeGroups[p.Type], p)
	b.totalPoints += p.Points()
}

func countsOnEdge(p *chess.Piece, d chess.Dims) bool {
	return p.Type != chess.Rook && p.Type != chess.Pawn && p.IsOnEdge(d)
}

// add puts p on the board. Adding an on-board piece is a no-op.
func (b *Board) add(p *chess.Piece) {
	if p.OnBoard {
		return
	}
	b.occupancy.Set(p.Rank, p.File)
	p.OnBoard = true
	if countsOnEdge(p, b.dims) {
		b.edgeCount++
	}
}

// remove takes p off the board. Removing an off-board piece is a no-op.
func (b *Board) remove(p *chess.Piece) {
	if !p.OnBoard {
		return
	}
	if countsOnEdge(p, b.dims) {
		b.edgeCount--
	}
	b.occupancy.Clear(p.Rank, p.File)
	p.OnBoard = false
}

// Dims returns the board dimensions.
func (b *Board) Dims() chess.Dims {
	return b.dims
}

// Pieces returns copies of the pieces in internal order.
func (b *Board) Pieces() []*chess.Piece {
	out := make([]*chess.Piece, len(b.pieces))
	for i, p := range b.pieces {
		out[i] = p.Clone()
		out[i].OnBoard = p.OnBoard
	}
	return out
}

// Occupancy returns a copy of the occupancy grid.
func (b *Board) Occupancy() *chess.Grid {
	g := chess.NewGrid(b.dims)
	for _, pos := range b.occupancy.Positions() {
		r, f := b.dims.Square(pos)
		g.Set(r, f)
	}
	return g
}

// TypeCounts returns the number of pieces of each type.
func (b *Board) TypeCounts() map[chess.PieceType]int {
	counts := make(map[chess.PieceType]int, len(b.typeGroups))
	for t, group := range b.typeGroups {
		counts[t] = len(group)
	}
	return counts
}

// TotalPoints returns the point value of all pieces.
func (b *Board) TotalPoints() int {
	return b.totalPoints
}

// EdgeCount returns the number of on-board non-rook, non-pawn edge pieces.
func (b *Board) EdgeCount() int {
	return b.edgeCount
}

// Coverage returns the squares attacked by the pieces on the board.
func (b *Board) Coverage(includeOwn bool) *chess.Grid {
	return b.eval.Coverage(b.pieces, b.occupancy, includeOwn)
}
