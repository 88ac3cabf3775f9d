package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lgbarn/domination-go/internal/chess"
	domerrors "github.com/lgbarn/domination-go/internal/errors"
)

// place puts pieces on an empty board and returns them with the occupancy grid.
func place(d chess.Dims, pieces ...*chess.Piece) ([]*chess.Piece, *chess.Grid) {
	occ := chess.NewGrid(d)
	for _, p := range pieces {
		p.OnBoard = true
		occ.Set(p.Rank, p.File)
	}
	return pieces, occ
}

// squares lists (rank, file) pairs of set squares.
func squares(g *chess.Grid) [][2]int {
	var out [][2]int
	for _, pos := range g.Positions() {
		rank, file := g.Dims().Square(pos)
		out = append(out, [2]int{rank, file})
	}
	return out
}

// evaluators returns every evaluator that handles the standard board.
func evaluators() map[string]Evaluator {
	return map[string]Evaluator{
		"ray":      NewRayEvaluator(chess.Standard),
		"bitboard": BitboardEvaluator{},
	}
}

func TestCoverage_LoneRookCorner(t *testing.T) {
	for name, ev := range evaluators() {
		t.Run(name, func(t *testing.T) {
			pieces, occ := place(chess.Standard, chess.NewPiece(chess.Rook, 0, 0))
			got := ev.Coverage(pieces, occ, false)

			var want [][2]int
			for file := 1; file < 8; file++ {
				want = append(want, [2]int{0, file})
			}
			for rank := 1; rank < 8; rank++ {
				want = append(want, [2]int{rank, 0})
			}
			want = sortSquares(want)

			if diff := cmp.Diff(want, squares(got)); diff != "" {
				t.Errorf("rook coverage mismatch (-want +got):\n%s", diff)
			}
			if got.Get(0, 0) {
				t.Error("rook should not cover its own square")
			}
		})
	}
}

func TestCoverage_LoneKnightCentre(t *testing.T) {
	want := [][2]int{{1, 2}, {1, 4}, {2, 1}, {2, 5}, {4, 1}, {4, 5}, {5, 2}, {5, 4}}

	for name, ev := range evaluators() {
		t.Run(name, func(t *testing.T) {
			pieces, occ := place(chess.Standard, chess.NewPiece(chess.Knight, 3, 3))
			got := ev.Coverage(pieces, occ, false)

			if got.Count() != 8 {
				t.Errorf("Count() = %d; want 8", got.Count())
			}
			if diff := cmp.Diff(want, squares(got)); diff != "" {
				t.Errorf("knight coverage mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCoverage_IncludeOwnSquare(t *testing.T) {
	for name, ev := range evaluators() {
		t.Run(name, func(t *testing.T) {
			pieces, occ := place(chess.Standard, chess.NewPiece(chess.Rook, 0, 0))
			got := ev.Coverage(pieces, occ, true)
			if !got.Get(0, 0) {
				t.Error("rook should cover its own square")
			}
			if got.Count() != 15 {
				t.Errorf("Count() = %d; want 15", got.Count())
			}
		})
	}
}

func TestCoverage_BlockedRays(t *testing.T) {
	for name, ev := range evaluators() {
		t.Run(name, func(t *testing.T) {
			bishop := chess.NewPiece(chess.Bishop, 0, 0)
			knight := chess.NewPiece(chess.Knight, 2, 2)
			pieces, occ := place(chess.Standard, bishop, knight)
			got := ev.Coverage(pieces, occ, false)

			if !got.Get(1, 1) {
				t.Error("b2 should be attacked")
			}
			if !got.Get(2, 2) {
				t.Error("blocking square c3 should be attacked")
			}
			if got.Get(3, 3) {
				t.Error("d4 behind the blocker should not be attacked")
			}
		})
	}
}

func TestCoverage_QueenCombinesRookAndBishop(t *testing.T) {
	for name, ev := range evaluators() {
		t.Run(name, func(t *testing.T) {
			pieces, occ := place(chess.Standard, chess.NewPiece(chess.Queen, 3, 3))
			got := ev.Coverage(pieces, occ, false)
			// 14 on lines, 13 on diagonals from d4.
			if got.Count() != 27 {
				t.Errorf("Count() = %d; want 27", got.Count())
			}
		})
	}
}

func TestCoverage_King(t *testing.T) {
	for name, ev := range evaluators() {
		t.Run(name, func(t *testing.T) {
			pieces, occ := place(chess.Standard, chess.NewPiece(chess.King, 0, 0))
			got := ev.Coverage(pieces, occ, false)
			want := [][2]int{{0, 1}, {1, 0}, {1, 1}}
			if diff := cmp.Diff(want, squares(got)); diff != "" {
				t.Errorf("king coverage mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCoverage_Pawn(t *testing.T) {
	tests := []struct {
		name       string
		rank, file int
		want       [][2]int
	}{
		{"centre", 1, 3, [][2]int{{2, 2}, {2, 4}}},
		{"a-file", 1, 0, [][2]int{{2, 1}}},
		{"h-file", 4, 7, [][2]int{{5, 6}}},
		{"last rank", 7, 3, nil},
	}

	for name, ev := range evaluators() {
		for _, tt := range tests {
			t.Run(name+"/"+tt.name, func(t *testing.T) {
				pieces, occ := place(chess.Standard, chess.NewPiece(chess.Pawn, tt.rank, tt.file))
				got := ev.Coverage(pieces, occ, false)
				if diff := cmp.Diff(tt.want, squares(got)); diff != "" {
					t.Errorf("pawn coverage mismatch (-want +got):\n%s", diff)
				}
			})
		}
	}
}

func TestCoverage_OffBoardPiecesIgnored(t *testing.T) {
	rook := chess.NewPiece(chess.Rook, 0, 0)
	got := NewRayEvaluator(chess.Standard).Coverage([]*chess.Piece{rook}, chess.NewGrid(chess.Standard), true)
	if got.Count() != 0 {
		t.Errorf("Count() = %d; want 0 for an off-board piece", got.Count())
	}
}

func TestCoverage_NonStandardDims(t *testing.T) {
	d := chess.Dims{Ranks: 3, Files: 5}
	pieces, occ := place(d, chess.NewPiece(chess.Bishop, 1, 2))
	got := NewEvaluator(d).Coverage(pieces, occ, false)

	want := [][2]int{{0, 1}, {0, 3}, {2, 1}, {2, 3}}
	if diff := cmp.Diff(want, squares(got)); diff != "" {
		t.Errorf("bishop coverage mismatch (-want +got):\n%s", diff)
	}
}

func TestCoverage_UnknownTypePanics(t *testing.T) {
	for name, ev := range evaluators() {
		t.Run(name, func(t *testing.T) {
			defer func() {
				r := recover()
				err, ok := r.(error)
				if !ok || !errors.Is(err, domerrors.ErrUnknownPieceType) {
					t.Errorf("recover() = %v; want ErrUnknownPieceType", r)
				}
			}()
			pieces, occ := place(chess.Standard, chess.NewPiece(chess.NoPiece, 2, 2))
			ev.Coverage(pieces, occ, false)
		})
	}
}

func TestNewEvaluator(t *testing.T) {
	if _, ok := NewEvaluator(chess.Standard).(BitboardEvaluator); !ok {
		t.Error("NewEvaluator(8x8) should return the bitboard evaluator")
	}
	if _, ok := NewEvaluator(chess.Dims{Ranks: 6, Files: 6}).(*RayEvaluator); !ok {
		t.Error("NewEvaluator(6x6) should return the ray evaluator")
	}
}

// TestCoverage_EvaluatorsAgree cross-checks the bitboard evaluator against
// the ray scanner on random crowded boards.
func TestCoverage_EvaluatorsAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	types := []chess.PieceType{chess.Queen, chess.Rook, chess.Bishop, chess.Knight, chess.King, chess.Pawn}
	ray := NewRayEvaluator(chess.Standard)

	for i := 0; i < 200; i++ {
		n := 1 + rng.Intn(12)
		perm := rng.Perm(64)
		pieces := make([]*chess.Piece, n)
		for j := 0; j < n; j++ {
			rank, file := chess.Standard.Square(perm[j])
			pieces[j] = chess.NewPiece(types[rng.Intn(len(types))], rank, file)
		}
		pieces, occ := place(chess.Standard, pieces...)
		own := i%2 == 0

		want := ray.Coverage(pieces, occ, own)
		got := BitboardEvaluator{}.Coverage(pieces, occ, own)
		if !got.Equal(want) {
			t.Fatalf("case %d (%v): evaluators disagree\nray:\n%s\nbitboard:\n%s", i, pieces, want, got)
		}
	}
}

func TestOccupancy(t *testing.T) {
	_, occ := place(chess.Standard, chess.NewPiece(chess.Rook, 0, 0), chess.NewPiece(chess.Rook, 7, 7))
	if got, want := Occupancy(occ), uint64(1)|uint64(1)<<63; got != want {
		t.Errorf("Occupancy() = %#x; want %#x", got, want)
	}
}

func sortSquares(sq [][2]int) [][2]int {
	g := chess.NewGrid(chess.Standard)
	for _, s := range sq {
		g.Set(s[0], s[1])
	}
	return squares(g)
}

func BenchmarkCoverage(b *testing.B) {
	pieces, occ := place(chess.Standard,
		chess.NewPiece(chess.Queen, 5, 1),
		chess.NewPiece(chess.Rook, 0, 7),
		chess.NewPiece(chess.Rook, 1, 0),
		chess.NewPiece(chess.Bishop, 5, 4),
		chess.NewPiece(chess.Bishop, 6, 4),
		chess.NewPiece(chess.Knight, 4, 4),
	)

	for name, ev := range evaluators() {
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				ev.Coverage(pieces, occ, false)
			}
		})
	}
}

func ExampleRayEvaluator_Coverage() {
	d := chess.Dims{Ranks: 3, Files: 3}
	pieces, occ := place(d, chess.NewPiece(chess.Queen, 1, 1))
	fmt.Print(NewRayEvaluator(d).Coverage(pieces, occ, true))
	// Output:
	// 111
	// 111
	// 111
}
