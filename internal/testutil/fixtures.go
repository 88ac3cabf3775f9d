package testutil

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lgbarn/domination-go/internal/chess"
)

// MustParsePieces parses a semicolon separated piece list such as "Ra1;Rb2".
// It calls t.Fatal if any token is malformed.
func MustParsePieces(t *testing.T, repr string) []*chess.Piece {
	t.Helper()
	var pieces []*chess.Piece
	for _, token := range strings.Split(repr, ";") {
		p, err := chess.ParsePiece(strings.TrimSpace(token))
		if err != nil {
			t.Fatalf("parsing %q: %v", repr, err)
		}
		pieces = append(pieces, p)
	}
	return pieces
}

// GridFromDiagram builds a grid from rows drawn rank-descending, as a board
// is printed: the first row is the last rank. Any of '1', 'x' or '#' marks a
// set square.
func GridFromDiagram(t *testing.T, rows ...string) *chess.Grid {
	t.Helper()
	d := chess.Dims{Ranks: len(rows)}
	if len(rows) > 0 {
		d.Files = len(rows[0])
	}
	g := chess.NewGrid(d)
	for i, row := range rows {
		if len(row) != d.Files {
			t.Fatalf("diagram row %d has %d files; want %d", i, len(row), d.Files)
		}
		rank := d.Ranks - 1 - i
		for file := 0; file < d.Files; file++ {
			switch row[file] {
			case '1', 'x', '#':
				g.Set(rank, file)
			}
		}
	}
	return g
}

// AssertGridEqual compares two grids and prints both as diagrams on mismatch.
func AssertGridEqual(t *testing.T, got, want *chess.Grid, msgAndArgs ...interface{}) {
	t.Helper()
	if got.Equal(want) {
		return
	}
	diff := cmp.Diff(strings.Split(want.String(), "\n"), strings.Split(got.String(), "\n"))
	report(t, "grid mismatch (-want +got):\n"+diff, msgAndArgs...)
}
