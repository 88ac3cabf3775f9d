package chess

import "strings"

// Grid is a rank x file boolean grid, used both for occupancy and for
// attack coverage.
type Grid struct {
	dims  Dims
	cells []bool
}

// NewGrid creates an all-false grid for the given dimensions.
func NewGrid(d Dims) *Grid {
	return &Grid{dims: d, cells: make([]bool, d.Squares())}
}

// Dims returns the grid dimensions.
func (g *Grid) Dims() Dims {
	return g.dims
}

// Get reports whether (rank, file) is set.
func (g *Grid) Get(rank, file int) bool {
	return g.cells[rank*g.dims.Files+file]
}

// Set marks (rank, file).
func (g *Grid) Set(rank, file int) {
	g.cells[rank*g.dims.Files+file] = true
}

// Clear unmarks (rank, file).
func (g *Grid) Clear(rank, file int) {
	g.cells[rank*g.dims.Files+file] = false
}

// At reports whether the square at a linear position is set.
func (g *Grid) At(pos int) bool {
	return g.cells[pos]
}

// Count returns the number of set squares.
func (g *Grid) Count() int {
	n := 0
	for _, c := range g.cells {
		if c {
			n++
		}
	}
	return n
}

// Full reports whether every square is set.
func (g *Grid) Full() bool {
	for _, c := range g.cells {
		if !c {
			return false
		}
	}
	return true
}

// Positions returns the linear positions of all set squares in ascending order.
func (g *Grid) Positions() []int {
	var out []int
	for i, c := range g.cells {
		if c {
			out = append(out, i)
		}
	}
	return out
}

// Equal reports whether two grids have the same dimensions and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g.dims != other.dims {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// String draws the grid rank-descending with '1' for set squares.
func (g *Grid) String() string {
	var sb strings.Builder
	for rank := g.dims.Ranks - 1; rank >= 0; rank-- {
		for file := 0; file < g.dims.Files; file++ {
			if g.Get(rank, file) {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
