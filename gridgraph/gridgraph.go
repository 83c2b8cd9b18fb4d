// Package gridgraph provides a square grid of cells treated as an undirected,
// unit-weight graph with 4-connectivity. Barrier cells are removed from the
// graph; every other cell is connected to its in-bounds orthogonal neighbors.
package gridgraph

import (
	"fmt"
)

// neighborOffsets lists the orthogonal moves as {dCol, dRow} in the fixed
// order LEFT, RIGHT, UP, DOWN.
var neighborOffsets = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Grid is a Rows×Rows collection of cells. It owns every cell exclusively and
// never changes size after construction.
type Grid struct {
	rows     int
	cellSize int
	cells    []Cell // row-major: index = row*rows + col
}

// NewGrid allocates a Rows×Rows grid, every cell at the default role with
// no barriers.
// Returns ErrBadRows if Rows ≤ 0 and ErrBadCellSize if CellSize ≤ 0.
// Complexity: O(R²) time and memory.
func NewGrid(opts ...Option) (*Grid, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Rows <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrBadRows, cfg.Rows)
	}
	if cfg.CellSize <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrBadCellSize, cfg.CellSize)
	}

	g := &Grid{
		rows:     cfg.Rows,
		cellSize: cfg.CellSize,
		cells:    make([]Cell, cfg.Rows*cfg.Rows),
	}
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.rows; col++ {
			g.cells[g.index(col, row)] = Cell{
				pos:  Pos{Col: col, Row: row},
				size: cfg.CellSize,
			}
		}
	}

	return g, nil
}

// Rows returns the grid dimension.
func (g *Grid) Rows() int { return g.rows }

// CellSize returns the display size of one cell.
func (g *Grid) CellSize() int { return g.cellSize }

// Len returns the number of cells, Rows².
func (g *Grid) Len() int { return len(g.cells) }

// InBounds reports whether (col,row) lies within the grid.
// Complexity: O(1).
func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && col < g.rows && row >= 0 && row < g.rows
}

// CellAt returns the cell at (col,row). Out-of-range coordinates are never
// clamped; they yield ErrOutOfRange.
// Complexity: O(1).
func (g *Grid) CellAt(col, row int) (*Cell, error) {
	if !g.InBounds(col, row) {
		return nil, fmt.Errorf("%w: (%d,%d) not in [0,%d)", ErrOutOfRange, col, row, g.rows)
	}

	return &g.cells[g.index(col, row)], nil
}

// At is CellAt for a Pos.
func (g *Grid) At(p Pos) (*Cell, error) {
	return g.CellAt(p.Col, p.Row)
}

// Cells returns every cell in row-major order.
func (g *Grid) Cells() []*Cell {
	out := make([]*Cell, len(g.cells))
	for i := range g.cells {
		out[i] = &g.cells[i]
	}

	return out
}

// NeighborsOf returns the passable in-bounds orthogonal neighbors of c in the
// order LEFT, RIGHT, UP, DOWN. The result reflects the barrier layout at the
// moment of the call. A cell that does not belong to g has no neighbors.
// Complexity: O(1).
func (g *Grid) NeighborsOf(c *Cell) []*Cell {
	if c == nil || !g.owns(c) {
		return nil
	}
	out := make([]*Cell, 0, len(neighborOffsets))
	for _, d := range neighborOffsets {
		col, row := c.pos.Col+d[0], c.pos.Row+d[1]
		if !g.InBounds(col, row) {
			continue
		}
		n := &g.cells[g.index(col, row)]
		if n.IsBarrier() {
			continue
		}
		out = append(out, n)
	}

	return out
}

// Find returns the positions of every cell with role r, in row-major order.
func (g *Grid) Find(r Role) []Pos {
	var out []Pos
	for i := range g.cells {
		if g.cells[i].role == r {
			out = append(out, g.cells[i].pos)
		}
	}

	return out
}

// ClearSearch drops scores, parents and annotations from every cell, keeping
// roles. Use it between runs to erase the residual coloring.
func (g *Grid) ClearSearch() {
	for i := range g.cells {
		g.cells[i].clearSearch()
	}
}

// ResetAll returns every cell to the default role with no search state.
// The grid keeps its size and indexing.
func (g *Grid) ResetAll() {
	for i := range g.cells {
		g.cells[i].clearSearch()
		g.cells[i].Reset()
	}
}

// Inspect returns a snapshot of the cell at (col,row).
func (g *Grid) Inspect(col, row int) (CellState, error) {
	c, err := g.CellAt(col, row)
	if err != nil {
		return CellState{}, err
	}

	return c.State(), nil
}

// Each calls fn with a snapshot of every cell in row-major order.
func (g *Grid) Each(fn func(CellState)) {
	for i := range g.cells {
		fn(g.cells[i].State())
	}
}

// View returns a Reader over g that cannot be converted back to *Grid.
func (g *Grid) View() Reader {
	return gridView{g: g}
}

// gridView hides the mutable grid behind the Reader methods.
type gridView struct{ g *Grid }

func (v gridView) Rows() int { return v.g.rows }
func (v gridView) CellSize() int { return v.g.cellSize }

func (v gridView) Inspect(col, row int) (CellState, error) { return v.g.Inspect(col, row) }
func (v gridView) Each(fn func(CellState)) { v.g.Each(fn) }

// index maps (col,row) to the row-major index row*rows + col.
// Complexity: O(1).
func (g *Grid) index(col, row int) int {
	return row*g.rows + col
}

// Coordinate converts a row-major index back to a Pos.
// Complexity: O(1).
func (g *Grid) Coordinate(idx int) Pos {
	return Pos{Col: idx % g.rows, Row: idx / g.rows}
}

// owns reports whether c points into g's own cell storage.
func (g *Grid) owns(c *Cell) bool {
	if !g.InBounds(c.pos.Col, c.pos.Row) {
		return false
	}

	return &g.cells[g.index(c.pos.Col, c.pos.Row)] == c
}

// compile-time check
var _ Reader = (*Grid)(nil)
