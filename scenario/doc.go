// Package scenario loads grid layouts for a search run from HCL files.
//
// A scenario places the start, the end and the barriers on a square grid,
// standing in for an interactive editor. Coordinates are [col, row] pairs.
// Two variables are in scope for every expression: rows (the grid dimension)
// and last (rows - 1), so a layout can be written independently of its size.
//
//	grid {
//	  rows      = 20
//	  cell_size = 13
//	}
//
//	start    = [0, 0]
//	end      = [last, last]
//	barriers = [[3, 4], [3, 5]]
//
//	wall "ridge" {
//	  from = [5, 0]
//	  to   = [5, last - 1]
//	}
//
// Instead of coordinates a layout heredoc may draw the grid, one character per
// cell: '.' open, '#' barrier, 'S' start, 'E' end. The drawing must be
// square and its size sets rows. Spaces between characters are ignored.
//
//	layout = <<EOT
//	S....
//	.###.
//	...#.
//	.#...
//	....E
//	EOT
//
// Explicit start/end attributes take precedence over 'S'/'E' in a layout.
// Barriers never overwrite the start or the end cell.
//
// Errors:
//
//   - ErrParse:           HCL syntax or decoding failed.
//   - ErrBadCoordinate:   a coordinate is not a [col, row] pair.
//   - ErrBadWall:         a wall is neither horizontal nor vertical.
//   - ErrBadLayout:       a layout is not square, has unknown characters or
//     repeats S/E, or contradicts grid.rows.
//   - ErrMissingEndpoint: start or end is not given.
//   - ErrSameEndpoint:    start and end are the same cell.
//
// A coordinate outside [0, rows) fails with gridgraph.ErrOutOfRange while the
// file is parsed, and a non-positive grid.rows with gridgraph.ErrBadRows.
package scenario
