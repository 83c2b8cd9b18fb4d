// Package gridgraph models a fixed square grid of cells as a graph for
// barrier-aware, 4-directional path search.
//
// What:
//
//   - Grid owns Rows×Rows cells in row-major order; nothing escapes that ownership
//     except *Cell handles that point back into the grid's own storage.
//   - Each Cell carries an immutable position, a role (default, start, end,
//     barrier), a transient search annotation (open, closed, path) and the
//     search scores g, h and f = g + h.
//   - NeighborsOf derives the passable orthogonal neighbors of a cell from the
//     current barrier layout every time it is called.
//   - StepDistance is an independent breadth-first oracle for unit-step distance.
//
// Why:
//
//   - Roles and annotations live in separate fields, so a search never destroys
//     the start/end/barrier layout a user placed; Status folds both back into
//     the single display tag a renderer expects.
//   - Observers get a read-only Reader whose methods return value snapshots.
//
// Neighbor order:
//
//	LEFT (col-1), RIGHT (col+1), UP (row-1), DOWN (row+1)
//
// The order is part of the contract: search tie-breaking, and therefore the
// exact visualization trace, depends on it.
//
// Complexity:
//
//   - NewGrid:      O(R²) time and memory.
//   - CellAt:       O(1).
//   - NeighborsOf:  O(1) (at most 4 candidates).
//   - StepDistance: O(R²) time and memory.
//   - Regions:      O(R²) time and memory.
//
// Options:
//
//   - Options.Rows:     grid dimension (default 50).
//   - Options.CellSize: display size of a cell in pixels (default 13); ignored
//     by every algorithm.
//
// Errors:
//
//   - ErrBadRows:     Rows must be positive.
//   - ErrBadCellSize: CellSize must be positive.
//   - ErrOutOfRange:  a column or row outside [0, Rows).
package gridgraph
