// Package astar provides an observable A* search over a gridgraph.Grid with
// unit-cost 4-directional movement and the Manhattan heuristic.
//
// Overview:
//
//   - Search computes a least-cost path from a start cell to an end cell, or
//     reports that none exists. The per-cell scores g, h and f = g + h, the
//     parent links and the open/closed/path annotations are written into the
//     grid itself so that an observer can render progress while the search runs.
//   - Manhattan distance is admissible and consistent for unit orthogonal
//     moves, so the returned path is a shortest one.
//
// Algorithm:
//
//  1. Initialization: every cell gets h = manhattan(cell, end), g = +Inf,
//     f = g + h and no parent; neighbor lists are rebuilt from the current
//     barrier layout. The start gets g = 0 and enters the frontier at key 0.
//  2. Main loop: pop the frontier cell with the smallest key; equal keys leave
//     in insertion order. Reaching the end cell triggers reconstruction.
//     Otherwise each neighbor n with popped.g + 1 < n.g takes the new g and the
//     popped cell as parent; an undiscovered n joins the frontier at key n.f.
//     A neighbor already in the frontier keeps the key it was pushed with.
//  3. Reconstruction: follow parent links from the end, annotating every cell
//     between start and end as path.
//
// Observation and cancellation:
//
//   - WithOnStep registers a StepFunc called after every pop, after every
//     neighbor examined, and after every reconstruction step. It receives a
//     gridgraph.Reader and must treat it as read-only and not keep it.
//   - WithContext and WithCancel are polled at each of those points; a
//     request to stop ends the run with OutcomeCancelled and leaves the grid
//     annotated as far as the search got.
//
// Annotation quirk:
//
//	By default a neighbor is annotated "closed" the moment it is discovered,
//	not "open", so waiting and expanded cells look the same. WithOpenMarks()
//	opts into the textbook display: discovered cells are "open", expanded
//	cells "closed".
//
// Complexity:
//
//   - Time:  O(R² log R) for an R×R grid; each cell is expanded at most once
//     and each expansion examines at most 4 neighbors.
//   - Space: O(R²) for neighbor lists, the discovered set and the frontier.
//
// Error handling (sentinel errors):
//
//   - ErrNilGrid:          the grid pointer is nil.
//   - ErrInvalidEndpoints: start equals end, or either is out of range or a barrier.
//   - ErrOptionViolation:  an option was given an invalid value.
//
// Not finding a path and being cancelled are outcomes, not errors.
//
// Concurrency:
//
//	Search is synchronous and single-threaded. No other code may mutate the
//	grid while a search runs; the step callback is the only scheduling point.
package astar
