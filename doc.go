// Package gridstar is a step-observable A* pathfinder for square grids with
// barriers, plus the tooling to describe, run and watch a search.
//
// 🚀 What is gridstar?
//
//	A small set of packages that together replace an interactive
//	"click to place, space to run" A* visualiser:
//		• Grid model: square R×R grid of cells with roles and search marks
//		• Search: A* with a Manhattan heuristic and deterministic tie-breaks
//		• Scenarios: HCL files that place start, end, barriers and walls
//		• Rendering: terminal frames in plain glyphs or the classic palette
//		• CLI: gridstar, with signal-driven cancellation
//
// ✨ Why gridstar?
//
//   - Observable: a callback runs after every pop, neighbour and trace step
//   - Deterministic: equal inputs give equal paths and equal pop orders
//   - Cancellable: a context or a poll function stops the run at any step
//   - Verifiable: a breadth-first oracle checks every route length
//
// Packages:
//
//	gridgraph/       Grid, Cell, roles, marks, read-only views, BFS oracle
//	astar/           Search, Result, Outcome, step events and options
//	scenario/        HCL scenario files (grid, start, end, barriers, wall, layout)
//	render/          terminal frames for astar.StepFunc
//	cmd/gridstar/    the command-line front end
//
// Quick ASCII example (S start, E end, # barrier, * route):
//
//	S * * * .
//	. # # * .
//	. . # * *
//	. . # # *
//	. . . . E
//
//	go install github.com/katalvlaran/gridstar/cmd/gridstar@latest
package gridstar
