// Package gridgraph defines core types and options for the gridgraph
// subpackage of github.com/katalvlaran/gridstar.
package gridgraph

import (
	"fmt"
	"math"
)

// Default grid configuration, matching a 650px window split into 50 rows.
const (
	DefaultRows     = 50
	DefaultCellSize = 13
)

// Pos identifies a cell by column and row.
type Pos struct {
	Col, Row int
}

// String renders the position as "col,row".
func (p Pos) String() string {
	return fmt.Sprintf("%d,%d", p.Col, p.Row)
}

// Role is the permanent part of a cell's state, placed by the input layer.
type Role int

const (
	// RoleDefault is an ordinary passable cell.
	RoleDefault Role = iota
	// RoleStart marks the search origin.
	RoleStart
	// RoleEnd marks the search target.
	RoleEnd
	// RoleBarrier removes the cell from the traversable graph.
	RoleBarrier
)

// String returns the lowercase role name.
func (r Role) String() string {
	switch r {
	case RoleStart:
		return "start"
	case RoleEnd:
		return "end"
	case RoleBarrier:
		return "barrier"
	default:
		return "default"
	}
}

// Mark is the transient search annotation of a cell.
type Mark int

const (
	// MarkNone means the search has not annotated the cell.
	MarkNone Mark = iota
	// MarkOpen means the cell sits in the frontier, not yet expanded.
	MarkOpen
	// MarkClosed means the cell has been expanded (or discovered, see astar).
	MarkClosed
	// MarkPath means the cell lies on the reconstructed path.
	MarkPath
)

// String returns the lowercase annotation name.
func (m Mark) String() string {
	switch m {
	case MarkOpen:
		return "open"
	case MarkClosed:
		return "closed"
	case MarkPath:
		return "path"
	default:
		return "none"
	}
}

// Status is the single display tag of a cell: the role when it is start, end
// or barrier, otherwise the annotation, otherwise default.
type Status int

const (
	StatusDefault Status = iota
	StatusStart
	StatusEnd
	StatusBarrier
	StatusOpen
	StatusClosed
	StatusPath
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case StatusStart:
		return "start"
	case StatusEnd:
		return "end"
	case StatusBarrier:
		return "barrier"
	case StatusOpen:
		return "open"
	case StatusClosed:
		return "closed"
	case StatusPath:
		return "path"
	default:
		return "default"
	}
}

// Inf is the g-score sentinel for a cell the search has not reached.
var Inf = math.Inf(1)

// Options contains tunable parameters for grid construction.
type Options struct {
	// Rows is the grid dimension; the grid holds Rows×Rows cells.
	Rows int
	// CellSize is the display size of one cell. No algorithm reads it.
	CellSize int
}

// Option represents a functional option for configuring NewGrid.
type Option func(*Options)

// DefaultOptions returns Options{Rows: 50, CellSize: 13}.
func DefaultOptions() Options {
	return Options{
		Rows:     DefaultRows,
		CellSize: DefaultCellSize,
	}
}

// WithRows sets the grid dimension.
func WithRows(rows int) Option {
	return func(o *Options) {
		o.Rows = rows
	}
}

// WithCellSize sets the display size of a cell.
func WithCellSize(size int) Option {
	return func(o *Options) {
		o.CellSize = size
	}
}

// CellState is a value snapshot of one cell, handed to read-only observers.
type CellState struct {
	Pos       Pos
	Role      Role
	Mark      Mark
	Status    Status
	G, H, F   float64
	Parent    Pos
	HasParent bool
}

// Reader is read-only access to a grid. Observers receive a Reader during a
// synchronous callback and must not retain it past that call.
type Reader interface {
	// Rows returns the grid dimension.
	Rows() int
	// CellSize returns the display size of one cell.
	CellSize() int
	// Inspect returns a snapshot of the cell at (col, row) or ErrOutOfRange.
	Inspect(col, row int) (CellState, error)
	// Each calls fn for every cell in row-major order.
	Each(fn func(CellState))
}
