package gridgraph

import "errors"

var (
	// ErrBadRows indicates a non-positive grid dimension.
	ErrBadRows = errors.New("gridgraph: rows must be positive")
	// ErrBadCellSize indicates a non-positive display cell size.
	ErrBadCellSize = errors.New("gridgraph: cell size must be positive")
	// ErrOutOfRange indicates a column or row outside [0, rows).
	ErrOutOfRange = errors.New("gridgraph: cell position out of range")
)
