package scenario

import (
	"errors"

	"github.com/hashicorp/hcl/v2"

	"github.com/katalvlaran/gridstar/gridgraph"
)

// Sentinel errors for scenario loading.
var (
	// ErrParse indicates HCL syntax or decoding errors.
	ErrParse = errors.New("scenario: cannot parse")
	// ErrBadCoordinate indicates a coordinate that is not a [col, row] pair.
	ErrBadCoordinate = errors.New("scenario: coordinate must be [col, row]")
	// ErrBadWall indicates a diagonal wall segment.
	ErrBadWall = errors.New("scenario: wall must be horizontal or vertical")
	// ErrBadLayout indicates a malformed layout drawing.
	ErrBadLayout = errors.New("scenario: invalid layout")
	// ErrMissingEndpoint indicates that start or end was not given.
	ErrMissingEndpoint = errors.New("scenario: start and end are required")
	// ErrSameEndpoint indicates that start and end coincide.
	ErrSameEndpoint = errors.New("scenario: start and end must differ")
)

// Scenario is a fully resolved grid layout.
type Scenario struct {
	// Name is the file name the scenario was read from.
	Name     string
	Rows     int
	CellSize int
	Start    gridgraph.Pos
	End      gridgraph.Pos
	// Barriers lists barrier cells in declaration order, without duplicates.
	Barriers []gridgraph.Pos
}

// fileRoot is the decoding target for a whole scenario file.
type fileRoot struct {
	Grid     *gridBlock   `hcl:"grid,block"`
	Start    []int        `hcl:"start,optional"`
	End      []int        `hcl:"end,optional"`
	Barriers [][]int      `hcl:"barriers,optional"`
	Walls    []*wallBlock `hcl:"wall,block"`
	Layout   string       `hcl:"layout,optional"`
}

// gridBlock holds the grid dimensions.
type gridBlock struct {
	Rows     int `hcl:"rows,optional"`
	CellSize int `hcl:"cell_size,optional"`
}

// wallBlock is a straight run of barriers, both ends inclusive.
type wallBlock struct {
	Name string `hcl:"name,label"`
	From []int  `hcl:"from"`
	To   []int  `hcl:"to"`
}

// headerSchema picks out what must be known before expressions can be
// evaluated: the grid size, given either by the grid block or by the layout.
var headerSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{{Name: "layout"}},
	Blocks:     []hcl.BlockHeaderSchema{{Type: "grid"}},
}
