package scenario

import (
	"fmt"

	"github.com/katalvlaran/gridstar/gridgraph"
)

// Build creates a fresh grid and applies the scenario's roles to it.
// Barriers that fall on the start or end cell are ignored. Any coordinate
// outside the grid yields an error wrapping gridgraph.ErrOutOfRange.
func (sc *Scenario) Build() (*gridgraph.Grid, error) {
	g, err := gridgraph.NewGrid(
		gridgraph.WithRows(sc.Rows),
		gridgraph.WithCellSize(sc.CellSize),
	)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}

	start, err := g.At(sc.Start)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: start: %w", sc.Name, err)
	}
	end, err := g.At(sc.End)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: end: %w", sc.Name, err)
	}
	start.MarkStart()
	end.MarkEnd()

	for _, p := range sc.Barriers {
		if p == sc.Start || p == sc.End {
			continue
		}
		c, err := g.At(p)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: barrier: %w", sc.Name, err)
		}
		c.MarkBarrier()
	}

	return g, nil
}
