package scenario

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/katalvlaran/gridstar/gridgraph"
)

// Load reads and parses the scenario file at path.
func Load(path string) (*Scenario, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: read %s: %w", path, err)
	}

	return Parse(src, path)
}

// Parse decodes a scenario from HCL source. filename is used in diagnostics.
//
// Decoding runs in two passes: the first reads the grid block and the layout
// to learn the grid size, the second decodes everything with rows and last
// bound in the evaluation context.
func Parse(src []byte, filename string) (*Scenario, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, filename, diags)
	}

	// 1) Header pass: grid size.
	rows, cellSize, drawing, err := readHeader(file.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	// 2) Full pass with the size in scope.
	var root fileRoot
	diags = gohcl.DecodeBody(file.Body, evalContext(rows), &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, filename, diags)
	}

	sc := &Scenario{Name: filename, Rows: rows, CellSize: cellSize}
	if err := sc.resolve(&root, drawing); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	return sc, nil
}

// readHeader extracts rows, cell size and the parsed layout drawing.
func readHeader(body hcl.Body) (rows, cellSize int, drawing *layout, err error) {
	content, _, diags := body.PartialContent(headerSchema)
	if diags.HasErrors() {
		return 0, 0, nil, fmt.Errorf("%w: %w", ErrParse, diags)
	}

	rows, cellSize = gridgraph.DefaultRows, gridgraph.DefaultCellSize
	declaredRows := 0
	switch len(content.Blocks) {
	case 0:
	case 1:
		var gb gridBlock
		if diags := gohcl.DecodeBody(content.Blocks[0].Body, nil, &gb); diags.HasErrors() {
			return 0, 0, nil, fmt.Errorf("%w: grid block: %w", ErrParse, diags)
		}
		declaredRows = gb.Rows
		if gb.Rows != 0 {
			rows = gb.Rows
		}
		if gb.CellSize != 0 {
			cellSize = gb.CellSize
		}
	default:
		return 0, 0, nil, fmt.Errorf("%w: more than one grid block", ErrParse)
	}

	if attr, ok := content.Attributes["layout"]; ok {
		var text string
		if diags := gohcl.DecodeExpression(attr.Expr, nil, &text); diags.HasErrors() {
			return 0, 0, nil, fmt.Errorf("%w: layout: %w", ErrParse, diags)
		}
		drawing, err = parseLayout(text)
		if err != nil {
			return 0, 0, nil, err
		}
		if declaredRows != 0 && declaredRows != drawing.rows {
			return 0, 0, nil, fmt.Errorf("%w: layout has %d rows, grid.rows is %d", ErrBadLayout, drawing.rows, declaredRows)
		}
		rows = drawing.rows
	}
	if rows <= 0 {
		return 0, 0, nil, fmt.Errorf("grid block: %w: got %d", gridgraph.ErrBadRows, rows)
	}

	return rows, cellSize, drawing, nil
}

// evalContext exposes the grid size to scenario expressions.
func evalContext(rows int) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"rows": cty.NumberIntVal(int64(rows)),
			"last": cty.NumberIntVal(int64(rows - 1)),
		},
	}
}

// resolve turns decoded attributes, walls and the drawing into positions.
func (sc *Scenario) resolve(root *fileRoot, drawing *layout) error {
	var haveStart, haveEnd bool
	seen := make(map[gridgraph.Pos]struct{})
	addBarrier := func(p gridgraph.Pos) {
		if _, dup := seen[p]; dup {
			return
		}
		seen[p] = struct{}{}
		sc.Barriers = append(sc.Barriers, p)
	}

	if drawing != nil {
		sc.Start, haveStart = drawing.start, drawing.hasStart
		sc.End, haveEnd = drawing.end, drawing.hasEnd
		for _, p := range drawing.barriers {
			addBarrier(p)
		}
	}

	if root.Start != nil {
		p, err := sc.toPos(root.Start)
		if err != nil {
			return fmt.Errorf("start: %w", err)
		}
		sc.Start, haveStart = p, true
	}
	if root.End != nil {
		p, err := sc.toPos(root.End)
		if err != nil {
			return fmt.Errorf("end: %w", err)
		}
		sc.End, haveEnd = p, true
	}
	if !haveStart || !haveEnd {
		return ErrMissingEndpoint
	}
	if sc.Start == sc.End {
		return fmt.Errorf("%w: both at %s", ErrSameEndpoint, sc.Start)
	}

	for i, xy := range root.Barriers {
		p, err := sc.toPos(xy)
		if err != nil {
			return fmt.Errorf("barriers[%d]: %w", i, err)
		}
		addBarrier(p)
	}

	for _, w := range root.Walls {
		cells, err := w.expand(sc)
		if err != nil {
			return err
		}
		for _, p := range cells {
			addBarrier(p)
		}
	}

	return nil
}

// expand lists the cells of a wall from From to To inclusive.
// Both ends must lie on sc's grid.
func (w *wallBlock) expand(sc *Scenario) ([]gridgraph.Pos, error) {
	from, err := sc.toPos(w.From)
	if err != nil {
		return nil, fmt.Errorf("wall %q from: %w", w.Name, err)
	}
	to, err := sc.toPos(w.To)
	if err != nil {
		return nil, fmt.Errorf("wall %q to: %w", w.Name, err)
	}
	if from.Col != to.Col && from.Row != to.Row {
		return nil, fmt.Errorf("%w: wall %q runs %s to %s", ErrBadWall, w.Name, from, to)
	}

	dc, dr := sign(to.Col-from.Col), sign(to.Row-from.Row)
	out := []gridgraph.Pos{from}
	for p := from; p != to; {
		p = gridgraph.Pos{Col: p.Col + dc, Row: p.Row + dr}
		out = append(out, p)
	}

	return out, nil
}

// toPos reads a [col, row] pair and checks it against the grid size.
func (sc *Scenario) toPos(xy []int) (gridgraph.Pos, error) {
	if len(xy) != 2 {
		return gridgraph.Pos{}, fmt.Errorf("%w: got %v", ErrBadCoordinate, xy)
	}
	p := gridgraph.Pos{Col: xy[0], Row: xy[1]}
	if p.Col < 0 || p.Col >= sc.Rows || p.Row < 0 || p.Row >= sc.Rows {
		return gridgraph.Pos{}, fmt.Errorf("%w: %s not in [0,%d)", gridgraph.ErrOutOfRange, p, sc.Rows)
	}

	return p, nil
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
