// Package astar implements A* search on a barrier grid.
//
// Notes on implementation choices:
//
//   - The frontier key is (priority, insertion sequence). The start enters at
//     priority 0, every later cell at its f score.
//   - A cell is in the discovered set from its push until its pop; the set
//     guards against duplicate frontier entries. A waiting cell whose g
//     improves keeps the key and sequence number it was pushed with.
//   - Neighbor lists are rebuilt for every cell during initialization, because
//     barriers may have changed since the previous run.
package astar

import (
	"container/heap"
	"fmt"

	"github.com/katalvlaran/gridstar/gridgraph"
)

// stepCost is the cost of one orthogonal move.
const stepCost = 1.0

// Manhattan returns |Δcol| + |Δrow|.
func Manhattan(a, b gridgraph.Pos) float64 {
	dc := a.Col - b.Col
	if dc < 0 {
		dc = -dc
	}
	dr := a.Row - b.Row
	if dr < 0 {
		dr = -dr
	}

	return float64(dc + dr)
}

// Search runs A* on g from start to end.
//
// Preconditions and validation (in order):
//  1. Options must be valid (ErrOptionViolation).
//  2. g must be non-nil (ErrNilGrid).
//  3. start and end must differ, lie inside g and not be barriers
//     (ErrInvalidEndpoints, wrapping gridgraph.ErrOutOfRange where relevant).
//
// Validation happens before any cell is touched, so a rejected call leaves
// the grid unchanged.
//
// Returns a Result whose Outcome is OutcomeFound, OutcomeNotFound or
// OutcomeCancelled. In every case the grid keeps the scores and annotations
// written by the run; use (*gridgraph.Grid).ClearSearch to erase them.
//
// Complexity:
//
//   - Time:  O(R² log R)
//   - Space: O(R²)
func Search(g *gridgraph.Grid, start, end gridgraph.Pos, opts ...Option) (*Result, error) {
	// 1) Build and validate Options
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}

	// 2) Validate grid is non-nil
	if g == nil {
		return nil, ErrNilGrid
	}

	// 3) Validate endpoints
	startCell, endCell, err := endpoints(g, start, end)
	if err != nil {
		return nil, err
	}

	// 4) Prepare runner state
	n := g.Len()
	r := &runner{
		g:          g,
		view:       g.View(),
		opts:       cfg,
		start:      startCell,
		end:        endCell,
		neighbors:  make([][]*gridgraph.Cell, n),
		discovered: make([]bool, n),
		pq:         make(cellPQ, 0, n),
		res:        &Result{},
	}

	// 5) Initialize scores and frontier, then run the main loop
	r.init()
	if err := r.process(); err != nil {
		return nil, err
	}

	cfg.Logger.Debug("astar: search finished",
		"start", start.String(),
		"end", end.String(),
		"outcome", r.res.Outcome.String(),
		"expanded", r.res.Expanded,
		"steps", r.res.Steps,
		"yields", r.res.Yields,
	)

	return r.res, nil
}

// endpoints resolves and validates start and end.
func endpoints(g *gridgraph.Grid, start, end gridgraph.Pos) (*gridgraph.Cell, *gridgraph.Cell, error) {
	if start == end {
		return nil, nil, fmt.Errorf("%w: start and end are both %s", ErrInvalidEndpoints, start)
	}
	s, err := g.At(start)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: start: %w", ErrInvalidEndpoints, err)
	}
	e, err := g.At(end)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: end: %w", ErrInvalidEndpoints, err)
	}
	if s.IsBarrier() {
		return nil, nil, fmt.Errorf("%w: start %s is a barrier", ErrInvalidEndpoints, start)
	}
	if e.IsBarrier() {
		return nil, nil, fmt.Errorf("%w: end %s is a barrier", ErrInvalidEndpoints, end)
	}

	return s, e, nil
}

// runner holds the mutable state for a single search run. The frontier and
// the discovered set belong to the run alone.
type runner struct {
	g       *gridgraph.Grid
	view    gridgraph.Reader
	opts    Options
	start   *gridgraph.Cell
	end     *gridgraph.Cell
	rowsLen int

	neighbors  [][]*gridgraph.Cell // row-major index → passable neighbors
	discovered []bool              // row-major index → waiting in the frontier
	pq         cellPQ
	seq        uint64

	res *Result
}

// idx maps a cell to its row-major index.
func (r *runner) idx(c *gridgraph.Cell) int {
	return c.Row()*r.rowsLen + c.Col()
}

// init scores every cell, rebuilds neighbor lists and seeds the frontier.
func (r *runner) init() {
	r.rowsLen = r.g.Rows()
	endPos := r.end.Pos()

	// 1) h from the heuristic, g = +Inf (so f = +Inf), no parent.
	for _, c := range r.g.Cells() {
		c.SetH(Manhattan(c.Pos(), endPos))
		c.SetG(gridgraph.Inf)
		c.ClearParent()
		r.neighbors[r.idx(c)] = r.g.NeighborsOf(c)
	}

	// 2) The start costs nothing to reach.
	r.start.SetG(0)

	// 3) Seed the frontier with the start at key 0.
	heap.Init(&r.pq)
	r.push(r.start, 0)

	r.opts.Logger.Debug("astar: initialized",
		"rows", r.rowsLen,
		"start", r.start.Pos().String(),
		"end", endPos.String(),
	)
}

// push inserts c at the given key and adds it to the discovered set.
func (r *runner) push(c *gridgraph.Cell, key float64) {
	item := &queueItem{cell: c, key: key, seq: r.seq}
	r.seq++
	heap.Push(&r.pq, item)
	r.discovered[r.idx(c)] = true
}

// pop removes the minimum entry and takes its cell out of the discovered set.
func (r *runner) pop() *gridgraph.Cell {
	item := heap.Pop(&r.pq).(*queueItem)
	r.discovered[r.idx(item.cell)] = false

	return item.cell
}

// process is the main loop. It sets r.res.Outcome before returning.
//
// Loop termination conditions:
//
//   - The end cell is popped: reconstruct, OutcomeFound.
//   - The frontier empties: OutcomeNotFound.
//   - A stop request is seen at a yield point: OutcomeCancelled.
func (r *runner) process() error {
	for r.pq.Len() > 0 {
		// 1) Pop the cheapest cell.
		cur := r.pop()
		r.res.Order = append(r.res.Order, cur.Pos())
		r.res.Expanded++
		if r.yield(EventPop, cur.Pos()) {
			r.res.Outcome = OutcomeCancelled
			return nil
		}

		// 2) Goal check.
		if cur == r.end {
			done, err := r.reconstruct()
			if err != nil {
				return err
			}
			if !done {
				r.res.Outcome = OutcomeCancelled
				return nil
			}
			r.res.Outcome = OutcomeFound
			return nil
		}

		// 3) Relax every neighbor.
		for _, n := range r.neighbors[r.idx(cur)] {
			r.relax(cur, n)
			if r.yield(EventRelax, n.Pos()) {
				r.res.Outcome = OutcomeCancelled
				return nil
			}
		}

		// 4) The popped cell is now expanded.
		if cur != r.start {
			cur.MarkClosed()
		}
	}

	r.res.Outcome = OutcomeNotFound
	return nil
}

// relax offers n the path through cur. Only a strictly cheaper g is taken.
func (r *runner) relax(cur, n *gridgraph.Cell) {
	tentative := cur.G() + stepCost
	if tentative >= n.G() {
		return
	}
	n.SetG(tentative) // f follows
	n.SetParent(cur.Pos())

	if r.discovered[r.idx(n)] {
		// Already waiting: its key stays as pushed.
		return
	}

	r.push(n, n.F())
	if r.opts.OpenMarks {
		n.MarkOpen()
	} else {
		n.MarkClosed()
	}
}

// reconstruct walks parent links back from the end, annotating the cells
// strictly between start and end as path and recording r.res.Path.
// Returns false if a stop request interrupted the walk.
func (r *runner) reconstruct() (bool, error) {
	rev := []gridgraph.Pos{r.end.Pos()}
	p, ok := r.end.Parent()
	for ok {
		c, err := r.g.At(p)
		if err != nil {
			return false, fmt.Errorf("astar: parent link: %w", err)
		}
		if c != r.start && c != r.end {
			c.MarkPath()
		}
		rev = append(rev, p)
		p, ok = c.Parent()
		if r.yield(EventTrace, c.Pos()) {
			return false, nil
		}
	}

	// The end may have been annotated on discovery; restore it.
	r.end.ClearMark()
	r.end.MarkEnd()

	path := make([]gridgraph.Pos, len(rev))
	for i := range rev {
		path[i] = rev[len(rev)-1-i]
	}
	r.res.Path = path
	r.res.Steps = len(path) - 1

	return true, nil
}

// yield hands control to the observer and reports whether a stop was requested.
func (r *runner) yield(kind EventKind, at gridgraph.Pos) bool {
	r.res.Yields++
	r.opts.OnStep(r.view, Event{Kind: kind, At: at, Seq: r.res.Yields})

	select {
	case <-r.opts.Ctx.Done():
		r.opts.Logger.Debug("astar: context done", "err", r.opts.Ctx.Err(), "at", at.String())
		return true
	default:
	}
	if r.opts.Cancel() {
		r.opts.Logger.Debug("astar: cancel requested", "at", at.String())
		return true
	}

	return false
}
