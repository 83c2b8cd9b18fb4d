// Package astar_test contains unit tests for the grid A* search: validation,
// exact traces on tiny grids, optimality against a breadth-first oracle,
// determinism, score invariants, annotations and cancellation.
package astar_test

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridstar/astar"
	"github.com/katalvlaran/gridstar/gridgraph"
)

// fromLayout builds a square grid from rows of text:
// '#' barrier, 'S' start, 'E' end, anything else open.
func fromLayout(t testing.TB, layout ...string) (*gridgraph.Grid, gridgraph.Pos, gridgraph.Pos) {
	t.Helper()
	g, err := gridgraph.NewGrid(gridgraph.WithRows(len(layout)))
	require.NoError(t, err)

	var start, end gridgraph.Pos
	for row, line := range layout {
		require.Len(t, line, len(layout), "layout must be square")
		for col, ch := range line {
			c, err := g.CellAt(col, row)
			require.NoError(t, err)
			switch ch {
			case '#':
				c.MarkBarrier()
			case 'S':
				c.MarkStart()
				start = c.Pos()
			case 'E':
				c.MarkEnd()
				end = c.Pos()
			}
		}
	}

	return g, start, end
}

// adjacent reports whether two positions differ by one orthogonal step.
func adjacent(a, b gridgraph.Pos) bool {
	return astar.Manhattan(a, b) == 1
}

// assertValidPath checks endpoints, adjacency and that no barrier is crossed.
func assertValidPath(t *testing.T, g *gridgraph.Grid, path []gridgraph.Pos, start, end gridgraph.Pos) {
	t.Helper()
	require.NotEmpty(t, path)
	assert.Equal(t, start, path[0])
	assert.Equal(t, end, path[len(path)-1])
	for i, p := range path {
		c, err := g.At(p)
		require.NoError(t, err)
		assert.False(t, c.IsBarrier(), "path crosses barrier at %s", p)
		if i > 0 {
			assert.True(t, adjacent(path[i-1], p), "%s -> %s is not a unit step", path[i-1], p)
		}
	}
}

// ------------------------------------------------------------------------
// 1. Validation
// ------------------------------------------------------------------------

func TestSearch_NilGrid(t *testing.T) {
	res, err := astar.Search(nil, gridgraph.Pos{0, 0}, gridgraph.Pos{1, 1})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, astar.ErrNilGrid)
}

func TestSearch_InvalidEndpoints(t *testing.T) {
	g, _, _ := fromLayout(t,
		"...",
		".#.",
		"...",
	)
	cases := []struct {
		name       string
		start, end gridgraph.Pos
		also       error
	}{
		{"SameCell", gridgraph.Pos{0, 0}, gridgraph.Pos{0, 0}, nil},
		{"StartOutOfRange", gridgraph.Pos{-1, 0}, gridgraph.Pos{2, 2}, gridgraph.ErrOutOfRange},
		{"EndOutOfRange", gridgraph.Pos{0, 0}, gridgraph.Pos{3, 0}, gridgraph.ErrOutOfRange},
		{"StartBarrier", gridgraph.Pos{1, 1}, gridgraph.Pos{2, 2}, nil},
		{"EndBarrier", gridgraph.Pos{0, 0}, gridgraph.Pos{1, 1}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := astar.Search(g, tc.start, tc.end)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, astar.ErrInvalidEndpoints)
			if tc.also != nil {
				assert.ErrorIs(t, err, tc.also)
			}
		})
	}

	// No partial mutation: scores and annotations are still pristine.
	g.Each(func(s gridgraph.CellState) {
		assert.Equal(t, 0.0, s.G, "cell %s", s.Pos)
		assert.Equal(t, 0.0, s.H, "cell %s", s.Pos)
		assert.Equal(t, gridgraph.MarkNone, s.Mark, "cell %s", s.Pos)
	})
}

func TestSearch_OptionViolation(t *testing.T) {
	g, s, e := fromLayout(t, "S.", ".E")

	_, err := astar.Search(g, s, e, astar.WithContext(nil))
	assert.ErrorIs(t, err, astar.ErrOptionViolation)

	_, err = astar.Search(g, s, e, astar.WithCancel(nil))
	assert.ErrorIs(t, err, astar.ErrOptionViolation)
}

// ------------------------------------------------------------------------
// 2. Exact behaviour on small grids
// ------------------------------------------------------------------------

// TestSearch_TraceTwoByTwo pins the full yield sequence on a 2×2 grid.
//
//	S .
//	. E
func TestSearch_TraceTwoByTwo(t *testing.T) {
	g, s, e := fromLayout(t, "S.", ".E")

	var kinds []astar.EventKind
	var at []gridgraph.Pos
	res, err := astar.Search(g, s, e, astar.WithOnStep(func(_ gridgraph.Reader, ev astar.Event) {
		kinds = append(kinds, ev.Kind)
		at = append(at, ev.At)
		assert.Equal(t, len(kinds), ev.Seq)
	}))
	require.NoError(t, err)

	assert.Equal(t, astar.OutcomeFound, res.Outcome)
	assert.Equal(t, []gridgraph.Pos{{0, 0}, {1, 0}, {1, 1}}, res.Path)
	assert.Equal(t, 2, res.Steps)
	assert.Equal(t, []gridgraph.Pos{{0, 0}, {1, 0}, {0, 1}, {1, 1}}, res.Order)
	assert.Equal(t, 4, res.Expanded)
	assert.Equal(t, 12, res.Yields)

	P, R, T := astar.EventPop, astar.EventRelax, astar.EventTrace
	assert.Equal(t, []astar.EventKind{P, R, R, P, R, R, P, R, R, P, T, T}, kinds)
	assert.Equal(t, []gridgraph.Pos{
		{0, 0}, {1, 0}, {0, 1},
		{1, 0}, {0, 0}, {1, 1},
		{0, 1}, {1, 1}, {0, 0},
		{1, 1}, {1, 0}, {0, 0},
	}, at)

	status := func(col, row int) gridgraph.Status {
		st, err := g.Inspect(col, row)
		require.NoError(t, err)
		return st.Status
	}
	assert.Equal(t, gridgraph.StatusStart, status(0, 0))
	assert.Equal(t, gridgraph.StatusPath, status(1, 0))
	assert.Equal(t, gridgraph.StatusClosed, status(0, 1))
	assert.Equal(t, gridgraph.StatusEnd, status(1, 1))

	endState, _ := g.Inspect(1, 1)
	assert.Equal(t, gridgraph.MarkNone, endState.Mark, "end annotation is restored")
	assert.Equal(t, gridgraph.RoleEnd, endState.Role)
}

// TestSearch_OpenFiveByFive is the corner-to-corner scenario on an empty 5×5 grid.
func TestSearch_OpenFiveByFive(t *testing.T) {
	g, err := gridgraph.NewGrid(gridgraph.WithRows(5))
	require.NoError(t, err)
	s, e := gridgraph.Pos{0, 0}, gridgraph.Pos{4, 4}

	res, err := astar.Search(g, s, e)
	require.NoError(t, err)
	assert.Equal(t, astar.OutcomeFound, res.Outcome)
	assert.Equal(t, 8, res.Steps)
	assert.Len(t, res.Path, 9)
	assertValidPath(t, g, res.Path, s, e)

	endCell, _ := g.At(e)
	assert.Equal(t, 8.0, endCell.G())
	assert.Equal(t, 8.0, endCell.F())
}

// TestSearch_Detour forces the only route around a wall.
//
//	S # E
//	. # .
//	. . .
func TestSearch_Detour(t *testing.T) {
	g, s, e := fromLayout(t,
		"S#E",
		".#.",
		"...",
	)
	res, err := astar.Search(g, s, e)
	require.NoError(t, err)
	assert.Equal(t, astar.OutcomeFound, res.Outcome)
	assert.Equal(t, []gridgraph.Pos{{0, 0}, {0, 1}, {0, 2}, {1, 2}, {2, 2}, {2, 1}, {2, 0}}, res.Path)
	assert.Equal(t, 6, res.Steps)

	for _, p := range res.Path[1 : len(res.Path)-1] {
		c, _ := g.At(p)
		assert.Equal(t, gridgraph.MarkPath, c.Mark(), "cell %s", p)
	}
}

// TestSearch_WaitingCellKeepsKey pins the pop order through a g improvement
// to a cell that is already in the frontier.
//
//	. S . . .
//	. # . . #
//	. . . . .
//	# . . . .
//	E . # # .
//
// (2,2) is pushed from (1,2) with g=5, f=9. Popping (2,1) improves its g to 3,
// but it keeps key 9 and the end is reached before it leaves the frontier.
func TestSearch_WaitingCellKeepsKey(t *testing.T) {
	g, s, e := fromLayout(t,
		".S...",
		".#..#",
		".....",
		"#....",
		"E.##.",
	)
	res, err := astar.Search(g, s, e)
	require.NoError(t, err)
	require.Equal(t, astar.OutcomeFound, res.Outcome)

	assert.Equal(t, []gridgraph.Pos{
		{1, 0}, {0, 0}, {0, 1}, {0, 2}, {2, 0},
		{1, 2}, {2, 1}, {1, 3}, {1, 4}, {0, 4},
	}, res.Order)
	assert.Equal(t, 7, res.Steps)
	assertValidPath(t, g, res.Path, s, e)

	improved, err := g.CellAt(2, 2)
	require.NoError(t, err)
	assert.Equal(t, 3.0, improved.G())
	assert.Equal(t, 7.0, improved.F())
	parent, ok := improved.Parent()
	require.True(t, ok)
	assert.Equal(t, gridgraph.Pos{2, 1}, parent)
	assert.NotContains(t, res.Order, gridgraph.Pos{2, 2})
}

// plainLoop is a straightforward rendition of the search loop: a linear scan
// for the smallest (key, seq) entry, keys fixed at push time, and a
// discovered set that blocks a second entry for a waiting cell.
// It returns the pop order.
func plainLoop(g *gridgraph.Grid, s, e gridgraph.Pos) []gridgraph.Pos {
	type entry struct {
		at  gridgraph.Pos
		key float64
		seq int
	}
	cost := map[gridgraph.Pos]float64{s: 0}
	gOf := func(p gridgraph.Pos) float64 {
		if v, ok := cost[p]; ok {
			return v
		}
		return math.Inf(1)
	}
	frontier := []entry{{at: s, key: 0, seq: 0}}
	waiting := map[gridgraph.Pos]bool{s: true}
	seq := 0
	var order []gridgraph.Pos

	for len(frontier) > 0 {
		best := 0
		for i, it := range frontier {
			if it.key < frontier[best].key || (it.key == frontier[best].key && it.seq < frontier[best].seq) {
				best = i
			}
		}
		cur := frontier[best].at
		frontier = append(frontier[:best], frontier[best+1:]...)
		delete(waiting, cur)
		order = append(order, cur)
		if cur == e {
			return order
		}

		c, _ := g.At(cur)
		for _, n := range g.NeighborsOf(c) {
			p := n.Pos()
			tentative := gOf(cur) + 1
			if tentative >= gOf(p) {
				continue
			}
			cost[p] = tentative
			if !waiting[p] {
				seq++
				frontier = append(frontier, entry{at: p, key: tentative + astar.Manhattan(p, e), seq: seq})
				waiting[p] = true
			}
		}
	}

	return order
}

// TestSearch_PopOrderMatchesPlainLoop compares pop orders on seeded random grids.
func TestSearch_PopOrderMatchesPlainLoop(t *testing.T) {
	rng := rand.New(rand.NewSource(2024))
	for round := 0; round < 500; round++ {
		n := 4 + rng.Intn(8)
		g, s, e := randomLayout(t, rng, n, 0.3)

		want := plainLoop(g, s, e)
		res, err := astar.Search(g, s, e)
		require.NoError(t, err)
		require.Equal(t, want, res.Order, "round %d: %s -> %s on %d×%d", round, s, e, n, n)
	}
}

// ------------------------------------------------------------------------
// 3. No path
// ------------------------------------------------------------------------

func TestSearch_NotFound(t *testing.T) {
	cases := []struct {
		name   string
		layout []string
	}{
		{"FullWall", []string{
			"S....",
			".....",
			"#####",
			".....",
			"....E",
		}},
		{"EnclosedEnd", []string{
			"S....",
			".....",
			"..#..",
			".#E#.",
			"..#..",
		}},
		{"BoxedStart", []string{
			"S#.",
			"#..",
			"..E",
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, s, e := fromLayout(t, tc.layout...)
			res, err := astar.Search(g, s, e)
			require.NoError(t, err)
			assert.Equal(t, astar.OutcomeNotFound, res.Outcome)
			assert.Nil(t, res.Path)
			assert.Zero(t, res.Steps)

			endCell, _ := g.At(e)
			assert.True(t, math.IsInf(endCell.G(), 1), "end must stay unreached")
		})
	}
}

// ------------------------------------------------------------------------
// 4. Properties
// ------------------------------------------------------------------------

// randomLayout fills an n×n grid with barriers at the given density using rng,
// keeping start and end passable.
func randomLayout(t testing.TB, rng *rand.Rand, n int, density float64) (*gridgraph.Grid, gridgraph.Pos, gridgraph.Pos) {
	t.Helper()
	g, err := gridgraph.NewGrid(gridgraph.WithRows(n))
	require.NoError(t, err)
	for _, c := range g.Cells() {
		if rng.Float64() < density {
			c.MarkBarrier()
		}
	}
	s := gridgraph.Pos{Col: rng.Intn(n), Row: rng.Intn(n)}
	e := gridgraph.Pos{Col: rng.Intn(n), Row: rng.Intn(n)}
	for e == s {
		e = gridgraph.Pos{Col: rng.Intn(n), Row: rng.Intn(n)}
	}
	sc, _ := g.At(s)
	sc.Reset()
	sc.MarkStart()
	ec, _ := g.At(e)
	ec.Reset()
	ec.MarkEnd()

	return g, s, e
}

// TestSearch_OptimalAgainstBFS compares every search with the BFS oracle.
func TestSearch_OptimalAgainstBFS(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 200; round++ {
		n := 4 + rng.Intn(12)
		density := 0.15 + 0.3*rng.Float64()
		g, s, e := randomLayout(t, rng, n, density)

		want, reachable, err := g.StepDistance(s, e)
		require.NoError(t, err)

		res, err := astar.Search(g, s, e)
		require.NoError(t, err)
		if !reachable {
			assert.Equal(t, astar.OutcomeNotFound, res.Outcome, "round %d", round)
			continue
		}
		require.Equal(t, astar.OutcomeFound, res.Outcome, "round %d", round)
		assert.Equal(t, want, res.Steps, "round %d: %s -> %s on %d×%d", round, s, e, n, n)
		assertValidPath(t, g, res.Path, s, e)
	}
}

// TestSearch_Deterministic checks that identical inputs give identical runs.
func TestSearch_Deterministic(t *testing.T) {
	run := func() (*astar.Result, []astar.Event) {
		g, s, e := randomLayout(t, rand.New(rand.NewSource(99)), 20, 0.25)
		var events []astar.Event
		res, err := astar.Search(g, s, e, astar.WithOnStep(func(_ gridgraph.Reader, ev astar.Event) {
			events = append(events, ev)
		}))
		require.NoError(t, err)
		return res, events
	}

	r1, ev1 := run()
	r2, ev2 := run()
	assert.Equal(t, r1.Outcome, r2.Outcome)
	assert.Equal(t, r1.Path, r2.Path)
	assert.Equal(t, r1.Order, r2.Order)
	assert.Equal(t, ev1, ev2)
}

// TestSearch_ScoreInvariant checks f == g + h on every cell at every yield.
func TestSearch_ScoreInvariant(t *testing.T) {
	g, s, e := randomLayout(t, rand.New(rand.NewSource(3)), 10, 0.2)

	checks := 0
	check := func(view gridgraph.Reader, _ astar.Event) {
		view.Each(func(c gridgraph.CellState) {
			checks++
			if math.IsInf(c.G, 1) {
				assert.True(t, math.IsInf(c.F, 1), "cell %s: g=+Inf but f=%v", c.Pos, c.F)
				return
			}
			assert.Equal(t, c.G+c.H, c.F, "cell %s", c.Pos)
			assert.Equal(t, astar.Manhattan(c.Pos, e), c.H, "cell %s", c.Pos)
		})
	}
	_, err := astar.Search(g, s, e, astar.WithOnStep(check))
	require.NoError(t, err)
	assert.Positive(t, checks)

	// And after the run.
	check(g, astar.Event{})
}

// TestSearch_RerunAfterBarrierChange checks that adjacency is rebuilt per run.
func TestSearch_RerunAfterBarrierChange(t *testing.T) {
	g, s, e := fromLayout(t,
		"S...",
		"....",
		"....",
		"...E",
	)
	first, err := astar.Search(g, s, e)
	require.NoError(t, err)
	assert.Equal(t, 6, first.Steps)

	g.ClearSearch()
	for _, p := range []gridgraph.Pos{{1, 0}, {1, 1}, {1, 2}} {
		c, _ := g.At(p)
		c.MarkBarrier()
	}
	for _, p := range []gridgraph.Pos{{3, 1}, {3, 2}, {2, 2}} {
		c, _ := g.At(p)
		c.MarkBarrier()
	}
	// S # . .
	// . # . #
	// . # # #
	// . . . E
	second, err := astar.Search(g, s, e)
	require.NoError(t, err)
	assert.Equal(t, astar.OutcomeFound, second.Outcome)
	assert.Equal(t, 6, second.Steps)
	assert.Equal(t, []gridgraph.Pos{{0, 0}, {0, 1}, {0, 2}, {0, 3}, {1, 3}, {2, 3}, {3, 3}}, second.Path)

	c, _ := g.At(gridgraph.Pos{2, 3})
	c.MarkBarrier()
	third, err := astar.Search(g, s, e)
	require.NoError(t, err)
	assert.Equal(t, astar.OutcomeNotFound, third.Outcome)
}

// ------------------------------------------------------------------------
// 5. Annotations
// ------------------------------------------------------------------------

// TestSearch_DiscoveryMarks checks the closed-on-discovery display and the
// opt-in open marks.
func TestSearch_DiscoveryMarks(t *testing.T) {
	collect := func(opts ...astar.Option) map[gridgraph.Mark]int {
		g, s, e := fromLayout(t,
			"S....",
			".....",
			".###.",
			".....",
			"....E",
		)
		seen := map[gridgraph.Mark]int{}
		opts = append(opts, astar.WithOnStep(func(view gridgraph.Reader, ev astar.Event) {
			if ev.Kind != astar.EventRelax {
				return
			}
			st, err := view.Inspect(ev.At.Col, ev.At.Row)
			require.NoError(t, err)
			seen[st.Mark]++
		}))
		res, err := astar.Search(g, s, e, opts...)
		require.NoError(t, err)
		require.Equal(t, astar.OutcomeFound, res.Outcome)
		return seen
	}

	quirk := collect()
	assert.Zero(t, quirk[gridgraph.MarkOpen], "default display never shows open cells")
	assert.Positive(t, quirk[gridgraph.MarkClosed])

	textbook := collect(astar.WithOpenMarks())
	assert.Positive(t, textbook[gridgraph.MarkOpen])
}

// TestSearch_FirstDiscoveryMark pins the mark of the first discovered cell.
func TestSearch_FirstDiscoveryMark(t *testing.T) {
	for _, tc := range []struct {
		name string
		opts []astar.Option
		want gridgraph.Mark
	}{
		{"Default", nil, gridgraph.MarkClosed},
		{"OpenMarks", []astar.Option{astar.WithOpenMarks()}, gridgraph.MarkOpen},
	} {
		t.Run(tc.name, func(t *testing.T) {
			g, s, e := fromLayout(t, "S..", "...", "..E")
			var got gridgraph.Mark = -1
			opts := append(tc.opts, astar.WithOnStep(func(view gridgraph.Reader, ev astar.Event) {
				if ev.Seq == 2 {
					st, _ := view.Inspect(1, 0)
					got = st.Mark
				}
			}))
			_, err := astar.Search(g, s, e, opts...)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// ------------------------------------------------------------------------
// 6. Cancellation
// ------------------------------------------------------------------------

func TestSearch_CancelPoll(t *testing.T) {
	g, s, e := fromLayout(t,
		"S....",
		".....",
		".....",
		".....",
		"....E",
	)
	yields := 0
	res, err := astar.Search(g, s, e,
		astar.WithOnStep(func(gridgraph.Reader, astar.Event) { yields++ }),
		astar.WithCancel(func() bool { return yields >= 5 }),
	)
	require.NoError(t, err)
	assert.Equal(t, astar.OutcomeCancelled, res.Outcome)
	assert.Equal(t, 5, res.Yields)
	assert.Nil(t, res.Path)
}

func TestSearch_CancelContext(t *testing.T) {
	g, s, e := fromLayout(t, "S..", "...", "..E")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	res, err := astar.Search(g, s, e,
		astar.WithContext(ctx),
		astar.WithOnStep(func(gridgraph.Reader, astar.Event) { cancel() }),
	)
	require.NoError(t, err)
	assert.Equal(t, astar.OutcomeCancelled, res.Outcome)
	assert.Equal(t, 1, res.Yields)
	assert.Equal(t, []gridgraph.Pos{{0, 0}}, res.Order)
}

// TestSearch_CancelDuringReconstruction stops at the first trace step.
func TestSearch_CancelDuringReconstruction(t *testing.T) {
	g, s, e := fromLayout(t, "S..", "...", "..E")
	stop := false
	res, err := astar.Search(g, s, e,
		astar.WithOnStep(func(_ gridgraph.Reader, ev astar.Event) {
			if ev.Kind == astar.EventTrace {
				stop = true
			}
		}),
		astar.WithCancel(func() bool { return stop }),
	)
	require.NoError(t, err)
	assert.Equal(t, astar.OutcomeCancelled, res.Outcome)
	assert.Nil(t, res.Path)
	assert.Zero(t, res.Steps)
}

// TestOutcomeStrings covers the display names.
func TestOutcomeStrings(t *testing.T) {
	assert.Equal(t, "found", astar.OutcomeFound.String())
	assert.Equal(t, "not found", astar.OutcomeNotFound.String())
	assert.Equal(t, "cancelled", astar.OutcomeCancelled.String())
	assert.Equal(t, "relax", astar.EventRelax.String())
	assert.Equal(t, "trace", astar.EventTrace.String())
	assert.Equal(t, "pop", astar.EventPop.String())
}

// TestSearch_LogsAtDebug checks that a supplied logger receives the run summary.
func TestSearch_LogsAtDebug(t *testing.T) {
	g, s, e := fromLayout(t,
		"S..",
		"...",
		"..E",
	)
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	res, err := astar.Search(g, s, e, astar.WithLogger(logger))
	require.NoError(t, err)
	require.Equal(t, astar.OutcomeFound, res.Outcome)

	assert.Contains(t, buf.String(), "astar: initialized")
	assert.Contains(t, buf.String(), "astar: search finished")
	assert.Contains(t, buf.String(), "outcome=found")
}
