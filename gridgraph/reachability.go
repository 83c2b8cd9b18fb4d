package gridgraph

// StepDistance returns the number of unit orthogonal steps on a shortest
// barrier-free route from `from` to `to`, found by breadth-first search.
// ok is false when no route exists or either endpoint is a barrier.
// Returns ErrOutOfRange if either position lies outside the grid.
//
// It shares no code with any heuristic search and serves as an oracle for
// verifying search optimality.
//
// Time:   O(R²).
// Memory: O(R²) for distances and the queue.
func (g *Grid) StepDistance(from, to Pos) (steps int, ok bool, err error) {
	src, err := g.At(from)
	if err != nil {
		return 0, false, err
	}
	dst, err := g.At(to)
	if err != nil {
		return 0, false, err
	}
	if src.IsBarrier() || dst.IsBarrier() {
		return 0, false, nil
	}

	dist := make([]int, len(g.cells))
	for i := range dist {
		dist[i] = -1
	}
	i0 := g.index(from.Col, from.Row)
	target := g.index(to.Col, to.Row)
	dist[i0] = 0
	queue := []int{i0}

	for qi := 0; qi < len(queue); qi++ {
		u := queue[qi]
		if u == target {
			return dist[u], true, nil
		}
		up := g.Coordinate(u)
		for _, d := range neighborOffsets {
			col, row := up.Col+d[0], up.Row+d[1]
			if !g.InBounds(col, row) {
				continue
			}
			v := g.index(col, row)
			if dist[v] >= 0 || g.cells[v].IsBarrier() {
				continue
			}
			dist[v] = dist[u] + 1
			queue = append(queue, v)
		}
	}

	return 0, false, nil
}

// Regions finds all contiguous groups of passable cells under 4-connectivity.
// Returns a slice of regions; each region lists its positions in BFS order,
// and regions appear in row-major order of their first cell.
//
// Time:   O(R²).
// Memory: O(R²) for visited flags and output.
func (g *Grid) Regions() [][]Pos {
	seen := make([]bool, len(g.cells))
	var regions [][]Pos

	for i0 := range g.cells {
		if seen[i0] || g.cells[i0].IsBarrier() {
			continue
		}
		// BFS to collect the region
		queue := []int{i0}
		seen[i0] = true
		var region []Pos

		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			up := g.Coordinate(u)
			region = append(region, up)
			for _, d := range neighborOffsets {
				col, row := up.Col+d[0], up.Row+d[1]
				if !g.InBounds(col, row) {
					continue
				}
				v := g.index(col, row)
				if !seen[v] && !g.cells[v].IsBarrier() {
					seen[v] = true
					queue = append(queue, v)
				}
			}
		}
		regions = append(regions, region)
	}

	return regions
}
