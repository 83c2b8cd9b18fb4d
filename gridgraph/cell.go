package gridgraph

// Cell is one entry of a Grid. Its position and size never change; everything
// else is mutable search or layout state. Cells are only created by NewGrid.
type Cell struct {
	pos  Pos
	size int

	role Role
	mark Mark

	g, h, f float64

	parent    Pos
	hasParent bool
}

// Pos returns the cell's column and row.
func (c *Cell) Pos() Pos { return c.pos }

// Col returns the cell's column.
func (c *Cell) Col() int { return c.pos.Col }

// Row returns the cell's row.
func (c *Cell) Row() int { return c.pos.Row }

// Size returns the display size of the cell.
func (c *Cell) Size() int { return c.size }

// X returns the left pixel coordinate of the cell.
func (c *Cell) X() int { return c.pos.Col * c.size }

// Y returns the top pixel coordinate of the cell.
func (c *Cell) Y() int { return c.pos.Row * c.size }

//----------------------------------------------------------------------------//
// Roles
//----------------------------------------------------------------------------//

// Role returns the permanent role of the cell.
func (c *Cell) Role() Role { return c.role }

// MarkStart sets the start role.
func (c *Cell) MarkStart() { c.role = RoleStart }

// MarkEnd sets the end role.
func (c *Cell) MarkEnd() { c.role = RoleEnd }

// MarkBarrier sets the barrier role.
func (c *Cell) MarkBarrier() { c.role = RoleBarrier }

// Reset returns the cell to the default role and clears its annotation.
// Scores, parent and position are untouched.
func (c *Cell) Reset() {
	c.role = RoleDefault
	c.mark = MarkNone
}

// IsBarrier reports whether the cell is excluded from the traversable graph.
func (c *Cell) IsBarrier() bool { return c.role == RoleBarrier }

// IsStart reports whether the cell has the start role.
func (c *Cell) IsStart() bool { return c.role == RoleStart }

// IsEnd reports whether the cell has the end role.
func (c *Cell) IsEnd() bool { return c.role == RoleEnd }

//----------------------------------------------------------------------------//
// Annotations
//----------------------------------------------------------------------------//

// Mark returns the transient search annotation.
func (c *Cell) Mark() Mark { return c.mark }

// MarkOpen annotates the cell as a frontier member.
func (c *Cell) MarkOpen() { c.mark = MarkOpen }

// MarkClosed annotates the cell as expanded.
func (c *Cell) MarkClosed() { c.mark = MarkClosed }

// MarkPath annotates the cell as part of the reconstructed path.
func (c *Cell) MarkPath() { c.mark = MarkPath }

// ClearMark removes the search annotation.
func (c *Cell) ClearMark() { c.mark = MarkNone }

// Status folds role and annotation into the display tag.
func (c *Cell) Status() Status {
	switch c.role {
	case RoleStart:
		return StatusStart
	case RoleEnd:
		return StatusEnd
	case RoleBarrier:
		return StatusBarrier
	}
	switch c.mark {
	case MarkOpen:
		return StatusOpen
	case MarkClosed:
		return StatusClosed
	case MarkPath:
		return StatusPath
	}
	return StatusDefault
}

//----------------------------------------------------------------------------//
// Scores
//----------------------------------------------------------------------------//

// G returns the best known cost from the start (Inf when unreached).
func (c *Cell) G() float64 { return c.g }

// H returns the heuristic estimate to the end.
func (c *Cell) H() float64 { return c.h }

// F returns g + h. It has no setter.
func (c *Cell) F() float64 { return c.f }

// SetG updates g and recomputes f.
func (c *Cell) SetG(g float64) {
	c.g = g
	c.f = c.g + c.h
}

// SetH updates h and recomputes f.
func (c *Cell) SetH(h float64) {
	c.h = h
	c.f = c.g + c.h
}

// Parent returns the predecessor on the best known path, if any.
func (c *Cell) Parent() (Pos, bool) { return c.parent, c.hasParent }

// SetParent records p as the predecessor.
func (c *Cell) SetParent(p Pos) {
	c.parent = p
	c.hasParent = true
}

// ClearParent forgets the predecessor.
func (c *Cell) ClearParent() {
	c.parent = Pos{}
	c.hasParent = false
}

// State returns a value snapshot of the cell.
func (c *Cell) State() CellState {
	return CellState{
		Pos:       c.pos,
		Role:      c.role,
		Mark:      c.mark,
		Status:    c.Status(),
		G:         c.g,
		H:         c.h,
		F:         c.f,
		Parent:    c.parent,
		HasParent: c.hasParent,
	}
}

// clearSearch restores the pre-search scores and drops the annotation.
func (c *Cell) clearSearch() {
	c.g, c.h, c.f = 0, 0, 0
	c.mark = MarkNone
	c.ClearParent()
}
