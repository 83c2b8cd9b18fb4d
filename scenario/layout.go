package scenario

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/gridstar/gridgraph"
)

// layout is a parsed ASCII drawing of the grid.
type layout struct {
	rows     int
	start    gridgraph.Pos
	end      gridgraph.Pos
	hasStart bool
	hasEnd   bool
	barriers []gridgraph.Pos
}

// parseLayout reads a square drawing of '.', '#', 'S' and 'E' glyphs.
// Spaces between glyphs are ignored and blank lines are skipped.
func parseLayout(text string) (*layout, error) {
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.ReplaceAll(strings.TrimSpace(raw), " ", "")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: empty drawing", ErrBadLayout)
	}

	l := &layout{rows: len(lines)}
	for row, line := range lines {
		if len(line) != l.rows {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrBadLayout, row, len(line), l.rows)
		}
		for col, ch := range line {
			p := gridgraph.Pos{Col: col, Row: row}
			switch ch {
			case '.':
			case '#':
				l.barriers = append(l.barriers, p)
			case 'S':
				if l.hasStart {
					return nil, fmt.Errorf("%w: second S at %s", ErrBadLayout, p)
				}
				l.start, l.hasStart = p, true
			case 'E':
				if l.hasEnd {
					return nil, fmt.Errorf("%w: second E at %s", ErrBadLayout, p)
				}
				l.end, l.hasEnd = p, true
			default:
				return nil, fmt.Errorf("%w: unknown glyph %q at %s", ErrBadLayout, ch, p)
			}
		}
	}

	return l, nil
}
