// Package render draws a grid to a terminal, one frame per observed search
// step. It is the visual side of astar.StepFunc and carries no search logic.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gookit/color"

	"github.com/katalvlaran/gridstar/astar"
	"github.com/katalvlaran/gridstar/gridgraph"
)

// glyphs maps a display status to its plain-text symbol.
var glyphs = map[gridgraph.Status]byte{
	gridgraph.StatusDefault: '.',
	gridgraph.StatusStart:   'S',
	gridgraph.StatusEnd:     'E',
	gridgraph.StatusBarrier: '#',
	gridgraph.StatusOpen:    'o',
	gridgraph.StatusClosed:  'x',
	gridgraph.StatusPath:    '*',
}

// palette maps a display status to its background colour.
var palette = map[gridgraph.Status]color.RGBColor{
	gridgraph.StatusDefault: color.RGB(255, 255, 255, true),
	gridgraph.StatusStart:   color.RGB(238, 52, 48, true),
	gridgraph.StatusEnd:     color.RGB(255, 172, 32, true),
	gridgraph.StatusBarrier: color.RGB(0, 0, 0, true),
	gridgraph.StatusOpen:    color.RGB(121, 227, 76, true),
	gridgraph.StatusClosed:  color.RGB(35, 145, 244, true),
	gridgraph.StatusPath:    color.RGB(103, 78, 167, true),
}

// Glyph returns the plain-text symbol for s, '?' for unknown values.
func Glyph(s gridgraph.Status) byte {
	if b, ok := glyphs[s]; ok {
		return b
	}
	return '?'
}

// Options configures a Renderer.
type Options struct {
	// Color paints cells with RGB backgrounds instead of bare glyphs.
	Color bool

	// Every draws only every Nth observed step; values below 1 mean 1.
	Every int

	// Delay pauses after each drawn frame.
	Delay time.Duration

	// Sleep implements Delay; tests replace it.
	Sleep func(time.Duration)
}

// Option represents a functional option for configuring New.
type Option func(*Options)

// DefaultOptions returns plain glyphs, every step drawn, no delay.
func DefaultOptions() Options {
	return Options{Every: 1, Sleep: time.Sleep}
}

// WithColor switches to the RGB palette.
func WithColor(on bool) Option {
	return func(o *Options) { o.Color = on }
}

// WithEvery draws only every n-th step.
func WithEvery(n int) Option {
	return func(o *Options) {
		if n < 1 {
			n = 1
		}
		o.Every = n
	}
}

// WithDelay pauses for d after each frame.
func WithDelay(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.Delay = d
		}
	}
}

// WithSleep replaces the function used to pause between frames.
func WithSleep(fn func(time.Duration)) Option {
	return func(o *Options) {
		if fn != nil {
			o.Sleep = fn
		}
	}
}

// Renderer writes frames to an io.Writer.
// The first write error is kept and all later writes are skipped.
type Renderer struct {
	w      io.Writer
	opts   Options
	seen   int
	frames int
	err    error
}

// New returns a Renderer writing to w.
func New(w io.Writer, opts ...Option) *Renderer {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Renderer{w: w, opts: cfg}
}

// Frame returns the grid drawn as one line per row.
// Plain frames separate glyphs with a space, so a frame holding only roles
// reads back as a scenario layout.
func (r *Renderer) Frame(view gridgraph.Reader) string {
	var sb strings.Builder
	rows := view.Rows()
	view.Each(func(cs gridgraph.CellState) {
		if r.opts.Color {
			paint, ok := palette[cs.Status]
			if !ok {
				paint = palette[gridgraph.StatusDefault]
			}
			sb.WriteString(paint.Sprint(" " + string(Glyph(cs.Status))))
		} else {
			if cs.Pos.Col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteByte(Glyph(cs.Status))
		}
		if cs.Pos.Col == rows-1 {
			sb.WriteByte('\n')
		}
	})

	return sb.String()
}

// Observe draws the grid after a search step. It matches astar.StepFunc.
func (r *Renderer) Observe(view gridgraph.Reader, ev astar.Event) {
	r.seen++
	if r.seen%r.opts.Every != 0 {
		return
	}
	r.write(fmt.Sprintf("step %d %s %s\n%s", ev.Seq, ev.Kind, ev.At, r.Frame(view)))
	r.frames++
	if r.opts.Delay > 0 {
		r.opts.Sleep(r.opts.Delay)
	}
}

// Final draws the grid once more with a summary line, regardless of Every.
func (r *Renderer) Final(view gridgraph.Reader, res *astar.Result) error {
	r.write(r.Frame(view))
	r.frames++
	if res != nil {
		r.write(fmt.Sprintf("%s: steps=%d expanded=%d yields=%d\n",
			res.Outcome, res.Steps, res.Expanded, res.Yields))
	}

	return r.err
}

// Frames returns how many frames were written.
func (r *Renderer) Frames() int { return r.frames }

// Err returns the first write error, if any.
func (r *Renderer) Err() error { return r.err }

func (r *Renderer) write(s string) {
	if r.err != nil {
		return
	}
	if _, err := io.WriteString(r.w, s); err != nil {
		r.err = fmt.Errorf("render: %w", err)
	}
}

var _ astar.StepFunc = (*Renderer)(nil).Observe
