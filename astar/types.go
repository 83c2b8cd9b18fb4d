// Package astar defines the outcome, event and option types of the grid A*
// search, together with its sentinel errors.
package astar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/gridstar/gridgraph"
)

// Sentinel errors returned by Search.
var (
	// ErrNilGrid indicates that a nil *gridgraph.Grid was passed to Search.
	ErrNilGrid = errors.New("astar: grid is nil")

	// ErrInvalidEndpoints indicates that start and end are the same cell, or
	// that either of them lies outside the grid or is a barrier.
	ErrInvalidEndpoints = errors.New("astar: invalid endpoints")

	// ErrOptionViolation indicates that an Option received an invalid value.
	ErrOptionViolation = errors.New("astar: invalid option supplied")
)

// Outcome is the terminal state of a search run.
type Outcome int

const (
	// OutcomeNotFound means the frontier emptied without reaching the end.
	OutcomeNotFound Outcome = iota
	// OutcomeFound means the end was reached and the path reconstructed.
	OutcomeFound
	// OutcomeCancelled means a stop request was observed at a yield point.
	OutcomeCancelled
)

// String returns "found", "not found" or "cancelled".
func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "not found"
	}
}

// EventKind says which yield point produced an Event.
type EventKind int

const (
	// EventPop follows the removal of a cell from the frontier.
	EventPop EventKind = iota
	// EventRelax follows the examination of one neighbor of the popped cell.
	EventRelax
	// EventTrace follows one step of path reconstruction.
	EventTrace
)

// String returns the lowercase event name.
func (k EventKind) String() string {
	switch k {
	case EventRelax:
		return "relax"
	case EventTrace:
		return "trace"
	default:
		return "pop"
	}
}

// Event describes the state change that preceded a StepFunc call.
type Event struct {
	Kind EventKind
	// At is the popped cell, the examined neighbor, or the traced path cell.
	At gridgraph.Pos
	// Seq counts yields within the run, starting at 1.
	Seq int
}

// StepFunc observes the grid at a yield point. The Reader is valid only for
// the duration of the call.
type StepFunc func(view gridgraph.Reader, ev Event)

// Result holds the outcome of a search run.
type Result struct {
	Outcome Outcome
	// Path lists the cells from start to end inclusive; nil unless found.
	Path []gridgraph.Pos
	// Steps is the number of unit moves on Path (len(Path)-1), 0 unless found.
	Steps int
	// Order lists the popped cells in pop order.
	Order []gridgraph.Pos
	// Expanded is the number of pops, len(Order).
	Expanded int
	// Yields is the number of StepFunc invocations.
	Yields int
}

// Options configures a search run.
type Options struct {
	// Ctx is polled at every yield point; Done means stop.
	Ctx context.Context

	// Cancel is polled at every yield point; true means stop.
	Cancel func() bool

	// OnStep is called at every yield point.
	OnStep StepFunc

	// OpenMarks annotates discovered cells as open instead of closed.
	OpenMarks bool

	// Logger receives debug records about the run.
	Logger *slog.Logger

	// internal error recorded during option parsing
	err error
}

// Option represents a functional option for configuring Search.
type Option func(*Options)

// DefaultOptions returns Options with:
//   - context.Background()
//   - a Cancel poll that never fires
//   - a no-op OnStep
//   - discovered cells marked closed
//   - a logger that discards everything.
func DefaultOptions() Options {
	return Options{
		Ctx:       context.Background(),
		Cancel:    func() bool { return false },
		OnStep:    func(gridgraph.Reader, Event) {},
		OpenMarks: false,
		Logger:    slog.New(slog.DiscardHandler),
	}
}

// WithContext sets the context polled for cancellation.
// A nil context is an option violation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx == nil {
			o.err = fmt.Errorf("%w: nil context", ErrOptionViolation)
			return
		}
		o.Ctx = ctx
	}
}

// WithCancel registers a poll-able stop signal, checked at every yield point.
// A nil function is an option violation.
func WithCancel(fn func() bool) Option {
	return func(o *Options) {
		if fn == nil {
			o.err = fmt.Errorf("%w: nil cancel poll", ErrOptionViolation)
			return
		}
		o.Cancel = fn
	}
}

// WithOnStep registers the observer called at every yield point.
func WithOnStep(fn StepFunc) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnStep = fn
		}
	}
}

// WithOpenMarks annotates newly discovered cells as open rather than closed.
func WithOpenMarks() Option {
	return func(o *Options) {
		o.OpenMarks = true
	}
}

// WithLogger sets the logger for debug records.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}
