package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/katalvlaran/gridstar/gridgraph"
)

// ExitError carries the process exit code for a failed or unsuccessful run.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Exit codes.
const (
	exitError     = 1
	exitNotFound  = 2
	exitCancelled = 3
)

// config is the parsed command line.
type config struct {
	ScenarioPath string
	Rows         int
	Start        string
	End          string
	Delay        time.Duration
	Every        int
	Color        bool
	OpenMarks    bool
	Verify       bool
	LogLevel     string
	LogFormat    string
}

// parseArgs processes command-line arguments. It returns the config, a
// boolean telling the caller to exit cleanly, or an ExitError.
func parseArgs(args []string, output io.Writer) (*config, bool, error) {
	flagSet := flag.NewFlagSet("gridstar", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
gridstar - watch A* find a route across a barrier grid.

Usage:
  gridstar [options]

Without -scenario an empty -rows × -rows grid is searched corner to corner.
Coordinates are written "col,row"; "last" stands for rows-1.

Options:
`)
		flagSet.PrintDefaults()
	}

	cfg := &config{}
	flagSet.StringVar(&cfg.ScenarioPath, "scenario", "", "Path to an HCL scenario file.")
	flagSet.IntVar(&cfg.Rows, "rows", gridgraph.DefaultRows, "Grid size when no scenario file is given.")
	flagSet.StringVar(&cfg.Start, "start", "", "Start cell, overriding the scenario.")
	flagSet.StringVar(&cfg.End, "end", "", "End cell, overriding the scenario.")
	flagSet.DurationVar(&cfg.Delay, "delay", 0, "Pause after each drawn step.")
	flagSet.IntVar(&cfg.Every, "every", 0, "Draw every Nth search step. 0 draws only the final grid.")
	flagSet.BoolVar(&cfg.Color, "color", false, "Draw cells with coloured backgrounds.")
	flagSet.BoolVar(&cfg.OpenMarks, "open-marks", false, "Mark discovered cells open instead of closed.")
	flagSet.BoolVar(&cfg.Verify, "verify", false, "Check the route length against a breadth-first search.")
	flagSet.StringVar(&cfg.LogLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flagSet.StringVar(&cfg.LogFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: exitError, Message: err.Error()}
	}
	if flagSet.NArg() > 0 {
		return nil, false, &ExitError{Code: exitError, Message: fmt.Sprintf("unexpected argument %q", flagSet.Arg(0))}
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, false, &ExitError{Code: exitError, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: exitError, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	if cfg.Every < 0 {
		return nil, false, &ExitError{Code: exitError, Message: "invalid every: must not be negative"}
	}
	if cfg.Delay < 0 {
		return nil, false, &ExitError{Code: exitError, Message: "invalid delay: must not be negative"}
	}

	return cfg, false, nil
}

// parsePos reads "col,row". Either part may be "last", meaning rows-1.
func parsePos(s string, rows int) (gridgraph.Pos, error) {
	colStr, rowStr, ok := strings.Cut(s, ",")
	if !ok {
		return gridgraph.Pos{}, fmt.Errorf("coordinate %q: want col,row", s)
	}
	col, err := parseAxis(colStr, rows)
	if err != nil {
		return gridgraph.Pos{}, fmt.Errorf("coordinate %q: %w", s, err)
	}
	row, err := parseAxis(rowStr, rows)
	if err != nil {
		return gridgraph.Pos{}, fmt.Errorf("coordinate %q: %w", s, err)
	}

	return gridgraph.Pos{Col: col, Row: row}, nil
}

func parseAxis(s string, rows int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "last" {
		return rows - 1, nil
	}

	return strconv.Atoi(s)
}
