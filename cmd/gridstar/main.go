// Command gridstar runs an A* search over a barrier grid loaded from an HCL
// scenario file and draws the search to the terminal as it goes.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/katalvlaran/gridstar/astar"
	"github.com/katalvlaran/gridstar/gridgraph"
	"github.com/katalvlaran/gridstar/render"
	"github.com/katalvlaran/gridstar/scenario"
)

func main() {
	// Interrupt or terminate stops the search at its next step.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := run(ctx, os.Stdout, os.Stderr, os.Args[1:])
	stop()
	if err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitError)
	}
}

// run loads the scenario, searches it and draws the result to outW. Log
// records go to logW. A search that ends without a route returns an ExitError.
func run(ctx context.Context, outW, logW io.Writer, args []string) error {
	cfg, shouldExit, err := parseArgs(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	logger, err := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	if err != nil {
		return &ExitError{Code: exitError, Message: err.Error()}
	}

	sc, err := loadScenario(cfg)
	if err != nil {
		return err
	}
	logger = logger.With("scenario", sc.Name)
	logger.Info("Scenario ready.",
		"rows", sc.Rows,
		"start", sc.Start.String(),
		"end", sc.End.String(),
		"barriers", len(sc.Barriers),
	)

	g, err := sc.Build()
	if err != nil {
		return err
	}

	r := render.New(outW,
		render.WithColor(cfg.Color),
		render.WithEvery(cfg.Every),
		render.WithDelay(cfg.Delay),
	)
	opts := []astar.Option{
		astar.WithContext(ctx),
		astar.WithLogger(logger),
	}
	if cfg.Every > 0 {
		opts = append(opts, astar.WithOnStep(r.Observe))
	}
	if cfg.OpenMarks {
		opts = append(opts, astar.WithOpenMarks())
	}

	res, err := astar.Search(g, sc.Start, sc.End, opts...)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	if err := r.Final(g, res); err != nil {
		return err
	}
	logger.Info("Search finished.",
		"outcome", res.Outcome.String(),
		"steps", res.Steps,
		"expanded", res.Expanded,
	)

	if cfg.Verify && res.Outcome != astar.OutcomeCancelled {
		if err := verify(g, sc, res, logger); err != nil {
			return err
		}
	}

	switch res.Outcome {
	case astar.OutcomeNotFound:
		return &ExitError{Code: exitNotFound, Message: describeSplit(g, sc)}
	case astar.OutcomeCancelled:
		return &ExitError{Code: exitCancelled, Message: "search cancelled"}
	}

	return nil
}

// loadScenario reads the scenario file, or describes an empty grid searched
// corner to corner, then applies the endpoint overrides.
func loadScenario(cfg *config) (*scenario.Scenario, error) {
	var sc *scenario.Scenario
	if cfg.ScenarioPath != "" {
		var err error
		if sc, err = scenario.Load(cfg.ScenarioPath); err != nil {
			return nil, err
		}
	} else {
		sc = &scenario.Scenario{
			Name:     "empty",
			Rows:     cfg.Rows,
			CellSize: gridgraph.DefaultCellSize,
			Start:    gridgraph.Pos{Col: 0, Row: 0},
			End:      gridgraph.Pos{Col: cfg.Rows - 1, Row: cfg.Rows - 1},
		}
	}

	if cfg.Start != "" {
		p, err := parsePos(cfg.Start, sc.Rows)
		if err != nil {
			return nil, &ExitError{Code: exitError, Message: "invalid start: " + err.Error()}
		}
		sc.Start = p
	}
	if cfg.End != "" {
		p, err := parsePos(cfg.End, sc.Rows)
		if err != nil {
			return nil, &ExitError{Code: exitError, Message: "invalid end: " + err.Error()}
		}
		sc.End = p
	}

	return sc, nil
}

// verify compares the route length with a breadth-first search of the grid.
func verify(g *gridgraph.Grid, sc *scenario.Scenario, res *astar.Result, logger *slog.Logger) error {
	want, ok, err := g.StepDistance(sc.Start, sc.End)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	found := res.Outcome == astar.OutcomeFound
	if ok != found || (found && want != res.Steps) {
		return fmt.Errorf("verify: search gave %s in %d steps, breadth-first reachable=%t in %d steps",
			res.Outcome, res.Steps, ok, want)
	}
	logger.Info("Route verified.", "steps", want, "reachable", ok)

	return nil
}

// describeSplit explains a missing route by the passable regions holding the
// start and the end.
func describeSplit(g *gridgraph.Grid, sc *scenario.Scenario) string {
	regions := g.Regions()
	startRegion, endRegion := -1, -1
	for i, region := range regions {
		for _, p := range region {
			switch p {
			case sc.Start:
				startRegion = i
			case sc.End:
				endRegion = i
			}
		}
	}
	if startRegion < 0 || endRegion < 0 || startRegion == endRegion {
		return fmt.Sprintf("no route from %s to %s", sc.Start, sc.End)
	}

	return fmt.Sprintf("no route from %s to %s: the grid splits into %d regions, start is in one of %d cells, end in one of %d cells",
		sc.Start, sc.End, len(regions), len(regions[startRegion]), len(regions[endRegion]))
}
