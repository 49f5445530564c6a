package main

/*

Tic-tac-toe against the UCT engine.

By default a random player opens and the engine answers every move until the
game ends. With -arena N the engine plays N games against the random player
instead, spread over -threads workers, and prints the summary.

	tictactoe -iterations 2000 -layout "1o1/xxo/3 x"
	tictactoe -arena 200 -threads 4 -json

*/

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"

	"github.com/IlikeChooros/go-uct-ttt/pkg/bench"
	"github.com/IlikeChooros/go-uct-ttt/pkg/display"
	"github.com/IlikeChooros/go-uct-ttt/pkg/mcts"
	"github.com/IlikeChooros/go-uct-ttt/pkg/ttt"
)

type options struct {
	iterations uint
	movetime   int
	seed       int64
	layout     string
	arena      uint
	threads    uint
	json       bool
	verbose    bool
}

func parseOptions() options {
	opts := options{}
	flag.UintVar(&opts.iterations, "iterations", uint(mcts.DefaultIterations), "search iterations per engine move")
	flag.IntVar(&opts.movetime, "movetime", -1, "time limit per engine move in milliseconds, -1 for none")
	flag.Int64Var(&opts.seed, "seed", 0, "seed of the random streams, 0 uses the clock")
	flag.StringVar(&opts.layout, "layout", "", "starting position, e.g. \"1o1/xxo/3 x\"")
	flag.UintVar(&opts.arena, "arena", 0, "play this many engine vs random games instead of a single one")
	flag.UintVar(&opts.threads, "threads", 2, "arena worker goroutines")
	flag.BoolVar(&opts.json, "json", false, "print results as JSON")
	flag.BoolVar(&opts.verbose, "v", false, "debug logging")
	flag.Parse()
	return opts
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func main() {
	opts := parseOptions()
	logger := newLogger(opts.verbose)

	if opts.seed != 0 {
		seed := opts.seed
		mcts.SetSeedGeneratorFn(func() int64 { return seed })
	}

	start := ttt.NewGameState()
	if opts.layout != "" {
		var err error
		if start, err = ttt.ParseNotation(opts.layout); err != nil {
			logger.Fatal().Err(err).Str("layout", opts.layout).Msg("invalid starting position")
		}
	}

	limits := mcts.DefaultLimits().SetCycles(uint32(opts.iterations))
	if opts.movetime > 0 {
		limits.SetMovetime(opts.movetime)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	if opts.arena > 0 {
		err = runArena(ctx, logger, opts, start, limits)
	} else {
		err = play(ctx, logger, opts, start, limits)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("failed")
	}
}

// Random player against the engine, the random side makes the first move
func play(ctx context.Context, logger zerolog.Logger, opts options, state ttt.GameState, limits *mcts.Limits) error {
	renderer := display.NewRenderer(os.Stdout)
	random := bench.NewRandomPlayer("random", mcts.SeedGeneratorFn())
	engine := mcts.NewEngine().
		SetLimits(limits).
		SetContext(ctx).
		SetLogger(logger)

	show := func(state ttt.GameState) error {
		if opts.json {
			return nil
		}
		return renderer.Render(state)
	}

	if err := show(state); err != nil {
		return err
	}
	for !state.IsTerminal() {
		next, err := random.Move(ctx, state)
		if err != nil {
			return err
		}
		logger.Info().Int("position", state.MoveTo(next)).Msg("random player moved")
		state = next
		if err := show(state); err != nil {
			return err
		}
		if state.IsTerminal() {
			break
		}

		result, err := engine.Search(state)
		if err != nil {
			return err
		}
		logger.Info().
			Int("position", result.Position).
			Float64("eval", result.Eval).
			Int("cycles", result.Cycles).
			Msg("engine moved")
		if opts.json {
			fmt.Print(result.String())
		}
		state = result.State
		if err := show(state); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}

	logger.Info().Stringer("termination", state.Termination()).Str("final", state.Notation()).Msg("game over")
	return nil
}

func runArena(ctx context.Context, logger zerolog.Logger, opts options, start ttt.GameState, limits *mcts.Limits) error {
	arena := bench.NewVersusArena(start,
		bench.NewEnginePlayer("uct", limits),
		bench.NewRandomPlayer("random", mcts.SeedGeneratorFn()),
	).
		Setup(opts.arena, opts.threads).
		WithContext(ctx).
		WithLogger(logger)

	var listener bench.ListenerLike = bench.NopListener{}
	if !opts.json {
		listener = bench.NewProgressListener(os.Stdout)
	}

	summary, err := arena.Run(listener)
	if opts.json {
		fmt.Print(summary.String())
	}
	return err
}
