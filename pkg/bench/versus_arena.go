package bench

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/IlikeChooros/go-uct-ttt/pkg/mcts"
	"github.com/IlikeChooros/go-uct-ttt/pkg/ttt"
)

/*
Arena benchmark subpackage, plays a series of games between two players
from a common starting position. Games are split between worker goroutines,
player 1 moves first in even games and second in odd ones.
*/

var ErrIllegalMove = errors.New("player returned an illegal successor")

type VersusArena struct {
	VersusArenaStats
	Player1  Player
	Player2  Player
	NGames   uint
	NThreads uint
	Position ttt.GameState

	logger  zerolog.Logger
	ctx     context.Context
	group   *errgroup.Group
	mu      sync.Mutex
	records []GameRecord
}

func NewVersusArena(position ttt.GameState, player1, player2 Player) *VersusArena {
	return &VersusArena{
		Player1:  player1,
		Player2:  player2,
		NGames:   100,
		NThreads: 2,
		Position: position,
		logger:   zerolog.Nop(),
		ctx:      context.Background(),
	}
}

func (va *VersusArena) WithContext(ctx context.Context) *VersusArena {
	va.ctx = ctx
	return va
}

func (va *VersusArena) WithLogger(logger zerolog.Logger) *VersusArena {
	va.logger = logger
	return va
}

func (va *VersusArena) Setup(nGames uint, nThreads uint) *VersusArena {
	va.NGames = nGames
	va.NThreads = max(1, nThreads)
	return va
}

// Finished games so far, in completion order
func (va *VersusArena) Records() []GameRecord {
	va.mu.Lock()
	defer va.mu.Unlock()
	return append([]GameRecord(nil), va.records...)
}

// Start the workers, returns immediately, use Wait to collect the summary
func (va *VersusArena) Start(listener ListenerLike) {
	if listener == nil {
		listener = NopListener{}
	}
	if va.Position.IsTerminal() {
		// every game ends before the first move
		va.logger.Warn().Str("position", va.Position.Notation()).Msg("arena started from a terminal position")
	}

	va.VersusArenaStats = VersusArenaStats{}
	va.records = va.records[:0]
	listener.OnStart()

	nThreads := max(1, va.NThreads)
	group, ctx := errgroup.WithContext(va.ctx)
	va.group = group

	nGames := va.NGames / nThreads
	rest := va.NGames % nThreads
	first := uint(0)
	for i := uint(0); i < nThreads; i++ {
		count := nGames
		if rest > 0 {
			count++
			rest--
		}

		// Always use a clone, the players are not safe for concurrent use
		seed := mcts.SeedGeneratorFn() + int64(i)
		p1 := va.Player1.Clone(seed)
		p2 := va.Player2.Clone(seed + int64(nThreads))
		id, offset := int(i), first

		group.Go(func() error {
			return va.worker(ctx, id, offset, count, listener, p1, p2)
		})
		first += count
	}
}

// Wait for every worker, then report the summary to the listener. The
// summary covers the games finished before an error or a cancellation.
func (va *VersusArena) Wait(listener ListenerLike) (VersusSummaryInfo, error) {
	if listener == nil {
		listener = NopListener{}
	}

	var err error
	if va.group != nil {
		err = va.group.Wait()
	}
	summary := va.Summary()
	listener.Summary(summary)
	listener.OnEnd()

	va.logger.Info().
		Int("games", summary.TotalGames).
		Float64("player1_score", summary.P1Score).
		Err(err).
		Msg("arena finished")
	return summary, err
}

func (va *VersusArena) Run(listener ListenerLike) (VersusSummaryInfo, error) {
	va.Start(listener)
	return va.Wait(listener)
}

func (va *VersusArena) worker(ctx context.Context, id int, offset, nGames uint, listener ListenerLike, p1, p2 Player) error {
	finished := 0
	for i := uint(0); i < nGames; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		game, err := va.playGame(ctx, id, (offset+i)%2 == 0, p1, p2)
		if err != nil {
			return err
		}

		va.VersusArenaStats.record(game)
		va.mu.Lock()
		va.records = append(va.records, game)
		va.mu.Unlock()
		finished++

		listener.OnFinishedGame(VersusWorkerInfo{
			WorkerID:      id,
			NGames:        int(nGames),
			FinishedGames: finished,
			Game:          game,
			P1Name:        p1.Name(),
			P2Name:        p2.Name(),
		})
	}

	listener.OnFinishedWork(VersusWorkerInfo{
		WorkerID:      id,
		NGames:        int(nGames),
		FinishedGames: finished,
		P1Name:        p1.Name(),
		P2Name:        p2.Name(),
	})
	return nil
}

func (va *VersusArena) playGame(ctx context.Context, worker int, p1First bool, p1, p2 Player) (GameRecord, error) {
	game := GameRecord{
		ID:      uuid.NewString(),
		Worker:  worker,
		P1First: p1First,
		Moves:   make([]int, 0, ttt.NumCells),
	}
	logger := va.logger.With().Str("game_id", game.ID).Int("worker", worker).Logger()

	players := [2]Player{p1, p2}
	if !p1First {
		players = [2]Player{p2, p1}
	}

	state := va.Position
	firstMark := state.ToMove()
	for turn := 0; !state.IsTerminal(); turn++ {
		if err := ctx.Err(); err != nil {
			return game, err
		}

		player := players[turn%2]
		next, err := player.Move(ctx, state)
		if err != nil {
			return game, err
		}

		pos := state.MoveTo(next)
		if pos == 0 {
			logger.Error().Str("player", player.Name()).Str("from", state.Notation()).Msg("illegal successor")
			return game, fmt.Errorf("%w: %s from %s", ErrIllegalMove, player.Name(), state.Notation())
		}

		game.Moves = append(game.Moves, pos)
		state = next
		logger.Trace().Str("player", player.Name()).Int("position", pos).Msg("move")
	}

	game.Final = state.Notation()
	game.Termination = state.Termination().String()
	game.Result = toAgentResult(state, firstMark, p1First)
	logger.Debug().
		Ints("moves", game.Moves).
		Stringer("result", game.Result).
		Bool("player1_first", p1First).
		Msg("game finished")
	return game, nil
}

// Totals and the mean score of player 1 with a normal 95% interval
func (va *VersusArena) Summary() VersusSummaryInfo {
	records := va.Records()
	summary := VersusSummaryInfo{
		TotalGames:       va.Total(),
		P1Wins:           va.P1Wins(),
		P2Wins:           va.P2Wins(),
		Draws:            va.Draws(),
		FirstToMoveWins:  va.FirstToMoveWins(),
		SecondToMoveWins: va.SecondToMoveWins(),
		Workers:          int(max(1, va.NThreads)),
		P1Name:           va.Player1.Name(),
		P2Name:           va.Player2.Name(),
	}
	if len(records) == 0 {
		return summary
	}

	scores := make([]float64, len(records))
	lengths := make([]float64, len(records))
	for i, game := range records {
		scores[i] = game.Score()
		lengths[i] = float64(len(game.Moves))
	}

	mean, std := stat.MeanStdDev(scores, nil)
	if len(scores) < 2 || math.IsNaN(std) {
		std = 0
	}
	margin := 1.96 * std / math.Sqrt(float64(len(scores)))

	summary.P1Score = mean
	summary.P1ScoreStdDev = std
	summary.P1ScoreLow = math.Max(0, mean-margin)
	summary.P1ScoreHigh = math.Min(1, mean+margin)
	summary.MeanGameLength = stat.Mean(lengths, nil)
	return summary
}
