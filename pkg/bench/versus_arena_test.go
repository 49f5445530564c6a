package bench

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/IlikeChooros/go-uct-ttt/pkg/mcts"
	"github.com/IlikeChooros/go-uct-ttt/pkg/ttt"
)

func TestMain(m *testing.M) {
	mcts.SetSeedGeneratorFn(func() int64 { return 42 })
	os.Exit(m.Run())
}

// Always plays the first legal position
type firstMovePlayer struct{}

func (firstMovePlayer) Name() string { return "first" }
func (firstMovePlayer) Move(_ context.Context, state ttt.GameState) (ttt.GameState, error) {
	return state.LegalSuccessors()[0], nil
}
func (p firstMovePlayer) Clone(int64) Player { return p }

// Returns the state it was given, which is never a legal successor
type passingPlayer struct{}

func (passingPlayer) Name() string { return "pass" }
func (passingPlayer) Move(_ context.Context, state ttt.GameState) (ttt.GameState, error) {
	return state, nil
}
func (p passingPlayer) Clone(int64) Player { return p }

func TestToAgentResult(t *testing.T) {
	xWon, err := ttt.ParseNotation("xxx/oo1/3 o")
	require.NoError(t, err)
	draw, err := ttt.ParseNotation("xox/xoo/oxx o")
	require.NoError(t, err)

	require.Equal(t, VersusPl1Win, toAgentResult(xWon, ttt.Cross, true))
	require.Equal(t, VersusPl2Win, toAgentResult(xWon, ttt.Cross, false))
	require.Equal(t, VersusPl2Win, toAgentResult(xWon, ttt.Circle, true))
	require.Equal(t, VersusDraw, toAgentResult(draw, ttt.Cross, true))
}

func TestArenaDeterministicPlayers(t *testing.T) {
	// both fill the board in order, X plays 1,3,5,7 and wins on the 3-5-7 diagonal
	arena := NewVersusArena(ttt.NewGameState(), firstMovePlayer{}, firstMovePlayer{}).Setup(10, 3)
	summary, err := arena.Run(nil)
	require.NoError(t, err)

	require.Equal(t, 10, summary.TotalGames)
	require.Equal(t, 10, summary.FirstToMoveWins)
	require.Zero(t, summary.SecondToMoveWins)
	require.Zero(t, summary.Draws)
	// sides alternate, even games have player 1 first
	require.Equal(t, 5, summary.P1Wins)
	require.Equal(t, 5, summary.P2Wins)
	require.InDelta(t, 0.5, summary.P1Score, 1e-12)
	require.InDelta(t, 7, summary.MeanGameLength, 1e-12)
	require.LessOrEqual(t, summary.P1ScoreLow, summary.P1Score)
	require.GreaterOrEqual(t, summary.P1ScoreHigh, summary.P1Score)

	ids := map[string]bool{}
	for _, game := range arena.Records() {
		require.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, game.Moves)
		require.Equal(t, ttt.TerminationCrossWon.String(), game.Termination)
		ids[game.ID] = true
	}
	require.Len(t, ids, 10)
}

func TestArenaEngineBeatsRandom(t *testing.T) {
	engine := NewEnginePlayer("uct", mcts.DefaultLimits().SetCycles(500))
	random := NewRandomPlayer("random", 7)

	arena := NewVersusArena(ttt.NewGameState(), engine, random).Setup(20, 2)
	summary, err := arena.Run(nil)
	require.NoError(t, err)

	require.Equal(t, 20, summary.TotalGames)
	require.Equal(t, summary.TotalGames, summary.P1Wins+summary.P2Wins+summary.Draws)
	require.Greater(t, summary.P1Wins, summary.P2Wins)
	require.Greater(t, summary.P1Score, 0.5)
}

func TestArenaIllegalMove(t *testing.T) {
	arena := NewVersusArena(ttt.NewGameState(), passingPlayer{}, firstMovePlayer{}).Setup(4, 2)
	_, err := arena.Run(nil)
	require.ErrorIs(t, err, ErrIllegalMove)
}

func TestArenaCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	arena := NewVersusArena(ttt.NewGameState(), firstMovePlayer{}, firstMovePlayer{}).
		Setup(10, 2).
		WithContext(ctx)
	summary, err := arena.Run(nil)
	require.True(t, errors.Is(err, context.Canceled))
	require.Zero(t, summary.TotalGames)
	require.Zero(t, summary.P1Score)
}

func TestRandomPlayerOnTerminal(t *testing.T) {
	won, err := ttt.ParseNotation("xxx/oo1/3 o")
	require.NoError(t, err)

	_, err = NewRandomPlayer("random", 1).Move(context.Background(), won)
	require.ErrorIs(t, err, mcts.ErrNoRecommendation)

	_, err = NewEnginePlayer("uct", nil).Move(context.Background(), won)
	require.ErrorIs(t, err, mcts.ErrNoRecommendation)
}

func TestProgressListener(t *testing.T) {
	var buf bytes.Buffer
	listener := NewProgressListener(&buf, termenv.WithProfile(termenv.Ascii))

	arena := NewVersusArena(ttt.NewGameState(), firstMovePlayer{}, firstMovePlayer{}).Setup(2, 1)
	_, err := arena.Run(listener)
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "[worker 0] 1/2")
	require.Contains(t, out, "[worker 0] done, 2 games")
	require.Contains(t, out, "first vs first, 2 games")
}
