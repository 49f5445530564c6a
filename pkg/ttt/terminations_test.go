package ttt

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKnownWinPattern(t *testing.T) {
	s, err := FromBoard(Board{
		Cross, Cross, Cross,
		None, None, Circle,
		None, Circle, None,
	}, Cross)
	require.NoError(t, err)
	require.True(t, s.IsWin())
	require.False(t, s.IsDraw())
	require.True(t, s.IsTerminal())
	require.Equal(t, Cross, s.Winner())
	require.Equal(t, TerminationCrossWon, s.Termination())
}

func TestAlternatingFullBoardIsDraw(t *testing.T) {
	s, err := FromBoard(Board{
		Cross, Circle, Cross,
		Cross, Circle, Circle,
		Circle, Cross, Cross,
	}, Cross)
	require.NoError(t, err)
	require.True(t, s.IsDraw())
	require.False(t, s.IsWin())
	require.Equal(t, None, s.Winner())
	require.Equal(t, TerminationDraw, s.Termination())
}

func TestWinOnEveryLine(t *testing.T) {
	lines := [8][3]int{
		{1, 2, 3}, {4, 5, 6}, {7, 8, 9},
		{1, 4, 7}, {2, 5, 8}, {3, 6, 9},
		{1, 5, 9}, {3, 5, 7},
	}

	for _, line := range lines {
		for _, winner := range []Mark{Cross, Circle} {
			t.Run(fmt.Sprintf("%s-%v", winner, line), func(t *testing.T) {
				board := boardWithLine(t, line, winner)
				s, err := FromBoard(board, winner)
				require.NoError(t, err)
				require.True(t, s.IsWin())
				require.Equal(t, winner, s.Winner())
			})
		}
	}
}

// Board where 'winner' holds 'line' and the loser has as many marks as a
// game would give it, none of them forming a line
func boardWithLine(t *testing.T, line [3]int, winner Mark) Board {
	t.Helper()
	var board Board
	for _, pos := range line {
		board[pos-1] = winner
	}

	loserMarks := 2
	if winner == Circle {
		loserMarks = 3
	}
	var loserBitboard uint16
	for i := range board {
		if loserMarks == 0 {
			break
		}
		if board[i] != None || hasLine(loserBitboard|1<<i) {
			continue
		}
		board[i] = winner.Opponent()
		loserBitboard |= 1 << i
		loserMarks--
	}
	require.Zero(t, loserMarks, "no room for the loser marks")
	return board
}

func TestWinCheckedOnlyForLastMover(t *testing.T) {
	// Circle has a line, but Cross placed the last mark
	board := Board{
		Circle, Circle, Circle,
		Cross, Cross, None,
		Cross, None, None,
	}
	_, err := FromBoard(board, Cross)
	require.ErrorIs(t, err, ErrInvalidLayout)

	s, err := FromBoard(board, Circle)
	require.NoError(t, err)
	require.True(t, s.IsWin())
}

// Walk every reachable board: exactly one of win, draw, ongoing must hold
func TestExhaustiveTrichotomy(t *testing.T) {
	var wins, draws, ongoing int
	seen := make(map[uint32]struct{})

	var walk func(s GameState)
	walk = func(s GameState) {
		if _, ok := seen[s.Key()]; ok {
			return
		}
		seen[s.Key()] = struct{}{}

		held := 0
		if s.IsWin() {
			held++
			wins++
		}
		if s.IsDraw() {
			held++
			draws++
		}
		successors := s.LegalSuccessors()
		if !s.IsTerminal() {
			held++
			ongoing++
			require.NotEmpty(t, successors, "ongoing state without successors:\n%s", s)
		}
		require.Equal(t, 1, held, "state:\n%s", s)
		require.Len(t, successors, s.EmptyCount())

		// the side to move never has a line on a reachable board
		require.False(t, hasLine(s.bitboards[s.ToMove().bitboardIdx()]))

		if s.IsTerminal() {
			return
		}
		for _, next := range successors {
			walk(next)
		}
	}

	walk(NewGameState())
	require.Equal(t, 942, wins)
	require.Equal(t, 16, draws)
	require.Equal(t, 5478, wins+draws+ongoing)
}

func TestRandomPlayout(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		s := NewGameState()
		movesLeft := NumCells
		for !s.IsTerminal() && movesLeft > 0 {
			successors := s.LegalSuccessors()
			require.NotEmpty(t, successors)
			s = successors[r.Intn(len(successors))]
			movesLeft--
		}
		require.NotEqual(t, TerminationNone, s.Termination(), "playout %d ended without a termination", i)
	}
}
