package ttt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNotationEmptyBoard(t *testing.T) {
	require.Equal(t, "3/3/3 x", NewGameState().Notation())

	s, err := ParseNotation("3/3/3 x")
	require.NoError(t, err)
	require.Equal(t, NewGameState(), s)
}

func TestParseNotation(t *testing.T) {
	// X to move with two marks each
	s, err := ParseNotation("1o1/xxo/3 x")
	require.NoError(t, err)
	require.Equal(t, Board{
		None, Circle, None,
		Cross, Cross, Circle,
		None, None, None,
	}, s.Board())
	require.Equal(t, Cross, s.ToMove())
	require.Equal(t, Circle, s.LastMover())
	require.Equal(t, "1o1/xxo/3 x", s.Notation())
}

func TestParseNotationUnderscores(t *testing.T) {
	s, err := ParseNotation("X__/_O_/__X")
	require.NoError(t, err)
	require.Equal(t, Circle, s.ToMove(), "turn derived from mark counts")
	require.Equal(t, "x2/1o1/2x o", s.Notation())
}

func TestNotationRoundTripAlongGame(t *testing.T) {
	s := playMoves(t, NewGameState(), 5, 1, 9, 3, 2, 8)
	parsed, err := ParseNotation(s.Notation())
	require.NoError(t, err)
	require.Equal(t, s, parsed)
}

func TestParseNotationErrors(t *testing.T) {
	invalid := []string{
		"",
		"3/3",
		"3/3/3/3",
		"4/3/3",
		"2/3/3",
		"xo/3/3",
		"x1x1/3/3",
		"3/3/3 z",
		"3/3/3 x extra",
		"a2/3/3",
		"xx1/3/3",     // cannot derive the turn
		"ooo/xx1/3 o", // o to move already has a line
		"ooo/xx1/x2 o",
		"1o1/xxo/3 o", // equal counts, x must move
		"xxx/o2/3",    // x is two marks ahead
	}
	for _, notation := range invalid {
		_, err := ParseNotation(notation)
		require.ErrorIs(t, err, ErrInvalidLayout, "notation %q", notation)
	}
}
