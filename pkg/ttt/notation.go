package ttt

import (
	"fmt"
	"strings"
)

// String notation for the position, in the spirit of FEN:
//
//	<row1>/<row2>/<row3> [<turn>]
//
// Each row lists its 3 cells from left to right, 'x' and 'o' for the marks,
// a digit 1..3 for that many empty cells ('_' is also accepted as a single
// empty cell). <turn> is 'x' or 'o', the side to move. When it is omitted,
// the side to move is derived from the mark counts.
//
// Examples:
//
//   - 3/3/3 x (empty board)
//   - 1o1/xxo/3 x
func (s GameState) Notation() string {
	builder := strings.Builder{}

	for row := 0; row < 3; row++ {
		counter := 0
		for col := 1; col <= 3; col++ {
			mark := s.Cell(PositionOf(row, col))
			if mark == None {
				counter++
				continue
			}
			if counter > 0 {
				fmt.Fprintf(&builder, "%d", counter)
				counter = 0
			}
			builder.WriteString(strings.ToLower(mark.String()))
		}
		if counter > 0 {
			fmt.Fprintf(&builder, "%d", counter)
		}
		if row != 2 {
			builder.WriteByte('/')
		}
	}

	builder.WriteByte(' ')
	builder.WriteString(strings.ToLower(s.ToMove().String()))
	return builder.String()
}

// Parse the notation produced by Notation
func ParseNotation(notation string) (GameState, error) {
	fields := strings.Fields(notation)
	if len(fields) == 0 || len(fields) > 2 {
		return GameState{}, fmt.Errorf("%w: expected '<rows> [turn]', got %q", ErrInvalidLayout, notation)
	}

	rows := strings.Split(fields[0], "/")
	if len(rows) != 3 {
		return GameState{}, fmt.Errorf("%w: expected 3 rows, got %d", ErrInvalidLayout, len(rows))
	}

	var board Board
	var crosses, circles int
	for row, rowStr := range rows {
		col := 1
		for _, c := range strings.ToLower(rowStr) {
			if col > 3 {
				return GameState{}, fmt.Errorf("%w: row %d is too long", ErrInvalidLayout, row+1)
			}
			switch {
			case c == 'x':
				board[PositionOf(row, col)-1] = Cross
				crosses++
				col++
			case c == 'o':
				board[PositionOf(row, col)-1] = Circle
				circles++
				col++
			case c == '_':
				col++
			case c >= '1' && c <= '3':
				col += int(c - '0')
			default:
				return GameState{}, fmt.Errorf("%w: unexpected character %q in row %d", ErrInvalidLayout, c, row+1)
			}
		}
		if col != 4 {
			return GameState{}, fmt.Errorf("%w: row %d must have exactly 3 cells", ErrInvalidLayout, row+1)
		}
	}

	var toMove Mark
	if len(fields) == 2 {
		switch strings.ToLower(fields[1]) {
		case "x":
			toMove = Cross
		case "o":
			toMove = Circle
		default:
			return GameState{}, fmt.Errorf("%w: turn must be 'x' or 'o', got %q", ErrInvalidLayout, fields[1])
		}
	} else {
		switch crosses - circles {
		case 0:
			toMove = Cross
		case 1:
			toMove = Circle
		default:
			return GameState{}, fmt.Errorf("%w: cannot derive the side to move from %d X and %d O",
				ErrInvalidLayout, crosses, circles)
		}
	}

	return FromBoard(board, toMove.Opponent())
}
