package ttt

import "errors"

type Mark uint8

const (
	None   Mark = 0
	Cross  Mark = 1 // 'X', always the first player
	Circle Mark = 2 // 'O'
)

// Board positions are numbered 1..9 row-major: pos = 3*row + col, col in 1..3
const (
	PosMin = 1
	PosMax = 9

	NumCells = 9
)

const (
	_bitboardCrossIdx  = 0
	_bitboardCircleIdx = 1

	_fullBoard uint16 = 0b111111111
)

var (
	// Move on a position outside [1, 9] or on a non-empty cell
	ErrInvalidMove = errors.New("invalid move")
	// Malformed notation, or a board no game reaches: wrong mark counts for
	// the last mover, or a line for the side to move
	ErrInvalidLayout = errors.New("invalid layout")
)

// Opponent of the given mark, None stays None
func (m Mark) Opponent() Mark {
	switch m {
	case Cross:
		return Circle
	case Circle:
		return Cross
	}
	return None
}

// Symbol used in the text serialization of the board
func (m Mark) Symbol() byte {
	switch m {
	case Cross:
		return 'X'
	case Circle:
		return 'O'
	}
	return '_'
}

func (m Mark) String() string {
	return string(m.Symbol())
}

func (m Mark) bitboardIdx() int {
	if m == Circle {
		return _bitboardCircleIdx
	}
	return _bitboardCrossIdx
}

// Board cells in row-major order, index 0 holds position 1
type Board [NumCells]Mark

// Convert (row, col) with row in 0..2 and col in 1..3 to a board position
func PositionOf(row, col int) int {
	return 3*row + col
}

// Inverse of PositionOf
func RowCol(pos int) (row, col int) {
	return (pos - 1) / 3, (pos-1)%3 + 1
}

func validPosition(pos int) bool {
	return pos >= PosMin && pos <= PosMax
}
