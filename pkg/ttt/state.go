package ttt

import (
	"fmt"
	"strings"
)

// Immutable snapshot of the board plus the mover roles. Copying the value
// is the whole clone, every transition returns a new GameState.
// The zero value is the empty board with Cross to move.
type GameState struct {
	bitboards    [2]uint16
	circleToMove bool
}

// Empty board, Cross to move
func NewGameState() GameState {
	return GameState{}
}

// Build a state from a board, 'lastMover' is the mark that placed the most
// recent move. Cross always opens, so it must have one mark more than Circle
// after its own move and as many after Circle's. Rejects boards where the
// side to move already has a line.
func FromBoard(board Board, lastMover Mark) (GameState, error) {
	if lastMover != Cross && lastMover != Circle {
		return GameState{}, fmt.Errorf("%w: last mover must be X or O, got %d", ErrInvalidLayout, lastMover)
	}

	s := GameState{circleToMove: lastMover == Cross}
	var counts [2]int
	for i, m := range board {
		switch m {
		case None:
		case Cross, Circle:
			s.bitboards[m.bitboardIdx()] |= 1 << i
			counts[m.bitboardIdx()]++
		default:
			return GameState{}, fmt.Errorf("%w: unknown mark %d at position %d", ErrInvalidLayout, m, i+1)
		}
	}

	expected := 0
	if lastMover == Cross {
		expected = 1
	}
	crosses, circles := counts[_bitboardCrossIdx], counts[_bitboardCircleIdx]
	if crosses-circles != expected {
		return GameState{}, fmt.Errorf("%w: %d X and %d O cannot follow a move by %s",
			ErrInvalidLayout, crosses, circles, lastMover)
	}

	if hasLine(s.bitboards[s.ToMove().bitboardIdx()]) {
		return GameState{}, fmt.Errorf("%w: %s to move already has a line", ErrInvalidLayout, s.ToMove())
	}
	return s, nil
}

// Place the current mover's mark on 'pos' (1..9), returns the new state with
// the roles swapped. The receiver is left untouched.
func (s GameState) ApplyMove(pos int) (GameState, error) {
	if !validPosition(pos) {
		return GameState{}, fmt.Errorf("%w: position %d out of range [%d, %d]", ErrInvalidMove, pos, PosMin, PosMax)
	}
	if s.occupied()&(1<<(pos-1)) != 0 {
		return GameState{}, fmt.Errorf("%w: position %d is occupied by %s", ErrInvalidMove, pos, s.Cell(pos))
	}
	return s.play(pos), nil
}

// Unchecked transition, 'pos' must be a legal empty position
func (s GameState) play(pos int) GameState {
	s.bitboards[s.ToMove().bitboardIdx()] |= 1 << (pos - 1)
	s.circleToMove = !s.circleToMove
	return s
}

// Mark occupying 'pos', None for empty or out of range positions
func (s GameState) Cell(pos int) Mark {
	if !validPosition(pos) {
		return None
	}
	bit := uint16(1) << (pos - 1)
	switch {
	case s.bitboards[_bitboardCrossIdx]&bit != 0:
		return Cross
	case s.bitboards[_bitboardCircleIdx]&bit != 0:
		return Circle
	}
	return None
}

func (s GameState) Board() Board {
	var b Board
	for i := range b {
		b[i] = s.Cell(i + 1)
	}
	return b
}

// Mark that will be placed by the next move
func (s GameState) ToMove() Mark {
	if s.circleToMove {
		return Circle
	}
	return Cross
}

// Mark placed by the most recent move
// Mark placed by the most recent move, Circle on the empty board
func (s GameState) LastMover() Mark {
	return s.ToMove().Opponent()
}

// Canonical encoding: 2 bits per cell (row-major, position 1 in the lowest
// bits) followed by one bit for the last mover. Distinct (board, mover)
// pairs never share a key.
func (s GameState) Key() uint32 {
	var key uint32
	for i := NumCells - 1; i >= 0; i-- {
		key = key<<2 | uint32(s.Cell(i+1))
	}
	if s.LastMover() == Circle {
		key |= 1 << (2 * NumCells)
	}
	return key
}

// Position of the single cell that differs between 's' and 'next',
// 0 if 'next' is not a one-move successor of 's'
func (s GameState) MoveTo(next GameState) int {
	if next.LastMover() != s.ToMove() {
		return 0
	}
	idx := s.ToMove().bitboardIdx()
	added := next.bitboards[idx] &^ s.bitboards[idx]
	if next.bitboards[1-idx] != s.bitboards[1-idx] || added == 0 || added&(added-1) != 0 || added&s.occupied() != 0 {
		return 0
	}
	pos := 1
	for added>>1 != 0 {
		added >>= 1
		pos++
	}
	return pos
}

// Text serialization: side to move followed by the 3x3 grid,
// '_' marks an empty cell
func (s GameState) String() string {
	builder := strings.Builder{}
	fmt.Fprintf(&builder, "%s to move:\n", s.ToMove())
	for pos := PosMin; pos <= PosMax; pos++ {
		builder.WriteByte(' ')
		builder.WriteByte(s.Cell(pos).Symbol())
		if pos%3 == 0 {
			builder.WriteByte('\n')
		}
	}
	return builder.String()
}
