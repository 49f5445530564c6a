package ttt

import "math/bits"

func (s GameState) occupied() uint16 {
	return s.bitboards[_bitboardCrossIdx] | s.bitboards[_bitboardCircleIdx]
}

// Positions of every empty cell, in ascending order
func (s GameState) LegalMoves() MoveList {
	var movelist MoveList

	free := uint(_fullBoard ^ s.occupied())
	for free != 0 {
		movelist.AppendMove(uint8(bits.TrailingZeros(free)) + 1)
		free &= free - 1
	}

	return movelist
}

// One successor per empty cell, recomputed on every call.
// Empty iff the board is full.
func (s GameState) LegalSuccessors() []GameState {
	moves := s.LegalMoves()
	successors := make([]GameState, 0, moves.Size)
	for _, pos := range moves.Slice() {
		successors = append(successors, s.play(int(pos)))
	}
	return successors
}

// Number of empty cells
func (s GameState) EmptyCount() int {
	return NumCells - bits.OnesCount16(s.occupied())
}
