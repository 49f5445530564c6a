package ttt

// Fixed capacity list of legal positions, no allocation on the rollout path
type MoveList struct {
	Moves [NumCells]uint8
	Size  uint8
}

func (ml *MoveList) AppendMove(pos uint8) {
	ml.Moves[ml.Size] = pos
	ml.Size++
}

func (ml MoveList) Slice() []uint8 {
	return ml.Moves[:ml.Size]
}

func (ml MoveList) Len() int {
	return int(ml.Size)
}
