package ttt

type Termination int

const (
	TerminationNone      Termination = 0
	TerminationCrossWon  Termination = 1
	TerminationCircleWon Termination = 2
	TerminationDraw      Termination = 4
)

func (t Termination) String() string {
	switch t {
	case TerminationCrossWon:
		return "X won"
	case TerminationCircleWon:
		return "O won"
	case TerminationDraw:
		return "Draw"
	}
	return "Ongoing"
}

// horizontal, vertical and diagonal patterns as bitboards
var _winningBitboardPatterns = [8]uint16{
	0b111000000, 0b000111000, 0b000000111,
	0b100100100, 0b010010010, 0b001001001,
	0b100010001, 0b001010100,
}

func hasLine(bb uint16) bool {
	for _, pattern := range _winningBitboardPatterns {
		if bb&pattern == pattern {
			return true
		}
	}
	return false
}

// Whether the last mover occupies a full row, column or diagonal.
// The side to move is never checked, the game stops on the first line.
func (s GameState) IsWin() bool {
	return hasLine(s.bitboards[s.LastMover().bitboardIdx()])
}

// Board full and no line for the last mover
func (s GameState) IsDraw() bool {
	return s.occupied() == _fullBoard && !s.IsWin()
}

func (s GameState) IsTerminal() bool {
	return s.IsWin() || s.IsDraw()
}

// Winning mark, None for a draw or an ongoing game
func (s GameState) Winner() Mark {
	if s.IsWin() {
		return s.LastMover()
	}
	return None
}

func (s GameState) Termination() Termination {
	switch {
	case s.IsWin() && s.LastMover() == Cross:
		return TerminationCrossWon
	case s.IsWin():
		return TerminationCircleWon
	case s.IsDraw():
		return TerminationDraw
	}
	return TerminationNone
}
