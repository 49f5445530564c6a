package mcts

import (
	"fmt"

	"github.com/IlikeChooros/go-uct-ttt/pkg/ttt"
)

// Light playout: apply uniformly random successors until the last mover has
// a line or the board is full. The result is raw, relative to ReferenceMark.
func (e *Engine) rollout(state ttt.GameState) Result {
	for !state.IsWin() {
		// board full without a line
		if state.IsDraw() {
			return ResultDraw
		}

		successors := state.LegalSuccessors()
		if len(successors) == 0 {
			panic(fmt.Sprintf("[MCTS] rollout: no successors on a non-terminal board\n%s", state))
		}
		state = successors[e.random.Intn(len(successors))]
	}

	if state.LastMover() == ReferenceMark {
		return ResultWin
	}
	return ResultLoss
}
