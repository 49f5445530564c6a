package mcts

import "errors"

// Other types, which didn't fit to MCTS or Node files

// Result of the rollout: +1 when the reference mark wins, -1 when its
// opponent wins, 0 on a draw. Raw, never adjusted to a node's perspective.
type Result int

const (
	ResultLoss Result = -1
	ResultDraw Result = 0
	ResultWin  Result = 1
)

type SeedGeneratorFnType func() int64

// Returned when the searched state is terminal, there is no move to recommend
var ErrNoRecommendation = errors.New("no recommendation: position is terminal")
