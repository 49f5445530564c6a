package mcts

import (
	"time"

	"github.com/IlikeChooros/go-uct-ttt/pkg/ttt"
)

// Exploration parameter used in UCB1 formula during tree descent, higher values
// increase exploration while lower values increase exploitation.
// Default is 2
var ExplorationParam float64 = 2

// Coefficient used when picking the recommended move, the exploration term
// vanishes and the same UCB1 formula ranks children by their mean score
const ExploitationParam float64 = 0

// Number of iterations run by Find when no other limit is set
const DefaultIterations uint32 = 1000

// Mark whose wins count as +1 in rollouts, the UCB1 sign is taken relative to it
var ReferenceMark = ttt.Cross

// Set the exploration parameter used in UCB1 formula
func SetExplorationParam(c float64) {
	ExplorationParam = max(0.0, c)
}

var SeedGeneratorFn SeedGeneratorFnType = func() int64 {
	return time.Now().UnixNano()
}

// Set custom seed generator function for random number generators in MCTS,
// by default uses current time in nanoseconds
func SetSeedGeneratorFn(f SeedGeneratorFnType) {
	if f != nil {
		SeedGeneratorFn = f
	}
}
