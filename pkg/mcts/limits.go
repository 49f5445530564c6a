package mcts

import (
	"encoding/json"
	"math"
	"strings"
)

type Limits struct {
	Cycles   uint32 `json:"cycles"`
	Nodes    uint32 `json:"nodes"`
	Movetime int    `json:"movetime"` // ms, negative for none
	Infinite bool   `json:"infinite"`
}

func (l Limits) String() string {
	builder := strings.Builder{}
	_ = json.NewEncoder(&builder).Encode(l)
	return builder.String()
}

const (
	DefaultNodeLimit     uint32 = math.MaxUint32
	DefaultMovetimeLimit int    = -1
	DefaultCyclesLimit   uint32 = DefaultIterations
)

// Bounded by DefaultIterations cycles, no time or node limit
func DefaultLimits() *Limits {
	return &Limits{
		Cycles:   DefaultCyclesLimit,
		Nodes:    DefaultNodeLimit,
		Movetime: DefaultMovetimeLimit,
		Infinite: false,
	}
}

// Set the number of selection-rollout-backpropagation cycles, at least 1
func (l *Limits) SetCycles(cycles uint32) *Limits {
	l.Cycles = max(1, cycles)
	l.Infinite = false
	return l
}

// Set the maximum number of nodes the tree can grow to
func (l *Limits) SetNodes(nodes uint32) *Limits {
	l.Nodes = nodes
	l.Infinite = false
	return l
}

// Set the maximum time for engine to think, in milliseconds
func (l *Limits) SetMovetime(movetime int) *Limits {
	l.Movetime = movetime
	l.Infinite = false
	return l
}

// Search until stopped by the user or by context cancellation,
// other limits are ignored
func (l *Limits) SetInfinite(infinite bool) *Limits {
	l.Infinite = infinite
	return l
}
