package mcts

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/IlikeChooros/go-uct-ttt/pkg/ttt"
)

// UCT move recommender. Every search builds a fresh tree rooted at the
// analyzed state and drops it on return, nothing is shared between calls.
// An Engine is not safe for concurrent use, give each goroutine its own.
type Engine struct {
	Limiter          LimiterLike
	listener         *StatsListener
	logger           zerolog.Logger
	random           *rand.Rand
	explorationParam float64
}

func NewEngine() *Engine {
	listener := NewStatsListener()
	return &Engine{
		Limiter:          NewLimiter(),
		listener:         &listener,
		logger:           zerolog.Nop(),
		random:           rand.New(rand.NewSource(SeedGeneratorFn())),
		explorationParam: ExplorationParam,
	}
}

func (e *Engine) SetLimits(limits *Limits) *Engine {
	e.Limiter.SetLimits(limits)
	return e
}

func (e *Engine) Limits() *Limits {
	return e.Limiter.Limits()
}

// Adds custom context to the limiter, enabling cancellation through it.
// Cancellation is checked between iterations, the move is then picked
// from the statistics gathered so far.
func (e *Engine) SetContext(ctx context.Context) *Engine {
	e.Limiter.SetContext(ctx)
	return e
}

func (e *Engine) SetListener(listener StatsListener) *Engine {
	*e.listener = listener
	return e
}

func (e *Engine) StatsListener() *StatsListener {
	return e.listener
}

func (e *Engine) SetLogger(logger zerolog.Logger) *Engine {
	e.logger = logger
	return e
}

// Replace the random number generator used for tie-breaks and rollouts
func (e *Engine) SetRand(r *rand.Rand) *Engine {
	if r != nil {
		e.random = r
	}
	return e
}

func (e *Engine) SetExplorationParam(c float64) *Engine {
	e.explorationParam = max(0, c)
	return e
}

// Stop the running search, or the next one when none is running. Safe to
// call from another goroutine. The request is consumed when a search
// returns, a stopped search still completes its first cycle.
func (e *Engine) Stop() {
	e.Limiter.SetStop(true)
}

// Recommended successor of 'state', false when 'state' is terminal.
// The search runs for the engine's Limits, DefaultIterations (1000) cycles
// unless changed with SetLimits, see FindN for a one-off bound.
func (e *Engine) Find(state ttt.GameState) (ttt.GameState, bool) {
	result, err := e.Search(state)
	if err != nil {
		return ttt.GameState{}, false
	}
	return result.State, true
}

// Find bounded by 'iterations' cycles, the other limits stay as set.
// The engine's limits are restored on return.
func (e *Engine) FindN(state ttt.GameState, iterations uint32) (ttt.GameState, bool) {
	prev := e.Limits()
	limits := *prev
	e.SetLimits(limits.SetCycles(iterations))
	defer e.SetLimits(prev)
	return e.Find(state)
}

// Run the search on a new tree rooted at 'state', until the limits are
// reached, then pick the root child with the best mean score (UCB1 with
// ExploitationParam). Fails with ErrNoRecommendation on a terminal state.
func (e *Engine) Search(state ttt.GameState) (SearchResult, error) {
	if state.IsTerminal() {
		e.logger.Debug().
			Str("notation", state.Notation()).
			Stringer("termination", state.Termination()).
			Msg("search skipped, position is terminal")
		return SearchResult{}, fmt.Errorf("%w: %s", ErrNoRecommendation, state.Termination())
	}

	tree := NewTree(state)
	cycles := e.search(tree)
	return e.result(tree, cycles), nil
}

// Actual search function implementation, simply calls:
//
// 1. selection - descend to the most promising node, expanding one new child
//
// 2. rollout - random playout from the selected node's state
//
// 3. backpropagate - add the result to every node up to the root
//
// Until the limiter says stop. A non-terminal root always gets at least one
// cycle, so it has a child to recommend.
func (e *Engine) search(tree *Tree) uint32 {
	e.Limiter.Reset()
	cycles := uint32(0)

	for cycles == 0 || e.Limiter.Ok(uint32(tree.Size()), cycles) {
		node := e.selection(tree)
		tree.backpropagate(node, e.rollout(tree.Node(node).state))

		cycles++
		e.listener.invokeCycle(e, tree, cycles)
	}

	e.Limiter.EvaluateStopReason(uint32(tree.Size()), cycles)
	e.Limiter.SetStop(false)
	e.listener.invokeStop(e, tree, cycles)
	return cycles
}

// Descend from the root: at a fully expanded node follow the best UCB1 child,
// at any other non-terminal node expand and return the new child.
// Terminal nodes are returned as they are.
func (e *Engine) selection(tree *Tree) NodeIndex {
	idx := rootIndex
	for {
		node := tree.Node(idx)
		if node.terminal {
			return idx
		}
		if !node.fullyExpanded {
			return tree.expand(idx)
		}
		idx = tree.bestChild(idx, e.explorationParam, e.random)
	}
}

func (e *Engine) result(tree *Tree, cycles uint32) SearchResult {
	best := tree.bestChild(rootIndex, ExploitationParam, e.random)
	if best == noParent {
		panic(fmt.Sprintf("[MCTS] result: non-terminal root without children after %d cycles", cycles))
	}

	root := tree.Root()
	bestNode := tree.Node(best)
	elapsed := e.Limiter.Elapsed()
	result := SearchResult{
		State:      bestNode.state,
		Notation:   bestNode.state.Notation(),
		Position:   root.state.MoveTo(bestNode.state),
		Eval:       UCB1(root.Visits(), bestNode, ExploitationParam),
		Pv:         tree.Pv(),
		Cycles:     int(cycles),
		Size:       tree.Size(),
		MaxDepth:   tree.MaxDepth(),
		TimeMs:     int(elapsed),
		Cps:        cyclesPerSecond(cycles, elapsed),
		StopReason: e.Limiter.StopReason(),
		Lines:      rootLines(tree),
	}

	e.logger.Debug().
		Str("notation", root.state.Notation()).
		Int("position", result.Position).
		Float64("eval", result.Eval).
		Int("cycles", result.Cycles).
		Int("size", result.Size).
		Int("maxdepth", result.MaxDepth).
		Uint64("cps", result.Cps).
		Stringer("stop", result.StopReason).
		Msg("search finished")

	return result
}
