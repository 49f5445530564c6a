package bench

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/IlikeChooros/go-uct-ttt/pkg/mcts"
	"github.com/IlikeChooros/go-uct-ttt/pkg/ttt"
)

// Anything able to pick a successor of a non-terminal state. Players are
// used by a single worker at a time, Clone gives every worker its own copy.
type Player interface {
	Name() string
	Move(ctx context.Context, state ttt.GameState) (ttt.GameState, error)
	Clone(seed int64) Player
}

// UCT engine as an arena player, every move runs a new search with the
// player's limits
type EnginePlayer struct {
	name   string
	limits mcts.Limits
	engine *mcts.Engine
}

func NewEnginePlayer(name string, limits *mcts.Limits) *EnginePlayer {
	if limits == nil {
		limits = mcts.DefaultLimits()
	}
	player := &EnginePlayer{name: name, limits: *limits}
	player.engine = mcts.NewEngine().SetLimits(&player.limits)
	return player
}

func (p *EnginePlayer) Name() string {
	return p.name
}

func (p *EnginePlayer) Engine() *mcts.Engine {
	return p.engine
}

func (p *EnginePlayer) Move(ctx context.Context, state ttt.GameState) (ttt.GameState, error) {
	result, err := p.engine.SetContext(ctx).Search(state)
	if err != nil {
		return ttt.GameState{}, fmt.Errorf("%s: %w", p.name, err)
	}
	return result.State, nil
}

func (p *EnginePlayer) Clone(seed int64) Player {
	clone := NewEnginePlayer(p.name, &p.limits)
	clone.engine.SetRand(rand.New(rand.NewSource(seed)))
	return clone
}

// Uniformly random legal moves, the baseline opponent
type RandomPlayer struct {
	name   string
	random *rand.Rand
}

func NewRandomPlayer(name string, seed int64) *RandomPlayer {
	return &RandomPlayer{name: name, random: rand.New(rand.NewSource(seed))}
}

func (p *RandomPlayer) Name() string {
	return p.name
}

func (p *RandomPlayer) Move(_ context.Context, state ttt.GameState) (ttt.GameState, error) {
	successors := state.LegalSuccessors()
	if state.IsTerminal() || len(successors) == 0 {
		return ttt.GameState{}, fmt.Errorf("%s: %w", p.name, mcts.ErrNoRecommendation)
	}
	return successors[p.random.Intn(len(successors))], nil
}

func (p *RandomPlayer) Clone(seed int64) Player {
	return NewRandomPlayer(p.name, seed)
}
