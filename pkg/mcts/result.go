package mcts

import (
	"encoding/json"
	"slices"
	"strings"

	"github.com/IlikeChooros/go-uct-ttt/pkg/ttt"
)

// Statistics of one root child
type SearchLine struct {
	Position int     `json:"position"`
	Visits   int32   `json:"visits"`
	Score    float64 `json:"score"` // mean result from the side to move
	Terminal bool    `json:"terminal"`
}

type SearchResult struct {
	// Recommended successor of the searched state
	State      ttt.GameState `json:"-"`
	Notation   string        `json:"notation"`
	Position   int           `json:"position"`
	Eval       float64       `json:"eval"`
	Pv         []int         `json:"pv"`
	Cycles     int           `json:"cycles"`
	Size       int           `json:"size"`
	MaxDepth   int           `json:"maxdepth"`
	TimeMs     int           `json:"time_ms"`
	Cps        uint64        `json:"cps"`
	StopReason StopReason    `json:"stop_reason"`
	Lines      []SearchLine  `json:"lines"`
}

func (r SearchResult) String() string {
	builder := strings.Builder{}
	_ = json.NewEncoder(&builder).Encode(r)
	return builder.String()
}

// Root children statistics, most visited first
func rootLines(tree *Tree) []SearchLine {
	root := tree.Root()
	lines := make([]SearchLine, 0, len(root.order))
	for _, idx := range root.order {
		child := tree.Node(idx)
		lines = append(lines, SearchLine{
			Position: root.state.MoveTo(child.state),
			Visits:   child.Visits(),
			Score:    UCB1(root.Visits(), child, ExploitationParam),
			Terminal: child.terminal,
		})
	}

	slices.SortStableFunc(lines, func(a, b SearchLine) int {
		if a.Visits != b.Visits {
			if a.Visits > b.Visits {
				return -1
			}
			return 1
		}
		return a.Position - b.Position
	})
	return lines
}
