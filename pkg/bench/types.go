package bench

import (
	"encoding/json"
	"strings"
	"sync/atomic"

	"github.com/IlikeChooros/go-uct-ttt/pkg/ttt"
)

type VersusMatchResult int

const (
	VersusPl1Win VersusMatchResult = 1
	VersusPl2Win VersusMatchResult = -1
	VersusDraw   VersusMatchResult = 0
)

func (r VersusMatchResult) String() string {
	switch r {
	case VersusPl1Win:
		return "player1"
	case VersusPl2Win:
		return "player2"
	}
	return "draw"
}

func (r VersusMatchResult) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

type VersusArenaStats struct {
	p1Wins           uint32
	p2Wins           uint32
	draws            uint32
	firstToMoveWins  uint32
	secondToMoveWins uint32
}

func (vas *VersusArenaStats) Total() int {
	return vas.P1Wins() + vas.P2Wins() + vas.Draws()
}

func (vas *VersusArenaStats) P1Wins() int {
	return int(atomic.LoadUint32(&vas.p1Wins))
}

func (vas *VersusArenaStats) P2Wins() int {
	return int(atomic.LoadUint32(&vas.p2Wins))
}

func (vas *VersusArenaStats) Draws() int {
	return int(atomic.LoadUint32(&vas.draws))
}

func (vas *VersusArenaStats) FirstToMoveWins() int {
	return int(atomic.LoadUint32(&vas.firstToMoveWins))
}

func (vas *VersusArenaStats) SecondToMoveWins() int {
	return int(atomic.LoadUint32(&vas.secondToMoveWins))
}

func (vas *VersusArenaStats) record(game GameRecord) {
	switch game.Result {
	case VersusDraw:
		atomic.AddUint32(&vas.draws, 1)
		return
	case VersusPl1Win:
		atomic.AddUint32(&vas.p1Wins, 1)
	case VersusPl2Win:
		atomic.AddUint32(&vas.p2Wins, 1)
	}

	if (game.Result == VersusPl1Win) == game.P1First {
		atomic.AddUint32(&vas.firstToMoveWins, 1)
	} else {
		atomic.AddUint32(&vas.secondToMoveWins, 1)
	}
}

// One finished (or interrupted) game
type GameRecord struct {
	ID          string            `json:"id"`
	Worker      int               `json:"worker"`
	P1First     bool              `json:"player1_first"`
	Moves       []int             `json:"moves"`
	Final       string            `json:"final"`
	Termination string            `json:"termination"`
	Result      VersusMatchResult `json:"result"`
}

// Score of player 1: 1 for a win, 0.5 for a draw, 0 for a loss
func (g GameRecord) Score() float64 {
	switch g.Result {
	case VersusPl1Win:
		return 1
	case VersusPl2Win:
		return 0
	}
	return 0.5
}

type VersusWorkerInfo struct {
	WorkerID      int
	NGames        int
	FinishedGames int
	Game          GameRecord
	P1Name        string
	P2Name        string
}

type VersusSummaryInfo struct {
	TotalGames       int     `json:"total_games"`
	P1Wins           int     `json:"player1_wins"`
	P2Wins           int     `json:"player2_wins"`
	FirstToMoveWins  int     `json:"first_to_move_wins"`
	SecondToMoveWins int     `json:"second_to_move_wins"`
	Draws            int     `json:"draws"`
	Workers          int     `json:"workers"`
	P1Name           string  `json:"player1_name"`
	P2Name           string  `json:"player2_name"`
	P1Score          float64 `json:"player1_score"`
	P1ScoreStdDev    float64 `json:"player1_score_stddev"`
	P1ScoreLow       float64 `json:"player1_score_ci95_low"`
	P1ScoreHigh      float64 `json:"player1_score_ci95_high"`
	MeanGameLength   float64 `json:"mean_game_length"`
}

func (s VersusSummaryInfo) String() string {
	builder := strings.Builder{}
	encoder := json.NewEncoder(&builder)
	encoder.SetIndent("", "  ")
	_ = encoder.Encode(s)
	return builder.String()
}

// maps the final state to which player won, given who moved first
func toAgentResult(final ttt.GameState, firstMark ttt.Mark, p1WentFirst bool) VersusMatchResult {
	if !final.IsWin() {
		return VersusDraw
	}
	if (final.Winner() == firstMark) == p1WentFirst {
		return VersusPl1Win
	}
	return VersusPl2Win
}
