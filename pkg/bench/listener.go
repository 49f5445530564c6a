package bench

import (
	"fmt"
	"io"
	"sync"

	"github.com/muesli/termenv"
)

// Callbacks of the arena. OnFinishedGame and OnFinishedWork are called from
// the worker goroutines, implementations must be safe for concurrent use.
type ListenerLike interface {
	OnStart()
	OnFinishedGame(info VersusWorkerInfo)
	OnFinishedWork(info VersusWorkerInfo)
	Summary(summary VersusSummaryInfo)
	OnEnd()
}

type NopListener struct{}

func (NopListener) OnStart() {}
func (NopListener) OnFinishedGame(VersusWorkerInfo) {}
func (NopListener) OnFinishedWork(VersusWorkerInfo) {}
func (NopListener) Summary(VersusSummaryInfo) {}
func (NopListener) OnEnd() {}

// Prints one coloured line per finished game and the summary at the end
type ProgressListener struct {
	mu     sync.Mutex
	output *termenv.Output
}

func NewProgressListener(w io.Writer, opts ...termenv.OutputOption) *ProgressListener {
	return &ProgressListener{output: termenv.NewOutput(w, opts...)}
}

func (l *ProgressListener) OnStart() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output.HideCursor()
}

func (l *ProgressListener) resultStyle(info VersusWorkerInfo) termenv.Style {
	text := "draw"
	color := "3"
	switch info.Game.Result {
	case VersusPl1Win:
		text, color = info.P1Name+" won", "2"
	case VersusPl2Win:
		text, color = info.P2Name+" won", "1"
	}
	return l.output.String(text).Foreground(l.output.Color(color))
}

func (l *ProgressListener) OnFinishedGame(info VersusWorkerInfo) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.output, "[worker %d] %d/%d %s %v %s\n",
		info.WorkerID, info.FinishedGames, info.NGames,
		l.output.String(info.Game.ID[:8]).Faint(), info.Game.Moves, l.resultStyle(info))
}

func (l *ProgressListener) OnFinishedWork(info VersusWorkerInfo) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.output, "[worker %d] done, %d games\n", info.WorkerID, info.FinishedGames)
}

func (l *ProgressListener) Summary(summary VersusSummaryInfo) {
	l.mu.Lock()
	defer l.mu.Unlock()

	bold := func(s string) termenv.Style { return l.output.String(s).Bold() }
	fmt.Fprintf(l.output, "\n%s\n", bold(fmt.Sprintf("%s vs %s, %d games", summary.P1Name, summary.P2Name, summary.TotalGames)))
	fmt.Fprintf(l.output, "  %s wins: %d\n  %s wins: %d\n  draws: %d\n",
		summary.P1Name, summary.P1Wins, summary.P2Name, summary.P2Wins, summary.Draws)
	fmt.Fprintf(l.output, "  first to move wins: %d, second to move wins: %d\n",
		summary.FirstToMoveWins, summary.SecondToMoveWins)
	fmt.Fprintf(l.output, "  %s score: %.3f (95%% CI %.3f - %.3f), mean game length %.2f\n",
		summary.P1Name, summary.P1Score, summary.P1ScoreLow, summary.P1ScoreHigh, summary.MeanGameLength)
}

func (l *ProgressListener) OnEnd() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output.ShowCursor()
}
