// Terminal rendering of tic-tac-toe positions. Colours are picked by termenv
// from the capabilities of the output, piping to a file gives plain text.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/IlikeChooros/go-uct-ttt/pkg/ttt"
)

const (
	_crossColor  = "#e06c75"
	_circleColor = "#61afef"
	_hintColor   = "241"
)

type Renderer struct {
	output *termenv.Output
}

func NewRenderer(w io.Writer, opts ...termenv.OutputOption) *Renderer {
	return &Renderer{output: termenv.NewOutput(w, opts...)}
}

// Renderer without any escape sequences
func NewPlainRenderer(w io.Writer) *Renderer {
	return NewRenderer(w, termenv.WithProfile(termenv.Ascii))
}

func (r *Renderer) mark(m ttt.Mark) string {
	style := r.output.String(m.String()).Bold()
	switch m {
	case ttt.Cross:
		style = style.Foreground(r.output.Color(_crossColor))
	case ttt.Circle:
		style = style.Foreground(r.output.Color(_circleColor))
	}
	return style.String()
}

// Board as text: header with the side to move, then the grid, with empty
// cells showing their position number
func (r *Renderer) Board(state ttt.GameState) string {
	builder := strings.Builder{}
	fmt.Fprintf(&builder, " %s to move\n", r.mark(state.ToMove()))

	for row := 0; row < 3; row++ {
		cells := make([]string, 0, 3)
		for col := 1; col <= 3; col++ {
			pos := ttt.PositionOf(row, col)
			if m := state.Cell(pos); m != ttt.None {
				cells = append(cells, r.mark(m))
				continue
			}
			hint := r.output.String(fmt.Sprint(pos)).Faint().Foreground(r.output.Color(_hintColor))
			cells = append(cells, hint.String())
		}
		builder.WriteString(" " + strings.Join(cells, " | ") + "\n")
		if row != 2 {
			builder.WriteString("---+---+---\n")
		}
	}
	return builder.String()
}

// Outcome line of a finished game, empty string for an ongoing one
func (r *Renderer) Outcome(state ttt.GameState) string {
	switch state.Termination() {
	case ttt.TerminationCrossWon, ttt.TerminationCircleWon:
		return fmt.Sprintf("%s wins", r.mark(state.Winner()))
	case ttt.TerminationDraw:
		return r.output.String("Draw").Bold().String()
	}
	return ""
}

func (r *Renderer) Render(state ttt.GameState) error {
	text := r.Board(state)
	if outcome := r.Outcome(state); outcome != "" {
		text += " " + outcome + "\n"
	}
	_, err := io.WriteString(r.output, text+"\n")
	return err
}

// Write a line in the given colour ("" for the default one)
func (r *Renderer) Println(color, text string) error {
	style := r.output.String(text)
	if color != "" {
		style = style.Foreground(r.output.Color(color))
	}
	_, err := fmt.Fprintln(r.output, style.String())
	return err
}
