// internal/render/render.go
//
// Output for the interactive commands.
//
// Two renderers share one interface:
//   - Styled: coloured tiles and alphabet row for a human at a terminal.
//   - Plain: terse line-oriented output for scripts and tests, e.g.
//     "RRGRG XXXXXXXXXXXXXXXXXXXXXXXXXX", "CORRECT 3", "FAILED CRANE".
//
// New picks between them by checking whether the writer is a terminal.

package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/stats"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// Renderer presents game progress.
type Renderer interface {
	Prompt(msg string)
	Invalid(err error)
	Guess(guess words.Word, p game.Pattern, a *game.Alphabet)
	Won(tries int)
	Lost(answer words.Word)
	Candidates(ws []words.Word)
	Recommend(scored []game.Scored)
	Stats(s stats.Summary)
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// New returns a Styled renderer for terminals and a Plain one otherwise.
func New(w io.Writer) Renderer {
	if IsTerminal(w) {
		return NewStyled(w)
	}
	return NewPlain(w)
}

// Plain writes machine-readable lines.
type Plain struct{ w io.Writer }

func NewPlain(w io.Writer) *Plain { return &Plain{w: w} }

func (r *Plain) Prompt(string) {}

func (r *Plain) Invalid(error) { fmt.Fprintln(r.w, "INVALID") }

func (r *Plain) Guess(_ words.Word, p game.Pattern, a *game.Alphabet) {
	fmt.Fprintf(r.w, "%s %s\n", p, a)
}

func (r *Plain) Won(tries int) { fmt.Fprintf(r.w, "CORRECT %d\n", tries) }

func (r *Plain) Lost(answer words.Word) { fmt.Fprintf(r.w, "FAILED %s\n", answer.Upper()) }

func (r *Plain) Candidates([]words.Word) {}

func (r *Plain) Recommend(scored []game.Scored) {
	for _, s := range scored {
		fmt.Fprintf(r.w, "%s %.4f\n", s.Word.Upper(), s.Entropy)
	}
}

// Stats prints "<wins> <losses> <avg>" then up to five "WORD n" pairs.
func (r *Plain) Stats(s stats.Summary) {
	fmt.Fprintf(r.w, "%d %d %.2f\n", s.Wins, s.Losses, s.AverageTries)
	parts := make([]string, 0, len(s.TopWords))
	for _, wc := range s.TopWords {
		parts = append(parts, fmt.Sprintf("%s %d", wc.Word, wc.Count))
	}
	fmt.Fprintln(r.w, strings.Join(parts, " "))
}
