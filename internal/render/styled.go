package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/stats"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// Palette mirrors the familiar board colours.
var (
	colorCorrect = lipgloss.Color("#538d4e")
	colorPresent = lipgloss.Color("#b59f3b")
	colorAbsent  = lipgloss.Color("#a33a3a")
	colorUnknown = lipgloss.Color("#3a3a3c")
	colorText    = lipgloss.Color("#ffffff")
	colorAccent  = lipgloss.Color("#4a7bd0")
)

// Styled renders with lipgloss for a terminal.
type Styled struct {
	w      io.Writer
	tile   lipgloss.Style
	key    lipgloss.Style
	title  lipgloss.Style
	muted  lipgloss.Style
	errStl lipgloss.Style
}

func NewStyled(w io.Writer) *Styled {
	re := lipgloss.NewRenderer(w)
	return &Styled{
		w: w,
		tile: re.NewStyle().
			Foreground(colorText).
			Bold(true).
			Padding(0, 1),
		key: re.NewStyle().
			Foreground(colorText),
		title: re.NewStyle().
			Foreground(colorAccent).
			Bold(true),
		muted: re.NewStyle().
			Faint(true),
		errStl: re.NewStyle().
			Foreground(colorAbsent).
			Bold(true),
	}
}

func background(v game.Verdict) lipgloss.Color {
	switch v {
	case game.Correct:
		return colorCorrect
	case game.WrongPosition:
		return colorPresent
	case game.Absent:
		return colorAbsent
	default:
		return colorUnknown
	}
}

func (r *Styled) Prompt(msg string) {
	fmt.Fprint(r.w, r.title.Render(msg)+" ")
}

func (r *Styled) Invalid(err error) {
	fmt.Fprintln(r.w, r.errStl.Render("Invalid guess: "+err.Error()))
}

func (r *Styled) Guess(guess words.Word, p game.Pattern, a *game.Alphabet) {
	tiles := make([]string, 0, len(guess))
	for i := 0; i < len(guess); i++ {
		tiles = append(tiles, r.tile.Background(background(p[i])).Render(strings.ToUpper(string(guess[i]))))
	}
	fmt.Fprintln(r.w, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))

	keys := make([]string, 0, 26)
	for l := byte('a'); l <= 'z'; l++ {
		keys = append(keys, r.key.Background(background(a.Status(l))).Render(strings.ToUpper(string(l))))
	}
	fmt.Fprintln(r.w, strings.Join(keys, ""))
}

func (r *Styled) Won(tries int) {
	fmt.Fprintln(r.w, r.title.Render(fmt.Sprintf("CORRECT, guess time: %d", tries)))
}

func (r *Styled) Lost(answer words.Word) {
	fmt.Fprintln(r.w, r.errStl.Render("FAILED, the answer was "+answer.Upper()))
}

func (r *Styled) Candidates(ws []words.Word) {
	const shown = 5
	fmt.Fprintln(r.w, r.title.Render("Possibly correct words:"))
	list := make([]string, 0, shown)
	for i, w := range ws {
		if i == shown {
			break
		}
		list = append(list, w.Upper())
	}
	line := strings.Join(list, " ")
	if len(ws) > shown {
		line += r.muted.Render(fmt.Sprintf(" ... (%d total)", len(ws)))
	}
	fmt.Fprintln(r.w, line)
}

func (r *Styled) Recommend(scored []game.Scored) {
	if len(scored) == 0 {
		return
	}
	fmt.Fprintln(r.w, r.title.Render("I recommend you use:"))
	parts := make([]string, 0, len(scored))
	for _, s := range scored {
		parts = append(parts, fmt.Sprintf("%s(%.2f Bits)", s.Word.Upper(), s.Entropy))
	}
	fmt.Fprintln(r.w, strings.Join(parts, ", "))
}

func (r *Styled) Stats(s stats.Summary) {
	fmt.Fprintln(r.w, r.title.Render("Statistics"))
	fmt.Fprintf(r.w, "Wins: %d  Losses: %d  Success: %.0f%%  Average tries: %.2f\n",
		s.Wins, s.Losses, s.SuccessRate*100, s.AverageTries)
	if len(s.TopWords) == 0 {
		return
	}
	parts := make([]string, 0, len(s.TopWords))
	for _, wc := range s.TopWords {
		parts = append(parts, fmt.Sprintf("%s ×%d", wc.Word, wc.Count))
	}
	fmt.Fprintln(r.w, r.muted.Render("Most used: ")+strings.Join(parts, ", "))
}
