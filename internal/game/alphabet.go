package game

import "github.com/robalobadob/wordle/apps/solver/internal/words"

// Alphabet tracks the best-known status of each letter across a game.
// A letter's status only ever moves up in Priority.
type Alphabet [26]Verdict

// Observe merges one scored guess into the alphabet.
func (a *Alphabet) Observe(guess words.Word, p Pattern) {
	for i := 0; i < wordLen; i++ {
		j := idx(guess[i])
		if Priority(p[i]) > Priority(a[j]) {
			a[j] = p[i]
		}
	}
}

// Status returns the best-known status of letter l.
func (a *Alphabet) Status(l byte) Verdict { return a[idx(l)] }

// MustContain returns the letters whose best status is WrongPosition, a–z order.
func (a *Alphabet) MustContain() []byte {
	var out []byte
	for i, v := range a {
		if v == WrongPosition {
			out = append(out, letter(i))
		}
	}
	return out
}

// String returns 26 status symbols, one per letter a–z.
func (a *Alphabet) String() string {
	var b [26]byte
	for i, v := range a {
		b[i] = v.Symbol()
	}
	return string(b[:])
}
