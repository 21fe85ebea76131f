// internal/game/types.go
//
// Core type definitions for the engine.
// Defines:
//   - Verdict: per-position outcome of a guess, and the alphabet-wide Unknown.
//   - Pattern: the 5 verdicts one guess produced.
//   - LetterCounts: fixed 26-slot multiset over a–z.
//   - GuessRecord: a guess paired with its pattern.

package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

const (
	defaultRows = 6
	wordLen     = words.Length

	// PatternCount is 3^5, the number of distinct patterns.
	PatternCount = 243
)

var (
	ErrContradictoryConstraint = errors.New("feedback contradicts earlier constraints")
	ErrGameFinished            = errors.New("game finished")
	ErrNotAdmissible           = errors.New("guess does not reuse revealed hints")
	ErrInvalidPattern          = errors.New("pattern must be 5 symbols of G, Y or R")
)

// Verdict is the status of a letter, either at one position of a guess or
// as the best-known status of a letter across the game.
type Verdict uint8

const (
	Unknown Verdict = iota
	Absent
	WrongPosition
	Correct
)

// Priority orders verdicts for merging: Correct > WrongPosition > Absent > Unknown.
func Priority(v Verdict) uint8 {
	switch v {
	case Correct:
		return 3
	case WrongPosition:
		return 2
	case Absent:
		return 1
	default:
		return 0
	}
}

// Symbol is the one-letter code for v: G, Y, R or X.
func (v Verdict) Symbol() byte {
	switch v {
	case Correct:
		return 'G'
	case WrongPosition:
		return 'Y'
	case Absent:
		return 'R'
	default:
		return 'X'
	}
}

func (v Verdict) String() string {
	switch v {
	case Correct:
		return "correct"
	case WrongPosition:
		return "present"
	case Absent:
		return "absent"
	default:
		return "unknown"
	}
}

// digit is the base-3 digit of v inside a pattern index.
func (v Verdict) digit() int {
	switch v {
	case Correct:
		return 2
	case WrongPosition:
		return 1
	default:
		return 0
	}
}

// Pattern holds the verdicts for each position of one guess.
type Pattern [wordLen]Verdict

// ParsePattern reads 5 symbols (G, Y, R; case-insensitive).
func ParsePattern(s string) (Pattern, error) {
	var p Pattern
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != wordLen {
		return p, fmt.Errorf("%q: %w", s, ErrInvalidPattern)
	}
	for i := 0; i < wordLen; i++ {
		switch s[i] {
		case 'G':
			p[i] = Correct
		case 'Y':
			p[i] = WrongPosition
		case 'R':
			p[i] = Absent
		default:
			return p, fmt.Errorf("%q: %w", s, ErrInvalidPattern)
		}
	}
	return p, nil
}

func (p Pattern) String() string {
	var b [wordLen]byte
	for i, v := range p {
		b[i] = v.Symbol()
	}
	return string(b[:])
}

// Index encodes p as a base-3 integer in [0, PatternCount), position i weighted 3^i.
func (p Pattern) Index() int {
	idx, base := 0, 1
	for _, v := range p {
		idx += v.digit() * base
		base *= 3
	}
	return idx
}

// Solved reports whether every position is Correct.
func (p Pattern) Solved() bool {
	for _, v := range p {
		if v != Correct {
			return false
		}
	}
	return true
}

// Marks returns the per-position verdict names.
func (p Pattern) Marks() []string {
	out := make([]string, wordLen)
	for i, v := range p {
		out[i] = v.String()
	}
	return out
}

// LetterCounts is a multiset over the closed a–z alphabet.
type LetterCounts [26]uint8

// CountLetters returns the multiset of letters in w.
func CountLetters(w words.Word) LetterCounts {
	var c LetterCounts
	for i := 0; i < len(w); i++ {
		c.Add(w[i])
	}
	return c
}

// Add increments the count for letter l.
func (c *LetterCounts) Add(l byte) { c[idx(l)]++ }

// Take decrements the count for l if it is positive and reports whether it did.
func (c *LetterCounts) Take(l byte) bool {
	i := idx(l)
	if c[i] == 0 {
		return false
	}
	c[i]--
	return true
}

// Count returns how many times l is in the multiset.
func (c *LetterCounts) Count(l byte) int { return int(c[idx(l)]) }

// GuessRecord pairs a guess with the pattern it produced.
type GuessRecord struct {
	Guess   words.Word `json:"guess"`
	Pattern Pattern    `json:"-"`
}

// idx maps a lowercase ASCII letter to 0..25.
// Inputs are validated to a–z by words.Parse.
func idx(l byte) int { return int(l - 'a') }

// letter maps 0..25 back to a–z.
func letter(i int) byte { return byte('a' + i) }
