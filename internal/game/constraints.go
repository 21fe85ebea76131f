package game

import (
	"fmt"

	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// Constraints is the accumulated model of what the secret can be.
//
//   - locked[i] is the letter confirmed at position i (0 when none).
//   - forbidden[l] is a bitmask of positions where letter l is known wrong.
//   - exact[l] is the exact number of times l occurs in the secret, or -1.
//
// Letters that must appear somewhere are derived from the Alphabet it was
// built with, never stored here.
type Constraints struct {
	locked    [wordLen]byte
	forbidden [26]uint8
	exact     [26]int8
	alphabet  *Alphabet
}

// NewConstraints returns an empty model reading must-contain letters from alpha.
func NewConstraints(alpha *Alphabet) *Constraints {
	c := &Constraints{alphabet: alpha}
	for i := range c.exact {
		c.exact[i] = -1
	}
	return c
}

// Update folds one scored guess into the model. The update is all or nothing:
// if the feedback contradicts anything derived earlier, the model is left as it
// was and ErrContradictoryConstraint is returned.
func (c *Constraints) Update(guess words.Word, p Pattern) error {
	var matched, absent LetterCounts
	for i := 0; i < wordLen; i++ {
		l := guess[i]
		switch p[i] {
		case Correct:
			if c.locked[i] != 0 && c.locked[i] != l {
				return fmt.Errorf("%w: position %d locked to %q, got %q", ErrContradictoryConstraint, i+1, c.locked[i], l)
			}
			if c.Forbidden(l, i) {
				return fmt.Errorf("%w: %q already ruled out at position %d", ErrContradictoryConstraint, l, i+1)
			}
			matched.Add(l)
		case WrongPosition:
			if c.locked[i] == l {
				return fmt.Errorf("%w: %q is locked at position %d", ErrContradictoryConstraint, l, i+1)
			}
			matched.Add(l)
		case Absent:
			if c.locked[i] == l {
				return fmt.Errorf("%w: %q is locked at position %d", ErrContradictoryConstraint, l, i+1)
			}
			absent.Add(l)
		default:
			return fmt.Errorf("%w: position %d unscored", ErrInvalidPattern, i+1)
		}
	}

	// Derive exact counts before touching any state. Locks are counted as
	// they will be after this guess.
	var lockedAfter LetterCounts
	for i := 0; i < wordLen; i++ {
		switch {
		case p[i] == Correct:
			lockedAfter.Add(guess[i])
		case c.locked[i] != 0:
			lockedAfter.Add(c.locked[i])
		}
	}

	derived := c.exact
	for j := 0; j < 26; j++ {
		l := letter(j)
		n := matched.Count(l)
		known := c.exact[j]
		if absent.Count(l) > 0 {
			if known >= 0 && int(known) != n {
				return fmt.Errorf("%w: %q occurs exactly %d times, feedback implies %d", ErrContradictoryConstraint, l, known, n)
			}
			if n == 0 && c.knownPresent(l) {
				return fmt.Errorf("%w: %q already confirmed in the secret", ErrContradictoryConstraint, l)
			}
			derived[j] = int8(n)
		} else if known >= 0 && n > int(known) {
			return fmt.Errorf("%w: %q occurs exactly %d times, feedback implies at least %d", ErrContradictoryConstraint, l, known, n)
		}
		if locks := lockedAfter.Count(l); derived[j] >= 0 && locks > int(derived[j]) {
			return fmt.Errorf("%w: %q locked at %d positions but occurs exactly %d times", ErrContradictoryConstraint, l, locks, derived[j])
		}
	}

	for i := 0; i < wordLen; i++ {
		switch p[i] {
		case Correct:
			c.locked[i] = guess[i]
		case WrongPosition:
			c.forbidden[idx(guess[i])] |= 1 << i
		}
	}
	c.exact = derived
	return nil
}

func (c *Constraints) knownPresent(l byte) bool {
	if c.alphabet == nil {
		return false
	}
	s := c.alphabet.Status(l)
	return s == Correct || s == WrongPosition
}

// Locked returns the letter confirmed at position i, if any.
func (c *Constraints) Locked(i int) (byte, bool) {
	return c.locked[i], c.locked[i] != 0
}

// Forbidden reports whether letter l is known wrong at position i.
func (c *Constraints) Forbidden(l byte, i int) bool {
	return c.forbidden[idx(l)]&(1<<i) != 0
}

// ExactCount returns the exact number of times l occurs in the secret, if known.
func (c *Constraints) ExactCount(l byte) (int, bool) {
	n := c.exact[idx(l)]
	return int(n), n >= 0
}

// MustContain returns the letters every candidate has to include.
func (c *Constraints) MustContain() []byte {
	if c.alphabet == nil {
		return nil
	}
	return c.alphabet.MustContain()
}
