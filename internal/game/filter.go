package game

import (
	"github.com/samber/lo"

	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// Admits reports whether w is consistent with every constraint in c.
func (c *Constraints) Admits(w words.Word) bool {
	return c.admits(w, c.MustContain())
}

func (c *Constraints) admits(w words.Word, mustContain []byte) bool {
	for i := 0; i < wordLen; i++ {
		if c.locked[i] != 0 && w[i] != c.locked[i] {
			return false
		}
		if c.Forbidden(w[i], i) {
			return false
		}
	}

	counts := CountLetters(w)
	for j, n := range c.exact {
		if n >= 0 && int(counts[j]) != int(n) {
			return false
		}
	}
	for _, l := range mustContain {
		if counts.Count(l) == 0 {
			return false
		}
	}
	return true
}

// Filter returns the words of dict consistent with c, in dictionary order.
// Neither c nor dict is modified.
func Filter(c *Constraints, dict []words.Word) []words.Word {
	must := c.MustContain()
	return lo.Filter(dict, func(w words.Word, _ int) bool {
		return c.admits(w, must)
	})
}
