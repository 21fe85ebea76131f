package game

import (
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// Scored is a candidate together with its entropy in bits.
type Scored struct {
	Word    words.Word `json:"word"`
	Entropy float64    `json:"entropy"`
}

// Ranker scores candidate pools by expected information gain.
// The outer loop over candidates is sharded across workers; each candidate's
// histogram is independent, so the result does not depend on worker count.
type Ranker struct {
	workers int
}

// NewRanker returns a Ranker using up to workers goroutines.
// workers <= 0 means GOMAXPROCS; 1 runs inline.
func NewRanker(workers int) *Ranker {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Ranker{workers: workers}
}

// Workers returns the configured parallelism.
func (r *Ranker) Workers() int { return r.workers }

// Rank is Ranker.Rank on a single goroutine.
func Rank(candidates []words.Word) []Scored {
	return (&Ranker{workers: 1}).Rank(candidates)
}

// Rank scores every candidate against the rest of the pool and returns them
// sorted by descending entropy, ties broken by ascending word.
func (r *Ranker) Rank(candidates []words.Word) []Scored {
	out := make([]Scored, len(candidates))
	for i, w := range candidates {
		out[i].Word = w
	}
	if len(candidates) > 1 {
		if r.workers <= 1 {
			for i := range candidates {
				out[i].Entropy = Entropy(candidates, i)
			}
		} else {
			var g errgroup.Group
			g.SetLimit(r.workers)
			for i := range candidates {
				g.Go(func() error {
					out[i].Entropy = Entropy(candidates, i)
					return nil
				})
			}
			g.Wait()
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Entropy != out[j].Entropy {
			return out[i].Entropy > out[j].Entropy
		}
		return out[i].Word < out[j].Word
	})
	return out
}

// Entropy is the Shannon entropy, in bits, of the pattern distribution that
// guessing pool[i] induces over every other word of pool taken as the secret.
// Pools of size 0 or 1 have entropy 0.
func Entropy(pool []words.Word, i int) float64 {
	n := len(pool) - 1
	if n <= 0 {
		return 0
	}
	var hist [PatternCount]int
	guess := pool[i]
	for j, secret := range pool {
		if j == i {
			continue
		}
		hist[Evaluate(secret, guess).Index()]++
	}

	total := float64(n)
	h := 0.0
	for _, c := range hist {
		if c == 0 {
			continue
		}
		p := float64(c) / total
		h -= p * math.Log2(p)
	}
	return h
}

// Top returns at most k entries of a ranked list.
func Top(scored []Scored, k int) []Scored {
	if k < 0 || k >= len(scored) {
		return scored
	}
	return scored[:k]
}
