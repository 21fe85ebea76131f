// Package stats summarises a session log.
package stats

import (
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/robalobadob/wordle/apps/solver/internal/store"
)

// TopN is how many favourite words Summarize reports.
const TopN = 5

// WordCount is a guessed word and how often it was used.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Summary is the aggregate over every logged game.
type Summary struct {
	Rounds       int         `json:"rounds"`
	Wins         int         `json:"wins"`
	Losses       int         `json:"losses"`
	SuccessRate  float64     `json:"successRate"`
	AverageTries float64     `json:"averageTries"` // over won games only
	TopWords     []WordCount `json:"topWords"`
}

// Summarize computes a Summary. A game counts as won when its last guess is
// its answer.
func Summarize(entries []store.Entry) Summary {
	s := Summary{Rounds: len(entries), TopWords: []WordCount{}}
	if len(entries) == 0 {
		return s
	}

	won := lo.Filter(entries, func(e store.Entry, _ int) bool { return isWon(e) })
	s.Wins = len(won)
	s.Losses = s.Rounds - s.Wins
	s.SuccessRate = float64(s.Wins) / float64(s.Rounds)
	if s.Wins > 0 {
		tries := lo.SumBy(won, func(e store.Entry) int { return e.Tries() })
		s.AverageTries = float64(tries) / float64(s.Wins)
	}

	all := lo.FlatMap(entries, func(e store.Entry, _ int) []string {
		return lo.Map(e.Guesses, func(w string, _ int) string { return strings.ToUpper(w) })
	})
	counts := lo.MapToSlice(lo.CountValues(all), func(w string, n int) WordCount {
		return WordCount{Word: w, Count: n}
	})
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Word < counts[j].Word
	})
	if len(counts) > TopN {
		counts = counts[:TopN]
	}
	s.TopWords = counts
	return s
}

func isWon(e store.Entry) bool {
	if len(e.Guesses) == 0 {
		return false
	}
	return strings.EqualFold(e.Guesses[len(e.Guesses)-1], e.Answer)
}
