package game

import (
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// Solver assists with a game played elsewhere: the secret is unknown and the
// feedback for each guess is supplied by the caller.
type Solver struct {
	dict      *words.Dictionary
	knowledge *Knowledge
	ranker    *Ranker
	solved    bool
}

// NewSolver starts an empty solving session over dict's acceptable set.
func NewSolver(dict *words.Dictionary, ranker *Ranker) *Solver {
	if ranker == nil {
		ranker = NewRanker(1)
	}
	return &Solver{dict: dict, knowledge: NewKnowledge(), ranker: ranker}
}

// Observe records a guess and the pattern it received, e.g. ("crane", "RRGRY").
func (s *Solver) Observe(rawGuess, rawPattern string) (Pattern, error) {
	guess, err := words.Parse(rawGuess)
	if err != nil {
		return Pattern{}, err
	}
	p, err := ParsePattern(rawPattern)
	if err != nil {
		return Pattern{}, err
	}
	if err := s.knowledge.Record(guess, p); err != nil {
		return Pattern{}, err
	}
	s.solved = p.Solved()
	return p, nil
}

// Solved reports whether the last observed pattern was all Correct.
func (s *Solver) Solved() bool { return s.solved }

// Candidates returns the acceptable words consistent with every observation.
func (s *Solver) Candidates() []words.Word {
	return s.knowledge.Candidates(s.dict.Acceptable())
}

// Recommend ranks the candidates and returns the best k.
func (s *Solver) Recommend(k int) []Scored {
	return Top(s.ranker.Rank(s.Candidates()), k)
}

func (s *Solver) Knowledge() *Knowledge { return s.knowledge }
