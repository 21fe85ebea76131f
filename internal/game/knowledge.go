package game

import "github.com/robalobadob/wordle/apps/solver/internal/words"

// Knowledge is everything learned in one round: the alphabet, the constraint
// model built on it, and the ordered guess history. It is owned by a single
// Game or Solver and must be used through its pointer.
type Knowledge struct {
	alphabet    Alphabet
	constraints *Constraints
	history     []GuessRecord
}

// NewKnowledge returns knowledge for a fresh round: every letter Unknown,
// no constraints, empty history.
func NewKnowledge() *Knowledge {
	k := &Knowledge{}
	k.constraints = NewConstraints(&k.alphabet)
	return k
}

// Record folds a scored guess into the model and alphabet and appends it to the
// history. A contradictory pattern changes nothing.
func (k *Knowledge) Record(guess words.Word, p Pattern) error {
	if err := k.constraints.Update(guess, p); err != nil {
		return err
	}
	k.alphabet.Observe(guess, p)
	k.history = append(k.history, GuessRecord{Guess: guess, Pattern: p})
	return nil
}

// Admissible reports whether guess satisfies hard mode given the history so far.
func (k *Knowledge) Admissible(guess words.Word) bool {
	return IsAdmissible(guess, k.Last(), &k.alphabet)
}

// Candidates filters dict down to the words consistent with everything recorded.
func (k *Knowledge) Candidates(dict []words.Word) []words.Word {
	return Filter(k.constraints, dict)
}

func (k *Knowledge) Alphabet() *Alphabet { return &k.alphabet }
func (k *Knowledge) Constraints() *Constraints { return k.constraints }
func (k *Knowledge) History() []GuessRecord { return k.history }
func (k *Knowledge) Len() int { return len(k.history) }

// Last returns the most recent record, or nil before the first guess.
func (k *Knowledge) Last() *GuessRecord {
	if len(k.history) == 0 {
		return nil
	}
	return &k.history[len(k.history)-1]
}
