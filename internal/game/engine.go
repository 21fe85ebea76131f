// internal/game/engine.go
//
// Game loop for a single round.
// Responsibilities:
//   - Create rounds with a chosen or random secret (6 guesses of 5 letters).
//   - Validate guesses (length, alphabet, acceptable set, hard mode).
//   - Score guesses and fold the feedback into the round's Knowledge.
//   - Track state transitions: playing → won/lost.
//   - Produce candidates and entropy-ranked recommendations on demand.
//
// A finished game rejects further guesses.
package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// State is the coarse lifecycle of a game.
type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"
	StateLost    State = "lost"
)

// Game holds one round: the secret, the guess history and what it revealed.
type Game struct {
	ID        string
	Answer    words.Word
	Rows      int
	Hard      bool
	StartedAt time.Time
	Finished  bool
	Won       bool

	dict      *words.Dictionary
	knowledge *Knowledge
	ranker    *Ranker
}

// Option configures a Game.
type Option func(*Game)

// WithHardMode turns the hard-mode admissibility rule on or off.
func WithHardMode(on bool) Option { return func(g *Game) { g.Hard = on } }

// WithRanker sets the ranker used by Recommend.
func WithRanker(r *Ranker) Option { return func(g *Game) { g.ranker = r } }

// WithRows overrides the number of guesses allowed.
func WithRows(n int) Option {
	return func(g *Game) {
		if n > 0 {
			g.Rows = n
		}
	}
}

// New starts a round against answer, or a random final word when answer is empty.
func New(dict *words.Dictionary, answer words.Word, opts ...Option) *Game {
	if answer == "" {
		answer = dict.RandomAnswer()
	}
	g := &Game{
		ID:        uuid.NewString(),
		Answer:    answer,
		Rows:      defaultRows,
		StartedAt: time.Now().UTC(),
		dict:      dict,
		knowledge: NewKnowledge(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.ranker == nil {
		g.ranker = NewRanker(1)
	}
	return g
}

// ApplyGuess validates and scores a guess, mutating the game state.
//
// Validation rules:
//   - Game must not be finished.
//   - Guess must be 5 letters a–z and in the acceptable set.
//   - In hard mode the guess must reuse the revealed hints.
//
// State transitions:
//   - An all-Correct pattern finishes the game as won.
//   - Otherwise reaching g.Rows guesses finishes it as lost.
func (g *Game) ApplyGuess(raw string) (Pattern, State, error) {
	if g.Finished {
		return Pattern{}, g.State(), ErrGameFinished
	}
	guess, err := g.dict.Guess(raw)
	if err != nil {
		return Pattern{}, g.State(), err
	}
	if g.Hard && !g.knowledge.Admissible(guess) {
		return Pattern{}, g.State(), fmt.Errorf("%q: %w", guess, ErrNotAdmissible)
	}

	p := Evaluate(g.Answer, guess)
	if err := g.knowledge.Record(guess, p); err != nil {
		return Pattern{}, g.State(), err
	}

	if p.Solved() {
		g.Finished, g.Won = true, true
	} else if g.knowledge.Len() >= g.Rows {
		g.Finished = true
	}
	return p, g.State(), nil
}

// State reports the current lifecycle state.
func (g *Game) State() State {
	if g.Finished {
		if g.Won {
			return StateWon
		}
		return StateLost
	}
	return StatePlaying
}

// Guesses returns the words guessed so far.
func (g *Game) Guesses() []words.Word {
	return lo.Map(g.knowledge.History(), func(r GuessRecord, _ int) words.Word { return r.Guess })
}

func (g *Game) History() []GuessRecord { return g.knowledge.History() }
func (g *Game) Alphabet() *Alphabet { return g.knowledge.Alphabet() }
func (g *Game) Knowledge() *Knowledge { return g.knowledge }

// Candidates returns the acceptable words still consistent with the feedback.
func (g *Game) Candidates() []words.Word {
	return g.knowledge.Candidates(g.dict.Acceptable())
}

// Recommend ranks the current candidates and returns the best k.
func (g *Game) Recommend(k int) []Scored {
	return Top(g.ranker.Rank(g.Candidates()), k)
}
