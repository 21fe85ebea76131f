package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

func testDictionary(t *testing.T) *words.Dictionary {
	t.Helper()
	d, err := words.NewDictionary(
		[]string{"crane", "slate", "trace", "speed"},
		[]string{"crane", "slate", "trace", "speed", "brace", "grade", "erase", "geese", "bulky", "spice"},
	)
	require.NoError(t, err)
	return d
}

func TestGameWin(t *testing.T) {
	g := New(testDictionary(t), "slate")
	assert.NotEmpty(t, g.ID)
	assert.Equal(t, StatePlaying, g.State())

	p, state, err := g.ApplyGuess("CRANE")
	require.NoError(t, err)
	assert.Equal(t, "RRGRG", p.String())
	assert.Equal(t, StatePlaying, state)
	assert.Equal(t, []words.Word{"slate"}, g.Candidates())

	p, state, err = g.ApplyGuess("slate")
	require.NoError(t, err)
	assert.True(t, p.Solved())
	assert.Equal(t, StateWon, state)
	assert.True(t, g.Finished)
	assert.True(t, g.Won)
	assert.Equal(t, []words.Word{"crane", "slate"}, g.Guesses())

	_, _, err = g.ApplyGuess("trace")
	require.ErrorIs(t, err, ErrGameFinished)
	assert.Len(t, g.History(), 2)
}

func TestGameLoss(t *testing.T) {
	g := New(testDictionary(t), "speed")
	for i := 0; i < 5; i++ {
		_, state, err := g.ApplyGuess("bulky")
		require.NoError(t, err)
		assert.Equal(t, StatePlaying, state)
	}
	_, state, err := g.ApplyGuess("bulky")
	require.NoError(t, err)
	assert.Equal(t, StateLost, state)
	assert.True(t, g.Finished)
	assert.False(t, g.Won)
}

func TestGameRows(t *testing.T) {
	g := New(testDictionary(t), "speed", WithRows(1))
	_, state, err := g.ApplyGuess("crane")
	require.NoError(t, err)
	assert.Equal(t, StateLost, state)
}

func TestGameRejectsInvalidGuesses(t *testing.T) {
	g := New(testDictionary(t), "slate")

	_, _, err := g.ApplyGuess("cran")
	require.ErrorIs(t, err, words.ErrInvalidWordLength)

	_, _, err = g.ApplyGuess("zzzzz")
	require.ErrorIs(t, err, words.ErrNotAcceptable)

	_, _, err = g.ApplyGuess("cr@ne")
	require.ErrorIs(t, err, words.ErrInvalidLetter)

	assert.Empty(t, g.History(), "rejected guesses are not recorded")
	assert.Equal(t, StatePlaying, g.State())
}

func TestGameRandomAnswer(t *testing.T) {
	d := testDictionary(t)
	g := New(d, "")
	assert.True(t, d.IsFinal(g.Answer))
}

func TestGameHardMode(t *testing.T) {
	g := New(testDictionary(t), "trace", WithHardMode(true))
	_, _, err := g.ApplyGuess("crane") // YGGRG
	require.NoError(t, err)

	_, _, err = g.ApplyGuess("grade") // r, a, e kept but c dropped
	require.ErrorIs(t, err, ErrNotAdmissible)

	_, _, err = g.ApplyGuess("slate") // r dropped at position 2
	require.ErrorIs(t, err, ErrNotAdmissible)

	p, state, err := g.ApplyGuess("brace")
	require.NoError(t, err)
	assert.Equal(t, "RGGGG", p.String())
	assert.Equal(t, StatePlaying, state)
	assert.Len(t, g.History(), 2)
}

func TestIsAdmissible(t *testing.T) {
	alpha := &Alphabet{}
	last := &GuessRecord{Guess: "crane", Pattern: mustPattern(t, "YGGRG")}
	alpha.Observe(last.Guess, last.Pattern)

	tests := []struct {
		guess string
		want  bool
	}{
		{"brace", true},
		{"trace", true},
		{"crane", true}, // c at a ruled-out position is still admissible
		{"grade", false},
		{"slate", false},
		{"spice", false},
	}
	for _, tt := range tests {
		t.Run(tt.guess, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAdmissible(words.MustParse(tt.guess), last, alpha))
		})
	}

	assert.True(t, IsAdmissible("bulky", nil, &Alphabet{}), "first guess is always admissible")
	assert.True(t, IsAdmissible("bulky", nil, nil))

	// Hard mode is weaker than the filter: crane is admissible yet filtered out.
	k := NewKnowledge()
	require.NoError(t, k.Record(last.Guess, last.Pattern))
	assert.True(t, k.Admissible("crane"))
	assert.False(t, k.Constraints().Admits("crane"))
}

func TestGameRecommend(t *testing.T) {
	g := New(testDictionary(t), "trace", WithRanker(NewRanker(2)))
	before := g.Recommend(3)
	require.Len(t, before, 3)

	_, _, err := g.ApplyGuess("crane")
	require.NoError(t, err)
	got := g.Recommend(5)
	require.NotEmpty(t, got)
	for _, s := range got {
		assert.Contains(t, g.Candidates(), s.Word)
	}
	assert.Equal(t, "GXYXGXXXXXXXXRXXXGXXXXXXXX", g.Alphabet().String())
}

func TestSolver(t *testing.T) {
	s := NewSolver(testDictionary(t), nil)
	assert.Len(t, s.Candidates(), 10)

	p, err := s.Observe("CRANE", "yggrg")
	require.NoError(t, err)
	assert.Equal(t, "YGGRG", p.String())
	assert.False(t, s.Solved())
	assert.Equal(t, []words.Word{"trace", "brace"}, s.Candidates())

	rec := s.Recommend(1)
	require.Len(t, rec, 1)
	assert.Equal(t, words.Word("brace"), rec[0].Word)

	_, err = s.Observe("trace", "GGGG")
	require.ErrorIs(t, err, ErrInvalidPattern)
	_, err = s.Observe("tr", "GGGGG")
	require.ErrorIs(t, err, words.ErrInvalidWordLength)
	_, err = s.Observe("crane", "RRRRR")
	require.ErrorIs(t, err, ErrContradictoryConstraint)

	_, err = s.Observe("trace", "GGGGG")
	require.NoError(t, err)
	assert.True(t, s.Solved())
	assert.Equal(t, []words.Word{"trace"}, s.Candidates())
}
