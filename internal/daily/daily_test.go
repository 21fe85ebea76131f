package daily

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateKey(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	assert.Equal(t, "2024-03-01", DateKey(time.Date(2024, 3, 2, 8, 0, 0, 0, loc)))
	assert.Equal(t, "2024-03-02", DateKey(time.Date(2024, 3, 2, 10, 0, 0, 0, loc)))
}

func TestWordIndex(t *testing.T) {
	day := time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)

	i := WordIndex(day, "salt", 429)
	assert.GreaterOrEqual(t, i, 0)
	assert.Less(t, i, 429)
	assert.Equal(t, i, WordIndex(day.Add(5*time.Hour), "salt", 429), "same date, same word")
	assert.Equal(t, 0, WordIndex(day, "salt", 0))

	// Different salts and dates should not collapse to a single index.
	seen := map[int]bool{}
	for d := 0; d < 30; d++ {
		seen[WordIndex(day.AddDate(0, 0, d), "salt", 429)] = true
	}
	assert.Greater(t, len(seen), 10)

	long := string(make([]byte, 100))
	assert.NotPanics(t, func() { WordIndex(day, long, 429) })
}

func TestSeededIndex(t *testing.T) {
	const n = 50
	seen := make(map[int]bool, n)
	for day := 1; day <= n; day++ {
		i, err := SeededIndex(DefaultSeed, day, n)
		require.NoError(t, err)
		require.False(t, seen[i], "day %d repeats index %d", day, i)
		seen[i] = true
	}
	assert.Len(t, seen, n, "days 1..n cover every word once")

	a, _ := SeededIndex(42, 3, n)
	b, _ := SeededIndex(42, 3, n)
	assert.Equal(t, a, b)
	assert.NotEqual(t, Permutation(1, n), Permutation(2, n))

	for _, day := range []int{0, -1, n + 1} {
		_, err := SeededIndex(DefaultSeed, day, n)
		assert.ErrorIs(t, err, ErrDayOutOfRange, "day %d", day)
	}
	_, err := SeededIndex(DefaultSeed, 1, 0)
	assert.ErrorIs(t, err, ErrDayOutOfRange)
}
