// internal/daily/daily.go
//
// Deterministic secret selection.
//
//   - DateKey / WordIndex: one word per calendar day, picked with a keyed
//     BLAKE2b hash of the date so the sequence cannot be guessed without the salt.
//   - SeededIndex: the "day N of seed S" rotation used by the CLI's random mode.
//     The same seed always yields the same permutation of the final set, so
//     day 1..n walks every word exactly once.

package daily

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"golang.org/x/crypto/blake2b"
)

// DefaultSeed is used when random mode is asked for a day without a seed.
const DefaultSeed uint64 = 19260817998244353

var ErrDayOutOfRange = errors.New("day out of range")

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using BLAKE2b-256 keyed
// with salt over YYYY-MM-DD, reduced modulo answersLen.
func WordIndex(date time.Time, salt string, answersLen int) int {
	if answersLen <= 0 {
		return 0
	}
	key := []byte(salt)
	if len(key) > blake2b.Size {
		sum := blake2b.Sum256(key)
		key = sum[:]
	}
	h, err := blake2b.New256(key)
	if err != nil {
		// Only reachable with an oversized key, which is folded above.
		return 0
	}
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// take first 8 bytes to uint64 for modulus distribution
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(answersLen))
}

// SeededIndex returns the index of the day-th (1-based) word in the
// permutation of 0..n-1 fixed by seed.
func SeededIndex(seed uint64, day, n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("%w: empty word list", ErrDayOutOfRange)
	}
	if day < 1 || day > n {
		return 0, fmt.Errorf("%w: %d not in 1..%d", ErrDayOutOfRange, day, n)
	}
	return Permutation(seed, n)[day-1], nil
}

// Permutation is the full shuffle behind SeededIndex.
func Permutation(seed uint64, n int) []int {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return rng.Perm(n)
}
