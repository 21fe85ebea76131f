// internal/words/words.go
//
// Word list management for the engine.
//
// Responsibilities:
//   - Parse and validate single words (exactly 5 lowercase a–z letters).
//   - Build a Dictionary from a final list (possible answers) and an
//     acceptable list (valid guesses), enforcing final ⊆ acceptable.
//   - Load those lists from files or fall back to the embedded defaults.
//
// A Dictionary is read-only once built and is shared by pointer between games.

package words

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/samber/lo"

	"github.com/robalobadob/wordle/apps/solver/assets"
)

// Length is the only supported word length.
const Length = 5

var (
	ErrInvalidWordLength = errors.New("word must be exactly 5 letters")
	ErrInvalidLetter     = errors.New("word must contain only letters a-z")
	ErrNotAcceptable     = errors.New("word not in acceptable set")
	ErrFinalNotSubset    = errors.New("final set is not a subset of the acceptable set")
	ErrEmptyFinalSet     = errors.New("final set is empty")
)

// Word is a validated five-letter lowercase word. Obtain one through Parse.
type Word string

// Parse trims and lowercases s and validates it as a Word.
func Parse(s string) (Word, error) {
	w := strings.ToLower(strings.TrimSpace(s))
	if len(w) != Length {
		return "", fmt.Errorf("%q: %w", s, ErrInvalidWordLength)
	}
	if !isAlpha(w) {
		return "", fmt.Errorf("%q: %w", s, ErrInvalidLetter)
	}
	return Word(w), nil
}

// MustParse is Parse for literals in tests and defaults.
func MustParse(s string) Word {
	w, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return w
}

// ParseAll parses every entry of list.
func ParseAll(list []string) ([]Word, error) {
	out := make([]Word, 0, len(list))
	for _, s := range list {
		w, err := Parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}

// Upper returns the word in uppercase, the form used in session logs.
func (w Word) Upper() string { return strings.ToUpper(string(w)) }

// Dictionary holds the final set (valid secrets) and acceptable set (valid guesses).
type Dictionary struct {
	final         []Word
	acceptable    []Word
	finalSet      map[Word]struct{}
	acceptableSet map[Word]struct{}
}

// NewDictionary normalizes both lists (trim, lowercase, dedupe) and validates them.
// Every final word must also be acceptable.
func NewDictionary(final, acceptable []string) (*Dictionary, error) {
	fin, err := normalize(final)
	if err != nil {
		return nil, fmt.Errorf("final set: %w", err)
	}
	acc, err := normalize(acceptable)
	if err != nil {
		return nil, fmt.Errorf("acceptable set: %w", err)
	}
	if len(fin) == 0 {
		return nil, ErrEmptyFinalSet
	}

	d := &Dictionary{
		final:         fin,
		acceptable:    acc,
		finalSet:      toSet(fin),
		acceptableSet: toSet(acc),
	}
	missing := lo.Filter(fin, func(w Word, _ int) bool {
		_, ok := d.acceptableSet[w]
		return !ok
	})
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %d words missing, first %q", ErrFinalNotSubset, len(missing), missing[0])
	}
	return d, nil
}

// Sources names the files to load word lists from. Empty paths fall back to the
// embedded lists: with only Acceptable set, that file serves as both lists.
type Sources struct {
	Final      string
	Acceptable string
}

// Load reads the configured lists (or the embedded defaults) into a Dictionary.
func Load(src Sources) (*Dictionary, error) {
	var final, acceptable []string
	var err error

	switch {
	case src.Final != "" && src.Acceptable != "":
		if final, err = readWordFile(src.Final); err != nil {
			return nil, err
		}
		if acceptable, err = readWordFile(src.Acceptable); err != nil {
			return nil, err
		}
	case src.Final != "":
		if final, err = readWordFile(src.Final); err != nil {
			return nil, err
		}
		if acceptable, err = assets.AllowedList(); err != nil {
			return nil, err
		}
	case src.Acceptable != "":
		if acceptable, err = readWordFile(src.Acceptable); err != nil {
			return nil, err
		}
		final = acceptable
	default:
		if final, err = assets.AnswersList(); err != nil {
			return nil, err
		}
		if acceptable, err = assets.AllowedList(); err != nil {
			return nil, err
		}
	}
	return NewDictionary(final, acceptable)
}

// Final returns the final set in load order. Callers must not modify it.
func (d *Dictionary) Final() []Word { return d.final }

// Acceptable returns the acceptable set in load order. Callers must not modify it.
func (d *Dictionary) Acceptable() []Word { return d.acceptable }

// IsAcceptable reports whether w may be guessed.
func (d *Dictionary) IsAcceptable(w Word) bool {
	_, ok := d.acceptableSet[w]
	return ok
}

// IsFinal reports whether w may be a secret.
func (d *Dictionary) IsFinal(w Word) bool {
	_, ok := d.finalSet[w]
	return ok
}

// Guess parses s and checks it against the acceptable set.
func (d *Dictionary) Guess(s string) (Word, error) {
	w, err := Parse(s)
	if err != nil {
		return "", err
	}
	if !d.IsAcceptable(w) {
		return "", fmt.Errorf("%q: %w", w, ErrNotAcceptable)
	}
	return w, nil
}

// Answer parses s and checks it against the final set.
func (d *Dictionary) Answer(s string) (Word, error) {
	w, err := Parse(s)
	if err != nil {
		return "", err
	}
	if !d.IsFinal(w) {
		return "", fmt.Errorf("%q: not in final set", w)
	}
	return w, nil
}

// RandomAnswer returns a cryptographically random word from the final set.
func (d *Dictionary) RandomAnswer() Word {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(d.final))))
	if err != nil {
		return d.final[0]
	}
	return d.final[n.Int64()]
}

// Stats returns (final, acceptable) counts.
func (d *Dictionary) Stats() (finalCount int, acceptableCount int) {
	return len(d.final), len(d.acceptable)
}

// readWordFile loads a list file in the same format as the embedded lists.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()
	out, err := assets.ParseList(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return out, nil
}

// normalize parses every entry and drops duplicates, keeping first occurrence order.
func normalize(list []string) ([]Word, error) {
	parsed, err := ParseAll(list)
	if err != nil {
		return nil, err
	}
	return lo.Uniq(parsed), nil
}

func toSet(list []Word) map[Word]struct{} {
	m := make(map[Word]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
