package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// stateDoc is the on-disk layout:
//
//	{"total_rounds": 2, "games": [{"answer": "CRANE", "guesses": ["SLATE", "CRANE"]}, ...]}
type stateDoc struct {
	TotalRounds int         `json:"total_rounds"`
	Games       []stateGame `json:"games"`
}

type stateGame struct {
	Answer  string   `json:"answer"`
	Guesses []string `json:"guesses"`
}

// StateFile is a Log persisted as a single JSON document. Every Append
// rewrites the whole file; earlier games are never altered.
type StateFile struct {
	path string
	mu   sync.Mutex
}

func NewStateFile(path string) *StateFile { return &StateFile{path: path} }

// Entries loads the file. A missing file is an empty log.
func (s *StateFile) Entries(_ context.Context) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(doc.Games))
	for _, g := range doc.Games {
		answer := strings.ToUpper(g.Answer)
		guesses := make([]string, len(g.Guesses))
		for i, w := range g.Guesses {
			guesses[i] = strings.ToUpper(w)
		}
		out = append(out, Entry{
			Answer:  answer,
			Guesses: guesses,
			Won:     len(guesses) > 0 && guesses[len(guesses)-1] == answer,
		})
	}
	return out, nil
}

// Append adds e to the file, creating it if needed.
func (s *StateFile) Append(_ context.Context, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return err
	}
	guesses := make([]string, len(e.Guesses))
	for i, w := range e.Guesses {
		guesses[i] = strings.ToUpper(w)
	}
	doc.Games = append(doc.Games, stateGame{Answer: strings.ToUpper(e.Answer), Guesses: guesses})
	doc.TotalRounds = len(doc.Games)
	return s.write(doc)
}

func (s *StateFile) read() (stateDoc, error) {
	var doc stateDoc
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return doc, fmt.Errorf("read state %s: %w", s.path, err)
	}
	if len(strings.TrimSpace(string(b))) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return doc, fmt.Errorf("%w: %s: %v", ErrCorruptState, s.path, err)
	}
	if doc.TotalRounds != len(doc.Games) {
		return doc, fmt.Errorf("%w: %s: total_rounds is %d but %d games are listed",
			ErrCorruptState, s.path, doc.TotalRounds, len(doc.Games))
	}
	return doc, nil
}

// write replaces the file via a temp file in the same directory.
func (s *StateFile) write(doc stateDoc) error {
	if doc.Games == nil {
		doc.Games = []stateGame{}
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return os.Rename(tmp.Name(), s.path)
}
