// internal/store/store.go
//
// Persistence for the solver.
//
// Two concerns live here:
//   - Store: live games held between HTTP requests (memory only).
//   - Log: finished games, appended once and read back for statistics.
//     Implementations: the JSON state file used by the CLI (statefile.go),
//     SQLite used by the server (sqlite.go), and an in-memory log for tests.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrCorruptState = errors.New("corrupt state")
)

// Store defines the persistence interface for live game sessions.
type Store interface {
	// Save persists or updates a game state.
	Save(ctx context.Context, g *game.Game) error

	// Get retrieves a game by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*game.Game, error)

	// Delete drops a game; deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error
}

// Entry is one finished game. Words are uppercase.
type Entry struct {
	ID         string    `json:"id"`
	Answer     string    `json:"answer"`
	Guesses    []string  `json:"guesses"`
	Won        bool      `json:"won"`
	Hard       bool      `json:"hard"`
	Daily      string    `json:"daily,omitempty"` // date key for daily games
	FinishedAt time.Time `json:"finishedAt"`
}

// Tries is the number of guesses taken.
func (e Entry) Tries() int { return len(e.Guesses) }

// EntryFromGame captures a finished game for the log.
func EntryFromGame(g *game.Game) Entry {
	return Entry{
		ID:         g.ID,
		Answer:     g.Answer.Upper(),
		Guesses:    lo.Map(g.Guesses(), func(w words.Word, _ int) string { return w.Upper() }),
		Won:        g.Won,
		Hard:       g.Hard,
		FinishedAt: time.Now().UTC(),
	}
}

// Log is an append-only record of finished games.
type Log interface {
	Append(ctx context.Context, e Entry) error
	Entries(ctx context.Context) ([]Entry, error)
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex          // guards games map
	games map[string]*game.Game // keyed by Game.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]*game.Game)}
}

func (m *memory) Save(_ context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = g
	return nil
}

func (m *memory) Get(_ context.Context, id string) (*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.games[id]; ok {
		return g, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
	return nil
}

// MemoryLog keeps entries in process memory.
type MemoryLog struct {
	mu      sync.Mutex
	entries []Entry
}

func NewMemoryLog() *MemoryLog { return &MemoryLog{} }

func (l *MemoryLog) Append(_ context.Context, e Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, e)
	return nil
}

func (l *MemoryLog) Entries(_ context.Context) ([]Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Entry(nil), l.entries...), nil
}
