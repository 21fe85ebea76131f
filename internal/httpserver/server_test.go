package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

var testNow = time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, lg store.Log) *Server {
	t.Helper()
	d, err := words.NewDictionary(
		[]string{"crane", "slate", "trace", "speed"},
		[]string{"crane", "slate", "trace", "speed", "brace", "grade", "erase", "geese", "bulky", "spice"},
	)
	require.NoError(t, err)
	s := New(d, store.NewMemoryStore(), lg, game.NewRanker(2), Options{JWTSecret: "test", DailySalt: "salt"})
	s.now = func() time.Time { return testNow }
	return s
}

func do(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func newGame(t *testing.T, s *Server, body any) newGameRes {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/game/new", "", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decode[newGameRes](t, rec)
	require.NotEmpty(t, res.GameID)
	require.NotEmpty(t, res.Token)
	return res
}

func TestDiagnostics(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	rec = do(t, s, http.MethodGet, "/debug/words", "", nil)
	assert.JSONEq(t, `{"answers":4,"allowed":10}`, rec.Body.String())

	rec = do(t, s, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not_found","path":"/nope"}`, rec.Body.String())
}

func TestGameFlow(t *testing.T) {
	lg := store.NewMemoryLog()
	s := newTestServer(t, lg)
	ng := newGame(t, s, newGameReq{Answer: "trace"})

	rec := do(t, s, http.MethodPost, "/game/guess", ng.Token, guessReq{GameID: ng.GameID, Guess: "crane", Recommend: 3})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decode[guessRes](t, rec)
	assert.Equal(t, "YGGRG", res.Pattern)
	assert.Equal(t, []string{"present", "correct", "correct", "absent", "correct"}, res.Marks)
	assert.Equal(t, game.StatePlaying, res.State)
	assert.Equal(t, 2, res.Candidates) // trace, brace
	require.Len(t, res.Recommendations, 2)
	assert.Equal(t, "BRACE", res.Recommendations[0].Word)
	assert.Empty(t, res.Answer)

	rec = do(t, s, http.MethodGet, "/game/"+ng.GameID+"/recommend?k=1", ng.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"candidates":2,"recommendations":[{"word":"BRACE","entropy":0}]}`, rec.Body.String())

	rec = do(t, s, http.MethodPost, "/game/guess", ng.Token, guessReq{GameID: ng.GameID, Guess: "TRACE"})
	require.Equal(t, http.StatusOK, rec.Code)
	res = decode[guessRes](t, rec)
	assert.Equal(t, game.StateWon, res.State)
	assert.Equal(t, "TRACE", res.Answer)
	assert.Equal(t, 2, res.Tries)

	rec = do(t, s, http.MethodPost, "/game/guess", ng.Token, guessReq{GameID: ng.GameID, Guess: "slate"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"game_finished"}`, rec.Body.String())

	entries, err := lg.Entries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1, "finished games are logged once")
	assert.Equal(t, []string{"CRANE", "TRACE"}, entries[0].Guesses)
	assert.True(t, entries[0].Won)
	assert.Empty(t, entries[0].Daily)

	rec = do(t, s, http.MethodGet, "/stats", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"rounds":1,"wins":1,"losses":0,"successRate":1,"averageTries":2,
		"topWords":[{"word":"CRANE","count":1},{"word":"TRACE","count":1}]}`, rec.Body.String())
}

func TestFinishedGamesExpire(t *testing.T) {
	s := newTestServer(t, store.NewMemoryLog())
	ng := newGame(t, s, newGameReq{Answer: "trace"})
	live := newGame(t, s, newGameReq{Answer: "crane"})

	rec := do(t, s, http.MethodPost, "/game/guess", ng.Token, guessReq{GameID: ng.GameID, Guess: "trace"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Still readable inside the grace period.
	s.now = func() time.Time { return testNow.Add(5 * time.Minute) }
	newGame(t, s, nil)
	rec = do(t, s, http.MethodGet, "/game/"+ng.GameID+"/recommend", ng.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	s.now = func() time.Time { return testNow.Add(11 * time.Minute) }
	newGame(t, s, nil)

	_, err := s.store.Get(context.Background(), ng.GameID)
	require.ErrorIs(t, err, store.ErrNotFound)
	rec = do(t, s, http.MethodPost, "/game/guess", ng.Token, guessReq{GameID: ng.GameID, Guess: "slate"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, s.done)

	_, err = s.store.Get(context.Background(), live.GameID)
	assert.NoError(t, err, "unfinished games are kept")
}

func TestGuessErrors(t *testing.T) {
	s := newTestServer(t, nil)
	ng := newGame(t, s, newGameReq{Answer: "trace", Hard: true})
	other := newGame(t, s, nil)

	tests := []struct {
		name   string
		token  string
		body   any
		status int
		code   string
	}{
		{"missing token", "", guessReq{GameID: ng.GameID, Guess: "crane"}, http.StatusUnauthorized, "unauthorized"},
		{"garbage token", "x.y.z", guessReq{GameID: ng.GameID, Guess: "crane"}, http.StatusUnauthorized, "invalid_token"},
		{"token for another game", other.Token, guessReq{GameID: ng.GameID, Guess: "crane"}, http.StatusForbidden, "forbidden"},
		{"short word", ng.Token, guessReq{GameID: ng.GameID, Guess: "cra"}, http.StatusBadRequest, "invalid_word"},
		{"unknown word", ng.Token, guessReq{GameID: ng.GameID, Guess: "zzzzz"}, http.StatusBadRequest, "not_in_word_list"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/game/guess", tt.token, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Equal(t, tt.code, decode[map[string]string](t, rec)["error"])
		})
	}

	rec := do(t, s, http.MethodPost, "/game/guess", ng.Token, guessReq{GameID: ng.GameID, Guess: "crane"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, s, http.MethodPost, "/game/guess", ng.Token, guessReq{GameID: ng.GameID, Guess: "grade"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"hard_mode_violation"}`, rec.Body.String())

	rec = do(t, s, http.MethodGet, "/game/"+ng.GameID+"/recommend?k=0", ng.Token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExpiredToken(t *testing.T) {
	s := newTestServer(t, nil)
	ng := newGame(t, s, nil)
	s.now = func() time.Time { return testNow.Add(48 * time.Hour) }

	rec := do(t, s, http.MethodPost, "/game/guess", ng.Token, guessReq{GameID: ng.GameID, Guess: "crane"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestNewGameValidation(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodPost, "/game/new", "", newGameReq{Answer: "brace"})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "answers must come from the final set")

	rec = do(t, s, http.MethodPost, "/game/new", "", newGameReq{Answer: "crane", Daily: true})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/game/new", bytes.NewBufferString("{"))
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSolve(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodPost, "/solve", "", solveReq{
		History: []solveStep{{Guess: "crane", Pattern: "YGGRG"}},
		K:       1,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decode[solveRes](t, rec)
	assert.False(t, res.Solved)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, []string{"TRACE", "BRACE"}, res.Candidates)
	require.Len(t, res.Recommendations, 1)
	assert.Equal(t, "BRACE", res.Recommendations[0].Word)

	rec = do(t, s, http.MethodPost, "/solve", "", solveReq{History: []solveStep{{Guess: "trace", Pattern: "ggggg"}}})
	require.Equal(t, http.StatusOK, rec.Code)
	res = decode[solveRes](t, rec)
	assert.True(t, res.Solved)
	assert.Empty(t, res.Recommendations)

	rec = do(t, s, http.MethodPost, "/solve", "", solveReq{History: []solveStep{
		{Guess: "crane", Pattern: "YGGRG"},
		{Guess: "crane", Pattern: "RRRRR"},
	}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"error":"contradictory_feedback","step":"2"}`, rec.Body.String())

	rec = do(t, s, http.MethodPost, "/solve", "", solveReq{History: []solveStep{
		{Guess: "crane", Pattern: "RRRRG"},
		{Guess: "speed", Pattern: "RRGRR"},
	}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"error":"contradictory_feedback","step":"2"}`, rec.Body.String())

	rec = do(t, s, http.MethodPost, "/solve", "", solveReq{History: []solveStep{{Guess: "crane", Pattern: "GGXGG"}}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/solve", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDailyGames(t *testing.T) {
	lg, err := store.OpenSQLite(filepath.Join(t.TempDir(), "solver.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = lg.Close() })
	s := newTestServer(t, lg)

	a := newGame(t, s, newGameReq{Daily: true})
	b := newGame(t, s, newGameReq{Daily: true})
	assert.Equal(t, "2024-03-02", a.Date)

	ga, err := s.store.Get(context.Background(), a.GameID)
	require.NoError(t, err)
	gb, err := s.store.Get(context.Background(), b.GameID)
	require.NoError(t, err)
	assert.Equal(t, ga.Answer, gb.Answer, "everyone gets the same daily word")

	rec := do(t, s, http.MethodPost, "/game/guess", a.Token, guessReq{GameID: a.GameID, Guess: string(ga.Answer)})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, s, http.MethodGet, "/daily/leaderboard", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	lb := decode[lbRes](t, rec)
	assert.Equal(t, "2024-03-02", lb.Date)
	require.Len(t, lb.Top, 1)
	assert.Equal(t, a.GameID, lb.Top[0].GameID)
	assert.Equal(t, 1, lb.Top[0].Tries)

	rec = do(t, s, http.MethodGet, "/daily/leaderboard?date=yesterday", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodGet, "/daily/today", "", nil)
	assert.JSONEq(t, `{"date":"2024-03-02"}`, rec.Body.String())
}

func TestLeaderboardUnavailable(t *testing.T) {
	s := newTestServer(t, store.NewMemoryLog())
	rec := do(t, s, http.MethodGet, "/daily/leaderboard", "", nil)
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}
