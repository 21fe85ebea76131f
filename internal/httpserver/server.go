// internal/httpserver/server.go
//
// HTTP server wiring for the solver.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Game endpoints: POST /game/new, POST /game/guess, GET /game/{id}/recommend.
//   - Stateless solver: POST /solve.
//   - Session log views: GET /stats, GET /daily/leaderboard.
//
// Notes:
//   - A game is addressed by its ID but only playable with the token returned
//     by /game/new (HS256 JWT bound to that ID).
//   - Finished games are appended to the session log once and dropped from
//     the live store FinishedTTL later (checked when a game is created).

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// Options carries the server settings that are not dependencies.
type Options struct {
	JWTSecret string
	DailySalt string
	TokenTTL  time.Duration
	TopK      int // default number of recommendations

	// FinishedTTL is how long a finished game stays readable before it is
	// dropped from the live store.
	FinishedTTL time.Duration
}

// Server bundles router, word lists, live games and the session log.
type Server struct {
	r      *chi.Mux
	dict   *words.Dictionary
	store  store.Store
	log    store.Log
	ranker *game.Ranker
	opts   Options
	now    func() time.Time

	play sync.Mutex // Game is not safe for concurrent use; also guards done
	done []doneGame
}

// doneGame is a finished game awaiting removal.
type doneGame struct {
	id string
	at time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(dict *words.Dictionary, st store.Store, lg store.Log, ranker *game.Ranker, opts Options) *Server {
	if opts.JWTSecret == "" {
		opts.JWTSecret = "dev_secret_change_me"
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	if opts.TopK <= 0 {
		opts.TopK = 5
	}
	if opts.FinishedTTL <= 0 {
		opts.FinishedTTL = 10 * time.Minute
	}
	if ranker == nil {
		ranker = game.NewRanker(0)
	}
	s := &Server{r: chi.NewRouter(), dict: dict, store: st, log: lg, ranker: ranker, opts: opts, now: time.Now}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                       // one debug line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // single-origin CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service": "wordle-solver",
			"endpoints": []string{"/health", "POST /game/new", "POST /game/guess",
				"GET /game/{id}/recommend", "POST /solve", "GET /stats", "GET /daily/leaderboard"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		f, a := s.dict.Stats()
		writeJSON(w, http.StatusOK, map[string]int{"answers": f, "allowed": a})
	})

	s.r.Post("/game/new", s.handleNewGame)
	s.r.With(s.requireGameToken).Post("/game/guess", s.handleGuess)
	s.r.With(s.requireGameToken).Get("/game/{id}/recommend", s.handleRecommend)
	s.r.Post("/solve", s.handleSolve)
	s.r.Get("/stats", s.handleStats)
	s.mountDaily(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Handler exposes the router (useful for tests).
func (s *Server) Handler() http.Handler { return s.r }

// Start serves HTTP on addr until ctx is cancelled, then drains in-flight requests.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// reapFinished deletes games that finished more than FinishedTTL ago.
func (s *Server) reapFinished(ctx context.Context) {
	s.play.Lock()
	defer s.play.Unlock()
	cutoff := s.now().Add(-s.opts.FinishedTTL)
	keep := s.done[:0]
	for _, d := range s.done {
		if d.at.After(cutoff) {
			keep = append(keep, d)
			continue
		}
		if err := s.store.Delete(ctx, d.id); err != nil {
			log.Warn().Err(err).Str("gameId", d.id).Msg("drop finished game")
			keep = append(keep, d)
		}
	}
	s.done = keep
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one zerolog line per request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("reqId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// ------------------------------- helpers -----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// guessError maps engine errors to an HTTP status and error code.
func guessError(err error) (int, string) {
	switch {
	case errors.Is(err, words.ErrInvalidWordLength), errors.Is(err, words.ErrInvalidLetter):
		return http.StatusBadRequest, "invalid_word"
	case errors.Is(err, words.ErrNotAcceptable):
		return http.StatusBadRequest, "not_in_word_list"
	case errors.Is(err, game.ErrNotAdmissible):
		return http.StatusBadRequest, "hard_mode_violation"
	case errors.Is(err, game.ErrInvalidPattern):
		return http.StatusBadRequest, "invalid_pattern"
	case errors.Is(err, game.ErrGameFinished):
		return http.StatusConflict, "game_finished"
	case errors.Is(err, game.ErrContradictoryConstraint):
		return http.StatusUnprocessableEntity, "contradictory_feedback"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

type recommendation struct {
	Word    string  `json:"word"`
	Entropy float64 `json:"entropy"`
}

func toRecommendations(scored []game.Scored) []recommendation {
	out := make([]recommendation, 0, len(scored))
	for _, sc := range scored {
		out = append(out, recommendation{Word: sc.Word.Upper(), Entropy: sc.Entropy})
	}
	return out
}
