// internal/httpserver/routes_daily.go
//
// Read-only views over daily games.
//   - GET /daily/today       → today's date key (the word itself stays secret)
//   - GET /daily/leaderboard → top 20 winners for today (or ?date=YYYY-MM-DD)
//
// Daily games are started with POST /game/new {"daily": true}; every player
// gets the same word for a UTC date, picked by daily.WordIndex.

package httpserver

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/daily"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
)

// leaderboard is implemented by logs that can rank daily games.
type leaderboard interface {
	Leaderboard(ctx context.Context, date string, limit int) ([]store.Entry, error)
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Get("/today", s.handleDailyToday)
		r.Get("/leaderboard", s.handleLeaderboard)
	})
}

func (s *Server) handleDailyToday(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"date": daily.DateKey(s.now())})
}

// lbRow is one leaderboard line, without the answer.
type lbRow struct {
	GameID     string `json:"gameId"`
	Tries      int    `json:"tries"`
	Hard       bool   `json:"hard"`
	FinishedAt string `json:"finishedAt"`
}

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string  `json:"date"`
	Top  []lbRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	lb, ok := s.log.(leaderboard)
	if !ok {
		writeError(w, http.StatusNotImplemented, "leaderboard_unavailable")
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(s.now())
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_date")
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid_limit")
			return
		}
		limit = n
	}

	entries, err := lb.Leaderboard(r.Context(), date, limit)
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("leaderboard")
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	rows := make([]lbRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, lbRow{
			GameID:     e.ID,
			Tries:      e.Tries(),
			Hard:       e.Hard,
			FinishedAt: e.FinishedAt.UTC().Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, lbRes{Date: date, Top: rows})
}
