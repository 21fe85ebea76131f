package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/stats"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

type solveStep struct {
	Guess   string `json:"guess"`
	Pattern string `json:"pattern"` // five of G, Y, R
}

type solveReq struct {
	History []solveStep `json:"history"`
	K       int         `json:"k"`
}

type solveRes struct {
	Solved          bool             `json:"solved"`
	Alphabet        string           `json:"alphabet"`
	Count           int              `json:"count"`
	Candidates      []string         `json:"candidates"`
	Recommendations []recommendation `json:"recommendations"`
}

// handleSolve replays externally scored guesses and suggests the next one.
// Nothing is stored; the full history travels with every request.
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if req.K < 0 {
		writeError(w, http.StatusBadRequest, "invalid_k")
		return
	}
	if req.K == 0 {
		req.K = s.opts.TopK
	}

	sv := game.NewSolver(s.dict, s.ranker)
	for i, step := range req.History {
		if _, err := sv.Observe(step.Guess, step.Pattern); err != nil {
			status, code := guessError(err)
			writeJSON(w, status, map[string]string{
				"error": code,
				"step":  fmt.Sprint(i + 1),
			})
			return
		}
	}

	cands := sv.Candidates()
	res := solveRes{
		Solved:     sv.Solved(),
		Alphabet:   sv.Knowledge().Alphabet().String(),
		Count:      len(cands),
		Candidates: lo.Map(cands, func(w words.Word, _ int) string { return w.Upper() }),
	}
	if sv.Solved() {
		res.Recommendations = []recommendation{}
	} else {
		res.Recommendations = toRecommendations(sv.Recommend(req.K))
	}
	writeJSON(w, http.StatusOK, res)
}

// handleStats summarises the session log.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.log == nil {
		writeJSON(w, http.StatusOK, stats.Summarize(nil))
		return
	}
	entries, err := s.log.Entries(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("read session log")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, stats.Summarize(entries))
}
