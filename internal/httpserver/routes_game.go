package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/daily"
	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Answer string `json:"answer"` // optional fixed answer (testing)
	Hard   bool   `json:"hard"`
	Daily  bool   `json:"daily"` // today's word instead of a random one
}
type newGameRes struct {
	GameID    string `json:"gameId"`
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
	Rows      int    `json:"rows"`
	Hard      bool   `json:"hard"`
	Date      string `json:"date,omitempty"`
}

// handleNewGame creates a game in the live store and returns its token.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_json")
			return
		}
	}
	if req.Daily && req.Answer != "" {
		writeError(w, http.StatusBadRequest, "answer_with_daily")
		return
	}

	s.reapFinished(r.Context())

	var answer words.Word
	var date string
	switch {
	case req.Daily:
		date, answer = s.dailyAnswer()
	case req.Answer != "":
		a, err := s.dict.Answer(req.Answer)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_answer")
			return
		}
		answer = a
	}

	g := game.New(s.dict, answer, game.WithHardMode(req.Hard), game.WithRanker(s.ranker))
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	tok, exp, err := s.signGameToken(g.ID, date)
	if err != nil {
		log.Error().Err(err).Msg("sign token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	log.Debug().Str("gameId", g.ID).Bool("hard", g.Hard).Str("daily", date).Msg("game started")
	writeJSON(w, http.StatusOK, newGameRes{
		GameID: g.ID, Token: tok, ExpiresAt: exp.Unix(), Rows: g.Rows, Hard: g.Hard, Date: date,
	})
}

// guessReq/Res payloads for POST /game/guess.
type guessReq struct {
	GameID    string `json:"gameId"`
	Guess     string `json:"guess"`
	Recommend int    `json:"recommend"` // >0 asks for that many suggestions
}
type guessRes struct {
	Pattern         string           `json:"pattern"`
	Marks           []string         `json:"marks"`
	Alphabet        string           `json:"alphabet"`
	State           game.State       `json:"state"`
	Tries           int              `json:"tries"`
	Candidates      int              `json:"candidates"`
	Recommendations []recommendation `json:"recommendations,omitempty"`
	Answer          string           `json:"answer,omitempty"` // only once finished
}

// handleGuess applies a guess to a live game and logs it once finished.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	claims, ok := claimsFor(r, req.GameID)
	if !ok {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}
	g, err := s.store.Get(r.Context(), req.GameID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "load_failed")
		return
	}

	s.play.Lock()
	defer s.play.Unlock()
	p, state, err := g.ApplyGuess(req.Guess)
	if err != nil {
		status, code := guessError(err)
		writeError(w, status, code)
		return
	}
	if err := s.store.Save(r.Context(), g); err != nil {
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}

	res := guessRes{
		Pattern:    p.String(),
		Marks:      p.Marks(),
		Alphabet:   g.Alphabet().String(),
		State:      state,
		Tries:      len(g.History()),
		Candidates: len(g.Candidates()),
	}
	if req.Recommend > 0 && !g.Finished {
		res.Recommendations = toRecommendations(g.Recommend(req.Recommend))
	}
	if g.Finished {
		res.Answer = g.Answer.Upper()
		s.logFinished(r, g, claims.Daily)
		s.done = append(s.done, doneGame{id: g.ID, at: s.now()})
	}
	writeJSON(w, http.StatusOK, res)
}

// logFinished appends g to the session log (best effort, non-fatal if it fails).
func (s *Server) logFinished(r *http.Request, g *game.Game, date string) {
	if s.log == nil {
		return
	}
	e := store.EntryFromGame(g)
	e.Daily = date
	e.FinishedAt = s.now().UTC()
	if err := s.log.Append(r.Context(), e); err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("append session log")
		return
	}
	log.Info().Str("gameId", g.ID).Bool("won", g.Won).Int("tries", e.Tries()).Msg("game finished")
}

// handleRecommend returns the top-k entropy suggestions for a live game.
func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := claimsFor(r, id); !ok {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}
	k, ok := parseK(r, s.opts.TopK)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_k")
		return
	}
	g, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	s.play.Lock()
	defer s.play.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{
		"candidates":      len(g.Candidates()),
		"recommendations": toRecommendations(g.Recommend(k)),
	})
}

// parseK reads ?k=, falling back to def.
func parseK(r *http.Request, def int) (int, bool) {
	v := r.URL.Query().Get("k")
	if v == "" {
		return def, true
	}
	k, err := strconv.Atoi(v)
	if err != nil || k < 1 {
		return 0, false
	}
	return k, true
}

// dailyAnswer returns today's date key and its word.
func (s *Server) dailyAnswer() (string, words.Word) {
	now := s.now()
	final := s.dict.Final()
	return daily.DateKey(now), final[daily.WordIndex(now, s.opts.DailySalt, len(final))]
}
