package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/daily"
	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/render"
	"github.com/robalobadob/wordle/apps/solver/internal/stats"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// errEOF ends an interactive session when input runs out.
var errEOF = errors.New("end of input")

// lines reads trimmed input lines.
type lines struct{ sc *bufio.Scanner }

func (l *lines) next() (string, error) {
	if !l.sc.Scan() {
		if err := l.sc.Err(); err != nil {
			return "", err
		}
		return "", errEOF
	}
	return strings.TrimSpace(l.sc.Text()), nil
}

// sessionLog returns the state file when configured, else an in-memory log.
func (a *app) sessionLog() store.Log {
	if a.cfg.State != "" {
		return store.NewStateFile(a.cfg.State)
	}
	return store.NewMemoryLog()
}

// runPlay runs rounds until the fixed word is played, input ends, or the
// player declines another round.
func (a *app) runPlay(ctx context.Context) error {
	dict, err := a.dictionary()
	if err != nil {
		return err
	}
	sess := a.sessionLog()
	if _, err := sess.Entries(ctx); err != nil {
		return err
	}

	r := render.New(a.out)
	hints := render.IsTerminal(a.out)
	in := &lines{sc: bufio.NewScanner(a.in)}
	day := a.cfg.DayOrDefault()

	for {
		answer, err := a.pickAnswer(dict, day, in, r)
		if errors.Is(err, errEOF) {
			return nil
		}
		if err != nil {
			return err
		}

		g := game.New(dict, answer, game.WithHardMode(a.cfg.Difficult), game.WithRanker(a.ranker()))
		log.Debug().Str("gameId", g.ID).Int("day", day).Bool("hard", g.Hard).Msg("round started")
		if err := playRound(g, in, r, hints, a.cfg.Ranking.Top); err != nil {
			if errors.Is(err, errEOF) {
				return nil
			}
			return err
		}

		if err := sess.Append(ctx, store.EntryFromGame(g)); err != nil {
			return fmt.Errorf("save round: %w", err)
		}
		if a.cfg.Stats {
			entries, err := sess.Entries(ctx)
			if err != nil {
				return err
			}
			r.Stats(stats.Summarize(entries))
		}

		if a.cfg.Word != "" {
			return nil
		}
		r.Prompt("Play again? (Y/N)")
		again, err := in.next()
		if err != nil && !errors.Is(err, errEOF) {
			return err
		}
		if !strings.EqualFold(again, "y") {
			return nil
		}
		day++
	}
}

// pickAnswer chooses the secret for one round: the configured word, the
// day-th word of the seeded sequence, or a word typed on stdin.
func (a *app) pickAnswer(dict *words.Dictionary, day int, in *lines, r render.Renderer) (words.Word, error) {
	switch {
	case a.cfg.Word != "":
		return dict.Answer(a.cfg.Word)
	case a.cfg.Random:
		i, err := daily.SeededIndex(a.cfg.SeedOrDefault(), day, len(dict.Final()))
		if err != nil {
			return "", err
		}
		return dict.Final()[i], nil
	}
	for {
		r.Prompt("Answer word:")
		s, err := in.next()
		if err != nil {
			return "", err
		}
		w, err := dict.Answer(s)
		if err == nil {
			return w, nil
		}
		r.Invalid(err)
	}
}

// playRound reads guesses until g finishes. Rejected guesses do not use a row.
func playRound(g *game.Game, in *lines, r render.Renderer, hints bool, top int) error {
	for !g.Finished {
		r.Prompt(fmt.Sprintf("Guess %d/%d:", len(g.History())+1, g.Rows))
		s, err := in.next()
		if err != nil {
			return err
		}
		p, _, err := g.ApplyGuess(s)
		if err != nil {
			r.Invalid(err)
			continue
		}
		last := g.History()[len(g.History())-1]
		r.Guess(last.Guess, p, g.Alphabet())
		if hints && !g.Finished {
			r.Candidates(g.Candidates())
			r.Recommend(g.Recommend(top))
		}
	}
	if g.Won {
		r.Won(len(g.History()))
	} else {
		r.Lost(g.Answer)
	}
	return nil
}
