package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/render"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// runSolve reads "GUESS PATTERN" lines (pattern in G/Y/R) and after each one
// prints the surviving candidates and the best next guesses.
func (a *app) runSolve(ctx context.Context) error {
	dict, err := a.dictionary()
	if err != nil {
		return err
	}
	r := render.New(a.out)
	in := &lines{sc: bufio.NewScanner(a.in)}
	sv := game.NewSolver(dict, a.ranker())
	top := a.cfg.Ranking.Top

	r.Recommend(sv.Recommend(top))
	for !sv.Solved() {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.Prompt("Guess and feedback (e.g. CRANE RRGYR):")
		line, err := in.next()
		if errors.Is(err, errEOF) {
			return nil
		}
		if err != nil {
			return err
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			r.Invalid(fmt.Errorf("want a guess and its feedback, got %q", line))
			continue
		}
		p, err := sv.Observe(fields[0], fields[1])
		if err != nil {
			r.Invalid(err)
			continue
		}
		r.Guess(words.MustParse(fields[0]), p, sv.Knowledge().Alphabet())
		if sv.Solved() {
			break
		}
		cands := sv.Candidates()
		if len(cands) == 0 {
			return errors.New("no word in the list matches that feedback")
		}
		r.Candidates(cands)
		r.Recommend(sv.Recommend(top))
	}
	r.Won(sv.Knowledge().Len())
	return nil
}
