package main

import (
	"context"

	"github.com/robalobadob/wordle/apps/solver/internal/render"
	"github.com/robalobadob/wordle/apps/solver/internal/stats"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
)

// runStats prints the summary of the state file, or of the server database
// when no state file is configured.
func (a *app) runStats(ctx context.Context) error {
	var lg store.Log
	if a.cfg.State != "" {
		lg = store.NewStateFile(a.cfg.State)
	} else {
		db, err := store.OpenSQLite(a.cfg.Server.DatabasePath)
		if err != nil {
			return err
		}
		defer db.Close()
		lg = db
	}
	entries, err := lg.Entries(ctx)
	if err != nil {
		return err
	}
	render.New(a.out).Stats(stats.Summarize(entries))
	return nil
}
