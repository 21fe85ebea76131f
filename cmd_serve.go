package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/httpserver"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
)

// runServe starts the HTTP API and blocks until SIGINT/SIGTERM.
func (a *app) runServe(ctx context.Context) error {
	dict, err := a.dictionary()
	if err != nil {
		return err
	}
	db, err := store.OpenSQLite(a.cfg.Server.DatabasePath)
	if err != nil {
		log.Error().Err(err).Str("path", a.cfg.Server.DatabasePath).Msg("failed to open database")
		return err
	}
	defer db.Close()

	srv := httpserver.New(dict, store.NewMemoryStore(), db, a.ranker(), httpserver.Options{
		JWTSecret: a.cfg.Server.JWTSecret,
		DailySalt: a.cfg.Server.DailySalt,
		TopK:      a.cfg.Ranking.Top,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	port := a.cfg.Server.Port
	log.Info().Str("port", port).Str("db", a.cfg.Server.DatabasePath).Msg("starting server")
	if err := srv.Start(ctx, ":"+port); err != nil {
		log.Error().Err(err).Msg("server exited")
		return err
	}
	return nil
}
