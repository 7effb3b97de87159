// main.go
//
// Entry point for the Arabic Wordle server.
// Loads configuration, the dictionary and the results database, starts the
// idle-session sweeper, and serves HTTP until SIGINT/SIGTERM.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/arabic-wordle/internal/config"
	"github.com/robalobadob/arabic-wordle/internal/httpserver"
	"github.com/robalobadob/arabic-wordle/internal/metrics"
	"github.com/robalobadob/arabic-wordle/internal/store"
	"github.com/robalobadob/arabic-wordle/internal/words"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)
	if !cfg.Production {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	dict, err := words.Load(cfg.WordsFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.WordsFile).Msg("failed to load dictionary")
	}
	log.Info().Int("words", dict.Len()).Msg("dictionary loaded")

	db, err := store.OpenDB(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open database")
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	mem := store.NewMemoryStore()
	go mem.RunSweeper(ctx, time.Minute, cfg.SessionTTL, func(n int) {
		m.LiveSessions.Set(float64(mem.Len()))
		log.Debug().Int("removed", n).Msg("swept idle sessions")
	})

	srv, err := httpserver.New(dict, mem, db, m, httpserver.Options{
		DailySalt:     cfg.DailySalt,
		JWTSecret:     cfg.JWTSecret,
		ClientOrigins: cfg.ClientOrigin,
		Production:    cfg.Production,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build server")
	}

	log.Info().Str("addr", cfg.Addr()).Msg("starting server")
	if err := srv.Start(ctx, cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}
