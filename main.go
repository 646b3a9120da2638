package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/endgame/internal/config"
	"github.com/robalobadob/endgame/internal/content"
	"github.com/robalobadob/endgame/internal/database"
	"github.com/robalobadob/endgame/internal/httpserver"
	"github.com/robalobadob/endgame/internal/random"
	"github.com/robalobadob/endgame/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	setupLogging(cfg)

	cat, err := content.Load(content.Files{
		Words:     cfg.WordsFile,
		Items:     cfg.ItemsFile,
		Farewells: cfg.FarewellsFile,
	}, cfg.MaxWrongGuesses)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load content tables")
	}
	log.Info().Int("words", len(cat.Words())).Int("items", len(cat.Items())).Int("maxWrong", cat.MaxWrongGuesses()).Msg("content loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.OpenMigrated(ctx, cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DatabasePath).Msg("failed to open database")
	}
	defer db.Close()

	mem := store.NewMemoryStore()
	go pruneSessions(ctx, mem, cfg.SessionIdle)

	srv := httpserver.New(httpserver.Deps{
		Config:   cfg,
		Catalog:  cat,
		Sessions: mem,
		DB:       db,
		Random:   random.Crypto(),
	})
	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("env", cfg.AppEnv).Msg("starting endgame server")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

func setupLogging(cfg config.Config) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

// pruneSessions drops idle sessions until ctx is cancelled.
func pruneSessions(ctx context.Context, mem *store.Memory, idle time.Duration) {
	if idle <= 0 {
		return
	}
	t := time.NewTicker(idle / 4)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := mem.Prune(idle); n > 0 {
				log.Debug().Int("pruned", n).Msg("idle sessions dropped")
			}
		}
	}
}
