package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog"

	"gridlords/internal/config"
	"gridlords/internal/engine"
	"gridlords/internal/mapgen"
	"gridlords/internal/server"
	"gridlords/internal/storage"
	"gridlords/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := zerolog.New(os.Stderr)
		fallback.Fatal().Err(err).Msg("config")
	}

	port := flag.Int("port", cfg.Port, "server port")
	flag.Parse()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	var archive store.Archiver
	if cfg.DatabaseURL != "" {
		gs, err := storage.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("storage")
		}
		archive = gs
		log.Info().Msg("session archive enabled")
	}

	registry := store.New(cfg.EvictionGrace, archive, log)
	sweeper, err := store.NewSweeper(registry, cfg.SweepInterval, log)
	if err != nil {
		log.Fatal().Err(err).Msg("sweeper")
	}
	sweeper.Start()
	defer sweeper.Stop()

	gameCfg := engine.DefaultConfig()
	gameCfg.MapWidth = cfg.MapWidth
	gameCfg.MapHeight = cfg.MapHeight
	gameCfg.Combat = engine.CombatPolicy{Variance: cfg.CombatVariance}

	srv := server.New(*port, registry, mapgen.New(cfg.MapSeed), gameCfg, cfg.TurnTimeout, log)
	if err := srv.Start(); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
