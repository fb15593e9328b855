package main

import (
	"flag"
	"os"

	"github.com/powerkey/power-app/internal/infrastructure/migration"
	"github.com/powerkey/power-app/pkg/config"
	"github.com/powerkey/power-app/pkg/logger"
)

// Uso: migrate [-down] [-steps N]
func main() {
	down := flag.Bool("down", false, "revertir todas las migraciones")
	steps := flag.Int("steps", 0, "aplicar N pasos (negativo revierte)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Config{Env: "development"}).Fatal().Err(err).Msg("cargar configuración")
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	m, err := migration.New(cfg.DB.ConnectionString(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar migrador")
	}
	defer func() { _ = m.Close() }()

	switch {
	case *down:
		err = m.Down()
	case *steps != 0:
		err = m.Steps(*steps)
	default:
		err = m.Up()
	}
	if err != nil {
		log.Error().Err(err).Msg("migración fallida")
		_ = m.Close()
		os.Exit(1)
	}
}
