// Package migration aplica el esquema embebido en migrations/ con golang-migrate.
package migration

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // driver pgx5://
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/powerkey/power-app/migrations"
	"github.com/powerkey/power-app/pkg/logger"
)

// Migrator envuelve migrate.Migrate con el logger de la app.
type Migrator struct {
	m   *migrate.Migrate
	log *logger.Logger
}

// New abre el origen embebido y la base indicada por connString (postgres:// o postgresql://).
func New(connString string, log *logger.Logger) (*Migrator, error) {
	if log == nil {
		log = logger.Nop()
	}
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("abrir migraciones embebidas: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, DriverURL(connString))
	if err != nil {
		return nil, fmt.Errorf("crear migrador: %w", err)
	}
	return &Migrator{m: m, log: log}, nil
}

// DriverURL cambia el esquema postgres:// por pgx5:// que es el nombre del driver registrado.
func DriverURL(connString string) string {
	for _, prefix := range []string{"postgresql://", "postgres://"} {
		if strings.HasPrefix(connString, prefix) {
			return "pgx5://" + strings.TrimPrefix(connString, prefix)
		}
	}
	return connString
}

// Up aplica todas las migraciones pendientes.
func (g *Migrator) Up() error {
	err := g.m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		g.log.Info().Msg("sin migraciones pendientes")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	return g.logVersion()
}

// Down revierte todas las migraciones.
func (g *Migrator) Down() error {
	err := g.m.Down()
	if errors.Is(err, migrate.ErrNoChange) {
		g.log.Info().Msg("nada que revertir")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate down: %w", err)
	}
	g.log.Info().Msg("migraciones revertidas")
	return nil
}

// Steps aplica n pasos (positivo sube, negativo baja).
func (g *Migrator) Steps(n int) error {
	err := g.m.Steps(n)
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate steps %d: %w", n, err)
	}
	return g.logVersion()
}

// Close libera origen y conexión.
func (g *Migrator) Close() error {
	srcErr, dbErr := g.m.Close()
	return errors.Join(srcErr, dbErr)
}

func (g *Migrator) logVersion() error {
	version, dirty, err := g.m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("versión de migración: %w", err)
	}
	g.log.Info().Uint("version", version).Bool("dirty", dirty).Msg("migraciones aplicadas")
	return nil
}
