//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/powerkey/power-app/internal/domain/entity"
	"github.com/powerkey/power-app/internal/infrastructure/migration"
	"github.com/powerkey/power-app/internal/infrastructure/postgres"
	"github.com/powerkey/power-app/pkg/config"
	"github.com/powerkey/power-app/pkg/logger"
)

const testCompany = "PowerKey"

// newTestPool levanta un PostgreSQL efímero, aplica las migraciones embebidas y devuelve el pool de la app.
// Cada test tiene su propio contenedor.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("integración: se omite con -short")
	}
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("power_app_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "no se pudo iniciar el contenedor de PostgreSQL")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	m, err := migration.New(dsn, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, m.Up())
	require.NoError(t, m.Close())

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 4}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.NewCompanyRepository(pool).Create(ctx, &entity.Company{
		Name: testCompany, Abbr: "PK", DefaultServiceExpenseAccount: "Gastos por pagar - PK",
	}))
	return pool
}

func exec(t *testing.T, pool *pgxpool.Pool, sql string, args ...any) {
	t.Helper()
	_, err := pool.Exec(context.Background(), sql, args...)
	require.NoError(t, err)
}
