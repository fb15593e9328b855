package migration_test

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/powerkey/power-app/internal/infrastructure/migration"
	"github.com/powerkey/power-app/migrations"
)

func TestDriverURL_CambiaEsquema(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/app?sslmode=disable", migration.DriverURL("postgres://u:p@db:5432/app?sslmode=disable"))
	assert.Equal(t, "pgx5://u@db/app", migration.DriverURL("postgresql://u@db/app"))
	assert.Equal(t, "pgx5://ya", migration.DriverURL("pgx5://ya"))
}

func TestMigraciones_CadaUpTieneDown(t *testing.T) {
	files, err := fs.Glob(migrations.FS, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	set := make(map[string]bool, len(files))
	for _, f := range files {
		set[f] = true
	}
	for _, f := range files {
		if base, ok := strings.CutSuffix(f, ".up.sql"); ok {
			assert.True(t, set[base+".down.sql"], "falta down de %s", f)
		}
	}
}
