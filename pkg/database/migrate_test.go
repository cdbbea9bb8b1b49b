package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPgx5URL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/hvac?sslmode=disable", pgx5URL("postgres://u:p@db:5432/hvac?sslmode=disable"))
	assert.Equal(t, "pgx5://db/hvac", pgx5URL("postgresql://db/hvac"))
	assert.Equal(t, "pgx5://db/hvac", pgx5URL("pgx5://db/hvac"))
}

func TestMigrationFilesArePaired(t *testing.T) {
	entries, err := migrationFiles.ReadDir("migrations")
	require.NoError(t, err)

	ups, downs := 0, 0
	for _, e := range entries {
		switch {
		case len(e.Name()) > 7 && e.Name()[len(e.Name())-7:] == ".up.sql":
			ups++
		case len(e.Name()) > 9 && e.Name()[len(e.Name())-9:] == ".down.sql":
			downs++
		}
	}
	assert.Positive(t, ups)
	assert.Equal(t, ups, downs)
}
