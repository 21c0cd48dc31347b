package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/venuecal/venuecal/internal/config"
)

func TestConnString(t *testing.T) {
	cfg := config.Database{Host: "localhost", Port: 5432, User: "venuecal", Pass: "it's", Name: "venuecal", Schema: "venuecal"}

	assert.Equal(t,
		`host=localhost port=5432 user=venuecal password='it\'s' dbname=venuecal sslmode=disable options='-c search_path=venuecal'`,
		connString(cfg))
}

func TestMigrateUrl(t *testing.T) {
	cfg := config.Database{Host: "db", Port: 6543, User: "venuecal", Pass: "p@ss/word", Name: "venuecal", Schema: "venuecal"}

	assert.Equal(t,
		"postgres://venuecal:p%40ss%2Fword@db:6543/venuecal?sslmode=disable&search_path=venuecal",
		migrateUrl(cfg))
}

func TestFindMigrationsPath(t *testing.T) {
	path, err := findMigrationsPath()

	assert.NoError(t, err)
	assert.Contains(t, path, "migrations")
}
