package database

import (
	"net/url"
	"testing"

	"clinic-portal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationURL(t *testing.T) {
	raw := MigrationURL(config.DBConfig{
		Host:     "db",
		Port:     "5432",
		User:     "clinic",
		Password: "p@ss/word",
		Name:     "clinic",
		SSLMode:  "disable",
	})

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "pgx5", u.Scheme)
	assert.Equal(t, "db:5432", u.Host)
	assert.Equal(t, "/clinic", u.Path)
	assert.Equal(t, "disable", u.Query().Get("sslmode"))

	password, _ := u.User.Password()
	assert.Equal(t, "p@ss/word", password)
}
