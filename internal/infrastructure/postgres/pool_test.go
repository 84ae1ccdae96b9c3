package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/distribuidora-api/pkg/config"
)

func TestPoolConfigFrom_DSNYTamaño(t *testing.T) {
	cfg := config.DBConfig{
		Host:            "db.local",
		Port:            5433,
		User:            "app",
		Password:        "s3cr#t",
		DBName:          "distribuidora",
		SSLMode:         "disable",
		MaxConns:        8,
		MinConns:        2,
		ConnMaxLifetime: 20 * time.Minute,
	}
	pc, err := poolConfigFrom(cfg)
	require.NoError(t, err)

	assert.Equal(t, "db.local", pc.ConnConfig.Host)
	assert.Equal(t, uint16(5433), pc.ConnConfig.Port)
	assert.Equal(t, "s3cr#t", pc.ConnConfig.Password)
	assert.Equal(t, "distribuidora", pc.ConnConfig.Database)
	assert.Equal(t, int32(8), pc.MaxConns)
	assert.Equal(t, int32(2), pc.MinConns)
	assert.Equal(t, 20*time.Minute, pc.MaxConnLifetime)
	assert.NotNil(t, pc.AfterConnect, "registra el codec NUMERIC <-> decimal")
}

func TestPoolConfigFrom_DatabaseURLTienePrioridad(t *testing.T) {
	cfg := config.DBConfig{
		DatabaseURL: "postgres://u:p@remoto:6543/otra?sslmode=disable",
		Host:        "ignorado",
		Port:        5432,
		DBName:      "x",
		MinConns:    50,
	}
	pc, err := poolConfigFrom(cfg)
	require.NoError(t, err)

	assert.Equal(t, "remoto", pc.ConnConfig.Host)
	assert.Equal(t, uint16(6543), pc.ConnConfig.Port)
	assert.Equal(t, "otra", pc.ConnConfig.Database)
	assert.LessOrEqual(t, pc.MinConns, pc.MaxConns, "MinConns mayor que MaxConns se ignora")
}

func TestPoolConfigFrom_URLInvalida(t *testing.T) {
	_, err := poolConfigFrom(config.DBConfig{DatabaseURL: "postgres://u:p@host:puerto/db"})
	assert.Error(t, err)
}
