package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.DB.Driver)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.True(t, cfg.Ledger.AuditRecordLines)
	assert.False(t, cfg.Ledger.AllowNegativeOverride)
	assert.True(t, cfg.Ledger.LowStockThreshold.Equal(decimal.NewFromInt(10)))
	assert.True(t, cfg.Ledger.DefaultCommissionRate.Equal(decimal.RequireFromString("0.05")))
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "", cfg.Admin.InitialPassword)
	assert.Equal(t, int32(25), cfg.DB.MaxConns)
	assert.Equal(t, int32(2), cfg.DB.MinConns)
	assert.Equal(t, time.Hour, cfg.DB.ConnMaxLifetime)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("DB_DRIVER", "SQLite")
	v.Set("DB_SQLITE_PATH", "/tmp/x.db")
	v.Set("LEDGER_AUDIT_RECORD_LINES", "false")
	v.Set("LEDGER_ALLOW_NEGATIVE_OVERRIDE", "true")
	v.Set("LEDGER_LOW_STOCK_THRESHOLD", "2.5")
	v.Set("HTTP_PORT", "9000")
	v.Set("DB_MAX_CONNS", "5")
	v.Set("DB_CONN_MAX_LIFETIME_MINUTES", "15")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, "/tmp/x.db", cfg.DB.SQLitePath)
	assert.False(t, cfg.Ledger.AuditRecordLines)
	assert.True(t, cfg.Ledger.AllowNegativeOverride)
	assert.Equal(t, "2.5", cfg.Ledger.LowStockThreshold.String())
	assert.Equal(t, 9000, cfg.HTTP.Port)
	assert.Equal(t, int32(5), cfg.DB.MaxConns)
	assert.Equal(t, 15*time.Minute, cfg.DB.ConnMaxLifetime)
}

func TestFromViper_Invalid(t *testing.T) {
	v := viper.New()
	v.Set("DB_DRIVER", "mysql")
	_, err := fromViper(v)
	assert.Error(t, err)

	v = viper.New()
	v.Set("LEDGER_DEFAULT_COMMISSION_RATE", "cinco")
	_, err = fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "d", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/d?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
