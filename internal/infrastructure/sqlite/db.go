// Package sqlite implementa los repositorios sobre SQLite (sqlx + go-sqlite3).
// Se usa con DB_DRIVER=sqlite y en los tests de integración con bases en memoria.
package sqlite

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Querier es lo común entre *sqlx.DB y *sqlx.Tx.
type Querier interface {
	sqlx.ExtContext
}

// Open abre la base y aplica el esquema si migrate es true.
// Usa una sola conexión: SQLite serializa las escrituras y una base ":memory:" vive en su conexión.
func Open(ctx context.Context, path string, migrate bool) (*sqlx.DB, error) {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	dsn := path + sep + "_foreign_keys=on&_busy_timeout=5000"

	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if migrate {
		if err := Migrate(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
	}
	return db, nil
}

// Migrate aplica el esquema (idempotente).
func Migrate(ctx context.Context, q Querier) error {
	if _, err := q.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("aplicar esquema: %w", err)
	}
	return nil
}
