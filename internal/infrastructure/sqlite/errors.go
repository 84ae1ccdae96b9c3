package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/mattn/go-sqlite3"
)

func extendedCode(err error) sqlite3.ErrNoExtended {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode
	}
	return 0
}

func isUniqueViolation(err error) bool {
	code := extendedCode(err)
	return code == sqlite3.ErrConstraintUnique || code == sqlite3.ErrConstraintPrimaryKey
}

func isForeignKeyViolation(err error) bool {
	return extendedCode(err) == sqlite3.ErrConstraintForeignKey
}

// mapWriteError traduce errores de escritura a errores de dominio; el resto se envuelve con op.
func mapWriteError(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, domain.ErrDuplicate)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func expectAffected(res sql.Result, op, entityName, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return &domain.NotFoundError{Entity: entityName, ID: id}
	}
	return nil
}
