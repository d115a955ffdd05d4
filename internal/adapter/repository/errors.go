// Package repository provides the SQLite implementations of the repository
// interfaces, built on squirrel query building and sqlx row mapping.
package repository

import (
	"database/sql"
	"errors"

	"github.com/mattn/go-sqlite3"

	"github.com/madpixels/lingocards/internal/entity"
)

// translateError recovers storage failures into domain errors at the adapter
// boundary. Unique-constraint violations become the duplicate-entity error so
// callers can distinguish "already exists" from a generic write failure.
func translateError(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return entity.ErrDictionaryExists
		}
	}
	return err
}
