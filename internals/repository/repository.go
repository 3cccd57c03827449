package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AryanVohra-Kiwi/library-management-system/internals/apperrors"
)

// forUpdate adds a row lock to the query. The sqlite dialect used by the
// tests serializes writes itself and rejects FOR UPDATE, so it is skipped.
func forUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "sqlite" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

// translateNotFound converts gorm's record-not-found into the service-level
// sentinel so callers never depend on the ORM's error types.
func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound
	}
	return err
}

// IsDuplicateKey reports whether err is a unique-constraint violation, the
// signal for a lost copy-number allocation race.
func IsDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
