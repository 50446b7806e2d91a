package repository

import (
	"errors"
	"gestor-turnos/apperrors"

	"gorm.io/gorm"
)

// Translate maps gorm errors onto the apperrors taxonomy. It relies on
// gorm.Config.TranslateError so driver constraint errors arrive as gorm
// sentinels.
func Translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey),
		errors.Is(err, gorm.ErrForeignKeyViolated),
		errors.Is(err, gorm.ErrCheckConstraintViolated):
		return &apperrors.StoreError{Op: op, Err: err, Constraint: true}
	}
	return apperrors.Store(op, err)
}

// Transaction runs fn inside db.Transaction and keeps domain errors intact.
func Transaction(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return Translate("transaction", db.Transaction(fn))
}
