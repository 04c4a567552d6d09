package persistence

import (
	"errors"

	"github.com/inmobiliaria/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// translateError maps the driver-neutral errors GORM produces with
// TranslateError enabled onto domain errors. Other errors pass through.
func translateError(err error, entity string, id any) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.NewNotFoundError(entity, id)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.NewDomainError(shared.CodeAlreadyExists, entity+" violates a unique constraint")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return shared.NewConflictError("%s %v is referenced by or references a missing record", entity, id)
	}
	return err
}
