package realestate

import (
	"context"
	"fmt"

	"github.com/inmobiliaria/backend/internal/domain/realestate"
	"github.com/inmobiliaria/backend/internal/domain/shared"
)

// allowedKeys lists the natural keys each entity type is unique on
var allowedKeys = map[realestate.EntityKind][]realestate.NaturalKey{
	realestate.EntityAgent:  {realestate.KeyIdentityNumber, realestate.KeyEmail},
	realestate.EntityClient: {realestate.KeyIdentityNumber, realestate.KeyEmail},
	realestate.EntityLot:    {realestate.KeyReference},
}

// UniquenessGuard checks natural keys before a record is inserted or its key changes.
// It only reads; the unique indexes in the schema catch whatever slips between
// the check and the insert.
type UniquenessGuard struct {
	repos Repositories
}

// NewUniquenessGuard creates a guard over the repositories of a unit of work
func NewUniquenessGuard(repos Repositories) *UniquenessGuard {
	return &UniquenessGuard{repos: repos}
}

// AssertUnique fails with an ALREADY_EXISTS error if a record of the given type
// already holds value in field
func (g *UniquenessGuard) AssertUnique(ctx context.Context, entity realestate.EntityKind, field realestate.NaturalKey, value string) error {
	lookup, err := g.lookupFor(entity, field)
	if err != nil {
		return err
	}
	exists, err := lookup.ExistsByNaturalKey(ctx, field, value)
	if err != nil {
		return fmt.Errorf("check %s %s uniqueness: %w", entity, field, err)
	}
	if exists {
		return shared.NewDuplicateKeyError(string(entity), string(field), value)
	}
	return nil
}

func (g *UniquenessGuard) lookupFor(entity realestate.EntityKind, field realestate.NaturalKey) (realestate.NaturalKeyLookup, error) {
	known := false
	for _, k := range allowedKeys[entity] {
		if k == field {
			known = true
			break
		}
	}
	if !known {
		return nil, shared.NewValidationError("%s has no natural key %s", entity, field)
	}

	switch entity {
	case realestate.EntityAgent:
		return g.repos.Agents(), nil
	case realestate.EntityClient:
		return g.repos.Clients(), nil
	default:
		return g.repos.Lots(), nil
	}
}
