package reconcile

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Lookup resolves a natural key (the upstream id) to the persisted entity.
// It returns nil, nil when no row carries the key.
type Lookup[T any] func(ctx context.Context, key int) (*T, error)

// FindOrNew looks the key up and constructs a zero entity when it is absent.
// The returned outcome says whether persisting the entity will insert or update.
func FindOrNew[T any](ctx context.Context, lookup Lookup[T], key int) (*T, Outcome, error) {
	existing, err := lookup(ctx, key)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return existing, OutcomeUpdated, nil
	}
	return new(T), OutcomeInserted, nil
}

// Persist runs save and resolves a lost insert race.
//
// When an insert fails with gorm.ErrDuplicatedKey another writer created the row
// between the lookup and the insert. adopt must then point the entity at the
// winning row; save is retried once and the outcome becomes an update.
// Duplicate errors on updates are returned unchanged.
func Persist(ctx context.Context, outcome Outcome, save func(context.Context) error, adopt func(context.Context) error) (Outcome, error) {
	err := save(ctx)
	if err == nil {
		return outcome, nil
	}
	if outcome != OutcomeInserted || !errors.Is(err, gorm.ErrDuplicatedKey) {
		return "", err
	}

	if err := adopt(ctx); err != nil {
		return "", err
	}
	if err := save(ctx); err != nil {
		return "", err
	}
	return OutcomeUpdated, nil
}
