package game

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/inkquest/internal/entity"
	"github.com/samdwyer/inkquest/internal/storage"
	"github.com/samdwyer/inkquest/internal/telemetry"
)

// LoadOrSeed returns the character stored under seed's name. When the
// character table does not exist yet, or holds no such character, the seed is
// written and returned. The bool reports whether seeding happened.
//
// Any other failure, including a stored record that no longer matches the
// character schema, is returned as is.
func LoadOrSeed(ctx context.Context, store *storage.Store, seed entity.Character) (entity.Character, bool, error) {
	ctx, span := telemetry.Tracer("game").Start(ctx, "storage.load_or_seed")
	defer span.End()

	c, seeded, err := loadOrSeed(ctx, store, seed)
	span.SetAttributes(
		attribute.String("character.name", seed.Key()),
		attribute.Bool("character.seeded", seeded),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return c, seeded, err
}

func loadOrSeed(ctx context.Context, store *storage.Store, seed entity.Character) (entity.Character, bool, error) {
	c, found, err := LoadCharacter(ctx, store, seed.Key())
	switch {
	case errors.Is(err, storage.ErrTableNotFound):
	case err != nil:
		return entity.Character{}, false, err
	case found:
		return c, false, nil
	}

	if err := SaveCharacter(ctx, store, seed); err != nil {
		return entity.Character{}, false, fmt.Errorf("seed character: %w", err)
	}
	return seed.Clone(), true, nil
}

// LoadCharacter reads one character in its own read transaction.
func LoadCharacter(ctx context.Context, store *storage.Store, name string) (entity.Character, bool, error) {
	txn, err := store.BeginRead(ctx)
	if err != nil {
		return entity.Character{}, false, err
	}
	defer txn.Rollback()

	b, found, err := txn.Get(ctx, storage.Characters, name)
	if err != nil || !found {
		return entity.Character{}, false, err
	}
	c, err := entity.Unmarshal(b)
	if err != nil {
		return entity.Character{}, false, fmt.Errorf("load character %q: %w", name, err)
	}
	return c, true, nil
}

// SaveCharacter writes c in its own write transaction, replacing any stored
// character of the same name.
func SaveCharacter(ctx context.Context, store *storage.Store, c entity.Character) error {
	b, err := entity.Marshal(c)
	if err != nil {
		return err
	}

	txn, err := store.BeginWrite(ctx)
	if err != nil {
		return err
	}
	defer txn.Rollback()

	if err := txn.Put(ctx, storage.Characters, c.Key(), b); err != nil {
		return err
	}
	return txn.Commit()
}
