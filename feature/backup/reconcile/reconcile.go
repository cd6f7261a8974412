package reconcile

import (
	"context"
	"fmt"
)

// Outcome is the result of reconciling a single record against the replica.
type Outcome string

const (
	// OutcomeCreated means the record did not exist in the replica and was created.
	OutcomeCreated Outcome = "created"
	// OutcomeUpdated means the record existed and its owned fields were updated.
	OutcomeUpdated Outcome = "updated"
	// OutcomeDuplicate means the record's natural key was already taken by a
	// different identity; it was created under a disambiguated key instead of
	// overwriting or being dropped.
	OutcomeDuplicate Outcome = "duplicate"
)

// Record is one source-store snapshot to project into the replica.
type Record interface {
	// EntityType names the entity for logging ("build", "order", ...).
	EntityType() string
	// Identity is the record's primary identity in the source store.
	Identity() string
	// NaturalKey is the business-level dedup key used when the identity is
	// unknown to the replica. Equals Identity for types without one.
	NaturalKey() string
	// Validate reports whether the record carries its required fields.
	Validate() error
}

// Accessor is the replica-side view for a single entity type. Implementations
// perform the actual lookups and writes; this package only decides.
type Accessor interface {
	// ExistsByIdentity reports whether a record with the given identity exists.
	ExistsByIdentity(ctx context.Context, identity string) (bool, error)
	// FindByNaturalKey returns the identity of the replica record sharing the
	// record's natural key, if any.
	FindByNaturalKey(ctx context.Context, rec Record) (identity string, found bool, err error)
	// Insert creates a new record carrying the full field set.
	Insert(ctx context.Context, rec Record) error
	// InsertDisambiguated creates the record under a disambiguated natural key
	// (see DisambiguatedKey) so colliding data is never silently dropped.
	InsertDisambiguated(ctx context.Context, rec Record) error
	// Update applies a partial update containing exactly the fields owned by
	// this entity type. No field deletion.
	Update(ctx context.Context, rec Record) error
}

// DisambiguatedKey forms the replacement natural key for a collision by
// appending the source identity, e.g. "FF100" + "11" -> "FF100-11".
func DisambiguatedKey(naturalKey, identity string) string {
	return naturalKey + "-" + identity
}

// One reconciles a single source record against the replica:
//
//  1. Found by identity: partial update of owned fields, OutcomeUpdated.
//  2. Natural key held by a different identity: create under a disambiguated
//     key, OutcomeDuplicate.
//  3. Otherwise: create with the full field set, OutcomeCreated.
//
// Persistence errors are returned to the caller, which owns the continuation
// policy; One never decides whether the batch keeps going.
func One(ctx context.Context, rec Record, target Accessor) (Outcome, error) {
	if err := rec.Validate(); err != nil {
		return "", fmt.Errorf("invalid %s record %q: %w", rec.EntityType(), rec.Identity(), err)
	}

	exists, err := target.ExistsByIdentity(ctx, rec.Identity())
	if err != nil {
		return "", fmt.Errorf("identity lookup for %s %q: %w", rec.EntityType(), rec.Identity(), err)
	}
	if exists {
		if err := target.Update(ctx, rec); err != nil {
			return "", fmt.Errorf("update of %s %q: %w", rec.EntityType(), rec.Identity(), err)
		}
		return OutcomeUpdated, nil
	}

	owner, found, err := target.FindByNaturalKey(ctx, rec)
	if err != nil {
		return "", fmt.Errorf("natural key lookup for %s %q: %w", rec.EntityType(), rec.Identity(), err)
	}
	if found && owner != rec.Identity() {
		if err := target.InsertDisambiguated(ctx, rec); err != nil {
			return "", fmt.Errorf("disambiguated insert of %s %q: %w", rec.EntityType(), rec.Identity(), err)
		}
		return OutcomeDuplicate, nil
	}

	if err := target.Insert(ctx, rec); err != nil {
		return "", fmt.Errorf("insert of %s %q: %w", rec.EntityType(), rec.Identity(), err)
	}
	return OutcomeCreated, nil
}
