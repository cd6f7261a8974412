package store

import (
	"context"

	"backup-manager/feature/backup/models"
	"backup-manager/feature/backup/reconcile"
)

// Source lists entity snapshots from the authoritative primary store.
// Implementations are strictly read-only.
type Source interface {
	Builds(ctx context.Context) ([]models.Build, error)
	Users(ctx context.Context) ([]models.UserProfile, error)
	Orders(ctx context.Context) ([]models.Order, error)
	Inquiries(ctx context.Context) ([]models.Inquiry, error)
	// Counts returns per-entity record counts for health reporting.
	Counts(ctx context.Context) (models.Counts, error)
}

// Target exposes the replica store: one reconcile accessor per entity type,
// plus counts and explicit maintenance operations. The replica tolerates
// concurrent writers; each entity-type sync acts as an independent writer.
type Target interface {
	BuildTarget() reconcile.Accessor
	UserTarget() reconcile.Accessor
	OrderTarget() reconcile.Accessor
	InquiryTarget() reconcile.Accessor
	// Counts returns per-entity record counts on the replica.
	Counts(ctx context.Context) (models.Counts, error)
	// Clear truncates all replica tables. Maintenance only; never part of
	// the reconciliation loop.
	Clear(ctx context.Context) error
}
