package backup

import (
	"context"
	"errors"
	"fmt"

	"backup-manager/feature/backup/models"
	"backup-manager/feature/backup/store"
)

// ErrRestoreDisabled is returned by every path that requests an actual
// replica-to-primary restore. The restore is intentionally not implemented:
// a partial or interrupted write-back into the authoritative store is worse
// than no restore at all. This is a design constraint, not a missing feature.
var ErrRestoreDisabled = errors.New("restore is not implemented for safety, use direct store tooling")

// RestoreInspector reports what a restore from the replica would contain,
// without mutating the primary store.
type RestoreInspector struct {
	target store.Target
}

// NewRestoreInspector creates a read-only restore inspector over the replica.
func NewRestoreInspector(target store.Target) *RestoreInspector {
	return &RestoreInspector{target: target}
}

// Inspect returns the replica-side record counts per entity type.
func (r *RestoreInspector) Inspect(ctx context.Context) (models.Counts, error) {
	counts, err := r.target.Counts(ctx)
	if err != nil {
		return models.Counts{}, fmt.Errorf("failed to inspect replica contents: %w", err)
	}
	return counts, nil
}

// Execute always refuses. See ErrRestoreDisabled.
func (r *RestoreInspector) Execute(ctx context.Context) error {
	return ErrRestoreDisabled
}
