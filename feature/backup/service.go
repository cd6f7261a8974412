package backup

import (
	"time"

	"backup-manager/feature/backup/store"

	"go.uber.org/zap"
)

// Service bundles the sync coordinator, scheduler, health reporter, and
// restore inspector behind one constructor for the HTTP handler and CLI.
type Service struct {
	Coordinator *Coordinator
	Scheduler   *Scheduler
	Health      *HealthReporter
	Restore     *RestoreInspector

	logger *zap.Logger
}

// NewService wires the backup components over the given stores. The archiver
// may be nil to disable run-report archiving.
func NewService(source store.Source, target store.Target, archiver *Archiver, syncTimeout time.Duration, logger *zap.Logger) *Service {
	coordinator := NewCoordinator(source, target, archiver, syncTimeout, logger)
	return &Service{
		Coordinator: coordinator,
		Scheduler:   NewScheduler(coordinator.RunFullSync, logger),
		Health:      NewHealthReporter(source, target, logger),
		Restore:     NewRestoreInspector(target),
		logger:      logger,
	}
}
