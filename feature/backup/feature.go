package backup

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature adapts the backup service to the loader interface.
type Feature struct {
	service       *Service
	logger        *zap.Logger
	autoStart     bool
	intervalHours int
}

// NewFeature creates the loadable backup feature. When autoStart is set,
// loading arms the scheduler at the given interval.
func NewFeature(service *Service, autoStart bool, intervalHours int, logger *zap.Logger) *Feature {
	return &Feature{
		service:       service,
		logger:        logger,
		autoStart:     autoStart,
		intervalHours: intervalHours,
	}
}

// Name returns the feature name.
func (f *Feature) Name() string { return "backup" }

// IsEnabled reports whether the feature should load. Always true; the
// feature is the reason this service exists.
func (f *Feature) IsEnabled() bool { return true }

// Load registers routes and optionally starts the scheduler.
func (f *Feature) Load(app fiber.Router) error {
	handler := NewHandler(f.service)
	handler.RegisterRoutes(app)

	if f.autoStart {
		f.service.Scheduler.Start(f.intervalHours)
	}
	return nil
}

// Shutdown stops the scheduler.
func (f *Feature) Shutdown() {
	f.service.Scheduler.Stop()
}
