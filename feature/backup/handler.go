package backup

import (
	"errors"
	"fmt"

	"backup-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for backup operations.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the backup routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/backup")
	group.Post("/full", h.HandleFullBackup)
	group.Post("/immediate", h.HandleImmediateBackup)
	group.Get("/health", h.HandleHealthCheck)
	group.Get("/timer", h.HandleTimerStatus)
	group.Put("/timer", h.HandleUpdateTimer)
	group.Get("/restore", h.HandleRestoreInfo)
	group.Post("/restore", h.HandleExecuteRestore)
}

// HandleFullBackup runs a full sync from the primary store into the replica.
// @Summary Run Full Backup
// @Description Reconciles every entity type from the primary store into the replica. Overlapping invocations coalesce into one run.
// @Tags backup
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Backup Result"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /backup/full [post]
func (h *Handler) HandleFullBackup(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Full backup triggered")

	summary, err := h.service.Coordinator.RunFullSync(c.Context())
	if err != nil {
		l.Error("Full backup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Backup completed: %s", summary),
	})
}

// HandleImmediateBackup runs one sync outside the timer cadence.
// @Summary Trigger Immediate Backup
// @Description Invokes the sync coordinator once, outside the scheduler cadence.
// @Tags backup
// @Accept json
// @Produce json
// @Success 200 {object} backup.TriggerResult "Trigger Result"
// @Failure 500 {object} backup.TriggerResult "Trigger Failure"
// @Router /backup/immediate [post]
func (h *Handler) HandleImmediateBackup(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Immediate backup triggered")

	result := h.service.Scheduler.TriggerImmediate(c.Context())
	if !result.Success {
		return c.Status(fiber.StatusInternalServerError).JSON(result)
	}
	return c.JSON(result)
}

// HandleHealthCheck reports record counts on both stores and sync status.
// @Summary Backup Health Check
// @Description Compares per-entity record counts between the primary store and the replica. Divergence between reachable stores is healthy with inSync false.
// @Tags backup
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Health Report"
// @Failure 503 {object} map[string]interface{} "Store Unreachable"
// @Router /backup/health [get]
func (h *Handler) HandleHealthCheck(c *fiber.Ctx) error {
	health := h.service.Health.Check(c.Context())

	if health.Status == StatusUnhealthy {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"success": false,
			"health":  health,
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"health":  health,
	})
}

// HandleTimerStatus returns the scheduler configuration.
// @Summary Get Timer Status
// @Description Returns the scheduler interval, running state, and next backup timestamp.
// @Tags backup
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Timer Status"
// @Router /backup/timer [get]
func (h *Handler) HandleTimerStatus(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"timer":   h.service.Scheduler.Status(),
	})
}

type updateTimerRequest struct {
	IntervalHours int `json:"intervalHours"`
}

// HandleUpdateTimer changes the scheduler interval.
// @Summary Update Backup Timer
// @Description Updates the scheduler interval in whole hours, bounded to [1,24]. Restarts the timer when running.
// @Tags backup
// @Accept json
// @Produce json
// @Param request body backup.updateTimerRequest true "New interval"
// @Success 200 {object} map[string]interface{} "Updated Configuration"
// @Failure 400 {object} map[string]string "Invalid Interval"
// @Router /backup/timer [put]
func (h *Handler) HandleUpdateTimer(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req updateTimerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "invalid request body",
		})
	}

	status, err := h.service.Scheduler.UpdateInterval(req.IntervalHours)
	if err != nil {
		if errors.Is(err, ErrIntervalOutOfRange) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		}
		l.Error("Timer update failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"intervalHours": status.IntervalHours,
		"message":       fmt.Sprintf("Backup interval updated to %d hours", status.IntervalHours),
	})
}

// HandleRestoreInfo reports what a restore from the replica would contain.
// @Summary Restore Information
// @Description Reports replica-side record counts per entity type. Informational only; restore execution is disabled.
// @Tags backup
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Restore Info"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /backup/restore [get]
func (h *Handler) HandleRestoreInfo(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	counts, err := h.service.Restore.Inspect(c.Context())
	if err != nil {
		l.Error("Restore inspection failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf(
			"Restore would recreate %d builds, %d orders, %d users, %d inquiries from the replica; execution is disabled",
			counts.Builds, counts.Orders, counts.Users, counts.Inquiries,
		),
		"counts": counts,
	})
}

// HandleExecuteRestore always refuses to run a destructive restore.
// @Summary Execute Restore (Disabled)
// @Description Always rejected. Restoring the primary store from the replica is intentionally not implemented.
// @Tags backup
// @Accept json
// @Produce json
// @Failure 501 {object} map[string]interface{} "Not Implemented"
// @Router /backup/restore [post]
func (h *Handler) HandleExecuteRestore(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Warn("Destructive restore requested and rejected")

	err := h.service.Restore.Execute(c.Context())
	return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
	})
}
