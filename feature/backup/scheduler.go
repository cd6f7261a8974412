package backup

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Scheduler interval bounds, in whole hours.
const (
	DefaultIntervalHours = 6
	MinIntervalHours     = 1
	MaxIntervalHours     = 24
)

// ErrIntervalOutOfRange is returned when a requested interval falls outside
// [MinIntervalHours, MaxIntervalHours]. The scheduler's prior interval and
// running state are left unchanged.
var ErrIntervalOutOfRange = fmt.Errorf("interval must be between %d and %d hours", MinIntervalHours, MaxIntervalHours)

// TimerStatus describes the scheduler's current configuration.
type TimerStatus struct {
	IntervalHours int  `json:"intervalHours"`
	IsRunning     bool `json:"isRunning"`
	// NextBackupTimestamp is armed-at plus the interval, only when running.
	NextBackupTimestamp *time.Time `json:"nextBackupTimestamp"`
}

// TriggerResult is the caller-facing outcome of an on-demand sync. It never
// carries per-record detail; that lives only in logs.
type TriggerResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Scheduler drives unattended syncs on a repeating timer and supports
// on-demand triggering. It is a constructed instance, not a process-wide
// singleton; the clock is injectable for deterministic tests.
//
// The configured interval is in-memory state with no durability: a process
// restart resets it to DefaultIntervalHours. This is an accepted operational
// characteristic.
type Scheduler struct {
	run    func(context.Context) (Summary, error)
	logger *zap.Logger
	now    func() time.Time

	mu            sync.Mutex
	intervalHours int
	running       bool
	armedAt       time.Time
	stop          chan struct{}
}

// NewScheduler creates a stopped scheduler that invokes run on each tick.
func NewScheduler(run func(context.Context) (Summary, error), logger *zap.Logger) *Scheduler {
	return &Scheduler{
		run:           run,
		logger:        logger,
		now:           time.Now,
		intervalHours: DefaultIntervalHours,
	}
}

// Start arms the repeating timer. Starting an already-running scheduler is a
// no-op that logs a warning. An interval of 0 keeps the current setting; an
// out-of-range interval falls back to the current setting with a warning.
func (s *Scheduler) Start(intervalHours int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.logger.Warn("Scheduler already running, start ignored")
		return
	}
	if intervalHours != 0 {
		if intervalHours < MinIntervalHours || intervalHours > MaxIntervalHours {
			s.logger.Warn("Configured interval out of range, keeping current",
				zap.Int("requested", intervalHours),
				zap.Int("current", s.intervalHours),
			)
		} else {
			s.intervalHours = intervalHours
		}
	}
	s.armLocked()
	s.logger.Info("Scheduler started", zap.Int("interval_hours", s.intervalHours))
}

// Stop disarms the timer. Stopping a stopped scheduler is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	close(s.stop)
	s.running = false
	s.logger.Info("Scheduler stopped")
}

// UpdateInterval validates the new interval, then stops and restarts the
// timer at the new period if running. Validation happens before any timer
// mutation, so a rejected update leaves no partial state change.
func (s *Scheduler) UpdateInterval(hours int) (TimerStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if hours < MinIntervalHours || hours > MaxIntervalHours {
		return s.statusLocked(), ErrIntervalOutOfRange
	}

	s.intervalHours = hours
	if s.running {
		close(s.stop)
		s.armLocked()
	}
	s.logger.Info("Scheduler interval updated", zap.Int("interval_hours", hours))
	return s.statusLocked(), nil
}

// TriggerImmediate invokes one sync outside the timer cadence. It never
// returns an error to the caller; failures surface in the result.
func (s *Scheduler) TriggerImmediate(ctx context.Context) TriggerResult {
	summary, err := s.run(ctx)
	if err != nil {
		s.logger.Error("Immediate sync failed", zap.Error(err))
		return TriggerResult{Success: false, Error: err.Error()}
	}
	return TriggerResult{
		Success: true,
		Message: fmt.Sprintf("Backup completed: %s", summary),
	}
}

// Status returns the current timer configuration.
func (s *Scheduler) Status() TimerStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

func (s *Scheduler) statusLocked() TimerStatus {
	status := TimerStatus{
		IntervalHours: s.intervalHours,
		IsRunning:     s.running,
	}
	if s.running {
		next := s.armedAt.Add(time.Duration(s.intervalHours) * time.Hour)
		status.NextBackupTimestamp = &next
	}
	return status
}

// armLocked starts the timer goroutine. Callers hold s.mu.
func (s *Scheduler) armLocked() {
	stop := make(chan struct{})
	s.stop = stop
	s.running = true
	s.armedAt = s.now()
	go s.loop(stop, time.Duration(s.intervalHours)*time.Hour)
}

func (s *Scheduler) loop(stop chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			s.armedAt = s.now()
			s.mu.Unlock()

			s.logger.Info("Scheduled sync tick")
			if _, err := s.run(context.Background()); err != nil {
				// Timer-triggered failures never crash the process.
				s.logger.Error("Scheduled sync failed", zap.Error(err))
			}
		}
	}
}
