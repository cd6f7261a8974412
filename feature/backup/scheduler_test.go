package backup

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func noopRun(ctx context.Context) (Summary, error) {
	return Summary{}, nil
}

func TestScheduler_DefaultsStopped(t *testing.T) {
	s := NewScheduler(noopRun, zap.NewNop())

	status := s.Status()
	assert.Equal(t, DefaultIntervalHours, status.IntervalHours)
	assert.False(t, status.IsRunning)
	assert.Nil(t, status.NextBackupTimestamp)
}

func TestScheduler_UpdateIntervalBounds(t *testing.T) {
	tests := []struct {
		name  string
		hours int
		valid bool
	}{
		{name: "below minimum", hours: 0, valid: false},
		{name: "negative", hours: -3, valid: false},
		{name: "above maximum", hours: 25, valid: false},
		{name: "minimum", hours: 1, valid: true},
		{name: "maximum", hours: 24, valid: true},
		{name: "midrange", hours: 12, valid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScheduler(noopRun, zap.NewNop())

			status, err := s.UpdateInterval(tt.hours)
			if !tt.valid {
				require.ErrorIs(t, err, ErrIntervalOutOfRange)
				// Rejected updates leave the prior state untouched.
				assert.Equal(t, DefaultIntervalHours, status.IntervalHours)
				assert.False(t, status.IsRunning)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.hours, status.IntervalHours)
		})
	}
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler(noopRun, zap.NewNop())
	armed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return armed }

	s.Start(0)
	defer s.Stop()

	status := s.Status()
	assert.True(t, status.IsRunning)
	assert.Equal(t, DefaultIntervalHours, status.IntervalHours)
	require.NotNil(t, status.NextBackupTimestamp)
	assert.Equal(t, armed.Add(DefaultIntervalHours*time.Hour), *status.NextBackupTimestamp)

	// Starting twice is a no-op.
	s.Start(2)
	assert.Equal(t, DefaultIntervalHours, s.Status().IntervalHours)

	s.Stop()
	status = s.Status()
	assert.False(t, status.IsRunning)
	assert.Nil(t, status.NextBackupTimestamp)

	// Stopping twice is a no-op.
	s.Stop()
	assert.False(t, s.Status().IsRunning)
}

func TestScheduler_StartWithOutOfRangeIntervalKeepsCurrent(t *testing.T) {
	s := NewScheduler(noopRun, zap.NewNop())

	s.Start(48)
	defer s.Stop()

	status := s.Status()
	assert.True(t, status.IsRunning)
	assert.Equal(t, DefaultIntervalHours, status.IntervalHours)
}

func TestScheduler_UpdateIntervalWhileRunning(t *testing.T) {
	s := NewScheduler(noopRun, zap.NewNop())
	s.Start(6)
	defer s.Stop()

	status, err := s.UpdateInterval(2)
	require.NoError(t, err)
	assert.True(t, status.IsRunning, "a running scheduler stays running across an interval change")
	assert.Equal(t, 2, status.IntervalHours)

	// An invalid update while running changes nothing.
	status, err = s.UpdateInterval(25)
	require.ErrorIs(t, err, ErrIntervalOutOfRange)
	assert.True(t, status.IsRunning)
	assert.Equal(t, 2, status.IntervalHours)
}

func TestScheduler_TriggerImmediate(t *testing.T) {
	s := NewScheduler(func(ctx context.Context) (Summary, error) {
		return Summary{Builds: 2, Orders: 1}, nil
	}, zap.NewNop())

	result := s.TriggerImmediate(context.Background())
	assert.True(t, result.Success)
	assert.Contains(t, result.Message, "2 builds")
	assert.Empty(t, result.Error)
}

func TestScheduler_TriggerImmediateFailure(t *testing.T) {
	s := NewScheduler(func(ctx context.Context) (Summary, error) {
		return Summary{}, fmt.Errorf("primary store unreachable")
	}, zap.NewNop())

	result := s.TriggerImmediate(context.Background())
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "unreachable")
}
