package backup

import (
	"context"
	"fmt"
	"testing"

	"backup-manager/feature/backup/models"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestHealthCheck_InSync(t *testing.T) {
	source := &fakeSource{
		builds: []models.Build{testBuild(1)},
		users:  []models.UserProfile{testUser("u1")},
	}
	target := newMemTarget()
	target.builds["1"] = testBuild(1)
	target.users["u1"] = testUser("u1")

	health := NewHealthReporter(source, target, zap.NewNop()).Check(context.Background())
	assert.Equal(t, StatusHealthy, health.Status)
	assert.True(t, health.InSync)
	assert.Empty(t, health.Error)
}

func TestHealthCheck_DivergentButHealthy(t *testing.T) {
	source := &fakeSource{
		builds: []models.Build{testBuild(1), testBuild(2)},
	}
	target := newMemTarget()
	target.builds["1"] = testBuild(1)

	health := NewHealthReporter(source, target, zap.NewNop()).Check(context.Background())
	assert.Equal(t, StatusHealthy, health.Status)
	assert.False(t, health.InSync)
	assert.Equal(t, int64(2), health.Counts.Builds)
	assert.Equal(t, int64(1), health.BackupCounts.Builds)
}

func TestHealthCheck_PrimaryUnreachable(t *testing.T) {
	source := &fakeSource{countsErr: fmt.Errorf("primary store unreachable")}

	health := NewHealthReporter(source, newMemTarget(), zap.NewNop()).Check(context.Background())
	assert.Equal(t, StatusUnhealthy, health.Status)
	assert.Contains(t, health.Error, "unreachable")
}

func TestHealthCheck_ReplicaUnreachable(t *testing.T) {
	source := &fakeSource{builds: []models.Build{testBuild(1)}}
	target := newMemTarget()
	target.countsErr = fmt.Errorf("replica unreachable")

	health := NewHealthReporter(source, target, zap.NewNop()).Check(context.Background())
	assert.Equal(t, StatusUnhealthy, health.Status)
	assert.Equal(t, int64(1), health.Counts.Builds)
	assert.Contains(t, health.Error, "unreachable")
}
