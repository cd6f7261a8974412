package backup

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestoreInspect(t *testing.T) {
	target := newMemTarget()
	target.builds["1"] = testBuild(1)
	target.builds["2"] = testBuild(2)
	target.users["u1"] = testUser("u1")

	counts, err := NewRestoreInspector(target).Inspect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts.Builds)
	assert.Equal(t, int64(1), counts.Users)
}

func TestRestoreInspect_ReplicaUnreachable(t *testing.T) {
	target := newMemTarget()
	target.countsErr = fmt.Errorf("replica unreachable")

	_, err := NewRestoreInspector(target).Inspect(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to inspect replica contents")
}

func TestRestoreExecute_AlwaysRefused(t *testing.T) {
	inspector := NewRestoreInspector(newMemTarget())

	// Refusal is unconditional, regardless of replica contents or repetition.
	for i := 0; i < 3; i++ {
		err := inspector.Execute(context.Background())
		assert.ErrorIs(t, err, ErrRestoreDisabled)
	}
}
