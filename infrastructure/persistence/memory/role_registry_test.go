package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"strainbrain/domain/core/entities"
	"strainbrain/infrastructure/messaging/membus"
)

func newRegistry(t *testing.T) *RoleRegistryStore {
	t.Helper()
	logger := zap.NewNop()
	return NewRoleRegistryStore(membus.NewBus(logger), logger)
}

func seedRole(t *testing.T, registry *RoleRegistryStore, id string, kind entities.RoleKind) *entities.RoleDescriptor {
	t.Helper()
	role, err := entities.NewRoleDescriptor(id, id, kind, []string{"test"}, "")
	require.NoError(t, err)
	require.NoError(t, registry.Register(context.Background(), role))
	return role
}

func TestCoordinatorCannotBeDeactivated(t *testing.T) {
	registry := newRegistry(t)
	ctx := context.Background()
	seedRole(t, registry, "stage_manager", entities.KindCoordinator)

	changed, err := registry.Transition(ctx, "stage_manager", entities.StateInactive)
	require.NoError(t, err, "deactivating the coordinator is a no-op, not an error")
	assert.False(t, changed)

	role, ok := registry.Get(ctx, "stage_manager")
	require.True(t, ok)
	assert.Equal(t, entities.StateActive, role.State())
}

func TestWorkerDispatchCycle(t *testing.T) {
	registry := newRegistry(t)
	ctx := context.Background()
	seedRole(t, registry, "engineer", entities.KindWorker)

	changed, err := registry.Transition(ctx, "engineer", entities.StateActive)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = registry.Transition(ctx, "engineer", entities.StateAvailable)
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestWorkerCannotActivateFromInactive(t *testing.T) {
	registry := newRegistry(t)
	ctx := context.Background()
	seedRole(t, registry, "dreamer", entities.KindWorker)

	_, err := registry.Transition(ctx, "dreamer", entities.StateInactive)
	require.NoError(t, err)

	_, err = registry.Transition(ctx, "dreamer", entities.StateActive)
	assert.Error(t, err, "withdrawn workers rejoin the pool before activating")
}

func TestAvailableFiltersByState(t *testing.T) {
	registry := newRegistry(t)
	ctx := context.Background()
	seedRole(t, registry, "stage_manager", entities.KindCoordinator)
	seedRole(t, registry, "narrator", entities.KindInterface)
	seedRole(t, registry, "engineer", entities.KindWorker)
	seedRole(t, registry, "skeptic", entities.KindWorker)

	available := registry.Available(ctx)
	require.Len(t, available, 2)
	for _, role := range available {
		assert.Equal(t, entities.KindWorker, role.Kind())
	}

	coordinator, ok := registry.Coordinator(ctx)
	require.True(t, ok)
	assert.Equal(t, "stage_manager", coordinator.ID())
}

func TestRelaxAllReducesStrain(t *testing.T) {
	registry := newRegistry(t)
	ctx := context.Background()
	seedRole(t, registry, "engineer", entities.KindWorker)

	require.NoError(t, registry.AddStrain(ctx, "engineer", 0.8))
	registry.RelaxAll(ctx, 0.5)

	role, ok := registry.Get(ctx, "engineer")
	require.True(t, ok)
	assert.InDelta(t, 0.4, role.Strain(), 1e-9)
}
