package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"strainbrain/domain/config"
	"strainbrain/domain/core/entities"
	"strainbrain/domain/core/valueobjects"
	"strainbrain/infrastructure/messaging/membus"
	"strainbrain/infrastructure/persistence/memory"
)

func newTestRouter(t *testing.T) (*RelevanceRouter, *memory.ThoughtMemoryStore, *memory.RoleRegistryStore) {
	t.Helper()
	logger := zap.NewNop()
	thoughts := memory.NewThoughtMemoryStore(logger)
	roles := memory.NewRoleRegistryStore(membus.NewBus(logger), logger)
	require.NoError(t, SeedTroupe(context.Background(), roles))
	return NewRelevanceRouter(thoughts, roles, config.DefaultDomainConfig(), logger), thoughts, roles
}

func TestRelevantRolesMatchesEngineerOnArithmetic(t *testing.T) {
	router, _, _ := newTestRouter(t)

	matched := router.RelevantRoles(context.Background(), "the thought that 2+2=4")

	var ids []string
	for _, role := range matched {
		ids = append(ids, role.ID())
	}
	assert.Contains(t, ids, "engineer")
	assert.Contains(t, ids, "stage_manager", "the coordinator matches everything")
}

func TestRelevantRolesAlwaysIncludesCoordinator(t *testing.T) {
	router, _, _ := newTestRouter(t)

	matched := router.RelevantRoles(context.Background(), "xylophone quartz")

	require.Len(t, matched, 1)
	assert.Equal(t, "stage_manager", matched[0].ID())
}

func TestRelevantRolesCapsWorkers(t *testing.T) {
	router, _, _ := newTestRouter(t)

	// Hits engineer, skeptic, investigator, philosopher and linguist.
	content := "calculate why the argument about meaning of a word holds"
	matched := router.RelevantRoles(context.Background(), content)

	workers := 0
	for _, role := range matched {
		if role.Kind() == entities.KindWorker {
			workers++
		}
	}
	assert.LessOrEqual(t, workers, config.DefaultDomainConfig().MaxWorkerRoles)
}

func TestProcessQueryOrdersExactMatchFirst(t *testing.T) {
	router, thoughts, _ := newTestRouter(t)
	ctx := context.Background()

	conns := []valueobjects.EntityID{valueobjects.NewEntityID(1)}

	a, err := thoughts.CreateThought(ctx, "gravity", "", conns, true, "user", 1.0)
	require.NoError(t, err)
	b, err := thoughts.CreateThought(ctx, "unrelated", "a note about gravity", conns, false, "", 0.5)
	require.NoError(t, err)

	results := router.ProcessQuery(ctx, "gravity")
	require.Len(t, results, 2)

	assert.Equal(t, a.ID(), results[0].Thought.ID())
	assert.Equal(t, b.ID(), results[1].Thought.ID())
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestProcessQueryDropsLowRelevance(t *testing.T) {
	router, thoughts, _ := newTestRouter(t)
	ctx := context.Background()

	conns := []valueobjects.EntityID{valueobjects.NewEntityID(1)}

	// Description match at 0.5 scaled by confidence 0.1 falls under the floor.
	_, err := thoughts.CreateThought(ctx, "faint", "mentions gravity in passing", conns, false, "", 0.1)
	require.NoError(t, err)

	assert.Empty(t, router.ProcessQuery(ctx, "gravity"))
}

func TestProcessQueryClampsBoostedScore(t *testing.T) {
	router, thoughts, _ := newTestRouter(t)
	ctx := context.Background()

	conns := []valueobjects.EntityID{valueobjects.NewEntityID(1)}

	// Exact match, verified, full confidence: 1.0 * 1.2 clamps back to 1.0.
	_, err := thoughts.CreateThought(ctx, "gravity", "", conns, true, "user", 1.0)
	require.NoError(t, err)

	results := router.ProcessQuery(ctx, "gravity")
	require.Len(t, results, 1)
	assert.Equal(t, 1.0, results[0].Score)
}

func TestProcessQueryEmptyQuery(t *testing.T) {
	router, _, _ := newTestRouter(t)
	assert.Nil(t, router.ProcessQuery(context.Background(), "   "))
}
