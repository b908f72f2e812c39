package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"strainbrain/domain/config"
	"strainbrain/domain/core/entities"
	"strainbrain/infrastructure/messaging/membus"
	"strainbrain/infrastructure/persistence/memory"
)

func newTestEngine(t *testing.T) (*StrainEngine, *memory.EntityGraphStore) {
	t.Helper()
	logger := zap.NewNop()
	graph := memory.NewEntityGraphStore(logger)
	bus := membus.NewBus(logger)
	return NewStrainEngine(graph, bus, config.DefaultDomainConfig(), logger), graph
}

func TestNodeResistanceMatchesEdgeAmplitude(t *testing.T) {
	engine, graph := newTestEngine(t)
	ctx := context.Background()

	paris, err := graph.CreateEntity(ctx, "Paris", entities.TypePlace, "capital of France")
	require.NoError(t, err)
	france, err := graph.CreateEntity(ctx, "France", entities.TypePlace, "country in Europe")
	require.NoError(t, err)

	rel, err := graph.CreateRelationship(ctx, paris.ID(), france.ID(), "capital_of")
	require.NoError(t, err)
	engine.InitializeRelationship(ctx, rel)

	engine.PropagateStrain(ctx, paris.ID(), 2)

	got := engine.NodeResistance(ctx, france.ID())
	assert.Equal(t, rel.Strain().Amplitude(), got,
		"resistance of a single-edge node equals that edge's amplitude")
}

func TestInitializeRelationshipUsesGravityLaw(t *testing.T) {
	engine, graph := newTestEngine(t)
	ctx := context.Background()

	a, err := graph.CreateEntity(ctx, "a", entities.TypeConcept, "")
	require.NoError(t, err)
	b, err := graph.CreateEntity(ctx, "b", entities.TypeConcept, "")
	require.NoError(t, err)

	rel, err := graph.CreateRelationship(ctx, a.ID(), b.ID(), "related_to")
	require.NoError(t, err)

	// Both endpoints are isolated before the edge gains amplitude, so
	// each has mass 0 + 1 and the force is 1 * 1 * 1 / 1.
	force := engine.InitializeRelationship(ctx, rel)
	assert.InDelta(t, 1.0, force, 1e-9)
	assert.InDelta(t, 1.0, rel.Strain().Amplitude(), 1e-9)
}

func TestPropagateStrainTerminatesOnCycle(t *testing.T) {
	engine, graph := newTestEngine(t)
	ctx := context.Background()

	var ids []*entities.Entity
	for _, name := range []string{"x", "y", "z"} {
		e, err := graph.CreateEntity(ctx, name, entities.TypeConcept, "")
		require.NoError(t, err)
		ids = append(ids, e)
	}
	for i := range ids {
		rel, err := graph.CreateRelationship(ctx, ids[i].ID(), ids[(i+1)%3].ID(), "linked_to")
		require.NoError(t, err)
		engine.InitializeRelationship(ctx, rel)
	}

	seed, ok := graph.GetEntity(ctx, ids[0].ID())
	require.True(t, ok)
	seed.ApplyStrain(seed.Strain().WithAmplitude(1.0))

	// A cycle of length 3 with depth 5 must still terminate.
	contradictory := engine.PropagateStrain(ctx, ids[0].ID(), 5)
	assert.Len(t, contradictory, 2, "both neighbors pushed past the dissonance threshold")

	for _, e := range graph.ListEntities(ctx) {
		assert.GreaterOrEqual(t, e.Strain().Amplitude(), 0.0)
	}
}

func TestPropagateStrainSkipsDanglingEdges(t *testing.T) {
	engine, graph := newTestEngine(t)
	ctx := context.Background()

	a, err := graph.CreateEntity(ctx, "a", entities.TypeConcept, "")
	require.NoError(t, err)
	b, err := graph.CreateEntity(ctx, "b", entities.TypeConcept, "")
	require.NoError(t, err)
	_, err = graph.CreateRelationship(ctx, a.ID(), b.ID(), "related_to")
	require.NoError(t, err)

	require.True(t, graph.DeleteEntity(ctx, b.ID()))

	a.ApplyStrain(a.Strain().WithAmplitude(0.8))
	contradictory := engine.PropagateStrain(ctx, a.ID(), 2)
	assert.Empty(t, contradictory)

	// The dangling edge no longer contributes to resistance either.
	assert.Zero(t, engine.NodeResistance(ctx, a.ID()))
}

func TestPropagateStrainMissingSeed(t *testing.T) {
	engine, graph := newTestEngine(t)
	ctx := context.Background()

	e, err := graph.CreateEntity(ctx, "only", entities.TypeConcept, "")
	require.NoError(t, err)
	require.True(t, graph.DeleteEntity(ctx, e.ID()))

	assert.Nil(t, engine.PropagateStrain(ctx, e.ID(), 2))
}

func TestAssignChordsIsDeterministic(t *testing.T) {
	engine, graph := newTestEngine(t)
	ctx := context.Background()

	a, err := graph.CreateEntity(ctx, "a", entities.TypeConcept, "")
	require.NoError(t, err)
	b, err := graph.CreateEntity(ctx, "b", entities.TypeConcept, "")
	require.NoError(t, err)
	c, err := graph.CreateEntity(ctx, "c", entities.TypeConcept, "")
	require.NoError(t, err)

	rel, err := graph.CreateRelationship(ctx, a.ID(), b.ID(), "related_to")
	require.NoError(t, err)
	rel.ApplyStrain(rel.Strain().WithAmplitude(0.9))

	weak, err := graph.CreateRelationship(ctx, b.ID(), c.ID(), "related_to")
	require.NoError(t, err)
	weak.ApplyStrain(weak.Strain().WithAmplitude(0.1))

	engine.AssignChords(ctx)
	firstA := a.Strain().Note()
	firstB := b.Strain().Note()

	// Members of the cluster differ in pitch per the chord intervals.
	assert.NotEqual(t, firstA, firstB)

	engine.AssignChords(ctx)
	assert.Equal(t, firstA, a.Strain().Note())
	assert.Equal(t, firstB, b.Strain().Note())
}
