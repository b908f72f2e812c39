package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"strainbrain/domain/core/entities"
	pkgerrors "strainbrain/pkg/errors"
)

func newGraph(t *testing.T) *EntityGraphStore {
	t.Helper()
	return NewEntityGraphStore(zap.NewNop())
}

func TestCreateEntityAssignsSequentialIDs(t *testing.T) {
	graph := newGraph(t)
	ctx := context.Background()

	first, err := graph.CreateEntity(ctx, "first", entities.TypeConcept, "")
	require.NoError(t, err)
	second, err := graph.CreateEntity(ctx, "second", entities.TypeConcept, "")
	require.NoError(t, err)

	assert.Equal(t, "entity_1", first.ID().String())
	assert.Equal(t, "entity_2", second.ID().String())
}

func TestEntityRoundTrip(t *testing.T) {
	graph := newGraph(t)
	ctx := context.Background()

	created, err := graph.CreateEntity(ctx, "Paris", entities.TypePlace, "capital of France")
	require.NoError(t, err)
	assert.Equal(t, created.Created(), created.Modified())

	got, ok := graph.GetEntity(ctx, created.ID())
	require.True(t, ok)
	assert.Equal(t, "Paris", got.Name())
	assert.Equal(t, entities.TypePlace, got.Type())
	assert.Equal(t, "capital of France", got.Description())

	before := got.Modified()
	require.NoError(t, got.Rename("Paris", "city of light"))
	require.True(t, graph.UpdateEntity(ctx, got))
	assert.True(t, got.Modified().After(before), "modified strictly increases on update")
}

func TestDeleteEntityLeavesRelationshipsDangling(t *testing.T) {
	graph := newGraph(t)
	ctx := context.Background()

	a, err := graph.CreateEntity(ctx, "a", entities.TypeConcept, "")
	require.NoError(t, err)
	b, err := graph.CreateEntity(ctx, "b", entities.TypeConcept, "")
	require.NoError(t, err)
	rel, err := graph.CreateRelationship(ctx, a.ID(), b.ID(), "related_to")
	require.NoError(t, err)

	require.True(t, graph.DeleteEntity(ctx, b.ID()))
	assert.False(t, graph.DeleteEntity(ctx, b.ID()))

	// The edge survives; lookups just see a missing endpoint.
	_, ok := graph.GetRelationship(ctx, rel.ID())
	assert.True(t, ok)
	_, ok = graph.GetEntity(ctx, b.ID())
	assert.False(t, ok)
}

func TestCreateRelationshipRequiresBothEndpoints(t *testing.T) {
	graph := newGraph(t)
	ctx := context.Background()

	a, err := graph.CreateEntity(ctx, "a", entities.TypeConcept, "")
	require.NoError(t, err)

	b, err := graph.CreateEntity(ctx, "b", entities.TypeConcept, "")
	require.NoError(t, err)
	require.True(t, graph.DeleteEntity(ctx, b.ID()))

	_, err = graph.CreateRelationship(ctx, a.ID(), b.ID(), "related_to")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestAddEntityToContextIsIdempotent(t *testing.T) {
	graph := newGraph(t)
	ctx := context.Background()

	entity, err := graph.CreateEntity(ctx, "a", entities.TypeConcept, "")
	require.NoError(t, err)
	ec, err := graph.CreateContext(ctx, "workspace", "")
	require.NoError(t, err)

	attached, err := graph.AddEntityToContext(ctx, entity.ID(), ec.ID())
	require.NoError(t, err)
	assert.True(t, attached)

	again, err := graph.AddEntityToContext(ctx, entity.ID(), ec.ID())
	require.NoError(t, err)
	assert.False(t, again)

	got, ok := graph.GetEntity(ctx, entity.ID())
	require.True(t, ok)
	assert.Equal(t, 1, got.Strain().Frequency(), "frequency reflects distinct contexts")
	assert.Len(t, got.ContextIDs(), 1)
}

func TestAddEntityToContextUnknownIDs(t *testing.T) {
	graph := newGraph(t)
	ctx := context.Background()

	entity, err := graph.CreateEntity(ctx, "a", entities.TypeConcept, "")
	require.NoError(t, err)
	ec, err := graph.CreateContext(ctx, "workspace", "")
	require.NoError(t, err)
	require.True(t, graph.DeleteEntity(ctx, entity.ID()))

	_, err = graph.AddEntityToContext(ctx, entity.ID(), ec.ID())
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestGetRelationshipsReturnsIncidentEdges(t *testing.T) {
	graph := newGraph(t)
	ctx := context.Background()

	a, err := graph.CreateEntity(ctx, "a", entities.TypeConcept, "")
	require.NoError(t, err)
	b, err := graph.CreateEntity(ctx, "b", entities.TypeConcept, "")
	require.NoError(t, err)
	c, err := graph.CreateEntity(ctx, "c", entities.TypeConcept, "")
	require.NoError(t, err)

	_, err = graph.CreateRelationship(ctx, a.ID(), b.ID(), "related_to")
	require.NoError(t, err)
	_, err = graph.CreateRelationship(ctx, c.ID(), a.ID(), "related_to")
	require.NoError(t, err)

	assert.Len(t, graph.GetRelationships(ctx, a.ID()), 2)
	assert.Len(t, graph.GetRelationships(ctx, b.ID()), 1)
}
