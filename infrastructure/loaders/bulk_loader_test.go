package loaders

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"strainbrain/domain/core/valueobjects"
	"strainbrain/infrastructure/persistence/memory"
)

func newLoader(t *testing.T) (*BulkLoader, *memory.EntityGraphStore, *memory.ThoughtMemoryStore) {
	t.Helper()
	logger := zap.NewNop()
	graph := memory.NewEntityGraphStore(logger)
	thoughts := memory.NewThoughtMemoryStore(logger)
	return NewBulkLoader(graph, thoughts, logger), graph, thoughts
}

func TestLoadFilesRoundTrip(t *testing.T) {
	loader, graph, thoughts := newLoader(t)
	ctx := context.Background()
	dir := t.TempDir()

	entitiesPath := filepath.Join(dir, "entities.json")
	require.NoError(t, os.WriteFile(entitiesPath, []byte(`[
		{"id": "entity_1", "name": "Paris", "entity_type": "place", "description": "capital of France",
		 "strain_amplitude": 0.4, "strain_resistance": 0.5, "strain_frequency": 2, "access_count": 7},
		{"id": "entity_2", "name": "France", "entity_type": "place", "description": ""}
	]`), 0o644))

	thoughtsPath := filepath.Join(dir, "thoughts.json")
	require.NoError(t, os.WriteFile(thoughtsPath, []byte(`[
		{"id": "thought_1", "name": "Paris is the capital of France", "verified": true,
		 "confidence": 1.0, "connections": ["entity_1", "entity_2"]}
	]`), 0o644))

	loader.LoadFiles(ctx, entitiesPath, thoughtsPath)

	id, err := valueobjects.ParseEntityID("entity_1")
	require.NoError(t, err)
	paris, ok := graph.GetEntity(ctx, id)
	require.True(t, ok)
	assert.Equal(t, "Paris", paris.Name())
	assert.InDelta(t, 0.4, paris.Strain().Amplitude(), 1e-9)
	assert.Equal(t, 7, paris.Strain().AccessCount())

	assert.Len(t, thoughts.ListThoughts(ctx), 1)
}

func TestLoadFilesMissingInputStartsEmpty(t *testing.T) {
	loader, graph, thoughts := newLoader(t)
	ctx := context.Background()

	loader.LoadFiles(ctx, "/nonexistent/entities.json", "/nonexistent/thoughts.json")

	assert.Empty(t, graph.ListEntities(ctx))
	assert.Empty(t, thoughts.ListThoughts(ctx))
}

func TestLoadFilesMalformedInputStartsEmpty(t *testing.T) {
	loader, graph, _ := newLoader(t)
	ctx := context.Background()
	dir := t.TempDir()

	path := filepath.Join(dir, "entities.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not": "an array"`), 0o644))

	loader.LoadFiles(ctx, path, "")
	assert.Empty(t, graph.ListEntities(ctx))
}

func TestLoadThoughtsSkipsUnresolvedConnections(t *testing.T) {
	loader, _, thoughts := newLoader(t)
	ctx := context.Background()

	loaded := loader.LoadThoughts(ctx, []ThoughtRecord{
		{ID: "thought_1", Name: "dangling", Confidence: 0.5, Connections: []string{"entity_42"}},
	})

	assert.Zero(t, loaded)
	assert.Empty(t, thoughts.ListThoughts(ctx))
}

func TestLoadEntitiesAdvancesSequence(t *testing.T) {
	loader, graph, _ := newLoader(t)
	ctx := context.Background()

	loaded := loader.LoadEntities(ctx, []EntityRecord{
		{ID: "entity_5", Name: "loaded", EntityType: "concept"},
	})
	require.Equal(t, 1, loaded)

	// A fresh create must not collide with the loaded id space.
	fresh, err := graph.CreateEntity(ctx, "fresh", "concept", "")
	require.NoError(t, err)
	assert.Equal(t, "entity_6", fresh.ID().String())
}
