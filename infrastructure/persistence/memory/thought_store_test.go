package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"strainbrain/domain/core/valueobjects"
)

func TestThoughtReverseIndex(t *testing.T) {
	store := NewThoughtMemoryStore(zap.NewNop())
	ctx := context.Background()

	paris := valueobjects.NewEntityID(1)
	france := valueobjects.NewEntityID(2)
	berlin := valueobjects.NewEntityID(3)

	first, err := store.CreateThought(ctx, "Paris is in France", "", []valueobjects.EntityID{paris, france}, true, "user", 1.0)
	require.NoError(t, err)
	_, err = store.CreateThought(ctx, "Berlin is in Germany", "", []valueobjects.EntityID{berlin}, true, "user", 1.0)
	require.NoError(t, err)

	touching := store.ThoughtsTouching(ctx, paris)
	require.Len(t, touching, 1)
	assert.Equal(t, first.ID(), touching[0].ID())

	assert.Empty(t, store.ThoughtsTouching(ctx, valueobjects.NewEntityID(99)))
}

func TestThoughtReverseIndexCountsRepeatedEntityOnce(t *testing.T) {
	store := NewThoughtMemoryStore(zap.NewNop())
	ctx := context.Background()

	paris := valueobjects.NewEntityID(1)
	conns := []valueobjects.EntityID{paris, paris, paris}

	created, err := store.CreateThought(ctx, "Paris again and again", "", conns, true, "user", 1.0)
	require.NoError(t, err)

	touching := store.ThoughtsTouching(ctx, paris)
	require.Len(t, touching, 1)
	assert.Equal(t, created.ID(), touching[0].ID())
}

func TestCreateDerivedThoughtKeepsProvenance(t *testing.T) {
	store := NewThoughtMemoryStore(zap.NewNop())
	ctx := context.Background()

	entity := valueobjects.NewEntityID(1)
	origin, err := store.CreateThought(ctx, "water is wet", "", []valueobjects.EntityID{entity}, true, "user", 1.0)
	require.NoError(t, err)

	derived, err := store.CreateDerivedThought(ctx, "wet things conduct", "", []valueobjects.EntityID{entity}, origin.ID(), "skeptic", 0.6)
	require.NoError(t, err)

	assert.Equal(t, origin.ID(), derived.Origin())
	assert.False(t, derived.Verified())

	ordered := store.ListThoughts(ctx)
	require.Len(t, ordered, 2)
	assert.Equal(t, origin.ID(), ordered[0].ID())
	assert.Equal(t, derived.ID(), ordered[1].ID())
}
