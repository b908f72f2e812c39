package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"strainbrain/application/commands"
	"strainbrain/application/queries"
	"strainbrain/infrastructure/config"
	"strainbrain/infrastructure/di"
)

// TestGraphLifecycle drives the wired container end to end: entities,
// a relationship carrying strain, a verified thought, relevance search
// and the orchestration surface. The stub backend answers every role
// dispatch with a skip, so no thoughts are derived.
func TestGraphLifecycle(t *testing.T) {
	ctx := context.Background()

	cfg := &config.Config{
		ServerAddress:     ":0",
		Environment:       "development",
		BackendProvider:   "stub",
		LogLevel:          "debug",
		DutyCycleInterval: time.Hour,
	}

	container, err := di.InitializeContainer(ctx, cfg)
	require.NoError(t, err)

	var parisID, franceID string

	t.Run("create entities", func(t *testing.T) {
		paris, err := container.CommandHandlers.CreateEntity.Handle(ctx, commands.CreateEntityCommand{
			Name:        "Paris",
			EntityType:  "place",
			Description: "Capital of France",
		})
		require.NoError(t, err)
		parisID = paris.ID().String()

		france, err := container.CommandHandlers.CreateEntity.Handle(ctx, commands.CreateEntityCommand{
			Name:        "France",
			EntityType:  "place",
			Description: "A country in Europe",
		})
		require.NoError(t, err)
		franceID = france.ID().String()
	})

	t.Run("relationship carries strain", func(t *testing.T) {
		rel, err := container.CommandHandlers.CreateRelationship.Handle(ctx, commands.CreateRelationshipCommand{
			FromEntityID:     parisID,
			ToEntityID:       franceID,
			RelationshipType: "capital_of",
		})
		require.NoError(t, err)
		require.Greater(t, rel.Strain().Amplitude(), 0.0)

		result, err := container.QueryBus.Ask(ctx, queries.GetEntityQuery{EntityID: parisID})
		require.NoError(t, err)
		view := result.(*queries.EntityView)
		require.Greater(t, view.Strain.NodeResistance, 0.0)
	})

	t.Run("context membership", func(t *testing.T) {
		created, err := container.CommandHandlers.CreateContext.Handle(ctx, commands.CreateContextCommand{
			Name: "geography",
		})
		require.NoError(t, err)

		err = container.CommandBus.Send(ctx, commands.AddEntityToContextCommand{
			EntityID:  parisID,
			ContextID: created.ID().String(),
		})
		require.NoError(t, err)

		result, err := container.QueryBus.Ask(ctx, queries.GetContextQuery{ContextID: created.ID().String()})
		require.NoError(t, err)
		view := result.(*queries.ContextView)
		require.Contains(t, view.EntityIDs, parisID)
	})

	t.Run("thought is verified and searchable", func(t *testing.T) {
		thought, err := container.CommandHandlers.CreateThought.Handle(ctx, commands.CreateThoughtCommand{
			Name:        "Paris is the capital of France",
			Description: "Paris is the capital of France",
			Connections: []string{parisID, franceID},
			Source:      "user",
			Confidence:  1.0,
		})
		require.NoError(t, err)
		require.True(t, thought.Verified())

		result, err := container.QueryBus.Ask(ctx, queries.ProcessQueryQuery{Query: "capital of France"})
		require.NoError(t, err)
		search := result.(*queries.ProcessQueryResult)
		require.NotEmpty(t, search.Thoughts)
		require.Equal(t, thought.ID().String(), search.Thoughts[0].ID)
		require.Contains(t, search.Roles, "stage_manager")
	})

	t.Run("rejected thought never lands", func(t *testing.T) {
		_, err := container.CommandHandlers.CreateThought.Handle(ctx, commands.CreateThoughtCommand{
			Name:        "of the",
			Description: "of the",
			Source:      "user",
			Confidence:  1.0,
		})
		require.Error(t, err)
	})

	t.Run("trivial connection sequence is rejected", func(t *testing.T) {
		cat, err := container.CommandHandlers.CreateEntity.Handle(ctx, commands.CreateEntityCommand{
			Name:       "cat",
			EntityType: "concept",
		})
		require.NoError(t, err)

		_, err = container.CommandHandlers.CreateThought.Handle(ctx, commands.CreateThoughtCommand{
			Name:        "the cat sat quietly",
			Description: "the cat sat quietly",
			Connections: []string{cat.ID().String()},
			Source:      "user",
			Confidence:  1.0,
		})
		require.Error(t, err)

		for _, th := range container.ThoughtStore.ListThoughts(ctx) {
			require.NotEqual(t, "the cat sat quietly", th.Name())
		}
	})

	t.Run("attention transitions", func(t *testing.T) {
		require.NoError(t, container.CommandBus.Send(ctx, commands.SetAttentionCommand{State: "dream"}))
		require.Error(t, container.CommandBus.Send(ctx, commands.SetAttentionCommand{State: "trance"}))
		require.NoError(t, container.CommandBus.Send(ctx, commands.SetAttentionCommand{State: "wake"}))
	})

	t.Run("status reflects the graph", func(t *testing.T) {
		result, err := container.QueryBus.Ask(ctx, queries.StrainStatusQuery{})
		require.NoError(t, err)
		status := result.(*queries.StrainStatusResult)
		require.Equal(t, 3, status.EntityCount)
		require.Equal(t, 1, status.ThoughtCount)
		require.Equal(t, "wake", status.Attention)

		graphResult, err := container.QueryBus.Ask(ctx, queries.GetGraphDataQuery{})
		require.NoError(t, err)
		graph := graphResult.(*queries.GetGraphDataResult)
		require.Len(t, graph.Nodes, 3)
		require.Len(t, graph.Links, 1)
		require.Equal(t, 1, graph.Stats.ThoughtCount)
	})
}
