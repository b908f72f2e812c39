package di

import (
	"context"
	"fmt"

	"strainbrain/application/commands"
	cmdbus "strainbrain/application/commands/bus"
	"strainbrain/application/queries"
	querybus "strainbrain/application/queries/bus"
)

// registerCommandHandlers binds every command type to its handler. The
// bus carries the erased Command interface, so each binding re-asserts
// the concrete type.
func registerCommandHandlers(b *cmdbus.CommandBus, h *CommandHandlers) error {
	bindings := []struct {
		cmd     cmdbus.Command
		handler cmdbus.CommandHandler
	}{
		{commands.UpdateEntityCommand{}, cmdbus.CommandHandlerFunc(func(ctx context.Context, cmd cmdbus.Command) error {
			return h.UpdateEntity.Handle(ctx, cmd.(commands.UpdateEntityCommand))
		})},
		{commands.DeleteEntityCommand{}, cmdbus.CommandHandlerFunc(func(ctx context.Context, cmd cmdbus.Command) error {
			return h.DeleteEntity.Handle(ctx, cmd.(commands.DeleteEntityCommand))
		})},
		{commands.AddEntityToContextCommand{}, cmdbus.CommandHandlerFunc(func(ctx context.Context, cmd cmdbus.Command) error {
			return h.AddEntityToContext.Handle(ctx, cmd.(commands.AddEntityToContextCommand))
		})},
		{commands.SetAttentionCommand{}, cmdbus.CommandHandlerFunc(func(ctx context.Context, cmd cmdbus.Command) error {
			return h.SetAttention.Handle(ctx, cmd.(commands.SetAttentionCommand))
		})},
		{commands.TransitionRoleCommand{}, cmdbus.CommandHandlerFunc(func(ctx context.Context, cmd cmdbus.Command) error {
			return h.TransitionRole.Handle(ctx, cmd.(commands.TransitionRoleCommand))
		})},
	}

	for _, binding := range bindings {
		if err := b.Register(binding.cmd, binding.handler); err != nil {
			return fmt.Errorf("register command handler: %w", err)
		}
	}
	return nil
}

// registerQueryHandlers binds every query type to its handler.
func registerQueryHandlers(b *querybus.QueryBus, h *QueryHandlers) error {
	bindings := []struct {
		query   querybus.Query
		handler querybus.QueryHandler
	}{
		{queries.GetEntityQuery{}, querybus.QueryHandlerFunc(func(ctx context.Context, q querybus.Query) (interface{}, error) {
			return h.Entity.HandleGetEntity(ctx, q.(queries.GetEntityQuery))
		})},
		{queries.ListEntitiesQuery{}, querybus.QueryHandlerFunc(func(ctx context.Context, q querybus.Query) (interface{}, error) {
			return h.Entity.HandleListEntities(ctx, q.(queries.ListEntitiesQuery))
		})},
		{queries.GetContextQuery{}, querybus.QueryHandlerFunc(func(ctx context.Context, q querybus.Query) (interface{}, error) {
			return h.Entity.HandleGetContext(ctx, q.(queries.GetContextQuery))
		})},
		{queries.GetThoughtQuery{}, querybus.QueryHandlerFunc(func(ctx context.Context, q querybus.Query) (interface{}, error) {
			return h.Thought.HandleGetThought(ctx, q.(queries.GetThoughtQuery))
		})},
		{queries.ListThoughtsQuery{}, querybus.QueryHandlerFunc(func(ctx context.Context, q querybus.Query) (interface{}, error) {
			return h.Thought.HandleListThoughts(ctx, q.(queries.ListThoughtsQuery))
		})},
		{queries.ProcessQueryQuery{}, querybus.QueryHandlerFunc(func(ctx context.Context, q querybus.Query) (interface{}, error) {
			return h.Thought.HandleProcessQuery(ctx, q.(queries.ProcessQueryQuery))
		})},
		{queries.GetGraphDataQuery{}, querybus.QueryHandlerFunc(func(ctx context.Context, q querybus.Query) (interface{}, error) {
			return h.GraphData.Handle(ctx, q.(queries.GetGraphDataQuery))
		})},
		{queries.RolesStatusQuery{}, querybus.QueryHandlerFunc(func(ctx context.Context, q querybus.Query) (interface{}, error) {
			return h.Status.HandleRolesStatus(ctx, q.(queries.RolesStatusQuery))
		})},
		{queries.StrainStatusQuery{}, querybus.QueryHandlerFunc(func(ctx context.Context, q querybus.Query) (interface{}, error) {
			return h.Status.HandleStrainStatus(ctx, q.(queries.StrainStatusQuery))
		})},
	}

	for _, binding := range bindings {
		if err := b.Register(binding.query, binding.handler); err != nil {
			return fmt.Errorf("register query handler: %w", err)
		}
	}
	return nil
}
