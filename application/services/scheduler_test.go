package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"strainbrain/domain/config"
	"strainbrain/domain/core/entities"
	"strainbrain/domain/core/valueobjects"
	domainservices "strainbrain/domain/services"
	"strainbrain/infrastructure/messaging/membus"
	"strainbrain/infrastructure/persistence/memory"
	"strainbrain/pkg/observability"
)

// fakeBackend satisfies ports.Completion with canned per-prompt replies.
type fakeBackend struct {
	mu      sync.Mutex
	replies []string
	err     error
	calls   int
}

func (f *fakeBackend) Generate(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if len(f.replies) == 0 {
		return SkipSentinel, nil
	}
	reply := f.replies[0]
	f.replies = f.replies[1:]
	return reply, nil
}

func (f *fakeBackend) ModelName() string { return "fake-model" }

type schedulerFixture struct {
	scheduler *OrchestrationScheduler
	graph     *memory.EntityGraphStore
	thoughts  *memory.ThoughtMemoryStore
	roles     *memory.RoleRegistryStore
	backend   *fakeBackend
	metrics   *observability.Metrics
}

func newSchedulerFixture(t *testing.T, backend *fakeBackend) *schedulerFixture {
	t.Helper()
	logger := zap.NewNop()
	bus := membus.NewBus(logger)
	cfg := config.DefaultDomainConfig()

	graph := memory.NewEntityGraphStore(logger)
	thoughts := memory.NewThoughtMemoryStore(logger)
	roles := memory.NewRoleRegistryStore(bus, logger)
	require.NoError(t, SeedTroupe(context.Background(), roles))

	router := NewRelevanceRouter(thoughts, roles, cfg, logger)
	engine := NewStrainEngine(graph, bus, cfg, logger)
	validator := domainservices.NewThoughtValidator(cfg.MinThoughtTokens)
	metrics := observability.NewMetrics(prometheus.NewRegistry())

	scheduler := NewOrchestrationScheduler(graph, thoughts, roles, backend, router, engine, validator, bus, cfg, metrics, logger)
	return &schedulerFixture{scheduler: scheduler, graph: graph, thoughts: thoughts, roles: roles, backend: backend, metrics: metrics}
}

func (f *schedulerFixture) seedThought(t *testing.T, name string) *entities.Thought {
	t.Helper()
	ctx := context.Background()
	entity, err := f.graph.CreateEntity(ctx, name, entities.TypeConcept, "")
	require.NoError(t, err)
	thought, err := f.thoughts.CreateThought(ctx, name, "", []valueobjects.EntityID{entity.ID()}, true, "user", 1.0)
	require.NoError(t, err)
	return thought
}

func TestProcessThoughtDerivesFromWellFormedReply(t *testing.T) {
	backend := &fakeBackend{replies: []string{"NEW THOUGHT: the sum is four"}}
	f := newSchedulerFixture(t, backend)
	ctx := context.Background()

	trigger := f.seedThought(t, "2+2=4")

	report, err := f.scheduler.ProcessThought(ctx, trigger.ID())
	require.NoError(t, err)

	require.Len(t, report.Derived, 1)
	derived, ok := f.thoughts.GetThought(ctx, report.Derived[0])
	require.True(t, ok)
	assert.Equal(t, "the sum is four", derived.Name())
	assert.Equal(t, trigger.ID(), derived.Origin())
	assert.False(t, derived.Verified())
	assert.InDelta(t, 0.6, derived.Confidence(), 1e-9)
	assert.Equal(t, trigger.Connections(), derived.Connections())
}

func TestProcessThoughtTreatsSkipSentinelAsNoMutation(t *testing.T) {
	backend := &fakeBackend{}
	f := newSchedulerFixture(t, backend)
	ctx := context.Background()

	trigger := f.seedThought(t, "2+2=4")
	before := len(f.thoughts.ListThoughts(ctx))

	report, err := f.scheduler.ProcessThought(ctx, trigger.ID())
	require.NoError(t, err)

	assert.Empty(t, report.Derived)
	assert.Equal(t, report.Dispatched, report.Skipped)
	assert.Len(t, f.thoughts.ListThoughts(ctx), before)
}

func TestProcessThoughtDiscardsMalformedReply(t *testing.T) {
	backend := &fakeBackend{replies: []string{"I think four.", SkipSentinel}}
	f := newSchedulerFixture(t, backend)
	ctx := context.Background()

	trigger := f.seedThought(t, "2+2=4")

	report, err := f.scheduler.ProcessThought(ctx, trigger.ID())
	require.NoError(t, err)

	assert.Empty(t, report.Derived)
	assert.GreaterOrEqual(t, report.Violations, 1)
}

func TestProcessThoughtBackendFailureDegradesToSkip(t *testing.T) {
	backend := &fakeBackend{err: errors.New("connection refused")}
	f := newSchedulerFixture(t, backend)
	ctx := context.Background()

	trigger := f.seedThought(t, "2+2=4")

	report, err := f.scheduler.ProcessThought(ctx, trigger.ID())
	require.NoError(t, err, "a failed backend never fails the turn")

	assert.Empty(t, report.Derived)
	assert.Equal(t, report.Dispatched, report.Skipped)
}

func TestProcessThoughtRestoresRoleAvailability(t *testing.T) {
	backend := &fakeBackend{}
	f := newSchedulerFixture(t, backend)
	ctx := context.Background()

	trigger := f.seedThought(t, "2+2=4")
	_, err := f.scheduler.ProcessThought(ctx, trigger.ID())
	require.NoError(t, err)

	engineer, ok := f.roles.Get(ctx, "engineer")
	require.True(t, ok)
	assert.Equal(t, entities.StateAvailable, engineer.State())
}

func TestProcessThoughtRejectsTrivialDerivedContent(t *testing.T) {
	backend := &fakeBackend{replies: []string{"NEW THOUGHT: of the"}}
	f := newSchedulerFixture(t, backend)
	ctx := context.Background()

	trigger := f.seedThought(t, "2+2=4")

	report, err := f.scheduler.ProcessThought(ctx, trigger.ID())
	require.NoError(t, err)

	assert.Empty(t, report.Derived, "validator gates derived thoughts too")
}

func TestProcessThoughtRecordsMetrics(t *testing.T) {
	backend := &fakeBackend{replies: []string{"no comment from me"}}
	f := newSchedulerFixture(t, backend)
	ctx := context.Background()

	trigger := f.seedThought(t, "2+2=4")

	report, err := f.scheduler.ProcessThought(ctx, trigger.ID())
	require.NoError(t, err)
	require.GreaterOrEqual(t, report.Dispatched, 1)

	turns := testutil.ToFloat64(f.metrics.SchedulerTurns.WithLabelValues("user"))
	assert.Equal(t, 1.0, turns)

	var dispatches float64
	for _, outcome := range []string{"derived", "skipped", "violation", "rejected", "failed"} {
		for _, role := range []string{"stage_manager", "narrator", "engineer", "skeptic", "dreamer", "investigator", "philosopher", "archivist", "linguist"} {
			dispatches += testutil.ToFloat64(f.metrics.RoleDispatches.WithLabelValues(role, outcome))
		}
	}
	assert.Equal(t, float64(report.Dispatched), dispatches)

	violations := testutil.ToFloat64(f.metrics.ProtocolViolation)
	assert.Equal(t, float64(report.Violations), violations)
}

func TestBackendFailureIncrementsFailureCount(t *testing.T) {
	backend := &fakeBackend{err: errors.New("connection refused")}
	f := newSchedulerFixture(t, backend)
	ctx := context.Background()

	trigger := f.seedThought(t, "2+2=4")
	report, err := f.scheduler.ProcessThought(ctx, trigger.ID())
	require.NoError(t, err)

	failures := testutil.ToFloat64(f.metrics.BackendFailures)
	assert.Equal(t, float64(report.Dispatched), failures)
}

func TestProcessThoughtUnknownThought(t *testing.T) {
	f := newSchedulerFixture(t, &fakeBackend{})

	_, err := f.scheduler.ProcessThought(context.Background(), valueobjects.NewThoughtID(999))
	assert.Error(t, err)
}

func TestSetAttention(t *testing.T) {
	f := newSchedulerFixture(t, &fakeBackend{})
	ctx := context.Background()

	assert.Equal(t, AttentionWake, f.scheduler.Attention())

	require.NoError(t, f.scheduler.SetAttention(ctx, AttentionDream))
	assert.Equal(t, AttentionDream, f.scheduler.Attention())

	assert.Error(t, f.scheduler.SetAttention(ctx, AttentionState("daydream")))
	assert.Equal(t, AttentionDream, f.scheduler.Attention())
}

func TestParseReply(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		outcome ReplyOutcome
		content string
	}{
		{"derive", "NEW THOUGHT: water flows downhill", OutcomeDerive, "water flows downhill"},
		{"derive with padding", "  NEW THOUGHT:  trimmed  ", OutcomeDerive, "trimmed"},
		{"skip", "NO THOUGHT", OutcomeSkip, ""},
		{"skip with trailer", "NO THOUGHT, nothing to add", OutcomeSkip, ""},
		{"empty derive", "NEW THOUGHT:   ", OutcomeMalformed, ""},
		{"freeform", "four, obviously", OutcomeMalformed, ""},
		{"empty", "", OutcomeMalformed, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := ParseReply(tt.raw)
			assert.Equal(t, tt.outcome, parsed.Outcome)
			assert.Equal(t, tt.content, parsed.Content)
		})
	}
}
