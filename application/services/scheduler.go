package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"strainbrain/application/ports"
	"strainbrain/domain/config"
	"strainbrain/domain/core/entities"
	"strainbrain/domain/core/valueobjects"
	"strainbrain/domain/events"
	domainservices "strainbrain/domain/services"
	pkgerrors "strainbrain/pkg/errors"
	"strainbrain/pkg/observability"
)

// AttentionState is the scheduler's coarse activity mode.
type AttentionState string

const (
	// AttentionWake marks active user interaction.
	AttentionWake AttentionState = "wake"
	// AttentionDream is the only state permitting autonomous duty tasks.
	AttentionDream AttentionState = "dream"
	// AttentionSleep is a passive marker consumed by collaborators.
	AttentionSleep AttentionState = "sleep"
)

// ValidAttentionState reports whether s names a known attention state.
func ValidAttentionState(s AttentionState) bool {
	switch s {
	case AttentionWake, AttentionDream, AttentionSleep:
		return true
	}
	return false
}

// DispatchReport records what one turn did, for callers and tests.
type DispatchReport struct {
	ThoughtID  valueobjects.ThoughtID
	Dispatched int
	Derived    []valueobjects.ThoughtID
	Skipped    int
	Violations int
}

// OrchestrationScheduler drives the duty cycle: for each new thought it
// selects roles, dispatches each against the reasoning backend under an
// advisory resistance budget, turns well-formed replies into derived
// thoughts, and propagates the resulting strain.
//
// Dispatches for one thought run concurrently since they only read
// shared state; all mutation happens after the replies are collected.
// One activity mutex serializes whole turns against each other and
// against the background duty cycle.
type OrchestrationScheduler struct {
	graph     ports.EntityGraph
	thoughts  ports.ThoughtStore
	roles     ports.RoleRegistry
	backend   ports.Completion
	router    *RelevanceRouter
	engine    *StrainEngine
	validator ThoughtValidatorService
	bus       ports.EventBus
	cfg       *config.DomainConfig
	metrics   *observability.Metrics
	logger    *zap.Logger

	activity sync.Mutex

	stateMu   sync.RWMutex
	attention AttentionState

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// ThoughtValidatorService is the narrow validator surface the scheduler
// needs, satisfied by the domain thought validator.
type ThoughtValidatorService interface {
	Validate(text string) domainservices.ValidationResult
}

// NewOrchestrationScheduler wires the scheduler. The duty cycle does not
// run until Start is called.
func NewOrchestrationScheduler(
	graph ports.EntityGraph,
	thoughts ports.ThoughtStore,
	roles ports.RoleRegistry,
	backend ports.Completion,
	router *RelevanceRouter,
	engine *StrainEngine,
	validator ThoughtValidatorService,
	bus ports.EventBus,
	cfg *config.DomainConfig,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *OrchestrationScheduler {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &OrchestrationScheduler{
		graph:     graph,
		thoughts:  thoughts,
		roles:     roles,
		backend:   backend,
		router:    router,
		engine:    engine,
		validator: validator,
		bus:       bus,
		cfg:       cfg,
		metrics:   metrics,
		logger:    logger,
		attention: AttentionWake,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Attention returns the current attention state.
func (s *OrchestrationScheduler) Attention() AttentionState {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.attention
}

// SetAttention moves the scheduler between wake, dream and sleep. The
// transition is externally driven; the scheduler never changes state on
// its own.
func (s *OrchestrationScheduler) SetAttention(ctx context.Context, target AttentionState) error {
	if !ValidAttentionState(target) {
		return pkgerrors.NewValidationError(fmt.Sprintf("unknown attention state %q", target))
	}

	s.stateMu.Lock()
	previous := s.attention
	s.attention = target
	s.stateMu.Unlock()

	if previous != target {
		s.logger.Info("attention changed",
			zap.String("from", string(previous)),
			zap.String("to", string(target)),
		)
		s.bus.Publish(ctx, events.NewAttentionChanged(string(previous), string(target), time.Now()))
	}
	return nil
}

// ProcessThought runs one scheduler turn for the given thought: select
// roles, dispatch concurrently, fold replies back into the stores and
// propagate strain. The turn holds the activity mutex end to end so its
// mutations complete before the next turn's reads begin.
func (s *OrchestrationScheduler) ProcessThought(ctx context.Context, thoughtID valueobjects.ThoughtID) (DispatchReport, error) {
	s.activity.Lock()
	defer s.activity.Unlock()
	s.metrics.SchedulerTurns.WithLabelValues("user").Inc()
	return s.runTurn(ctx, thoughtID)
}

type dispatchResult struct {
	role  *entities.RoleDescriptor
	reply ParsedReply
	err   error
}

func (s *OrchestrationScheduler) runTurn(ctx context.Context, thoughtID valueobjects.ThoughtID) (DispatchReport, error) {
	report := DispatchReport{ThoughtID: thoughtID}

	thought, ok := s.thoughts.GetThought(ctx, thoughtID)
	if !ok {
		return report, pkgerrors.NewNotFoundError("thought " + thoughtID.String())
	}

	content := thought.Name()
	if thought.Description() != "" {
		content = content + " " + thought.Description()
	}

	// Role selection: relevance first, then availability. The same
	// (role, thought) pair is never dispatched twice within the turn.
	seen := make(map[string]bool)
	var eligible []*entities.RoleDescriptor
	for _, role := range s.router.RelevantRoles(ctx, content) {
		key := role.ID() + "|" + thoughtID.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		if role.State() != entities.StateAvailable {
			continue
		}
		eligible = append(eligible, role)
	}
	if len(eligible) == 0 {
		s.logger.Debug("no eligible roles for thought", zap.String("thought", thoughtID.String()))
		return report, nil
	}

	for _, role := range eligible {
		if _, err := s.roles.Transition(ctx, role.ID(), entities.StateActive); err != nil {
			s.logger.Warn("role activation failed", zap.String("role", role.ID()), zap.Error(err))
		}
	}

	// Concurrent read-only dispatches; results are folded in serially.
	results := make(chan dispatchResult, len(eligible))
	var wg sync.WaitGroup
	for _, role := range eligible {
		wg.Add(1)
		go func(role *entities.RoleDescriptor) {
			defer wg.Done()
			reply, err := s.dispatch(ctx, role, thought, content)
			results <- dispatchResult{role: role, reply: reply, err: err}
		}(role)
	}
	wg.Wait()
	close(results)

	report.Dispatched = len(eligible)
	for result := range results {
		s.fold(ctx, thought, result, &report)
		if _, err := s.roles.Transition(ctx, result.role.ID(), entities.StateAvailable); err != nil {
			s.logger.Warn("role demotion failed", zap.String("role", result.role.ID()), zap.Error(err))
		}
	}

	s.engine.AssignChords(ctx)
	return report, nil
}

// dispatch issues one bounded backend call for a role. A failed or timed
// out call is reported as an error and degrades to a skip upstream.
func (s *OrchestrationScheduler) dispatch(ctx context.Context, role *entities.RoleDescriptor, thought *entities.Thought, content string) (ParsedReply, error) {
	dispatchCtx, cancel := context.WithTimeout(ctx, s.cfg.DispatchTimeout)
	defer cancel()

	prompt := s.buildPrompt(role, thought, content)
	raw, err := s.backend.Generate(dispatchCtx, prompt)
	if err != nil {
		return ParsedReply{}, pkgerrors.NewBackendUnavailableError(s.backend.ModelName(), err)
	}
	return ParseReply(raw), nil
}

// fold applies one dispatch result to the stores. Runs on the turn
// goroutine only.
func (s *OrchestrationScheduler) fold(ctx context.Context, thought *entities.Thought, result dispatchResult, report *DispatchReport) {
	roleID := result.role.ID()

	if result.err != nil {
		report.Skipped++
		s.metrics.BackendFailures.Inc()
		s.metrics.RoleDispatches.WithLabelValues(roleID, "failed").Inc()
		s.logger.Warn("dispatch degraded to skip", zap.String("role", roleID), zap.Error(result.err))
		return
	}

	switch result.reply.Outcome {
	case OutcomeSkip:
		report.Skipped++
		s.metrics.RoleDispatches.WithLabelValues(roleID, "skipped").Inc()
		s.logger.Debug("role declined", zap.String("role", roleID))

	case OutcomeMalformed:
		report.Violations++
		s.metrics.ProtocolViolation.Inc()
		s.metrics.RoleDispatches.WithLabelValues(roleID, "violation").Inc()
		violation := pkgerrors.NewProtocolViolationError(roleID, result.reply.Raw)
		s.logger.Warn("reply discarded", zap.String("role", roleID), zap.Error(violation))

	case OutcomeDerive:
		derived, err := s.deriveThought(ctx, thought, roleID, result.reply.Content)
		if err != nil {
			report.Skipped++
			s.metrics.RoleDispatches.WithLabelValues(roleID, "rejected").Inc()
			s.logger.Info("derived thought rejected",
				zap.String("role", roleID),
				zap.Error(err),
			)
			return
		}
		report.Derived = append(report.Derived, derived.ID())
		s.metrics.RoleDispatches.WithLabelValues(roleID, "derived").Inc()

		if err := s.roles.AddStrain(ctx, roleID, s.cfg.ResistanceBudget); err != nil {
			s.logger.Warn("role strain update failed", zap.String("role", roleID), zap.Error(err))
		}

		for _, entityID := range derived.Connections() {
			s.engine.PropagateStrain(ctx, entityID, s.cfg.PropagationDepth)
		}
	}
}

// deriveThought validates and stores a role's contribution. The derived
// thought inherits the trigger's entity connections and records the
// trigger as its origin, at a confidence below fresh user input.
func (s *OrchestrationScheduler) deriveThought(ctx context.Context, trigger *entities.Thought, roleID, content string) (*entities.Thought, error) {
	if verdict := s.validator.Validate(content); !verdict.IsValid {
		return nil, pkgerrors.NewValidationError(verdict.Reason)
	}

	derived, err := s.thoughts.CreateDerivedThought(
		ctx,
		content,
		fmt.Sprintf("derived by %s from %s", roleID, trigger.ID()),
		trigger.Connections(),
		trigger.ID(),
		roleID,
		s.cfg.DerivedConfidence,
	)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, events.NewThoughtDerived(derived.ID(), trigger.ID(), roleID, time.Now()))
	return derived, nil
}

// buildPrompt renders one dispatch request. The resistance budget is
// advisory context for the backend, not an enforced quota.
func (s *OrchestrationScheduler) buildPrompt(role *entities.RoleDescriptor, thought *entities.Thought, content string) string {
	var b strings.Builder
	b.WriteString(role.Instructions())
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Thought %s: %s\n", thought.ID(), content)
	fmt.Fprintf(&b, "Resistance budget for this reply: %.2f. Keep your contribution within it.\n\n", s.cfg.ResistanceBudget)
	fmt.Fprintf(&b, "Reply with %q followed by one new thought, or exactly %q to decline.", DerivePrefix, SkipSentinel)
	return b.String()
}

// Start launches the background duty cycle. Each tick relaxes role
// strain; when attention is in the dream state the tick additionally
// emits one autonomous task over the most recent thought.
func (s *OrchestrationScheduler) Start(ctx context.Context) {
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.cfg.DutyCycleInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stop:
				return
			case <-ticker.C:
				s.dutyTick(ctx)
			}
		}
	}()
}

// Stop halts the duty cycle and waits for the last tick to finish.
func (s *OrchestrationScheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
	<-s.done
}

func (s *OrchestrationScheduler) dutyTick(ctx context.Context) {
	s.activity.Lock()
	defer s.activity.Unlock()

	s.roles.RelaxAll(ctx, s.cfg.DecayFactor)

	if s.Attention() != AttentionDream {
		return
	}

	all := s.thoughts.ListThoughts(ctx)
	if len(all) == 0 {
		return
	}
	latest := all[len(all)-1]

	s.metrics.SchedulerTurns.WithLabelValues("dream").Inc()
	s.logger.Debug("dream task", zap.String("thought", latest.ID().String()))
	if _, err := s.runTurn(ctx, latest.ID()); err != nil {
		s.logger.Warn("dream task failed", zap.Error(err))
	}
}
