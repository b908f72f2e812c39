package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"strainbrain/application/ports"
	"strainbrain/domain/config"
	"strainbrain/domain/core/entities"
	"strainbrain/domain/core/valueobjects"
	"strainbrain/domain/events"
)

// StrainEngine keeps node resistance and propagated amplitude consistent
// with graph topology and assigns the musical clustering metadata.
//
// Node resistance is recomputed on demand rather than maintained
// incrementally: with a mutable cyclic graph a lazy sum is immune to the
// partial-update staleness an incremental cache would invite.
type StrainEngine struct {
	graph  ports.EntityGraph
	bus    ports.EventBus
	cfg    *config.DomainConfig
	logger *zap.Logger
}

// NewStrainEngine creates a strain engine over the given graph.
func NewStrainEngine(graph ports.EntityGraph, bus ports.EventBus, cfg *config.DomainConfig, logger *zap.Logger) *StrainEngine {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &StrainEngine{graph: graph, bus: bus, cfg: cfg, logger: logger}
}

// NodeResistance sums the amplitudes of the entity's incident
// relationships. Edges whose far endpoint has been deleted are skipped
// and excluded from the total. The computed value is written back into
// the entity's cached strain field.
func (e *StrainEngine) NodeResistance(ctx context.Context, entityID valueobjects.EntityID) float64 {
	total, _ := e.incidentStrain(ctx, entityID)

	if entity, ok := e.graph.GetEntity(ctx, entityID); ok {
		entity.ApplyStrain(entity.Strain().WithNodeResistance(total))
	}
	return total
}

// AverageAmplitude returns the mean incident amplitude, with a floor of
// one edge so isolated entities report zero rather than dividing by zero.
func (e *StrainEngine) AverageAmplitude(ctx context.Context, entityID valueobjects.EntityID) float64 {
	total, count := e.incidentStrain(ctx, entityID)
	if count < 1 {
		count = 1
	}
	return total / float64(count)
}

// InitializeRelationship derives a fresh edge's amplitude from the
// gravity law: force = G * mass(from) * mass(to) / distance^2, where an
// entity's mass is its node resistance plus the mass unit. Without 3-D
// placement every pair sits at the configured distance unit.
func (e *StrainEngine) InitializeRelationship(ctx context.Context, rel *entities.Relationship) float64 {
	massFrom := e.mass(ctx, rel.From())
	massTo := e.mass(ctx, rel.To())

	distance := e.cfg.DistanceUnit
	force := e.cfg.GravitationalConstant * massFrom * massTo / (distance * distance)
	if force < 0 {
		force = 0
	}

	rel.ApplyStrain(rel.Strain().WithAmplitude(force))

	e.logger.Debug("relationship strain initialized",
		zap.String("id", rel.ID().String()),
		zap.Float64("amplitude", force),
	)
	return force
}

// PropagateStrain pushes the seed entity's amplitude outward through the
// graph, breadth-first and capped at depth hops. Each hop attenuates the
// contribution by the decay factor before adding it to the neighbor's
// amplitude, which is then clamped. A visited set guarantees termination
// on cycles; edges pointing at deleted entities are skipped. Entities
// whose amplitude ends up past the dissonance threshold are returned as
// contradictory for role-alert purposes.
func (e *StrainEngine) PropagateStrain(ctx context.Context, seed valueobjects.EntityID, depth int) []valueobjects.EntityID {
	if depth <= 0 {
		depth = e.cfg.PropagationDepth
	}

	seedEntity, ok := e.graph.GetEntity(ctx, seed)
	if !ok {
		return nil
	}
	seedAmplitude := seedEntity.Strain().Amplitude()

	type hop struct {
		id    valueobjects.EntityID
		depth int
	}

	visited := map[string]bool{seed.String(): true}
	queue := []hop{{id: seed, depth: 0}}
	var contradictory []valueobjects.EntityID

	now := time.Now()
	seedEntity.RecordAccess(now)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current.depth >= depth {
			continue
		}

		for _, rel := range e.graph.GetRelationships(ctx, current.id) {
			neighborID, ok := rel.OtherEnd(current.id)
			if !ok {
				continue
			}
			if visited[neighborID.String()] {
				continue
			}
			visited[neighborID.String()] = true

			neighbor, ok := e.graph.GetEntity(ctx, neighborID)
			if !ok {
				// Dangling edge left behind by a deletion.
				continue
			}

			contribution := seedAmplitude * decayPow(e.cfg.DecayFactor, current.depth+1)
			strain := neighbor.Strain().AddAmplitude(contribution).Touched(now)

			incident, _ := e.incidentStrain(ctx, neighborID)
			strain = strain.WithNodeResistance(incident)
			neighbor.ApplyStrain(strain)

			if strain.Amplitude() > e.cfg.DissonanceThreshold {
				contradictory = append(contradictory, neighborID)
			}

			queue = append(queue, hop{id: neighborID, depth: current.depth + 1})
		}
	}

	// Seed's own cached resistance refreshes too.
	incident, _ := e.incidentStrain(ctx, seed)
	seedEntity.ApplyStrain(seedEntity.Strain().WithNodeResistance(incident))

	e.logger.Debug("strain propagated",
		zap.String("seed", seed.String()),
		zap.Int("visited", len(visited)),
		zap.Int("contradictory", len(contradictory)),
	)
	if e.bus != nil {
		e.bus.Publish(ctx, events.NewStrainPropagated(seed, len(visited), contradictory, now))
	}
	return contradictory
}

// AssignChords groups entities connected by relationships whose amplitude
// exceeds the chord threshold and assigns each group a chord template and
// each member a note and octave. The assignment is purely cosmetic and
// deterministic: identical graphs produce identical chords.
func (e *StrainEngine) AssignChords(ctx context.Context) {
	all := e.graph.ListEntities(ctx)

	// Adjacency restricted to qualifying edges.
	adjacent := make(map[string][]valueobjects.EntityID)
	for _, rel := range e.graph.ListRelationships(ctx) {
		if rel.Strain().Amplitude() <= e.cfg.ChordThreshold {
			continue
		}
		from, to := rel.From(), rel.To()
		if _, ok := e.graph.GetEntity(ctx, from); !ok {
			continue
		}
		if _, ok := e.graph.GetEntity(ctx, to); !ok {
			continue
		}
		adjacent[from.String()] = append(adjacent[from.String()], to)
		adjacent[to.String()] = append(adjacent[to.String()], from)
	}

	assigned := make(map[string]bool)
	clusterIndex := 0

	// Creation order makes grouping and root election deterministic.
	for _, root := range all {
		rootID := root.ID()
		if assigned[rootID.String()] || len(adjacent[rootID.String()]) == 0 {
			continue
		}

		members := collectCluster(rootID, adjacent)
		quality := valueobjects.ChordQuality(clusterIndex % valueobjects.ChordQualityCount)
		rootNote := rootNoteFor(rootID)
		intervals := quality.Intervals()

		for i, memberID := range members {
			member, ok := e.graph.GetEntity(ctx, memberID)
			if !ok {
				continue
			}
			assigned[memberID.String()] = true

			note := rootNote.Transpose(intervals[i%len(intervals)])
			octave := 4 + i/len(intervals)
			member.ApplyStrain(member.Strain().WithChordAssignment(note, octave))
		}
		clusterIndex++
	}
}

// incidentStrain sums incident edge amplitudes, skipping dangling edges.
func (e *StrainEngine) incidentStrain(ctx context.Context, entityID valueobjects.EntityID) (float64, int) {
	var total float64
	var count int
	for _, rel := range e.graph.GetRelationships(ctx, entityID) {
		other, ok := rel.OtherEnd(entityID)
		if !ok {
			continue
		}
		if _, exists := e.graph.GetEntity(ctx, other); !exists {
			continue
		}
		total += rel.Strain().Amplitude()
		count++
	}
	return total, count
}

func (e *StrainEngine) mass(ctx context.Context, entityID valueobjects.EntityID) float64 {
	total, _ := e.incidentStrain(ctx, entityID)
	return total + e.cfg.MassUnit
}

// collectCluster walks the qualifying-edge adjacency breadth-first from
// the root, returning members in discovery order.
func collectCluster(root valueobjects.EntityID, adjacent map[string][]valueobjects.EntityID) []valueobjects.EntityID {
	visited := map[string]bool{root.String(): true}
	members := []valueobjects.EntityID{root}
	queue := []valueobjects.EntityID{root}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range adjacent[current.String()] {
			if visited[next.String()] {
				continue
			}
			visited[next.String()] = true
			members = append(members, next)
			queue = append(queue, next)
		}
	}
	return members
}

// rootNoteFor derives a stable pitch class from the root id.
func rootNoteFor(id valueobjects.EntityID) valueobjects.Note {
	var sum int
	for _, b := range []byte(id.String()) {
		sum += int(b)
	}
	return valueobjects.Note(sum % 12)
}

func decayPow(decay float64, hops int) float64 {
	out := 1.0
	for i := 0; i < hops; i++ {
		out *= decay
	}
	return out
}
