package observability

import (
	"strainbrain/domain/events"
)

// EventSource is the subscription surface the collector needs.
type EventSource interface {
	Subscribe(fn func(event events.DomainEvent))
}

// CollectEvents keeps the graph totals and propagation metrics in step
// with the domain event stream. Call once, right after the bus exists.
func (m *Metrics) CollectEvents(source EventSource) {
	source.Subscribe(func(event events.DomainEvent) {
		switch e := event.(type) {
		case events.EntityCreated:
			m.EntitiesTotal.Inc()
		case events.EntityDeleted:
			m.EntitiesTotal.Dec()
		case events.ThoughtVerified:
			m.ThoughtsTotal.Inc()
		case events.ThoughtDerived:
			m.ThoughtsTotal.Inc()
			m.DerivedThoughts.Inc()
		case events.StrainPropagated:
			m.PropagationNodes.Observe(float64(e.Visited))
		}
	})
}

// SyncTotals seeds the graph gauges from a snapshot. Bulk loading writes
// to the stores without publishing events, so startup calls this once
// after the load.
func (m *Metrics) SyncTotals(entities, thoughts int) {
	m.EntitiesTotal.Set(float64(entities))
	m.ThoughtsTotal.Set(float64(thoughts))
}
