package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"strainbrain/domain/core/valueobjects"
	"strainbrain/domain/events"
)

type stubSource struct {
	fn func(events.DomainEvent)
}

func (s *stubSource) Subscribe(fn func(event events.DomainEvent)) { s.fn = fn }

func TestCollectEvents(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	source := &stubSource{}
	m.CollectEvents(source)

	now := time.Now()
	entityID := valueobjects.NewEntityID(1)
	thoughtID := valueobjects.NewThoughtID(1)
	derivedID := valueobjects.NewThoughtID(2)

	source.fn(events.NewEntityCreated(entityID, "paris", "place", now))
	source.fn(events.NewEntityCreated(valueobjects.NewEntityID(2), "france", "place", now))
	source.fn(events.NewEntityDeleted(valueobjects.NewEntityID(2), now))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EntitiesTotal))

	source.fn(events.NewThoughtVerified(thoughtID, "paris is in france", []valueobjects.EntityID{entityID}, now))
	source.fn(events.NewThoughtDerived(derivedID, thoughtID, "engineer", now))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ThoughtsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DerivedThoughts))
}

func TestSyncTotals(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	m.SyncTotals(7, 3)
	assert.Equal(t, 7.0, testutil.ToFloat64(m.EntitiesTotal))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.ThoughtsTotal))
}
