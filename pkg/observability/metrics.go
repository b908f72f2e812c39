package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the process-wide instrumentation for the strain graph
// and the orchestration loop.
type Metrics struct {
	SchedulerTurns    *prometheus.CounterVec
	RoleDispatches    *prometheus.CounterVec
	DerivedThoughts   prometheus.Counter
	PropagationNodes  prometheus.Histogram
	CommandDuration   *prometheus.HistogramVec
	QueryDuration     *prometheus.HistogramVec
	EntitiesTotal     prometheus.Gauge
	ThoughtsTotal     prometheus.Gauge
	BackendFailures   prometheus.Counter
	ProtocolViolation prometheus.Counter
}

// NewMetrics creates and registers the metric set on the given registry.
// Pass prometheus.DefaultRegisterer outside tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SchedulerTurns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "strainbrain",
			Name:      "scheduler_turns_total",
			Help:      "Scheduler turns, by trigger (user or dream).",
		}, []string{"trigger"}),
		RoleDispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "strainbrain",
			Name:      "role_dispatches_total",
			Help:      "Role dispatches, by role and outcome.",
		}, []string{"role", "outcome"}),
		DerivedThoughts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "strainbrain",
			Name:      "derived_thoughts_total",
			Help:      "Thoughts created from role replies.",
		}),
		PropagationNodes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "strainbrain",
			Name:      "propagation_visited_nodes",
			Help:      "Nodes visited per strain propagation.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		CommandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "strainbrain",
			Name:      "command_duration_seconds",
			Help:      "Command bus handler latency, by command type.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"command"}),
		QueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "strainbrain",
			Name:      "query_duration_seconds",
			Help:      "Query bus handler latency, by query type.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"query"}),
		EntitiesTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "strainbrain",
			Name:      "entities_total",
			Help:      "Entities currently in the graph.",
		}),
		ThoughtsTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "strainbrain",
			Name:      "thoughts_total",
			Help:      "Thoughts currently stored.",
		}),
		BackendFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "strainbrain",
			Name:      "backend_failures_total",
			Help:      "Reasoning backend calls that failed or timed out.",
		}),
		ProtocolViolation: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "strainbrain",
			Name:      "protocol_violations_total",
			Help:      "Role replies discarded for an unrecognized shape.",
		}),
	}

	reg.MustRegister(
		m.SchedulerTurns,
		m.RoleDispatches,
		m.DerivedThoughts,
		m.PropagationNodes,
		m.CommandDuration,
		m.QueryDuration,
		m.EntitiesTotal,
		m.ThoughtsTotal,
		m.BackendFailures,
		m.ProtocolViolation,
	)
	return m
}
