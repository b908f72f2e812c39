package config

import "time"

// DomainConfig holds all configurable business rules and constants for the
// strain graph and the orchestration loop.
type DomainConfig struct {
	// Gravity model. Initial edge amplitude is
	// G * mass(from) * mass(to) / distance^2, where mass is a node's
	// resistance total plus MassUnit. Without 3-D placement every edge
	// sits at DistanceUnit.
	GravitationalConstant float64
	MassUnit              float64
	DistanceUnit          float64

	// Propagation
	PropagationDepth    int
	DecayFactor         float64
	DissonanceThreshold float64

	// Musical clustering
	ChordThreshold float64

	// Thought validation
	MinThoughtTokens int

	// Relevance scoring
	LowRelevanceFloor float64
	VerifiedBoost     float64

	// Dispatch
	ResistanceBudget  float64
	MaxWorkerRoles    int
	DerivedConfidence float64
	DispatchTimeout   time.Duration

	// Duty cycle
	DutyCycleInterval time.Duration
}

// DefaultDomainConfig returns the default domain configuration.
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		GravitationalConstant: 1.0,
		MassUnit:              1.0,
		DistanceUnit:          1.0,

		PropagationDepth:    2,
		DecayFactor:         0.5,
		DissonanceThreshold: 0.1,

		ChordThreshold: 0.3,

		MinThoughtTokens: 2,

		LowRelevanceFloor: 0.1,
		VerifiedBoost:     1.2,

		ResistanceBudget:  0.3,
		MaxWorkerRoles:    3,
		DerivedConfidence: 0.6,
		DispatchTimeout:   30 * time.Second,

		DutyCycleInterval: 15 * time.Second,
	}
}
