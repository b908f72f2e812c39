package valueobjects

import "time"

// DefaultResistance is the resistance assigned to freshly created nodes
// and edges before any evidence has been attached.
const DefaultResistance = 0.5

// StrainVector carries the confidence-dissonance signal attached to every
// entity, relationship, and thought. It is a value object: mutation goes
// through the With*/Touched builders so callers can never produce an
// amplitude below zero or a resistance outside [0,1].
type StrainVector struct {
	amplitude      float64
	resistance     float64
	frequency      int
	nodeResistance float64
	note           Note
	octave         int
	direction      Vector3
	lastAccessed   time.Time
	accessCount    int
}

// NewStrainVector creates a strain vector with default resistance and
// zero amplitude.
func NewStrainVector() StrainVector {
	return StrainVector{
		resistance:   DefaultResistance,
		octave:       4,
		lastAccessed: time.Now(),
	}
}

// ReconstructStrainVector rebuilds a strain vector from loaded data,
// clamping out-of-range inputs rather than rejecting them.
func ReconstructStrainVector(amplitude, resistance float64, frequency, accessCount int) StrainVector {
	sv := NewStrainVector()
	sv.amplitude = clampNonNegative(amplitude)
	sv.resistance = clampUnit(resistance)
	if frequency > 0 {
		sv.frequency = frequency
	}
	if accessCount > 0 {
		sv.accessCount = accessCount
	}
	return sv
}

// Amplitude returns the strain amplitude. Never negative.
func (s StrainVector) Amplitude() float64 { return s.amplitude }

// Resistance returns the damping factor in [0,1].
func (s StrainVector) Resistance() float64 { return s.resistance }

// Frequency returns the access/context count used for clustering.
func (s StrainVector) Frequency() int { return s.frequency }

// NodeResistance returns the last computed sum of incident amplitudes.
func (s StrainVector) NodeResistance() float64 { return s.nodeResistance }

// Note returns the assigned pitch class.
func (s StrainVector) Note() Note { return s.note }

// Octave returns the assigned octave.
func (s StrainVector) Octave() int { return s.octave }

// Direction returns the 3-D direction.
func (s StrainVector) Direction() Vector3 { return s.direction }

// LastAccessed returns the last access timestamp.
func (s StrainVector) LastAccessed() time.Time { return s.lastAccessed }

// AccessCount returns how many times the carrier was accessed.
func (s StrainVector) AccessCount() int { return s.accessCount }

// WithAmplitude returns a copy with the amplitude set, clamped at zero.
func (s StrainVector) WithAmplitude(amplitude float64) StrainVector {
	s.amplitude = clampNonNegative(amplitude)
	return s
}

// AddAmplitude returns a copy with the delta added, clamped at zero.
func (s StrainVector) AddAmplitude(delta float64) StrainVector {
	s.amplitude = clampNonNegative(s.amplitude + delta)
	return s
}

// WithResistance returns a copy with the resistance set, clamped to [0,1].
func (s StrainVector) WithResistance(resistance float64) StrainVector {
	s.resistance = clampUnit(resistance)
	return s
}

// WithFrequency returns a copy with the frequency set.
func (s StrainVector) WithFrequency(frequency int) StrainVector {
	if frequency < 0 {
		frequency = 0
	}
	s.frequency = frequency
	return s
}

// WithNodeResistance returns a copy with the cached node resistance set.
func (s StrainVector) WithNodeResistance(total float64) StrainVector {
	s.nodeResistance = clampNonNegative(total)
	return s
}

// WithChordAssignment returns a copy carrying the given note and octave.
func (s StrainVector) WithChordAssignment(note Note, octave int) StrainVector {
	s.note = note
	s.octave = octave
	return s
}

// WithDirection returns a copy with the direction set.
func (s StrainVector) WithDirection(direction Vector3) StrainVector {
	s.direction = direction
	return s
}

// Touched returns a copy with the access statistics advanced.
func (s StrainVector) Touched(at time.Time) StrainVector {
	s.lastAccessed = at
	s.accessCount++
	return s
}

func clampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
