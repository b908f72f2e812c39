package valueobjects

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Identifiers are stable prefixed counters ("entity_1", "rel_4", ...).
// The stores that own each namespace issue the sequence numbers; the
// value objects here only guarantee shape.

const (
	entityIDPrefix   = "entity_"
	relIDPrefix      = "rel_"
	contextIDPrefix  = "ctx_"
	thoughtIDPrefix  = "thought_"
)

// EntityID identifies an entity in the graph.
type EntityID struct {
	value string
}

// NewEntityID builds the id for the given sequence number.
func NewEntityID(seq uint64) EntityID {
	return EntityID{value: entityIDPrefix + strconv.FormatUint(seq, 10)}
}

// ParseEntityID validates an externally supplied entity id.
func ParseEntityID(s string) (EntityID, error) {
	if err := checkPrefixedID(s, entityIDPrefix); err != nil {
		return EntityID{}, err
	}
	return EntityID{value: s}, nil
}

// String returns the string representation.
func (id EntityID) String() string { return id.value }

// Equals checks if two entity ids are equal.
func (id EntityID) Equals(other EntityID) bool { return id.value == other.value }

// Sequence returns the numeric suffix, zero for the zero id.
func (id EntityID) Sequence() uint64 {
	return sequenceOf(id.value, entityIDPrefix)
}

// IsZero checks if the id is the zero value.
func (id EntityID) IsZero() bool { return id.value == "" }

// MarshalJSON implements json.Marshaler.
func (id EntityID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (id *EntityID) UnmarshalJSON(data []byte) error {
	v, err := unquoteID(data)
	if err != nil {
		return err
	}
	id.value = v
	return nil
}

// RelationshipID identifies a directed edge.
type RelationshipID struct {
	value string
}

// NewRelationshipID builds the id for the given sequence number.
func NewRelationshipID(seq uint64) RelationshipID {
	return RelationshipID{value: relIDPrefix + strconv.FormatUint(seq, 10)}
}

// ParseRelationshipID validates an externally supplied relationship id.
func ParseRelationshipID(s string) (RelationshipID, error) {
	if err := checkPrefixedID(s, relIDPrefix); err != nil {
		return RelationshipID{}, err
	}
	return RelationshipID{value: s}, nil
}

// String returns the string representation.
func (id RelationshipID) String() string { return id.value }

// Equals checks if two relationship ids are equal.
func (id RelationshipID) Equals(other RelationshipID) bool { return id.value == other.value }

// IsZero checks if the id is the zero value.
func (id RelationshipID) IsZero() bool { return id.value == "" }

// ContextID identifies an entity context.
type ContextID struct {
	value string
}

// NewContextID builds the id for the given sequence number.
func NewContextID(seq uint64) ContextID {
	return ContextID{value: contextIDPrefix + strconv.FormatUint(seq, 10)}
}

// ParseContextID validates an externally supplied context id.
func ParseContextID(s string) (ContextID, error) {
	if err := checkPrefixedID(s, contextIDPrefix); err != nil {
		return ContextID{}, err
	}
	return ContextID{value: s}, nil
}

// String returns the string representation.
func (id ContextID) String() string { return id.value }

// Equals checks if two context ids are equal.
func (id ContextID) Equals(other ContextID) bool { return id.value == other.value }

// IsZero checks if the id is the zero value.
func (id ContextID) IsZero() bool { return id.value == "" }

// ThoughtID identifies a thought.
type ThoughtID struct {
	value string
}

// NewThoughtID builds the id for the given sequence number.
func NewThoughtID(seq uint64) ThoughtID {
	return ThoughtID{value: thoughtIDPrefix + strconv.FormatUint(seq, 10)}
}

// ParseThoughtID validates an externally supplied thought id.
func ParseThoughtID(s string) (ThoughtID, error) {
	if err := checkPrefixedID(s, thoughtIDPrefix); err != nil {
		return ThoughtID{}, err
	}
	return ThoughtID{value: s}, nil
}

// String returns the string representation.
func (id ThoughtID) String() string { return id.value }

// Equals checks if two thought ids are equal.
func (id ThoughtID) Equals(other ThoughtID) bool { return id.value == other.value }

// Sequence returns the numeric suffix, zero for the zero id.
func (id ThoughtID) Sequence() uint64 {
	return sequenceOf(id.value, thoughtIDPrefix)
}

// IsZero checks if the id is the zero value.
func (id ThoughtID) IsZero() bool { return id.value == "" }

// MarshalJSON implements json.Marshaler.
func (id ThoughtID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (id *ThoughtID) UnmarshalJSON(data []byte) error {
	v, err := unquoteID(data)
	if err != nil {
		return err
	}
	id.value = v
	return nil
}

func checkPrefixedID(s, prefix string) error {
	if s == "" {
		return errors.New("id cannot be empty")
	}
	if !strings.HasPrefix(s, prefix) {
		return fmt.Errorf("id %q must start with %q", s, prefix)
	}
	if _, err := strconv.ParseUint(s[len(prefix):], 10, 64); err != nil {
		return fmt.Errorf("id %q must end in a sequence number", s)
	}
	return nil
}

func sequenceOf(value, prefix string) uint64 {
	if !strings.HasPrefix(value, prefix) {
		return 0
	}
	seq, err := strconv.ParseUint(value[len(prefix):], 10, 64)
	if err != nil {
		return 0
	}
	return seq
}

func unquoteID(data []byte) (string, error) {
	if string(data) == "null" {
		return "", nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return "", errors.New("id must be a JSON string")
	}
	return string(data[1 : len(data)-1]), nil
}
