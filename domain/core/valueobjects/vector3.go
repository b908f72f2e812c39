package valueobjects

import "math"

// Vector3 is an immutable 3-D direction vector.
// Strain directions are forward-looking placement data: nothing in the
// propagation math consumes them yet, but they are carried on every
// strain vector so a spatial layout can be added without a migration.
type Vector3 struct {
	x float64
	y float64
	z float64
}

// NewVector3 creates a vector from its components.
func NewVector3(x, y, z float64) Vector3 {
	return Vector3{x: x, y: y, z: z}
}

// ZeroVector3 returns the zero vector.
func ZeroVector3() Vector3 {
	return Vector3{}
}

// X returns the x component.
func (v Vector3) X() float64 { return v.x }

// Y returns the y component.
func (v Vector3) Y() float64 { return v.y }

// Z returns the z component.
func (v Vector3) Z() float64 { return v.z }

// Magnitude returns the Euclidean length of the vector.
func (v Vector3) Magnitude() float64 {
	return math.Sqrt(v.x*v.x + v.y*v.y + v.z*v.z)
}

// Normalized returns a unit vector in the same direction.
// The zero vector normalizes to itself.
func (v Vector3) Normalized() Vector3 {
	mag := v.Magnitude()
	if mag == 0 {
		return Vector3{}
	}
	return Vector3{x: v.x / mag, y: v.y / mag, z: v.z / mag}
}

// Equals checks if two vectors are equal.
func (v Vector3) Equals(other Vector3) bool {
	return v.x == other.x && v.y == other.y && v.z == other.z
}
