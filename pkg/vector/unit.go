package vector

import (
	"errors"
	"math"
)

// ErrZeroVector is returned when a unit vector is requested from a
// vector with zero (or near-zero) length.
var ErrZeroVector = errors.New("vector: cannot normalize a zero-length vector")

// minNormLength is the smallest length a vector may have and still be
// normalized without amplifying floating-point noise into a direction.
const minNormLength = 1e-12

// UnitVec3 is a Vec3 known to have unit length. It is produced only by
// NewUnitVec3 or Normalize, never constructed directly, so that once a
// caller holds one, no further zero-length check is needed downstream.
type UnitVec3 struct {
	v Vec3
}

// NewUnitVec3 validates and normalizes the given components.
func NewUnitVec3(x, y, z float64) (UnitVec3, error) {
	return Vec3{X: x, Y: y, Z: z}.Normalize()
}

// Normalize converts v into a UnitVec3, returning ErrZeroVector if v is
// too short to normalize reliably.
func (v Vec3) Normalize() (UnitVec3, error) {
	length := v.Length()
	if length < minNormLength {
		return UnitVec3{}, ErrZeroVector
	}
	inv := 1.0 / length
	return UnitVec3{Vec3{v.X * inv, v.Y * inv, v.Z * inv}}, nil
}

// Vec3 returns the underlying unit vector as a plain Vec3.
func (u UnitVec3) Vec3() Vec3 { return u.v }

// X, Y, Z expose the unit vector's components directly.
func (u UnitVec3) X() float64 { return u.v.X }
func (u UnitVec3) Y() float64 { return u.v.Y }
func (u UnitVec3) Z() float64 { return u.v.Z }

// Dot returns the dot product with another vector.
func (u UnitVec3) Dot(other Vec3) float64 { return u.v.Dot(other) }

// angleUnit builds a unit 2-vector (cos, sin) for angle theta. Used by
// the grid package to precompute polar/azimuthal half-plane directions.
func angleUnit(theta float64) (cos, sin float64) {
	return math.Cos(theta), math.Sin(theta)
}

// AngleUnit exports angleUnit for packages (grid) that need the
// (cos, sin) pair for an angle, keeping trig evaluation centralized in
// one place.
func AngleUnit(theta float64) (cos, sin float64) {
	return angleUnit(theta)
}
