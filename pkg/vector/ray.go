package vector

import "errors"

// ErrDegenerateRay is returned when a ray is constructed with a
// zero-length or non-finite direction.
var ErrDegenerateRay = errors.New("vector: ray direction must be finite and non-zero")

// Ray is a parametric ray P(t) = Origin + t*Direction. Direction is not
// required to be unit length, only non-zero (spec.md §3).
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay validates and constructs a ray. Malformed rays (zero or
// non-finite direction, non-finite origin) are rejected here rather
// than allowed to propagate NaNs into the traversal core.
func NewRay(origin, direction Vec3) (Ray, error) {
	if !origin.IsFinite() || !direction.IsFinite() {
		return Ray{}, ErrDegenerateRay
	}
	if direction.LengthSquared() < minNormLength*minNormLength {
		return Ray{}, ErrDegenerateRay
	}
	return Ray{Origin: origin, Direction: direction}, nil
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
