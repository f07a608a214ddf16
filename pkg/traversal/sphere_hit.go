package traversal

import (
	"math"

	"github.com/sphericalwalk/svtraverse/pkg/vector"
)

// sphereRoots solves |O + tD - C|^2 = radius^2 for t (spec.md §4.1),
// the quadratic at the heart of both ray-sphere entry and every radial
// shell crossing. a, halfB, c follow the same naming and clamped-root
// structure as the teacher's Sphere.Hit (geometry/sphere.go), adapted
// to return both roots (ordered t1 <= t2) instead of the nearer one,
// since the radial step needs to reason about which root it is using.
//
// tangent reports whether the two roots are within eps of each other
// (spec.md §4.2's "double root" tangency case); ok reports whether any
// real root exists at all.
func sphereRoots(ray vector.Ray, center vector.Vec3, radius, eps float64) (t1, t2 float64, ok, tangent bool) {
	oc := ray.Origin.Subtract(center)
	a := ray.Direction.Dot(ray.Direction)
	halfB := ray.Direction.Dot(oc)
	c := oc.Dot(oc) - radius*radius

	discQuarter := halfB*halfB - a*c
	if discQuarter < 0 {
		// Tolerate floating-point noise around an exact tangency.
		if discQuarter > -eps*eps {
			discQuarter = 0
		} else {
			return 0, 0, false, false
		}
	}

	sqrtDisc := math.Sqrt(discQuarter)
	invA := 1.0 / a
	t1 = (-halfB - sqrtDisc) * invA
	t2 = (-halfB + sqrtDisc) * invA
	tangent = (t2 - t1) <= eps
	return t1, t2, true, tangent
}

// distanceSquared returns |P - C|^2 for a point P.
func distanceSquared(p, center vector.Vec3) float64 {
	d := p.Subtract(center)
	return d.Dot(d)
}
