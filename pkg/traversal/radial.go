package traversal

import (
	"github.com/sphericalwalk/svtraverse/pkg/grid"
	"github.com/sphericalwalk/svtraverse/pkg/vector"
)

// radialCandidate is the result of radialStep: the next parametric
// distance to a radial shell crossing, the radial index the ray
// transitions to, and whether the crossing was a tangency (spec.md
// §4.2).
type radialCandidate struct {
	t         float64
	ok        bool
	newRadial int
	tangent   bool
}

// nextSphereRoot returns the smallest root of the sphere of the given
// radius that lies strictly after tCur (within eps), along with
// whether that sphere's two roots are themselves a tangency.
func nextSphereRoot(ray vector.Ray, center vector.Vec3, radius, tCur, eps float64) (t float64, ok, tangent bool) {
	t1, t2, hit, tan := sphereRoots(ray, center, radius, eps)
	if !hit {
		return 0, false, false
	}
	if t1 > tCur+eps {
		return t1, true, tan
	}
	if t2 > tCur+eps {
		return t2, true, tan
	}
	return 0, false, false
}

// radialStep computes t_r and the resulting radial index for the
// current shell (spec.md §4.2). The inner shell is r_{currentRadial-1}
// and the outer shell is r_{currentRadial}; whichever is crossed next
// determines step_r. A tangency (double root) reverses the radial
// direction without changing the index, but is still reported as a
// candidate so the driver can synchronize it with polar/azimuthal
// transitions (spec.md §4.5).
func radialStep(ray vector.Ray, g *grid.SphericalVoxelGrid, currentRadial int, tCur, eps float64) radialCandidate {
	innerRadius := g.ShellRadius(currentRadial - 1)
	outerRadius := g.ShellRadius(currentRadial)

	tInner, innerOK, innerTangent := nextSphereRoot(ray, g.Center(), innerRadius, tCur, eps)
	tOuter, outerOK, outerTangent := nextSphereRoot(ray, g.Center(), outerRadius, tCur, eps)

	innerNewRadial := currentRadial - 1
	if innerTangent {
		innerNewRadial = currentRadial
	}
	outerNewRadial := currentRadial + 1
	if outerTangent {
		outerNewRadial = currentRadial
	}

	switch {
	case innerOK && outerOK:
		if tInner <= tOuter {
			return radialCandidate{t: tInner, ok: true, newRadial: innerNewRadial, tangent: innerTangent}
		}
		return radialCandidate{t: tOuter, ok: true, newRadial: outerNewRadial, tangent: outerTangent}
	case innerOK:
		return radialCandidate{t: tInner, ok: true, newRadial: innerNewRadial, tangent: innerTangent}
	case outerOK:
		return radialCandidate{t: tOuter, ok: true, newRadial: outerNewRadial, tangent: outerTangent}
	default:
		return radialCandidate{ok: false}
	}
}
