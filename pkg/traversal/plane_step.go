package traversal

import (
	"math"

	"github.com/sphericalwalk/svtraverse/pkg/vector"
)

// planeCandidate is a potential crossing of one angular half-plane.
type planeCandidate struct {
	t        float64
	ok       bool
	newIndex int
}

// axisPair extracts the two coordinates (relative to the grid center)
// that a half-plane family lives in: (X, Y) for polar, (X, Z) for
// azimuthal (spec.md §4.3, §4.4).
type axisPair struct {
	u, v func(vector.Vec3) float64
}

var polarAxes = axisPair{
	u: func(v vector.Vec3) float64 { return v.X },
	v: func(v vector.Vec3) float64 { return v.Y },
}

var azimuthalAxes = axisPair{
	u: func(v vector.Vec3) float64 { return v.X },
	v: func(v vector.Vec3) float64 { return v.Z },
}

// directionTable abstracts over grid.SphericalVoxelGrid's
// PolarDirection/AzimuthalDirection accessors.
type directionTable func(k int) (cos, sin float64)

// planeStep finds the nearest valid crossing (at t > tCur+eps) of
// either half-plane bounding the current angular wedge, and the index
// the wedge transitions to. It implements spec.md §4.3/§4.4: for each
// of the two candidate planes, reject hits at or before tCur, reject
// hits on the half-plane's antipodal side, and take the smaller of the
// surviving candidates.
func planeStep(ray vector.Ray, center vector.Vec3, axes axisPair, dirs directionTable, currentIndex, n int, tCur, eps float64) planeCandidate {
	oc := ray.Origin.Subtract(center)
	ou, ov := axes.u(oc), axes.v(oc)
	du, dv := axes.u(ray.Direction), axes.v(ray.Direction)

	lowK := currentIndex
	highK := (currentIndex + 1) % n

	var best planeCandidate

	tryPlane := func(k, newIndex int) {
		cos, sin := dirs(k)
		nu, nv := -sin, cos // normal to the half-plane, in-plane coords

		denom := nu*du + nv*dv
		if math.Abs(denom) < eps {
			return // ray parallel to this half-plane
		}
		t := -(nu*ou + nv*ov) / denom
		if t <= tCur+eps {
			return
		}

		pu := ou + t*du
		pv := ov + t*dv
		if pu*cos+pv*sin < -eps {
			return // hit is on the antipodal half across the axis
		}

		if !best.ok || t < best.t {
			best = planeCandidate{t: t, ok: true, newIndex: newIndex}
		}
	}

	tryPlane(lowK, (currentIndex-1+n)%n)
	if highK != lowK {
		tryPlane(highK, (currentIndex+1)%n)
	}

	return best
}
