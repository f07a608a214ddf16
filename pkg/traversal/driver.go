package traversal

import (
	"math"

	"github.com/sphericalwalk/svtraverse/pkg/grid"
	"github.com/sphericalwalk/svtraverse/pkg/vector"
)

// safetyBoundFactor bounds the number of records a single traversal
// may emit before it is considered diverged (spec.md §4.5 rule 4).
const safetyBoundFactor = 8

// Walk is the spherical volume ray traversal engine's sole exported
// operation (spec.md §6): it returns the ordered sequence of voxels
// ray enters within [0, tMax], along with the parametric range spent
// in each. An empty, nil-error result means the ray does not intersect
// the grid within [0, tMax]. Walk is pure: it performs no I/O, holds no
// state between calls, and is safe to call concurrently for any number
// of rays against the same grid (spec.md §5).
func Walk(ray vector.Ray, g *grid.SphericalVoxelGrid, tMax float64) ([]Record, error) {
	eps := epsilonScale(tMax, g.RadialMax())

	entry := findEntry(ray, g, tMax, eps)
	if !entry.hit {
		return nil, nil
	}

	tExitBound := math.Min(entry.tExitSphere, tMax)

	capacity := 2 * (g.NumRadial() + g.NumPolar() + g.NumAzimuthal())
	records := make([]Record, 0, capacity)

	safetyBound := safetyBoundFactor * (g.NumRadial() + g.NumPolar() + g.NumAzimuthal())

	tCur := entry.tEnter
	voxel := entry.voxel

	for {
		rC := radialStep(ray, g, voxel.Radial, tCur, eps)
		pC := planeStep(ray, g.Center(), polarAxes, g.PolarDirection, voxel.Polar, g.NumPolar(), tCur, eps)
		aC := planeStep(ray, g.Center(), azimuthalAxes, g.AzimuthalDirection, voxel.Azimuthal, g.NumAzimuthal(), tCur, eps)

		if !rC.ok && !pC.ok && !aC.ok {
			// Rule 1: nothing left to cross; terminate without a
			// further record.
			break
		}

		tMin := math.Inf(1)
		if rC.ok {
			tMin = math.Min(tMin, rC.t)
		}
		if pC.ok {
			tMin = math.Min(tMin, pC.t)
		}
		if aC.ok {
			tMin = math.Min(tMin, aC.t)
		}

		if tMin >= tExitBound {
			// Rule 2: the next crossing lies at or beyond the valid
			// range; close out the current voxel at the boundary.
			records = append(records, Record{Voxel: voxel, TEnter: tCur, TExit: tExitBound})
			return records, nil
		}

		records = append(records, Record{Voxel: voxel, TEnter: tCur, TExit: tMin})
		tCur = tMin

		next := voxel
		if rC.ok && math.Abs(rC.t-tMin) <= eps {
			next.Radial = rC.newRadial
		}
		if pC.ok && math.Abs(pC.t-tMin) <= eps {
			next.Polar = pC.newIndex
		}
		if aC.ok && math.Abs(aC.t-tMin) <= eps {
			next.Azimuthal = aC.newIndex
		}

		if next.Radial < 1 || next.Radial > g.NumRadial() {
			// Rule 3: the ray has left the grid radially; the record
			// just emitted already closes out the traversal.
			return records, nil
		}

		voxel = next

		if len(records) > safetyBound {
			return nil, ErrDiverged
		}
	}

	return records, nil
}
