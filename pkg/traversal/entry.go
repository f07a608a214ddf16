package traversal

import (
	"math"

	"github.com/sphericalwalk/svtraverse/pkg/grid"
	"github.com/sphericalwalk/svtraverse/pkg/vector"
)

// entryResult carries everything the driver needs to seed its state
// machine, computed once at the start of Walk (spec.md §4.1).
type entryResult struct {
	hit          bool
	tEnter       float64
	tExitSphere  float64
	voxel        SphericalVoxel
}

// findEntry computes the ray's entry into the grid's outer sphere (and,
// for a hollow grid, past its inner hole if the ray starts inside it),
// the exit parameter, and the initial voxel (spec.md §4.1).
func findEntry(ray vector.Ray, g *grid.SphericalVoxelGrid, tMax, eps float64) entryResult {
	outerT1, outerT2, ok, _ := sphereRoots(ray, g.Center(), g.RadialMax(), eps)
	if !ok || (outerT1 <= 0 && outerT2 <= 0) {
		return entryResult{hit: false}
	}

	tEnter := math.Max(0, outerT1)
	tExit := math.Min(tMax, outerT2)
	if tEnter >= tExit {
		return entryResult{hit: false}
	}

	// A hollow grid (RadialMin > 0) excludes the central cavity; if the
	// ray's candidate entry point falls inside it, advance tEnter to
	// where the ray exits the cavity (a sphere can be crossed at most
	// twice, so a single adjustment suffices).
	if g.RadialMin() > 0 {
		entryPoint := ray.At(tEnter)
		if distanceSquared(entryPoint, g.Center()) < g.RadialMin()*g.RadialMin()-eps {
			_, innerT2, innerOK, _ := sphereRoots(ray, g.Center(), g.RadialMin(), eps)
			if !innerOK {
				return entryResult{hit: false}
			}
			tEnter = innerT2
			if tEnter >= tExit {
				return entryResult{hit: false}
			}
		}
	}

	entryPoint := ray.At(tEnter)
	voxel := initialVoxel(entryPoint, g, eps)

	return entryResult{
		hit:         true,
		tEnter:      tEnter,
		tExitSphere: tExit,
		voxel:       voxel,
	}
}

// initialVoxel determines (i_r, i_p, i_a) for a point already known to
// lie within the grid's radial range (spec.md §4.1).
func initialVoxel(point vector.Vec3, g *grid.SphericalVoxelGrid, eps float64) SphericalVoxel {
	return SphericalVoxel{
		Radial:    radialIndexFor(point, g, eps),
		Polar:     polarIndexFor(point, g),
		Azimuthal: azimuthalIndexFor(point, g),
	}
}

// radialIndexFor finds the smallest shell index k in [1, NumRadial]
// such that ShellRadiusSquared(k) >= d^2 (within eps), i.e. the shell
// the ray is about to occupy. A hit exactly on a shell boundary
// resolves to the inner of the two shells meeting there, matching
// spec.md §4.1's numerical-care note.
func radialIndexFor(point vector.Vec3, g *grid.SphericalVoxelGrid, eps float64) int {
	d2 := distanceSquared(point, g.Center())
	n := g.NumRadial()
	for k := 1; k <= n; k++ {
		if g.ShellRadiusSquared(k) >= d2-eps {
			return k
		}
	}
	return n
}

// polarIndexFor locates the polar half-plane wedge containing the
// point's projection onto the XY-plane through the grid center
// (spec.md §4.1, consistent with the wedge convention in §4.3).
func polarIndexFor(point vector.Vec3, g *grid.SphericalVoxelGrid) int {
	rel := point.Subtract(g.Center())
	return angularIndexFor(rel.X, rel.Y, g.Bound().PolarMin, g.Bound().PolarMax, g.NumPolar())
}

// azimuthalIndexFor is the XZ-plane analogue of polarIndexFor
// (spec.md §4.4).
func azimuthalIndexFor(point vector.Vec3, g *grid.SphericalVoxelGrid) int {
	rel := point.Subtract(g.Center())
	return angularIndexFor(rel.X, rel.Z, g.Bound().AzimuthalMin, g.Bound().AzimuthalMax, g.NumAzimuthal())
}

// angularIndexFor maps a 2D offset (u, v) to a wedge index over
// [angleMin, angleMax) divided into n equal sections. A point exactly
// on the axis (u == v == 0) has no well-defined angle; it is assigned
// wedge 0 by convention, matching how the corresponding step functions
// treat a ray direction with no component in this plane.
func angularIndexFor(u, v, angleMin, angleMax float64, n int) int {
	if u == 0 && v == 0 {
		return 0
	}
	angle := math.Atan2(v, u)
	twoPi := 2 * math.Pi
	for angle < angleMin {
		angle += twoPi
	}
	for angle >= angleMin+twoPi {
		angle -= twoPi
	}
	step := (angleMax - angleMin) / float64(n)
	idx := int(math.Floor((angle - angleMin) / step))
	if idx < 0 {
		idx = 0
	}
	if idx >= n {
		idx = n - 1
	}
	return idx
}
