// Package traversal implements the spherical volume ray traversal
// state machine: given a ray and a grid.SphericalVoxelGrid, it produces
// the ordered sequence of voxels the ray enters and the parametric ray
// range spent in each (SPEC_FULL.md §2, §6). The package is pure and
// synchronous; it performs no I/O and holds no state across calls.
package traversal

import (
	"errors"
)

// ErrDiverged is returned when the number of emitted records exceeds
// the safety bound in spec.md §4.5 rule 4. It signals that the
// traversal failed to converge; any partial result is discarded.
var ErrDiverged = errors.New("traversal: diverged past safety bound")

// SphericalVoxel identifies a single cell of a spherical voxel grid by
// its radial, polar, and azimuthal indices (spec.md §3). Radial is in
// [1, NumRadial]; Polar is in [0, NumPolar); Azimuthal is in [0, NumAzimuthal).
type SphericalVoxel struct {
	Radial, Polar, Azimuthal int
}

// Record is one entry of a traversal: the voxel the ray occupies and
// the parametric range [TEnter, TExit] it occupies it for.
type Record struct {
	Voxel         SphericalVoxel
	TEnter, TExit float64
}
