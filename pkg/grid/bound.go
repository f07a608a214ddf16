// Package grid holds the immutable description of a spherical voxel
// grid: its radial/polar/azimuthal bounds, section counts, and the
// precomputed trig tables and shell radii the traversal core consumes.
package grid

import (
	"fmt"
	"math"
)

const twoPi = 2 * math.Pi

// angleEpsilon tolerates floating-point noise when validating that a
// polar/azimuthal bound lies within [0, 2*pi].
const angleEpsilon = 1e-9

// SphereBound describes a radial range and the polar/azimuthal
// sub-ranges of [0, 2*pi] a grid spans (spec.md §3).
type SphereBound struct {
	RadialMin, RadialMax       float64
	PolarMin, PolarMax         float64
	AzimuthalMin, AzimuthalMax float64
}

// validate checks the invariants spec.md §3 and §7.1 require of a
// SphereBound: non-negative radii with min < max, and angular ranges
// that are non-empty subintervals of [0, 2*pi] (min < max).
func (b SphereBound) validate() error {
	if b.RadialMin < 0 {
		return fmt.Errorf("grid: RadialMin must be non-negative, got %g", b.RadialMin)
	}
	if !(b.RadialMin < b.RadialMax) {
		return fmt.Errorf("grid: RadialMin (%g) must be less than RadialMax (%g)", b.RadialMin, b.RadialMax)
	}
	if err := validateAngleRange("Polar", b.PolarMin, b.PolarMax); err != nil {
		return err
	}
	if err := validateAngleRange("Azimuthal", b.AzimuthalMin, b.AzimuthalMax); err != nil {
		return err
	}
	return nil
}

func validateAngleRange(name string, min, max float64) error {
	if min < -angleEpsilon || min > twoPi+angleEpsilon {
		return fmt.Errorf("grid: %sMin must be within [0, 2*pi], got %g", name, min)
	}
	if max < -angleEpsilon || max > twoPi+angleEpsilon {
		return fmt.Errorf("grid: %sMax must be within [0, 2*pi], got %g", name, max)
	}
	if !(min < max) {
		return fmt.Errorf("grid: %sMin (%g) must be less than %sMax (%g)", name, min, name, max)
	}
	return nil
}
