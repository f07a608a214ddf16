package grid

import "github.com/sphericalwalk/svtraverse/pkg/vector"

// NewFullSphere builds a grid spanning the entire sphere (polar and
// azimuthal ranges of [0, 2*pi], RadialMin of 0) around center with the
// given maximum radius and section counts. This mirrors the common
// case exercised by the original benchmark and CI suites, where the
// grid is not restricted to an angular wedge.
func NewFullSphere(center vector.Vec3, radiusMax float64, numRadial, numPolar, numAzimuthal int) (*SphericalVoxelGrid, error) {
	bound := SphereBound{
		RadialMin:    0,
		RadialMax:    radiusMax,
		PolarMin:     0,
		PolarMax:     twoPi,
		AzimuthalMin: 0,
		AzimuthalMax: twoPi,
	}
	return New(center, bound, numRadial, numPolar, numAzimuthal)
}
