package grid

import (
	"fmt"

	"github.com/sphericalwalk/svtraverse/pkg/vector"
)

// angleTable holds a precomputed (cos, sin) pair for each half-plane
// index, so the traversal core never calls math.Sin/math.Cos in its
// inner loop.
type angleTable struct {
	cos, sin []float64
}

func newAngleTable(min, max float64, n int) angleTable {
	t := angleTable{cos: make([]float64, n), sin: make([]float64, n)}
	step := (max - min) / float64(n)
	for k := 0; k < n; k++ {
		theta := min + float64(k)*step
		t.cos[k], t.sin[k] = vector.AngleUnit(theta)
	}
	return t
}

// SphericalVoxelGrid is an immutable spherical voxel grid: a center, a
// radial/polar/azimuthal SphereBound, and section counts. Once
// constructed it holds precomputed shell radii, shell radii squared,
// and polar/azimuthal trig tables (spec.md §3).
type SphericalVoxelGrid struct {
	center vector.Vec3
	bound  SphereBound

	numRadial    int
	numPolar     int
	numAzimuthal int

	shellRadii     []float64 // length numRadial+1, shellRadii[0] == RadialMin
	shellRadiiSq   []float64 // length numRadial+1
	polarTable     angleTable
	azimuthalTable angleTable
}

// New constructs a validated, immutable SphericalVoxelGrid. Counts must
// all be positive; the bound must satisfy SphereBound's own invariants.
func New(center vector.Vec3, bound SphereBound, numRadial, numPolar, numAzimuthal int) (*SphericalVoxelGrid, error) {
	if !center.IsFinite() {
		return nil, fmt.Errorf("grid: center must be finite, got %v", center)
	}
	if err := bound.validate(); err != nil {
		return nil, err
	}
	if numRadial < 1 || numPolar < 1 || numAzimuthal < 1 {
		return nil, fmt.Errorf("grid: section counts must be >= 1, got (%d, %d, %d)", numRadial, numPolar, numAzimuthal)
	}

	g := &SphericalVoxelGrid{
		center:         center,
		bound:          bound,
		numRadial:      numRadial,
		numPolar:       numPolar,
		numAzimuthal:   numAzimuthal,
		polarTable:     newAngleTable(bound.PolarMin, bound.PolarMax, numPolar),
		azimuthalTable: newAngleTable(bound.AzimuthalMin, bound.AzimuthalMax, numAzimuthal),
	}

	deltaR := (bound.RadialMax - bound.RadialMin) / float64(numRadial)
	g.shellRadii = make([]float64, numRadial+1)
	g.shellRadiiSq = make([]float64, numRadial+1)
	for k := 0; k <= numRadial; k++ {
		r := bound.RadialMin + float64(k)*deltaR
		g.shellRadii[k] = r
		g.shellRadiiSq[k] = r * r
	}
	// Guard against accumulated floating-point error collapsing the
	// outermost shell onto its neighbor.
	g.shellRadii[numRadial] = bound.RadialMax
	g.shellRadiiSq[numRadial] = bound.RadialMax * bound.RadialMax

	return g, nil
}

// Center returns the sphere's center.
func (g *SphericalVoxelGrid) Center() vector.Vec3 { return g.center }

// Bound returns the grid's SphereBound.
func (g *SphericalVoxelGrid) Bound() SphereBound { return g.bound }

// NumRadial, NumPolar, NumAzimuthal return the grid's section counts.
func (g *SphericalVoxelGrid) NumRadial() int    { return g.numRadial }
func (g *SphericalVoxelGrid) NumPolar() int     { return g.numPolar }
func (g *SphericalVoxelGrid) NumAzimuthal() int { return g.numAzimuthal }

// RadialMax and RadialMin are convenience accessors used throughout the
// traversal core for the outermost/innermost shell radii.
func (g *SphericalVoxelGrid) RadialMax() float64 { return g.bound.RadialMax }
func (g *SphericalVoxelGrid) RadialMin() float64 { return g.bound.RadialMin }

// ShellRadius returns r_k for k in [0, numRadial].
func (g *SphericalVoxelGrid) ShellRadius(k int) float64 { return g.shellRadii[k] }

// ShellRadiusSquared returns r_k^2 for k in [0, numRadial].
func (g *SphericalVoxelGrid) ShellRadiusSquared(k int) float64 { return g.shellRadiiSq[k] }

// PolarDirection returns the (cos, sin) pair for polar half-plane k.
func (g *SphericalVoxelGrid) PolarDirection(k int) (cos, sin float64) {
	return g.polarTable.cos[k], g.polarTable.sin[k]
}

// AzimuthalDirection returns the (cos, sin) pair for azimuthal
// half-plane k.
func (g *SphericalVoxelGrid) AzimuthalDirection(k int) (cos, sin float64) {
	return g.azimuthalTable.cos[k], g.azimuthalTable.sin[k]
}
