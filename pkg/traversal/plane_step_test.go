package traversal

import (
	"math"
	"testing"

	"github.com/sphericalwalk/svtraverse/pkg/grid"
	"github.com/sphericalwalk/svtraverse/pkg/vector"
)

func TestPlaneStep_ParallelRayNeverCrosses(t *testing.T) {
	// A ray travelling straight up the Z axis has no X or Y component,
	// so it can never cross a polar (XY-plane) half-plane boundary.
	g := mustGrid(t, vector.New(0, 0, 0), 4, 4, 4, 4)
	ray := mustRay(t, vector.New(0, 0, -5), vector.New(0, 0, 1))

	cand := planeStep(ray, g.Center(), polarAxes, g.PolarDirection, 0, g.NumPolar(), 0, 1e-9)
	if cand.ok {
		t.Errorf("expected no polar crossing, got t=%f newIndex=%d", cand.t, cand.newIndex)
	}
}

// With 4 equal polar wedges, a ray moving in +X at fixed y=0.1 crosses
// the X=0 boundary (angle pi/2) going from wedge 1 ([pi/2, pi)) into
// wedge 0 ([0, pi/2)).
func TestPlaneStep_CrossesAtExpectedAngle(t *testing.T) {
	g := mustGrid(t, vector.New(0, 0, 0), 4, 4, 4, 4)
	ray := mustRay(t, vector.New(-5, 0.1, 0), vector.New(1, 0, 0))

	cand := planeStep(ray, g.Center(), polarAxes, g.PolarDirection, 1, g.NumPolar(), 0, 1e-9)
	if !cand.ok {
		t.Fatal("expected a crossing")
	}
	if cand.newIndex != 0 {
		t.Errorf("newIndex = %d, want 0", cand.newIndex)
	}
	point := ray.At(cand.t)
	if math.Abs(point.X) > 1e-6 {
		t.Errorf("crossing point x = %f, want ~0", point.X)
	}
}

func TestPlaneStep_RejectsPastHits(t *testing.T) {
	g := mustGrid(t, vector.New(0, 0, 0), 4, 4, 4, 4)
	ray := mustRay(t, vector.New(-5, 0.1, 0), vector.New(1, 0, 0))

	first := planeStep(ray, g.Center(), polarAxes, g.PolarDirection, 1, g.NumPolar(), 0, 1e-9)
	if !first.ok {
		t.Fatal("expected a first crossing")
	}
	second := planeStep(ray, g.Center(), polarAxes, g.PolarDirection, first.newIndex, g.NumPolar(), first.t, 1e-9)
	if second.ok && second.t <= first.t {
		t.Errorf("got a stale crossing at t=%f <= %f", second.t, first.t)
	}
}

// With only 2 polar wedges, the two boundary planes of wedge 1 are the
// positive-X axis (k=0) and the negative-X axis (k=1), both extended
// along Z. A ray crossing y=0 on the negative-X side must register only
// the negative-X plane, never mistake it for its antipodal twin.
func TestPlaneStep_AntipodalHitRejected(t *testing.T) {
	bound := grid.SphereBound{
		RadialMin: 0, RadialMax: 4,
		PolarMin: 0, PolarMax: 2 * math.Pi,
		AzimuthalMin: 0, AzimuthalMax: 2 * math.Pi,
	}
	g, err := grid.New(vector.New(0, 0, 0), bound, 4, 2, 4)
	if err != nil {
		t.Fatalf("grid.New() error = %v", err)
	}

	ray := mustRay(t, vector.New(-3, -5, 0), vector.New(0, 1, 0))
	cand := planeStep(ray, g.Center(), polarAxes, g.PolarDirection, 1, g.NumPolar(), 0, 1e-9)
	if !cand.ok {
		t.Fatal("expected a crossing via the negative-X boundary plane")
	}
	if cand.newIndex != 0 {
		t.Errorf("newIndex = %d, want 0", cand.newIndex)
	}
	point := ray.At(cand.t)
	if point.X >= 0 {
		t.Errorf("crossing point x = %f, want < 0 (negative-X boundary, not its antipode)", point.X)
	}
}
