package traversal

import (
	"errors"
	"testing"

	"github.com/sphericalwalk/svtraverse/pkg/grid"
	"github.com/sphericalwalk/svtraverse/pkg/vector"
)

func mustGrid(t *testing.T, center vector.Vec3, radiusMax float64, numRadial, numPolar, numAzimuthal int) *grid.SphericalVoxelGrid {
	t.Helper()
	g, err := grid.NewFullSphere(center, radiusMax, numRadial, numPolar, numAzimuthal)
	if err != nil {
		t.Fatalf("NewFullSphere() error = %v", err)
	}
	return g
}

func mustRay(t *testing.T, origin, direction vector.Vec3) vector.Ray {
	t.Helper()
	r, err := vector.NewRay(origin, direction)
	if err != nil {
		t.Fatalf("NewRay() error = %v", err)
	}
	return r
}

// Scenario 1 (spec.md §8): a ray that misses the sphere entirely.
func TestWalk_Miss(t *testing.T) {
	g := mustGrid(t, vector.New(0, 0, 0), 1, 4, 4, 4)
	ray := mustRay(t, vector.New(2, 2, 0), vector.New(0, 0, 1))

	records, err := Walk(ray, g, 100)
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records, want 0 (miss)", len(records))
	}
}

// Scenario 2 (spec.md §8): a central axial ray through a 4x4x4 grid.
// Expected radial index sequence: 4, 3, 2, 1, 1, 2, 3, 4 - the ray
// crosses the center exactly, producing a radial tangency that splits
// the innermost shell into two consecutive records.
func TestWalk_CentralAxialRay(t *testing.T) {
	g := mustGrid(t, vector.New(0, 0, 0), 4, 4, 4, 4)
	ray := mustRay(t, vector.New(0, 0, -5), vector.New(0, 0, 1))

	records, err := Walk(ray, g, 100)
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	wantRadial := []int{4, 3, 2, 1, 1, 2, 3, 4}
	if len(records) != len(wantRadial) {
		t.Fatalf("got %d records, want %d: %+v", len(records), len(wantRadial), records)
	}
	for i, want := range wantRadial {
		if records[i].Voxel.Radial != want {
			t.Errorf("record[%d].Voxel.Radial = %d, want %d (full: %+v)", i, records[i].Voxel.Radial, want, records)
		}
	}

	// Contiguity: spec.md §3.
	for i := 1; i < len(records); i++ {
		if records[i].TEnter != records[i-1].TExit {
			t.Errorf("record[%d].TEnter = %f, want %f (record[%d].TExit)", i, records[i].TEnter, records[i-1].TExit, i-1)
		}
	}

	if records[len(records)-1].TExit != 9 {
		t.Errorf("final TExit = %f, want 9", records[len(records)-1].TExit)
	}
}

// Scenario 3 (spec.md §8): a ray tangent to the outer shell.
func TestWalk_TangentRay(t *testing.T) {
	g := mustGrid(t, vector.New(0, 0, 0), 1, 4, 4, 4)
	ray := mustRay(t, vector.New(0, 1, -5), vector.New(0, 0, 1))

	records, err := Walk(ray, g, 100)
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	outerCount := 0
	for _, r := range records {
		if r.Voxel.Radial != g.NumRadial() {
			t.Errorf("tangent ray touched radial index %d, want only %d", r.Voxel.Radial, g.NumRadial())
		}
		outerCount++
	}
	if outerCount > 2 {
		t.Errorf("got %d records, want at most 2 for a tangency", outerCount)
	}
}

// Scenario 4 (spec.md §8): a ray originating at the sphere's center.
func TestWalk_InsideOriginRay(t *testing.T) {
	g := mustGrid(t, vector.New(0, 0, 0), 10, 2, 4, 4)
	ray := mustRay(t, vector.New(0, 0, 0), vector.New(1, 0, 0))

	records, err := Walk(ray, g, 100)
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if len(records) == 0 {
		t.Fatal("got 0 records, want a non-empty traversal")
	}
	if records[0].Voxel.Radial != 1 {
		t.Errorf("first record radial = %d, want 1", records[0].Voxel.Radial)
	}
	last := records[len(records)-1]
	if last.Voxel.Radial != 2 {
		t.Errorf("last record radial = %d, want 2", last.Voxel.Radial)
	}
	if last.TExit != 10 {
		t.Errorf("last TExit = %f, want 10", last.TExit)
	}
}

func TestWalk_TMaxTruncates(t *testing.T) {
	g := mustGrid(t, vector.New(0, 0, 0), 10, 2, 4, 4)
	ray := mustRay(t, vector.New(0, 0, 0), vector.New(1, 0, 0))

	records, err := Walk(ray, g, 3)
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if len(records) == 0 {
		t.Fatal("got 0 records, want a non-empty traversal")
	}
	last := records[len(records)-1]
	if last.TExit != 3 {
		t.Errorf("last TExit = %f, want 3 (tMax truncation)", last.TExit)
	}
}

func TestWalk_Idempotent(t *testing.T) {
	g := mustGrid(t, vector.New(0, 0, 0), 10, 6, 8, 8)
	ray := mustRay(t, vector.New(-20, 3, 7), vector.New(1, -0.3, 0.2))

	first, err := Walk(ray, g, 100)
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	second, err := Walk(ray, g, 100)
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("record[%d] differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

// TestWalk_DivergesIsAnError documents why Walk's safety-bound
// termination rule (spec.md/SPEC_FULL.md §4.5 rule 4, driver.go's
// safetyBound check) is not reachable by any well-formed ray against a
// SphericalVoxelGrid, and backs that claim with a bound checked
// against a ray built to graze the coordinate singularities as closely
// as the plausible "rapid wedge cycling near the axis" scenario gets.
//
// Proof sketch: fix one of the two angular families (polar lives in
// the (X,Y) plane, rotating about the Z-axis; azimuthal lives in
// (X,Z), rotating about the Y-axis) and project the ray onto that
// plane. If the projected line does not pass exactly through the
// origin, the angle from the origin to the moving point is a strictly
// monotonic function of t, and its total variation over the *entire*
// real line is exactly pi: the limiting angles as t -> -infinity and
// t -> +infinity point in exactly opposite directions. A ray only ever
// traverses a sub-interval of that line, so for any ray, any grid, and
// any starting point - including a ray that passes arbitrarily close
// to the singular axis, where the angular rate is largest but the
// total angle swept is still capped at pi - it crosses at most
// ceil(n/2)+1 of that family's n equally spaced half-planes. The
// radial axis crosses at most 2*NumRadial shell boundaries (in, then
// out, plus at most one extra for a tangency at each). Summing all
// three axes stays far under safetyBoundFactor *
// (NumRadial+NumPolar+NumAzimuthal), the bound driver.go actually
// checks, so ErrDiverged guards against a defect in the state machine,
// not a reachable geometric configuration.
func TestWalk_DivergesIsAnError(t *testing.T) {
	if !errors.Is(ErrDiverged, ErrDiverged) {
		t.Fatal("ErrDiverged must be comparable via errors.Is")
	}

	// Empirical backstop for the proof sketch: a ray that grazes both
	// singular axes at once (passing within 1e-9 of the Z-axis and the
	// Y-axis simultaneously, at the midpoint of its path) through a
	// grid with a very fine angular resolution - the scenario most
	// likely to run up a large record count if the bound above did not
	// actually hold. It must still terminate well under the safety
	// bound, without ErrDiverged.
	g := mustGrid(t, vector.New(0, 0, 0), 5, 4, 720, 720)
	ray := mustRay(t, vector.New(-10, 1e-9, 1e-9), vector.New(1, 0, 0))

	records, err := Walk(ray, g, 100)
	if err != nil {
		t.Fatalf("Walk() error = %v, want a bounded, non-diverging traversal", err)
	}

	maxExpected := 2*g.NumRadial() + g.NumPolar()/2 + g.NumAzimuthal()/2 + 16
	if len(records) > maxExpected {
		t.Errorf("got %d records grazing both singular axes, want at most %d (proof sketch bound)", len(records), maxExpected)
	}

	safetyBound := safetyBoundFactor * (g.NumRadial() + g.NumPolar() + g.NumAzimuthal())
	if len(records) > safetyBound {
		t.Errorf("got %d records, exceeds the safety bound %d that should have returned ErrDiverged instead", len(records), safetyBound)
	}
}
