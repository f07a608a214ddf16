package benchstats

import (
	"github.com/sphericalwalk/svtraverse/pkg/grid"
	"github.com/sphericalwalk/svtraverse/pkg/vector"
)

// OrthographicRays builds an n x n grid of parallel rays shot along +Z
// from well outside g's outer sphere, spanning a square of half-width
// 0.5*RadialMax centered on g in the XY plane. Every ray is guaranteed
// to intersect g, the same setup as
// the original's orthographicTraverseXSquaredRaysinYCubedVoxels
// benchmark helper.
func OrthographicRays(g *grid.SphericalVoxelGrid, n int) ([]vector.Ray, error) {
	// Keep the XY square's half-diagonal under RadialMax so every ray
	// in it is guaranteed to cross the outer sphere, regardless of n.
	half := g.RadialMax() * 0.5
	originZ := g.Center().Z - (g.RadialMax() + 1)

	rays := make([]vector.Ray, 0, n*n)
	step := 2 * half / float64(n)
	startX := g.Center().X - half
	startY := g.Center().Y - half

	for i := 0; i < n; i++ {
		x := startX + step*float64(i)
		for j := 0; j < n; j++ {
			y := startY + step*float64(j)
			ray, err := vector.NewRay(vector.New(x, y, originZ), vector.New(0, 0, 1))
			if err != nil {
				return nil, err
			}
			rays = append(rays, ray)
		}
	}
	return rays, nil
}
