package benchstats

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/sphericalwalk/svtraverse/pkg/traversal"
)

// SavePhasePlot renders one traversal's shell-radius-over-parameter
// curve to a PNG: for each record, a horizontal segment from TEnter to
// TExit at height equal to its radial index, the same "value over
// frame index" shape as the teacher's per-ring time-series plots.
func SavePhasePlot(records []traversal.Record, title, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "t"
	p.Y.Label.Text = "radial index"

	pts := make(plotter.XYs, 0, 2*len(records))
	for _, r := range records {
		pts = append(pts, plotter.XY{X: r.TEnter, Y: float64(r.Voxel.Radial)})
		pts = append(pts, plotter.XY{X: r.TExit, Y: float64(r.Voxel.Radial)})
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("benchstats: build phase plot line: %w", err)
	}
	line.Width = vg.Points(1.5)
	p.Add(line)

	if err := p.Save(10*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("benchstats: save phase plot: %w", err)
	}
	return nil
}
