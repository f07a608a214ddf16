package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sphericalwalk/svtraverse/pkg/benchstats"
	"github.com/sphericalwalk/svtraverse/pkg/grid"
	"github.com/sphericalwalk/svtraverse/pkg/tracelog"
	"github.com/sphericalwalk/svtraverse/pkg/traversal"
	"github.com/sphericalwalk/svtraverse/pkg/vector"
	"github.com/sphericalwalk/svtraverse/web/server"
)

// args holds the parsed command-line configuration. Kept separate from
// flag.FlagSet so it can be built and validated without touching the
// process-global flag set or os.Exit.
type args struct {
	serve    bool
	port     int
	bench    bool
	plotPath string
	help     bool

	radiusMax    float64
	numRadial    int
	numPolar     int
	numAzimuthal int
	tMax         float64

	ox, oy, oz float64
	dx, dy, dz float64
}

// parseArgs parses argv (excluding the program name) into args. It never
// calls os.Exit or touches package-level flag state, so it can be
// exercised directly from tests.
func parseArgs(argv []string) (args, error) {
	fs := flag.NewFlagSet("svtraverse", flag.ContinueOnError)
	a := args{}

	fs.BoolVar(&a.serve, "serve", false, "Run the HTTP dashboard instead of a single traversal")
	fs.IntVar(&a.port, "port", 8080, "Port for -serve")
	fs.BoolVar(&a.bench, "bench", false, "Run the orthographic benchmark sweep and print a summary")
	fs.StringVar(&a.plotPath, "plot", "", "If set, write a radius-vs-t phase plot PNG to this path")

	fs.Float64Var(&a.radiusMax, "radiusMax", 5, "Grid outer radius")
	fs.IntVar(&a.numRadial, "numRadial", 4, "Number of radial sections")
	fs.IntVar(&a.numPolar, "numPolar", 8, "Number of polar sections")
	fs.IntVar(&a.numAzimuthal, "numAzimuthal", 8, "Number of azimuthal sections")
	fs.Float64Var(&a.tMax, "tMax", 100, "Maximum ray parameter")

	fs.Float64Var(&a.ox, "ox", 0, "Ray origin X")
	fs.Float64Var(&a.oy, "oy", 0, "Ray origin Y")
	fs.Float64Var(&a.oz, "oz", -10, "Ray origin Z")
	fs.Float64Var(&a.dx, "dx", 0, "Ray direction X")
	fs.Float64Var(&a.dy, "dy", 0, "Ray direction Y")
	fs.Float64Var(&a.dz, "dz", 1, "Ray direction Z")

	fs.BoolVar(&a.help, "help", false, "Show help information")

	if err := fs.Parse(argv); err != nil {
		return args{}, err
	}
	return a, nil
}

// buildGrid constructs the grid an args configuration describes.
func (a args) buildGrid() (*grid.SphericalVoxelGrid, error) {
	return grid.NewFullSphere(vector.New(0, 0, 0), a.radiusMax, a.numRadial, a.numPolar, a.numAzimuthal)
}

// buildRay constructs the ray an args configuration describes.
func (a args) buildRay() (vector.Ray, error) {
	return vector.NewRay(vector.New(a.ox, a.oy, a.oz), vector.New(a.dx, a.dy, a.dz))
}

func main() {
	a, err := parseArgs(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	if a.help {
		fmt.Println("svtraverse - spherical volume ray traversal")
		fmt.Println("Usage: svtraverse [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.CommandLine.PrintDefaults()
		return
	}

	logger := tracelog.Stdout()

	if a.serve {
		if err := server.NewServer(a.port, logger).Start(); err != nil {
			logger.Printf("server error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	g, err := a.buildGrid()
	if err != nil {
		logger.Printf("invalid grid: %v\n", err)
		os.Exit(1)
	}

	if a.bench {
		runBenchSummary(logger, g)
		return
	}

	ray, err := a.buildRay()
	if err != nil {
		logger.Printf("invalid ray: %v\n", err)
		os.Exit(1)
	}

	records, err := traversal.Walk(ray, g, a.tMax)
	if err != nil {
		logger.Printf("traversal error: %v\n", err)
		os.Exit(1)
	}

	if len(records) == 0 {
		logger.Printf("ray does not intersect the grid\n")
		return
	}

	for _, r := range records {
		logger.Printf("radial=%d polar=%d azimuthal=%d tEnter=%.6f tExit=%.6f\n",
			r.Voxel.Radial, r.Voxel.Polar, r.Voxel.Azimuthal, r.TEnter, r.TExit)
	}

	if a.plotPath != "" {
		if err := os.MkdirAll(filepath.Dir(a.plotPath), 0755); err != nil {
			logger.Printf("error creating plot directory: %v\n", err)
			os.Exit(1)
		}
		if err := benchstats.SavePhasePlot(records, "svtraverse", a.plotPath); err != nil {
			logger.Printf("error saving phase plot: %v\n", err)
			os.Exit(1)
		}
		logger.Printf("phase plot saved to %s\n", a.plotPath)
	}
}

func runBenchSummary(logger tracelog.Logger, g *grid.SphericalVoxelGrid) {
	rays, err := benchstats.OrthographicRays(g, 64)
	if err != nil {
		logger.Printf("error building orthographic sweep: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()
	batchID, results := benchstats.RunBatch(g, rays, g.RadialMax()*3, 0)
	elapsed := time.Since(start)

	summary := benchstats.Summarize(results)
	logger.Printf("batch %s: %d rays, %d hits, %d diverged, elapsed %v\n",
		batchID, summary.RayCount, summary.HitCount, summary.DivergedCount, elapsed)
	logger.Printf("records per ray: mean=%.2f stddev=%.2f p50=%.2f p95=%.2f\n",
		summary.RecordCounts.Mean, summary.RecordCounts.StdDev, summary.RecordCounts.P50, summary.RecordCounts.P95)
	logger.Printf("record span: mean=%.4f stddev=%.4f p50=%.4f p95=%.4f\n",
		summary.RecordSpans.Mean, summary.RecordSpans.StdDev, summary.RecordSpans.P50, summary.RecordSpans.P95)
}
