// Package benchstats aggregates statistics and diagnostics across
// batches of traversals: summary statistics, a radius-vs-parameter
// phase plot, and a parallel batch runner. None of it is imported by
// pkg/traversal; it consumes Walk's output from the outside.
package benchstats

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/sphericalwalk/svtraverse/pkg/traversal"
)

// Summary holds distributional statistics over a batch of traversals:
// how many voxel records each ray produced, and how much parametric
// range each individual record spanned.
type Summary struct {
	RayCount      int
	HitCount      int
	RecordCounts  CountStats
	RecordSpans   SpanStats
	DivergedCount int
}

// CountStats summarizes the distribution of per-ray record counts.
type CountStats struct {
	Mean   float64
	StdDev float64
	Min    int
	Max    int
	P50    float64
	P95    float64
}

// SpanStats summarizes the distribution of per-record (TExit - TEnter)
// parametric spans across an entire batch.
type SpanStats struct {
	Mean   float64
	StdDev float64
	P50    float64
	P95    float64
}

// Summarize computes a Summary over the results of a batch of Walk
// calls, one []Record (and its error) per ray.
func Summarize(results []BatchResult) Summary {
	var s Summary
	s.RayCount = len(results)

	counts := make([]float64, 0, len(results))
	var spans []float64

	for _, r := range results {
		if r.Err != nil {
			s.DivergedCount++
			continue
		}
		if len(r.Records) == 0 {
			counts = append(counts, 0)
			continue
		}
		s.HitCount++
		counts = append(counts, float64(len(r.Records)))
		for _, rec := range r.Records {
			spans = append(spans, rec.TExit-rec.TEnter)
		}
	}

	s.RecordCounts = countStatsOf(counts)
	s.RecordSpans = spanStatsOf(spans)
	return s
}

func countStatsOf(counts []float64) CountStats {
	if len(counts) == 0 {
		return CountStats{}
	}
	sorted := append([]float64(nil), counts...)
	sort.Float64s(sorted)

	cs := CountStats{
		Mean:   stat.Mean(sorted, nil),
		StdDev: stat.StdDev(sorted, nil),
		Min:    int(sorted[0]),
		Max:    int(sorted[len(sorted)-1]),
		P50:    stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P95:    stat.Quantile(0.95, stat.Empirical, sorted, nil),
	}
	return cs
}

func spanStatsOf(spans []float64) SpanStats {
	if len(spans) == 0 {
		return SpanStats{}
	}
	sorted := append([]float64(nil), spans...)
	sort.Float64s(sorted)

	return SpanStats{
		Mean:   stat.Mean(sorted, nil),
		StdDev: stat.StdDev(sorted, nil),
		P50:    stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P95:    stat.Quantile(0.95, stat.Empirical, sorted, nil),
	}
}

// BatchResult pairs one ray's traversal outcome with an identifying
// index, the shape the parallel batch runner and the CLI both produce
// and consume.
type BatchResult struct {
	Index   int
	Records []traversal.Record
	Err     error
}
