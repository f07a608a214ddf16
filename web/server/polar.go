package server

import (
	"bytes"
	"fmt"
	"math"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/google/uuid"

	"github.com/sphericalwalk/svtraverse/pkg/traversal"
)

// handlePolar renders an interactive HTML scatter chart of one
// traversal's voxel path: each record is plotted at the outer radius of
// its radial shell and at the start angle of its azimuthal wedge,
// colored by the record's order along the ray.
func (s *Server) handlePolar(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.NewString()

	req, err := parseWalkRequest(r.URL.Query())
	if err != nil {
		s.logger.Printf("[%s] bad request: %v\n", traceID, err)
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	g, ray, err := req.build()
	if err != nil {
		s.logger.Printf("[%s] bad request: %v\n", traceID, err)
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	records, err := traversal.Walk(ray, g, req.tMax)
	if err != nil {
		s.logger.Printf("[%s] traversal error: %v\n", traceID, err)
		s.writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if len(records) == 0 {
		s.logger.Printf("[%s] ray missed the grid\n", traceID)
		s.writeJSONError(w, http.StatusNotFound, "ray does not intersect the grid")
		return
	}
	s.logger.Printf("[%s] polar render: %d records\n", traceID, len(records))

	data := make([]opts.ScatterData, 0, len(records))
	maxAbs := 0.0
	for i, rec := range records {
		angle := 2 * math.Pi * float64(rec.Voxel.Azimuthal) / float64(g.NumAzimuthal())
		radius := g.ShellRadius(rec.Voxel.Radial)
		x := radius * math.Cos(angle)
		y := radius * math.Sin(angle)
		if math.Abs(x) > maxAbs {
			maxAbs = math.Abs(x)
		}
		if math.Abs(y) > maxAbs {
			maxAbs = math.Abs(y)
		}
		data = append(data, opts.ScatterData{Value: []interface{}{x, y, i}})
	}

	pad := maxAbs * 1.05
	if pad == 0 {
		pad = 1.0
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Traversal path", Theme: "dark", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: "Spherical voxel traversal", Subtitle: fmt.Sprintf("records=%d", len(records))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: -pad, Max: pad, Name: "X", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: -pad, Max: pad, Name: "Y", NameLocation: "middle", NameGap: 30}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(len(records)),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: []string{"#440154", "#482777", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"}},
		}),
	)
	scatter.AddSeries("traversal", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}))

	var buf bytes.Buffer
	if err := scatter.Render(&buf); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render chart: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Trace-Id", traceID)
	w.Write(buf.Bytes())
}
