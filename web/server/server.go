// Package server exposes the traversal engine over HTTP: a health
// check, a JSON traversal endpoint, and an interactive polar chart of
// a traversal's voxel path.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/sphericalwalk/svtraverse/pkg/grid"
	"github.com/sphericalwalk/svtraverse/pkg/tracelog"
	"github.com/sphericalwalk/svtraverse/pkg/traversal"
	"github.com/sphericalwalk/svtraverse/pkg/vector"
)

// Server handles web requests for the traversal engine.
type Server struct {
	port   int
	logger tracelog.Logger
}

// NewServer creates a new web server listening on port, logging
// through logger.
func NewServer(port int, logger tracelog.Logger) *Server {
	return &Server{port: port, logger: logger}
}

// Start registers handlers and blocks serving HTTP.
func (s *Server) Start() error {
	http.HandleFunc("/api/health", s.handleHealth)
	http.HandleFunc("/api/walk", s.handleWalk)
	http.HandleFunc("/api/polar", s.handlePolar)

	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Printf("Starting web server on http://localhost%s\n", addr)
	return http.ListenAndServe(addr, nil)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// walkRequest is the query-parameter shape handleWalk and handlePolar
// both parse.
type walkRequest struct {
	originX, originY, originZ    float64
	directionX, directionY, dirZ float64
	radiusMax                    float64
	numRadial, numPolar, numAzim int
	tMax                         float64
}

func parseWalkRequest(values url.Values) (walkRequest, error) {
	req := walkRequest{}
	var err error

	if req.originX, err = parseFloatParam(values, "ox", 0, -1e12, 1e12); err != nil {
		return req, err
	}
	if req.originY, err = parseFloatParam(values, "oy", 0, -1e12, 1e12); err != nil {
		return req, err
	}
	if req.originZ, err = parseFloatParam(values, "oz", -10, -1e12, 1e12); err != nil {
		return req, err
	}
	if req.directionX, err = parseFloatParam(values, "dx", 0, -1, 1); err != nil {
		return req, err
	}
	if req.directionY, err = parseFloatParam(values, "dy", 0, -1, 1); err != nil {
		return req, err
	}
	if req.dirZ, err = parseFloatParam(values, "dz", 1, -1, 1); err != nil {
		return req, err
	}
	if req.radiusMax, err = parseFloatParam(values, "radiusMax", 5, 1e-6, 1e9); err != nil {
		return req, err
	}
	if req.numRadial, err = parseIntParam(values, "numRadial", 4, 1, 1024); err != nil {
		return req, err
	}
	if req.numPolar, err = parseIntParam(values, "numPolar", 8, 1, 1024); err != nil {
		return req, err
	}
	if req.numAzim, err = parseIntParam(values, "numAzimuthal", 8, 1, 1024); err != nil {
		return req, err
	}
	if req.tMax, err = parseFloatParam(values, "tMax", 100, 0, 1e12); err != nil {
		return req, err
	}
	return req, nil
}

func (req walkRequest) build() (*grid.SphericalVoxelGrid, vector.Ray, error) {
	g, err := grid.NewFullSphere(vector.New(0, 0, 0), req.radiusMax, req.numRadial, req.numPolar, req.numAzim)
	if err != nil {
		return nil, vector.Ray{}, err
	}
	ray, err := vector.NewRay(
		vector.New(req.originX, req.originY, req.originZ),
		vector.New(req.directionX, req.directionY, req.dirZ),
	)
	if err != nil {
		return nil, vector.Ray{}, err
	}
	return g, ray, nil
}

// recordJSON is the wire shape for one traversal.Record.
type recordJSON struct {
	Radial    int     `json:"radial"`
	Polar     int     `json:"polar"`
	Azimuthal int     `json:"azimuthal"`
	TEnter    float64 `json:"tEnter"`
	TExit     float64 `json:"tExit"`
}

func (s *Server) handleWalk(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
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

	out := make([]recordJSON, len(records))
	for i, rec := range records {
		out[i] = recordJSON{
			Radial:    rec.Voxel.Radial,
			Polar:     rec.Voxel.Polar,
			Azimuthal: rec.Voxel.Azimuthal,
			TEnter:    rec.TEnter,
			TExit:     rec.TExit,
		}
	}

	s.logger.Printf("[%s] walk ok: %d records\n", traceID, len(out))
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"traceId":     traceID,
		"recordCount": len(out),
		"records":     out,
	})
}

func (s *Server) writeJSONError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// parseIntParam parses an integer parameter from URL query with validation.
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation.
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %f and %f, got: %f", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}
