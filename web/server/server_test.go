package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sphericalwalk/svtraverse/pkg/tracelog"
)

func newTestServer() *Server {
	return NewServer(0, tracelog.Noop())
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()

	s.handleHealth(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestHandleWalk_Defaults(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/walk", nil)
	rec := httptest.NewRecorder()

	s.handleWalk(rec, req)

	require.Equalf(t, http.StatusOK, rec.Code, "body=%s", rec.Body.String())
	var body struct {
		TraceID     string       `json:"traceId"`
		RecordCount int          `json:"recordCount"`
		Records     []recordJSON `json:"records"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.TraceID)
	assert.NotZero(t, body.RecordCount, "expected the default ray (straight through the grid) to hit")
	assert.Len(t, body.Records, body.RecordCount)
}

func TestHandleWalk_InvalidParam(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/walk?numRadial=not-a-number", nil)
	rec := httptest.NewRecorder()

	s.handleWalk(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlePolar_RendersHTML(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/polar", nil)
	rec := httptest.NewRecorder()

	s.handlePolar(rec, req)

	require.Equalf(t, http.StatusOK, rec.Code, "body=%s", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Trace-Id"))
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "<html") || strings.Contains(body, "<!DOCTYPE"),
		"expected HTML output from the polar chart handler")
}

func TestHandlePolar_MissReportsNotFound(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/polar?ox=1000&oy=1000&oz=1000&dx=0&dy=0&dz=1", nil)
	rec := httptest.NewRecorder()

	s.handlePolar(rec, req)

	assert.Equalf(t, http.StatusNotFound, rec.Code, "body=%s", rec.Body.String())
}
