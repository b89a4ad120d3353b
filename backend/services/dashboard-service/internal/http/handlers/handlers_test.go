package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"airwatch/backend/services/dashboard-service/internal/dashboard"
	"airwatch/backend/services/dashboard-service/internal/reading"
)

type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }

func TestReadingsBeforeFirstTick(t *testing.T) {
	r := dashboard.NewRenderer(reading.NewGenerator(nil), nil)
	rec := httptest.NewRecorder()

	NewReadingsHandler(r)(rec, httptest.NewRequest(http.MethodGet, "/api/readings", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var snap dashboard.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	require.Equal(t, uint64(0), snap.Tick)
	require.Len(t, snap.Values, reading.FieldCount)
	require.Equal(t, "", snap.Values["co2"])
}

func TestReadingsAfterTick(t *testing.T) {
	r := dashboard.NewRenderer(reading.NewGenerator(fixedSource(0.5)), nil)
	r.Tick(context.Background())
	rec := httptest.NewRecorder()

	NewReadingsHandler(r)(rec, httptest.NewRequest(http.MethodGet, "/api/readings", nil))

	var snap dashboard.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	require.Equal(t, uint64(1), snap.Tick)
	require.Equal(t, "25.00", snap.Values["temperature"])
	require.Equal(t, "450.00", snap.Values["co2"])
}

func TestPageHandler(t *testing.T) {
	r := dashboard.NewRenderer(reading.NewGenerator(fixedSource(1)), nil)
	r.Tick(context.Background())
	rec := httptest.NewRecorder()

	NewPageHandler(r, dashboard.NewPage(5*time.Second), zap.NewNop())(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Body.String(), `<h3 id="humidity">60.00</h3>`)
}

func TestHealthHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHealthHandler()(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
