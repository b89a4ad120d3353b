package handlers

import (
	"bytes"
	"net/http"

	"go.uber.org/zap"

	"airwatch/backend/services/dashboard-service/internal/dashboard"
)

// SnapshotSource returns the snapshot currently on display.
type SnapshotSource interface {
	Snapshot() dashboard.Snapshot
}

// NewPageHandler handles GET / with the server-rendered dashboard.
func NewPageHandler(source SnapshotSource, page *dashboard.Page, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := page.Render(&buf, source.Snapshot()); err != nil {
			logger.Error("failed to render dashboard", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to render dashboard")
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		_, _ = buf.WriteTo(w)
	}
}

// NewReadingsHandler handles GET /api/readings.
func NewReadingsHandler(source SnapshotSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, source.Snapshot())
	}
}
