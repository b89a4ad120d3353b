package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"airwatch/backend/services/dashboard-service/internal/dashboard"
	"airwatch/backend/services/dashboard-service/internal/reading"
)

// Recorder exposes dashboard activity as Prometheus metrics.
type Recorder struct {
	ticks        prometheus.Counter
	values       *prometheus.GaugeVec
	viewers      prometheus.Gauge
	mirrorErrors prometheus.Counter
}

// NewRecorder registers the dashboard metrics with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		ticks: factory.NewCounter(prometheus.CounterOpts{
			Name: "airwatch_ticks_total",
			Help: "The total number of rendered dashboard ticks",
		}),
		// Labeled by field display name
		values: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "airwatch_reading_value",
			Help: "Last rendered value per sensor field",
		}, []string{"field"}),
		viewers: factory.NewGauge(prometheus.GaugeOpts{
			Name: "airwatch_viewers",
			Help: "Number of connected live dashboard viewers",
		}),
		mirrorErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "airwatch_mirror_errors_total",
			Help: "Snapshots that could not be published to the mirror channel",
		}),
	}
}

// Apply records a rendered snapshot.
func (r *Recorder) Apply(_ context.Context, snap dashboard.Snapshot) error {
	r.ticks.Inc()
	for _, f := range reading.Fields() {
		r.values.WithLabelValues(f.String()).Set(snap.Set.Get(f))
	}
	return nil
}

// SetViewers updates the connected viewer gauge.
func (r *Recorder) SetViewers(n int) {
	r.viewers.Set(float64(n))
}

// MirrorFailed counts a failed mirror publish.
func (r *Recorder) MirrorFailed(error) {
	r.mirrorErrors.Inc()
}
