// Package metrics exports planning results in the Prometheus text format so
// a node_exporter textfile collector can pick them up after each run.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"

	"github.com/dbsmedya/masterkey/internal/config"
	"github.com/dbsmedya/masterkey/internal/planner"
)

const namespace = "masterkey"

// Recorder collects the results of one invocation in its own registry.
type Recorder struct {
	registry    *prometheus.Registry
	keys        prometheus.Gauge
	children    prometheus.Gauge
	secondaries prometheus.Gauge
	pool        prometheus.Gauge
	clamped     prometheus.Gauge
	lastRun     prometheus.Gauge
	assigned    *prometheus.GaugeVec
	unassigned  *prometheus.GaugeVec
	duration    *prometheus.GaugeVec
}

// NewRecorder creates a Recorder with every metric registered.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		keys: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "key_space_keys",
			Help:      "Number of enumerated keys, master included",
		}),
		children: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "child_keys",
			Help:      "Number of enumerated keys other than the master",
		}),
		secondaries: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "secondary_masters",
			Help:      "Number of selected secondary master keys",
		}),
		pool: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "remaining_pool_keys",
			Help:      "Child keys left after removing secondary masters",
		}),
		clamped: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "secondary_masters_clamped",
			Help:      "1 when more secondary masters were requested than children exist",
		}),
		lastRun: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last report was completed",
		}),
		assigned: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "assigned_keys",
			Help:      "Child keys placed under a master or secondary master",
		}, []string{"level"}),
		unassigned: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "unassigned_keys",
			Help:      "Child keys no master or secondary master can operate",
		}, []string{"level"}),
		duration: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "report_duration_seconds",
			Help:      "Time spent building and writing a report",
		}, []string{"report"}),
	}
}

// Observe records one planning result.
func (r *Recorder) Observe(result *planner.Result) {
	label := reportLabel(result.Level)

	r.keys.Set(float64(result.KeySpaceSize))
	r.children.Set(float64(result.TotalChildren))
	r.duration.WithLabelValues(label).Set(result.Duration.Seconds())
	if !result.CompletedAt.IsZero() {
		r.lastRun.Set(float64(result.CompletedAt.Unix()))
	}

	if result.Level == 0 {
		return
	}
	r.assigned.WithLabelValues(label).Set(float64(result.Assigned))
	r.unassigned.WithLabelValues(label).Set(float64(result.Unassigned))

	if result.Level == config.LevelTwo {
		r.secondaries.Set(float64(result.SecondaryMasters))
		r.pool.Set(float64(result.RemainingPool))
		if result.Clamped {
			r.clamped.Set(1)
		} else {
			r.clamped.Set(0)
		}
	}
}

// Render writes every collected metric in the Prometheus text format.
func (r *Recorder) Render(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

func reportLabel(level int) string {
	switch level {
	case config.LevelOne:
		return "one_level"
	case config.LevelTwo:
		return "two_level"
	default:
		return "key_space"
	}
}
