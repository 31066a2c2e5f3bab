// Package observability provides Prometheus metrics for the evaluation pipeline.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const DefaultNamespace = "dex_bot"

// Metrics holds the pipeline metrics. All Record* methods are safe on a nil
// receiver so components can run without metrics.
type Metrics struct {
	gatherer prometheus.Gatherer

	CyclesTotal        *prometheus.CounterVec
	CycleDuration      prometheus.Histogram
	EvaluationsTotal   *prometheus.CounterVec
	RejectionsTotal    *prometheus.CounterVec
	EventsTotal        *prometheus.CounterVec
	OracleFailures     *prometheus.CounterVec
	OrdersTotal        *prometheus.CounterVec
	NotificationsTotal *prometheus.CounterVec
	BlacklistAdded     prometheus.Counter
	AnomaliesDetected  prometheus.Counter
	LastCycleSuccess   prometheus.Gauge
}

// NewMetrics registers every metric on reg. A nil reg gets a private registry.
func NewMetrics(reg *prometheus.Registry, namespace string) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	factory := promauto.With(reg)

	return &Metrics{
		gatherer: reg,

		CyclesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cycle",
			Name:      "runs_total",
			Help:      "Total number of evaluation cycles by status",
		}, []string{"status"}),
		CycleDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "cycle",
			Name:      "duration_seconds",
			Help:      "Evaluation cycle duration in seconds",
			Buckets:   []float64{.1, .5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		EvaluationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "monitor",
			Name:      "evaluations_total",
			Help:      "Total number of token evaluations by last stage reached",
		}, []string{"stage"}),
		RejectionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "filter",
			Name:      "rejections_total",
			Help:      "Total number of snapshots rejected by reason",
		}, []string{"reason"}),
		EventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "classifier",
			Name:      "events_total",
			Help:      "Total number of classified events by tag",
		}, []string{"event"}),
		OracleFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "oracle",
			Name:      "failures_total",
			Help:      "Total number of oracle call failures",
		}, []string{"oracle"}),
		OrdersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "trade",
			Name:      "orders_total",
			Help:      "Total number of buy orders by status",
		}, []string{"status"}),
		NotificationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "trade",
			Name:      "notifications_total",
			Help:      "Total number of trade notifications by status",
		}, []string{"status"}),
		BlacklistAdded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "blacklist",
			Name:      "added_total",
			Help:      "Total number of tokens added to the blacklist",
		}),
		AnomaliesDetected: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analytics",
			Name:      "anomalies_detected_total",
			Help:      "Total number of anomalous price records detected",
		}),
		LastCycleSuccess: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_successful_cycle_timestamp",
			Help:      "Unix timestamp of last successful cycle",
		}),
	}
}

// Handler serves the metrics of this instance's registry.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (m *Metrics) RecordCycle(started time.Time, err error) {
	if m == nil {
		return
	}
	m.CyclesTotal.WithLabelValues(status(err)).Inc()
	m.CycleDuration.Observe(time.Since(started).Seconds())
	if err == nil {
		m.LastCycleSuccess.SetToCurrentTime()
	}
}

func (m *Metrics) RecordEvaluation(stage string) {
	if m == nil {
		return
	}
	m.EvaluationsTotal.WithLabelValues(stage).Inc()
}

func (m *Metrics) RecordRejection(reason string) {
	if m == nil {
		return
	}
	m.RejectionsTotal.WithLabelValues(reason).Inc()
}

func (m *Metrics) RecordEvent(event string) {
	if m == nil {
		return
	}
	if event == "" {
		event = "none"
	}
	m.EventsTotal.WithLabelValues(event).Inc()
}

func (m *Metrics) RecordOracleFailure(oracle string) {
	if m == nil {
		return
	}
	m.OracleFailures.WithLabelValues(oracle).Inc()
}

func (m *Metrics) RecordOrder(err error) {
	if m == nil {
		return
	}
	m.OrdersTotal.WithLabelValues(status(err)).Inc()
}

func (m *Metrics) RecordNotification(err error) {
	if m == nil {
		return
	}
	m.NotificationsTotal.WithLabelValues(status(err)).Inc()
}

func (m *Metrics) RecordBlacklisted() {
	if m == nil {
		return
	}
	m.BlacklistAdded.Inc()
}

func (m *Metrics) RecordAnomalies(n int) {
	if m == nil {
		return
	}
	m.AnomaliesDetected.Add(float64(n))
}
