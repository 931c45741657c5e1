package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics counts progression events. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry      *prometheus.Registry
	xpGranted     prometheus.Counter
	actionEvents  *prometheus.CounterVec
	challenges    *prometheus.CounterVec
	daysClosed    *prometheus.CounterVec
	streak        prometheus.Gauge
	remindersSent *prometheus.CounterVec
	storageErrors *prometheus.CounterVec
}

// New creates the collectors on a private registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		xpGranted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tvorets",
			Name:      "xp_granted_total",
			Help:      "Experience points granted through action events.",
		}),
		actionEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tvorets",
			Name:      "action_events_total",
			Help:      "Action events by outcome (applied, duplicate, action_only, ignored).",
		}, []string{"outcome"}),
		challenges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tvorets",
			Name:      "challenge_transitions_total",
			Help:      "Daily challenge transitions by status.",
		}, []string{"status"}),
		daysClosed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tvorets",
			Name:      "days_closed_total",
			Help:      "Closed days by kind (evening, bad_day).",
		}, []string{"closed_as"}),
		streak: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tvorets",
			Name:      "streak_days",
			Help:      "Current streak after the last registered success.",
		}),
		remindersSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tvorets",
			Name:      "reminders_sent_total",
			Help:      "Daily reminders by result.",
		}, []string{"result"}),
		storageErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tvorets",
			Name:      "storage_errors_total",
			Help:      "Storage failures that were degraded to defaults.",
		}, []string{"component"}),
	}

	m.registry.MustRegister(
		m.xpGranted,
		m.actionEvents,
		m.challenges,
		m.daysClosed,
		m.streak,
		m.remindersSent,
		m.storageErrors,
	)
	return m
}

// Handler exposes the registry in the prometheus text format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry is exposed for tests
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) XPGranted(delta int) {
	if m == nil || delta <= 0 {
		return
	}
	m.xpGranted.Add(float64(delta))
}

func (m *Metrics) ActionEvent(outcome string) {
	if m == nil {
		return
	}
	m.actionEvents.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ChallengeTransition(status string) {
	if m == nil {
		return
	}
	m.challenges.WithLabelValues(status).Inc()
}

func (m *Metrics) DayClosed(closedAs string) {
	if m == nil {
		return
	}
	m.daysClosed.WithLabelValues(closedAs).Inc()
}

func (m *Metrics) Streak(days int) {
	if m == nil {
		return
	}
	m.streak.Set(float64(days))
}

func (m *Metrics) ReminderSent(ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.remindersSent.WithLabelValues(result).Inc()
}

func (m *Metrics) StorageError(component string) {
	if m == nil {
		return
	}
	m.storageErrors.WithLabelValues(component).Inc()
}
