package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "chat_room"

// Metrics groups the Prometheus collectors of the chat room.
// Each instance owns its registry so several servers can live in one process (tests).
type Metrics struct {
	registry *prometheus.Registry

	ParticipantsRegistered prometheus.Counter
	ParticipantsEvicted    prometheus.Counter
	MessagesPosted         *prometheus.CounterVec
	MessagesCensored       prometheus.Counter
	ProcessRSSBytes        prometheus.Gauge
	ProcessCPUPercent      prometheus.Gauge
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ParticipantsRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "participants_registered_total",
			Help:      "Number of successful participant registrations.",
		}),
		ParticipantsEvicted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "participants_evicted_total",
			Help:      "Number of participants removed by the presence reaper.",
		}),
		MessagesPosted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_posted_total",
			Help:      "Number of messages appended to the log, by type.",
		}, []string{"type"}),
		MessagesCensored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_censored_total",
			Help:      "Number of posted messages altered by the moderator.",
		}),
		ProcessRSSBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "process_rss_bytes",
			Help:      "Resident memory of the server process.",
		}),
		ProcessCPUPercent: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "process_cpu_percent",
			Help:      "CPU usage of the server process.",
		}),
	}
	m.registry.MustRegister(
		m.ParticipantsRegistered,
		m.ParticipantsEvicted,
		m.MessagesPosted,
		m.MessagesCensored,
		m.ProcessRSSBytes,
		m.ProcessCPUPercent,
	)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
