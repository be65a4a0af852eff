package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	ClientsCreated   prometheus.Counter
	ClientsUpdated   prometheus.Counter
	ClientsDeleted   prometheus.Counter
	SearchesRecorded prometheus.Counter
	RequestDuration  *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		ClientsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankpanel_clients_created_total",
			Help: "Total number of clients created",
		}),
		ClientsUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankpanel_clients_updated_total",
			Help: "Total number of client updates applied",
		}),
		ClientsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankpanel_clients_deleted_total",
			Help: "Total number of clients deleted",
		}),
		SearchesRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankpanel_searches_recorded_total",
			Help: "Total number of filtered searches recorded in history",
		}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bankpanel_http_request_duration_seconds",
			Help:    "HTTP request latency by route and method",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func (m *Metrics) IncClientsCreated()   { m.ClientsCreated.Inc() }
func (m *Metrics) IncClientsUpdated()   { m.ClientsUpdated.Inc() }
func (m *Metrics) IncClientsDeleted()   { m.ClientsDeleted.Inc() }
func (m *Metrics) IncSearchesRecorded() { m.SearchesRecorded.Inc() }

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
