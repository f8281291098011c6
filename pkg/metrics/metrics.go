// Package metrics exposes Prometheus counters for service activity.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the counters and its private registry, so tests can run
// multiple instances without duplicate registration panics.
type Metrics struct {
	registry *prometheus.Registry

	Registrations  prometheus.Counter
	FailedLogins   prometheus.Counter
	Uploads        prometheus.Counter
	Downloads      prometheus.Counter
	Deletes        prometheus.Counter
	FoldersCreated prometheus.Counter
}

// New creates a metrics set backed by a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		Registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "uploader_registrations_total",
			Help: "Number of accounts created.",
		}),
		FailedLogins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "uploader_failed_logins_total",
			Help: "Number of rejected login attempts.",
		}),
		Uploads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "uploader_uploads_total",
			Help: "Number of completed file uploads.",
		}),
		Downloads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "uploader_downloads_total",
			Help: "Number of completed file downloads.",
		}),
		Deletes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "uploader_deletes_total",
			Help: "Number of deleted files.",
		}),
		FoldersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "uploader_folders_created_total",
			Help: "Number of folders created.",
		}),
	}

	registry.MustRegister(
		m.Registrations,
		m.FailedLogins,
		m.Uploads,
		m.Downloads,
		m.Deletes,
		m.FoldersCreated,
	)
	return m
}

// Handler returns the HTTP handler serving the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
