// Package metrics exposes Prometheus counters for the account lifecycle.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what the services report outcomes to.
type Recorder interface {
	RecordVerification(result string)
	RecordReconciliation(status string)
	RecordProviderRegistration(result string)
	RecordCalendarLink(result string)
	RecordErasure(result string)
}

// Collector is the Prometheus-backed Recorder.
type Collector struct {
	verifications   *prometheus.CounterVec
	reconciliations *prometheus.CounterVec
	registrations   *prometheus.CounterVec
	calendarLinks   *prometheus.CounterVec
	erasures        *prometheus.CounterVec
	gatherer        prometheus.Gatherer
}

// NewCollector creates a Collector and registers its metrics on reg.
func NewCollector(reg *prometheus.Registry) *Collector {
	c := &Collector{
		verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "providerhub_identity_verifications_total",
			Help: "Identity token verifications by result.",
		}, []string{"result"}),
		reconciliations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "providerhub_account_reconciliations_total",
			Help: "Account reconciliations by outcome (created, linked, existing, error).",
		}, []string{"status"}),
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "providerhub_provider_registrations_total",
			Help: "Provider registrations by result.",
		}, []string{"result"}),
		calendarLinks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "providerhub_calendar_links_total",
			Help: "Calendar link attempts by result.",
		}, []string{"result"}),
		erasures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "providerhub_account_erasures_total",
			Help: "Account erasures by result.",
		}, []string{"result"}),
		gatherer: reg,
	}

	reg.MustRegister(
		c.verifications,
		c.reconciliations,
		c.registrations,
		c.calendarLinks,
		c.erasures,
	)
	return c
}

func (c *Collector) RecordVerification(result string) {
	c.verifications.WithLabelValues(result).Inc()
}

func (c *Collector) RecordReconciliation(status string) {
	c.reconciliations.WithLabelValues(status).Inc()
}

func (c *Collector) RecordProviderRegistration(result string) {
	c.registrations.WithLabelValues(result).Inc()
}

func (c *Collector) RecordCalendarLink(result string) {
	c.calendarLinks.WithLabelValues(result).Inc()
}

func (c *Collector) RecordErasure(result string) {
	c.erasures.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

// Nop discards every record.
type Nop struct{}

func (Nop) RecordVerification(string)         {}
func (Nop) RecordReconciliation(string)       {}
func (Nop) RecordProviderRegistration(string) {}
func (Nop) RecordCalendarLink(string)         {}
func (Nop) RecordErasure(string)              {}
