package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "leasehub"

// Metrics groups the engine's collectors. Each instance owns its registry so
// tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	LeaseActions   *prometheus.CounterVec
	Transfers      *prometheus.CounterVec
	RenewalAlerts  *prometheus.GaugeVec
	RenewalSummary *prometheus.GaugeVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		LeaseActions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lease_actions_total",
			Help:      "Committed lease actions by type.",
		}, []string{"type"}),
		Transfers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lease_transfers_total",
			Help:      "Transfer attempts by result.",
		}, []string{"result"}),
		RenewalAlerts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "renewal_alerts",
			Help:      "Active leases per renewal stage as of the last feed read.",
		}, []string{"stage"}),
		RenewalSummary: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "renewal_summary",
			Help:      "Renewal feed summary counts as of the last feed read.",
		}, []string{"bucket"}),
	}
	m.registry.MustRegister(
		m.LeaseActions,
		m.Transfers,
		m.RenewalAlerts,
		m.RenewalSummary,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) ActionApplied(actionType string) {
	m.LeaseActions.WithLabelValues(actionType).Inc()
}

// TransferResult records one transfer outcome: "ok" or the failure kind.
func (m *Metrics) TransferResult(result string) {
	m.Transfers.WithLabelValues(result).Inc()
}

func (m *Metrics) SetRenewalStage(stage string, n int) {
	m.RenewalAlerts.WithLabelValues(stage).Set(float64(n))
}

func (m *Metrics) SetRenewalSummary(critical, actionNeeded, total int) {
	m.RenewalSummary.WithLabelValues("critical").Set(float64(critical))
	m.RenewalSummary.WithLabelValues("action_needed").Set(float64(actionNeeded))
	m.RenewalSummary.WithLabelValues("total").Set(float64(total))
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
