package usecase

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors of the use cases. A nil *Metrics
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	PaneRequests     *prometheus.CounterVec
	OverrideApplied  *prometheus.CounterVec
	OverrideIgnored  *prometheus.CounterVec
	OverrideFailures *prometheus.CounterVec
	PanelOperations  *prometheus.CounterVec
}

// NewMetrics creates the collectors on their own registry
func NewMetrics(namespace string) *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		PaneRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pane_requests_total",
			Help:      "Total number of options pane evaluations",
		}, []string{"plugin_id", "target"}),
		OverrideApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "override_applied_total",
			Help:      "Total number of override assignments applied to fields",
		}, []string{"plugin_id"}),
		OverrideIgnored: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "override_ignored_total",
			Help:      "Total number of override assignments with no applicable option",
		}, []string{"plugin_id"}),
		OverrideFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "override_failures_total",
			Help:      "Total number of override assignments whose processor or matcher failed",
		}, []string{"plugin_id"}),
		PanelOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "panel_operations_total",
			Help:      "Total number of saved panel operations",
		}, []string{"operation", "status"}),
	}

	reg.MustRegister(
		m.PaneRequests,
		m.OverrideApplied,
		m.OverrideIgnored,
		m.OverrideFailures,
		m.PanelOperations,
	)
	return m
}

// Registry returns the registry to expose, or nil
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) recordPane(pluginID, target string) {
	if m != nil {
		m.PaneRequests.WithLabelValues(pluginID, target).Inc()
	}
}

func (m *Metrics) recordOverrides(pluginID string, applied, ignored, failures int) {
	if m == nil {
		return
	}
	m.OverrideApplied.WithLabelValues(pluginID).Add(float64(applied))
	m.OverrideIgnored.WithLabelValues(pluginID).Add(float64(ignored))
	m.OverrideFailures.WithLabelValues(pluginID).Add(float64(failures))
}

func (m *Metrics) recordPanelOperation(operation string, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.PanelOperations.WithLabelValues(operation, status).Inc()
}
