package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	backendRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "snare_backend_requests_total",
		Help: "Total number of requests sent to the honeypot backend",
	}, []string{"method", "resource", "outcome"})
	viewRefreshTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "snare_view_refresh_total",
		Help: "Total number of live view refreshes",
	}, []string{"view", "outcome"})
	dashboardBuildsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "snare_dashboard_builds_total",
		Help: "Total number of dashboard reports built",
	}, []string{"outcome"})
	bannersTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "snare_banners_total",
		Help: "Total number of error banners raised",
	})
)

// Register registers Prometheus collectors. Call once at startup.
func Register(registry *prometheus.Registry) {
	registry.MustRegister(backendRequestsTotal, viewRefreshTotal, dashboardBuildsTotal, bannersTotal)
}

// Handler exposes the registry in the Prometheus text format.
func Handler(registry *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

func outcome(ok bool) string {
	if ok {
		return "success"
	}
	return "error"
}

// ObserveBackendRequest counts one backend round trip.
func ObserveBackendRequest(method, resource string, ok bool) {
	backendRequestsTotal.WithLabelValues(method, resource, outcome(ok)).Inc()
}

// ObserveViewRefresh counts one live view refresh.
func ObserveViewRefresh(view string, ok bool) {
	viewRefreshTotal.WithLabelValues(view, outcome(ok)).Inc()
}

// ObserveDashboardBuild counts one dashboard report; partial loads count as errors.
func ObserveDashboardBuild(ok bool) {
	dashboardBuildsTotal.WithLabelValues(outcome(ok)).Inc()
}

// IncBanner increments the raised banners counter.
func IncBanner() { bannersTotal.Inc() }
