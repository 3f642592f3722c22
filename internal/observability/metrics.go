// Package observability exposes Prometheus metrics for the assistant.
package observability

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	toolCalls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lilazul",
		Subsystem: "tools",
		Name:      "calls_total",
		Help:      "Tool invocations by tool name and outcome.",
	}, []string{"tool", "outcome"})

	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lilazul",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "REST requests by path, method and status code.",
	}, []string{"path", "method", "status"})
)

func init() {
	prometheus.MustRegister(toolCalls, httpRequests)
}

// RecordToolCall counts one tool invocation.
func RecordToolCall(tool string, failed bool) {
	outcome := "ok"
	if failed {
		outcome = "error"
	}
	toolCalls.WithLabelValues(tool, outcome).Inc()
}

// RecordHTTPRequest counts one REST request.
func RecordHTTPRequest(path, method string, status int) {
	httpRequests.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
}

// Handler serves the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
