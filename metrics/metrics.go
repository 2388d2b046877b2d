// Package metrics holds the Prometheus collectors of the assistant. They register with the
// default registry on import and are exposed by the run command when --metrics-addr is set.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ToolCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hark_tool_calls_total",
			Help: "Total number of tool dispatches",
		},
		[]string{"tool", "status"},
	)

	Utterances = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hark_utterances_total",
			Help: "Total number of captured utterances by confidence tier",
		},
		[]string{"tier"},
	)

	Outcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hark_plan_outcomes_total",
			Help: "Total number of plan executions by outcome",
		},
		[]string{"outcome"},
	)

	Repairs = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hark_plan_repairs_total",
			Help: "Total number of plan repair requests",
		},
	)

	LLMLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hark_llm_latency_seconds",
			Help:    "LLM call latency in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"purpose"},
	)

	Sessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hark_active_session",
			Help: "1 while a conversation session is active after a wake word",
		},
	)
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
