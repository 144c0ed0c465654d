package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Pipeline metrics
	PipelineRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fplwatch_pipeline_runs_total",
			Help: "Total number of pipeline runs",
		},
		[]string{"pipeline", "status"}, // status: success|degraded|error
	)

	PipelineDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fplwatch_pipeline_duration_seconds",
			Help:    "Pipeline run duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"pipeline"},
	)

	// Upstream metrics
	UpstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fplwatch_upstream_requests_total",
			Help: "Total number of upstream HTTP requests",
		},
		[]string{"source", "status"}, // source: fpl|baseline, status: success|error
	)

	UpstreamLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fplwatch_upstream_latency_seconds",
			Help:    "Upstream HTTP request latency in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"source"},
	)

	// Delivery metrics
	TelegramSends = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fplwatch_telegram_sends_total",
			Help: "Total number of outbound Telegram messages",
		},
		[]string{"status"}, // status: success|error
	)

	// Scheduled job metrics
	JobExecutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fplwatch_job_executions_total",
			Help: "Total number of scheduled job executions",
		},
		[]string{"job", "status"}, // status: success|error
	)

	JobLastRun = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fplwatch_job_last_run_timestamp",
			Help: "Unix timestamp of last job execution",
		},
		[]string{"job"},
	)
)

// Init registers all metrics with Prometheus
func Init() {
	prometheus.MustRegister(PipelineRuns)
	prometheus.MustRegister(PipelineDuration)
	prometheus.MustRegister(UpstreamRequests)
	prometheus.MustRegister(UpstreamLatency)
	prometheus.MustRegister(TelegramSends)
	prometheus.MustRegister(JobExecutions)
	prometheus.MustRegister(JobLastRun)
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordUpstreamRequest records one upstream HTTP call
func RecordUpstreamRequest(source string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	UpstreamRequests.WithLabelValues(source, status).Inc()
	UpstreamLatency.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordTelegramSend records one outbound message attempt
func RecordTelegramSend(err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	TelegramSends.WithLabelValues(status).Inc()
}

// RecordJobExecution records a scheduled job execution
func RecordJobExecution(job string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	JobExecutions.WithLabelValues(job, status).Inc()
	JobLastRun.WithLabelValues(job).SetToCurrentTime()
	PipelineDuration.WithLabelValues(job).Observe(duration.Seconds())
}
