package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	ingestFilesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_files_total",
			Help: "Uploaded files by file set and outcome",
		},
		[]string{"set", "result"},
	)

	ingestRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_rows_total",
			Help: "Rows ingested by file set",
		},
		[]string{"set"},
	)

	reconciliationRunsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reconciliation_runs_total",
			Help: "Completed reconciliation runs",
		},
	)

	reconciliationLedgerRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "reconciliation_ledger_rows",
			Help: "Ledger rows per state in the latest reconciliation run",
		},
		[]string{"state"},
	)

	exportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exports_total",
			Help: "Export requests by format and outcome",
		},
		[]string{"format", "result"},
	)

	activeSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_sessions",
			Help: "Sessions currently held in memory",
		},
	)
)

// PrometheusMiddleware records request count and latency per route.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		httpRequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the default registry.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

func RecordIngestFile(set, result string) {
	ingestFilesTotal.WithLabelValues(set, result).Inc()
}

func RecordIngestRows(set string, rows int) {
	ingestRowsTotal.WithLabelValues(set).Add(float64(rows))
}

func RecordReconciliation(stateCounts map[string]int) {
	reconciliationRunsTotal.Inc()
	for state, n := range stateCounts {
		reconciliationLedgerRows.WithLabelValues(state).Set(float64(n))
	}
}

func RecordExport(format, result string) {
	exportsTotal.WithLabelValues(format, result).Inc()
}

func UpdateActiveSessions(count int) {
	activeSessions.Set(float64(count))
}
