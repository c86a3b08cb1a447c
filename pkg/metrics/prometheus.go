package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status_code", "user_role"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status_code"},
	)

	// Task lifecycle metrics
	taskBatchesAssignedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "task_batches_assigned_total",
			Help: "Total number of task batches assigned",
		},
	)

	tasksAssignedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tasks_assigned_total",
			Help: "Total number of tasks created by the assignment engine",
		},
		[]string{"forced"},
	)

	tasksSettledTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tasks_settled_total",
			Help: "Total number of task lifecycle settlements",
		},
		[]string{"outcome"},
	)

	taskProfitAmount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "task_profit_amount",
			Help:    "Profit amount settled per task",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	// Settlement metrics
	depositsResolvedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deposits_resolved_total",
			Help: "Total number of deposits resolved by admins",
		},
		[]string{"status"},
	)

	withdrawalsProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "withdrawals_processed_total",
			Help: "Total number of withdrawals processed by admins",
		},
		[]string{"status"},
	)

	// Authentication metrics
	authAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"method", "status"},
	)

	systemErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "system_errors_total",
			Help: "Total number of system errors",
		},
		[]string{"error_type", "component"},
	)
)

// HTTP metrics
func RecordHTTPRequest(method, endpoint, statusCode, userRole string, duration float64) {
	httpRequestsTotal.WithLabelValues(method, endpoint, statusCode, userRole).Inc()
	httpRequestDuration.WithLabelValues(method, endpoint, statusCode).Observe(duration)
}

// Task metrics
func RecordBatchAssigned(taskCount, forcedCount int) {
	taskBatchesAssignedTotal.Inc()
	tasksAssignedTotal.WithLabelValues("false").Add(float64(taskCount - forcedCount))
	if forcedCount > 0 {
		tasksAssignedTotal.WithLabelValues("true").Add(float64(forcedCount))
	}
}

func RecordTaskSettled(outcome string, profitAmount float64) {
	tasksSettledTotal.WithLabelValues(outcome).Inc()
	taskProfitAmount.Observe(profitAmount)
}

// Settlement metrics
func RecordDepositResolved(status string) {
	depositsResolvedTotal.WithLabelValues(status).Inc()
}

func RecordWithdrawalProcessed(status string) {
	withdrawalsProcessedTotal.WithLabelValues(status).Inc()
}

// Authentication metrics
func RecordAuthAttempt(method, status string) {
	authAttemptsTotal.WithLabelValues(method, status).Inc()
}

func RecordSystemError(errorType, component string) {
	systemErrorsTotal.WithLabelValues(errorType, component).Inc()
}
