package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studytime_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "studytime_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	ActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "studytime_http_active_requests",
			Help: "Current number of active HTTP requests",
		},
	)

	// Database Metrics
	DBOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "studytime_db_operation_duration_seconds",
			Help:    "Duration of database operations",
			Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25},
		},
		[]string{"operation", "table"},
	)

	// Study Metrics
	StudyMinutesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studytime_study_minutes_total",
			Help: "Study minutes logged",
		},
		[]string{"source"}, // manual, quick, timer
	)

	DeadlineOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studytime_deadline_operations_total",
			Help: "Total number of deadline operations",
		},
		[]string{"operation"}, // create, delete
	)

	// Timer Metrics
	TimerPhasesCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studytime_timer_phases_completed_total",
			Help: "Focus timer phases run to zero",
		},
		[]string{"phase"},
	)

	TimerRunning = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "studytime_timer_running",
			Help: "1 while the focus timer is counting down",
		},
	)
)

// TrackDBOperation times a database operation.
func TrackDBOperation(operation, table string) *prometheus.Timer {
	return prometheus.NewTimer(DBOperationDuration.WithLabelValues(operation, table))
}

// TrackStudyMinutes records logged minutes by source.
func TrackStudyMinutes(source string, minutes int) {
	StudyMinutesTotal.WithLabelValues(source).Add(float64(minutes))
}

// TrackDeadlineOperation increments the deadline operation counter.
func TrackDeadlineOperation(operation string) {
	DeadlineOperationsTotal.WithLabelValues(operation).Inc()
}

// TrackPhaseCompleted counts a finished timer phase.
func TrackPhaseCompleted(phase string) {
	TimerPhasesCompleted.WithLabelValues(phase).Inc()
}

// SetTimerRunning mirrors the timer's running flag.
func SetTimerRunning(running bool) {
	if running {
		TimerRunning.Set(1)
		return
	}
	TimerRunning.Set(0)
}
