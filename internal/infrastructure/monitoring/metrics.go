package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type DBMetrics struct {
	QueryDuration *prometheus.HistogramVec
}

type BusinessMetrics struct {
	PaymentsTotal      *prometheus.CounterVec
	SweepsTotal        *prometheus.CounterVec
	SweepProcessed     prometheus.Counter
	LoansApprovedTotal prometheus.Counter
}

var (
	DB = DBMetrics{
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lending_engine_db_query_duration_seconds",
				Help:    "Histogram of database query latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"query_name", "status"},
		),
	}

	Business = BusinessMetrics{
		PaymentsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lending_engine_payments_total",
				Help: "Total number of repayment applications by outcome.",
			},
			[]string{"status"},
		),
		SweepsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lending_engine_billing_sweeps_total",
				Help: "Total number of billing sweep runs by outcome.",
			},
			[]string{"status", "mode"},
		),
		SweepProcessed: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "lending_engine_billing_repayments_processed_total",
				Help: "Total number of repayments billed by sweep runs.",
			},
		),
		LoansApprovedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "lending_engine_loans_approved_total",
				Help: "Total number of loans approved.",
			},
		),
	}
)

func RecordDBQuery(queryName, status string, duration time.Duration) {
	DB.QueryDuration.WithLabelValues(queryName, status).Observe(duration.Seconds())
}

func RecordPayment(status string) {
	Business.PaymentsTotal.WithLabelValues(status).Inc()
}

func RecordSweep(status, mode string, processed int) {
	Business.SweepsTotal.WithLabelValues(status, mode).Inc()
	if processed > 0 {
		Business.SweepProcessed.Add(float64(processed))
	}
}

func RecordLoanApproved() {
	Business.LoansApprovedTotal.Inc()
}
