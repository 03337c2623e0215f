package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "carpark_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	admitTotal   *prometheus.CounterVec
	admitLatency *prometheus.HistogramVec

	releaseTotal   *prometheus.CounterVec
	releaseLatency *prometheus.HistogramVec

	reportGenerateTotal   *prometheus.CounterVec
	reportGenerateLatency *prometheus.HistogramVec
	reportExportTotal     *prometheus.CounterVec
	reportExportLatency   *prometheus.HistogramVec

	occupiedSlots   prometheus.Gauge
	revenueTotal    prometheus.Counter
	archiveFailures prometheus.Counter
)

// Init registers facility metrics. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		admitTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "admit_total",
				Help: "Total vehicle admissions by result",
			},
			[]string{"result"},
		)
		admitLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "admit_latency_seconds",
				Help:    "Admission latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		releaseTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "release_total",
				Help: "Total vehicle releases by result",
			},
			[]string{"result"},
		)
		releaseLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "release_latency_seconds",
				Help:    "Release latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		reportGenerateTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "report_generate_total",
				Help: "Total daily report generations by result",
			},
			[]string{"result"},
		)
		reportGenerateLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "report_generate_latency_seconds",
				Help:    "Daily report generation latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)
		reportExportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "report_export_total",
				Help: "Total report export operations by format and result",
			},
			[]string{"format", "result"},
		)
		reportExportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "report_export_latency_seconds",
				Help:    "Report export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)

		occupiedSlots = prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: metricPrefix + "occupied_slots",
				Help: "Currently occupied slots",
			},
		)
		revenueTotal = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "revenue_total",
				Help: "Accumulated revenue from released vehicles",
			},
		)
		archiveFailures = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "receipt_archive_failures_total",
				Help: "Receipt archive writes that failed after the release committed",
			},
		)

		prometheus.MustRegister(
			admitTotal,
			admitLatency,
			releaseTotal,
			releaseLatency,
			reportGenerateTotal,
			reportGenerateLatency,
			reportExportTotal,
			reportExportLatency,
			occupiedSlots,
			revenueTotal,
			archiveFailures,
		)
	})
}

// ObserveAdmit records admission duration and result.
func ObserveAdmit(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if admitTotal != nil {
		admitTotal.WithLabelValues(result).Inc()
	}
	if admitLatency != nil {
		admitLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// ObserveRelease records release duration and result.
func ObserveRelease(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if releaseTotal != nil {
		releaseTotal.WithLabelValues(result).Inc()
	}
	if releaseLatency != nil {
		releaseLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// ObserveReportGenerate records report generation latency and result.
func ObserveReportGenerate(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if reportGenerateTotal != nil {
		reportGenerateTotal.WithLabelValues(result).Inc()
	}
	if reportGenerateLatency != nil {
		reportGenerateLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// ObserveReportExport records export latency and result.
func ObserveReportExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if reportExportTotal != nil {
		reportExportTotal.WithLabelValues(format, result).Inc()
	}
	if reportExportLatency != nil {
		reportExportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

// SetOccupiedSlots updates the occupancy gauge.
func SetOccupiedSlots(occupied int) {
	if occupiedSlots != nil {
		occupiedSlots.Set(float64(occupied))
	}
}

// AddRevenue adds a released charge to the revenue counter.
func AddRevenue(amount float64) {
	if amount <= 0 {
		return
	}
	if revenueTotal != nil {
		revenueTotal.Add(amount)
	}
}

// IncArchiveFailure counts a receipt archive write that failed.
func IncArchiveFailure() {
	if archiveFailures != nil {
		archiveFailures.Inc()
	}
}

// Exported constants for callers.
const (
	ResultSuccess = resultSuccess
	ResultError   = resultError
)
