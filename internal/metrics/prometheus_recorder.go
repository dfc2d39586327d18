package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once              sync.Once
	discoveryDuration prom.Histogram
	discoveredUnits   prom.Gauge
	unitBuildDuration *prom.HistogramVec
	buildDuration     prom.Histogram
	unitBuildResults  *prom.CounterVec
	buildOutcome      *prom.CounterVec
	queueDepth        prom.Gauge
	buildConcurrency  prom.Gauge
	fetchResults      *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.discoveryDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "aocbuild",
			Name:      "discovery_duration_seconds",
			Help:      "Duration of repository root discovery",
			Buckets:   prom.DefBuckets,
		})
		pr.discoveredUnits = prom.NewGauge(prom.GaugeOpts{
			Namespace: "aocbuild",
			Name:      "discovered_units",
			Help:      "Day units found by the last discovery",
		})
		pr.unitBuildDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "aocbuild",
			Name:      "unit_build_duration_seconds",
			Help:      "Duration of individual day-unit builds",
			Buckets:   prom.DefBuckets,
		}, []string{"unit", "result"})
		pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "aocbuild",
			Name:      "build_duration_seconds",
			Help:      "Total build invocation duration",
			Buckets:   prom.DefBuckets,
		})
		pr.unitBuildResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "aocbuild",
			Name:      "unit_build_results_total",
			Help:      "Unit build results by success/failure",
		}, []string{"result"})
		pr.buildOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "aocbuild",
			Name:      "build_outcomes_total",
			Help:      "Build invocation outcomes by final status",
		}, []string{"outcome"})
		pr.queueDepth = prom.NewGauge(prom.GaugeOpts{
			Namespace: "aocbuild",
			Name:      "queue_depth",
			Help:      "Jobs waiting in the daemon build queue",
		})
		pr.buildConcurrency = prom.NewGauge(prom.GaugeOpts{
			Namespace: "aocbuild",
			Name:      "build_concurrency",
			Help:      "Configured worker bound for the last build invocation",
		})
		pr.fetchResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "aocbuild",
			Name:      "fetch_results_total",
			Help:      "Puzzle input fetch results by success/failure",
		}, []string{"result"})
		reg.MustRegister(pr.discoveryDuration, pr.discoveredUnits, pr.unitBuildDuration,
			pr.buildDuration, pr.unitBuildResults, pr.buildOutcome, pr.queueDepth,
			pr.buildConcurrency, pr.fetchResults)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveDiscoveryDuration(d time.Duration, units int) {
	if p == nil || p.discoveryDuration == nil {
		return
	}
	p.discoveryDuration.Observe(d.Seconds())
	p.discoveredUnits.Set(float64(units))
}

func (p *PrometheusRecorder) ObserveUnitBuildDuration(unit string, d time.Duration, success bool) {
	if p == nil || p.unitBuildDuration == nil {
		return
	}
	p.unitBuildDuration.WithLabelValues(unit, resultString(success)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncUnitBuildResult(success bool) {
	if p == nil || p.unitBuildResults == nil {
		return
	}
	p.unitBuildResults.WithLabelValues(resultString(success)).Inc()
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome ResultLabel) {
	if p == nil || p.buildOutcome == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetQueueDepth(n int) {
	if p == nil || p.queueDepth == nil {
		return
	}
	p.queueDepth.Set(float64(n))
}

func (p *PrometheusRecorder) SetBuildConcurrency(n int) {
	if p == nil || p.buildConcurrency == nil {
		return
	}
	p.buildConcurrency.Set(float64(n))
}

func (p *PrometheusRecorder) IncFetchResult(success bool) {
	if p == nil || p.fetchResults == nil {
		return
	}
	p.fetchResults.WithLabelValues(resultString(success)).Inc()
}

func resultString(success bool) string {
	if success {
		return string(ResultSuccess)
	}
	return string(ResultFailed)
}
