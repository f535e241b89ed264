package main

import (
	"context"
	"strconv"

	"github.com/criyle/go-grader/judger"
	"github.com/criyle/go-grader/worker"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "grader"

var (
	// 1ms -> 10min
	timeBuckets = []float64{
		0.001, 0.005, 0.010, 0.050, 0.1, 0.25, 0.5, 1.0, 2.5, 5, 10,
		30, 60, 120, 300, 600,
	}

	testTimeHist = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "test_time_seconds",
		Help:      "Histogram for the running time of a test",
		Buckets:   timeBuckets,
	}, []string{"kind", "status"})

	testCount = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "test_total",
		Help:      "Number of tests finished",
	}, []string{"kind", "status"})

	suiteCount = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "suite_total",
		Help:      "Number of suites finished",
	}, []string{"passed"})

	suiteErrorCount = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "suite_error",
		Help:      "Number of suite requests returns error",
	})

	pointsEarned = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "points_earned",
		Help:      "Points earned by the last suite",
	})

	pointsAvailable = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "points_available",
		Help:      "Points available in the last suite",
	})

	suiteInQueue = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "suite_in_queue",
		Help:      "Number of suites submitted and not finished",
	})
)

func init() {
	prometheus.MustRegister(testTimeHist, testCount)
	prometheus.MustRegister(suiteCount, suiteErrorCount)
	prometheus.MustRegister(pointsEarned, pointsAvailable, suiteInQueue)
}

func testObserve(r judger.TestResult) {
	status := r.Status.String()
	testTimeHist.WithLabelValues(r.Kind, status).Observe(r.Duration.Seconds())
	testCount.WithLabelValues(r.Kind, status).Inc()
}

func suiteObserve(r judger.SuiteResult) {
	suiteCount.WithLabelValues(strconv.FormatBool(r.Passed)).Inc()
	if r.Score.HasPoints {
		pointsEarned.Set(r.Score.Earned)
		pointsAvailable.Set(r.Score.Available)
	}
}

func resultObserve(r worker.Response) {
	if r.Error != nil {
		suiteErrorCount.Inc()
		return
	}
	suiteObserve(r.Result)
}

func writeMetricsFile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}

var _ worker.Worker = &metricsWorker{}

type metricsWorker struct {
	worker.Worker
}

func newMetricsWorker(w worker.Worker) worker.Worker {
	return &metricsWorker{Worker: w}
}

func (w *metricsWorker) Submit(ctx context.Context, req *worker.Request) <-chan worker.Response {
	suiteInQueue.Inc()
	rtCh := w.Worker.Submit(ctx, req)
	ch := make(chan worker.Response, 1)
	go func() {
		rt := <-rtCh
		suiteInQueue.Dec()
		ch <- rt
	}()
	return ch
}
