package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "apfloat_operations_total",
		Help: "Total number of kernel operations executed, by operation",
	}, []string{"op"})

	SaturationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "apfloat_saturations_total",
		Help: "Results clamped to signed zero (underflow) or signed infinity (overflow)",
	}, []string{"op", "kind"})

	DivisionUndefinedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "apfloat_division_undefined_total",
		Help: "Total number of 0/0 divisions rejected",
	})

	SinIterations = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "apfloat_sin_iterations",
		Help:    "Taylor series terms consumed per sine evaluation",
		Buckets: []float64{1, 2, 5, 10, 20, 50, 100, 200, 500},
	})

	NonConvergentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "apfloat_non_convergent_total",
		Help: "Series evaluations that hit their iteration cap",
	})
)

// RecordOperation counts one kernel operation ("add", "mul", "div", "sin").
func RecordOperation(op string) {
	OperationsTotal.WithLabelValues(op).Inc()
}

// RecordSaturation counts a result clamped out of the finite range. kind is
// "overflow" or "underflow".
func RecordSaturation(op, kind string) {
	SaturationsTotal.WithLabelValues(op, kind).Inc()
}

// RecordDivisionUndefined counts a rejected 0/0.
func RecordDivisionUndefined() {
	DivisionUndefinedTotal.Inc()
}

// RecordSinIterations observes how many series terms a sine evaluation took.
func RecordSinIterations(n int) {
	SinIterations.Observe(float64(n))
}

// RecordNonConvergent counts a series evaluation that exhausted its cap.
func RecordNonConvergent() {
	NonConvergentTotal.Inc()
}
