// Package metrics records run statistics in a private Prometheus registry
// and writes them out in the node exporter textfile format.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Recorder struct {
	reg *prometheus.Registry

	runs        *prometheus.CounterVec
	steps       prometheus.Counter
	foodEaten   prometheus.Counter
	finalLength prometheus.Gauge
	duration    prometheus.Histogram
}

func New() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "snakesaver_runs_total",
				Help: "Completed runs by outcome",
			},
			[]string{"outcome"},
		),
		steps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "snakesaver_steps_total",
			Help: "Turns simulated across all runs",
		}),
		foodEaten: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "snakesaver_food_eaten_total",
			Help: "Food eaten across all runs",
		}),
		finalLength: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "snakesaver_final_length",
			Help: "Snake length at the end of the last run",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "snakesaver_run_duration_seconds",
			Help:    "Wall time spent simulating a run",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
	}
	r.reg.MustRegister(r.runs, r.steps, r.foodEaten, r.finalLength, r.duration)
	return r
}

// Run is the slice of a finished run the recorder needs.
type Run struct {
	Outcome     string
	Turns       int
	FoodEaten   int
	FinalLength int
	Duration    time.Duration
}

func (r *Recorder) ObserveRun(run Run) {
	r.runs.WithLabelValues(run.Outcome).Inc()
	r.steps.Add(float64(run.Turns))
	r.foodEaten.Add(float64(run.FoodEaten))
	r.finalLength.Set(float64(run.FinalLength))
	r.duration.Observe(run.Duration.Seconds())
}

func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

// WriteTextfile writes every metric to path, replacing it atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
