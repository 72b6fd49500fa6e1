package report

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/weiihann/fluidbench/harness"
)

const namespace = "fluidbench"

// metrics are the gauges exported for one run.
type metrics struct {
	nsPerOp     *prometheus.GaugeVec
	allocsPerOp *prometheus.GaugeVec
	speedup     *prometheus.GaugeVec
	failed      *prometheus.GaugeVec
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	caseLabels := []string{"suite", "case", "variant"}
	m := &metrics{
		nsPerOp: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ns_per_op",
			Help:      "Mean wall time of one call, in nanoseconds.",
		}, caseLabels),
		allocsPerOp: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "allocs_per_op",
			Help:      "Heap allocations per call.",
		}, caseLabels),
		speedup: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "kernel_speedup",
			Help:      "Plain mean time divided by kernel mean time.",
		}, []string{"suite", "case"}),
		failed: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "case_failed",
			Help:      "1 when the case could not be measured.",
		}, caseLabels),
	}

	for _, c := range []prometheus.Collector{m.nsPerOp, m.allocsPerOp, m.speedup, m.failed} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}

	return m, nil
}

func (m *metrics) observe(run *harness.Run) {
	for _, res := range run.Results {
		variant := res.Variant.String()
		if res.Failed() {
			m.failed.WithLabelValues(res.Suite, res.Case, variant).Set(1)
			continue
		}
		m.failed.WithLabelValues(res.Suite, res.Case, variant).Set(0)
		m.nsPerOp.WithLabelValues(res.Suite, res.Case, variant).Set(res.MeanNs)
		m.allocsPerOp.WithLabelValues(res.Suite, res.Case, variant).Set(res.AllocsPerOp)
	}

	for _, t := range tables(run.Results) {
		for _, r := range t.rows {
			if s := r.speedup(); s > 0 {
				m.speedup.WithLabelValues(t.suite, r.name).Set(s)
			}
		}
	}
}

// WritePrometheus writes the run's gauges to path in the text exposition
// format read by the node exporter textfile collector.
func WritePrometheus(path string, run *harness.Run) error {
	reg := prometheus.NewRegistry()
	m, err := newMetrics(reg)
	if err != nil {
		return err
	}
	m.observe(run)

	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}

	return nil
}
