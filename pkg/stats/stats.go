package stats

import (
	"bufio"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

const (
	OutcomeApplied  = "applied"
	OutcomeRejected = "rejected"
)

// Collector counts the instructions processed by the ledger.
type Collector struct {
	instructions *prometheus.CounterVec
	lamports     *prometheus.CounterVec
}

// NewCollector creates the counters and registers them with reg. A nil reg
// means the counters are not exported.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		instructions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vault",
			Name:      "instructions_total",
			Help:      "Number of processed instructions by operation and outcome.",
		}, []string{"operation", "outcome"}),
		lamports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vault",
			Name:      "lamports_total",
			Help:      "Lamports moved by applied instructions by operation.",
		}, []string{"operation"}),
	}

	if reg != nil {
		for _, collector := range []prometheus.Collector{c.instructions, c.lamports} {
			if err := reg.Register(collector); err != nil {
				return nil, err
			}
		}
	}
	return c, nil
}

// ObserveInstruction increments the counter of the given operation and
// outcome.
func (c *Collector) ObserveInstruction(operation, outcome string) {
	c.instructions.WithLabelValues(operation, outcome).Inc()
}

// ObserveLamports adds amount to the lamports moved by operation.
func (c *Collector) ObserveLamports(operation string, amount uint64) {
	c.lamports.WithLabelValues(operation).Add(float64(amount))
}

// Instructions returns the counter for the given operation and outcome.
func (c *Collector) Instructions(operation, outcome string) prometheus.Counter {
	return c.instructions.WithLabelValues(operation, outcome)
}

// Lamports returns the counter for the given operation.
func (c *Collector) Lamports(operation string) prometheus.Counter {
	return c.lamports.WithLabelValues(operation)
}

// DumpMetrics appends the metrics gathered by g to the file at path.
func DumpMetrics(path string, g prometheus.Gatherer) error {
	file, err := os.OpenFile(
		path,
		os.O_APPEND|os.O_CREATE|os.O_RDWR,
		0644,
	)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	metricFamily, err := g.Gather()
	if err != nil {
		return err
	}
	for _, v := range metricFamily {
		if _, err := writer.WriteString(v.String() + "\n"); err != nil {
			return err
		}
	}

	log.Debugf("dumped %d metric families to %s", len(metricFamily), path)
	return writer.Flush()
}
