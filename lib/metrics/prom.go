package metrics

import (
	"sync"

	stdprometheus "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

var initOnce sync.Once

// InitPrometheusMetrics swaps the no-op metrics for prometheus ones. Only the
// first call has an effect.
func InitPrometheusMetrics() {
	initOnce.Do(func() {
		Version = PromVersion()
		Sequencer = PromSequencerMetrics()
	})
}

// Push sends everything gathered so far to a Pushgateway.
func Push(url, job string) error {
	return push.New(url, job).Gatherer(stdprometheus.DefaultGatherer).Push()
}
