package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/blobline/internal/metrics"
)

// Registry maps names to metric constructors for the --metric flag.
type Registry struct {
	metrics map[string]func() metrics.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		metrics: make(map[string]func() metrics.Metric),
	}

	r.metrics["mean_luminance"] = func() metrics.Metric { return metrics.NewMeanLuminance() }
	r.metrics["contrast"] = func() metrics.Metric { return metrics.NewContrast() }
	r.metrics["clipped"] = func() metrics.Metric { return metrics.NewClipped() }
	r.metrics["luminance"] = func() metrics.Metric { return metrics.NewLuminanceSeries() }

	return r
}

func (r *Registry) GetMetric(name string) (metrics.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s (available: %v)", name, r.ListMetrics())
	}
	return fn(), nil
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
