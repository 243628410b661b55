package optim

import (
	"fmt"
	"math"

	"github.com/san-kum/blobline/internal/automation"
	"github.com/san-kum/blobline/internal/config"
	"github.com/san-kum/blobline/internal/experiment"
)

// GridSearch tries every combination of the given parameter values and
// keeps the one whose metric lands closest to a target.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) != len(ranges) {
		return nil, fmt.Errorf("grid search: %d params but %d value lists", len(params), len(ranges))
	}
	for i, r := range ranges {
		if len(r) == 0 {
			return nil, fmt.Errorf("grid search: no values for %s", params[i])
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n < 1 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

// Search runs one experiment per grid point on a copy of base and returns
// the parameters minimizing |metric - target|, plus the metric value there.
// Ties keep the first point visited.
func (g *GridSearch) Search(base config.Config, metricName string, target float64) (map[string]float64, float64, error) {
	best := math.Inf(1)
	var bestValue float64
	var bestParams map[string]float64

	var visit func(depth int, current map[string]float64) error
	visit = func(depth int, current map[string]float64) error {
		if depth == len(g.paramNames) {
			cfg := base
			for k, v := range current {
				if err := automation.SetParam(&cfg, k, v); err != nil {
					return err
				}
			}

			exp := experiment.New(cfg)
			if err := exp.Setup(); err != nil {
				return fmt.Errorf("%v: %w", current, err)
			}
			result, err := exp.Run()
			if err != nil {
				return err
			}

			val, ok := result.Metrics[metricName]
			if !ok {
				return fmt.Errorf("unknown metric: %s", metricName)
			}
			if d := math.Abs(val - target); d < best {
				best = d
				bestValue = val
				bestParams = make(map[string]float64, len(current))
				for k, v := range current {
					bestParams[k] = v
				}
			}
			return nil
		}

		name := g.paramNames[depth]
		for _, val := range g.ranges[depth] {
			next := make(map[string]float64, len(current)+1)
			for k, v := range current {
				next[k] = v
			}
			next[name] = val
			if err := visit(depth+1, next); err != nil {
				return err
			}
		}
		return nil
	}

	if err := visit(0, map[string]float64{}); err != nil {
		return nil, 0, err
	}
	return bestParams, bestValue, nil
}
