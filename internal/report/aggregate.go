// Package report compares Monte Carlo results against the analytic
// reference and renders the benchmark's textual summary.
package report

import (
	"math"

	"github.com/quantgrid/mcpricer/internal/pricing"
)

// reserveFloor: deltas at or below this do not contribute to the reserve
// sum, so exact matches cannot divide by (near) zero.
const reserveFloor = 1e-6

// PassThreshold is the average reserve above which a run passes.
const PassThreshold = 1.0

// Aggregator accumulates the comparison between Monte Carlo values and the
// closed-form reference across a batch.
type Aggregator struct {
	sumDelta   float64
	sumRef     float64
	sumReserve float64
	added      int
}

// Add folds one option into the aggregate. It returns the analytic
// reference price, or an error for degenerate option parameters.
func (a *Aggregator) Add(opt pricing.OptionData, val pricing.OptionValue) (float32, error) {
	ref, err := pricing.BlackScholesCall(opt)
	if err != nil {
		return 0, err
	}

	delta := math.Abs(float64(ref) - float64(val.Expected))
	a.sumDelta += delta
	a.sumRef += math.Abs(float64(ref))
	if delta > reserveFloor {
		a.sumReserve += float64(val.Confidence) / delta
	}
	a.added++
	return ref, nil
}

// Added reports how many options have been folded in.
func (a *Aggregator) Added() int {
	return a.added
}

// Finalize computes the L1 relative norm and the average statistical
// reserve. The reserve divisor is the total option count, not the number
// of options that contributed to the reserve sum; the reference benchmark
// defines the metric this way and it is preserved as-is.
func (a *Aggregator) Finalize(totalOptions int) (l1Norm, avgReserve float64) {
	if a.sumRef != 0 {
		l1Norm = a.sumDelta / a.sumRef
	}
	if totalOptions > 0 {
		avgReserve = a.sumReserve / float64(totalOptions)
	}
	return l1Norm, avgReserve
}
