package pricing

import (
	"math"

	"github.com/chewxy/math32"
)

// ConfidenceZ is the multiplier for a ~95% confidence interval on the
// path-sample mean.
const ConfidenceZ = 1.96

// Simulate prices one European call by Monte Carlo: pathN terminal prices
// under the risk-neutral lognormal model, discounted payoff per path,
// reduced to a mean and a standard-error confidence half-width.
//
// Path math runs in single precision like the device kernels it stands in
// for; the payoff sums accumulate in float64 so the reduction stays stable
// at pathN = 262144 and beyond.
func Simulate(opt OptionData, pathN int, gen *PathGenerator) OptionValue {
	muT := (opt.R - 0.5*opt.V*opt.V) * opt.T
	volT := opt.V * math32.Sqrt(opt.T)
	discount := math32.Exp(-opt.R * opt.T)

	var sum, sum2 float64
	for i := 0; i < pathN; i++ {
		z := float32(gen.Normal())
		st := opt.S * math32.Exp(muT+volT*z)
		payoff := st - opt.X
		if payoff > 0 {
			p := float64(payoff * discount)
			sum += p
			sum2 += p * p
		}
	}

	n := float64(pathN)
	mean := sum / n
	if pathN < 2 {
		// A single path has no sample variance; report the discounted
		// payoff with a zero half-width rather than a 0/0 NaN.
		return OptionValue{Expected: float32(mean), Confidence: 0}
	}
	// Sample variance via the sum-of-squares identity; the float64
	// accumulators keep the cancellation benign for the magnitudes
	// involved here.
	variance := (sum2 - sum*sum/n) / (n - 1)
	if variance < 0 {
		variance = 0
	}
	stdDev := math.Sqrt(variance)

	return OptionValue{
		Expected:   float32(mean),
		Confidence: float32(ConfidenceZ * stdDev / math.Sqrt(n)),
	}
}
