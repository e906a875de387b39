// Package pricing holds the option data model, the Monte Carlo pricing
// kernel, and the closed-form Black-Scholes reference it is validated
// against.
package pricing

import "golang.org/x/exp/rand"

// Sentinel marks an OptionValue slot that has not been written by the
// kernel yet.
const Sentinel = -1.0

// OptionData is the immutable per-option input: spot, strike, maturity in
// years, risk-free rate, and volatility. Single precision matches the
// device-side math.
type OptionData struct {
	S float32 // spot price
	X float32 // strike price
	T float32 // time to maturity, years
	R float32 // risk-free rate
	V float32 // volatility
}

// OptionValue is the per-option Monte Carlo output: the mean discounted
// payoff and the half-width of its 95% confidence interval. Both are
// Sentinel until the kernel writes them.
type OptionValue struct {
	Expected   float32
	Confidence float32
}

// Batch generation bounds from the reference benchmark.
const (
	batchSpotLow    = 5.0
	batchSpotHigh   = 50.0
	batchStrikeLow  = 10.0
	batchStrikeHigh = 25.0
	batchYearsLow   = 1.0
	batchYearsHigh  = 5.0
	batchRate       = 0.06
	batchVol        = 0.10
)

// NewBatch generates n options with uniformly distributed spot, strike,
// and maturity, and fixed rate/volatility, plus a value array initialized
// to sentinels. The same seed always yields the same batch.
func NewBatch(n int, seed uint64) ([]OptionData, []OptionValue) {
	rng := rand.New(rand.NewSource(seed))

	data := make([]OptionData, n)
	values := make([]OptionValue, n)
	for i := range data {
		data[i] = OptionData{
			S: randFloat(rng, batchSpotLow, batchSpotHigh),
			X: randFloat(rng, batchStrikeLow, batchStrikeHigh),
			T: randFloat(rng, batchYearsLow, batchYearsHigh),
			R: batchRate,
			V: batchVol,
		}
		values[i] = OptionValue{Expected: Sentinel, Confidence: Sentinel}
	}
	return data, values
}

func randFloat(rng *rand.Rand, low, high float32) float32 {
	t := float32(rng.Float64())
	return (1-t)*low + t*high
}
