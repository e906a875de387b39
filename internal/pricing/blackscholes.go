package pricing

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is returned for degenerate option parameters that would
// otherwise propagate NaN through the closed-form formula.
var ErrInvalidInput = errors.New("pricing: invalid option parameters")

// BlackScholesCall returns the closed-form Black-Scholes price of a
// European call. It is the correctness oracle for the Monte Carlo kernel.
func BlackScholesCall(opt OptionData) (float32, error) {
	if opt.S <= 0 || opt.X <= 0 || opt.T <= 0 || opt.V <= 0 {
		return 0, fmt.Errorf("%w: S=%v X=%v T=%v V=%v", ErrInvalidInput, opt.S, opt.X, opt.T, opt.V)
	}

	s := float64(opt.S)
	x := float64(opt.X)
	t := float64(opt.T)
	r := float64(opt.R)
	v := float64(opt.V)

	sqrtT := math.Sqrt(t)
	d1 := (math.Log(s/x) + (r+0.5*v*v)*t) / (v * sqrtT)
	d2 := d1 - v*sqrtT

	price := s*cnd(d1) - x*math.Exp(-r*t)*cnd(d2)
	return float32(price), nil
}

// cnd is the standard cumulative normal distribution.
func cnd(d float64) float64 {
	return 0.5 * (1.0 + math.Erf(d/math.Sqrt2))
}
