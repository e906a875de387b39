package solver

import (
	"errors"
	"fmt"
	"sync"

	"github.com/quantgrid/mcpricer/internal/device"
	"github.com/quantgrid/mcpricer/internal/pricing"
	"github.com/quantgrid/mcpricer/internal/timer"
)

// RunContext owns the state of one pricing run: the shared batch arrays,
// the run seed, one stopwatch per device, and per-plan execution errors.
// It replaces the process-wide timer and thread-handle arrays of the
// original benchmark; its lifecycle is one run invocation.
type RunContext struct {
	Data   []pricing.OptionData
	Values []pricing.OptionValue
	Seed   uint64

	// Timers is indexed by device index. Threaded execution records one
	// elapsed time per device; streamed execution records a single
	// aggregate measurement on Timers[0].
	Timers []*timer.Stopwatch

	// PlanErrs is indexed by plan position; a nil entry means the plan
	// completed. A device failure is isolated to its own plan.
	PlanErrs []error
}

// NewRunContext prepares a run over the given batch arrays for deviceN
// devices.
func NewRunContext(data []pricing.OptionData, values []pricing.OptionValue, seed uint64, deviceN int) *RunContext {
	timers := make([]*timer.Stopwatch, deviceN)
	for i := range timers {
		timers[i] = timer.New()
	}
	return &RunContext{
		Data:   data,
		Values: values,
		Seed:   seed,
		Timers: timers,
	}
}

// Err joins the per-plan errors, annotated with the failing device.
func (r *RunContext) Err() error {
	var errs []error
	for i, err := range r.PlanErrs {
		if err != nil {
			errs = append(errs, fmt.Errorf("plan %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// FailedPlans returns the positions of plans whose device failed.
func (r *RunContext) FailedPlans() []int {
	var failed []int
	for i, err := range r.PlanErrs {
		if err != nil {
			failed = append(failed, i)
		}
	}
	return failed
}

// ExecutionStrategy runs the pricing kernel over every plan. On return,
// every OptionValue covered by a plan with a nil PlanErrs entry has been
// overwritten with real values.
type ExecutionStrategy interface {
	Name() string
	Execute(run *RunContext, backend device.Backend, plans []Plan) error
}

// StrategyFor maps a method name to its strategy. Anything other than
// "threaded" selects streamed execution, matching the reference CLI.
func StrategyFor(method string) ExecutionStrategy {
	if method == "threaded" {
		return &Threaded{}
	}
	return &Streamed{}
}

// pricePlan prices the plan's option range. Options are strided across a
// bounded set of workers standing in for the device's parallel grid; every
// worker writes a disjoint set of value slots, so no synchronization is
// needed on the output array.
func pricePlan(run *RunContext, p Plan) {
	workers := p.GridSize
	if workers > p.Device.ComputeUnits {
		workers = p.Device.ComputeUnits
	}
	if workers > p.Count {
		workers = p.Count
	}
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := w; i < p.Count; i += workers {
				idx := p.Offset + i
				gen := pricing.ForOption(run.Seed, idx)
				run.Values[idx] = pricing.Simulate(run.Data[idx], p.PathN, gen)
			}
		}(w)
	}
	wg.Wait()
}
