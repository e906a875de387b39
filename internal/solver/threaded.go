package solver

import (
	"fmt"
	"sync"

	"github.com/quantgrid/mcpricer/internal/device"
	"github.com/quantgrid/mcpricer/internal/logger"
)

// Threaded executes one worker goroutine per device. Each worker opens its
// own device context, prices its entire plan, waits for device completion,
// and records its own elapsed time. Execute blocks until all workers have
// joined.
type Threaded struct{}

func (t *Threaded) Name() string {
	return "threaded"
}

func (t *Threaded) Execute(run *RunContext, backend device.Backend, plans []Plan) error {
	run.PlanErrs = make([]error, len(plans))

	var wg sync.WaitGroup
	for i := range plans {
		wg.Add(1)
		go func(slot int, p Plan) {
			defer wg.Done()
			if err := solveDevice(run, backend, p); err != nil {
				logger.Error.Printf("device #%d failed: %v", p.Device.Index, err)
				run.PlanErrs[slot] = err
			}
		}(i, plans[i])
	}
	wg.Wait()

	return run.Err()
}

// solveDevice runs one plan on its device with scoped context acquisition:
// the context and queue are released on every exit path, including setup
// failures.
func solveDevice(run *RunContext, backend device.Backend, p Plan) error {
	sw := run.Timers[p.Device.Index]
	sw.Start()
	defer sw.Stop()

	ctx, err := backend.Open(p.Device.Index)
	if err != nil {
		return fmt.Errorf("open device #%d: %w", p.Device.Index, err)
	}
	defer ctx.Close()

	q, err := ctx.NewQueue()
	if err != nil {
		return fmt.Errorf("create queue on device #%d: %w", p.Device.Index, err)
	}
	defer q.Close()

	if err := q.Submit(func() error {
		pricePlan(run, p)
		return nil
	}); err != nil {
		return fmt.Errorf("submit to device #%d: %w", p.Device.Index, err)
	}

	if err := q.Synchronize(); err != nil {
		return fmt.Errorf("device #%d: %w", p.Device.Index, err)
	}
	return nil
}
