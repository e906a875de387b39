package solver

import (
	"fmt"

	"github.com/quantgrid/mcpricer/internal/device"
	"github.com/quantgrid/mcpricer/internal/logger"
)

// Streamed executes all plans from a single controlling goroutine: every
// device context is opened first, work is issued to all device queues, a
// barrier is waited on per queue, and all contexts are torn down. One
// aggregate elapsed-time measurement spans the whole issue-and-wait window,
// so Timers[0] is a throughput figure for the entire batch, not a
// per-device figure.
type Streamed struct{}

func (s *Streamed) Name() string {
	return "streamed"
}

func (s *Streamed) Execute(run *RunContext, backend device.Backend, plans []Plan) error {
	run.PlanErrs = make([]error, len(plans))

	contexts := make([]device.Context, len(plans))
	queues := make([]device.Queue, len(plans))
	defer func() {
		for i := len(plans) - 1; i >= 0; i-- {
			if queues[i] != nil {
				queues[i].Close()
			}
			if contexts[i] != nil {
				contexts[i].Close()
			}
		}
	}()

	sw := run.Timers[0]
	sw.Start()
	defer sw.Stop()

	// Open every device context before issuing any work. A failure is
	// isolated to the failing device's plan.
	for i, p := range plans {
		ctx, err := backend.Open(p.Device.Index)
		if err != nil {
			run.PlanErrs[i] = fmt.Errorf("open device #%d: %w", p.Device.Index, err)
			logger.Error.Printf("device #%d failed: %v", p.Device.Index, err)
			continue
		}
		contexts[i] = ctx

		q, err := ctx.NewQueue()
		if err != nil {
			run.PlanErrs[i] = fmt.Errorf("create queue on device #%d: %w", p.Device.Index, err)
			logger.Error.Printf("device #%d failed: %v", p.Device.Index, err)
			continue
		}
		queues[i] = q
	}

	// Issue work to all healthy queues; execution overlaps across devices.
	for i, p := range plans {
		if run.PlanErrs[i] != nil {
			continue
		}
		p := p
		if err := queues[i].Submit(func() error {
			pricePlan(run, p)
			return nil
		}); err != nil {
			run.PlanErrs[i] = fmt.Errorf("submit to device #%d: %w", p.Device.Index, err)
		}
	}

	// Per-device barrier: wait for every queue to drain.
	for i, p := range plans {
		if run.PlanErrs[i] != nil {
			continue
		}
		if err := queues[i].Synchronize(); err != nil {
			run.PlanErrs[i] = fmt.Errorf("device #%d: %w", p.Device.Index, err)
			logger.Error.Printf("device #%d failed: %v", p.Device.Index, err)
		}
	}
	sw.Stop()

	return run.Err()
}
