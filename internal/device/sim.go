package device

import (
	"fmt"
	"sync"
)

// SimBackend is a CPU-backed simulated multi-device backend. Each simulated
// device executes queue work on its own goroutine, preserving submission
// order per queue, so the host-side concurrency semantics match a real
// multi-device runtime without requiring accelerator hardware.
type SimBackend struct {
	devices []Info
}

// NewSimBackend returns a backend with deviceCount simulated devices, each
// reporting unitsPerDevice compute units.
func NewSimBackend(deviceCount, unitsPerDevice int) *SimBackend {
	devices := make([]Info, 0, deviceCount)
	for i := 0; i < deviceCount; i++ {
		devices = append(devices, Info{
			Index:        i,
			Name:         fmt.Sprintf("SimDevice #%d", i),
			Vendor:       "mcpricer",
			ComputeUnits: unitsPerDevice,
		})
	}
	return &SimBackend{devices: devices}
}

func (b *SimBackend) Name() string {
	return "sim"
}

func (b *SimBackend) Available() bool {
	return len(b.devices) > 0
}

func (b *SimBackend) Devices() ([]Info, error) {
	if len(b.devices) == 0 {
		return nil, ErrNoDevices
	}
	out := make([]Info, len(b.devices))
	copy(out, b.devices)
	return out, nil
}

func (b *SimBackend) Open(index int) (Context, error) {
	if index < 0 || index >= len(b.devices) {
		return nil, fmt.Errorf("%w: %d", ErrBadIndex, index)
	}
	return &simContext{device: b.devices[index]}, nil
}

type simContext struct {
	mu     sync.Mutex
	device Info
	queues []*simQueue
	closed bool
}

func (c *simContext) Device() Info {
	return c.device
}

func (c *simContext) NewQueue() (Queue, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, ErrClosed
	}
	q := newSimQueue()
	c.queues = append(c.queues, q)
	return q, nil
}

// Close shuts down every queue created from this context. Queues drain
// their pending work before stopping.
func (c *simContext) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	for _, q := range c.queues {
		q.Close()
	}
	c.queues = nil
	return nil
}

type simQueue struct {
	mu     sync.Mutex
	tasks  chan func() error
	done   chan struct{}
	err    error // first task error since the last Synchronize
	closed bool
}

func newSimQueue() *simQueue {
	q := &simQueue{
		tasks: make(chan func() error, 64),
		done:  make(chan struct{}),
	}
	go q.run()
	return q
}

func (q *simQueue) run() {
	defer close(q.done)
	for task := range q.tasks {
		if err := task(); err != nil {
			q.mu.Lock()
			if q.err == nil {
				q.err = err
			}
			q.mu.Unlock()
		}
	}
}

func (q *simQueue) Submit(task func() error) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrClosed
	}
	q.mu.Unlock()
	q.tasks <- task
	return nil
}

// Synchronize blocks until all work submitted before the call has finished.
// In-order execution makes a sentinel task a full barrier.
func (q *simQueue) Synchronize() error {
	barrier := make(chan struct{})
	if err := q.Submit(func() error {
		close(barrier)
		return nil
	}); err != nil {
		return err
	}
	<-barrier

	q.mu.Lock()
	defer q.mu.Unlock()
	err := q.err
	q.err = nil
	return err
}

func (q *simQueue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	q.mu.Unlock()
	close(q.tasks)
	<-q.done
	return nil
}
