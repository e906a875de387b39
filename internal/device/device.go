// Package device abstracts the compute devices the pricing engine runs on.
// It is responsible for device discovery, capability queries, and execution
// queues. Backends are expected to provide in-order queues with asynchronous
// submission and an explicit synchronization barrier, mirroring the queue
// semantics of GPU runtimes.
package device

import "errors"

var (
	// ErrNoDevices is returned when a backend enumerates zero devices.
	ErrNoDevices = errors.New("device: no compute devices available")

	// ErrBadIndex is returned for an out-of-range device index.
	ErrBadIndex = errors.New("device: device index out of range")

	// ErrClosed is returned when submitting to a closed queue or context.
	ErrClosed = errors.New("device: closed")
)

// Info describes a compute device.
type Info struct {
	Index        int
	Name         string
	Vendor       string
	ComputeUnits int
}

// Backend is implemented by compute backends. It is responsible for device
// discovery and context creation.
type Backend interface {
	Name() string
	Available() bool
	Devices() ([]Info, error)
	Open(index int) (Context, error)
}

// Context is a device context tied to a single device. Contexts must be
// closed on every exit path; a context owns the queues created from it.
type Context interface {
	Device() Info
	NewQueue() (Queue, error)
	Close() error
}

// Queue is an in-order execution queue. Submit enqueues work without
// blocking; Synchronize blocks until all previously submitted work has
// completed and reports the first task error since the last barrier.
// Submit, Synchronize, and Close are driven by a single host goroutine,
// matching the controlling-thread model of GPU runtime queues.
type Queue interface {
	Submit(task func() error) error
	Synchronize() error
	Close() error
}
