// Package solver partitions an option batch across compute devices and
// executes the pricing kernel over each device's plan using one of two
// execution strategies.
package solver

import (
	"errors"
	"fmt"

	"github.com/quantgrid/mcpricer/internal/device"
)

// ErrBadBatch is returned for a non-positive option or path count.
var ErrBadBatch = errors.New("solver: option and path counts must be positive")

const (
	// Devices at or below this many compute units are treated as small
	// devices for problem-size adjustment.
	smallDeviceUnits = 32

	// Grid size is clamped to computeUnits * gridSizeMultiplier.
	gridSizeMultiplier = 40
)

// Plan is one device's unit of work: a contiguous index range into the
// caller-owned batch arrays, the per-option path count, and a grid size
// hint for the device. Plans own no data.
type Plan struct {
	Device   device.Info
	Offset   int
	Count    int
	PathN    int
	GridSize int
}

// AdjustProblemSize shrinks the per-device default option count when any
// available device is too small to finish the default workload in
// reasonable time. Applied once, before scaling by device count and by
// scaling mode.
func AdjustProblemSize(devices []device.Info, defaultOptions int) int {
	n := defaultOptions
	for _, d := range devices {
		if d.ComputeUnits <= smallDeviceUnits && n > d.ComputeUnits/2 {
			n = d.ComputeUnits / 2
		}
	}
	return n
}

// adjustGridSize clamps the requested grid size to the device's capacity so
// small devices are not over-subscribed.
func adjustGridSize(d device.Info, defaultGridSize int) int {
	maxGridSize := d.ComputeUnits * gridSizeMultiplier
	if defaultGridSize > maxGridSize {
		return maxGridSize
	}
	return defaultGridSize
}

// Partition splits optN options across the given devices as evenly as
// possible. The remainder goes to the lowest-index devices, one option
// each. Ranges are contiguous in device order and cover [0, optN) exactly
// once.
func Partition(devices []device.Info, optN, pathN int) ([]Plan, error) {
	if len(devices) == 0 {
		return nil, device.ErrNoDevices
	}
	if optN <= 0 || pathN <= 0 {
		return nil, fmt.Errorf("%w: options=%d paths=%d", ErrBadBatch, optN, pathN)
	}

	plans := make([]Plan, len(devices))
	for i := range plans {
		plans[i].Count = optN / len(devices)
	}
	for i := 0; i < optN%len(devices); i++ {
		plans[i].Count++
	}

	base := 0
	for i := range plans {
		plans[i].Device = devices[i]
		plans[i].Offset = base
		plans[i].PathN = pathN
		plans[i].GridSize = adjustGridSize(devices[i], plans[i].Count)
		base += plans[i].Count
	}
	return plans, nil
}
