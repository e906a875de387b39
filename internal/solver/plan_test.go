package solver

import (
	"errors"
	"testing"

	"github.com/quantgrid/mcpricer/internal/device"
)

func simDevices(n, units int) []device.Info {
	backend := device.NewSimBackend(n, units)
	devices, _ := backend.Devices()
	return devices
}

func TestPartitionCoversBatchExactly(t *testing.T) {
	cases := []struct {
		optN    int
		devices int
	}{
		{16, 1},
		{16, 3},
		{8192, 4},
		{7, 8}, // fewer options than devices
		{5, 5},
	}

	for _, tc := range cases {
		plans, err := Partition(simDevices(tc.devices, 64), tc.optN, 1024)
		if err != nil {
			t.Fatalf("Partition(%d opts, %d devices) failed: %v", tc.optN, tc.devices, err)
		}

		total := 0
		next := 0
		for i, p := range plans {
			if p.Offset != next {
				t.Errorf("plan %d: expected offset %d, got %d (ranges must be contiguous)", i, next, p.Offset)
			}
			if p.Device.Index != i {
				t.Errorf("plan %d assigned device %d", i, p.Device.Index)
			}
			total += p.Count
			next = p.Offset + p.Count
		}
		if total != tc.optN {
			t.Errorf("plans cover %d options, expected %d", total, tc.optN)
		}
	}
}

func TestPartitionRemainderFavorsLowDevices(t *testing.T) {
	// 10 options over 4 devices: 3,3,2,2.
	plans, err := Partition(simDevices(4, 64), 10, 1024)
	if err != nil {
		t.Fatalf("Partition failed: %v", err)
	}

	want := []int{3, 3, 2, 2}
	for i, p := range plans {
		if p.Count != want[i] {
			t.Errorf("plan %d: expected count %d, got %d", i, want[i], p.Count)
		}
	}
}

func TestPartitionNoDevices(t *testing.T) {
	if _, err := Partition(nil, 16, 1024); !errors.Is(err, device.ErrNoDevices) {
		t.Errorf("Expected ErrNoDevices, got %v", err)
	}
}

func TestPartitionBadBatch(t *testing.T) {
	if _, err := Partition(simDevices(1, 64), 0, 1024); !errors.Is(err, ErrBadBatch) {
		t.Errorf("Expected ErrBadBatch for zero options, got %v", err)
	}
	if _, err := Partition(simDevices(1, 64), 16, 0); !errors.Is(err, ErrBadBatch) {
		t.Errorf("Expected ErrBadBatch for zero paths, got %v", err)
	}
}

func TestGridSizeClamp(t *testing.T) {
	// A small device clamps the grid size to computeUnits * 40.
	plans, err := Partition(simDevices(1, 8), 8192, 1024)
	if err != nil {
		t.Fatalf("Partition failed: %v", err)
	}

	if plans[0].GridSize != 8*40 {
		t.Errorf("Expected grid size clamped to %d, got %d", 8*40, plans[0].GridSize)
	}

	// A large device leaves the default (option count) untouched.
	plans, err = Partition(simDevices(1, 1024), 100, 1024)
	if err != nil {
		t.Fatalf("Partition failed: %v", err)
	}
	if plans[0].GridSize != 100 {
		t.Errorf("Expected grid size 100, got %d", plans[0].GridSize)
	}
}

func TestAdjustProblemSize(t *testing.T) {
	// No small devices: unchanged.
	if n := AdjustProblemSize(simDevices(2, 64), 8192); n != 8192 {
		t.Errorf("Expected 8192, got %d", n)
	}

	// A 32-unit device shrinks the workload to units/2.
	if n := AdjustProblemSize(simDevices(1, 32), 8192); n != 16 {
		t.Errorf("Expected 16, got %d", n)
	}

	// Already small workloads are not grown.
	if n := AdjustProblemSize(simDevices(1, 32), 8); n != 8 {
		t.Errorf("Expected 8, got %d", n)
	}
}
