package report

import (
	"fmt"
	"io"

	"github.com/quantgrid/mcpricer/internal/device"
)

// DeviceStat is one device's slice of the run.
type DeviceStat struct {
	Device  device.Info
	Options int
	Paths   int
	TimeMs  float64 // per-device elapsed time; only measured in threaded runs
	Failed  bool
	Err     string
}

// Summary is the full outcome of one benchmark run.
type Summary struct {
	Method  string
	Scaling string
	Devices int
	Options int
	Paths   int

	DeviceStats []DeviceStat
	TotalTimeMs float64 // aggregate issue-and-wait window for streamed runs

	L1Norm     float64
	AvgReserve float64
	Passed     bool
}

// WriteHeader prints the run configuration block. The wording follows the
// reference benchmark's output, which downstream tooling parses.
func (s *Summary) WriteHeader(w io.Writer) {
	fmt.Fprintf(w, "MonteCarloMultiGPU\n")
	fmt.Fprintf(w, "==================\n")
	fmt.Fprintf(w, "Parallelization method  = %s\n", s.Method)
	fmt.Fprintf(w, "Problem scaling         = %s\n", s.Scaling)
	fmt.Fprintf(w, "Number of GPUs          = %d\n", s.Devices)
	fmt.Fprintf(w, "Total number of options = %d\n", s.Options)
	fmt.Fprintf(w, "Number of paths         = %d\n", s.Paths)
}

// WriteDeviceStats prints per-device statistics. Threaded runs report one
// elapsed time per device; streamed runs report a single aggregate window.
func (s *Summary) WriteDeviceStats(w io.Writer) {
	fmt.Fprintf(w, "GPU statistics, %s\n", s.Method)
	for _, ds := range s.DeviceStats {
		fmt.Fprintf(w, "GPU Device #%d: %s\n", ds.Device.Index, ds.Device.Name)
		if ds.Failed {
			fmt.Fprintf(w, "FAILED          : %s\n", ds.Err)
			continue
		}
		fmt.Fprintf(w, "Options         : %d\n", ds.Options)
		fmt.Fprintf(w, "Simulation paths: %d\n", ds.Paths)
		if s.Method == "threaded" {
			fmt.Fprintf(w, "Total time (ms.): %f\n", ds.TimeMs)
			if ds.TimeMs > 0 {
				fmt.Fprintf(w, "Options per sec.: %f\n", float64(s.Options)/(ds.TimeMs*0.001))
			}
		}
	}
	if s.Method != "threaded" {
		fmt.Fprintf(w, "\nTotal time (ms.): %f\n", s.TotalTimeMs)
		fmt.Fprintf(w, "\tNote: This is elapsed time for all to compute.\n")
		if s.TotalTimeMs > 0 {
			fmt.Fprintf(w, "Options per sec.: %f\n", float64(s.Options)/(s.TotalTimeMs*0.001))
		}
	}
}

// WriteVerdict prints the final summary block: L1 norm, average reserve,
// and the pass/fail verdict line.
func (s *Summary) WriteVerdict(w io.Writer) {
	fmt.Fprintf(w, "Test Summary...\n")
	fmt.Fprintf(w, "L1 norm        : %E\n", s.L1Norm)
	fmt.Fprintf(w, "Average reserve: %f\n", s.AvgReserve)
	if s.Passed {
		fmt.Fprintf(w, "Test passed\n")
	} else {
		fmt.Fprintf(w, "Test failed!\n")
	}
}
