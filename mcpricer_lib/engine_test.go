package mcpricer

import (
	"errors"
	"math"
	"os"
	"testing"

	"github.com/quantgrid/mcpricer/internal/device"
	"github.com/quantgrid/mcpricer/internal/logger"
	"github.com/quantgrid/mcpricer/internal/pricing"
)

func TestMain(m *testing.M) {
	logger.InitWithConfig("error", os.DevNull)
	os.Exit(m.Run())
}

func TestNewEngineNoDevices(t *testing.T) {
	if _, err := NewEngine(device.NewSimBackend(0, 64)); !errors.Is(err, device.ErrNoDevices) {
		t.Errorf("Expected ErrNoDevices, got %v", err)
	}
}

func TestEngineDeviceCount(t *testing.T) {
	engine, err := NewEngine(device.NewSimBackend(3, 64))
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	defer engine.Close()

	if engine.DeviceCount() != 3 {
		t.Errorf("Expected 3 devices, got %d", engine.DeviceCount())
	}
	if len(engine.Devices()) != 3 {
		t.Errorf("Expected 3 device infos, got %d", len(engine.Devices()))
	}
}

// TestBenchmarkSingleDeviceWeakScaling is the reference end-to-end run:
// 16 options, full path count, one device, weak scaling. It must populate
// every value slot, produce a finite L1 norm, and pass the reserve check.
func TestBenchmarkSingleDeviceWeakScaling(t *testing.T) {
	engine, err := NewEngine(device.NewSimBackend(1, 64))
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	defer engine.Close()

	summary, err := engine.RunBenchmark(BenchmarkConfig{
		Method:  "streamed",
		Scaling: "weak",
		Options: 16,
		Paths:   262144,
		Seed:    123,
	})
	if err != nil {
		t.Fatalf("RunBenchmark failed: %v", err)
	}

	if summary.Options != 16 {
		t.Errorf("Expected 16 options, got %d", summary.Options)
	}
	if math.IsNaN(summary.L1Norm) || math.IsInf(summary.L1Norm, 0) {
		t.Errorf("L1 norm is not finite: %f", summary.L1Norm)
	}
	if summary.L1Norm > 0.01 {
		t.Errorf("L1 norm unexpectedly large: %E", summary.L1Norm)
	}
	if summary.AvgReserve <= 1.0 {
		t.Errorf("Expected average reserve > 1.0, got %f", summary.AvgReserve)
	}
	if !summary.Passed {
		t.Error("Expected the run to pass")
	}
	t.Logf("L1 norm: %E, average reserve: %f", summary.L1Norm, summary.AvgReserve)
}

func TestBenchmarkWeakScalingGrowsWithDevices(t *testing.T) {
	engine, err := NewEngine(device.NewSimBackend(4, 64))
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	defer engine.Close()

	weak, err := engine.RunBenchmark(BenchmarkConfig{Scaling: "weak", Options: 8, Paths: 1024})
	if err != nil {
		t.Fatalf("RunBenchmark failed: %v", err)
	}
	if weak.Options != 32 {
		t.Errorf("Weak scaling: expected 8*4 options, got %d", weak.Options)
	}

	strong, err := engine.RunBenchmark(BenchmarkConfig{Scaling: "strong", Options: 8, Paths: 1024})
	if err != nil {
		t.Fatalf("RunBenchmark failed: %v", err)
	}
	if strong.Options != 8 {
		t.Errorf("Strong scaling: expected 8 options, got %d", strong.Options)
	}
}

func TestBenchmarkSmallDeviceShrinksProblem(t *testing.T) {
	// A 16-unit device pulls the workload down to units/2 = 8 options.
	engine, err := NewEngine(device.NewSimBackend(1, 16))
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	defer engine.Close()

	summary, err := engine.RunBenchmark(BenchmarkConfig{Options: 8192, Paths: 1024})
	if err != nil {
		t.Fatalf("RunBenchmark failed: %v", err)
	}
	if summary.Options != 8 {
		t.Errorf("Expected problem size shrunk to 8, got %d", summary.Options)
	}
}

func TestBenchmarkMethodsAgree(t *testing.T) {
	engine, err := NewEngine(device.NewSimBackend(2, 64))
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	defer engine.Close()

	threaded, err := engine.RunBenchmark(BenchmarkConfig{Method: "threaded", Options: 8, Paths: 16384, Seed: 123})
	if err != nil {
		t.Fatalf("threaded RunBenchmark failed: %v", err)
	}
	streamed, err := engine.RunBenchmark(BenchmarkConfig{Method: "streamed", Options: 8, Paths: 16384, Seed: 123})
	if err != nil {
		t.Fatalf("streamed RunBenchmark failed: %v", err)
	}

	// Same seed, same per-option sample streams: the aggregate metrics
	// match to floating tolerance.
	if math.Abs(threaded.L1Norm-streamed.L1Norm) > 1e-9 {
		t.Errorf("L1 norms differ: %E vs %E", threaded.L1Norm, streamed.L1Norm)
	}
	if math.Abs(threaded.AvgReserve-streamed.AvgReserve) > 1e-9 {
		t.Errorf("Reserves differ: %f vs %f", threaded.AvgReserve, streamed.AvgReserve)
	}
}

func TestPriceBatchValidatesInput(t *testing.T) {
	engine, err := NewEngine(device.NewSimBackend(1, 64))
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	defer engine.Close()

	bad := []pricing.OptionData{{S: -1, X: 10, T: 1, R: 0.06, V: 0.10}}
	if _, _, err := engine.PriceBatch(bad, 1024, "streamed", 1); !errors.Is(err, pricing.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestPriceBatchSinglePath(t *testing.T) {
	engine, err := NewEngine(device.NewSimBackend(1, 64))
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	defer engine.Close()

	opts := []pricing.OptionData{{S: 30, X: 20, T: 2, R: 0.06, V: 0.10}}
	values, _, err := engine.PriceBatch(opts, 1, "streamed", 7)
	if err != nil {
		t.Fatalf("PriceBatch failed: %v", err)
	}
	if math.IsNaN(float64(values[0].Expected)) || math.IsNaN(float64(values[0].Confidence)) {
		t.Errorf("Single-path pricing produced NaN: %+v", values[0])
	}
	if values[0].Confidence != 0 {
		t.Errorf("Expected confidence 0 for a single path, got %f", values[0].Confidence)
	}
}

func TestPriceBatchPopulatesAllValues(t *testing.T) {
	engine, err := NewEngine(device.NewSimBackend(2, 64))
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	defer engine.Close()

	opts := []pricing.OptionData{
		{S: 30, X: 20, T: 2, R: 0.06, V: 0.10},
		{S: 15, X: 18, T: 3, R: 0.06, V: 0.10},
		{S: 42, X: 12, T: 1, R: 0.06, V: 0.10},
	}

	values, elapsedMs, err := engine.PriceBatch(opts, 8192, "threaded", 7)
	if err != nil {
		t.Fatalf("PriceBatch failed: %v", err)
	}
	if len(values) != len(opts) {
		t.Fatalf("Expected %d values, got %d", len(opts), len(values))
	}
	for i, v := range values {
		if v.Expected == pricing.Sentinel || v.Confidence == pricing.Sentinel {
			t.Errorf("option %d not priced", i)
		}
	}
	if elapsedMs <= 0 {
		t.Error("Expected positive elapsed time")
	}
}
