package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/quantgrid/mcpricer/internal/config"
	"github.com/quantgrid/mcpricer/internal/logger"
	mcpricer "github.com/quantgrid/mcpricer/mcpricer_lib"
)

func usage(fs *flag.FlagSet) {
	fmt.Printf("--method=[threaded,streamed] --scaling=[strong,weak] [--qatest] [--help]\n")
	fmt.Printf("Method=threaded: 1 host thread for each device\n")
	fmt.Printf("       streamed: 1 host thread handles all devices [default]\n")
	fmt.Printf("Scaling=strong : constant problem size\n")
	fmt.Printf("        weak   : problem size scales with number of available devices [default]\n")
}

func main() {
	fmt.Printf("%s Starting...\n\n", os.Args[0])

	fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	fs.Usage = func() { usage(fs) }
	method := fs.String("method", "", "parallelization method: threaded or streamed")
	scaling := fs.String("scaling", "", "problem scaling: strong or weak")
	qatest := fs.Bool("qatest", false, "run both methods for validation")
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(1)
	}

	cfg := config.Load()
	if err := logger.InitWithConfig(cfg.Logging.LogLevel, cfg.Logging.LogFile); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}

	if *method == "" {
		*method = cfg.Engine.Method
	}
	if *scaling == "" {
		*scaling = cfg.Engine.Scaling
	}
	if *method != "threaded" {
		fmt.Printf("Using single host thread for multiple devices\n")
	}

	engine, err := mcpricer.NewSimEngine(cfg.Engine)
	if err != nil {
		log.Fatalf("Failed to initialize pricing engine: %v", err)
	}
	defer engine.Close()

	methods := []string{*method}
	if *qatest {
		methods = []string{"threaded", "streamed"}
	}

	passed := false
	for _, m := range methods {
		summary, err := engine.RunBenchmark(mcpricer.BenchmarkConfig{
			Method:  m,
			Scaling: *scaling,
			Options: cfg.Engine.Options,
			Paths:   cfg.Engine.Paths,
			Seed:    cfg.Engine.Seed,
		})
		if err != nil {
			logger.Error.Printf("benchmark run (%s) had device failures: %v", m, err)
		}
		if summary == nil {
			log.Fatalf("Benchmark run failed: %v", err)
		}

		summary.WriteHeader(os.Stdout)
		summary.WriteDeviceStats(os.Stdout)
		summary.WriteVerdict(os.Stdout)
		passed = summary.Passed
	}

	fmt.Printf("Shutting down...\n")
	if !passed {
		os.Exit(1)
	}
}
