package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/quantgrid/mcpricer/internal/config"
	"github.com/quantgrid/mcpricer/internal/handlers"
	"github.com/quantgrid/mcpricer/internal/logger"
	mcpricer "github.com/quantgrid/mcpricer/mcpricer_lib"

	"github.com/gorilla/mux"
)

func main() {
	cfg := config.Load()

	// Initialize proper logging with config level and file path
	if err := logger.InitWithConfig(cfg.Logging.LogLevel, cfg.Logging.LogFile); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	logger.Always.Printf("Monte Carlo pricing server starting - Port: %s", cfg.Port)

	// Initialize engine based on configuration
	engine, err := mcpricer.NewSimEngine(cfg.Engine)
	if err != nil {
		log.Fatalf("Failed to initialize pricing engine: %v", err)
	}
	defer engine.Close()

	logger.Always.Printf("Engine ready: %d devices, %d compute units each",
		engine.DeviceCount(), cfg.Engine.ComputeUnits)

	pricingHandler := handlers.NewPricingHandler(engine)

	// Setup router
	r := mux.NewRouter()
	r.HandleFunc("/health", pricingHandler.HealthHandler).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/devices", pricingHandler.DevicesHandler).Methods("GET")
	api.HandleFunc("/price", pricingHandler.PriceHandler).Methods("POST")
	api.HandleFunc("/benchmark", pricingHandler.BenchmarkHandler).Methods("POST")

	// Start server
	fmt.Printf("Server starting on http://localhost:%s\n", cfg.Port)
	logger.Info.Printf("HTTP server started on port %s", cfg.Port)

	if err := http.ListenAndServe("0.0.0.0:"+cfg.Port, r); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
