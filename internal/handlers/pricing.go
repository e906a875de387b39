// Package handlers exposes the pricing engine over HTTP.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/quantgrid/mcpricer/internal/logger"
	"github.com/quantgrid/mcpricer/internal/models"
	"github.com/quantgrid/mcpricer/internal/pricing"
	mcpricer "github.com/quantgrid/mcpricer/mcpricer_lib"
)

// Caps on client-supplied batch sizes; one request must not pin the engine
// for minutes.
const (
	maxBatchOptions = 65536
	maxBatchPaths   = 1 << 20
)

// PricingHandler handles option pricing and benchmark endpoints
type PricingHandler struct {
	engine *mcpricer.Engine
}

// NewPricingHandler creates a new pricing handler over the given engine
func NewPricingHandler(engine *mcpricer.Engine) *PricingHandler {
	return &PricingHandler{engine: engine}
}

// HealthHandler reports service liveness and the device count
func (h *PricingHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthResponse{
		Status:      "ok",
		DeviceCount: h.engine.DeviceCount(),
	})
}

// DevicesHandler lists the engine's compute devices
func (h *PricingHandler) DevicesHandler(w http.ResponseWriter, r *http.Request) {
	devices := h.engine.Devices()
	resp := models.DevicesResponse{Success: true}
	for _, d := range devices {
		resp.Devices = append(resp.Devices, models.DeviceInfo{
			Index:        d.Index,
			Name:         d.Name,
			Vendor:       d.Vendor,
			ComputeUnits: d.ComputeUnits,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// PriceHandler prices a client-supplied option batch
func (h *PricingHandler) PriceHandler(w http.ResponseWriter, r *http.Request) {
	var req models.PriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Options) == 0 {
		writeError(w, http.StatusBadRequest, "no options supplied")
		return
	}
	if len(req.Options) > maxBatchOptions {
		writeError(w, http.StatusBadRequest, "too many options in batch")
		return
	}
	if req.Paths > maxBatchPaths {
		writeError(w, http.StatusBadRequest, "path count too large")
		return
	}

	opts := make([]pricing.OptionData, len(req.Options))
	for i, in := range req.Options {
		opts[i] = pricing.OptionData{
			S: float32(in.Spot),
			X: float32(in.Strike),
			T: float32(in.Years),
			R: float32(in.Rate),
			V: float32(in.Volatility),
		}
	}

	started := time.Now()
	values, elapsedMs, err := h.engine.PriceBatch(opts, req.Paths, req.Method, req.Seed)
	if err != nil {
		logger.Error.Printf("batch pricing failed: %v", err)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	resp := models.PriceResponse{Success: true}
	for i, v := range values {
		// Analytic reference rides along so clients can judge the
		// Monte Carlo estimate. Inputs were validated by PriceBatch.
		ref, _ := pricing.BlackScholesCall(opts[i])
		resp.Results = append(resp.Results, models.OptionResult{
			Expected:   float64(v.Expected),
			Confidence: float64(v.Confidence),
			Analytic:   float64(ref),
		})
	}
	resp.Meta = models.ResponseMetadata{
		Method:           req.Method,
		Paths:            req.Paths,
		DeviceCount:      h.engine.DeviceCount(),
		OptionCount:      len(opts),
		ProcessingTimeMs: elapsedMs,
	}

	logger.Info.Printf("priced %d options in %v", len(opts), time.Since(started))
	writeJSON(w, http.StatusOK, resp)
}

// BenchmarkHandler runs a full validation benchmark and returns the summary
func (h *PricingHandler) BenchmarkHandler(w http.ResponseWriter, r *http.Request) {
	var req models.BenchmarkRequest
	if r.Body != nil {
		// An empty body selects the default benchmark configuration.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	summary, err := h.engine.RunBenchmark(mcpricer.BenchmarkConfig{
		Method:  req.Method,
		Scaling: req.Scaling,
		Options: req.Options,
		Paths:   req.Paths,
		Seed:    req.Seed,
	})
	if err != nil && summary == nil {
		logger.Error.Printf("benchmark failed: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := models.BenchmarkResponse{
		Success:     true,
		Method:      summary.Method,
		Scaling:     summary.Scaling,
		Options:     summary.Options,
		Paths:       summary.Paths,
		L1Norm:      summary.L1Norm,
		AvgReserve:  summary.AvgReserve,
		Passed:      summary.Passed,
		TotalTimeMs: summary.TotalTimeMs,
	}
	for _, ds := range summary.DeviceStats {
		resp.Devices = append(resp.Devices, models.BenchmarkDeviceStat{
			Index:   ds.Device.Index,
			Name:    ds.Device.Name,
			Options: ds.Options,
			Paths:   ds.Paths,
			TimeMs:  ds.TimeMs,
			Failed:  ds.Failed,
			Error:   ds.Err,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// The status line is already out; the client sees a truncated
		// body, so leave a trace of what failed to marshal.
		logger.Error.Printf("encode %d response: %v", status, err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ErrorResponse{Success: false, Error: msg})
}
