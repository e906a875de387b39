package models

// OptionInput is one European call option submitted for pricing
type OptionInput struct {
	Spot       float64 `json:"spot"`
	Strike     float64 `json:"strike"`
	Years      float64 `json:"years"`
	Rate       float64 `json:"rate"`
	Volatility float64 `json:"volatility"`
}

// PriceRequest is a batch pricing request
type PriceRequest struct {
	Options []OptionInput `json:"options"`
	Paths   int           `json:"paths,omitempty"`
	Method  string        `json:"method,omitempty"` // threaded or streamed
	Seed    uint64        `json:"seed,omitempty"`
}

// OptionResult is the Monte Carlo estimate for one option plus the
// closed-form reference
type OptionResult struct {
	Expected   float64 `json:"expected"`
	Confidence float64 `json:"confidence"`
	Analytic   float64 `json:"analytic"`
}

// ResponseMetadata describes how a batch was processed
type ResponseMetadata struct {
	Method           string  `json:"method"`
	Paths            int     `json:"paths"`
	DeviceCount      int     `json:"device_count"`
	OptionCount      int     `json:"option_count"`
	ProcessingTimeMs float64 `json:"processing_time_ms"`
}

// PriceResponse is the response to a batch pricing request
type PriceResponse struct {
	Success bool             `json:"success"`
	Results []OptionResult   `json:"results"`
	Meta    ResponseMetadata `json:"meta"`
}

// DeviceInfo describes one compute device
type DeviceInfo struct {
	Index        int    `json:"index"`
	Name         string `json:"name"`
	Vendor       string `json:"vendor"`
	ComputeUnits int    `json:"compute_units"`
}

// DevicesResponse lists the engine's devices
type DevicesResponse struct {
	Success bool         `json:"success"`
	Devices []DeviceInfo `json:"devices"`
}

// HealthResponse is the health check payload
type HealthResponse struct {
	Status      string `json:"status"`
	DeviceCount int    `json:"device_count"`
}

// BenchmarkRequest triggers a full validation benchmark run
type BenchmarkRequest struct {
	Method  string `json:"method,omitempty"`
	Scaling string `json:"scaling,omitempty"`
	Options int    `json:"options,omitempty"`
	Paths   int    `json:"paths,omitempty"`
	Seed    uint64 `json:"seed,omitempty"`
}

// BenchmarkDeviceStat is one device's share of a benchmark run
type BenchmarkDeviceStat struct {
	Index   int     `json:"index"`
	Name    string  `json:"name"`
	Options int     `json:"options"`
	Paths   int     `json:"paths"`
	TimeMs  float64 `json:"time_ms,omitempty"`
	Failed  bool    `json:"failed,omitempty"`
	Error   string  `json:"error,omitempty"`
}

// BenchmarkResponse is the outcome of a benchmark run
type BenchmarkResponse struct {
	Success     bool                  `json:"success"`
	Method      string                `json:"method"`
	Scaling     string                `json:"scaling"`
	Options     int                   `json:"options"`
	Paths       int                   `json:"paths"`
	L1Norm      float64               `json:"l1_norm"`
	AvgReserve  float64               `json:"average_reserve"`
	Passed      bool                  `json:"passed"`
	TotalTimeMs float64               `json:"total_time_ms"`
	Devices     []BenchmarkDeviceStat `json:"devices"`
}

// ErrorResponse is the generic error payload
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
