package server

import (
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// SystemStatusResponse reports process and host health.
type SystemStatusResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds int64   `json:"uptime_seconds"`
	CPUPercent    float64 `json:"cpu_percent"`
	RAMPercent    float64 `json:"ram_percent"`
	GoVersion     string  `json:"go_version"`
	Goroutines    int     `json:"goroutines"`
	Timestamp     string  `json:"timestamp"`
}

// SystemHandlers serves system monitoring endpoints.
type SystemHandlers struct {
	startedAt time.Time
	// stats is swapped in tests; it returns CPU and RAM usage percentages.
	stats func() (float64, float64)
	log   zerolog.Logger
}

// NewSystemHandlers creates system handlers; uptime counts from now.
func NewSystemHandlers(log zerolog.Logger) *SystemHandlers {
	h := &SystemHandlers{
		startedAt: time.Now(),
		log:       log.With().Str("handler", "system").Logger(),
	}
	h.stats = h.getSystemStats
	return h
}

// HandleSystemStatus returns uptime and resource usage
// GET /api/system/status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	h.log.Debug().Msg("Getting system status")

	cpuPercent, ramPercent := h.stats()
	response := SystemStatusResponse{
		Status:        "healthy",
		UptimeSeconds: int64(time.Since(h.startedAt).Seconds()),
		CPUPercent:    cpuPercent,
		RAMPercent:    ramPercent,
		GoVersion:     runtime.Version(),
		Goroutines:    runtime.NumGoroutine(),
		Timestamp:     time.Now().Format(time.RFC3339),
	}

	writeJSON(w, http.StatusOK, response, h.log)
}

// getSystemStats calculates CPU and RAM usage percentages.
// CPU is sampled over 100ms to keep the endpoint fast.
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	// Get memory statistics (instant, no blocking)
	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data interface{}, log zerolog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
