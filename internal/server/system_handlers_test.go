package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemHandlers_HandleSystemStatus(t *testing.T) {
	h := NewSystemHandlers(zerolog.New(nil).Level(zerolog.Disabled))
	h.startedAt = time.Now().Add(-90 * time.Second)
	h.stats = func() (float64, float64) { return 12.5, 40 }

	req := httptest.NewRequest(http.MethodGet, "/api/system/status", nil)
	rec := httptest.NewRecorder()
	h.HandleSystemStatus(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp SystemStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.GreaterOrEqual(t, resp.UptimeSeconds, int64(90))
	assert.Equal(t, 12.5, resp.CPUPercent)
	assert.Equal(t, 40.0, resp.RAMPercent)
	assert.Equal(t, runtime.Version(), resp.GoVersion)
	assert.Positive(t, resp.Goroutines)
}

func TestSystemHandlers_GetSystemStats(t *testing.T) {
	h := NewSystemHandlers(zerolog.New(nil).Level(zerolog.Disabled))

	cpuPercent, ramPercent := h.getSystemStats()
	assert.GreaterOrEqual(t, cpuPercent, 0.0)
	assert.GreaterOrEqual(t, ramPercent, 0.0)
	assert.LessOrEqual(t, ramPercent, 100.0)
}
