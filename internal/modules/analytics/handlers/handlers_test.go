package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/joshinitinofficial/algotest-trade-visualizer/internal/modules/analytics"
	testingpkg "github.com/joshinitinofficial/algotest-trade-visualizer/internal/testing"
)

func setupRouter(maxUpload int64) http.Handler {
	log := zerolog.New(nil).Level(zerolog.Disabled)
	service := analytics.NewService(testingpkg.IST, log)
	handler := NewHandler(service, decimal.NewFromInt(1000000), maxUpload, log)

	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

type envelope struct {
	Data     map[string]interface{} `json:"data"`
	Metadata map[string]interface{} `json:"metadata"`
}

func TestHandleAnalyze_JSONBody(t *testing.T) {
	router := setupRouter(1 << 20)

	req := httptest.NewRequest(http.MethodPost, "/analyze?capital=1,000,000", bytes.NewReader(testingpkg.NewWheelDocument()))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, ContentTypeJSON, rec.Header().Get("Content-Type"))

	var resp envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	summary := resp.Data["summary"].(map[string]interface{})
	assert.Equal(t, "700", summary["total_pnl"])
	assert.Equal(t, "0.07", summary["return_pct"])
	assert.Equal(t, "1000000", summary["capital"])
	assert.Equal(t, resp.Data["run_id"], resp.Metadata["run_id"])
	assert.NotEmpty(t, resp.Metadata["timestamp"])
}

func TestHandleAnalyze_DefaultCapital(t *testing.T) {
	router := setupRouter(1 << 20)

	req := httptest.NewRequest(http.MethodPost, "/analyze", bytes.NewReader(testingpkg.NewWheelDocument()))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	summary := resp.Data["summary"].(map[string]interface{})
	assert.Equal(t, "1000000", summary["capital"])
}

func TestHandleAnalyze_MultipartUpload(t *testing.T) {
	router := setupRouter(1 << 20)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(UploadField, "wheel.clktrd")
	require.NoError(t, err)
	_, err = part.Write(testingpkg.NewWheelDocument())
	require.NoError(t, err)
	require.NoError(t, mw.WriteField(CapitalParam, "70000"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/analyze", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	summary := resp.Data["summary"].(map[string]interface{})
	assert.Equal(t, "1", summary["return_pct"])
}

func TestHandleAnalyze_MultipartMissingFile(t *testing.T) {
	router := setupRouter(1 << 20)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField(CapitalParam, "100"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/analyze", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"file"`)
}

func TestHandleAnalyze_Msgpack(t *testing.T) {
	router := setupRouter(1 << 20)

	req := httptest.NewRequest(http.MethodPost, "/analyze", bytes.NewReader(testingpkg.NewWheelDocument()))
	req.Header.Set("Accept", "application/msgpack")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ContentTypeMsgpack, rec.Header().Get("Content-Type"))

	var resp map[string]interface{}
	require.NoError(t, msgpack.Unmarshal(rec.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	summary := data["summary"].(map[string]interface{})
	assert.Equal(t, "700", summary["total_pnl"])
}

func TestHandleAnalyze_Errors(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		body     string
		status   int
		contains string
	}{
		{
			name:     "malformed entry",
			url:      "/analyze",
			body:     `{"data":{"trades":[{"Ticker":"X","Position":2,"TradedPrice":1,"Quantity":1,"TradedTime":"2024-01-01T09:15:00"}]}}`,
			status:   http.StatusUnprocessableEntity,
			contains: `"field":"Position"`,
		},
		{
			name:     "not json",
			url:      "/analyze",
			body:     `not a document`,
			status:   http.StatusUnprocessableEntity,
			contains: `"index":-1`,
		},
		{
			name:     "missing trades",
			url:      "/analyze",
			body:     `{"data":{}}`,
			status:   http.StatusUnprocessableEntity,
			contains: `"field":"data.trades"`,
		},
		{
			name:     "negative capital",
			url:      "/analyze?capital=-5",
			body:     string(testingpkg.Document()),
			status:   http.StatusBadRequest,
			contains: "capital",
		},
		{
			name:     "unparseable capital",
			url:      "/analyze?capital=lots",
			body:     string(testingpkg.Document()),
			status:   http.StatusBadRequest,
			contains: "capital",
		},
	}

	router := setupRouter(1 << 20)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tt.url, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.contains)
		})
	}
}

func TestHandleAnalyze_TooLarge(t *testing.T) {
	router := setupRouter(64)

	req := httptest.NewRequest(http.MethodPost, "/analyze", bytes.NewReader(testingpkg.NewWheelDocument()))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestRegisterRoutes(t *testing.T) {
	router := setupRouter(1 << 20)

	req := httptest.NewRequest(http.MethodGet, "/analyze", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
