// Package handlers provides HTTP handlers for trade analysis.
package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/joshinitinofficial/algotest-trade-visualizer/internal/domain"
	"github.com/joshinitinofficial/algotest-trade-visualizer/internal/modules/analytics"
)

// UploadField is the multipart field carrying the trade document.
const UploadField = "file"

// CapitalParam names the capital query parameter and form field.
const CapitalParam = "capital"

// multipartMemory is how much of a multipart upload is held in memory before
// spilling to temporary files.
const multipartMemory = 8 << 20

// Handler handles analysis HTTP requests
type Handler struct {
	service        *analytics.Service
	defaultCapital decimal.Decimal
	maxUploadBytes int64
	log            zerolog.Logger
}

// NewHandler creates a new analysis handler
func NewHandler(
	service *analytics.Service,
	defaultCapital decimal.Decimal,
	maxUploadBytes int64,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		service:        service,
		defaultCapital: defaultCapital,
		maxUploadBytes: maxUploadBytes,
		log:            log.With().Str("handler", "analytics").Logger(),
	}
}

// HandleAnalyze analyzes an uploaded trade document.
//
// The document is either the raw request body or the "file" field of a
// multipart form. Capital comes from the "capital" form field or query
// parameter and falls back to the configured default.
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	}

	body, capitalRaw, cleanup, err := h.readUpload(r)
	if err != nil {
		h.writeAnalysisError(w, r, err)
		return
	}
	defer cleanup()

	capital, err := h.parseCapital(capitalRaw)
	if err != nil {
		h.writeAnalysisError(w, r, err)
		return
	}

	report, err := h.service.AnalyzeDocument(r.Context(), body, capital)
	if err != nil {
		h.writeAnalysisError(w, r, err)
		return
	}

	h.write(w, r, http.StatusOK, map[string]interface{}{
		"data": report,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
			"run_id":    report.RunID,
		},
	})
}

// readUpload returns the document reader and the raw capital value.
func (h *Handler) readUpload(r *http.Request) (io.Reader, string, func(), error) {
	noop := func() {}
	capital := r.URL.Query().Get(CapitalParam)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return r.Body, capital, noop, nil
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, "", noop, err
		}
		return nil, "", noop, domain.NewDocumentError(UploadField, "invalid multipart upload", err)
	}
	cleanup := func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			h.log.Warn().Err(err).Msg("Failed to remove multipart temp files")
		}
	}

	if v := r.MultipartForm.Value[CapitalParam]; len(v) > 0 && v[0] != "" {
		capital = v[0]
	}

	file, _, err := r.FormFile(UploadField)
	if err != nil {
		cleanup()
		return nil, "", noop, domain.NewDocumentError(UploadField, "field is missing", err)
	}

	return file, capital, func() {
		file.Close()
		cleanup()
	}, nil
}

// parseCapital reads a capital amount; thousands separators are accepted.
func (h *Handler) parseCapital(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if raw == "" {
		return h.defaultCapital, nil
	}

	capital, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", domain.ErrInvalidCapital, raw)
	}
	if capital.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s", domain.ErrInvalidCapital, capital)
	}
	return capital, nil
}

func (h *Handler) writeAnalysisError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		tooLarge  *http.MaxBytesError
		malformed *domain.MalformedInputError
	)

	switch {
	case errors.As(err, &tooLarge):
		h.log.Warn().Int64("limit", tooLarge.Limit).Msg("Upload too large")
		h.writeError(w, r, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("upload exceeds %d bytes", tooLarge.Limit))
	case errors.As(err, &malformed):
		h.log.Info().Err(err).Msg("Rejected malformed trade document")
		body := map[string]interface{}{
			"error": malformed.Error(),
			"field": malformed.Field,
			"index": malformed.Index,
		}
		h.write(w, r, http.StatusUnprocessableEntity, body)
	case errors.Is(err, domain.ErrInvalidCapital):
		h.writeError(w, r, http.StatusBadRequest, err.Error())
	default:
		h.log.Error().Err(err).Msg("Analysis failed")
		h.writeError(w, r, http.StatusInternalServerError, "analysis failed")
	}
}

func (h *Handler) write(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	contentType := negotiate(r)
	payload, err := encode(contentType, data)
	if err != nil {
		h.log.Error().Err(err).Str("content_type", contentType).Msg("Failed to encode response")
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if _, err := w.Write(payload); err != nil {
		h.log.Error().Err(err).Msg("Failed to write response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.write(w, r, status, map[string]string{"error": message})
}
