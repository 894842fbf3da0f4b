package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JaimeStill/detox/internal/recommendations"
	"github.com/JaimeStill/detox/pkg/handlers"
	"github.com/JaimeStill/detox/pkg/routes"
)

// Request is the body accepted by the analyze and summary endpoints.
type Request struct {
	Usage []float64 `json:"usage"`
}

// AnalyzeResponse wraps a successful bundle.
type AnalyzeResponse struct {
	Error  bool                    `json:"error"`
	Bundle *recommendations.Bundle `json:"bundle"`
}

// SummaryResponse wraps a rendered report.
type SummaryResponse struct {
	Report string `json:"report"`
}

// Handler provides HTTP endpoints for usage analysis.
type Handler struct {
	sys         System
	logger      *slog.Logger
	maxBodySize int64
}

// NewHandler creates a Handler. Request bodies larger than maxBodySize are rejected.
func NewHandler(sys System, logger *slog.Logger, maxBodySize int64) *Handler {
	return &Handler{
		sys:         sys,
		logger:      logger.With("handler", "analysis"),
		maxBodySize: maxBodySize,
	}
}

// Routes returns the route group definition for analysis endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Tags: []string{"Analysis"},
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/analyze", Handler: h.Analyze, OpenAPI: analyzeOp},
			{Method: "GET", Pattern: "/analyze/samples", Handler: h.Samples, OpenAPI: samplesOp},
			{Method: "POST", Pattern: "/summary", Handler: h.Summary, OpenAPI: summaryOp},
		},
	}
}

// Analyze runs the full pipeline for the posted usage snapshot.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	req, err := h.decode(w, r)
	if err != nil {
		h.fail(w, err)
		return
	}

	b, err := h.sys.Analyze(r.Context(), req.Usage)
	if err != nil {
		h.fail(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, AnalyzeResponse{Bundle: b})
}

// Summary renders the text report for the posted usage snapshot. Clients
// sending Accept: text/plain receive the report body directly.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	req, err := h.decode(w, r)
	if err != nil {
		h.fail(w, err)
		return
	}

	report, err := h.sys.Summarize(r.Context(), req.Usage)
	if err != nil {
		h.fail(w, err)
		return
	}

	if strings.HasPrefix(r.Header.Get("Accept"), "text/plain") {
		handlers.RespondText(w, http.StatusOK, report)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, SummaryResponse{Report: report})
}

// Samples returns bundles for the built-in reference users.
func (h *Handler) Samples(w http.ResponseWriter, r *http.Request) {
	results, err := h.sys.Samples(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, results)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (Request, error) {
	if h.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return Request{}, err
		}
		return Request{}, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}

	return req, nil
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	status := MapHTTPStatus(err)
	if f, ok := NewFailure(err); ok {
		h.logger.Warn("request rejected", "kind", f.Kind, "error", err)
		handlers.RespondJSON(w, status, f)
		return
	}
	handlers.RespondError(w, h.logger, status, err)
}
