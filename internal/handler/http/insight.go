package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/akg580/review-insights/internal/service"
	"github.com/akg580/review-insights/pkg/httputil"
)

// InsightHandler serves the aggregate statistics endpoints.
type InsightHandler struct {
	service *service.InsightService
	logger  *slog.Logger
}

// NewInsightHandler creates a new insight HTTP handler.
func NewInsightHandler(svc *service.InsightService, logger *slog.Logger) *InsightHandler {
	return &InsightHandler{service: svc, logger: logger}
}

// Summary handles GET /api/v1/insights/summary
func (h *InsightHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: summary})
}

// ListCategories handles GET /api/v1/insights/categories
func (h *InsightHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	insights, err := h.service.Categories(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: insights})
}

// GetCategory handles GET /api/v1/insights/categories/{category}, where
// category is a slug such as "ethnic-wear".
func (h *InsightHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	insight, err := h.service.Category(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: insight})
}
