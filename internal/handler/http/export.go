package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/akg580/review-insights/internal/export"
	"github.com/akg580/review-insights/internal/service"
	"github.com/akg580/review-insights/pkg/httputil"
)

// ExportHandler serves CSV and PDF downloads.
type ExportHandler struct {
	service *service.ExportService
	logger  *slog.Logger
}

// NewExportHandler creates a new export HTTP handler.
func NewExportHandler(svc *service.ExportService, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{service: svc, logger: logger}
}

// Export handles GET /api/v1/exports/{dataset}.{format}. The reviews dataset
// honours the same search and filter parameters as the review list.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	dataset, err := export.ParseDataset(chi.URLParam(r, "dataset"))
	if err != nil {
		writeBadParam(w, err)
		return
	}
	format, err := export.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		writeBadParam(w, err)
		return
	}
	criteria, err := criteriaFromQuery(r)
	if err != nil {
		writeBadParam(w, err)
		return
	}

	file, err := h.service.Export(r.Context(), service.ExportRequest{
		Dataset:  dataset,
		Format:   format,
		Criteria: criteria,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteFile(w, file.ContentType, file.Filename, file.Body)
}

func writeBadParam(w http.ResponseWriter, err error) {
	httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
		Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: err.Error()},
	})
}
