package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/akg580/review-insights/internal/service"
	"github.com/akg580/review-insights/pkg/httputil"
	"github.com/akg580/review-insights/pkg/middleware"
	"github.com/akg580/review-insights/pkg/pagination"
	"github.com/akg580/review-insights/pkg/validator"
)

// ReviewHandler handles HTTP requests for review and sentiment endpoints.
type ReviewHandler struct {
	service *service.ReviewService
	logger  *slog.Logger
}

// NewReviewHandler creates a new review HTTP handler.
func NewReviewHandler(svc *service.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{service: svc, logger: logger}
}

// --- Request DTOs ---

// SubmitReviewRequest is the JSON body of POST /api/v1/reviews. There is no
// sentiment field; a body that carries one is rejected.
type SubmitReviewRequest struct {
	ProductID        string `json:"product_id" validate:"max=64"`
	UserID           string `json:"user_id" validate:"max=64"`
	ProductName      string `json:"product_name" validate:"required,max=255"`
	Brand            string `json:"brand" validate:"required,max=100"`
	Category         string `json:"category" validate:"required,max=100"`
	Rating           int    `json:"rating" validate:"required,min=1,max=5"`
	Comment          string `json:"comment" validate:"max=5000"`
	Source           string `json:"source" validate:"omitempty,oneof=mobile web app"`
	Date             string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	ImageURL         string `json:"image_url" validate:"omitempty,url"`
	UserAge          *int   `json:"user_age" validate:"omitempty,min=1,max=120"`
	PurchaseVerified bool   `json:"purchase_verified"`
}

// AnalyzeRequest is the JSON body of POST /api/v1/sentiment/analyze.
type AnalyzeRequest struct {
	Comment string `json:"comment" validate:"max=5000"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
}

// --- Handlers ---

// ListReviews handles GET /api/v1/reviews
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	criteria, err := criteriaFromQuery(r)
	if err != nil {
		writeBadParam(w, err)
		return
	}

	result, err := h.service.List(r.Context(), criteria, pagination.FromRequest(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

// GetReview handles GET /api/v1/reviews/{id}
func (h *ReviewHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	review, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: review})
}

// CreateReview handles POST /api/v1/reviews. The user id falls back to the
// X-User-ID header when the body omits it.
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req SubmitReviewRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	userID := req.UserID
	if userID == "" {
		userID = r.Header.Get(middleware.UserIDHeader)
	}

	review, err := h.service.Submit(r.Context(), &service.SubmitReviewInput{
		ProductID:        req.ProductID,
		UserID:           userID,
		ProductName:      req.ProductName,
		Brand:            req.Brand,
		Category:         req.Category,
		Rating:           req.Rating,
		Comment:          req.Comment,
		Source:           req.Source,
		Date:             req.Date,
		ImageURL:         req.ImageURL,
		UserAge:          req.UserAge,
		PurchaseVerified: req.PurchaseVerified,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.Header().Set("Location", "/api/v1/reviews/"+review.ID)
	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: review})
}

// Facets handles GET /api/v1/reviews/facets
func (h *ReviewHandler) Facets(w http.ResponseWriter, r *http.Request) {
	facets, err := h.service.Facets(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: facets})
}

// AnalyzeSentiment handles POST /api/v1/sentiment/analyze
func (h *ReviewHandler) AnalyzeSentiment(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	res, err := h.service.Analyze(r.Context(), service.AnalyzeInput{Comment: req.Comment, Rating: req.Rating})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: res})
}
