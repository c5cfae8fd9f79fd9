package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akg580/review-insights/internal/domain"
	"github.com/akg580/review-insights/internal/repository/memory"
	"github.com/akg580/review-insights/internal/seed"
	"github.com/akg580/review-insights/internal/service"
	"github.com/akg580/review-insights/pkg/health"
	"github.com/akg580/review-insights/pkg/middleware"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := memory.NewReviewRepository()

	reviews, err := seed.Default()
	require.NoError(t, err)
	_, err = seed.Populate(context.Background(), repo, reviews, logger)
	require.NoError(t, err)

	reviewSvc := service.NewReviewService(repo, nil, nil, logger)
	insightSvc := service.NewInsightService(repo, nil, logger)
	exportSvc := service.NewExportService(reviewSvc, insightSvc, logger)

	return NewRouter(reviewSvc, insightSvc, exportSvc, health.NewHandler(), logger, RouterConfig{
		CORS:              middleware.DefaultCORSConfig(),
		PprofAllowedCIDRs: []string{"127.0.0.1/32"},
		InsightsMaxAge:    60,
	})
}

func do(t *testing.T, h http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func TestHealthEndpoints(t *testing.T) {
	h := newTestRouter(t)

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/health/live", nil).Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/health/ready", nil).Code)

	rec := do(t, h, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestPprof_ForbiddenOutsideAllowlist(t *testing.T) {
	h := newTestRouter(t)
	rec := do(t, h, http.MethodGet, "/debug/pprof/", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListReviews(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/v1/reviews", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		Data       []domain.Review `json:"data"`
		TotalCount int             `json:"total_count"`
		Page       int             `json:"page"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, 7, page.TotalCount)
	assert.Equal(t, 1, page.Page)
	require.NotEmpty(t, page.Data)
	assert.Equal(t, "8", page.Data[0].ID)
}

func TestListReviews_Filters(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/v1/reviews?brand=DenimCo&rating=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		Data []domain.Review `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Data, 1)
	assert.Equal(t, "2", page.Data[0].ID)
}

func TestListReviews_Pagination(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/v1/reviews?page=2&per_page=3", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		Data    []domain.Review `json:"data"`
		HasNext bool            `json:"has_next"`
		HasPrev bool            `json:"has_prev"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Data, 3)
	assert.Equal(t, "5", page.Data[0].ID)
	assert.True(t, page.HasNext)
	assert.True(t, page.HasPrev)
}

func TestListReviews_BadParameters(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/v1/reviews?rating=five", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_PARAMETER", decode(t, rec).Error.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/reviews?date_range=decade", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_INPUT", decode(t, rec).Error.Code)
}

func TestGetReview(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/v1/reviews/3", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got domain.Review
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &got))
	assert.Equal(t, "Cotton Kurta", got.ProductName)
	assert.Equal(t, domain.LabelPositive, got.Sentiment)
}

func TestGetReview_NotFound(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/v1/reviews/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decode(t, rec).Error.Code)
}

func TestFacets(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/v1/reviews/facets", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var facets struct {
		Brands     []string `json:"brands"`
		Categories []string `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &facets))
	assert.Contains(t, facets.Brands, "DenimCo")
	assert.Contains(t, facets.Categories, "Ethnic Wear")
}

func TestCreateReview(t *testing.T) {
	h := newTestRouter(t)

	body := []byte(`{
		"product_name": "Silk Saree",
		"brand": "Traditional Touch",
		"category": "Ethnic Wear",
		"rating": 5,
		"comment": "excellent drape and beautiful colour",
		"source": "app",
		"user_age": 30
	}`)
	rec := do(t, h, http.MethodPost, "/api/v1/reviews", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created domain.Review
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, domain.LabelPositive, created.Sentiment)
	assert.Equal(t, "/api/v1/reviews/"+created.ID, rec.Header().Get("Location"))

	list := do(t, h, http.MethodGet, "/api/v1/reviews", nil)
	var page struct {
		Data       []domain.Review `json:"data"`
		TotalCount int             `json:"total_count"`
	}
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &page))
	assert.Equal(t, 8, page.TotalCount)
	assert.Equal(t, created.ID, page.Data[0].ID)
}

func TestCreateReview_UserIDFromHeader(t *testing.T) {
	h := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews",
		strings.NewReader(`{"product_name":"Tee","brand":"B","category":"Tops","rating":3}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.UserIDHeader, "u-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created domain.Review
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &created))
	assert.Equal(t, "u-42", created.UserID)
	assert.Equal(t, domain.SourceWeb, created.Source)
}

func TestCreateReview_RejectsClientSentiment(t *testing.T) {
	h := newTestRouter(t)

	body := []byte(`{"product_name":"Tee","brand":"B","category":"Tops","rating":1,"sentiment":"positive"}`)
	rec := do(t, h, http.MethodPost, "/api/v1/reviews", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_INPUT", decode(t, rec).Error.Code)
}

func TestCreateReview_ValidationFailure(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/v1/reviews", []byte(`{"brand":"B","category":"Tops","rating":9}`))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	env := decode(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Fields, "product_name")
	assert.Contains(t, env.Error.Fields, "rating")
}

func TestCreateReview_RequiresJSONContentType(t *testing.T) {
	h := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.Equal(t, "UNSUPPORTED_MEDIA_TYPE", decode(t, rec).Error.Code)
}

func TestAnalyzeSentiment(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/v1/sentiment/analyze", []byte(`{"comment":"bad fit and poor stitching","rating":2}`))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res struct {
		Label            string   `json:"label"`
		NegativeCount    int      `json:"negative_count"`
		NegativeKeywords []string `json:"negative_keywords"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &res))
	assert.Equal(t, "negative", res.Label)
	assert.Equal(t, 3, res.NegativeCount)
	assert.Equal(t, []string{"bad", "poor"}, res.NegativeKeywords)
}

func TestInsightsSummary(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/v1/insights/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "private, max-age=60", rec.Header().Get("Cache-Control"))

	var summary domain.DashboardSummary
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &summary))
	assert.Equal(t, 7, summary.TotalReviews)
	assert.Len(t, summary.Categories, 3)
	assert.Len(t, summary.AgeGroups, 4)
}

func TestInsightsCategories(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/v1/insights/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var insights []domain.CategoryInsight
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &insights))
	require.Len(t, insights, 3)
	assert.Equal(t, "Dresses", insights[0].Category)

	rec = do(t, h, http.MethodGet, "/api/v1/insights/categories/ethnic-wear", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var one domain.CategoryInsight
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &one))
	assert.Equal(t, "Ethnic Wear", one.Category)
	assert.Equal(t, 2, one.ReviewCount)

	rec = do(t, h, http.MethodGet, "/api/v1/insights/categories/shoes", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExport_CSV(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/v1/exports/reviews.csv?brand=DenimCo", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), `attachment; filename="reviews-`)

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	assert.Len(t, lines, 4)
}

func TestExport_PDF(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/v1/exports/age-groups.pdf", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))
}

func TestExport_BadPath(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/v1/exports/orders.csv", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_PARAMETER", decode(t, rec).Error.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/exports/reviews.xlsx", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExport_EmptyResult(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/v1/exports/reviews.csv?q=nothing-matches-this", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_INPUT", decode(t, rec).Error.Code)
}

func TestCORS_Preflight(t *testing.T) {
	h := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/reviews", nil)
	req.Header.Set("Origin", "https://dashboard.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
