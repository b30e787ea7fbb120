package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/flavorquiz/backend/config"
	"github.com/flavorquiz/backend/internal/domain"
	"github.com/flavorquiz/backend/internal/usecase"
)

// TestMain sets up test environment before running tests
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type fakeTaxonomy struct {
	entries []domain.ProductCategoryEntry
	err     error
}

func (f fakeTaxonomy) Entries(ctx context.Context) ([]domain.ProductCategoryEntry, error) {
	return f.entries, f.err
}

var testTaxonomy = fakeTaxonomy{entries: []domain.ProductCategoryEntry{
	{Name: "Mango Tango", Primary: "Fruit", Secondary: "Tropical", Tertiary: "Mango"},
	{Name: "Pineapple Punch", Primary: "Fruit", Secondary: "Tropical", Tertiary: "Pineapple"},
	{Name: "Vanilla Bean", Primary: "Dessert", Secondary: "Cream", Tertiary: "Vanilla"},
}}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			Environment:    "test",
			AllowedOrigins: []string{"http://localhost:*", "https://quiz.example.com"},
		},
		Matching:  domain.DefaultComparisonOptions(),
		RateLimit: config.RateLimitConfig{PerIP: 600, Burst: 100},
	}
}

// setupTestRouter creates a test router over a real answer service
func setupTestRouter(t *testing.T, taxonomy domain.TaxonomyRepository) *gin.Engine {
	t.Helper()
	cfg := testConfig()
	service := usecase.NewAnswerService(nil, taxonomy, usecase.AnswerServiceConfig{Defaults: cfg.Matching}, nil)
	return SetupRouter(cfg, NewHandler(service, nil), nil)
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeCompare(t *testing.T, w *httptest.ResponseRecorder) CompareResponse {
	t.Helper()
	var resp CompareResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealthCheckEndpoint(t *testing.T) {
	t.Run("returns healthy status", func(t *testing.T) {
		router := setupTestRouter(t, nil)

		w := doJSON(router, http.MethodGet, "/health", "")
		require.Equal(t, http.StatusOK, w.Code)

		var response map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "healthy", response["status"])
		assert.Equal(t, "flavorquiz-backend", response["service"])
		assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	})

	t.Run("accepts GET requests only", func(t *testing.T) {
		router := setupTestRouter(t, nil)

		for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch} {
			w := doJSON(router, method, "/health", "")
			assert.Equal(t, http.StatusNotFound, w.Code, "method %s", method)
		}
	})
}

func TestCompareEndpoint(t *testing.T) {
	router := setupTestRouter(t, nil)

	t.Run("exact match", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/v1/answers/compare",
			`{"userAnswer":"  MANGO ","correctAnswer":"Mango"}`)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeCompare(t, w)
		assert.Equal(t, domain.StatusPerfect, resp.Result.Status)
		assert.Equal(t, domain.AwardFull, resp.Result.Award)
		assert.Equal(t, "✓ Perfect! Exact match.", resp.Result.Feedback)
		assert.Equal(t, usecase.ToneSuccess, resp.Display.Tone)
	})

	t.Run("forbidden confusion", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/v1/answers/compare",
			`{"userAnswer":"Blue Raspberry","correctAnswer":"Blueberry"}`)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeCompare(t, w)
		assert.Equal(t, domain.StatusForbidden, resp.Result.Status)
		assert.Equal(t, usecase.ToneCritical, resp.Display.Tone)
	})

	t.Run("request options override defaults", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/v1/answers/compare",
			`{"userAnswer":"Blue Raspberry","correctAnswer":"Blueberry","options":{"strictFlavors":false}}`)
		require.Equal(t, http.StatusOK, w.Code)

		assert.NotEqual(t, domain.StatusForbidden, decodeCompare(t, w).Result.Status)
	})

	t.Run("missing correct answer", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/v1/answers/compare", `{"userAnswer":"Mango"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/v1/answers/compare", `{"userAnswer":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Error)
		assert.Equal(t, w.Header().Get(RequestIDHeader), resp.RequestID)
	})

	t.Run("threshold out of range", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/v1/answers/compare",
			`{"userAnswer":"Mango","correctAnswer":"Mango","options":{"closeThreshold":1.5}}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCompareCategoryEndpoint(t *testing.T) {
	t.Run("category match", func(t *testing.T) {
		router := setupTestRouter(t, testTaxonomy)

		w := doJSON(router, http.MethodPost, "/api/v1/answers/compare/category",
			`{"userAnswer":"Pineapple Punch","expectedAnswer":"Mango Tango","question":"Which flavor is this?"}`)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeCompare(t, w)
		assert.Equal(t, domain.StatusCategoryMatch, resp.Result.Status)
		assert.Equal(t, domain.MatchTypeCategory, resp.Result.MatchType)
		require.NotNil(t, resp.Result.Category)
		assert.Equal(t, domain.LevelPrimary, resp.Result.Category.MatchedLevel)
		assert.Equal(t, []string{"Fruit"}, resp.Result.Category.SharedCategories)
		assert.Equal(t, `✓ Correct category! "Pineapple Punch" and "Mango Tango" are both Fruit.`, resp.Result.Feedback)
	})

	t.Run("different category", func(t *testing.T) {
		router := setupTestRouter(t, testTaxonomy)

		w := doJSON(router, http.MethodPost, "/api/v1/answers/compare/category",
			`{"userAnswer":"Vanilla Bean","expectedAnswer":"Mango Tango","question":"Which flavor is this?"}`)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeCompare(t, w)
		assert.Equal(t, domain.StatusIncorrect, resp.Result.Status)
		assert.Equal(t, domain.MatchTypeNone, resp.Result.MatchType)
		assert.Nil(t, resp.Result.Category)
	})

	t.Run("taxonomy unavailable", func(t *testing.T) {
		router := setupTestRouter(t, fakeTaxonomy{err: domain.ErrTaxonomyUnavailable})

		w := doJSON(router, http.MethodPost, "/api/v1/answers/compare/category",
			`{"userAnswer":"Vanilla Bean","expectedAnswer":"Mango Tango"}`)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestRulesEndpoints(t *testing.T) {
	router := setupTestRouter(t, nil)

	t.Run("flavors", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/v1/rules/flavors", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Distinctions map[string]domain.FlavorDistinctionRule `json:"distinctions"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp.Distinctions["blueberry"].Forbidden, "blue raspberry")
	})

	t.Run("spellings keep declaration order", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/v1/rules/spellings", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Variations []domain.SpellingVariation `json:"variations"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Variations, len(domain.DefaultSpellingVariations))
		assert.Equal(t, "raspberry", resp.Variations[0].Canonical)
	})
}

func TestTaxonomyEndpoint(t *testing.T) {
	router := setupTestRouter(t, testTaxonomy)

	t.Run("found", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/v1/taxonomy/mango%20tango", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Entry domain.ProductCategoryEntry `json:"entry"`
			Path  string                      `json:"path"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Mango Tango", resp.Entry.Name)
		assert.Equal(t, "Fruit > Tropical > Mango", resp.Path)
	})

	t.Run("not found", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/v1/taxonomy/Durian", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUnconfiguredService(t *testing.T) {
	router := SetupRouter(testConfig(), NewHandler(nil, nil), nil)

	w := doJSON(router, http.MethodPost, "/api/v1/answers/compare", `{"userAnswer":"a","correctAnswer":"b"}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "not configured")
}

func TestCORSIntegration(t *testing.T) {
	router := setupTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRecoveryIntegration(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	cfg := testConfig()
	router := SetupRouter(cfg, NewHandler(nil, nil), zap.New(core))
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	w := doJSON(router, http.MethodGet, "/panic", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestRateLimitIntegration(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{PerIP: 1, Burst: 2}
	router := SetupRouter(cfg, NewHandler(nil, nil), nil)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, doJSON(router, http.MethodGet, "/api/v1/rules/flavors", "").Code)
	}

	assert.Equal(t, []int{http.StatusServiceUnavailable, http.StatusServiceUnavailable, http.StatusTooManyRequests}, codes)

	// health is outside the limited group
	assert.Equal(t, http.StatusOK, doJSON(router, http.MethodGet, "/health", "").Code)
}
