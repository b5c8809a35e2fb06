package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/SscSPs/ecompta_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestStructuredLogging_InjectsLoggerInRequestContext(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(base))
	r.GET("/ping", func(c *gin.Context) {
		middleware.GetLoggerFromCtx(c.Request.Context()).Info("inside")
		assert.Same(t, middleware.GetLoggerFromContext(c), middleware.GetLoggerFromCtx(c.Request.Context()))
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "req-42", w.Header().Get(middleware.RequestIDHeader))
	assert.Contains(t, buf.String(), `"msg":"inside"`)
	assert.Contains(t, buf.String(), `"request_id":"req-42"`)
	assert.Contains(t, buf.String(), `"msg":"Request completed"`)
}

func TestStructuredLogging_GeneratesRequestID(t *testing.T) {
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Len(t, w.Header().Get(middleware.RequestIDHeader), 36)
}

func TestGetLoggerFromCtx_Fallback(t *testing.T) {
	assert.Same(t, slog.Default(), middleware.GetLoggerFromCtx(httptest.NewRequest(http.MethodGet, "/", nil).Context()))
}

func TestActorMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(middleware.ActorMiddleware())
	var got string
	r.GET("/", func(c *gin.Context) { got = middleware.GetActorFromContext(c) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.ActorHeader, "  alice ")
	r.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "alice", got)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, middleware.DefaultActor, got)
}

func TestActorMiddleware_TruncatesByCharacter(t *testing.T) {
	r := gin.New()
	r.Use(middleware.ActorMiddleware())
	var got string
	r.GET("/", func(c *gin.Context) { got = middleware.GetActorFromContext(c) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.ActorHeader, "a"+strings.Repeat("é", 150))
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, middleware.MaxActorLength, utf8.RuneCountInString(got))
	assert.Equal(t, "a"+strings.Repeat("é", middleware.MaxActorLength-1), got)
}

func TestRateLimit(t *testing.T) {
	lim, err := middleware.NewMemoryLimiter("2-M")
	require.NoError(t, err)

	r := gin.New()
	r.Use(middleware.RateLimit(lim))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimit_PerCompany(t *testing.T) {
	lim, err := middleware.NewMemoryLimiter("1-H")
	require.NoError(t, err)

	r := gin.New()
	r.Use(middleware.RateLimit(lim))
	r.GET("/companies/:company_id", func(c *gin.Context) { c.Status(http.StatusOK) })

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	first := get("/companies/c1")
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", first.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusTooManyRequests, get("/companies/c1").Code)
	assert.Equal(t, http.StatusOK, get("/companies/c2").Code)
}

func TestStructuredLogging_LevelFollowsStatus(t *testing.T) {
	var buf bytes.Buffer
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(slog.New(slog.NewJSONHandler(&buf, nil))))
	r.GET("/companies/:company_id/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })
	r.GET("/companies/:company_id/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/companies/c1/boom", nil))
	assert.Contains(t, buf.String(), `"level":"ERROR"`)
	assert.Contains(t, buf.String(), `"company_id":"c1"`)
	assert.Contains(t, buf.String(), `"route":"/companies/:company_id/boom"`)

	buf.Reset()
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/companies/c1/missing", nil))
	assert.Contains(t, buf.String(), `"level":"WARN"`)
	assert.Contains(t, buf.String(), `"actor":"system"`)
}

func TestNewMemoryLimiter_InvalidRate(t *testing.T) {
	_, err := middleware.NewMemoryLimiter("lots")
	assert.Error(t, err)
}
