package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(handlers...)
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	return router
}

func serve(router *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCORSWildcard(t *testing.T) {
	mw := NewMiddleware(zap.NewNop().Sugar(), nil)
	router := newTestRouter(mw.CORS([]string{"*"}))

	w := serve(router, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(router, http.MethodGet, "/ping", map[string]string{"Origin": "http://x.test"})
	assert.Equal(t, "http://x.test", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	preflight := serve(router, http.MethodOptions, "/ping", map[string]string{
		"Origin":                         "http://x.test",
		"Access-Control-Request-Method":  http.MethodPut,
		"Access-Control-Request-Headers": "X-Custom-Token, Content-Type",
	})
	assert.Equal(t, http.StatusNoContent, preflight.Code)
	assert.Contains(t, preflight.Header().Get("Access-Control-Allow-Methods"), "PUT")
	assert.Equal(t, "X-Custom-Token, Content-Type", preflight.Header().Get("Access-Control-Allow-Headers"))

	plain := serve(router, http.MethodOptions, "/ping", map[string]string{"Origin": "http://x.test"})
	assert.Contains(t, plain.Header().Get("Access-Control-Allow-Headers"), "Content-Type")
}

func TestCORSAllowList(t *testing.T) {
	mw := NewMiddleware(zap.NewNop().Sugar(), nil)
	router := newTestRouter(mw.CORS([]string{"http://allowed.test"}))

	w := serve(router, http.MethodGet, "/ping", map[string]string{"Origin": "http://allowed.test"})
	assert.Equal(t, "http://allowed.test", w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(router, http.MethodGet, "/ping", map[string]string{"Origin": "http://other.test"})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))

	w = serve(router, http.MethodGet, "/ping", nil)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimit(t *testing.T) {
	mw := NewMiddleware(zap.NewNop().Sugar(), nil)
	router := newTestRouter(mw.RateLimit(6))

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/ping", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(router, http.MethodGet, "/ping", nil).Code)
}

func TestRateLimitDisabled(t *testing.T) {
	mw := NewMiddleware(zap.NewNop().Sugar(), nil)
	router := newTestRouter(mw.RateLimit(0))

	for i := 0; i < 20; i++ {
		assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/ping", nil).Code)
	}
}

func TestRequestID(t *testing.T) {
	mw := NewMiddleware(zap.NewNop().Sugar(), nil)
	router := newTestRouter(mw.RequestID(), mw.RequestLogger())

	w := serve(router, http.MethodGet, "/ping", nil)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	w = serve(router, http.MethodGet, "/ping", map[string]string{RequestIDHeader: "given"})
	assert.Equal(t, "given", w.Header().Get(RequestIDHeader))
}

func TestRecoverer(t *testing.T) {
	mw := NewMiddleware(zap.NewNop().Sugar(), nil)
	router := newTestRouter(mw.Recoverer(), mw.RequestLogger())

	w := serve(router, http.MethodGet, "/panic", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internalServerError")
}
