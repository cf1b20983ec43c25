package middleware

import (
	"net/http"
	"slices"
	"time"

	"blog-platform/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "request_id"
)

type Middleware struct {
	logger  *zap.SugaredLogger
	metrics *metrics.Metrics
}

func NewMiddleware(logger *zap.SugaredLogger, metrics *metrics.Metrics) *Middleware {
	return &Middleware{
		logger:  logger,
		metrics: metrics,
	}
}

const (
	corsAllowMethods = "DELETE, GET, HEAD, OPTIONS, PATCH, POST, PUT"
	corsAllowHeaders = "Origin, Content-Type, Accept, Authorization, " + RequestIDHeader
)

// CORS answers preflight requests directly. A "*" entry allows every origin,
// otherwise only listed origins are allowed. Credentials are allowed, so the
// request origin is echoed instead of "*" whenever one is sent. Requested
// headers are echoed back.
func (m *Middleware) CORS(allowedOrigins []string) gin.HandlerFunc {
	allowAll := slices.Contains(allowedOrigins, "*")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		switch {
		case origin == "":
			if allowAll {
				c.Header("Access-Control-Allow-Origin", "*")
			}
		case allowAll || slices.Contains(allowedOrigins, origin):
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			headers := c.GetHeader("Access-Control-Request-Headers")
			if headers == "" {
				headers = corsAllowHeaders
			}
			c.Header("Access-Control-Allow-Methods", corsAllowMethods)
			c.Header("Access-Control-Allow-Headers", headers)
			c.Header("Access-Control-Max-Age", "600")
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RateLimit caps the whole server at rpm requests per minute. Zero disables it.
func (m *Middleware) RateLimit(rpm int) gin.HandlerFunc {
	if rpm <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	limiter := rate.NewLimiter(rate.Limit(float64(rpm)/60.0), max(rpm/6, 1))
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":         http.StatusTooManyRequests,
				"code_type":    "rateLimited",
				"code_message": "Rate limit exceeded",
				"status":       "error",
				"data":         gin.H{},
			})
			return
		}
		c.Next()
	}
}

func (m *Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

func (m *Middleware) RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()

		m.logger.Infow("HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"status", status,
			"size", c.Writer.Size(),
			"duration", duration,
			"remote_addr", c.ClientIP(),
			"request_id", c.GetString(RequestIDKey),
		)

		m.metrics.RecordHTTPRequest(c.Request.Context(), c.Request.Method, route, status, duration)
	}
}

// Recoverer turns a panic into a 500 and logs it with the request.
func (m *Middleware) Recoverer() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		m.logger.Errorw("Panic recovered",
			"panic", recovered,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"request_id", c.GetString(RequestIDKey),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"code":         http.StatusInternalServerError,
			"code_type":    "internalServerError",
			"code_message": "Internal server error",
			"status":       "error",
			"data":         gin.H{},
		})
	})
}
