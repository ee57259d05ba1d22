package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const CtxRequestID = "request_id"

// RequestLogger tags each request with an id (echoed in X-Request-ID) and
// logs one line per request once it completes.
func RequestLogger(log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(CtxRequestID, requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []any{
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"status", status,
			"latency", time.Since(start).String(),
			"ip", c.ClientIP(),
			"user_id", c.GetInt64(CtxUserID),
		}

		switch {
		case len(c.Errors) > 0:
			log.Errorw("request", append(fields, "errors", c.Errors.String())...)
			report(c, fmt.Errorf("%s", c.Errors.String()))
		case status >= http.StatusInternalServerError:
			log.Errorw("request", fields...)
		case status >= http.StatusBadRequest:
			log.Warnw("request", fields...)
		default:
			log.Infow("request", fields...)
		}
	}
}

// Recovery turns panics into a JSON 500 and logs the stack.
func Recovery(log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if recovered := recover(); recovered != nil {
				err := fmt.Errorf("panic: %v", recovered)
				log.Errorw("panic recovered",
					"request_id", c.GetString(CtxRequestID),
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"error", err,
					"stack", string(debug.Stack()),
				)
				report(c, err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "INTERNAL_SERVER_ERROR",
						"message": "Internal Server Error",
					},
				})
			}
		}()
		c.Next()
	}
}

// report forwards err to Sentry when the sentrygin middleware installed a hub.
func report(c *gin.Context, err error) {
	if hub := sentrygin.GetHubFromContext(c); hub != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetTag("request_id", c.GetString(CtxRequestID))
			scope.SetUser(sentry.User{ID: fmt.Sprint(c.GetInt64(CtxUserID))})
			hub.CaptureException(err)
		})
	}
}
