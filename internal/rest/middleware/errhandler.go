package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	ierr "github.com/papertrails/papertrails/internal/errors"
	"github.com/papertrails/papertrails/internal/logger"
	"github.com/papertrails/papertrails/internal/sentry"
	"github.com/papertrails/papertrails/internal/types"
)

// ErrorHandler renders the last handler error. Server side failures are
// logged and reported to sentry.
func ErrorHandler(logger *logger.Logger, sentrySvc *sentry.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := ierr.HTTPStatusFromErr(err)

		if status >= http.StatusInternalServerError {
			logger.Errorw("request failed",
				"method", c.Request.Method,
				"path", c.FullPath(),
				"status", status,
				"request_id", types.GetRequestID(c.Request.Context()),
				"error", err,
			)
			if status != http.StatusServiceUnavailable {
				sentrySvc.CaptureException(err)
			}
		}

		c.JSON(status, ierr.NewErrorResponse(err))
	}
}
