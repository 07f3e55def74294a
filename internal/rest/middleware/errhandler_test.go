package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/papertrails/papertrails/internal/config"
	ierr "github.com/papertrails/papertrails/internal/errors"
	"github.com/papertrails/papertrails/internal/logger"
	"github.com/papertrails/papertrails/internal/sentry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newErrorRouter(handlerErr error) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logger.NewNopLogger()

	r := gin.New()
	r.Use(ErrorHandler(log, sentry.NewSentryService(config.GetDefaultConfig(), log)))
	r.GET("/letters", func(c *gin.Context) {
		if handlerErr != nil {
			c.Error(handlerErr)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestErrorHandler(t *testing.T) {
	err := ierr.NewError("category must be set before generating reference number").
		WithHint("category must be set before generating reference number").
		WithReportableDetails(map[string]any{"id": "cat_missing"}).
		Mark(ierr.ErrValidation)

	w := httptest.NewRecorder()
	newErrorRouter(err).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/letters", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body ierr.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, ierr.ErrCodeValidation, body.Error.Code)
	assert.Equal(t, "category must be set before generating reference number", body.Error.Display)
	assert.Equal(t, "cat_missing", body.Error.Details["id"])
}

func TestErrorHandler_Concurrency(t *testing.T) {
	w := httptest.NewRecorder()
	newErrorRouter(ierr.NewError("lock timeout").Mark(ierr.ErrConcurrency)).
		ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/letters", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"concurrency_error"`)
}

func TestErrorHandler_NoError(t *testing.T) {
	w := httptest.NewRecorder()
	newErrorRouter(nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/letters", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}
