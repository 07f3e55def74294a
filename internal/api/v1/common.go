package v1

import (
	"github.com/gin-gonic/gin"
	ierr "github.com/papertrails/papertrails/internal/errors"
)

// ErrorResponse documents the body written by the error middleware
type ErrorResponse struct {
	Success bool `json:"success" example:"false"`
	Error   struct {
		Message string         `json:"message" example:"Invalid request format"`
		Details map[string]any `json:"details,omitempty"`
	} `json:"error"`
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return false
	}
	return true
}

func bindQuery(c *gin.Context, filter any) bool {
	if err := c.ShouldBindQuery(filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid query parameters").
			Mark(ierr.ErrValidation))
		return false
	}
	return true
}
