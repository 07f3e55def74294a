package cron

import (
	"net/http"

	"github.com/gin-gonic/gin"
	ierr "github.com/papertrails/papertrails/internal/errors"
	"github.com/papertrails/papertrails/internal/logger"
	"github.com/papertrails/papertrails/internal/service"
	"github.com/papertrails/papertrails/internal/types"
)

type AgreementCronHandler struct {
	sweep  service.SweepService
	logger *logger.Logger
}

func NewAgreementCronHandler(sweep service.SweepService, logger *logger.Logger) *AgreementCronHandler {
	return &AgreementCronHandler{sweep: sweep, logger: logger}
}

// SweepAgreements runs the daily sweep on demand. The optional date query
// parameter (YYYY-MM-DD) replays the sweep for another day.
func (h *AgreementCronHandler) SweepAgreements(c *gin.Context) {
	today := types.Today()
	if date := c.Query("date"); date != "" {
		parsed, err := types.ParseDate(date)
		if err != nil {
			c.Error(ierr.WithError(err).
				WithHint("date must be in YYYY-MM-DD format").
				Mark(ierr.ErrValidation))
			return
		}
		today = parsed
	}

	h.logger.Infow("starting agreement sweep cron job", "date", today.Format(types.DateLayout))

	resp, err := h.sweep.Run(c.Request.Context(), today)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
