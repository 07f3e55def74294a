package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/papertrails/papertrails/internal/api/dto"
	"github.com/papertrails/papertrails/internal/logger"
	"github.com/papertrails/papertrails/internal/service"
	"github.com/papertrails/papertrails/internal/types"
)

type AgreementHandler struct {
	service service.AgreementService
	log     *logger.Logger
}

func NewAgreementHandler(service service.AgreementService, log *logger.Logger) *AgreementHandler {
	return &AgreementHandler{service: service, log: log}
}

// CreateAgreement godoc
// @Summary Create an agreement
// @Description Creates an agreement, allocates its agreement id and notifies its audience
// @Tags Agreements
// @Accept json
// @Produce json
// @Param agreement body dto.CreateAgreementRequest true "Agreement"
// @Success 201 {object} dto.AgreementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /agreements [post]
func (h *AgreementHandler) CreateAgreement(c *gin.Context) {
	var req dto.CreateAgreementRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.CreateAgreement(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetAgreement godoc
// @Summary Get an agreement
// @Tags Agreements
// @Produce json
// @Param id path string true "Agreement ID"
// @Success 200 {object} dto.AgreementResponse
// @Failure 404 {object} ErrorResponse
// @Router /agreements/{id} [get]
func (h *AgreementHandler) GetAgreement(c *gin.Context) {
	resp, err := h.service.GetAgreement(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateAgreement godoc
// @Summary Update an agreement
// @Tags Agreements
// @Accept json
// @Produce json
// @Param id path string true "Agreement ID"
// @Param agreement body dto.UpdateAgreementRequest true "Changes"
// @Success 200 {object} dto.AgreementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /agreements/{id} [put]
func (h *AgreementHandler) UpdateAgreement(c *gin.Context) {
	var req dto.UpdateAgreementRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.UpdateAgreement(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListAgreements godoc
// @Summary List and search agreements
// @Description search matches title, reference, remarks, party name and agreement id.
// @Description status is one of expired, active, upcoming or a literal agreement status.
// @Tags Agreements
// @Produce json
// @Param filter query types.AgreementFilter false "Filter"
// @Success 200 {object} dto.ListAgreementsResponse
// @Router /agreements [get]
// @Router /agreements/search [get]
func (h *AgreementHandler) ListAgreements(c *gin.Context) {
	filter := types.NewAgreementFilter()
	if !bindQuery(c, filter) {
		return
	}

	resp, err := h.service.ListAgreements(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetStats godoc
// @Summary Dashboard counters
// @Tags Agreements
// @Produce json
// @Success 200 {object} dto.AgreementStatsResponse
// @Router /agreements/stats [get]
func (h *AgreementHandler) GetStats(c *gin.Context) {
	resp, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetUsersWithAccess godoc
// @Summary List users with access
// @Tags Agreements
// @Produce json
// @Param id path string true "Agreement ID"
// @Success 200 {object} dto.AgreementAccessResponse
// @Router /agreements/{id}/access [get]
func (h *AgreementHandler) GetUsersWithAccess(c *gin.Context) {
	resp, err := h.service.GetUsersWithAccess(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ManageUserAccess godoc
// @Summary Add or remove an assigned user
// @Description Only the creator or an admin may change access
// @Tags Agreements
// @Accept json
// @Produce json
// @Param id path string true "Agreement ID"
// @Param request body dto.ManageAccessRequest true "Access change"
// @Success 200 {object} dto.ManageAccessResponse
// @Failure 403 {object} ErrorResponse
// @Router /agreements/{id}/access [post]
func (h *AgreementHandler) ManageUserAccess(c *gin.Context) {
	var req dto.ManageAccessRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.ManageUserAccess(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SendTestReminder godoc
// @Summary Send a test reminder
// @Tags Agreements
// @Produce json
// @Param id path string true "Agreement ID"
// @Success 200 {object} dto.TestReminderResponse
// @Router /agreements/{id}/reminders/test [post]
func (h *AgreementHandler) SendTestReminder(c *gin.Context) {
	resp, err := h.service.SendTestReminder(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
