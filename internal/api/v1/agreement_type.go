package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/papertrails/papertrails/internal/api/dto"
	"github.com/papertrails/papertrails/internal/logger"
	"github.com/papertrails/papertrails/internal/service"
	"github.com/papertrails/papertrails/internal/types"
)

type AgreementTypeHandler struct {
	service service.AgreementTypeService
	log     *logger.Logger
}

func NewAgreementTypeHandler(service service.AgreementTypeService, log *logger.Logger) *AgreementTypeHandler {
	return &AgreementTypeHandler{service: service, log: log}
}

func (h *AgreementTypeHandler) CreateAgreementType(c *gin.Context) {
	var req dto.CreateAgreementTypeRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.CreateAgreementType(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *AgreementTypeHandler) GetAgreementType(c *gin.Context) {
	resp, err := h.service.GetAgreementType(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AgreementTypeHandler) ListAgreementTypes(c *gin.Context) {
	filter := types.NewDefaultQueryFilter()
	if !bindQuery(c, filter) {
		return
	}

	resp, err := h.service.ListAgreementTypes(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
