package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/papertrails/papertrails/internal/api/dto"
	"github.com/papertrails/papertrails/internal/logger"
	"github.com/papertrails/papertrails/internal/service"
	"github.com/papertrails/papertrails/internal/types"
)

type LetterHandler struct {
	letters    service.LetterService
	references service.ReferenceService
	log        *logger.Logger
}

func NewLetterHandler(letters service.LetterService, references service.ReferenceService, log *logger.Logger) *LetterHandler {
	return &LetterHandler{letters: letters, references: references, log: log}
}

// PreviewReference godoc
// @Summary Preview the next reference number
// @Description Returns the reference number the next letter would get. Nothing is reserved.
// @Tags Letters
// @Produce json
// @Param organization_id query string false "Sending organization"
// @Param recipient_id query string false "Recipient"
// @Param category_id query string false "Category"
// @Param date query string false "Letter date, YYYY-MM-DD"
// @Success 200 {object} dto.ReferencePreviewResponse
// @Failure 404 {object} ErrorResponse
// @Router /letters/reference/preview [get]
func (h *LetterHandler) PreviewReference(c *gin.Context) {
	var req dto.ReferencePreviewRequest
	if !bindQuery(c, &req) {
		return
	}

	resp, err := h.references.Preview(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreateLetter godoc
// @Summary Create a letter
// @Description Creates a letter and assigns its reference number
// @Tags Letters
// @Accept json
// @Produce json
// @Param letter body dto.CreateLetterRequest true "Letter"
// @Success 201 {object} dto.LetterResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /letters [post]
func (h *LetterHandler) CreateLetter(c *gin.Context) {
	var req dto.CreateLetterRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.letters.CreateLetter(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetLetter godoc
// @Summary Get a letter
// @Tags Letters
// @Produce json
// @Param id path string true "Letter ID"
// @Success 200 {object} dto.LetterResponse
// @Failure 404 {object} ErrorResponse
// @Router /letters/{id} [get]
func (h *LetterHandler) GetLetter(c *gin.Context) {
	resp, err := h.letters.GetLetter(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListLetters godoc
// @Summary List letters
// @Tags Letters
// @Produce json
// @Param filter query types.LetterFilter false "Filter"
// @Success 200 {object} dto.ListLettersResponse
// @Router /letters [get]
func (h *LetterHandler) ListLetters(c *gin.Context) {
	filter := types.NewLetterFilter()
	if !bindQuery(c, filter) {
		return
	}

	resp, err := h.letters.ListLetters(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateLetter godoc
// @Summary Update a letter
// @Description Updates subject, body and flags. The reference number never changes.
// @Tags Letters
// @Accept json
// @Produce json
// @Param id path string true "Letter ID"
// @Param letter body dto.UpdateLetterRequest true "Changes"
// @Success 200 {object} dto.LetterResponse
// @Failure 404 {object} ErrorResponse
// @Router /letters/{id} [put]
func (h *LetterHandler) UpdateLetter(c *gin.Context) {
	var req dto.UpdateLetterRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.letters.UpdateLetter(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
