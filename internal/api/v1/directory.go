package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/papertrails/papertrails/internal/api/dto"
	"github.com/papertrails/papertrails/internal/logger"
	"github.com/papertrails/papertrails/internal/service"
	"github.com/papertrails/papertrails/internal/types"
)

// OrganizationHandler serves organizations, the senders, recipients and
// vendors letters and agreements refer to
type OrganizationHandler struct {
	service service.OrganizationService
	log     *logger.Logger
}

func NewOrganizationHandler(service service.OrganizationService, log *logger.Logger) *OrganizationHandler {
	return &OrganizationHandler{service: service, log: log}
}

func (h *OrganizationHandler) CreateOrganization(c *gin.Context) {
	var req dto.CreateOrganizationRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.CreateOrganization(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *OrganizationHandler) GetOrganization(c *gin.Context) {
	resp, err := h.service.GetOrganization(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *OrganizationHandler) ListOrganizations(c *gin.Context) {
	filter := types.NewOrganizationFilter()
	if !bindQuery(c, filter) {
		return
	}

	resp, err := h.service.ListOrganizations(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

type CategoryHandler struct {
	service service.CategoryService
	log     *logger.Logger
}

func NewCategoryHandler(service service.CategoryService, log *logger.Logger) *CategoryHandler {
	return &CategoryHandler{service: service, log: log}
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.CreateCategory(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	resp, err := h.service.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	filter := types.NewDefaultQueryFilter()
	if !bindQuery(c, filter) {
		return
	}

	resp, err := h.service.ListCategories(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

type RecipientHandler struct {
	service service.RecipientService
	log     *logger.Logger
}

func NewRecipientHandler(service service.RecipientService, log *logger.Logger) *RecipientHandler {
	return &RecipientHandler{service: service, log: log}
}

func (h *RecipientHandler) CreateRecipient(c *gin.Context) {
	var req dto.CreateRecipientRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.CreateRecipient(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *RecipientHandler) GetRecipient(c *gin.Context) {
	resp, err := h.service.GetRecipient(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *RecipientHandler) ListRecipients(c *gin.Context) {
	filter := types.NewRecipientFilter()
	if !bindQuery(c, filter) {
		return
	}

	resp, err := h.service.ListRecipients(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

type DepartmentHandler struct {
	service service.DepartmentService
	log     *logger.Logger
}

func NewDepartmentHandler(service service.DepartmentService, log *logger.Logger) *DepartmentHandler {
	return &DepartmentHandler{service: service, log: log}
}

func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	var req dto.CreateDepartmentRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.CreateDepartment(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *DepartmentHandler) GetDepartment(c *gin.Context) {
	resp, err := h.service.GetDepartment(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	filter := types.NewDepartmentFilter()
	if !bindQuery(c, filter) {
		return
	}

	resp, err := h.service.ListDepartments(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GrantPermission godoc
// @Summary Grant a department permission
// @Description The calling user approves the grant and must belong to an executive department
// @Tags Departments
// @Accept json
// @Produce json
// @Param id path string true "Department ID"
// @Param request body dto.CreateDepartmentPermissionRequest true "Permission"
// @Success 201 {object} dto.DepartmentPermissionResponse
// @Failure 403 {object} ErrorResponse
// @Router /departments/{id}/permissions [post]
func (h *DepartmentHandler) GrantPermission(c *gin.Context) {
	var req dto.CreateDepartmentPermissionRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.GrantPermission(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *DepartmentHandler) ListPermissions(c *gin.Context) {
	resp, err := h.service.ListPermissions(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

type UserHandler struct {
	service service.UserService
	log     *logger.Logger
}

func NewUserHandler(service service.UserService, log *logger.Logger) *UserHandler {
	return &UserHandler{service: service, log: log}
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.CreateUser(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	resp, err := h.service.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	filter := types.NewUserFilter()
	if !bindQuery(c, filter) {
		return
	}

	resp, err := h.service.ListUsers(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
