package dto

import (
	"context"

	"github.com/papertrails/papertrails/internal/domain/department"
	"github.com/papertrails/papertrails/internal/types"
	"github.com/papertrails/papertrails/internal/validator"
)

type CreateDepartmentRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	Executive   bool   `json:"executive"`
}

func (r *CreateDepartmentRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateDepartmentRequest) ToDepartment(ctx context.Context) *department.Department {
	return department.NewDepartment(ctx, r.Name, r.Description, r.Executive)
}

type DepartmentResponse struct {
	*department.Department
}

type ListDepartmentsResponse = types.ListResponse[*DepartmentResponse]

// CreateDepartmentPermissionRequest grants UserID access to the department in the path.
// The approver is the calling user and must belong to an executive department.
type CreateDepartmentPermissionRequest struct {
	UserID         string               `json:"user_id" validate:"required"`
	PermissionType types.PermissionType `json:"permission_type" validate:"required"`
}

func (r *CreateDepartmentPermissionRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.PermissionType.Validate()
}

type DepartmentPermissionResponse struct {
	*department.Permission
}
