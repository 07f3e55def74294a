package department

import (
	"context"
	"time"

	"github.com/papertrails/papertrails/internal/types"
)

// Department groups users. Members of an executive department see every
// agreement in the system.
type Department struct {
	ID          string `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
	Executive   bool   `db:"executive" json:"executive"`
	types.BaseModel
}

func NewDepartment(ctx context.Context, name, description string, executive bool) *Department {
	return &Department{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_DEPARTMENT),
		Name:        name,
		Description: description,
		Executive:   executive,
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}
}

// Permission grants a user access to a department other than their own
type Permission struct {
	ID             string               `db:"id" json:"id"`
	UserID         string               `db:"user_id" json:"user_id"`
	DepartmentID   string               `db:"department_id" json:"department_id"`
	PermissionType types.PermissionType `db:"permission_type" json:"permission_type"`
	ApprovedBy     *string              `db:"approved_by" json:"approved_by,omitempty"`
	CreatedAt      time.Time            `db:"created_at" json:"created_at"`
}

func NewPermission(userID, departmentID string, permissionType types.PermissionType, approvedBy *string) *Permission {
	return &Permission{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_DEPARTMENT_PERMISSION),
		UserID:         userID,
		DepartmentID:   departmentID,
		PermissionType: permissionType,
		ApprovedBy:     approvedBy,
		CreatedAt:      time.Now().UTC(),
	}
}
