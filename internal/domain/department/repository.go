package department

import (
	"context"

	"github.com/papertrails/papertrails/internal/types"
)

type Repository interface {
	Create(ctx context.Context, department *Department) error
	Get(ctx context.Context, id string) (*Department, error)
	List(ctx context.Context, filter *types.DepartmentFilter) ([]*Department, error)

	CreatePermission(ctx context.Context, permission *Permission) error
	ListPermissions(ctx context.Context, departmentID string) ([]*Permission, error)
}
