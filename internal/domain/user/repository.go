package user

import (
	"context"

	"github.com/papertrails/papertrails/internal/types"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByIDs(ctx context.Context, ids []string) ([]*User, error)
	ListByFilter(ctx context.Context, filter *types.UserFilter) ([]*User, error)

	// ListByDepartment returns users whose home department is departmentID
	ListByDepartment(ctx context.Context, departmentID string) ([]*User, error)
	// ListByDepartmentPermission returns users holding any permission on departmentID
	ListByDepartmentPermission(ctx context.Context, departmentID string) ([]*User, error)
	// ListExecutives returns users whose home department is executive
	ListExecutives(ctx context.Context) ([]*User, error)
}
