package user

import (
	"context"

	"github.com/papertrails/papertrails/internal/types"
)

type User struct {
	ID           string  `db:"id" json:"id"`
	Email        string  `db:"email" json:"email"`
	FullName     string  `db:"full_name" json:"full_name"`
	DepartmentID *string `db:"department_id" json:"department_id,omitempty"`
	Designation  string  `db:"designation" json:"designation"`
	IsAdmin      bool    `db:"is_admin" json:"is_admin"`
	IsActive     bool    `db:"is_active" json:"is_active"`
	types.BaseModel
}

func NewUser(ctx context.Context, email, fullName string, departmentID *string) *User {
	return &User{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_USER),
		Email:        email,
		FullName:     fullName,
		DepartmentID: departmentID,
		IsActive:     true,
		BaseModel:    types.GetDefaultBaseModel(ctx),
	}
}

// InDepartment reports whether the user's home department is departmentID
func (u *User) InDepartment(departmentID string) bool {
	return u.DepartmentID != nil && *u.DepartmentID == departmentID
}
