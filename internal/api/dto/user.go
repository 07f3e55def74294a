package dto

import (
	"context"

	"github.com/papertrails/papertrails/internal/domain/user"
	"github.com/papertrails/papertrails/internal/types"
	"github.com/papertrails/papertrails/internal/validator"
)

type CreateUserRequest struct {
	Email        string  `json:"email" validate:"required,email"`
	FullName     string  `json:"full_name" validate:"required,max=255"`
	DepartmentID *string `json:"department_id"`
	Designation  string  `json:"designation" validate:"omitempty,max=255"`
	IsAdmin      bool    `json:"is_admin"`
}

func (r *CreateUserRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateUserRequest) ToUser(ctx context.Context) *user.User {
	u := user.NewUser(ctx, r.Email, r.FullName, r.DepartmentID)
	u.Designation = r.Designation
	u.IsAdmin = r.IsAdmin
	return u
}

type UserResponse struct {
	*user.User
}

func NewUserResponse(u *user.User) *UserResponse {
	return &UserResponse{User: u}
}

type ListUsersResponse = types.ListResponse[*UserResponse]
