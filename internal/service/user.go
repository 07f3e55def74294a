package service

import (
	"context"

	"github.com/papertrails/papertrails/internal/api/dto"
	"github.com/papertrails/papertrails/internal/domain/user"
	"github.com/papertrails/papertrails/internal/types"
	"github.com/samber/lo"
)

type UserService interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
	GetUser(ctx context.Context, id string) (*dto.UserResponse, error)
	ListUsers(ctx context.Context, filter *types.UserFilter) (*dto.ListUsersResponse, error)
}

type userService struct {
	ServiceParams
}

func NewUserService(params ServiceParams) UserService {
	return &userService{ServiceParams: params}
}

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u := req.ToUser(ctx)
	if u.DepartmentID != nil {
		if _, err := s.DepartmentRepo.Get(ctx, *u.DepartmentID); err != nil {
			return nil, err
		}
	}

	if err := s.UserRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	return dto.NewUserResponse(u), nil
}

func (s *userService) GetUser(ctx context.Context, id string) (*dto.UserResponse, error) {
	u, err := s.UserRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(u), nil
}

func (s *userService) ListUsers(ctx context.Context, filter *types.UserFilter) (*dto.ListUsersResponse, error) {
	if filter == nil {
		filter = types.NewUserFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	if err := filter.QueryFilter.Validate(); err != nil {
		return nil, err
	}

	users, err := s.UserRepo.ListByFilter(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := lo.Map(users, func(u *user.User, _ int) *dto.UserResponse {
		return dto.NewUserResponse(u)
	})
	resp := types.NewListResponse(items, len(items), filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}
