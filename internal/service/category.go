package service

import (
	"context"

	"github.com/papertrails/papertrails/internal/api/dto"
	"github.com/papertrails/papertrails/internal/domain/category"
	"github.com/papertrails/papertrails/internal/types"
	"github.com/samber/lo"
)

type CategoryService interface {
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	GetCategory(ctx context.Context, id string) (*dto.CategoryResponse, error)
	ListCategories(ctx context.Context, filter *types.QueryFilter) (*dto.ListCategoriesResponse, error)
}

type categoryService struct {
	ServiceParams
}

func NewCategoryService(params ServiceParams) CategoryService {
	return &categoryService{ServiceParams: params}
}

func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c := req.ToCategory(ctx)
	if err := s.CategoryRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return &dto.CategoryResponse{Category: c}, nil
}

func (s *categoryService) GetCategory(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	c, err := s.CategoryRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.CategoryResponse{Category: c}, nil
}

func (s *categoryService) ListCategories(ctx context.Context, filter *types.QueryFilter) (*dto.ListCategoriesResponse, error) {
	filter = filter.OrDefault()
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	categories, err := s.CategoryRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := lo.Map(categories, func(c *category.Category, _ int) *dto.CategoryResponse {
		return &dto.CategoryResponse{Category: c}
	})
	resp := types.NewListResponse(items, len(items), filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}
