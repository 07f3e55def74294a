package dto

import (
	"context"

	"github.com/papertrails/papertrails/internal/domain/category"
	"github.com/papertrails/papertrails/internal/types"
	"github.com/papertrails/papertrails/internal/validator"
)

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=10"`
}

func (r *CreateCategoryRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateCategoryRequest) ToCategory(ctx context.Context) *category.Category {
	return category.NewCategory(ctx, r.Name)
}

type CategoryResponse struct {
	*category.Category
}

type ListCategoriesResponse = types.ListResponse[*CategoryResponse]
