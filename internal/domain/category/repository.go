package category

import (
	"context"

	"github.com/papertrails/papertrails/internal/types"
)

type Repository interface {
	Create(ctx context.Context, category *Category) error
	Get(ctx context.Context, id string) (*Category, error)
	List(ctx context.Context, filter *types.QueryFilter) ([]*Category, error)
}
