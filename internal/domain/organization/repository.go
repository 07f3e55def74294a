package organization

import (
	"context"

	"github.com/papertrails/papertrails/internal/types"
)

type Repository interface {
	Create(ctx context.Context, org *Organization) error
	Get(ctx context.Context, id string) (*Organization, error)
	List(ctx context.Context, filter *types.OrganizationFilter) ([]*Organization, error)
	Count(ctx context.Context, filter *types.OrganizationFilter) (int, error)
}
