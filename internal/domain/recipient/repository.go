package recipient

import (
	"context"

	"github.com/papertrails/papertrails/internal/types"
)

type Repository interface {
	Create(ctx context.Context, recipient *Recipient) error
	Get(ctx context.Context, id string) (*Recipient, error)
	GetByIDs(ctx context.Context, ids []string) ([]*Recipient, error)
	List(ctx context.Context, filter *types.RecipientFilter) ([]*Recipient, error)
}
