package letter

import (
	"context"

	"github.com/papertrails/papertrails/internal/types"
)

type Repository interface {
	// Create stores the letter together with its copies, attachments and references
	Create(ctx context.Context, letter *Letter) error
	// Update stores the mutable fields; reference_number is never written
	Update(ctx context.Context, letter *Letter) error
	Get(ctx context.Context, id string) (*Letter, error)
	GetByReferenceNumber(ctx context.Context, referenceNumber string) (*Letter, error)
	List(ctx context.Context, filter *types.LetterFilter) ([]*Letter, error)
	Count(ctx context.Context, filter *types.LetterFilter) (int, error)
}
