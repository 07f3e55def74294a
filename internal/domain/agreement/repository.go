package agreement

import (
	"context"
	"time"

	"github.com/papertrails/papertrails/internal/types"
)

type Repository interface {
	// Create stores the agreement and its assigned users
	Create(ctx context.Context, agreement *Agreement) error
	// Update stores all mutable fields; agreement_id is never written
	Update(ctx context.Context, agreement *Agreement) error
	Get(ctx context.Context, id string) (*Agreement, error)
	List(ctx context.Context, filter *types.AgreementFilter) ([]*Agreement, error)
	Count(ctx context.Context, filter *types.AgreementFilter) (int, error)

	SetAssignedUsers(ctx context.Context, agreementID string, userIDs []string) error
	// MarkExpired flips every Ongoing agreement whose expiry is before today
	// and returns how many rows changed
	MarkExpired(ctx context.Context, today time.Time) (int, error)
}

type TypeRepository interface {
	Create(ctx context.Context, agreementType *AgreementType) error
	Get(ctx context.Context, id string) (*AgreementType, error)
	List(ctx context.Context, filter *types.QueryFilter) ([]*AgreementType, error)
}
