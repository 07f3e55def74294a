package testutil

import (
	"context"

	"github.com/papertrails/papertrails/internal/domain/recipient"
	"github.com/papertrails/papertrails/internal/types"
	"github.com/samber/lo"
)

// InMemoryRecipientStore implements recipient.Repository
type InMemoryRecipientStore struct {
	*InMemoryStore[*recipient.Recipient]
}

func NewInMemoryRecipientStore() *InMemoryRecipientStore {
	return &InMemoryRecipientStore{
		InMemoryStore: NewInMemoryStore[*recipient.Recipient](),
	}
}

func (s *InMemoryRecipientStore) Create(ctx context.Context, r *recipient.Recipient) error {
	cp := *r
	return s.InMemoryStore.Create(ctx, r.ID, &cp)
}

func (s *InMemoryRecipientStore) Get(ctx context.Context, id string) (*recipient.Recipient, error) {
	r, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	cp := *r
	return &cp, nil
}

func (s *InMemoryRecipientStore) GetByIDs(ctx context.Context, ids []string) ([]*recipient.Recipient, error) {
	return s.InMemoryStore.List(ctx, nil, func(_ context.Context, r *recipient.Recipient) bool {
		return isPublished(r.BaseModel) && lo.Contains(ids, r.ID)
	}, nil)
}

func (s *InMemoryRecipientStore) List(ctx context.Context, filter *types.RecipientFilter) ([]*recipient.Recipient, error) {
	var qf *types.QueryFilter
	if filter != nil {
		qf = filter.QueryFilter
	}
	return s.InMemoryStore.List(ctx, qf, func(_ context.Context, r *recipient.Recipient) bool {
		if !isPublished(r.BaseModel) {
			return false
		}
		if filter == nil {
			return true
		}
		orgID := lo.FromPtr(r.OrganizationID)
		if filter.OrganizationID != "" && orgID != filter.OrganizationID {
			return false
		}
		return filter.ExcludeOrganizationID == "" || orgID != filter.ExcludeOrganizationID
	}, func(a, b *recipient.Recipient) bool {
		return a.FullName < b.FullName
	})
}
