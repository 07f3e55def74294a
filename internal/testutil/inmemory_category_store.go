package testutil

import (
	"context"

	"github.com/papertrails/papertrails/internal/domain/category"
	"github.com/papertrails/papertrails/internal/types"
)

// InMemoryCategoryStore implements category.Repository
type InMemoryCategoryStore struct {
	*InMemoryStore[*category.Category]
}

func NewInMemoryCategoryStore() *InMemoryCategoryStore {
	return &InMemoryCategoryStore{
		InMemoryStore: NewInMemoryStore[*category.Category](),
	}
}

func (s *InMemoryCategoryStore) Create(ctx context.Context, c *category.Category) error {
	cp := *c
	return s.InMemoryStore.Create(ctx, c.ID, &cp)
}

func (s *InMemoryCategoryStore) Get(ctx context.Context, id string) (*category.Category, error) {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	cp := *c
	return &cp, nil
}

func (s *InMemoryCategoryStore) List(ctx context.Context, filter *types.QueryFilter) ([]*category.Category, error) {
	return s.InMemoryStore.List(ctx, filter, func(_ context.Context, c *category.Category) bool {
		return isPublished(c.BaseModel)
	}, func(a, b *category.Category) bool {
		return a.Name < b.Name
	})
}
