package testutil

import (
	"context"
	"strings"

	"github.com/papertrails/papertrails/internal/domain/organization"
	"github.com/papertrails/papertrails/internal/types"
	"github.com/samber/lo"
)

// InMemoryOrganizationStore implements organization.Repository
type InMemoryOrganizationStore struct {
	*InMemoryStore[*organization.Organization]
}

func NewInMemoryOrganizationStore() *InMemoryOrganizationStore {
	return &InMemoryOrganizationStore{
		InMemoryStore: NewInMemoryStore[*organization.Organization](),
	}
}

func copyOrganization(o *organization.Organization) *organization.Organization {
	if o == nil {
		return nil
	}
	c := *o
	return &c
}

func organizationFilterFn(filter *types.OrganizationFilter) FilterFunc[*organization.Organization] {
	return func(_ context.Context, o *organization.Organization) bool {
		if !isPublished(o.BaseModel) {
			return false
		}
		if filter == nil {
			return true
		}
		if filter.OrganizationType != "" && o.OrganizationType != filter.OrganizationType {
			return false
		}
		if filter.Name != "" && !strings.Contains(strings.ToLower(o.Name), strings.ToLower(filter.Name)) {
			return false
		}
		return !lo.Contains(filter.ExcludeIDs, o.ID)
	}
}

func (s *InMemoryOrganizationStore) Create(ctx context.Context, o *organization.Organization) error {
	return s.InMemoryStore.Create(ctx, o.ID, copyOrganization(o))
}

func (s *InMemoryOrganizationStore) Get(ctx context.Context, id string) (*organization.Organization, error) {
	o, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyOrganization(o), nil
}

func (s *InMemoryOrganizationStore) List(ctx context.Context, filter *types.OrganizationFilter) ([]*organization.Organization, error) {
	var qf *types.QueryFilter
	if filter != nil {
		qf = filter.QueryFilter
	}
	items, err := s.InMemoryStore.List(ctx, qf, organizationFilterFn(filter), func(a, b *organization.Organization) bool {
		return a.Name < b.Name
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(o *organization.Organization, _ int) *organization.Organization { return copyOrganization(o) }), nil
}

func (s *InMemoryOrganizationStore) Count(ctx context.Context, filter *types.OrganizationFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, organizationFilterFn(filter))
}
