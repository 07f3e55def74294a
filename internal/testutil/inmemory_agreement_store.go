package testutil

import (
	"context"
	"strings"
	"time"

	"github.com/papertrails/papertrails/internal/domain/agreement"
	"github.com/papertrails/papertrails/internal/types"
	"github.com/samber/lo"
)

// InMemoryAgreementStore implements agreement.Repository. Party and type
// names are looked up in the given stores for text search.
type InMemoryAgreementStore struct {
	*InMemoryStore[*agreement.Agreement]
	organizations  *InMemoryOrganizationStore
	agreementTypes *InMemoryAgreementTypeStore
}

func NewInMemoryAgreementStore(organizations *InMemoryOrganizationStore, agreementTypes *InMemoryAgreementTypeStore) *InMemoryAgreementStore {
	return &InMemoryAgreementStore{
		InMemoryStore:  NewInMemoryStore[*agreement.Agreement](),
		organizations:  organizations,
		agreementTypes: agreementTypes,
	}
}

func copyAgreement(a *agreement.Agreement) *agreement.Agreement {
	if a == nil {
		return nil
	}
	cp := *a
	cp.AssignedUserIDs = append([]string{}, a.AssignedUserIDs...)
	return &cp
}

func (s *InMemoryAgreementStore) Create(ctx context.Context, a *agreement.Agreement) error {
	return s.InMemoryStore.Create(ctx, a.ID, copyAgreement(a))
}

// Update keeps the stored agreement_id and assigned users
func (s *InMemoryAgreementStore) Update(ctx context.Context, a *agreement.Agreement) error {
	existing, err := s.InMemoryStore.Get(ctx, a.ID)
	if err != nil {
		return err
	}
	updated := copyAgreement(a)
	updated.AgreementID = existing.AgreementID
	updated.AssignedUserIDs = existing.AssignedUserIDs
	return s.InMemoryStore.Update(ctx, a.ID, updated)
}

func (s *InMemoryAgreementStore) Get(ctx context.Context, id string) (*agreement.Agreement, error) {
	a, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyAgreement(a), nil
}

func (s *InMemoryAgreementStore) List(ctx context.Context, filter *types.AgreementFilter) ([]*agreement.Agreement, error) {
	if filter == nil {
		filter = types.NewAgreementFilter()
	}
	qf := filter.QueryFilter.OrDefault()
	items, err := s.InMemoryStore.List(ctx, qf, s.filterFn(filter), createdAtOrder(qf, func(a *agreement.Agreement) types.BaseModel { return a.BaseModel }))
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(a *agreement.Agreement, _ int) *agreement.Agreement { return copyAgreement(a) }), nil
}

func (s *InMemoryAgreementStore) Count(ctx context.Context, filter *types.AgreementFilter) (int, error) {
	if filter == nil {
		filter = types.NewAgreementFilter()
	}
	return s.InMemoryStore.Count(ctx, s.filterFn(filter))
}

func (s *InMemoryAgreementStore) SetAssignedUsers(ctx context.Context, agreementID string, userIDs []string) error {
	existing, err := s.InMemoryStore.Get(ctx, agreementID)
	if err != nil {
		return err
	}
	updated := copyAgreement(existing)
	updated.AssignedUserIDs = lo.Uniq(userIDs)
	return s.InMemoryStore.Update(ctx, agreementID, updated)
}

func (s *InMemoryAgreementStore) MarkExpired(ctx context.Context, today time.Time) (int, error) {
	due, err := s.InMemoryStore.List(ctx, nil, func(_ context.Context, a *agreement.Agreement) bool {
		return isPublished(a.BaseModel) &&
			a.AgreementStatus == types.AgreementStatusOngoing &&
			types.TruncateToDay(a.ExpiryDate).Before(types.TruncateToDay(today))
	}, nil)
	if err != nil {
		return 0, err
	}

	for _, a := range due {
		updated := copyAgreement(a)
		updated.AgreementStatus = types.AgreementStatusExpired
		updated.UpdatedAt = time.Now().UTC()
		if err := s.InMemoryStore.Update(ctx, a.ID, updated); err != nil {
			return 0, err
		}
	}
	return len(due), nil
}

func (s *InMemoryAgreementStore) filterFn(filter *types.AgreementFilter) FilterFunc[*agreement.Agreement] {
	today := filter.Today
	if today.IsZero() {
		today = types.Today()
	}
	today = types.TruncateToDay(today)

	return func(ctx context.Context, a *agreement.Agreement) bool {
		if !isPublished(a.BaseModel) {
			return false
		}

		partyName := s.partyName(ctx, a)
		if filter.Query != "" && !containsFold(filter.Query,
			a.Title, a.AgreementReference, a.Remarks, partyName, a.AgreementID) {
			return false
		}
		if filter.PartyName != "" && !containsFold(filter.PartyName, partyName) {
			return false
		}
		if filter.AgreementTypeName != "" && !containsFold(filter.AgreementTypeName, s.typeName(ctx, a)) {
			return false
		}
		if filter.DepartmentID != "" && lo.FromPtr(a.DepartmentID) != filter.DepartmentID {
			return false
		}
		if filter.AgreementStatus != "" && a.AgreementStatus != filter.AgreementStatus {
			return false
		}

		switch filter.SearchStatus {
		case "":
			return true
		case types.AgreementSearchStatusExpired:
			return a.ExpiryDate.Before(today)
		case types.AgreementSearchStatusActive:
			return !a.StartDate.After(today) && !a.ExpiryDate.Before(today)
		case types.AgreementSearchStatusUpcoming:
			return a.StartDate.After(today)
		default:
			return string(a.AgreementStatus) == filter.SearchStatus
		}
	}
}

func (s *InMemoryAgreementStore) partyName(ctx context.Context, a *agreement.Agreement) string {
	if s.organizations == nil || a.PartyID == nil {
		return ""
	}
	o, err := s.organizations.InMemoryStore.Get(ctx, *a.PartyID)
	if err != nil {
		return ""
	}
	return o.Name
}

func (s *InMemoryAgreementStore) typeName(ctx context.Context, a *agreement.Agreement) string {
	if s.agreementTypes == nil || a.AgreementTypeID == nil {
		return ""
	}
	t, err := s.agreementTypes.InMemoryStore.Get(ctx, *a.AgreementTypeID)
	if err != nil {
		return ""
	}
	return t.Name
}

func containsFold(needle string, haystacks ...string) bool {
	needle = strings.ToLower(needle)
	return lo.SomeBy(haystacks, func(h string) bool {
		return h != "" && strings.Contains(strings.ToLower(h), needle)
	})
}

// InMemoryAgreementTypeStore implements agreement.TypeRepository
type InMemoryAgreementTypeStore struct {
	*InMemoryStore[*agreement.AgreementType]
}

func NewInMemoryAgreementTypeStore() *InMemoryAgreementTypeStore {
	return &InMemoryAgreementTypeStore{
		InMemoryStore: NewInMemoryStore[*agreement.AgreementType](),
	}
}

func (s *InMemoryAgreementTypeStore) Create(ctx context.Context, t *agreement.AgreementType) error {
	cp := *t
	return s.InMemoryStore.Create(ctx, t.ID, &cp)
}

func (s *InMemoryAgreementTypeStore) Get(ctx context.Context, id string) (*agreement.AgreementType, error) {
	t, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	cp := *t
	return &cp, nil
}

func (s *InMemoryAgreementTypeStore) List(ctx context.Context, filter *types.QueryFilter) ([]*agreement.AgreementType, error) {
	return s.InMemoryStore.List(ctx, filter, func(_ context.Context, t *agreement.AgreementType) bool {
		return isPublished(t.BaseModel) && t.IsActive
	}, func(a, b *agreement.AgreementType) bool {
		return a.Name < b.Name
	})
}
