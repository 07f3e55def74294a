package testutil

import (
	"context"

	"github.com/papertrails/papertrails/internal/domain/letter"
	ierr "github.com/papertrails/papertrails/internal/errors"
	"github.com/papertrails/papertrails/internal/types"
	"github.com/samber/lo"
)

// InMemoryLetterStore implements letter.Repository
type InMemoryLetterStore struct {
	*InMemoryStore[*letter.Letter]
}

func NewInMemoryLetterStore() *InMemoryLetterStore {
	return &InMemoryLetterStore{
		InMemoryStore: NewInMemoryStore[*letter.Letter](),
	}
}

func copyLetter(l *letter.Letter) *letter.Letter {
	if l == nil {
		return nil
	}
	cp := *l
	cp.CopyRecipients = append([]*letter.CopyRecipient(nil), l.CopyRecipients...)
	cp.Attachments = append([]*letter.Attachment(nil), l.Attachments...)
	cp.References = append([]*letter.Reference(nil), l.References...)
	return &cp
}

func letterFilterFn(filter *types.LetterFilter) FilterFunc[*letter.Letter] {
	return func(_ context.Context, l *letter.Letter) bool {
		if !isPublished(l.BaseModel) {
			return false
		}
		if filter == nil {
			return true
		}
		if filter.OrganizationID != "" && l.OrganizationID != filter.OrganizationID {
			return false
		}
		if filter.RecipientID != "" && l.RecipientID != filter.RecipientID {
			return false
		}
		return filter.CategoryID == "" || l.CategoryID == filter.CategoryID
	}
}

// Create enforces the unique reference number index
func (s *InMemoryLetterStore) Create(ctx context.Context, l *letter.Letter) error {
	if l.HasReference() {
		if _, err := s.GetByReferenceNumber(ctx, *l.ReferenceNumber); err == nil {
			return ierr.NewError("duplicate reference number").
				WithHintf("Reference %s is already in use", *l.ReferenceNumber).
				Mark(ierr.ErrAlreadyExists)
		}
	}
	return s.InMemoryStore.Create(ctx, l.ID, copyLetter(l))
}

// Update keeps the stored reference number
func (s *InMemoryLetterStore) Update(ctx context.Context, l *letter.Letter) error {
	existing, err := s.InMemoryStore.Get(ctx, l.ID)
	if err != nil {
		return letter.NewLetterNotFoundError(l.ID)
	}
	updated := copyLetter(l)
	updated.ReferenceNumber = existing.ReferenceNumber
	updated.CopyRecipients = existing.CopyRecipients
	updated.Attachments = existing.Attachments
	updated.References = existing.References
	return s.InMemoryStore.Update(ctx, l.ID, updated)
}

func (s *InMemoryLetterStore) Get(ctx context.Context, id string) (*letter.Letter, error) {
	l, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, letter.NewLetterNotFoundError(id)
	}
	return copyLetter(l), nil
}

func (s *InMemoryLetterStore) GetByReferenceNumber(ctx context.Context, referenceNumber string) (*letter.Letter, error) {
	items, err := s.InMemoryStore.List(ctx, nil, func(_ context.Context, l *letter.Letter) bool {
		return l.HasReference() && *l.ReferenceNumber == referenceNumber
	}, nil)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ierr.NewError("letter not found").
			WithHintf("No letter with reference %s", referenceNumber).
			Mark(ierr.ErrNotFound)
	}
	return copyLetter(items[0]), nil
}

func (s *InMemoryLetterStore) List(ctx context.Context, filter *types.LetterFilter) ([]*letter.Letter, error) {
	if filter == nil {
		filter = types.NewLetterFilter()
	}
	qf := filter.QueryFilter.OrDefault()
	items, err := s.InMemoryStore.List(ctx, qf, letterFilterFn(filter), createdAtOrder(qf, func(l *letter.Letter) types.BaseModel { return l.BaseModel }))
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(l *letter.Letter, _ int) *letter.Letter { return copyLetter(l) }), nil
}

func (s *InMemoryLetterStore) Count(ctx context.Context, filter *types.LetterFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, letterFilterFn(filter))
}

// createdAtOrder sorts by created_at in the direction of the filter
func createdAtOrder[T any](filter *types.QueryFilter, base func(T) types.BaseModel) SortFunc[T] {
	desc := filter.GetOrder() == types.OrderDesc
	return func(a, b T) bool {
		ta, tb := base(a).CreatedAt, base(b).CreatedAt
		if desc {
			return ta.After(tb)
		}
		return ta.Before(tb)
	}
}
