package testutil

import (
	"context"
	"strings"

	"github.com/papertrails/papertrails/internal/domain/department"
	"github.com/papertrails/papertrails/internal/domain/user"
	ierr "github.com/papertrails/papertrails/internal/errors"
	"github.com/papertrails/papertrails/internal/types"
	"github.com/samber/lo"
)

// InMemoryUserStore implements user.Repository. Department lookups go through
// the department store so executive and permission rules resolve like the
// postgres joins do.
type InMemoryUserStore struct {
	*InMemoryStore[*user.User]
	departments *InMemoryDepartmentStore
}

func NewInMemoryUserStore(departments *InMemoryDepartmentStore) *InMemoryUserStore {
	return &InMemoryUserStore{
		InMemoryStore: NewInMemoryStore[*user.User](),
		departments:   departments,
	}
}

func copyUser(u *user.User) *user.User {
	cp := *u
	return &cp
}

func (s *InMemoryUserStore) Create(ctx context.Context, u *user.User) error {
	if _, err := s.GetByEmail(ctx, u.Email); err == nil {
		return ierr.NewError("user already exists").
			WithHintf("A user with email %s already exists", u.Email).
			Mark(ierr.ErrAlreadyExists)
	}
	return s.InMemoryStore.Create(ctx, u.ID, copyUser(u))
}

func (s *InMemoryUserStore) GetByID(ctx context.Context, id string) (*user.User, error) {
	u, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyUser(u), nil
}

func (s *InMemoryUserStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	items, err := s.list(ctx, func(u *user.User) bool {
		return strings.EqualFold(u.Email, email)
	})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ierr.NewError("user not found").
			WithReportableDetails(map[string]any{"email": email}).
			Mark(ierr.ErrNotFound)
	}
	return items[0], nil
}

func (s *InMemoryUserStore) GetByIDs(ctx context.Context, ids []string) ([]*user.User, error) {
	return s.list(ctx, func(u *user.User) bool {
		return lo.Contains(ids, u.ID)
	})
}

func (s *InMemoryUserStore) ListByFilter(ctx context.Context, filter *types.UserFilter) ([]*user.User, error) {
	var qf *types.QueryFilter
	if filter != nil {
		qf = filter.QueryFilter
	}
	items, err := s.InMemoryStore.List(ctx, qf, func(_ context.Context, u *user.User) bool {
		if !isPublished(u.BaseModel) {
			return false
		}
		if filter == nil {
			return true
		}
		if filter.DepartmentID != "" && !u.InDepartment(filter.DepartmentID) {
			return false
		}
		return !filter.ActiveOnly || u.IsActive
	}, func(a, b *user.User) bool {
		return a.FullName < b.FullName
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(u *user.User, _ int) *user.User { return copyUser(u) }), nil
}

func (s *InMemoryUserStore) ListByDepartment(ctx context.Context, departmentID string) ([]*user.User, error) {
	return s.list(ctx, func(u *user.User) bool {
		return u.InDepartment(departmentID)
	})
}

func (s *InMemoryUserStore) ListByDepartmentPermission(ctx context.Context, departmentID string) ([]*user.User, error) {
	permissions, err := s.departments.ListPermissions(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	holders := lo.Uniq(lo.Map(permissions, func(p *department.Permission, _ int) string { return p.UserID }))
	return s.GetByIDs(ctx, holders)
}

func (s *InMemoryUserStore) ListExecutives(ctx context.Context) ([]*user.User, error) {
	return s.list(ctx, func(u *user.User) bool {
		return u.DepartmentID != nil && s.departments.isExecutive(ctx, *u.DepartmentID)
	})
}

func (s *InMemoryUserStore) list(ctx context.Context, match func(u *user.User) bool) ([]*user.User, error) {
	items, err := s.InMemoryStore.List(ctx, nil, func(_ context.Context, u *user.User) bool {
		return isPublished(u.BaseModel) && match(u)
	}, nil)
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(u *user.User, _ int) *user.User { return copyUser(u) }), nil
}
