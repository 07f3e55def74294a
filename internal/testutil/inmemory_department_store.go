package testutil

import (
	"context"
	"sync"

	"github.com/papertrails/papertrails/internal/domain/department"
	ierr "github.com/papertrails/papertrails/internal/errors"
	"github.com/papertrails/papertrails/internal/types"
	"github.com/samber/lo"
)

// InMemoryDepartmentStore implements department.Repository
type InMemoryDepartmentStore struct {
	*InMemoryStore[*department.Department]

	mu          sync.RWMutex
	permissions []*department.Permission
}

func NewInMemoryDepartmentStore() *InMemoryDepartmentStore {
	return &InMemoryDepartmentStore{
		InMemoryStore: NewInMemoryStore[*department.Department](),
	}
}

func (s *InMemoryDepartmentStore) Create(ctx context.Context, d *department.Department) error {
	cp := *d
	return s.InMemoryStore.Create(ctx, d.ID, &cp)
}

func (s *InMemoryDepartmentStore) Get(ctx context.Context, id string) (*department.Department, error) {
	d, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	cp := *d
	return &cp, nil
}

func (s *InMemoryDepartmentStore) List(ctx context.Context, filter *types.DepartmentFilter) ([]*department.Department, error) {
	var qf *types.QueryFilter
	if filter != nil {
		qf = filter.QueryFilter
	}
	return s.InMemoryStore.List(ctx, qf, func(_ context.Context, d *department.Department) bool {
		if !isPublished(d.BaseModel) {
			return false
		}
		return filter == nil || filter.Executive == nil || d.Executive == *filter.Executive
	}, func(a, b *department.Department) bool {
		return a.Name < b.Name
	})
}

func (s *InMemoryDepartmentStore) CreatePermission(ctx context.Context, p *department.Permission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := lo.Find(s.permissions, func(e *department.Permission) bool {
		return e.UserID == p.UserID && e.DepartmentID == p.DepartmentID && e.PermissionType == p.PermissionType
	})
	if exists {
		return ierr.NewError("permission already exists").
			WithHint("The user already holds this permission").
			Mark(ierr.ErrAlreadyExists)
	}

	cp := *p
	s.permissions = append(s.permissions, &cp)
	return nil
}

func (s *InMemoryDepartmentStore) ListPermissions(ctx context.Context, departmentID string) ([]*department.Permission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lo.Filter(s.permissions, func(p *department.Permission, _ int) bool {
		return p.DepartmentID == departmentID
	}), nil
}

// isExecutive reports whether departmentID names an executive department
func (s *InMemoryDepartmentStore) isExecutive(ctx context.Context, departmentID string) bool {
	d, err := s.InMemoryStore.Get(ctx, departmentID)
	return err == nil && d.Executive
}

func (s *InMemoryDepartmentStore) Clear() {
	s.InMemoryStore.Clear()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.permissions = nil
}
