package service

import (
	"context"

	"github.com/papertrails/papertrails/internal/api/dto"
	"github.com/papertrails/papertrails/internal/domain/department"
	ierr "github.com/papertrails/papertrails/internal/errors"
	"github.com/papertrails/papertrails/internal/types"
	"github.com/samber/lo"
)

type DepartmentService interface {
	CreateDepartment(ctx context.Context, req dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error)
	GetDepartment(ctx context.Context, id string) (*dto.DepartmentResponse, error)
	ListDepartments(ctx context.Context, filter *types.DepartmentFilter) (*dto.ListDepartmentsResponse, error)

	// GrantPermission gives a user access to a department. The calling user
	// approves the grant and must belong to an executive department.
	GrantPermission(ctx context.Context, departmentID string, req dto.CreateDepartmentPermissionRequest) (*dto.DepartmentPermissionResponse, error)
	ListPermissions(ctx context.Context, departmentID string) ([]*dto.DepartmentPermissionResponse, error)
}

type departmentService struct {
	ServiceParams
}

func NewDepartmentService(params ServiceParams) DepartmentService {
	return &departmentService{ServiceParams: params}
}

func (s *departmentService) CreateDepartment(ctx context.Context, req dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	d := req.ToDepartment(ctx)
	if err := s.DepartmentRepo.Create(ctx, d); err != nil {
		return nil, err
	}
	return &dto.DepartmentResponse{Department: d}, nil
}

func (s *departmentService) GetDepartment(ctx context.Context, id string) (*dto.DepartmentResponse, error) {
	d, err := s.DepartmentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.DepartmentResponse{Department: d}, nil
}

func (s *departmentService) ListDepartments(ctx context.Context, filter *types.DepartmentFilter) (*dto.ListDepartmentsResponse, error) {
	if filter == nil {
		filter = types.NewDepartmentFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	if err := filter.QueryFilter.Validate(); err != nil {
		return nil, err
	}

	departments, err := s.DepartmentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := lo.Map(departments, func(d *department.Department, _ int) *dto.DepartmentResponse {
		return &dto.DepartmentResponse{Department: d}
	})
	resp := types.NewListResponse(items, len(items), filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

func (s *departmentService) GrantPermission(ctx context.Context, departmentID string, req dto.CreateDepartmentPermissionRequest) (*dto.DepartmentPermissionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.DepartmentRepo.Get(ctx, departmentID); err != nil {
		return nil, err
	}
	if _, err := s.UserRepo.GetByID(ctx, req.UserID); err != nil {
		return nil, err
	}

	approverID, err := s.executiveApprover(ctx)
	if err != nil {
		return nil, err
	}

	p := department.NewPermission(req.UserID, departmentID, req.PermissionType, lo.ToPtr(approverID))
	if err := s.DepartmentRepo.CreatePermission(ctx, p); err != nil {
		return nil, err
	}

	s.Logger.Infow("granted department permission",
		"department_id", departmentID,
		"user_id", req.UserID,
		"permission_type", req.PermissionType,
		"approved_by", approverID,
	)
	return &dto.DepartmentPermissionResponse{Permission: p}, nil
}

// executiveApprover returns the calling user when they belong to an executive department
func (s *departmentService) executiveApprover(ctx context.Context) (string, error) {
	denied := func(userID string) error {
		return ierr.NewError("approver must belong to an executive department").
			WithHint("Only members of an executive department can approve permissions").
			WithReportableDetails(map[string]any{
				"approved_by": userID,
			}).
			Mark(ierr.ErrPermissionDenied)
	}

	approverID := types.GetUserID(ctx)
	if approverID == "" {
		return "", denied(approverID)
	}

	approver, err := s.UserRepo.GetByID(ctx, approverID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return "", denied(approverID)
		}
		return "", err
	}
	if approver.DepartmentID == nil {
		return "", denied(approverID)
	}

	dept, err := s.DepartmentRepo.Get(ctx, *approver.DepartmentID)
	if err != nil {
		return "", err
	}
	if !dept.Executive {
		return "", denied(approverID)
	}
	return approverID, nil
}

func (s *departmentService) ListPermissions(ctx context.Context, departmentID string) ([]*dto.DepartmentPermissionResponse, error) {
	permissions, err := s.DepartmentRepo.ListPermissions(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	return lo.Map(permissions, func(p *department.Permission, _ int) *dto.DepartmentPermissionResponse {
		return &dto.DepartmentPermissionResponse{Permission: p}
	}), nil
}
