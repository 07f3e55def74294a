package service

import (
	"context"

	"github.com/papertrails/papertrails/internal/api/dto"
	"github.com/papertrails/papertrails/internal/domain/organization"
	"github.com/papertrails/papertrails/internal/types"
	"github.com/samber/lo"
)

type OrganizationService interface {
	CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest) (*dto.OrganizationResponse, error)
	GetOrganization(ctx context.Context, id string) (*dto.OrganizationResponse, error)
	ListOrganizations(ctx context.Context, filter *types.OrganizationFilter) (*dto.ListOrganizationsResponse, error)
}

type organizationService struct {
	ServiceParams
}

func NewOrganizationService(params ServiceParams) OrganizationService {
	return &organizationService{ServiceParams: params}
}

func (s *organizationService) CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest) (*dto.OrganizationResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	org := req.ToOrganization(ctx)
	if err := s.OrganizationRepo.Create(ctx, org); err != nil {
		return nil, err
	}
	return &dto.OrganizationResponse{Organization: org}, nil
}

func (s *organizationService) GetOrganization(ctx context.Context, id string) (*dto.OrganizationResponse, error) {
	org, err := s.OrganizationRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.OrganizationResponse{Organization: org}, nil
}

func (s *organizationService) ListOrganizations(ctx context.Context, filter *types.OrganizationFilter) (*dto.ListOrganizationsResponse, error) {
	if filter == nil {
		filter = types.NewOrganizationFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	if err := filter.QueryFilter.Validate(); err != nil {
		return nil, err
	}

	orgs, err := s.OrganizationRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.OrganizationRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := lo.Map(orgs, func(o *organization.Organization, _ int) *dto.OrganizationResponse {
		return &dto.OrganizationResponse{Organization: o}
	})
	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}
