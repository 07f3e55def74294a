package service

import (
	"context"

	"github.com/papertrails/papertrails/internal/api/dto"
	"github.com/papertrails/papertrails/internal/domain/agreement"
	"github.com/papertrails/papertrails/internal/types"
	"github.com/samber/lo"
)

type AgreementTypeService interface {
	CreateAgreementType(ctx context.Context, req dto.CreateAgreementTypeRequest) (*dto.AgreementTypeResponse, error)
	GetAgreementType(ctx context.Context, id string) (*dto.AgreementTypeResponse, error)
	ListAgreementTypes(ctx context.Context, filter *types.QueryFilter) (*dto.ListAgreementTypesResponse, error)
}

type agreementTypeService struct {
	ServiceParams
}

func NewAgreementTypeService(params ServiceParams) AgreementTypeService {
	return &agreementTypeService{ServiceParams: params}
}

func (s *agreementTypeService) CreateAgreementType(ctx context.Context, req dto.CreateAgreementTypeRequest) (*dto.AgreementTypeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	t := req.ToAgreementType(ctx)
	if err := s.AgreementTypeRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	return &dto.AgreementTypeResponse{AgreementType: t}, nil
}

func (s *agreementTypeService) GetAgreementType(ctx context.Context, id string) (*dto.AgreementTypeResponse, error) {
	t, err := s.AgreementTypeRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.AgreementTypeResponse{AgreementType: t}, nil
}

func (s *agreementTypeService) ListAgreementTypes(ctx context.Context, filter *types.QueryFilter) (*dto.ListAgreementTypesResponse, error) {
	filter = filter.OrDefault()
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	agreementTypes, err := s.AgreementTypeRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := lo.Map(agreementTypes, func(t *agreement.AgreementType, _ int) *dto.AgreementTypeResponse {
		return &dto.AgreementTypeResponse{AgreementType: t}
	})
	resp := types.NewListResponse(items, len(items), filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}
