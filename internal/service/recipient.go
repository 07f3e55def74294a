package service

import (
	"context"

	"github.com/papertrails/papertrails/internal/api/dto"
	"github.com/papertrails/papertrails/internal/domain/recipient"
	"github.com/papertrails/papertrails/internal/types"
	"github.com/samber/lo"
)

type RecipientService interface {
	CreateRecipient(ctx context.Context, req dto.CreateRecipientRequest) (*dto.RecipientResponse, error)
	GetRecipient(ctx context.Context, id string) (*dto.RecipientResponse, error)
	ListRecipients(ctx context.Context, filter *types.RecipientFilter) (*dto.ListRecipientsResponse, error)
}

type recipientService struct {
	ServiceParams
}

func NewRecipientService(params ServiceParams) RecipientService {
	return &recipientService{ServiceParams: params}
}

func (s *recipientService) CreateRecipient(ctx context.Context, req dto.CreateRecipientRequest) (*dto.RecipientResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r := req.ToRecipient(ctx)
	if r.HasOrganization() {
		if _, err := s.OrganizationRepo.Get(ctx, *r.OrganizationID); err != nil {
			return nil, err
		}
	}

	if err := s.RecipientRepo.Create(ctx, r); err != nil {
		return nil, err
	}
	return &dto.RecipientResponse{Recipient: r}, nil
}

func (s *recipientService) GetRecipient(ctx context.Context, id string) (*dto.RecipientResponse, error) {
	r, err := s.RecipientRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.RecipientResponse{Recipient: r}, nil
}

func (s *recipientService) ListRecipients(ctx context.Context, filter *types.RecipientFilter) (*dto.ListRecipientsResponse, error) {
	if filter == nil {
		filter = types.NewRecipientFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	if err := filter.QueryFilter.Validate(); err != nil {
		return nil, err
	}

	recipients, err := s.RecipientRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := lo.Map(recipients, func(r *recipient.Recipient, _ int) *dto.RecipientResponse {
		return &dto.RecipientResponse{Recipient: r}
	})
	resp := types.NewListResponse(items, len(items), filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}
