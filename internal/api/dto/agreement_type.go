package dto

import (
	"context"

	"github.com/papertrails/papertrails/internal/domain/agreement"
	"github.com/papertrails/papertrails/internal/types"
	"github.com/papertrails/papertrails/internal/validator"
)

type CreateAgreementTypeRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"omitempty,max=1000"`
}

func (r *CreateAgreementTypeRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateAgreementTypeRequest) ToAgreementType(ctx context.Context) *agreement.AgreementType {
	return agreement.NewAgreementType(ctx, r.Name, r.Description)
}

type AgreementTypeResponse struct {
	*agreement.AgreementType
}

type ListAgreementTypesResponse = types.ListResponse[*AgreementTypeResponse]
