package dto

import (
	"context"

	"github.com/papertrails/papertrails/internal/domain/organization"
	"github.com/papertrails/papertrails/internal/types"
	"github.com/papertrails/papertrails/internal/validator"
)

type CreateOrganizationRequest struct {
	Name             string                 `json:"name" validate:"required,max=255"`
	ShortForm        string                 `json:"short_form" validate:"required,max=20"`
	Address          string                 `json:"address" validate:"omitempty,max=500"`
	Email            string                 `json:"email" validate:"omitempty,email"`
	Phone            string                 `json:"phone" validate:"omitempty,max=50"`
	OrganizationType types.OrganizationType `json:"organization_type" validate:"omitempty,oneof=internal recipient vendor"`
}

func (r *CreateOrganizationRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateOrganizationRequest) ToOrganization(ctx context.Context) *organization.Organization {
	orgType := r.OrganizationType
	if orgType == "" {
		orgType = types.OrganizationTypeRecipient
	}

	org := organization.NewOrganization(ctx, r.Name, r.ShortForm, orgType)
	org.Address = r.Address
	org.Email = r.Email
	org.Phone = r.Phone
	return org
}

type OrganizationResponse struct {
	*organization.Organization
}

// ListOrganizationsResponse represents the response for listing organizations
type ListOrganizationsResponse = types.ListResponse[*OrganizationResponse]
