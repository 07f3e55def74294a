package dto

import (
	"context"

	"github.com/papertrails/papertrails/internal/domain/recipient"
	"github.com/papertrails/papertrails/internal/types"
	"github.com/papertrails/papertrails/internal/validator"
)

type CreateRecipientRequest struct {
	FullName         string  `json:"full_name" validate:"required,max=255"`
	Email            string  `json:"email" validate:"required,email"`
	OrganizationID   *string `json:"organization_id"`
	Department       string  `json:"department" validate:"omitempty,max=255"`
	Designation      string  `json:"designation" validate:"omitempty,max=255"`
	ShortDesignation string  `json:"short_designation" validate:"omitempty,max=50"`
}

func (r *CreateRecipientRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateRecipientRequest) ToRecipient(ctx context.Context) *recipient.Recipient {
	rc := recipient.NewRecipient(ctx, r.FullName, r.Email, r.OrganizationID)
	rc.Department = r.Department
	rc.Designation = r.Designation
	rc.ShortDesignation = r.ShortDesignation
	return rc
}

type RecipientResponse struct {
	*recipient.Recipient
}

type ListRecipientsResponse = types.ListResponse[*RecipientResponse]
