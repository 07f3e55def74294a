package recipient

import (
	"context"

	"github.com/papertrails/papertrails/internal/types"
)

// Recipient is an external person letters are addressed or copied to
type Recipient struct {
	ID               string  `db:"id" json:"id"`
	FullName         string  `db:"full_name" json:"full_name"`
	Email            string  `db:"email" json:"email"`
	OrganizationID   *string `db:"organization_id" json:"organization_id,omitempty"`
	Department       string  `db:"department" json:"department"`
	Designation      string  `db:"designation" json:"designation"`
	ShortDesignation string  `db:"short_designation" json:"short_designation"`
	types.BaseModel
}

func NewRecipient(ctx context.Context, fullName, email string, organizationID *string) *Recipient {
	return &Recipient{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_RECIPIENT),
		FullName:       fullName,
		Email:          email,
		OrganizationID: organizationID,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
}

// HasOrganization reports whether the recipient belongs to an organization
func (r *Recipient) HasOrganization() bool {
	return r.OrganizationID != nil && *r.OrganizationID != ""
}
