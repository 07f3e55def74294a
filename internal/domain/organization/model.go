package organization

import (
	"context"

	"github.com/papertrails/papertrails/internal/types"
)

// Organization is a sender or recipient organization of letters, and the
// counter party of agreements
type Organization struct {
	ID               string                 `db:"id" json:"id"`
	Name             string                 `db:"name" json:"name"`
	ShortForm        string                 `db:"short_form" json:"short_form"`
	Address          string                 `db:"address" json:"address"`
	Email            string                 `db:"email" json:"email"`
	Phone            string                 `db:"phone" json:"phone"`
	OrganizationType types.OrganizationType `db:"organization_type" json:"organization_type"`
	types.BaseModel
}

func NewOrganization(ctx context.Context, name, shortForm string, orgType types.OrganizationType) *Organization {
	return &Organization{
		ID:               types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ORGANIZATION),
		Name:             name,
		ShortForm:        shortForm,
		OrganizationType: orgType,
		BaseModel:        types.GetDefaultBaseModel(ctx),
	}
}
