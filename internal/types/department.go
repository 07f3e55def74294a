package types

import (
	ierr "github.com/papertrails/papertrails/internal/errors"
)

// PermissionType is the access level a department permission grants
type PermissionType string

const (
	PermissionTypeView PermissionType = "view"
	PermissionTypeEdit PermissionType = "edit"
)

func (p PermissionType) Validate() error {
	switch p {
	case PermissionTypeView, PermissionTypeEdit:
		return nil
	}
	return ierr.NewError("invalid permission type").
		WithHintf("Permission type must be one of %s or %s", PermissionTypeView, PermissionTypeEdit).
		WithReportableDetails(map[string]any{
			"permission_type": p,
		}).
		Mark(ierr.ErrValidation)
}

// OrganizationType classifies an organization by the role it plays
type OrganizationType string

const (
	OrganizationTypeInternal  OrganizationType = "internal"
	OrganizationTypeRecipient OrganizationType = "recipient"
	OrganizationTypeVendor    OrganizationType = "vendor"
)
