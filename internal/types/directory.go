package types

// OrganizationFilter filters organizations by type and name
type OrganizationFilter struct {
	*QueryFilter
	OrganizationType OrganizationType `json:"organization_type,omitempty" form:"organization_type"`
	Name             string           `json:"name,omitempty" form:"name"`
	// ExcludeIDs drops organizations from the result, used for CC lists
	ExcludeIDs []string `json:"-" form:"-"`
}

func NewOrganizationFilter() *OrganizationFilter {
	return &OrganizationFilter{QueryFilter: NewDefaultQueryFilter()}
}

// RecipientFilter filters recipients by organization
type RecipientFilter struct {
	*QueryFilter
	OrganizationID string `json:"organization_id,omitempty" form:"organization_id"`
	// ExcludeOrganizationID drops recipients of one organization
	ExcludeOrganizationID string `json:"exclude_organization_id,omitempty" form:"exclude_organization_id"`
}

func NewRecipientFilter() *RecipientFilter {
	return &RecipientFilter{QueryFilter: NewDefaultQueryFilter()}
}

// DepartmentFilter filters departments by the executive flag
type DepartmentFilter struct {
	*QueryFilter
	Executive *bool `json:"executive,omitempty" form:"executive"`
}

func NewDepartmentFilter() *DepartmentFilter {
	return &DepartmentFilter{QueryFilter: NewDefaultQueryFilter()}
}

// UserFilter filters users by department
type UserFilter struct {
	*QueryFilter
	DepartmentID string `json:"department_id,omitempty" form:"department_id"`
	ActiveOnly   bool   `json:"active_only,omitempty" form:"active_only"`
}

func NewUserFilter() *UserFilter {
	return &UserFilter{QueryFilter: NewDefaultQueryFilter()}
}
