package types

// LetterFilter filters letters by their relationships
type LetterFilter struct {
	*QueryFilter
	OrganizationID string `json:"organization_id,omitempty" form:"organization_id"`
	RecipientID    string `json:"recipient_id,omitempty" form:"recipient_id"`
	CategoryID     string `json:"category_id,omitempty" form:"category_id"`
}

func NewLetterFilter() *LetterFilter {
	return &LetterFilter{QueryFilter: NewDefaultQueryFilter()}
}

// ReferencePreviewPlaceholder is returned by preview when an id is missing
const ReferencePreviewPlaceholder = "Select all fields to see reference."
