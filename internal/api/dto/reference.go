package dto

// ReferencePreviewRequest carries the ids a tentative reference is computed from.
// Date is optional, any RFC3339 or YYYY-MM-DD value; unparsable dates fall back to the current year.
type ReferencePreviewRequest struct {
	OrganizationID string `form:"organization_id" json:"organization_id"`
	RecipientID    string `form:"recipient_id" json:"recipient_id"`
	CategoryID     string `form:"category_id" json:"category_id"`
	Date           string `form:"date" json:"date"`
}

// IsComplete reports whether every id needed for a preview is present
func (r *ReferencePreviewRequest) IsComplete() bool {
	return r.OrganizationID != "" && r.RecipientID != "" && r.CategoryID != ""
}

type ReferencePreviewResponse struct {
	TentativeReferenceNumber string `json:"tentative_reference_number"`
}
