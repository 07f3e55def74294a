package dto

import (
	"context"

	"github.com/papertrails/papertrails/internal/domain/letter"
	"github.com/papertrails/papertrails/internal/types"
	"github.com/papertrails/papertrails/internal/validator"
	"github.com/samber/lo"
)

// CreateLetterRequest creates a letter and allocates its reference number.
// Organization, recipient and category are checked by the allocator so the
// caller gets the allocator's precondition messages.
type CreateLetterRequest struct {
	OrganizationID  string  `json:"organization_id"`
	RecipientID     string  `json:"recipient_id"`
	CategoryID      string  `json:"category_id"`
	SignatoryID     *string `json:"signatory_id"`
	Subject         string  `json:"subject" validate:"required,max=500"`
	Body            string  `json:"body"`
	AttachmentTitle string  `json:"attachment_title" validate:"omitempty,max=255"`

	UseRecipientName     *bool `json:"use_recipient_name"`
	UseCCName            *bool `json:"use_cc_name"`
	UseDigitalSignature  bool  `json:"use_digital_signature"`
	UseDigitalLetterhead bool  `json:"use_digital_letterhead"`

	// CopySameOrg and CopyOtherOrg are recipient ids, CopyMyOrg are internal user ids
	CopySameOrg  []string `json:"copy_same_org"`
	CopyOtherOrg []string `json:"copy_other_org"`
	CopyMyOrg    []string `json:"copy_my_org"`

	// InternalReferences are reference numbers of earlier letters
	InternalReferences []string `json:"internal_references"`
	ExternalReferences []string `json:"external_references"`

	Attachments []AttachmentRequest `json:"attachments" validate:"omitempty,dive"`
}

type AttachmentRequest struct {
	Title    string `json:"title" validate:"omitempty,max=255"`
	FileName string `json:"file_name" validate:"required,max=255"`
	FileSize int64  `json:"file_size" validate:"min=0"`
}

func (r *CreateLetterRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// ToLetter builds the letter with its CC entries, attachments and external
// references. Internal references need a lookup and are added by the service.
func (r *CreateLetterRequest) ToLetter(ctx context.Context) *letter.Letter {
	l := letter.NewLetter(ctx, r.OrganizationID, r.RecipientID, r.CategoryID, r.Subject)
	l.SignatoryID = r.SignatoryID
	l.Body = r.Body
	l.AttachmentTitle = r.AttachmentTitle
	l.UseRecipientName = lo.FromPtrOr(r.UseRecipientName, true)
	l.UseCCName = lo.FromPtrOr(r.UseCCName, true)
	l.UseDigitalSignature = r.UseDigitalSignature
	l.UseDigitalLetterhead = r.UseDigitalLetterhead

	for _, id := range lo.Uniq(append(append([]string{}, r.CopySameOrg...), r.CopyOtherOrg...)) {
		l.CopyRecipients = append(l.CopyRecipients, letter.NewRecipientCopy(l.ID, id))
	}
	for _, id := range lo.Uniq(r.CopyMyOrg) {
		l.CopyRecipients = append(l.CopyRecipients, letter.NewUserCopy(l.ID, id))
	}

	for _, att := range r.Attachments {
		l.Attachments = append(l.Attachments, letter.NewAttachment(l.ID, att.Title, att.FileName, att.FileSize))
	}

	for _, ref := range lo.Uniq(lo.Compact(r.ExternalReferences)) {
		l.References = append(l.References, letter.NewExternalReference(l.ID, ref))
	}
	return l
}

// CopyRecipientIDs returns every recipient id copied on the letter
func (r *CreateLetterRequest) CopyRecipientIDs() []string {
	return lo.Uniq(append(append([]string{}, r.CopySameOrg...), r.CopyOtherOrg...))
}

type UpdateLetterRequest struct {
	Subject              *string `json:"subject" validate:"omitempty,max=500"`
	Body                 *string `json:"body"`
	SignatoryID          *string `json:"signatory_id"`
	AttachmentTitle      *string `json:"attachment_title" validate:"omitempty,max=255"`
	UseRecipientName     *bool   `json:"use_recipient_name"`
	UseCCName            *bool   `json:"use_cc_name"`
	UseDigitalSignature  *bool   `json:"use_digital_signature"`
	UseDigitalLetterhead *bool   `json:"use_digital_letterhead"`
}

func (r *UpdateLetterRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// Apply copies the set fields onto the letter. The reference number is not touched.
func (r *UpdateLetterRequest) Apply(ctx context.Context, l *letter.Letter) {
	if r.Subject != nil {
		l.Subject = *r.Subject
	}
	if r.Body != nil {
		l.Body = *r.Body
	}
	if r.SignatoryID != nil {
		l.SignatoryID = r.SignatoryID
	}
	if r.AttachmentTitle != nil {
		l.AttachmentTitle = *r.AttachmentTitle
	}
	if r.UseRecipientName != nil {
		l.UseRecipientName = *r.UseRecipientName
	}
	if r.UseCCName != nil {
		l.UseCCName = *r.UseCCName
	}
	if r.UseDigitalSignature != nil {
		l.UseDigitalSignature = *r.UseDigitalSignature
	}
	if r.UseDigitalLetterhead != nil {
		l.UseDigitalLetterhead = *r.UseDigitalLetterhead
	}
	l.UpdatedBy = types.GetUserID(ctx)
}

type AttachmentResponse struct {
	*letter.Attachment
	FileSizeHuman string `json:"file_size_human"`
}

type LetterResponse struct {
	*letter.Letter
	Attachments []*AttachmentResponse `json:"attachments,omitempty"`
}

func NewLetterResponse(l *letter.Letter) *LetterResponse {
	return &LetterResponse{
		Letter: l,
		Attachments: lo.Map(l.Attachments, func(a *letter.Attachment, _ int) *AttachmentResponse {
			return &AttachmentResponse{Attachment: a, FileSizeHuman: a.HumanSize()}
		}),
	}
}

type ListLettersResponse = types.ListResponse[*LetterResponse]
