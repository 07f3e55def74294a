package letter

import (
	"context"
	"time"

	"github.com/papertrails/papertrails/internal/types"
)

// Letter is an outgoing letter. ReferenceNumber is assigned once, on the
// first successful save, and never reassigned.
type Letter struct {
	ID                   string  `db:"id" json:"id"`
	OrganizationID       string  `db:"organization_id" json:"organization_id"`
	RecipientID          string  `db:"recipient_id" json:"recipient_id"`
	CategoryID           string  `db:"category_id" json:"category_id"`
	SignatoryID          *string `db:"signatory_id" json:"signatory_id,omitempty"`
	Subject              string  `db:"subject" json:"subject"`
	Body                 string  `db:"body" json:"body"`
	AttachmentTitle      string  `db:"attachment_title" json:"attachment_title"`
	UseRecipientName     bool    `db:"use_recipient_name" json:"use_recipient_name"`
	UseCCName            bool    `db:"use_cc_name" json:"use_cc_name"`
	UseDigitalSignature  bool    `db:"use_digital_signature" json:"use_digital_signature"`
	UseDigitalLetterhead bool    `db:"use_digital_letterhead" json:"use_digital_letterhead"`
	ReferenceNumber      *string `db:"reference_number" json:"reference_number,omitempty"`

	CopyRecipients []*CopyRecipient `db:"-" json:"copy_recipients,omitempty"`
	Attachments    []*Attachment    `db:"-" json:"attachments,omitempty"`
	References     []*Reference     `db:"-" json:"references,omitempty"`

	types.BaseModel
}

func NewLetter(ctx context.Context, organizationID, recipientID, categoryID, subject string) *Letter {
	return &Letter{
		ID:               types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LETTER),
		OrganizationID:   organizationID,
		RecipientID:      recipientID,
		CategoryID:       categoryID,
		Subject:          subject,
		UseRecipientName: true,
		UseCCName:        true,
		BaseModel:        types.GetDefaultBaseModel(ctx),
	}
}

// HasReference reports whether a reference number was already assigned
func (l *Letter) HasReference() bool {
	return l.ReferenceNumber != nil && *l.ReferenceNumber != ""
}

// CopyRecipient is one CC entry, either an external recipient or an internal user
type CopyRecipient struct {
	ID          string  `db:"id" json:"id"`
	LetterID    string  `db:"letter_id" json:"letter_id"`
	RecipientID *string `db:"recipient_id" json:"recipient_id,omitempty"`
	UserID      *string `db:"user_id" json:"user_id,omitempty"`
}

func NewRecipientCopy(letterID, recipientID string) *CopyRecipient {
	return &CopyRecipient{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LETTER_COPY),
		LetterID:    letterID,
		RecipientID: &recipientID,
	}
}

func NewUserCopy(letterID, userID string) *CopyRecipient {
	return &CopyRecipient{
		ID:       types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LETTER_COPY),
		LetterID: letterID,
		UserID:   &userID,
	}
}

// Reference links a letter to an earlier internal letter or to an external reference string
type Reference struct {
	ID                      string  `db:"id" json:"id"`
	LetterID                string  `db:"letter_id" json:"letter_id"`
	InternalLetterID        *string `db:"internal_letter_id" json:"internal_letter_id,omitempty"`
	ExternalReferenceNumber *string `db:"external_reference_number" json:"external_reference_number,omitempty"`
}

func NewInternalReference(letterID, internalLetterID string) *Reference {
	return &Reference{
		ID:               types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LETTER_REFERENCE),
		LetterID:         letterID,
		InternalLetterID: &internalLetterID,
	}
}

func NewExternalReference(letterID, referenceNumber string) *Reference {
	return &Reference{
		ID:                      types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LETTER_REFERENCE),
		LetterID:                letterID,
		ExternalReferenceNumber: &referenceNumber,
	}
}

// Attachment is the stored metadata of a file attached to a letter
type Attachment struct {
	ID        string    `db:"id" json:"id"`
	LetterID  string    `db:"letter_id" json:"letter_id"`
	Title     string    `db:"title" json:"title"`
	FileName  string    `db:"file_name" json:"file_name"`
	FileSize  int64     `db:"file_size" json:"file_size"`
	FileType  string    `db:"file_type" json:"file_type"`
	MimeType  string    `db:"mime_type" json:"mime_type"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
