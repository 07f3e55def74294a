package agreement

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/papertrails/papertrails/internal/types"
)

// Agreement is a vendor agreement tracked through its validity period.
// AgreementStatus is derived from ExpiryDate and recomputed on every save.
type Agreement struct {
	ID                 string                `db:"id" json:"id"`
	AgreementID        string                `db:"agreement_id" json:"agreement_id"`
	Title              string                `db:"title" json:"title"`
	AgreementTypeID    *string               `db:"agreement_type_id" json:"agreement_type_id,omitempty"`
	Remarks            string                `db:"remarks" json:"remarks"`
	AgreementStatus    types.AgreementStatus `db:"agreement_status" json:"agreement_status"`
	StartDate          time.Time             `db:"start_date" json:"start_date"`
	ExpiryDate         time.Time             `db:"expiry_date" json:"expiry_date"`
	ReminderTime       time.Time             `db:"reminder_time" json:"reminder_time"`
	PartyID            *string               `db:"party_id" json:"party_id,omitempty"`
	DepartmentID       *string               `db:"department_id" json:"department_id,omitempty"`
	CreatorID          *string               `db:"creator_id" json:"creator_id,omitempty"`
	AgreementReference string                `db:"agreement_reference" json:"agreement_reference"`
	ParentAgreementID  *string               `db:"parent_agreement_id" json:"parent_agreement_id,omitempty"`
	AttachmentName     string                `db:"attachment_name" json:"attachment_name"`
	OriginalFilename   string                `db:"original_filename" json:"original_filename"`

	AssignedUserIDs []string `db:"-" json:"assigned_user_ids"`

	types.BaseModel
}

func NewAgreement(ctx context.Context, title string, start, expiry time.Time) *Agreement {
	return &Agreement{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_AGREEMENT),
		Title:      title,
		StartDate:  types.TruncateToDay(start),
		ExpiryDate: types.TruncateToDay(expiry),
		BaseModel:  types.GetDefaultBaseModel(ctx),
	}
}

// FormatAgreementID renders A_<year>_<seq> with a four digit sequence
func FormatAgreementID(year int, sequence int64) string {
	return fmt.Sprintf("A_%d_%04d", year, sequence)
}

// ApplyDefaults fills the reminder time when it was not given
func (a *Agreement) ApplyDefaults() {
	if a.ReminderTime.IsZero() && !a.ExpiryDate.IsZero() {
		a.ReminderTime = a.ExpiryDate.AddDate(0, 0, -types.DefaultReminderLeadDays)
	}
}

// Refresh recomputes the derived status against today
func (a *Agreement) Refresh(today time.Time) {
	a.AgreementStatus = EvaluateStatus(a.ExpiryDate, today)
}

// SetAttachment records a newly uploaded file. The stored name keeps only the
// extension of the upload and is filed under the agreement type.
func (a *Agreement) SetAttachment(filename string) {
	dir := "untyped"
	if a.AgreementTypeID != nil && *a.AgreementTypeID != "" {
		dir = *a.AgreementTypeID
	}

	a.OriginalFilename = path.Base(filename)
	a.AttachmentName = path.Join("agreements", dir,
		types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_ATTACHMENT)+strings.ToLower(path.Ext(filename)))
}

// HasDepartment reports whether the agreement belongs to a department
func (a *Agreement) HasDepartment() bool {
	return a.DepartmentID != nil && *a.DepartmentID != ""
}

// IsCreator reports whether userID created the agreement
func (a *Agreement) IsCreator(userID string) bool {
	return a.CreatorID != nil && *a.CreatorID == userID
}

// AgreementType classifies agreements, for example NDA or service contract
type AgreementType struct {
	ID          string `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
	IsActive    bool   `db:"is_active" json:"is_active"`
	types.BaseModel
}

func NewAgreementType(ctx context.Context, name, description string) *AgreementType {
	return &AgreementType{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_AGREEMENT_TYPE),
		Name:        name,
		Description: description,
		IsActive:    true,
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}
}
