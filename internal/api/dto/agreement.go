package dto

import (
	"context"
	"time"

	"github.com/papertrails/papertrails/internal/domain/agreement"
	ierr "github.com/papertrails/papertrails/internal/errors"
	"github.com/papertrails/papertrails/internal/types"
	"github.com/papertrails/papertrails/internal/validator"
	"github.com/samber/lo"
)

// CreateAgreementRequest dates are YYYY-MM-DD. ReminderTime defaults to
// 180 days before expiry.
type CreateAgreementRequest struct {
	Title              string   `json:"title" validate:"required,max=255"`
	AgreementTypeID    *string  `json:"agreement_type_id"`
	Remarks            string   `json:"remarks"`
	StartDate          string   `json:"start_date" validate:"required"`
	ExpiryDate         string   `json:"expiry_date" validate:"required"`
	ReminderTime       string   `json:"reminder_time"`
	PartyID            *string  `json:"party_id"`
	DepartmentID       *string  `json:"department_id"`
	AgreementReference string   `json:"agreement_reference" validate:"omitempty,max=100"`
	ParentAgreementID  *string  `json:"parent_agreement_id"`
	AttachmentName     string   `json:"attachment_name" validate:"omitempty,max=255"`
	OriginalFilename   string   `json:"original_filename" validate:"omitempty,max=255"`
	AssignedUserIDs    []string `json:"assigned_user_ids"`
}

func (r *CreateAgreementRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateAgreementRequest) ToAgreement(ctx context.Context) (*agreement.Agreement, error) {
	start, err := parseDateField("start_date", r.StartDate)
	if err != nil {
		return nil, err
	}
	expiry, err := parseDateField("expiry_date", r.ExpiryDate)
	if err != nil {
		return nil, err
	}

	a := agreement.NewAgreement(ctx, r.Title, start, expiry)
	if r.ReminderTime != "" {
		if a.ReminderTime, err = parseDateField("reminder_time", r.ReminderTime); err != nil {
			return nil, err
		}
	}

	a.AgreementTypeID = r.AgreementTypeID
	a.Remarks = r.Remarks
	a.PartyID = r.PartyID
	a.DepartmentID = r.DepartmentID
	a.AgreementReference = r.AgreementReference
	a.ParentAgreementID = r.ParentAgreementID
	if r.AttachmentName == "" && r.OriginalFilename != "" {
		a.SetAttachment(r.OriginalFilename)
	} else {
		a.AttachmentName = r.AttachmentName
		a.OriginalFilename = r.OriginalFilename
	}
	a.AssignedUserIDs = lo.Uniq(lo.Compact(r.AssignedUserIDs))

	if userID := types.GetUserID(ctx); userID != "" {
		a.CreatorID = lo.ToPtr(userID)
	}
	return a, nil
}

type UpdateAgreementRequest struct {
	Title              *string   `json:"title" validate:"omitempty,max=255"`
	AgreementTypeID    *string   `json:"agreement_type_id"`
	Remarks            *string   `json:"remarks"`
	StartDate          *string   `json:"start_date"`
	ExpiryDate         *string   `json:"expiry_date"`
	ReminderTime       *string   `json:"reminder_time"`
	PartyID            *string   `json:"party_id"`
	DepartmentID       *string   `json:"department_id"`
	AgreementReference *string   `json:"agreement_reference" validate:"omitempty,max=100"`
	ParentAgreementID  *string   `json:"parent_agreement_id"`
	AttachmentName     *string   `json:"attachment_name"`
	OriginalFilename   *string   `json:"original_filename"`
	AssignedUserIDs    *[]string `json:"assigned_user_ids"`
}

func (r *UpdateAgreementRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// Apply copies the set fields onto the agreement. The agreement id and
// creator never change.
func (r *UpdateAgreementRequest) Apply(ctx context.Context, a *agreement.Agreement) error {
	var err error
	if r.StartDate != nil {
		if a.StartDate, err = parseDateField("start_date", *r.StartDate); err != nil {
			return err
		}
	}
	if r.ExpiryDate != nil {
		if a.ExpiryDate, err = parseDateField("expiry_date", *r.ExpiryDate); err != nil {
			return err
		}
	}
	if r.ReminderTime != nil {
		if *r.ReminderTime == "" {
			a.ReminderTime = time.Time{}
		} else if a.ReminderTime, err = parseDateField("reminder_time", *r.ReminderTime); err != nil {
			return err
		}
	}

	if r.Title != nil {
		a.Title = *r.Title
	}
	if r.AgreementTypeID != nil {
		a.AgreementTypeID = r.AgreementTypeID
	}
	if r.Remarks != nil {
		a.Remarks = *r.Remarks
	}
	if r.PartyID != nil {
		a.PartyID = r.PartyID
	}
	if r.DepartmentID != nil {
		a.DepartmentID = r.DepartmentID
	}
	if r.AgreementReference != nil {
		a.AgreementReference = *r.AgreementReference
	}
	if r.ParentAgreementID != nil {
		a.ParentAgreementID = r.ParentAgreementID
	}
	switch {
	case r.AttachmentName != nil:
		a.AttachmentName = *r.AttachmentName
		if r.OriginalFilename != nil {
			a.OriginalFilename = *r.OriginalFilename
		}
	case r.OriginalFilename != nil && *r.OriginalFilename != a.OriginalFilename:
		if *r.OriginalFilename == "" {
			a.AttachmentName, a.OriginalFilename = "", ""
		} else {
			a.SetAttachment(*r.OriginalFilename)
		}
	}
	if r.AssignedUserIDs != nil {
		a.AssignedUserIDs = lo.Uniq(lo.Compact(*r.AssignedUserIDs))
	}

	a.UpdatedAt = time.Now().UTC()
	a.UpdatedBy = types.GetUserID(ctx)
	return nil
}

func parseDateField(field, value string) (time.Time, error) {
	t, err := types.ParseDate(value)
	if err != nil {
		return time.Time{}, ierr.WithError(err).
			WithHintf("%s must be a date in YYYY-MM-DD format", field).
			WithReportableDetails(map[string]any{
				field: value,
			}).
			Mark(ierr.ErrValidation)
	}
	return t, nil
}

type AgreementResponse struct {
	*agreement.Agreement
}

type ListAgreementsResponse = types.ListResponse[*AgreementResponse]

// ManageAccessRequest adds or removes UserID from the agreement's assigned users
type ManageAccessRequest struct {
	UserID           string `json:"user_id" validate:"required"`
	ShouldHaveAccess bool   `json:"should_have_access"`
}

func (r *ManageAccessRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type ManageAccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	UserID  string `json:"user_id"`
	Action  string `json:"action"`
}

type AgreementAccessResponse struct {
	AgreementID    string          `json:"agreement_id"`
	AgreementTitle string          `json:"agreement_title"`
	Users          []*UserResponse `json:"users"`
}

type TestReminderResponse struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message"`
	Reminder   agreement.Reminder `json:"reminder"`
	Recipients int                `json:"recipients"`
}

// NamedCount is one bar or slice of a dashboard chart
type NamedCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color,omitempty"`
}

type AgreementStatsResponse struct {
	Active         int          `json:"active"`
	ExpiringSoon   int          `json:"expiring_soon"`
	Expired        int          `json:"expired"`
	DepartmentData []NamedCount `json:"department_data"`
	StatusData     []NamedCount `json:"status_data"`
}
