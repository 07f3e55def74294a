package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/papertrails/papertrails/internal/domain/agreement"
	"github.com/papertrails/papertrails/internal/email"
	ierr "github.com/papertrails/papertrails/internal/errors"
	"github.com/papertrails/papertrails/internal/types"
)

const displayDateLayout = "January 2, 2006"

// DeliveryReport summarizes one notification delivery
type DeliveryReport struct {
	Recipients int
	Sent       int
	Failed     int
}

type NotificationService interface {
	// Deliver resolves the audience of the agreement in the payload and mails
	// each member once. Failures are returned marked ErrNotification and are
	// never meant to reach the API caller of the originating save.
	Deliver(ctx context.Context, eventName string, payload *types.AgreementEventPayload) (*DeliveryReport, error)
}

type notificationService struct {
	ServiceParams
	audience *AudienceResolver
}

func NewNotificationService(params ServiceParams, audience *AudienceResolver) NotificationService {
	return &notificationService{
		ServiceParams: params,
		audience:      audience,
	}
}

func (s *notificationService) Deliver(ctx context.Context, eventName string, payload *types.AgreementEventPayload) (*DeliveryReport, error) {
	a, err := s.AgreementRepo.Get(ctx, payload.AgreementID)
	if err != nil {
		return nil, err
	}

	users, err := s.audience.Resolve(ctx, a)
	if err != nil {
		return nil, err
	}

	to := emailsOf(users)
	report := &DeliveryReport{Recipients: len(to)}
	if len(to) == 0 {
		s.Logger.Infow("no recipients for agreement notification",
			"agreement_id", a.ID,
			"event_name", eventName,
		)
		return report, nil
	}

	msg, err := s.buildMessage(ctx, eventName, a, payload)
	if err != nil {
		return report, err
	}
	msg.To = to

	result, err := s.EmailSender.Send(ctx, *msg)
	if result != nil {
		report.Sent = len(result.Sent)
		report.Failed = len(result.Failed)
	}
	if err != nil {
		return report, ierr.WithError(err).
			WithHint("Failed to deliver agreement notification").
			WithReportableDetails(map[string]any{
				"agreement_id": a.ID,
				"event_name":   eventName,
				"recipients":   to,
			}).
			Mark(ierr.ErrNotification)
	}

	s.Logger.Infow("delivered agreement notification",
		"agreement_id", a.ID,
		"event_name", eventName,
		"recipients", len(to),
	)
	return report, nil
}

func (s *notificationService) buildMessage(ctx context.Context, eventName string, a *agreement.Agreement, payload *types.AgreementEventPayload) (*email.Message, error) {
	data := s.emailData(ctx, a)

	var subject, template string
	switch eventName {
	case types.NotificationEventAgreementReminder:
		template = email.TemplateAgreementReminder
		data.Kind = string(payload.ReminderKind)
		data.TimeRemaining = payload.ReminderLabel
		subject = reminderSubject(payload.ReminderKind, a.Title, data.ExpiryDate)
	case types.NotificationEventAgreementCreated, types.NotificationEventAgreementUpdated:
		template = email.TemplateAgreementAction
		data.Action = payload.Action
		data.ActorName = s.actorName(ctx, payload.ActorID)
		subject = fmt.Sprintf("Agreement %s: %s", payload.Action, a.Title)
	default:
		return nil, ierr.NewError("unknown notification event").
			WithHintf("Unknown notification event %s", eventName).
			Mark(ierr.ErrValidation)
	}

	text, html, err := email.Render(template, data)
	if err != nil {
		return nil, err
	}
	return &email.Message{Subject: subject, Text: text, HTML: html}, nil
}

func reminderSubject(kind types.ReminderKind, title, date string) string {
	switch kind {
	case types.ReminderKindOn:
		return fmt.Sprintf("Agreement '%s' has expired today (%s)", title, date)
	case types.ReminderKindAfter:
		return fmt.Sprintf("Follow-up: Agreement '%s' expired on %s", title, date)
	default:
		return fmt.Sprintf("Reminder: Agreement '%s' expires on %s", title, date)
	}
}

// emailData fills the agreement details. Lookups that fail leave the field
// as "N/A" so a missing party never blocks a notification.
func (s *notificationService) emailData(ctx context.Context, a *agreement.Agreement) *email.AgreementEmailData {
	data := &email.AgreementEmailData{
		CompanyName:   s.Config.Notification.CompanyName,
		Title:         a.Title,
		AgreementID:   a.AgreementID,
		Reference:     orNA(a.AgreementReference),
		Department:    "N/A",
		Partner:       "N/A",
		AgreementType: "N/A",
		StartDate:     a.StartDate.Format(displayDateLayout),
		ExpiryDate:    a.ExpiryDate.Format(displayDateLayout),
		Link:          fmt.Sprintf("%s/agreements/%s", strings.TrimRight(s.Config.Notification.FrontendURL, "/"), a.ID),
	}

	if a.HasDepartment() {
		if dept, err := s.DepartmentRepo.Get(ctx, *a.DepartmentID); err == nil {
			data.Department = dept.Name
		}
	}
	if a.PartyID != nil {
		if party, err := s.OrganizationRepo.Get(ctx, *a.PartyID); err == nil {
			data.Partner = party.Name
		}
	}
	if a.AgreementTypeID != nil {
		if t, err := s.AgreementTypeRepo.Get(ctx, *a.AgreementTypeID); err == nil {
			data.AgreementType = t.Name
		}
	}
	return data
}

func (s *notificationService) actorName(ctx context.Context, userID string) string {
	if userID == "" {
		return "System"
	}
	u, err := s.UserRepo.GetByID(ctx, userID)
	if err != nil || u.FullName == "" {
		return "System"
	}
	return u.FullName
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
