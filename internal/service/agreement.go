package service

import (
	"context"
	"fmt"
	"time"

	"github.com/papertrails/papertrails/internal/api/dto"
	"github.com/papertrails/papertrails/internal/domain/agreement"
	"github.com/papertrails/papertrails/internal/domain/sequence"
	"github.com/papertrails/papertrails/internal/domain/user"
	ierr "github.com/papertrails/papertrails/internal/errors"
	"github.com/papertrails/papertrails/internal/types"
	"github.com/samber/lo"
)

const (
	agreementActionCreated = "created"
	agreementActionUpdated = "updated"

	expiringSoonDays = 90
)

type AgreementService interface {
	CreateAgreement(ctx context.Context, req dto.CreateAgreementRequest) (*dto.AgreementResponse, error)
	GetAgreement(ctx context.Context, id string) (*dto.AgreementResponse, error)
	UpdateAgreement(ctx context.Context, id string, req dto.UpdateAgreementRequest) (*dto.AgreementResponse, error)
	ListAgreements(ctx context.Context, filter *types.AgreementFilter) (*dto.ListAgreementsResponse, error)

	GetUsersWithAccess(ctx context.Context, id string) (*dto.AgreementAccessResponse, error)
	ManageUserAccess(ctx context.Context, id string, req dto.ManageAccessRequest) (*dto.ManageAccessResponse, error)
	SendTestReminder(ctx context.Context, id string) (*dto.TestReminderResponse, error)
	GetStats(ctx context.Context) (*dto.AgreementStatsResponse, error)
}

type agreementService struct {
	ServiceParams
	reminders     ReminderService
	notifications NotificationService
}

func NewAgreementService(params ServiceParams, reminders ReminderService, notifications NotificationService) AgreementService {
	return &agreementService{
		ServiceParams: params,
		reminders:     reminders,
		notifications: notifications,
	}
}

func (s *agreementService) CreateAgreement(ctx context.Context, req dto.CreateAgreementRequest) (*dto.AgreementResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	a, err := req.ToAgreement(ctx)
	if err != nil {
		return nil, err
	}

	a.ApplyDefaults()
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkRelations(ctx, a); err != nil {
		return nil, err
	}

	today := types.Today()
	err = s.withAllocationRetry(ctx, func(ctx context.Context) error {
		year := a.CreatedAt.Year()
		seq, err := s.SequenceRepo.IncrementAndGet(ctx, sequence.NewYearScope(sequence.NamespaceAgreement, year))
		if err != nil {
			return err
		}

		a.AgreementID = agreement.FormatAgreementID(year, seq)
		a.Refresh(today)
		return s.AgreementRepo.Create(ctx, a)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("created agreement",
		"id", a.ID,
		"agreement_id", a.AgreementID,
		"status", a.AgreementStatus,
	)

	s.afterSave(ctx, a, agreementActionCreated, true, today)
	return &dto.AgreementResponse{Agreement: a}, nil
}

func (s *agreementService) GetAgreement(ctx context.Context, id string) (*dto.AgreementResponse, error) {
	if id == "" {
		return nil, ierr.NewError("agreement_id is required").
			WithHint("Agreement ID is required").
			Mark(ierr.ErrValidation)
	}

	a, err := s.AgreementRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.AgreementResponse{Agreement: a}, nil
}

func (s *agreementService) UpdateAgreement(ctx context.Context, id string, req dto.UpdateAgreementRequest) (*dto.AgreementResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	today := types.Today()
	var (
		a             *agreement.Agreement
		expiryChanged bool
	)

	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		var err error
		a, err = s.AgreementRepo.Get(ctx, id)
		if err != nil {
			return err
		}

		previousExpiry := a.ExpiryDate
		previousUsers := a.AssignedUserIDs

		if err := req.Apply(ctx, a); err != nil {
			return err
		}
		a.ApplyDefaults()
		if err := a.Validate(); err != nil {
			return err
		}
		if err := s.checkRelations(ctx, a); err != nil {
			return err
		}

		a.Refresh(today)
		if err := s.AgreementRepo.Update(ctx, a); err != nil {
			return err
		}

		if req.AssignedUserIDs != nil && !sameMembers(previousUsers, a.AssignedUserIDs) {
			if err := s.AgreementRepo.SetAssignedUsers(ctx, a.ID, a.AssignedUserIDs); err != nil {
				return err
			}
		}

		expiryChanged = !types.SameDay(previousExpiry, a.ExpiryDate)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterSave(ctx, a, agreementActionUpdated, expiryChanged, today)
	return &dto.AgreementResponse{Agreement: a}, nil
}

// afterSave runs once the transaction has committed. Nothing here can fail the save.
func (s *agreementService) afterSave(ctx context.Context, a *agreement.Agreement, action string, expiryChanged bool, today time.Time) {
	payload := &types.AgreementEventPayload{
		AgreementID: a.ID,
		Action:      action,
		ActorID:     types.GetUserID(ctx),
	}
	eventName := types.NotificationEventAgreementUpdated
	if action == agreementActionCreated {
		eventName = types.NotificationEventAgreementCreated
	}
	if err := s.NotificationPublisher.Publish(ctx, eventName, payload); err != nil {
		s.Logger.Errorw("failed to publish agreement event",
			"agreement_id", a.ID,
			"event_name", eventName,
			"error", err,
		)
	}

	if !expiryChanged {
		return
	}
	if _, _, err := s.reminders.Evaluate(ctx, a, today); err != nil {
		s.Logger.Errorw("failed to evaluate agreement reminder",
			"agreement_id", a.ID,
			"error", err,
		)
	}
}

// checkRelations makes sure the referenced party, department, type and parent exist
func (s *agreementService) checkRelations(ctx context.Context, a *agreement.Agreement) error {
	if a.PartyID != nil && *a.PartyID != "" {
		if _, err := s.OrganizationRepo.Get(ctx, *a.PartyID); err != nil {
			return err
		}
	}
	if a.HasDepartment() {
		if _, err := s.DepartmentRepo.Get(ctx, *a.DepartmentID); err != nil {
			return err
		}
	}
	if a.AgreementTypeID != nil && *a.AgreementTypeID != "" {
		if _, err := s.AgreementTypeRepo.Get(ctx, *a.AgreementTypeID); err != nil {
			return err
		}
	}
	if a.ParentAgreementID != nil && *a.ParentAgreementID != "" {
		if *a.ParentAgreementID == a.ID {
			return ierr.NewError("agreement cannot be its own parent").
				WithHint("An agreement cannot be its own parent").
				Mark(ierr.ErrValidation)
		}
		if _, err := s.AgreementRepo.Get(ctx, *a.ParentAgreementID); err != nil {
			return err
		}
	}
	if len(a.AssignedUserIDs) > 0 {
		found, err := s.UserRepo.GetByIDs(ctx, a.AssignedUserIDs)
		if err != nil {
			return err
		}
		if missing := missingIDs(a.AssignedUserIDs, lo.Map(found, func(u *user.User, _ int) string { return u.ID })); len(missing) > 0 {
			return ierr.NewError("assigned user not found").
				WithHint("Some assigned users do not exist").
				WithReportableDetails(map[string]any{
					"user_ids": missing,
				}).
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}

func (s *agreementService) ListAgreements(ctx context.Context, filter *types.AgreementFilter) (*dto.ListAgreementsResponse, error) {
	if filter == nil {
		filter = types.NewAgreementFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	if err := filter.QueryFilter.Validate(); err != nil {
		return nil, err
	}
	if filter.Today.IsZero() {
		filter.Today = types.Today()
	}

	agreements, err := s.AgreementRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.AgreementRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := lo.Map(agreements, func(a *agreement.Agreement, _ int) *dto.AgreementResponse {
		return &dto.AgreementResponse{Agreement: a}
	})
	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

// GetUsersWithAccess lists active members of the owning department and the
// users holding a permission on it
func (s *agreementService) GetUsersWithAccess(ctx context.Context, id string) (*dto.AgreementAccessResponse, error) {
	a, err := s.AgreementRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := &dto.AgreementAccessResponse{
		AgreementID:    a.ID,
		AgreementTitle: a.Title,
		Users:          []*dto.UserResponse{},
	}
	if !a.HasDepartment() {
		return resp, nil
	}

	members, err := s.UserRepo.ListByDepartment(ctx, *a.DepartmentID)
	if err != nil {
		return nil, err
	}
	holders, err := s.UserRepo.ListByDepartmentPermission(ctx, *a.DepartmentID)
	if err != nil {
		return nil, err
	}

	members = lo.Filter(members, func(u *user.User, _ int) bool { return u.IsActive })
	users := lo.UniqBy(append(members, holders...), func(u *user.User) string { return u.ID })
	resp.Users = lo.Map(users, func(u *user.User, _ int) *dto.UserResponse {
		return dto.NewUserResponse(u)
	})
	return resp, nil
}

// ManageUserAccess adds or removes an assigned user. Only the creator or an
// admin may change access.
func (s *agreementService) ManageUserAccess(ctx context.Context, id string, req dto.ManageAccessRequest) (*dto.ManageAccessResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var resp *dto.ManageAccessResponse
	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		a, err := s.AgreementRepo.Get(ctx, id)
		if err != nil {
			return err
		}

		if err := s.checkAccessManager(ctx, a); err != nil {
			return err
		}

		if _, err := s.UserRepo.GetByID(ctx, req.UserID); err != nil {
			return err
		}

		action := "removed"
		assigned := lo.Without(a.AssignedUserIDs, req.UserID)
		if req.ShouldHaveAccess {
			action = "added"
			assigned = append(assigned, req.UserID)
		}

		if err := s.AgreementRepo.SetAssignedUsers(ctx, a.ID, assigned); err != nil {
			return err
		}
		a.AssignedUserIDs = assigned

		resp = &dto.ManageAccessResponse{
			Success: true,
			Message: fmt.Sprintf("User access %s successfully", action),
			UserID:  req.UserID,
			Action:  action,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("changed agreement access",
		"agreement_id", id,
		"user_id", req.UserID,
		"action", resp.Action,
	)
	return resp, nil
}

func (s *agreementService) checkAccessManager(ctx context.Context, a *agreement.Agreement) error {
	actorID := types.GetUserID(ctx)
	if actorID != "" && a.IsCreator(actorID) {
		return nil
	}

	if actorID != "" {
		actor, err := s.UserRepo.GetByID(ctx, actorID)
		if err != nil && !ierr.IsNotFound(err) {
			return err
		}
		if actor != nil && actor.IsAdmin {
			return nil
		}
	}

	return ierr.NewError("only the creator or an admin can manage access").
		WithHint("Only the agreement creator or an admin can manage user access").
		WithReportableDetails(map[string]any{
			"agreement_id": a.ID,
			"user_id":      actorID,
		}).
		Mark(ierr.ErrPermissionDenied)
}

// SendTestReminder delivers today's reminder for the agreement right away,
// or a before-expiry reminder when none is due. The daily dedup is bypassed.
func (s *agreementService) SendTestReminder(ctx context.Context, id string) (*dto.TestReminderResponse, error) {
	a, err := s.AgreementRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	today := types.Today()
	reminder := agreement.DecideReminder(today, a.ExpiryDate, a.ReminderTime)
	if !reminder.IsDue() {
		reminder = agreement.Reminder{
			Kind:          types.ReminderKindBefore,
			DaysRemaining: reminder.DaysRemaining,
			Label:         fmt.Sprintf("%d days", reminder.DaysRemaining),
		}
	}

	report, err := s.notifications.Deliver(ctx, types.NotificationEventAgreementReminder, &types.AgreementEventPayload{
		AgreementID:   a.ID,
		ActorID:       types.GetUserID(ctx),
		ReminderKind:  reminder.Kind,
		DaysRemaining: reminder.DaysRemaining,
		ReminderLabel: reminder.Label,
		Date:          today.Format(types.DateLayout),
	})
	if err != nil {
		if !ierr.IsNotification(err) {
			return nil, err
		}
		s.Logger.Errorw("test reminder delivery failed",
			"agreement_id", a.ID,
			"error", err,
		)
		s.Sentry.CaptureExceptionWithTags(err, map[string]string{
			"agreement_id": a.ID,
			"event_name":   types.NotificationEventAgreementReminder,
		})
		return &dto.TestReminderResponse{
			Success:    false,
			Message:    "Failed to send test reminder",
			Reminder:   reminder,
			Recipients: report.Recipients,
		}, nil
	}

	if report.Recipients == 0 {
		return &dto.TestReminderResponse{
			Success:  false,
			Message:  "No recipients found",
			Reminder: reminder,
		}, nil
	}

	return &dto.TestReminderResponse{
		Success:    true,
		Message:    "Test reminder sent",
		Reminder:   reminder,
		Recipients: report.Recipients,
	}, nil
}

type expiryBucket struct {
	name     string
	color    string
	contains func(a *agreement.Agreement, days int) bool
}

var expiryBuckets = []expiryBucket{
	{
		name:  "Expiry in 6 months",
		color: "#3b82f6",
		contains: func(a *agreement.Agreement, days int) bool {
			return a.AgreementStatus == types.AgreementStatusOngoing && days > 90 && days <= 180
		},
	},
	{
		name:  "Expiry in 3 months",
		color: "#f59e0b",
		contains: func(a *agreement.Agreement, days int) bool {
			return a.AgreementStatus == types.AgreementStatusOngoing && days >= 0 && days <= expiringSoonDays
		},
	},
	{
		name:  "Expiry within 1 month",
		color: "#f97316",
		contains: func(a *agreement.Agreement, days int) bool {
			return a.AgreementStatus == types.AgreementStatusOngoing && days > 0 && days <= 30
		},
	},
	{
		name:  "Expired",
		color: "#ef4444",
		contains: func(a *agreement.Agreement, _ int) bool {
			return a.AgreementStatus == types.AgreementStatusExpired
		},
	},
}

// GetStats computes the dashboard counters over every agreement
func (s *agreementService) GetStats(ctx context.Context) (*dto.AgreementStatsResponse, error) {
	agreements, err := s.AgreementRepo.List(ctx, types.NewNoLimitAgreementFilter())
	if err != nil {
		return nil, err
	}

	executive := false
	deptFilter := types.NewDepartmentFilter()
	deptFilter.QueryFilter = types.NewNoLimitQueryFilter()
	deptFilter.Executive = &executive
	departments, err := s.DepartmentRepo.List(ctx, deptFilter)
	if err != nil {
		return nil, err
	}

	today := types.Today()
	resp := &dto.AgreementStatsResponse{
		DepartmentData: make([]dto.NamedCount, 0, len(departments)),
		StatusData:     make([]dto.NamedCount, len(expiryBuckets)),
	}
	for i, b := range expiryBuckets {
		resp.StatusData[i] = dto.NamedCount{Name: b.name, Color: b.color}
	}

	perDepartment := make(map[string]int)
	for _, a := range agreements {
		days := types.DaysBetween(today, a.ExpiryDate)
		ongoing := a.AgreementStatus == types.AgreementStatusOngoing

		if ongoing && days >= 0 {
			resp.Active++
		}
		if ongoing && days >= 0 && days <= expiringSoonDays {
			resp.ExpiringSoon++
		}
		if a.AgreementStatus == types.AgreementStatusExpired {
			resp.Expired++
		}
		if a.HasDepartment() {
			perDepartment[*a.DepartmentID]++
		}

		for i, b := range expiryBuckets {
			if b.contains(a, days) {
				resp.StatusData[i].Value++
			}
		}
	}

	for _, d := range departments {
		resp.DepartmentData = append(resp.DepartmentData, dto.NamedCount{
			Name:  d.Name,
			Value: perDepartment[d.ID],
		})
	}
	return resp, nil
}

func sameMembers(a, b []string) bool {
	left, right := lo.Difference(a, b)
	return len(left) == 0 && len(right) == 0
}
