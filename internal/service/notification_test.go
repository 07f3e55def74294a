package service

import (
	"context"
	"errors"
	"testing"

	"github.com/papertrails/papertrails/internal/domain/agreement"
	"github.com/papertrails/papertrails/internal/domain/department"
	"github.com/papertrails/papertrails/internal/domain/user"
	ierr "github.com/papertrails/papertrails/internal/errors"
	"github.com/papertrails/papertrails/internal/testutil"
	"github.com/papertrails/papertrails/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type NotificationServiceSuite struct {
	testutil.BaseServiceTestSuite
	audience *AudienceResolver
	service  NotificationService
	testData struct {
		legal     *department.Department
		board     *department.Department
		agreement *agreement.Agreement
	}
}

func TestNotificationService(t *testing.T) {
	suite.Run(t, new(NotificationServiceSuite))
}

func (s *NotificationServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	params := newTestServiceParams(&s.BaseServiceTestSuite)
	s.audience = NewAudienceResolver(params.UserRepo, params.Logger)
	s.service = NewNotificationService(params, s.audience)
	s.setupTestData()
}

func (s *NotificationServiceSuite) setupTestData() {
	ctx := s.GetContext()
	s.testData.legal = s.MustCreateDepartment("Legal", false)
	s.testData.board = s.MustCreateDepartment("Board", true)

	today := types.Today()
	a := agreement.NewAgreement(ctx, "Office lease", today.AddDate(-1, 0, 0), today.AddDate(0, 0, 30))
	a.AgreementID = "A_2026_0007"
	a.DepartmentID = lo.ToPtr(s.testData.legal.ID)
	a.ApplyDefaults()
	a.Refresh(today)
	s.Require().NoError(s.GetStores().AgreementRepo.Create(ctx, a))
	s.testData.agreement = a
}

func (s *NotificationServiceSuite) reminderPayload(kind types.ReminderKind, label string) *types.AgreementEventPayload {
	return &types.AgreementEventPayload{
		AgreementID:   s.testData.agreement.ID,
		ReminderKind:  kind,
		ReminderLabel: label,
		Date:          types.Today().Format(types.DateLayout),
	}
}

func (s *NotificationServiceSuite) TestResolve_DepartmentMembersAndExecutive() {
	creator := s.MustCreateUser("a@hq.test", "Creator", s.testData.legal.ID)
	s.MustCreateUser("b@hq.test", "Member", s.testData.legal.ID)
	s.MustCreateUser("c@hq.test", "Member", s.testData.legal.ID)
	s.MustCreateUser("ceo@hq.test", "Chief", s.testData.board.ID)

	a := s.testData.agreement
	a.CreatorID = lo.ToPtr(creator.ID)

	users, err := s.audience.Resolve(s.GetContext(), a)
	s.Require().NoError(err)
	s.Len(users, 4)
}

func (s *NotificationServiceSuite) TestResolve_UnionIsDeduplicated() {
	ctx := s.GetContext()
	member := s.MustCreateUser("member@hq.test", "Member", s.testData.legal.ID)
	exec := s.MustCreateUser("exec@hq.test", "Exec", s.testData.board.ID)
	s.Require().NoError(s.GetStores().DepartmentRepo.CreatePermission(ctx,
		department.NewPermission(exec.ID, s.testData.legal.ID, types.PermissionTypeView, nil)))

	a := s.testData.agreement
	a.AssignedUserIDs = []string{member.ID, exec.ID}
	a.CreatorID = lo.ToPtr(member.ID)

	users, err := s.audience.Resolve(ctx, a)
	s.Require().NoError(err)
	s.ElementsMatch([]string{member.ID, exec.ID}, lo.Map(users, func(u *user.User, _ int) string { return u.ID }))
}

func (s *NotificationServiceSuite) TestResolve_EmptyAudience() {
	a := agreement.NewAgreement(s.GetContext(), "Orphan", types.Today(), types.Today().AddDate(1, 0, 0))

	users, err := s.audience.Resolve(s.GetContext(), a)
	s.Require().NoError(err)
	s.Empty(users)
}

type failingRule struct{}

func (failingRule) Name() string { return "failing" }

func (failingRule) Select(context.Context, *agreement.Agreement) ([]*user.User, error) {
	return nil, errors.New("connection reset")
}

func (s *NotificationServiceSuite) TestResolve_RuleFailure() {
	resolver := NewAudienceResolverWithRules(s.GetLogger(), failingRule{})
	_, err := resolver.Resolve(s.GetContext(), s.testData.agreement)
	s.Require().Error(err)
	s.True(ierr.IsDatabase(err))
}

func (s *NotificationServiceSuite) TestDeliver_SkipsInactiveAndEmailless() {
	ctx := s.GetContext()
	s.MustCreateUser("active@hq.test", "Active", s.testData.legal.ID)

	inactive := user.NewUser(ctx, "gone@hq.test", "Gone", lo.ToPtr(s.testData.legal.ID))
	inactive.IsActive = false
	s.Require().NoError(s.GetStores().UserRepo.Create(ctx, inactive))
	s.Require().NoError(s.GetStores().UserRepo.Create(ctx, user.NewUser(ctx, "", "No Mail", lo.ToPtr(s.testData.legal.ID))))

	report, err := s.service.Deliver(ctx, types.NotificationEventAgreementReminder,
		s.reminderPayload(types.ReminderKindBefore, "30 days"))
	s.Require().NoError(err)
	s.Equal(1, report.Recipients)
	s.Equal(1, report.Sent)

	msgs := s.GetEmailSender().Messages()
	s.Require().Len(msgs, 1)
	s.Equal([]string{"active@hq.test"}, msgs[0].To)
}

func (s *NotificationServiceSuite) TestDeliver_Subjects() {
	s.MustCreateUser("member@hq.test", "Member", s.testData.legal.ID)
	expiry := s.testData.agreement.ExpiryDate.Format(displayDateLayout)

	tests := []struct {
		kind    types.ReminderKind
		label   string
		subject string
		body    string
	}{
		{
			kind:    types.ReminderKindBefore,
			label:   "30 days",
			subject: "Reminder: Agreement 'Office lease' expires on " + expiry,
			body:    "expires in 30 days",
		},
		{
			kind:    types.ReminderKindOn,
			subject: "Agreement 'Office lease' has expired today (" + expiry + ")",
			body:    "has expired today",
		},
		{
			kind:    types.ReminderKindAfter,
			label:   "1 month",
			subject: "Follow-up: Agreement 'Office lease' expired on " + expiry,
			body:    "expired 1 month ago",
		},
	}

	for _, tt := range tests {
		s.Run(string(tt.kind), func() {
			s.GetEmailSender().Clear()
			_, err := s.service.Deliver(s.GetContext(), types.NotificationEventAgreementReminder, s.reminderPayload(tt.kind, tt.label))
			s.Require().NoError(err)

			msgs := s.GetEmailSender().Messages()
			s.Require().Len(msgs, 1)
			s.Equal(tt.subject, msgs[0].Subject)
			s.Contains(msgs[0].Text, tt.body)
			s.Contains(msgs[0].Text, "https://papers.example.com/agreements/"+s.testData.agreement.ID)
			s.Contains(msgs[0].HTML, "Office lease")
		})
	}
}

func (s *NotificationServiceSuite) TestDeliver_ActionEvent() {
	actor := s.MustCreateUser("actor@hq.test", "Avery Actor", s.testData.legal.ID)

	_, err := s.service.Deliver(s.GetContext(), types.NotificationEventAgreementUpdated, &types.AgreementEventPayload{
		AgreementID: s.testData.agreement.ID,
		Action:      "updated",
		ActorID:     actor.ID,
	})
	s.Require().NoError(err)

	msgs := s.GetEmailSender().Messages()
	s.Require().Len(msgs, 1)
	s.Equal("Agreement updated: Office lease", msgs[0].Subject)
	s.Contains(msgs[0].Text, "Avery Actor")
	s.Contains(msgs[0].Text, "Legal")
}

func (s *NotificationServiceSuite) TestDeliver_NoRecipientsIsNoop() {
	report, err := s.service.Deliver(s.GetContext(), types.NotificationEventAgreementReminder,
		s.reminderPayload(types.ReminderKindOn, ""))
	s.Require().NoError(err)
	s.Equal(0, report.Recipients)
	s.Empty(s.GetEmailSender().Messages())
}

func (s *NotificationServiceSuite) TestDeliver_FailureIsMarked() {
	s.MustCreateUser("ok@hq.test", "Ok", s.testData.legal.ID)
	s.MustCreateUser("bounce@hq.test", "Bounce", s.testData.legal.ID)
	s.GetEmailSender().FailFor("bounce@hq.test", errors.New("mailbox full"))

	report, err := s.service.Deliver(s.GetContext(), types.NotificationEventAgreementReminder,
		s.reminderPayload(types.ReminderKindBefore, "7 days"))
	s.Require().Error(err)
	s.True(ierr.IsNotification(err))
	s.Equal(1, report.Sent)
	s.Equal(1, report.Failed)
}

func (s *NotificationServiceSuite) TestDeliver_UnknownAgreement() {
	_, err := s.service.Deliver(s.GetContext(), types.NotificationEventAgreementReminder, &types.AgreementEventPayload{
		AgreementID: "agr_missing",
	})
	s.True(ierr.IsNotFound(err))
}
