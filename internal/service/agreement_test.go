package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/papertrails/papertrails/internal/api/dto"
	"github.com/papertrails/papertrails/internal/domain/department"
	"github.com/papertrails/papertrails/internal/domain/sequence"
	"github.com/papertrails/papertrails/internal/domain/user"
	ierr "github.com/papertrails/papertrails/internal/errors"
	"github.com/papertrails/papertrails/internal/testutil"
	"github.com/papertrails/papertrails/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type AgreementServiceSuite struct {
	testutil.BaseServiceTestSuite
	service AgreementService
	today   time.Time
}

func TestAgreementService(t *testing.T) {
	suite.Run(t, new(AgreementServiceSuite))
}

func (s *AgreementServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.today = types.Today()

	params := newTestServiceParams(&s.BaseServiceTestSuite)
	reminders := NewReminderService(params)
	notifications := NewNotificationService(params, NewAudienceResolver(params.UserRepo, params.Logger))
	s.service = NewAgreementService(params, reminders, notifications)
}

// day renders today shifted by offset days
func (s *AgreementServiceSuite) day(offset int) string {
	return s.today.AddDate(0, 0, offset).Format(types.DateLayout)
}

// request builds an agreement started 400 days ago whose reminder date
// never falls on today
func (s *AgreementServiceSuite) request(title string, expiryOffset int) dto.CreateAgreementRequest {
	return dto.CreateAgreementRequest{
		Title:        title,
		StartDate:    s.day(-400),
		ExpiryDate:   s.day(expiryOffset),
		ReminderTime: s.day(-399),
	}
}

func (s *AgreementServiceSuite) create(req dto.CreateAgreementRequest) *dto.AgreementResponse {
	resp, err := s.service.CreateAgreement(s.GetContext(), req)
	s.Require().NoError(err)
	return resp
}

func (s *AgreementServiceSuite) reminderEvents() []testutil.PublishedEvent {
	return s.GetPublisher().EventsNamed(types.NotificationEventAgreementReminder)
}

func (s *AgreementServiceSuite) TestCreateAgreement_AssignsIDAndStatus() {
	first := s.create(s.request("Cleaning services", 365))
	second := s.create(s.request("Catering", 365))

	year := first.CreatedAt.Year()
	s.Equal(fmt.Sprintf("A_%d_0001", year), first.AgreementID)
	s.Equal(fmt.Sprintf("A_%d_0002", year), second.AgreementID)
	s.Equal(types.AgreementStatusOngoing, first.AgreementStatus)

	s.Len(s.GetPublisher().EventsNamed(types.NotificationEventAgreementCreated), 2)
	s.Empty(s.reminderEvents())
}

func (s *AgreementServiceSuite) TestCreateAgreement_DefaultReminder() {
	req := s.request("Lease", 365)
	req.ReminderTime = ""

	resp := s.create(req)
	s.Equal(s.today.AddDate(0, 0, 365-types.DefaultReminderLeadDays), resp.ReminderTime)
}

func (s *AgreementServiceSuite) TestCreateAgreement_CounterIndependentOfLetters() {
	seq := s.GetStores().SequenceRepo.(*testutil.InMemorySequenceStore)
	seq.Seed(sequence.NewYearScope(sequence.NamespaceLetter, s.today.Year()), 41)

	resp := s.create(s.request("Lease", 365))
	s.Equal(fmt.Sprintf("A_%d_0001", s.today.Year()), resp.AgreementID)
}

func (s *AgreementServiceSuite) TestCreateAgreement_InvalidDatesNotPersisted() {
	tests := []struct {
		name   string
		mutate func(r *dto.CreateAgreementRequest)
	}{
		{
			name:   "expiry before start",
			mutate: func(r *dto.CreateAgreementRequest) { r.ExpiryDate = s.day(-500) },
		},
		{
			name:   "reminder after expiry",
			mutate: func(r *dto.CreateAgreementRequest) { r.ReminderTime = s.day(400) },
		},
		{
			name:   "reminder before start",
			mutate: func(r *dto.CreateAgreementRequest) { r.ReminderTime = s.day(-401) },
		},
		{
			name:   "malformed date",
			mutate: func(r *dto.CreateAgreementRequest) { r.StartDate = "01/02/2026" },
		},
		{
			name:   "default reminder lands before start",
			mutate: func(r *dto.CreateAgreementRequest) { r.StartDate = s.day(300); r.ReminderTime = "" },
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			req := s.request("Broken", 365)
			tt.mutate(&req)

			_, err := s.service.CreateAgreement(s.GetContext(), req)
			s.Require().Error(err)
			s.True(ierr.IsValidation(err))
		})
	}

	list, err := s.service.ListAgreements(s.GetContext(), nil)
	s.Require().NoError(err)
	s.Empty(list.Items)
	s.Empty(s.GetPublisher().Events())

	next, err := s.GetStores().SequenceRepo.PeekNext(s.GetContext(), sequence.NewYearScope(sequence.NamespaceAgreement, s.today.Year()))
	s.Require().NoError(err)
	s.Equal(int64(1), next)
}

func (s *AgreementServiceSuite) TestCreateAgreement_UnknownRelations() {
	req := s.request("Lease", 365)
	req.PartyID = lo.ToPtr("org_missing")
	_, err := s.service.CreateAgreement(s.GetContext(), req)
	s.True(ierr.IsNotFound(err))

	req = s.request("Lease", 365)
	req.AssignedUserIDs = []string{"user_missing"}
	_, err = s.service.CreateAgreement(s.GetContext(), req)
	s.True(ierr.IsValidation(err))
}

func (s *AgreementServiceSuite) TestCreateAgreement_ExpiredOnCreate() {
	resp := s.create(s.request("Old lease", -1))
	s.Equal(types.AgreementStatusExpired, resp.AgreementStatus)
	s.Empty(s.reminderEvents())
}

func (s *AgreementServiceSuite) TestCreateAgreement_DispatchesReminderDueToday() {
	resp := s.create(s.request("Expiring lease", 0))

	events := s.reminderEvents()
	s.Require().Len(events, 1)
	s.Equal(resp.ID, events[0].Payload.AgreementID)
	s.Equal(types.ReminderKindOn, events[0].Payload.ReminderKind)
	s.Equal(s.day(0), events[0].Payload.Date)
}

func (s *AgreementServiceSuite) TestUpdateAgreement_UnchangedExpiryDoesNotDispatch() {
	created := s.create(s.request("Expiring lease", 0))
	s.Require().Len(s.reminderEvents(), 1)
	s.GetPublisher().Clear()

	_, err := s.service.UpdateAgreement(s.GetContext(), created.ID, dto.UpdateAgreementRequest{
		Title: lo.ToPtr("Expiring lease, renamed"),
	})
	s.Require().NoError(err)

	_, err = s.service.UpdateAgreement(s.GetContext(), created.ID, dto.UpdateAgreementRequest{
		ExpiryDate: lo.ToPtr(s.day(0)),
	})
	s.Require().NoError(err)

	s.Empty(s.reminderEvents())
	s.Len(s.GetPublisher().EventsNamed(types.NotificationEventAgreementUpdated), 2)
}

func (s *AgreementServiceSuite) TestUpdateAgreement_ExpiryChangeDispatches() {
	created := s.create(s.request("Lease", 100))
	s.Empty(s.reminderEvents())

	_, err := s.service.UpdateAgreement(s.GetContext(), created.ID, dto.UpdateAgreementRequest{
		ExpiryDate: lo.ToPtr(s.day(30)),
	})
	s.Require().NoError(err)

	events := s.reminderEvents()
	s.Require().Len(events, 1)
	s.Equal(types.ReminderKindBefore, events[0].Payload.ReminderKind)
	s.Equal("30 days", events[0].Payload.ReminderLabel)

	// moving away and back on the same day does not send the same reminder twice
	for _, expiry := range []string{s.day(200), s.day(30)} {
		_, err = s.service.UpdateAgreement(s.GetContext(), created.ID, dto.UpdateAgreementRequest{
			ExpiryDate: lo.ToPtr(expiry),
		})
		s.Require().NoError(err)
	}
	s.Len(s.reminderEvents(), 1)
}

func (s *AgreementServiceSuite) TestUpdateAgreement_RecomputesStatus() {
	created := s.create(s.request("Old lease", -10))
	s.Equal(types.AgreementStatusExpired, created.AgreementStatus)

	resp, err := s.service.UpdateAgreement(s.GetContext(), created.ID, dto.UpdateAgreementRequest{
		ExpiryDate: lo.ToPtr(s.day(300)),
	})
	s.Require().NoError(err)
	s.Equal(types.AgreementStatusOngoing, resp.AgreementStatus)
	s.Equal(created.AgreementID, resp.AgreementID)
}

func (s *AgreementServiceSuite) TestUpdateAgreement_InvalidDateLeavesStoredCopy() {
	created := s.create(s.request("Lease", 100))

	_, err := s.service.UpdateAgreement(s.GetContext(), created.ID, dto.UpdateAgreementRequest{
		ExpiryDate: lo.ToPtr(s.day(-450)),
	})
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))

	got, err := s.service.GetAgreement(s.GetContext(), created.ID)
	s.Require().NoError(err)
	s.Equal(s.today.AddDate(0, 0, 100), got.ExpiryDate)
	s.Empty(s.GetPublisher().EventsNamed(types.NotificationEventAgreementUpdated))
}

func (s *AgreementServiceSuite) TestUpdateAgreement_AssignedUsers() {
	a := s.MustCreateUser("ana@hq.test", "Ana", "")
	b := s.MustCreateUser("bo@hq.test", "Bo", "")

	req := s.request("Lease", 100)
	req.AssignedUserIDs = []string{a.ID}
	created := s.create(req)

	_, err := s.service.UpdateAgreement(s.GetContext(), created.ID, dto.UpdateAgreementRequest{
		AssignedUserIDs: &[]string{b.ID, b.ID},
	})
	s.Require().NoError(err)

	got, err := s.service.GetAgreement(s.GetContext(), created.ID)
	s.Require().NoError(err)
	s.Equal([]string{b.ID}, got.AssignedUserIDs)
}

func (s *AgreementServiceSuite) TestListAgreements_IncludesAssignedUsers() {
	a := s.MustCreateUser("ana@hq.test", "Ana", "")

	req := s.request("Lease", 100)
	req.AssignedUserIDs = []string{a.ID}
	assigned := s.create(req)
	unassigned := s.create(s.request("Parking", 100))

	list, err := s.service.ListAgreements(s.GetContext(), nil)
	s.Require().NoError(err)

	byID := lo.SliceToMap(list.Items, func(r *dto.AgreementResponse) (string, []string) {
		return r.ID, r.AssignedUserIDs
	})
	s.Equal([]string{a.ID}, byID[assigned.ID])
	s.NotNil(byID[unassigned.ID])
	s.Empty(byID[unassigned.ID])
}

func (s *AgreementServiceSuite) TestGetAgreement_NotFound() {
	_, err := s.service.GetAgreement(s.GetContext(), "agr_missing")
	s.True(ierr.IsNotFound(err))
}

func (s *AgreementServiceSuite) TestListAgreements_Search() {
	acme := s.MustCreateOrganization("Acme Facilities", "ACME", types.OrganizationTypeVendor)

	req := s.request("Cleaning services", 100)
	req.PartyID = lo.ToPtr(acme.ID)
	s.create(req)
	s.create(s.request("Catering", -3))

	upcoming := s.request("Security", 500)
	upcoming.StartDate = s.day(10)
	upcoming.ReminderTime = s.day(20)
	s.create(upcoming)

	tests := []struct {
		name   string
		filter *types.AgreementFilter
		want   []string
	}{
		{
			name:   "party name",
			filter: &types.AgreementFilter{Query: "acme"},
			want:   []string{"Cleaning services"},
		},
		{
			name:   "expired",
			filter: &types.AgreementFilter{SearchStatus: types.AgreementSearchStatusExpired},
			want:   []string{"Catering"},
		},
		{
			name:   "active",
			filter: &types.AgreementFilter{SearchStatus: types.AgreementSearchStatusActive},
			want:   []string{"Cleaning services"},
		},
		{
			name:   "upcoming",
			filter: &types.AgreementFilter{SearchStatus: types.AgreementSearchStatusUpcoming},
			want:   []string{"Security"},
		},
		{
			name:   "literal status",
			filter: &types.AgreementFilter{SearchStatus: string(types.AgreementStatusOngoing)},
			want:   []string{"Cleaning services", "Security"},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			resp, err := s.service.ListAgreements(s.GetContext(), tt.filter)
			s.Require().NoError(err)
			titles := lo.Map(resp.Items, func(a *dto.AgreementResponse, _ int) string { return a.Title })
			s.ElementsMatch(tt.want, titles)
			s.Equal(len(tt.want), resp.Pagination.Total)
		})
	}
}

func (s *AgreementServiceSuite) TestManageUserAccess() {
	creator := s.MustCreateUser("creator@hq.test", "Cara", "")
	member := s.MustCreateUser("member@hq.test", "Mo", "")
	outsider := s.MustCreateUser("outsider@hq.test", "Oz", "")

	admin := user.NewUser(s.GetContext(), "admin@hq.test", "Ada", nil)
	admin.IsAdmin = true
	s.Require().NoError(s.GetStores().UserRepo.Create(s.GetContext(), admin))

	created, err := s.service.CreateAgreement(s.GetContextAs(creator.ID), s.request("Lease", 100))
	s.Require().NoError(err)

	resp, err := s.service.ManageUserAccess(s.GetContextAs(creator.ID), created.ID, dto.ManageAccessRequest{
		UserID:           member.ID,
		ShouldHaveAccess: true,
	})
	s.Require().NoError(err)
	s.True(resp.Success)
	s.Equal("User access added successfully", resp.Message)
	s.Equal("added", resp.Action)

	_, err = s.service.ManageUserAccess(s.GetContextAs(outsider.ID), created.ID, dto.ManageAccessRequest{
		UserID: member.ID,
	})
	s.True(ierr.IsPermissionDenied(err))

	resp, err = s.service.ManageUserAccess(s.GetContextAs(admin.ID), created.ID, dto.ManageAccessRequest{
		UserID: member.ID,
	})
	s.Require().NoError(err)
	s.Equal("User access removed successfully", resp.Message)

	got, err := s.service.GetAgreement(s.GetContext(), created.ID)
	s.Require().NoError(err)
	s.Empty(got.AssignedUserIDs)
}

func (s *AgreementServiceSuite) TestGetUsersWithAccess() {
	ctx := s.GetContext()
	legal := s.MustCreateDepartment("Legal", false)
	finance := s.MustCreateDepartment("Finance", false)

	active := s.MustCreateUser("active@hq.test", "Active Member", legal.ID)
	inactive := user.NewUser(ctx, "inactive@hq.test", "Former Member", lo.ToPtr(legal.ID))
	inactive.IsActive = false
	s.Require().NoError(s.GetStores().UserRepo.Create(ctx, inactive))
	auditor := s.MustCreateUser("auditor@hq.test", "Auditor", finance.ID)
	s.Require().NoError(s.GetStores().DepartmentRepo.CreatePermission(ctx,
		department.NewPermission(auditor.ID, legal.ID, types.PermissionTypeView, nil)))

	req := s.request("Lease", 100)
	req.DepartmentID = lo.ToPtr(legal.ID)
	created := s.create(req)

	resp, err := s.service.GetUsersWithAccess(ctx, created.ID)
	s.Require().NoError(err)
	ids := lo.Map(resp.Users, func(u *dto.UserResponse, _ int) string { return u.ID })
	s.ElementsMatch([]string{active.ID, auditor.ID}, ids)
	s.Equal("Lease", resp.AgreementTitle)
}

func (s *AgreementServiceSuite) TestSendTestReminder() {
	s.Run("no recipients", func() {
		created := s.create(s.request("Lonely lease", 100))

		resp, err := s.service.SendTestReminder(s.GetContext(), created.ID)
		s.Require().NoError(err)
		s.False(resp.Success)
		s.Equal("No recipients found", resp.Message)
		s.Equal(types.ReminderKindBefore, resp.Reminder.Kind)
		s.Equal("100 days", resp.Reminder.Label)
	})

	s.Run("delivered", func() {
		owner := s.MustCreateUser("owner@hq.test", "Owner", "")
		req := s.request("Shared lease", 30)
		req.AssignedUserIDs = []string{owner.ID}
		created := s.create(req)

		resp, err := s.service.SendTestReminder(s.GetContext(), created.ID)
		s.Require().NoError(err)
		s.True(resp.Success)
		s.Equal("Test reminder sent", resp.Message)
		s.Equal(1, resp.Recipients)

		msgs := s.GetEmailSender().Messages()
		s.Require().NotEmpty(msgs)
		last := msgs[len(msgs)-1]
		s.Equal([]string{"owner@hq.test"}, last.To)
		s.Contains(last.Subject, "Reminder: Agreement 'Shared lease' expires on")
	})

	s.Run("delivery failure is reported, not returned", func() {
		broken := s.MustCreateUser("broken@hq.test", "Broken Inbox", "")
		s.GetEmailSender().FailFor("broken@hq.test", fmt.Errorf("mailbox unavailable"))

		req := s.request("Failing lease", 30)
		req.AssignedUserIDs = []string{broken.ID}
		created := s.create(req)

		resp, err := s.service.SendTestReminder(s.GetContext(), created.ID)
		s.Require().NoError(err)
		s.False(resp.Success)
		s.Equal("Failed to send test reminder", resp.Message)
	})
}

func (s *AgreementServiceSuite) TestGetStats() {
	legal := s.MustCreateDepartment("Legal", false)
	s.MustCreateDepartment("Board", true)

	soon := s.request("Soon", 20)
	soon.DepartmentID = lo.ToPtr(legal.ID)
	s.create(soon)

	later := s.request("Later", 120)
	later.DepartmentID = lo.ToPtr(legal.ID)
	s.create(later)

	s.create(s.request("Gone", -5))

	stats, err := s.service.GetStats(s.GetContext())
	s.Require().NoError(err)
	s.Equal(2, stats.Active)
	s.Equal(1, stats.ExpiringSoon)
	s.Equal(1, stats.Expired)

	s.Require().Len(stats.DepartmentData, 1)
	s.Equal(dto.NamedCount{Name: "Legal", Value: 2}, stats.DepartmentData[0])

	values := lo.Map(stats.StatusData, func(c dto.NamedCount, _ int) int { return c.Value })
	s.Equal([]int{1, 1, 1, 1}, values)
}
