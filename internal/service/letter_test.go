package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/papertrails/papertrails/internal/api/dto"
	"github.com/papertrails/papertrails/internal/domain/category"
	"github.com/papertrails/papertrails/internal/domain/letter"
	"github.com/papertrails/papertrails/internal/domain/organization"
	"github.com/papertrails/papertrails/internal/domain/recipient"
	"github.com/papertrails/papertrails/internal/domain/sequence"
	ierr "github.com/papertrails/papertrails/internal/errors"
	"github.com/papertrails/papertrails/internal/testutil"
	"github.com/papertrails/papertrails/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type LetterServiceSuite struct {
	testutil.BaseServiceTestSuite
	params     ServiceParams
	references ReferenceService
	service    LetterService
	testData   struct {
		sender    *organization.Organization
		vendor    *organization.Organization
		recipient *recipient.Recipient
		loner     *recipient.Recipient
		category  *category.Category
		year      int
	}
}

func TestLetterService(t *testing.T) {
	suite.Run(t, new(LetterServiceSuite))
}

func (s *LetterServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService()
	s.setupTestData()
}

func (s *LetterServiceSuite) TearDownTest() {
	s.BaseServiceTestSuite.TearDownTest()
	s.GetConfig().Reference.PerOrganization = false
}

func (s *LetterServiceSuite) setupService() {
	s.params = newTestServiceParams(&s.BaseServiceTestSuite)
	s.references = NewReferenceService(s.params, OrganizationSenderCode{})
	s.service = NewLetterService(s.params, s.references)
}

func (s *LetterServiceSuite) setupTestData() {
	ctx := s.GetContext()
	stores := s.GetStores()

	s.testData.year = time.Now().UTC().Year()
	s.testData.sender = s.MustCreateOrganization("Head Office", "hq", types.OrganizationTypeInternal)
	s.testData.vendor = s.MustCreateOrganization("Acme Ltd", "ACME", types.OrganizationTypeRecipient)

	s.testData.recipient = recipient.NewRecipient(ctx, "Jane Roe", "jane@acme.test", lo.ToPtr(s.testData.vendor.ID))
	s.NoError(stores.RecipientRepo.Create(ctx, s.testData.recipient))

	s.testData.loner = recipient.NewRecipient(ctx, "Sam Poe", "sam@example.test", nil)
	s.NoError(stores.RecipientRepo.Create(ctx, s.testData.loner))

	s.testData.category = category.NewCategory(ctx, "adm")
	s.NoError(stores.CategoryRepo.Create(ctx, s.testData.category))
}

func (s *LetterServiceSuite) createRequest() dto.CreateLetterRequest {
	return dto.CreateLetterRequest{
		OrganizationID: s.testData.sender.ID,
		RecipientID:    s.testData.recipient.ID,
		CategoryID:     s.testData.category.ID,
		Subject:        "Renewal of services",
	}
}

func (s *LetterServiceSuite) expectedReference(seq int) string {
	return fmt.Sprintf("HQ/ACME/ADM/%d/%04d", s.testData.year, seq)
}

func (s *LetterServiceSuite) TestCreateLetter_AssignsReference() {
	resp, err := s.service.CreateLetter(s.GetContext(), s.createRequest())
	s.Require().NoError(err)
	s.Equal(s.expectedReference(1), lo.FromPtr(resp.ReferenceNumber))
	s.True(resp.UseRecipientName)
	s.True(resp.UseCCName)

	second, err := s.service.CreateLetter(s.GetContext(), s.createRequest())
	s.Require().NoError(err)
	s.Equal(s.expectedReference(2), lo.FromPtr(second.ReferenceNumber))
}

func (s *LetterServiceSuite) TestCreateLetter_Preconditions() {
	tests := []struct {
		name    string
		mutate  func(r *dto.CreateLetterRequest)
		wantMsg string
	}{
		{
			name:    "missing category",
			mutate:  func(r *dto.CreateLetterRequest) { r.CategoryID = "" },
			wantMsg: "category must be set before generating reference number",
		},
		{
			name:    "missing organization",
			mutate:  func(r *dto.CreateLetterRequest) { r.OrganizationID = "" },
			wantMsg: "organization must be set",
		},
		{
			name:    "missing recipient",
			mutate:  func(r *dto.CreateLetterRequest) { r.RecipientID = "" },
			wantMsg: "recipient must be set",
		},
		{
			name:    "recipient without organization",
			mutate:  func(r *dto.CreateLetterRequest) { r.RecipientID = s.testData.loner.ID },
			wantMsg: "recipient must have an organization",
		},
		{
			name:    "unknown category",
			mutate:  func(r *dto.CreateLetterRequest) { r.CategoryID = "cat_missing" },
			wantMsg: "category must be set before generating reference number",
		},
		{
			name:    "unknown organization",
			mutate:  func(r *dto.CreateLetterRequest) { r.OrganizationID = "org_missing" },
			wantMsg: "organization must be set",
		},
		{
			name:    "unknown recipient",
			mutate:  func(r *dto.CreateLetterRequest) { r.RecipientID = "rcpt_missing" },
			wantMsg: "recipient must be set",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			req := s.createRequest()
			tt.mutate(&req)

			_, err := s.service.CreateLetter(s.GetContext(), req)
			s.Require().Error(err)
			s.True(ierr.IsValidation(err))
			s.False(ierr.IsNotFound(err))
			s.Contains(err.Error(), tt.wantMsg)
		})
	}

	// failed attempts never consume a slot
	resp, err := s.service.CreateLetter(s.GetContext(), s.createRequest())
	s.Require().NoError(err)
	s.Equal(s.expectedReference(1), lo.FromPtr(resp.ReferenceNumber))
}

func (s *LetterServiceSuite) TestCreateLetter_ConcurrentAllocationsAreDistinct() {
	const n = 25

	var wg sync.WaitGroup
	refs := make([]string, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := s.service.CreateLetter(s.GetContext(), s.createRequest())
			errs[i] = err
			if err == nil {
				refs[i] = lo.FromPtr(resp.ReferenceNumber)
			}
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		s.Require().NoError(err)
	}
	s.Len(lo.Uniq(refs), n)

	want := make([]string, n)
	for i := range want {
		want[i] = s.expectedReference(i + 1)
	}
	s.ElementsMatch(want, refs)
}

func (s *LetterServiceSuite) TestCreateLetter_RetriesLockTimeout() {
	seq := s.GetStores().SequenceRepo.(*testutil.InMemorySequenceStore)
	seq.FailNext(2)

	resp, err := s.service.CreateLetter(s.GetContext(), s.createRequest())
	s.Require().NoError(err)
	s.Equal(s.expectedReference(1), lo.FromPtr(resp.ReferenceNumber))
	s.Equal(int64(3), s.GetDB().TxCount())
}

func (s *LetterServiceSuite) TestCreateLetter_GivesUpAfterMaxRetries() {
	seq := s.GetStores().SequenceRepo.(*testutil.InMemorySequenceStore)
	seq.FailNext(10)

	_, err := s.service.CreateLetter(s.GetContext(), s.createRequest())
	s.Require().Error(err)
	s.True(ierr.IsConcurrency(err))
	s.Equal(int64(s.GetConfig().Sequence.MaxRetries+1), s.GetDB().TxCount())

	list, err := s.service.ListLetters(s.GetContext(), nil)
	s.Require().NoError(err)
	s.Empty(list.Items)
}

func (s *LetterServiceSuite) TestCreateLetter_PerOrganizationCounters() {
	s.GetConfig().Reference.PerOrganization = true
	other := s.MustCreateOrganization("Branch", "br", types.OrganizationTypeInternal)

	first, err := s.service.CreateLetter(s.GetContext(), s.createRequest())
	s.Require().NoError(err)

	req := s.createRequest()
	req.OrganizationID = other.ID
	second, err := s.service.CreateLetter(s.GetContext(), req)
	s.Require().NoError(err)

	s.Equal(s.expectedReference(1), lo.FromPtr(first.ReferenceNumber))
	s.Equal(fmt.Sprintf("BR/ACME/ADM/%d/0001", s.testData.year), lo.FromPtr(second.ReferenceNumber))
}

func (s *LetterServiceSuite) TestCreateLetter_CopiesAndReferences() {
	ctx := s.GetContext()
	dept := s.MustCreateDepartment("Legal", false)
	colleague := s.MustCreateUser("lee@hq.test", "Lee Park", dept.ID)

	first, err := s.service.CreateLetter(ctx, s.createRequest())
	s.Require().NoError(err)

	req := s.createRequest()
	req.CopyOtherOrg = []string{s.testData.loner.ID, s.testData.loner.ID}
	req.CopyMyOrg = []string{colleague.ID}
	req.InternalReferences = []string{lo.FromPtr(first.ReferenceNumber), "XX/YY/ZZ/1999/0001"}
	req.ExternalReferences = []string{"ACME/OUT/77", ""}
	req.Attachments = []dto.AttachmentRequest{{FileName: "quote.pdf", FileSize: 1536}}

	resp, err := s.service.CreateLetter(ctx, req)
	s.Require().NoError(err)
	s.Len(resp.CopyRecipients, 2)
	s.Len(resp.References, 2)
	s.Require().Len(resp.Attachments, 1)
	s.Equal("1.5 KB", resp.Attachments[0].FileSizeHuman)
	s.Equal("application/pdf", resp.Attachments[0].MimeType)

	internal, ok := lo.Find(resp.References, func(r *letter.Reference) bool { return r.InternalLetterID != nil })
	s.Require().True(ok)
	s.Equal(first.ID, *internal.InternalLetterID)
}

func (s *LetterServiceSuite) TestCreateLetter_UnknownCopy() {
	req := s.createRequest()
	req.CopyMyOrg = []string{"user_missing"}

	_, err := s.service.CreateLetter(s.GetContext(), req)
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))

	// nothing was allocated
	next, err := s.GetStores().SequenceRepo.PeekNext(s.GetContext(), sequence.NewYearScope(sequence.NamespaceLetter, s.testData.year))
	s.Require().NoError(err)
	s.Equal(int64(1), next)
}

func (s *LetterServiceSuite) TestUpdateLetter_KeepsReference() {
	ctx := s.GetContext()
	created, err := s.service.CreateLetter(ctx, s.createRequest())
	s.Require().NoError(err)

	resp, err := s.service.UpdateLetter(ctx, created.ID, dto.UpdateLetterRequest{
		Subject:   lo.ToPtr("Renewal of services, revised"),
		UseCCName: lo.ToPtr(false),
	})
	s.Require().NoError(err)
	s.Equal("Renewal of services, revised", resp.Subject)
	s.False(resp.UseCCName)

	got, err := s.service.GetLetter(ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(lo.FromPtr(created.ReferenceNumber), lo.FromPtr(got.ReferenceNumber))

	next, err := s.GetStores().SequenceRepo.PeekNext(ctx, sequence.NewYearScope(sequence.NamespaceLetter, s.testData.year))
	s.Require().NoError(err)
	s.Equal(int64(2), next)
}

func (s *LetterServiceSuite) TestGetLetter_NotFound() {
	_, err := s.service.GetLetter(s.GetContext(), "let_missing")
	s.True(ierr.IsNotFound(err))

	_, err = s.service.GetLetter(s.GetContext(), "")
	s.True(ierr.IsValidation(err))
}

func (s *LetterServiceSuite) TestListLetters_Filter() {
	ctx := s.GetContext()
	_, err := s.service.CreateLetter(ctx, s.createRequest())
	s.Require().NoError(err)
	_, err = s.service.CreateLetter(ctx, s.createRequest())
	s.Require().NoError(err)

	filter := types.NewLetterFilter()
	filter.CategoryID = s.testData.category.ID
	filter.Limit = lo.ToPtr(1)

	resp, err := s.service.ListLetters(ctx, filter)
	s.Require().NoError(err)
	s.Len(resp.Items, 1)
	s.Equal(2, resp.Pagination.Total)

	filter = types.NewLetterFilter()
	filter.RecipientID = s.testData.loner.ID
	resp, err = s.service.ListLetters(ctx, filter)
	s.Require().NoError(err)
	s.Empty(resp.Items)
}

func (s *LetterServiceSuite) TestPreview() {
	ctx := s.GetContext()

	resp, err := s.references.Preview(ctx, &dto.ReferencePreviewRequest{OrganizationID: s.testData.sender.ID})
	s.Require().NoError(err)
	s.Equal(types.ReferencePreviewPlaceholder, resp.TentativeReferenceNumber)

	req := &dto.ReferencePreviewRequest{
		OrganizationID: s.testData.sender.ID,
		RecipientID:    s.testData.recipient.ID,
		CategoryID:     s.testData.category.ID,
	}
	for i := 0; i < 3; i++ {
		resp, err = s.references.Preview(ctx, req)
		s.Require().NoError(err)
		s.Equal(s.expectedReference(1), resp.TentativeReferenceNumber)
	}

	_, err = s.service.CreateLetter(ctx, s.createRequest())
	s.Require().NoError(err)

	resp, err = s.references.Preview(ctx, req)
	s.Require().NoError(err)
	s.Equal(s.expectedReference(2), resp.TentativeReferenceNumber)

	req.Date = "2031-03-04"
	resp, err = s.references.Preview(ctx, req)
	s.Require().NoError(err)
	s.Equal("HQ/ACME/ADM/2031/0001", resp.TentativeReferenceNumber)
}

func (s *LetterServiceSuite) TestPreview_UnresolvedRelations() {
	tests := []struct {
		name         string
		mutate       func(r *dto.ReferencePreviewRequest)
		wantNotFound bool
	}{
		{
			name:         "unknown organization",
			mutate:       func(r *dto.ReferencePreviewRequest) { r.OrganizationID = "org_missing" },
			wantNotFound: true,
		},
		{
			name:         "unknown recipient",
			mutate:       func(r *dto.ReferencePreviewRequest) { r.RecipientID = "rcpt_missing" },
			wantNotFound: true,
		},
		{
			name:         "unknown category",
			mutate:       func(r *dto.ReferencePreviewRequest) { r.CategoryID = "cat_missing" },
			wantNotFound: true,
		},
		{
			name:   "recipient without organization",
			mutate: func(r *dto.ReferencePreviewRequest) { r.RecipientID = s.testData.loner.ID },
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			req := &dto.ReferencePreviewRequest{
				OrganizationID: s.testData.sender.ID,
				RecipientID:    s.testData.recipient.ID,
				CategoryID:     s.testData.category.ID,
			}
			tt.mutate(req)

			_, err := s.references.Preview(s.GetContext(), req)
			s.Require().Error(err)
			if tt.wantNotFound {
				s.True(ierr.IsNotFound(err))
			} else {
				s.True(ierr.IsValidation(err))
				s.Contains(err.Error(), "recipient must have an organization")
			}
		})
	}
}

func (s *LetterServiceSuite) TestFixedSenderCode() {
	s.GetConfig().Reference.SenderCodeMode = types.SenderCodeModeFixed
	s.GetConfig().Reference.FixedSenderCode = "pt"
	defer func() {
		s.GetConfig().Reference.SenderCodeMode = types.SenderCodeModeOrganization
		s.GetConfig().Reference.FixedSenderCode = ""
	}()

	references := NewReferenceService(s.params, NewSenderCodeResolver(s.GetConfig()))
	ref, err := references.Allocate(s.GetContext(), LetterContext{
		OrganizationID: s.testData.sender.ID,
		RecipientID:    s.testData.recipient.ID,
		CategoryID:     s.testData.category.ID,
		CreatedAt:      time.Date(2027, time.May, 1, 0, 0, 0, 0, time.UTC),
	})
	s.Require().NoError(err)
	s.Equal("PT/ACME/ADM/2027/0001", ref)
}

// a cancelled request stops retrying
func (s *LetterServiceSuite) TestAllocate_CancelledContext() {
	ctx, cancel := context.WithCancel(s.GetContext())
	cancel()

	s.GetStores().SequenceRepo.(*testutil.InMemorySequenceStore).FailNext(1)
	_, err := s.service.CreateLetter(ctx, s.createRequest())
	s.Require().Error(err)
}
