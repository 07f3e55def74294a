package service

import (
	"github.com/papertrails/papertrails/internal/testutil"
)

// newTestServiceParams wires every in-memory store of the suite
func newTestServiceParams(s *testutil.BaseServiceTestSuite) ServiceParams {
	stores := s.GetStores()
	return ServiceParams{
		Logger:                s.GetLogger(),
		Config:                s.GetConfig(),
		DB:                    s.GetDB(),
		SequenceRepo:          stores.SequenceRepo,
		OrganizationRepo:      stores.OrganizationRepo,
		CategoryRepo:          stores.CategoryRepo,
		RecipientRepo:         stores.RecipientRepo,
		DepartmentRepo:        stores.DepartmentRepo,
		UserRepo:              stores.UserRepo,
		LetterRepo:            stores.LetterRepo,
		AgreementRepo:         stores.AgreementRepo,
		AgreementTypeRepo:     stores.AgreementTypeRepo,
		NotificationPublisher: s.GetPublisher(),
		EmailSender:           s.GetEmailSender(),
		Cache:                 s.GetCache(),
		Sentry:                s.GetSentry(),
	}
}
