package testutil

import (
	"context"
	"time"

	"github.com/papertrails/papertrails/internal/cache"
	"github.com/papertrails/papertrails/internal/config"
	"github.com/papertrails/papertrails/internal/domain/agreement"
	"github.com/papertrails/papertrails/internal/domain/category"
	"github.com/papertrails/papertrails/internal/domain/department"
	"github.com/papertrails/papertrails/internal/domain/letter"
	"github.com/papertrails/papertrails/internal/domain/organization"
	"github.com/papertrails/papertrails/internal/domain/recipient"
	"github.com/papertrails/papertrails/internal/domain/sequence"
	"github.com/papertrails/papertrails/internal/domain/user"
	"github.com/papertrails/papertrails/internal/logger"
	"github.com/papertrails/papertrails/internal/sentry"
	"github.com/papertrails/papertrails/internal/types"
	"github.com/papertrails/papertrails/internal/validator"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	SequenceRepo      sequence.Repository
	OrganizationRepo  organization.Repository
	CategoryRepo      category.Repository
	RecipientRepo     recipient.Repository
	DepartmentRepo    department.Repository
	UserRepo          user.Repository
	LetterRepo        letter.Repository
	AgreementRepo     agreement.Repository
	AgreementTypeRepo agreement.TypeRepository
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx         context.Context
	stores      Stores
	publisher   *InMemoryNotificationPublisher
	emailSender *MockEmailSender
	cache       cache.Cache
	sentry      *sentry.Service
	db          *MockPostgresClient
	logger      *logger.Logger
	config      *config.Configuration
	now         time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	s.config = config.GetDefaultConfig()
	s.config.Sequence.InitialInterval = time.Millisecond
	s.config.Notification.FrontendURL = "https://papers.example.com"
	s.logger = logger.NewNopLogger()
	s.sentry = sentry.NewSentryService(s.config, s.logger)
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.setupContext()
	s.setupStores()
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupContext() {
	s.ctx = SetupContext()
}

func (s *BaseServiceTestSuite) setupStores() {
	departments := NewInMemoryDepartmentStore()
	organizations := NewInMemoryOrganizationStore()
	agreementTypes := NewInMemoryAgreementTypeStore()

	s.stores = Stores{
		SequenceRepo:      NewInMemorySequenceStore(),
		OrganizationRepo:  organizations,
		CategoryRepo:      NewInMemoryCategoryStore(),
		RecipientRepo:     NewInMemoryRecipientStore(),
		DepartmentRepo:    departments,
		UserRepo:          NewInMemoryUserStore(departments),
		LetterRepo:        NewInMemoryLetterStore(),
		AgreementRepo:     NewInMemoryAgreementStore(organizations, agreementTypes),
		AgreementTypeRepo: agreementTypes,
	}

	s.db = NewMockPostgresClient()
	s.publisher = NewInMemoryNotificationPublisher()
	s.emailSender = NewMockEmailSender()
	s.cache = cache.NewInMemoryCache(s.config)
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.SequenceRepo.(*InMemorySequenceStore).Clear()
	s.stores.OrganizationRepo.(*InMemoryOrganizationStore).Clear()
	s.stores.CategoryRepo.(*InMemoryCategoryStore).Clear()
	s.stores.RecipientRepo.(*InMemoryRecipientStore).Clear()
	s.stores.DepartmentRepo.(*InMemoryDepartmentStore).Clear()
	s.stores.UserRepo.(*InMemoryUserStore).Clear()
	s.stores.LetterRepo.(*InMemoryLetterStore).Clear()
	s.stores.AgreementRepo.(*InMemoryAgreementStore).Clear()
	s.stores.AgreementTypeRepo.(*InMemoryAgreementTypeStore).Clear()
	s.publisher.Clear()
	s.emailSender.Clear()
	s.cache.Flush(context.Background())
}

func (s *BaseServiceTestSuite) ClearStores() {
	s.clearStores()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetContextAs returns the test context acting as userID
func (s *BaseServiceTestSuite) GetContextAs(userID string) context.Context {
	return types.SetUserID(s.ctx, userID)
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetStores returns all test repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetPublisher returns the recording notification publisher
func (s *BaseServiceTestSuite) GetPublisher() *InMemoryNotificationPublisher {
	return s.publisher
}

// GetEmailSender returns the recording email sender
func (s *BaseServiceTestSuite) GetEmailSender() *MockEmailSender {
	return s.emailSender
}

// GetCache returns the reminder dedup cache
func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return s.cache
}

// GetSentry returns a disabled sentry service
func (s *BaseServiceTestSuite) GetSentry() *sentry.Service {
	return s.sentry
}

// GetDB returns the test database client
func (s *BaseServiceTestSuite) GetDB() *MockPostgresClient {
	return s.db
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetNow returns the current test time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now.UTC()
}

// GetUUID returns a new UUID string
func (s *BaseServiceTestSuite) GetUUID() string {
	return types.GenerateUUID()
}

// MustCreateDepartment stores a department and fails the test on error
func (s *BaseServiceTestSuite) MustCreateDepartment(name string, executive bool) *department.Department {
	d := department.NewDepartment(s.ctx, name, "", executive)
	s.Require().NoError(s.stores.DepartmentRepo.Create(s.ctx, d))
	return d
}

// MustCreateUser stores an active user in departmentID, empty for none
func (s *BaseServiceTestSuite) MustCreateUser(email, fullName, departmentID string) *user.User {
	var dept *string
	if departmentID != "" {
		dept = lo.ToPtr(departmentID)
	}
	u := user.NewUser(s.ctx, email, fullName, dept)
	s.Require().NoError(s.stores.UserRepo.Create(s.ctx, u))
	return u
}

// MustCreateOrganization stores an organization with the given short form
func (s *BaseServiceTestSuite) MustCreateOrganization(name, shortForm string, orgType types.OrganizationType) *organization.Organization {
	o := organization.NewOrganization(s.ctx, name, shortForm, orgType)
	s.Require().NoError(s.stores.OrganizationRepo.Create(s.ctx, o))
	return o
}
