package service

import (
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
	"github.com/papertrails/papertrails/internal/email"
	"github.com/papertrails/papertrails/internal/logger"
	"github.com/papertrails/papertrails/internal/notification/publisher"
	"github.com/papertrails/papertrails/internal/postgres"
	"github.com/papertrails/papertrails/internal/sentry"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient

	// Repositories
	SequenceRepo      sequence.Repository
	OrganizationRepo  organization.Repository
	CategoryRepo      category.Repository
	RecipientRepo     recipient.Repository
	DepartmentRepo    department.Repository
	UserRepo          user.Repository
	LetterRepo        letter.Repository
	AgreementRepo     agreement.Repository
	AgreementTypeRepo agreement.TypeRepository

	// Notifications
	NotificationPublisher publisher.NotificationPublisher
	EmailSender           email.Sender
	Cache                 cache.Cache
	Sentry                *sentry.Service
}

// Common service params
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db postgres.IClient,
	sequenceRepo sequence.Repository,
	organizationRepo organization.Repository,
	categoryRepo category.Repository,
	recipientRepo recipient.Repository,
	departmentRepo department.Repository,
	userRepo user.Repository,
	letterRepo letter.Repository,
	agreementRepo agreement.Repository,
	agreementTypeRepo agreement.TypeRepository,
	notificationPublisher publisher.NotificationPublisher,
	emailSender email.Sender,
	cache cache.Cache,
	sentryService *sentry.Service,
) ServiceParams {
	return ServiceParams{
		Logger:                logger,
		Config:                config,
		DB:                    db,
		SequenceRepo:          sequenceRepo,
		OrganizationRepo:      organizationRepo,
		CategoryRepo:          categoryRepo,
		RecipientRepo:         recipientRepo,
		DepartmentRepo:        departmentRepo,
		UserRepo:              userRepo,
		LetterRepo:            letterRepo,
		AgreementRepo:         agreementRepo,
		AgreementTypeRepo:     agreementTypeRepo,
		NotificationPublisher: notificationPublisher,
		EmailSender:           emailSender,
		Cache:                 cache,
		Sentry:                sentryService,
	}
}
