package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/papertrails/papertrails/internal/api"
	"github.com/papertrails/papertrails/internal/api/cron"
	v1 "github.com/papertrails/papertrails/internal/api/v1"
	"github.com/papertrails/papertrails/internal/cache"
	"github.com/papertrails/papertrails/internal/config"
	"github.com/papertrails/papertrails/internal/email"
	"github.com/papertrails/papertrails/internal/logger"
	"github.com/papertrails/papertrails/internal/notification"
	"github.com/papertrails/papertrails/internal/notification/handler"
	"github.com/papertrails/papertrails/internal/postgres"
	pubsubRouter "github.com/papertrails/papertrails/internal/pubsub/router"
	"github.com/papertrails/papertrails/internal/repository"
	"github.com/papertrails/papertrails/internal/scheduler"
	"github.com/papertrails/papertrails/internal/sentry"
	"github.com/papertrails/papertrails/internal/service"
	"github.com/papertrails/papertrails/internal/types"
	"github.com/papertrails/papertrails/internal/validator"
	"go.uber.org/fx"
)

func init() {
	// calendar dates are compared in UTC everywhere
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	opts = append(opts,
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Monitoring
			sentry.NewSentryService,

			// Cache
			cache.NewInMemoryCache,

			// DB
			postgres.NewDB,
			postgres.NewClient,

			// Email
			email.NewEmailClient,
			email.NewSender,

			// Repositories
			repository.NewSequenceRepository,
			repository.NewOrganizationRepository,
			repository.NewCategoryRepository,
			repository.NewRecipientRepository,
			repository.NewDepartmentRepository,
			repository.NewUserRepository,
			repository.NewLetterRepository,
			repository.NewAgreementRepository,
			repository.NewAgreementTypeRepository,

			// PubSub router
			pubsubRouter.NewRouter,
		),
	)

	opts = append(opts, notification.Module)

	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,
			service.NewSenderCodeResolver,
			provideAudienceResolver,

			service.NewReferenceService,
			service.NewLetterService,
			service.NewReminderService,
			service.NewNotificationService,
			service.NewAgreementService,
			service.NewSweepService,
			service.NewAgreementTypeService,
			service.NewOrganizationService,
			service.NewCategoryService,
			service.NewRecipientService,
			service.NewDepartmentService,
			service.NewUserService,

			scheduler.NewScheduler,
		),
	)

	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			sentry.RegisterHooks,
			closeDB,
			startServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideAudienceResolver(params service.ServiceParams) *service.AudienceResolver {
	return service.NewAudienceResolver(params.UserRepo, params.Logger)
}

func provideHandlers(
	logger *logger.Logger,
	letterService service.LetterService,
	referenceService service.ReferenceService,
	agreementService service.AgreementService,
	agreementTypeService service.AgreementTypeService,
	organizationService service.OrganizationService,
	categoryService service.CategoryService,
	recipientService service.RecipientService,
	departmentService service.DepartmentService,
	userService service.UserService,
	sweepService service.SweepService,
) api.Handlers {
	return api.Handlers{
		Health:        v1.NewHealthHandler(logger),
		Letter:        v1.NewLetterHandler(letterService, referenceService, logger),
		Agreement:     v1.NewAgreementHandler(agreementService, logger),
		AgreementType: v1.NewAgreementTypeHandler(agreementTypeService, logger),
		Organization:  v1.NewOrganizationHandler(organizationService, logger),
		Category:      v1.NewCategoryHandler(categoryService, logger),
		Recipient:     v1.NewRecipientHandler(recipientService, logger),
		Department:    v1.NewDepartmentHandler(departmentService, logger),
		User:          v1.NewUserHandler(userService, logger),
		CronAgreement: cron.NewAgreementCronHandler(sweepService, logger),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, logger *logger.Logger, sentrySvc *sentry.Service) *gin.Engine {
	return api.NewRouter(handlers, cfg, logger, sentrySvc)
}

func closeDB(lc fx.Lifecycle, db *postgres.DB) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			db.Close()
			return nil
		},
	})
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	router *pubsubRouter.Router,
	notificationHandler handler.Handler,
	sched *scheduler.Scheduler,
	log *logger.Logger,
) {
	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	switch mode {
	case types.ModeLocal:
		startAPIServer(lc, r, cfg, log)
		startMessageRouter(lc, router, notificationHandler, log)
		scheduler.RegisterHooks(lc, sched)
	case types.ModeAPI:
		startAPIServer(lc, r, cfg, log)
		startMessageRouter(lc, router, notificationHandler, log)
	case types.ModeWorker:
		startMessageRouter(lc, router, notificationHandler, log)
		scheduler.RegisterHooks(lc, sched)
	default:
		log.Fatalf("Unknown deployment mode: %s", mode)
	}
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	log.Info("Registering API server start hook")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting API server...")
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}

func startMessageRouter(
	lc fx.Lifecycle,
	router *pubsubRouter.Router,
	notificationHandler handler.Handler,
	logger *logger.Logger,
) {
	// Register handlers before starting the router
	notificationHandler.RegisterHandler(router)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("starting message router")
			go func() {
				if err := router.Run(context.Background()); err != nil {
					logger.Errorw("message router failed", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping message router")
			return router.Close()
		},
	})
}
