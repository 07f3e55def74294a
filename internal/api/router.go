package api

import (
	"github.com/gin-gonic/gin"
	"github.com/papertrails/papertrails/internal/api/cron"
	v1 "github.com/papertrails/papertrails/internal/api/v1"
	"github.com/papertrails/papertrails/internal/config"
	"github.com/papertrails/papertrails/internal/logger"
	"github.com/papertrails/papertrails/internal/rest/middleware"
	"github.com/papertrails/papertrails/internal/sentry"
)

type Handlers struct {
	Health        *v1.HealthHandler
	Letter        *v1.LetterHandler
	Agreement     *v1.AgreementHandler
	AgreementType *v1.AgreementTypeHandler
	Organization  *v1.OrganizationHandler
	Category      *v1.CategoryHandler
	Recipient     *v1.RecipientHandler
	Department    *v1.DepartmentHandler
	User          *v1.UserHandler

	CronAgreement *cron.AgreementCronHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, logger *logger.Logger, sentrySvc *sentry.Service) *gin.Engine {
	router := gin.Default()
	router.Use(
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.SentryMiddleware(cfg),
		middleware.ErrorHandler(logger, sentrySvc),
	)

	router.GET("/health", handlers.Health.Health)

	v1Group := router.Group("/v1")
	v1Group.Use(middleware.UserContextMiddleware)
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	letters := router.Group("/letters")
	{
		letters.GET("/reference/preview", handlers.Letter.PreviewReference)
		letters.POST("", handlers.Letter.CreateLetter)
		letters.GET("", handlers.Letter.ListLetters)
		letters.GET("/:id", handlers.Letter.GetLetter)
		letters.PUT("/:id", handlers.Letter.UpdateLetter)
	}

	agreements := router.Group("/agreements")
	{
		agreements.POST("", handlers.Agreement.CreateAgreement)
		agreements.GET("", handlers.Agreement.ListAgreements)
		agreements.GET("/search", handlers.Agreement.ListAgreements)
		agreements.GET("/stats", handlers.Agreement.GetStats)
		agreements.GET("/:id", handlers.Agreement.GetAgreement)
		agreements.PUT("/:id", handlers.Agreement.UpdateAgreement)
		agreements.GET("/:id/access", handlers.Agreement.GetUsersWithAccess)
		agreements.POST("/:id/access", handlers.Agreement.ManageUserAccess)
		agreements.POST("/:id/reminders/test", handlers.Agreement.SendTestReminder)
	}

	agreementTypes := router.Group("/agreement-types")
	{
		agreementTypes.POST("", handlers.AgreementType.CreateAgreementType)
		agreementTypes.GET("", handlers.AgreementType.ListAgreementTypes)
		agreementTypes.GET("/:id", handlers.AgreementType.GetAgreementType)
	}

	organizations := router.Group("/organizations")
	{
		organizations.POST("", handlers.Organization.CreateOrganization)
		organizations.GET("", handlers.Organization.ListOrganizations)
		organizations.GET("/:id", handlers.Organization.GetOrganization)
	}

	categories := router.Group("/categories")
	{
		categories.POST("", handlers.Category.CreateCategory)
		categories.GET("", handlers.Category.ListCategories)
		categories.GET("/:id", handlers.Category.GetCategory)
	}

	recipients := router.Group("/recipients")
	{
		recipients.POST("", handlers.Recipient.CreateRecipient)
		recipients.GET("", handlers.Recipient.ListRecipients)
		recipients.GET("/:id", handlers.Recipient.GetRecipient)
	}

	departments := router.Group("/departments")
	{
		departments.POST("", handlers.Department.CreateDepartment)
		departments.GET("", handlers.Department.ListDepartments)
		departments.GET("/:id", handlers.Department.GetDepartment)
		departments.POST("/:id/permissions", handlers.Department.GrantPermission)
		departments.GET("/:id/permissions", handlers.Department.ListPermissions)
	}

	users := router.Group("/users")
	{
		users.POST("", handlers.User.CreateUser)
		users.GET("", handlers.User.ListUsers)
		users.GET("/:id", handlers.User.GetUser)
	}

	cronGroup := router.Group("/cron")
	{
		cronGroup.POST("/agreements/sweep", handlers.CronAgreement.SweepAgreements)
	}
}
