package repository

import (
	"github.com/papertrails/papertrails/internal/domain/agreement"
	"github.com/papertrails/papertrails/internal/domain/category"
	"github.com/papertrails/papertrails/internal/domain/department"
	"github.com/papertrails/papertrails/internal/domain/letter"
	"github.com/papertrails/papertrails/internal/domain/organization"
	"github.com/papertrails/papertrails/internal/domain/recipient"
	"github.com/papertrails/papertrails/internal/domain/sequence"
	"github.com/papertrails/papertrails/internal/domain/user"
	"github.com/papertrails/papertrails/internal/logger"
	"github.com/papertrails/papertrails/internal/postgres"
	postgresRepo "github.com/papertrails/papertrails/internal/repository/postgres"
)

func NewSequenceRepository(db *postgres.DB, logger *logger.Logger) sequence.Repository {
	return postgresRepo.NewSequenceRepository(db, logger)
}

func NewOrganizationRepository(db *postgres.DB, logger *logger.Logger) organization.Repository {
	return postgresRepo.NewOrganizationRepository(db, logger)
}

func NewCategoryRepository(db *postgres.DB, logger *logger.Logger) category.Repository {
	return postgresRepo.NewCategoryRepository(db, logger)
}

func NewRecipientRepository(db *postgres.DB, logger *logger.Logger) recipient.Repository {
	return postgresRepo.NewRecipientRepository(db, logger)
}

func NewDepartmentRepository(db *postgres.DB, logger *logger.Logger) department.Repository {
	return postgresRepo.NewDepartmentRepository(db, logger)
}

func NewUserRepository(db *postgres.DB, logger *logger.Logger) user.Repository {
	return postgresRepo.NewUserRepository(db, logger)
}

func NewLetterRepository(db *postgres.DB, logger *logger.Logger) letter.Repository {
	return postgresRepo.NewLetterRepository(db, logger)
}

func NewAgreementRepository(db *postgres.DB, logger *logger.Logger) agreement.Repository {
	return postgresRepo.NewAgreementRepository(db, logger)
}

func NewAgreementTypeRepository(db *postgres.DB, logger *logger.Logger) agreement.TypeRepository {
	return postgresRepo.NewAgreementTypeRepository(db, logger)
}
