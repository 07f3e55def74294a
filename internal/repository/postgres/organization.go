package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/papertrails/papertrails/internal/domain/organization"
	"github.com/papertrails/papertrails/internal/logger"
	"github.com/papertrails/papertrails/internal/postgres"
	"github.com/papertrails/papertrails/internal/types"
)

type organizationRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewOrganizationRepository(db *postgres.DB, logger *logger.Logger) organization.Repository {
	return &organizationRepository{db: db, logger: logger}
}

func (r *organizationRepository) Create(ctx context.Context, org *organization.Organization) error {
	query := `
	INSERT INTO organizations (id, name, short_form, address, email, phone, organization_type,
		status, created_at, updated_at, created_by, updated_by)
	VALUES (:id, :name, :short_form, :address, :email, :phone, :organization_type,
		:status, :created_at, :updated_at, :created_by, :updated_by)
	`

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, org); err != nil {
		return postgres.MapError(err, "create organization")
	}
	return nil
}

func (r *organizationRepository) Get(ctx context.Context, id string) (*organization.Organization, error) {
	query := `SELECT * FROM organizations WHERE id = $1 AND status = $2`

	var org organization.Organization
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &org, query, id, types.StatusPublished); err != nil {
		return nil, postgres.MapError(err, "get organization")
	}
	return &org, nil
}

func (r *organizationRepository) List(ctx context.Context, filter *types.OrganizationFilter) ([]*organization.Organization, error) {
	if filter == nil {
		filter = types.NewOrganizationFilter()
	}

	where, args, err := r.where(filter)
	if err != nil {
		return nil, err
	}

	query := "SELECT * FROM organizations" + where +
		fmt.Sprintf(" ORDER BY created_at %s", orderDirection(filter.OrDefault()))
	query, args = paginate(query, args, filter.OrDefault())

	var orgs []*organization.Organization
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &orgs, r.db.Rebind(query), args...); err != nil {
		return nil, postgres.MapError(err, "list organizations")
	}
	return orgs, nil
}

func (r *organizationRepository) Count(ctx context.Context, filter *types.OrganizationFilter) (int, error) {
	if filter == nil {
		filter = types.NewOrganizationFilter()
	}

	where, args, err := r.where(filter)
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &count, r.db.Rebind("SELECT COUNT(*) FROM organizations"+where), args...); err != nil {
		return 0, postgres.MapError(err, "count organizations")
	}
	return count, nil
}

// where builds the filter clause with ? placeholders, rebound by the caller
func (r *organizationRepository) where(filter *types.OrganizationFilter) (string, []interface{}, error) {
	conds := []string{"status = ?"}
	args := []interface{}{types.StatusPublished}

	if filter.OrganizationType != "" {
		conds = append(conds, "organization_type = ?")
		args = append(args, filter.OrganizationType)
	}
	if filter.Name != "" {
		conds = append(conds, "name ILIKE ?")
		args = append(args, "%"+filter.Name+"%")
	}
	if len(filter.ExcludeIDs) > 0 {
		clause, inArgs, err := sqlx.In("id NOT IN (?)", filter.ExcludeIDs)
		if err != nil {
			return "", nil, postgres.MapError(err, "build organization filter")
		}
		conds = append(conds, clause)
		args = append(args, inArgs...)
	}

	return whereClause(conds), args, nil
}
