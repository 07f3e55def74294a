package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/papertrails/papertrails/internal/domain/recipient"
	"github.com/papertrails/papertrails/internal/logger"
	"github.com/papertrails/papertrails/internal/postgres"
	"github.com/papertrails/papertrails/internal/types"
)

type recipientRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewRecipientRepository(db *postgres.DB, logger *logger.Logger) recipient.Repository {
	return &recipientRepository{db: db, logger: logger}
}

func (r *recipientRepository) Create(ctx context.Context, rc *recipient.Recipient) error {
	query := `
	INSERT INTO recipients (id, full_name, email, organization_id, department, designation,
		short_designation, status, created_at, updated_at, created_by, updated_by)
	VALUES (:id, :full_name, :email, :organization_id, :department, :designation,
		:short_designation, :status, :created_at, :updated_at, :created_by, :updated_by)
	`

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, rc); err != nil {
		return postgres.MapError(err, "create recipient")
	}
	return nil
}

func (r *recipientRepository) Get(ctx context.Context, id string) (*recipient.Recipient, error) {
	query := `SELECT * FROM recipients WHERE id = $1 AND status = $2`

	var rc recipient.Recipient
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &rc, query, id, types.StatusPublished); err != nil {
		return nil, postgres.MapError(err, "get recipient")
	}
	return &rc, nil
}

func (r *recipientRepository) GetByIDs(ctx context.Context, ids []string) ([]*recipient.Recipient, error) {
	if len(ids) == 0 {
		return []*recipient.Recipient{}, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM recipients WHERE id IN (?) AND status = ?`, ids, types.StatusPublished)
	if err != nil {
		return nil, postgres.MapError(err, "get recipients by ids")
	}

	var recipients []*recipient.Recipient
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &recipients, r.db.Rebind(query), args...); err != nil {
		return nil, postgres.MapError(err, "get recipients by ids")
	}
	return recipients, nil
}

func (r *recipientRepository) List(ctx context.Context, filter *types.RecipientFilter) ([]*recipient.Recipient, error) {
	if filter == nil {
		filter = types.NewRecipientFilter()
	}

	conds := []string{"status = ?"}
	args := []interface{}{types.StatusPublished}
	if filter.OrganizationID != "" {
		conds = append(conds, "organization_id = ?")
		args = append(args, filter.OrganizationID)
	}
	if filter.ExcludeOrganizationID != "" {
		conds = append(conds, "(organization_id IS NULL OR organization_id <> ?)")
		args = append(args, filter.ExcludeOrganizationID)
	}

	query := "SELECT * FROM recipients" + whereClause(conds) +
		fmt.Sprintf(" ORDER BY created_at %s", orderDirection(filter.OrDefault()))
	query, args = paginate(query, args, filter.OrDefault())

	var recipients []*recipient.Recipient
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &recipients, r.db.Rebind(query), args...); err != nil {
		return nil, postgres.MapError(err, "list recipients")
	}
	return recipients, nil
}
