package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/papertrails/papertrails/internal/domain/agreement"
	ierr "github.com/papertrails/papertrails/internal/errors"
	"github.com/papertrails/papertrails/internal/logger"
	"github.com/papertrails/papertrails/internal/postgres"
	"github.com/papertrails/papertrails/internal/types"
	"github.com/samber/lo"
)

type agreementRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewAgreementRepository(db *postgres.DB, logger *logger.Logger) agreement.Repository {
	return &agreementRepository{db: db, logger: logger}
}

func (r *agreementRepository) Create(ctx context.Context, a *agreement.Agreement) error {
	return r.db.WithTx(ctx, func(ctx context.Context) error {
		query := `
		INSERT INTO agreements (id, agreement_id, title, agreement_type_id, remarks, agreement_status,
			start_date, expiry_date, reminder_time, party_id, department_id, creator_id, agreement_reference,
			parent_agreement_id, attachment_name, original_filename, status, created_at, updated_at, created_by, updated_by)
		VALUES (:id, :agreement_id, :title, :agreement_type_id, :remarks, :agreement_status,
			:start_date, :expiry_date, :reminder_time, :party_id, :department_id, :creator_id, :agreement_reference,
			:parent_agreement_id, :attachment_name, :original_filename, :status, :created_at, :updated_at, :created_by, :updated_by)
		`
		if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, a); err != nil {
			return postgres.MapError(err, "create agreement")
		}
		return r.insertAssignedUsers(ctx, a.ID, a.AssignedUserIDs)
	})
}

func (r *agreementRepository) Update(ctx context.Context, a *agreement.Agreement) error {
	query := `
	UPDATE agreements SET
		title = :title,
		agreement_type_id = :agreement_type_id,
		remarks = :remarks,
		agreement_status = :agreement_status,
		start_date = :start_date,
		expiry_date = :expiry_date,
		reminder_time = :reminder_time,
		party_id = :party_id,
		department_id = :department_id,
		agreement_reference = :agreement_reference,
		parent_agreement_id = :parent_agreement_id,
		attachment_name = :attachment_name,
		original_filename = :original_filename,
		updated_at = :updated_at,
		updated_by = :updated_by
	WHERE id = :id
	`

	result, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, a)
	if err != nil {
		return postgres.MapError(err, "update agreement")
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return agreement.NewAgreementNotFoundError(a.ID)
	}
	return nil
}

func (r *agreementRepository) Get(ctx context.Context, id string) (*agreement.Agreement, error) {
	var a agreement.Agreement
	err := r.db.GetQuerier(ctx).GetContext(ctx, &a,
		`SELECT * FROM agreements WHERE id = $1 AND status = $2`, id, types.StatusPublished)
	if err != nil {
		if mapped := postgres.MapError(err, "get agreement"); !ierr.IsNotFound(mapped) {
			return nil, mapped
		}
		return nil, agreement.NewAgreementNotFoundError(id)
	}

	if err := r.loadAssignedUsers(ctx, []*agreement.Agreement{&a}); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *agreementRepository) List(ctx context.Context, filter *types.AgreementFilter) ([]*agreement.Agreement, error) {
	if filter == nil {
		filter = types.NewAgreementFilter()
	}

	conds, args := r.conditions(filter)
	query := "SELECT a.* FROM agreements a LEFT JOIN organizations o ON o.id = a.party_id" +
		" LEFT JOIN agreement_types t ON t.id = a.agreement_type_id" +
		whereClause(conds) +
		fmt.Sprintf(" ORDER BY a.created_at %s", orderDirection(filter.OrDefault()))
	query, args = paginate(query, args, filter.OrDefault())

	var agreements []*agreement.Agreement
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &agreements, r.db.Rebind(query), args...); err != nil {
		return nil, postgres.MapError(err, "list agreements")
	}
	if err := r.loadAssignedUsers(ctx, agreements); err != nil {
		return nil, err
	}
	return agreements, nil
}

type assignedUserRow struct {
	AgreementID string `db:"agreement_id"`
	UserID      string `db:"user_id"`
}

// loadAssignedUsers fills AssignedUserIDs for a page of agreements with one query
func (r *agreementRepository) loadAssignedUsers(ctx context.Context, agreements []*agreement.Agreement) error {
	if len(agreements) == 0 {
		return nil
	}

	ids := lo.Map(agreements, func(a *agreement.Agreement, _ int) string { return a.ID })
	query, args, err := sqlx.In(
		`SELECT agreement_id, user_id FROM agreement_assigned_users WHERE agreement_id IN (?) ORDER BY agreement_id, user_id`, ids)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to build assigned users query").
			Mark(ierr.ErrDatabase)
	}

	var rows []assignedUserRow
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return postgres.MapError(err, "list assigned users")
	}
	attachAssignedUsers(agreements, rows)
	return nil
}

// attachAssignedUsers groups rows by agreement. Agreements without rows get
// an empty list so they render as [] rather than null.
func attachAssignedUsers(agreements []*agreement.Agreement, rows []assignedUserRow) {
	byAgreement := lo.GroupBy(rows, func(row assignedUserRow) string { return row.AgreementID })
	for _, a := range agreements {
		a.AssignedUserIDs = lo.Map(byAgreement[a.ID], func(row assignedUserRow, _ int) string { return row.UserID })
	}
}

func (r *agreementRepository) Count(ctx context.Context, filter *types.AgreementFilter) (int, error) {
	if filter == nil {
		filter = types.NewAgreementFilter()
	}

	conds, args := r.conditions(filter)
	query := "SELECT COUNT(*) FROM agreements a LEFT JOIN organizations o ON o.id = a.party_id" +
		" LEFT JOIN agreement_types t ON t.id = a.agreement_type_id" + whereClause(conds)

	var count int
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &count, r.db.Rebind(query), args...); err != nil {
		return 0, postgres.MapError(err, "count agreements")
	}
	return count, nil
}

func (r *agreementRepository) SetAssignedUsers(ctx context.Context, agreementID string, userIDs []string) error {
	return r.db.WithTx(ctx, func(ctx context.Context) error {
		if _, err := r.db.GetQuerier(ctx).ExecContext(ctx,
			`DELETE FROM agreement_assigned_users WHERE agreement_id = $1`, agreementID); err != nil {
			return postgres.MapError(err, "clear assigned users")
		}
		return r.insertAssignedUsers(ctx, agreementID, userIDs)
	})
}

func (r *agreementRepository) MarkExpired(ctx context.Context, today time.Time) (int, error) {
	query := `
	UPDATE agreements SET agreement_status = $1, updated_at = $2
	WHERE agreement_status = $3 AND expiry_date < $4 AND status = $5
	`

	result, err := r.db.GetQuerier(ctx).ExecContext(ctx, query,
		types.AgreementStatusExpired,
		time.Now().UTC(),
		types.AgreementStatusOngoing,
		types.TruncateToDay(today),
		types.StatusPublished,
	)
	if err != nil {
		return 0, postgres.MapError(err, "mark agreements expired")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, postgres.MapError(err, "mark agreements expired")
	}
	return int(rows), nil
}

func (r *agreementRepository) insertAssignedUsers(ctx context.Context, agreementID string, userIDs []string) error {
	for _, userID := range userIDs {
		if _, err := r.db.GetQuerier(ctx).ExecContext(ctx, `
			INSERT INTO agreement_assigned_users (agreement_id, user_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, agreementID, userID); err != nil {
			return postgres.MapError(err, "assign user to agreement")
		}
	}
	return nil
}

func (r *agreementRepository) conditions(filter *types.AgreementFilter) ([]string, []interface{}) {
	conds := []string{"a.status = ?"}
	args := []interface{}{types.StatusPublished}

	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		conds = append(conds, `(a.title ILIKE ? OR a.agreement_reference ILIKE ? OR a.remarks ILIKE ?
			OR o.name ILIKE ? OR a.agreement_id ILIKE ?)`)
		args = append(args, like, like, like, like, like)
	}
	if filter.PartyName != "" {
		conds = append(conds, "o.name ILIKE ?")
		args = append(args, "%"+filter.PartyName+"%")
	}
	if filter.AgreementTypeName != "" {
		conds = append(conds, "t.name ILIKE ?")
		args = append(args, "%"+filter.AgreementTypeName+"%")
	}
	if filter.DepartmentID != "" {
		conds = append(conds, "a.department_id = ?")
		args = append(args, filter.DepartmentID)
	}
	if filter.AgreementStatus != "" {
		conds = append(conds, "a.agreement_status = ?")
		args = append(args, filter.AgreementStatus)
	}

	if filter.SearchStatus != "" {
		today := filter.Today
		if today.IsZero() {
			today = types.Today()
		}
		switch filter.SearchStatus {
		case types.AgreementSearchStatusExpired:
			conds = append(conds, "a.expiry_date < ?")
			args = append(args, today)
		case types.AgreementSearchStatusActive:
			conds = append(conds, "a.start_date <= ? AND a.expiry_date >= ?")
			args = append(args, today, today)
		case types.AgreementSearchStatusUpcoming:
			conds = append(conds, "a.start_date > ?")
			args = append(args, today)
		default:
			conds = append(conds, "a.agreement_status = ?")
			args = append(args, filter.SearchStatus)
		}
	}

	return conds, args
}

type agreementTypeRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewAgreementTypeRepository(db *postgres.DB, logger *logger.Logger) agreement.TypeRepository {
	return &agreementTypeRepository{db: db, logger: logger}
}

func (r *agreementTypeRepository) Create(ctx context.Context, t *agreement.AgreementType) error {
	query := `
	INSERT INTO agreement_types (id, name, description, is_active, status, created_at, updated_at, created_by, updated_by)
	VALUES (:id, :name, :description, :is_active, :status, :created_at, :updated_at, :created_by, :updated_by)
	`

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, t); err != nil {
		return postgres.MapError(err, "create agreement type")
	}
	return nil
}

func (r *agreementTypeRepository) Get(ctx context.Context, id string) (*agreement.AgreementType, error) {
	var t agreement.AgreementType
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &t,
		`SELECT * FROM agreement_types WHERE id = $1 AND status = $2`, id, types.StatusPublished); err != nil {
		return nil, postgres.MapError(err, "get agreement type")
	}
	return &t, nil
}

func (r *agreementTypeRepository) List(ctx context.Context, filter *types.QueryFilter) ([]*agreement.AgreementType, error) {
	filter = filter.OrDefault()

	query := fmt.Sprintf("SELECT * FROM agreement_types WHERE status = ? AND is_active = TRUE ORDER BY created_at %s", orderDirection(filter))
	query, args := paginate(query, []interface{}{types.StatusPublished}, filter)

	var agreementTypes []*agreement.AgreementType
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &agreementTypes, r.db.Rebind(query), args...); err != nil {
		return nil, postgres.MapError(err, "list agreement types")
	}
	return agreementTypes, nil
}
