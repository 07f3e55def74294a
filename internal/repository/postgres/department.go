package postgres

import (
	"context"
	"fmt"

	"github.com/papertrails/papertrails/internal/domain/department"
	"github.com/papertrails/papertrails/internal/logger"
	"github.com/papertrails/papertrails/internal/postgres"
	"github.com/papertrails/papertrails/internal/types"
)

type departmentRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewDepartmentRepository(db *postgres.DB, logger *logger.Logger) department.Repository {
	return &departmentRepository{db: db, logger: logger}
}

func (r *departmentRepository) Create(ctx context.Context, d *department.Department) error {
	query := `
	INSERT INTO departments (id, name, description, executive, status, created_at, updated_at, created_by, updated_by)
	VALUES (:id, :name, :description, :executive, :status, :created_at, :updated_at, :created_by, :updated_by)
	`

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, d); err != nil {
		return postgres.MapError(err, "create department")
	}
	return nil
}

func (r *departmentRepository) Get(ctx context.Context, id string) (*department.Department, error) {
	query := `SELECT * FROM departments WHERE id = $1 AND status = $2`

	var d department.Department
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &d, query, id, types.StatusPublished); err != nil {
		return nil, postgres.MapError(err, "get department")
	}
	return &d, nil
}

func (r *departmentRepository) List(ctx context.Context, filter *types.DepartmentFilter) ([]*department.Department, error) {
	if filter == nil {
		filter = types.NewDepartmentFilter()
	}

	conds := []string{"status = ?"}
	args := []interface{}{types.StatusPublished}
	if filter.Executive != nil {
		conds = append(conds, "executive = ?")
		args = append(args, *filter.Executive)
	}

	query := "SELECT * FROM departments" + whereClause(conds) +
		fmt.Sprintf(" ORDER BY created_at %s", orderDirection(filter.OrDefault()))
	query, args = paginate(query, args, filter.OrDefault())

	var departments []*department.Department
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &departments, r.db.Rebind(query), args...); err != nil {
		return nil, postgres.MapError(err, "list departments")
	}
	return departments, nil
}

func (r *departmentRepository) CreatePermission(ctx context.Context, p *department.Permission) error {
	query := `
	INSERT INTO department_permissions (id, user_id, department_id, permission_type, approved_by, created_at)
	VALUES (:id, :user_id, :department_id, :permission_type, :approved_by, :created_at)
	`

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, p); err != nil {
		return postgres.MapError(err, "create department permission")
	}
	return nil
}

func (r *departmentRepository) ListPermissions(ctx context.Context, departmentID string) ([]*department.Permission, error) {
	query := `SELECT * FROM department_permissions WHERE department_id = $1 ORDER BY created_at`

	var permissions []*department.Permission
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &permissions, query, departmentID); err != nil {
		return nil, postgres.MapError(err, "list department permissions")
	}
	return permissions, nil
}
