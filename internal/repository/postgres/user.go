package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/papertrails/papertrails/internal/domain/user"
	"github.com/papertrails/papertrails/internal/logger"
	"github.com/papertrails/papertrails/internal/postgres"
	"github.com/papertrails/papertrails/internal/types"
)

type userRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewUserRepository(db *postgres.DB, logger *logger.Logger) user.Repository {
	return &userRepository{db: db, logger: logger}
}

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	query := `
	INSERT INTO users (id, email, full_name, department_id, designation, is_admin, is_active,
		status, created_at, updated_at, created_by, updated_by)
	VALUES (:id, :email, :full_name, :department_id, :designation, :is_admin, :is_active,
		:status, :created_at, :updated_at, :created_by, :updated_by)
	`

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, u); err != nil {
		return postgres.MapError(err, "create user")
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	query := `SELECT * FROM users WHERE id = $1 AND status = $2`

	var u user.User
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &u, query, id, types.StatusPublished); err != nil {
		return nil, postgres.MapError(err, "get user")
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `SELECT * FROM users WHERE email = $1 AND status = $2`

	var u user.User
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &u, query, email, types.StatusPublished); err != nil {
		return nil, postgres.MapError(err, "get user by email")
	}
	return &u, nil
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []string) ([]*user.User, error) {
	if len(ids) == 0 {
		return []*user.User{}, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM users WHERE id IN (?) AND status = ?`, ids, types.StatusPublished)
	if err != nil {
		return nil, postgres.MapError(err, "get users by ids")
	}
	return r.selectUsers(ctx, "get users by ids", r.db.Rebind(query), args...)
}

func (r *userRepository) ListByFilter(ctx context.Context, filter *types.UserFilter) ([]*user.User, error) {
	if filter == nil {
		filter = types.NewUserFilter()
	}

	conds := []string{"status = ?"}
	args := []interface{}{types.StatusPublished}
	if filter.DepartmentID != "" {
		conds = append(conds, "department_id = ?")
		args = append(args, filter.DepartmentID)
	}
	if filter.ActiveOnly {
		conds = append(conds, "is_active = TRUE")
	}

	query := "SELECT * FROM users" + whereClause(conds) +
		fmt.Sprintf(" ORDER BY created_at %s", orderDirection(filter.OrDefault()))
	query, args = paginate(query, args, filter.OrDefault())

	return r.selectUsers(ctx, "list users", r.db.Rebind(query), args...)
}

func (r *userRepository) ListByDepartment(ctx context.Context, departmentID string) ([]*user.User, error) {
	query := `SELECT * FROM users WHERE department_id = $1 AND status = $2`
	return r.selectUsers(ctx, "list department users", query, departmentID, types.StatusPublished)
}

func (r *userRepository) ListByDepartmentPermission(ctx context.Context, departmentID string) ([]*user.User, error) {
	query := `
	SELECT DISTINCT u.* FROM users u
	JOIN department_permissions p ON p.user_id = u.id
	WHERE p.department_id = $1 AND u.status = $2
	`
	return r.selectUsers(ctx, "list department permission users", query, departmentID, types.StatusPublished)
}

func (r *userRepository) ListExecutives(ctx context.Context) ([]*user.User, error) {
	query := `
	SELECT u.* FROM users u
	JOIN departments d ON d.id = u.department_id
	WHERE d.executive = TRUE AND u.status = $1
	`
	return r.selectUsers(ctx, "list executive users", query, types.StatusPublished)
}

func (r *userRepository) selectUsers(ctx context.Context, op, query string, args ...interface{}) ([]*user.User, error) {
	var users []*user.User
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &users, query, args...); err != nil {
		return nil, postgres.MapError(err, op)
	}
	return users, nil
}
