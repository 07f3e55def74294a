package postgres

import (
	"context"
	"fmt"

	"github.com/papertrails/papertrails/internal/domain/category"
	"github.com/papertrails/papertrails/internal/logger"
	"github.com/papertrails/papertrails/internal/postgres"
	"github.com/papertrails/papertrails/internal/types"
)

type categoryRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewCategoryRepository(db *postgres.DB, logger *logger.Logger) category.Repository {
	return &categoryRepository{db: db, logger: logger}
}

func (r *categoryRepository) Create(ctx context.Context, c *category.Category) error {
	query := `
	INSERT INTO categories (id, name, status, created_at, updated_at, created_by, updated_by)
	VALUES (:id, :name, :status, :created_at, :updated_at, :created_by, :updated_by)
	`

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, c); err != nil {
		return postgres.MapError(err, "create category")
	}
	return nil
}

func (r *categoryRepository) Get(ctx context.Context, id string) (*category.Category, error) {
	query := `SELECT * FROM categories WHERE id = $1 AND status = $2`

	var c category.Category
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &c, query, id, types.StatusPublished); err != nil {
		return nil, postgres.MapError(err, "get category")
	}
	return &c, nil
}

func (r *categoryRepository) List(ctx context.Context, filter *types.QueryFilter) ([]*category.Category, error) {
	filter = filter.OrDefault()

	query := fmt.Sprintf("SELECT * FROM categories WHERE status = ? ORDER BY created_at %s", orderDirection(filter))
	query, args := paginate(query, []interface{}{types.StatusPublished}, filter)

	var categories []*category.Category
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &categories, r.db.Rebind(query), args...); err != nil {
		return nil, postgres.MapError(err, "list categories")
	}
	return categories, nil
}
