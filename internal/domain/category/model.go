package category

import (
	"context"
	"strings"

	"github.com/papertrails/papertrails/internal/types"
)

// Category classifies letters, its name doubles as the reference code
type Category struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	types.BaseModel
}

func NewCategory(ctx context.Context, name string) *Category {
	return &Category{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CATEGORY),
		Name:      name,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}

// Code is the category segment of a reference number
func (c *Category) Code() string {
	return strings.ToUpper(c.Name)
}
