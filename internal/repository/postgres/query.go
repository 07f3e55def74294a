package postgres

import (
	"fmt"
	"strings"

	"github.com/papertrails/papertrails/internal/types"
)

// paginate appends LIMIT and OFFSET using ? placeholders
func paginate(query string, args []interface{}, filter *types.QueryFilter) (string, []interface{}) {
	if !filter.IsUnlimited() {
		query += " LIMIT ?"
		args = append(args, filter.GetLimit())
	}
	if filter.GetOffset() > 0 {
		query += " OFFSET ?"
		args = append(args, filter.GetOffset())
	}
	return query, args
}

func orderDirection(filter *types.QueryFilter) string {
	if strings.EqualFold(filter.GetOrder(), types.OrderAsc) {
		return "ASC"
	}
	return "DESC"
}

func whereClause(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return fmt.Sprintf(" WHERE %s", strings.Join(conds, " AND "))
}
