package pagination

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Page bundles one page of rows with pagination metadata.
type Page[T any] struct {
	Data        []T   `json:"data"`
	TotalCount  int64 `json:"totalCount"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	PrevPage    *int  `json:"prevPage"`
	NextPage    *int  `json:"nextPage"`
}

// Querier is the read-only subset of pgxpool.Pool needed to run paginated queries.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Paginate executes a select query and its matching count query and derives
// page metadata. Both queries share the same WHERE-clause parameters; the
// LIMIT/OFFSET pair is appended to the select query only. Callers must pass
// page >= 1 and limit >= 1. Execution failures propagate unchanged and no
// writes are performed.
func Paginate[T any](
	ctx context.Context,
	db Querier,
	selectQuery, countQuery string,
	page, limit int,
	params []any,
	scan func(rows pgx.Rows) (T, error),
) (*Page[T], error) {
	offset := (page - 1) * limit

	selectParams := params
	if limit > 0 || offset > 0 {
		selectQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(params)+1, len(params)+2)
		selectParams = make([]any, 0, len(params)+2)
		selectParams = append(selectParams, params...)
		selectParams = append(selectParams, limit, offset)
	}

	rows, err := db.Query(ctx, selectQuery, selectParams...)
	if err != nil {
		return nil, fmt.Errorf("failed to run paginated select: %w", err)
	}
	defer rows.Close()

	data := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan page row: %w", err)
		}
		data = append(data, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating page rows: %w", err)
	}

	var totalCount int64
	if err := db.QueryRow(ctx, countQuery, params...).Scan(&totalCount); err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("failed to run count query: %w", err)
		}
		totalCount = 0
	}

	// ceil(totalCount / limit), floored at 1 even for an empty result set
	totalPages := int((totalCount + int64(limit) - 1) / int64(limit))
	if totalPages < 1 {
		totalPages = 1
	}

	result := &Page[T]{
		Data:        data,
		TotalCount:  totalCount,
		TotalPages:  totalPages,
		CurrentPage: page,
	}
	if page > 1 {
		prev := page - 1
		result.PrevPage = &prev
	}
	if page < totalPages {
		next := page + 1
		result.NextPage = &next
	}
	return result, nil
}
