package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"book_manager/internal/model"
	"book_manager/internal/pagination"

	"github.com/jackc/pgx/v5"
)

// ErrNoUpdateFields is returned when a partial update carries no recognized
// fields. It is a local validation failure, not a database error.
var ErrNoUpdateFields = errors.New("no fields provided for update")

// BookRepository defines operations for book data
type BookRepository interface {
	Create(ctx context.Context, book *model.Book) error
	FindAll(ctx context.Context, page, limit int, filters model.ListFilters) (*pagination.Page[model.Book], error)
	FindByID(ctx context.Context, id int64) (*model.Book, error)
	Update(ctx context.Context, id int64, req model.UpdateBookRequest) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type bookRepository struct {
	db DB
}

// NewBookRepository creates a new BookRepository
func NewBookRepository(db DB) BookRepository {
	return &bookRepository{db: db}
}

// Create inserts a new book into the database
func (r *bookRepository) Create(ctx context.Context, b *model.Book) error {
	sql := `INSERT INTO books (title, author, publication_year, created_at, updated_at)
            VALUES ($1, $2, $3, NOW(), NOW()) RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, sql, b.Title, b.Author, b.PublicationYear).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}
	return nil
}

// FindAll retrieves a page of books, optionally narrowed by a free-text
// filter matched against title and author.
func (r *bookRepository) FindAll(ctx context.Context, page, limit int, filters model.ListFilters) (*pagination.Page[model.Book], error) {
	args := []any{}
	var whereClause []string
	argCount := 1

	if filters.Q != "" {
		whereClause = append(whereClause, fmt.Sprintf("(title ILIKE $%d OR author ILIKE $%d)", argCount, argCount+1))
		pattern := "%" + filters.Q + "%"
		args = append(args, pattern, pattern)
		argCount += 2
	}

	whereQuery := ""
	if len(whereClause) > 0 {
		whereQuery = " WHERE " + strings.Join(whereClause, " AND ")
	}

	selectQuery := `SELECT id, title, author, publication_year, created_at, updated_at FROM books` +
		whereQuery + ` ORDER BY id DESC`
	countQuery := `SELECT COUNT(*) AS total FROM books` + whereQuery

	return pagination.Paginate(ctx, r.db, selectQuery, countQuery, page, limit, args, scanBook)
}

func scanBook(rows pgx.Rows) (model.Book, error) {
	var b model.Book
	err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.PublicationYear, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

// FindByID retrieves a book by its ID
func (r *bookRepository) FindByID(ctx context.Context, id int64) (*model.Book, error) {
	b := &model.Book{}
	sql := `SELECT id, title, author, publication_year, created_at, updated_at FROM books WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(&b.ID, &b.Title, &b.Author, &b.PublicationYear, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find book by ID: %w", err)
	}
	return b, nil
}

// Update builds the SET clause from whichever fields are set in the request
// and stamps updated_at. Returns the number of affected rows.
func (r *bookRepository) Update(ctx context.Context, id int64, req model.UpdateBookRequest) (int64, error) {
	args := []any{}
	var setClauses []string
	argCount := 1

	if req.Title != "" {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", argCount))
		args = append(args, req.Title)
		argCount++
	}
	if req.Author != "" {
		setClauses = append(setClauses, fmt.Sprintf("author = $%d", argCount))
		args = append(args, req.Author)
		argCount++
	}
	if req.PublicationYear != 0 {
		setClauses = append(setClauses, fmt.Sprintf("publication_year = $%d", argCount))
		args = append(args, req.PublicationYear)
		argCount++
	}

	if len(setClauses) == 0 {
		return 0, ErrNoUpdateFields
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, id)

	sql := fmt.Sprintf("UPDATE books SET %s WHERE id = $%d", strings.Join(setClauses, ", "), argCount)
	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to update book: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}

// Delete removes a book from the database. Returns the number of affected
// rows; 0 signals nothing to delete.
func (r *bookRepository) Delete(ctx context.Context, id int64) (int64, error) {
	sql := `DELETE FROM books WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete book: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
