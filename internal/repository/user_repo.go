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

// UserRepository defines operations for user data
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindAll(ctx context.Context, page, limit int, filters model.ListFilters) (*pagination.Page[model.User], error)
	FindByID(ctx context.Context, id int) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, id int, req model.UpdateUserRequest) (int64, error)
	Delete(ctx context.Context, id int) (int64, error)
}

type userRepository struct {
	db DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user. The password must already be hashed by the caller.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	sql := `INSERT INTO users (name, email, password, role, created_at, updated_at)
            VALUES ($1, $2, $3, $4, NOW(), NOW()) RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, sql, user.Name, user.Email, user.PasswordHash, user.Role).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindAll retrieves a page of users, optionally narrowed by a free-text
// filter matched against name and email. The password hash is never selected.
func (r *userRepository) FindAll(ctx context.Context, page, limit int, filters model.ListFilters) (*pagination.Page[model.User], error) {
	args := []any{}
	var whereClause []string
	argCount := 1

	if filters.Q != "" {
		whereClause = append(whereClause, fmt.Sprintf("(name ILIKE $%d OR email ILIKE $%d)", argCount, argCount+1))
		pattern := "%" + filters.Q + "%"
		args = append(args, pattern, pattern)
		argCount += 2
	}

	whereQuery := ""
	if len(whereClause) > 0 {
		whereQuery = " WHERE " + strings.Join(whereClause, " AND ")
	}

	selectQuery := `SELECT id, name, email, role, created_at, updated_at FROM users` +
		whereQuery + ` ORDER BY id DESC`
	countQuery := `SELECT COUNT(*) AS total FROM users` + whereQuery

	return pagination.Paginate(ctx, r.db, selectQuery, countQuery, page, limit, args, scanUser)
}

func scanUser(rows pgx.Rows) (model.User, error) {
	var u model.User
	err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// FindByID retrieves a user by their ID, including the stored password hash.
func (r *userRepository) FindByID(ctx context.Context, id int) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT id, name, email, password, role, created_at, updated_at FROM users WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // User not found
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return user, nil
}

// FindByEmail retrieves a user by email. Used both to block duplicate
// registration and to locate the record for login comparison.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT id, name, email, password, role, created_at, updated_at FROM users WHERE email = $1`
	err := r.db.QueryRow(ctx, sql, email).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found is not an error here, service layer decides
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

// Update builds the SET clause from whichever fields are non-empty in the
// request and stamps updated_at. A supplied password must already be hashed.
func (r *userRepository) Update(ctx context.Context, id int, req model.UpdateUserRequest) (int64, error) {
	args := []any{}
	var setClauses []string
	argCount := 1

	if req.Name != "" {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argCount))
		args = append(args, req.Name)
		argCount++
	}
	if req.Email != "" {
		setClauses = append(setClauses, fmt.Sprintf("email = $%d", argCount))
		args = append(args, req.Email)
		argCount++
	}
	if req.Password != "" {
		setClauses = append(setClauses, fmt.Sprintf("password = $%d", argCount))
		args = append(args, req.Password)
		argCount++
	}
	if req.Role != "" {
		setClauses = append(setClauses, fmt.Sprintf("role = $%d", argCount))
		args = append(args, req.Role)
		argCount++
	}

	if len(setClauses) == 0 {
		return 0, ErrNoUpdateFields
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, id)

	sql := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d", strings.Join(setClauses, ", "), argCount)
	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to update user: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}

// Delete removes a user. Returns the number of affected rows.
func (r *userRepository) Delete(ctx context.Context, id int) (int64, error) {
	sql := `DELETE FROM users WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete user: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
