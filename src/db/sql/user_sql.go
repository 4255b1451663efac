package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kotakitamaru/FinanceManager-v2/src/models"
)

func ListUsers(ctx context.Context, pool *pgxpool.Pool, page, limit int, search string) ([]models.User, int, error) {
	offset := (page - 1) * limit
	var conds []string
	var args []interface{}
	if search != "" {
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR email ILIKE $%d)", len(args)+1, len(args)+2))
		args = append(args, "%"+search+"%", "%"+search+"%")
	}
	where := whereClause(conds)

	var total int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM users "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT id, email, name, created_at, updated_at
		FROM users
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)

	rows, err := pool.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

func GetUserByID(ctx context.Context, pool *pgxpool.Pool, id int64) (*models.User, error) {
	query := `
		SELECT id, email, name, created_at, updated_at
		FROM users
		WHERE id = $1`

	var u models.User
	err := pool.QueryRow(ctx, query, id).
		Scan(&u.ID, &u.Email, &u.Name, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByEmail matches the email exactly (case-sensitive) and includes the
// password hash for credential checks.
func GetUserByEmail(ctx context.Context, pool *pgxpool.Pool, email string) (*models.User, error) {
	query := `
		SELECT id, email, name, password, created_at, updated_at
		FROM users
		WHERE email = $1`

	var u models.User
	err := pool.QueryRow(ctx, query, email).
		Scan(&u.ID, &u.Email, &u.Name, &u.Password, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func CreateUser(ctx context.Context, pool *pgxpool.Pool, email, name, hashedPassword string) (*models.User, error) {
	query := `
		INSERT INTO users (email, name, password, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, email, name, created_at, updated_at`

	var u models.User
	err := pool.QueryRow(ctx, query, email, name, hashedPassword).
		Scan(&u.ID, &u.Email, &u.Name, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &u, nil
}

// UpdateUser is a partial update; a non-nil Password must already be hashed
// by the caller.
func UpdateUser(ctx context.Context, pool *pgxpool.Pool, id int64, req models.UpdateUserRequest) (*models.User, error) {
	b := &updateBuilder{}
	b.setString("email", req.Email)
	b.setString("name", req.Name)
	b.setString("password", req.Password)
	b.raw("updated_at = NOW()")

	query := fmt.Sprintf(`
		UPDATE users
		%s
		WHERE id = $%d
		RETURNING id, email, name, created_at, updated_at`, b.setClause(), b.addArg(id))

	var u models.User
	err := pool.QueryRow(ctx, query, b.args...).
		Scan(&u.ID, &u.Email, &u.Name, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func DeleteUser(ctx context.Context, pool *pgxpool.Pool, id int64) error {
	cmd, err := pool.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
