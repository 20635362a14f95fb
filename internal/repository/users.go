package repository

import (
	"context"
	"database/sql"

	"mentormatch/internal/database"
	"mentormatch/internal/models"
)

type UserRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, password_hash, name, photo_url, user_type, skills, location, about, created_at`

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.PhotoURL,
		&user.UserType,
		&user.Skills,
		&user.Location,
		&user.About,
		&user.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return user, err
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(q(ctx, r.db).QueryRowContext(ctx, query, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(q(ctx, r.db).QueryRowContext(ctx, query, email))
}

func (r *UserRepository) UpdateRole(ctx context.Context, id, role string) error {
	query := `UPDATE users SET user_type = $1 WHERE id = $2`
	result, err := q(ctx, r.db).ExecContext(ctx, query, role, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id string, skills, location, about *string) error {
	query := `
		UPDATE users
		SET skills = COALESCE($1, skills),
		    location = COALESCE($2, location),
		    about = COALESCE($3, about)
		WHERE id = $4`

	result, err := q(ctx, r.db).ExecContext(ctx, query, skills, location, about, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
