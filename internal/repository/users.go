package repository

import (
	"context"
	"errors"
	"fmt"

	"messenger-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	ListExcept(ctx context.Context, excludeID int64) ([]models.User, error)
	SetStatus(ctx context.Context, id int64, status string) error
	SetProfilePicture(ctx context.Context, id int64, filename string) error
}

type userRepository struct {
	db  *pgxpool.Pool
	log *zap.SugaredLogger
}

func NewUserRepository(db *pgxpool.Pool, log *zap.SugaredLogger) UserRepository {
	return &userRepository{db: db, log: log}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, password_hash, name, profile_picture, status)
		VALUES ($1, $2, $3, $4, 'offline')
		RETURNING id, status, last_seen, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		user.Email, user.PasswordHash, user.Name, user.ProfilePicture,
	).Scan(&user.ID, &user.Status, &user.LastSeen, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		r.log.Errorw("failed to create user", "error", err)
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.QueryRow(ctx, `
		SELECT id, email, password_hash, name, profile_picture, status, last_seen, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.ProfilePicture,
		&user.Status, &user.LastSeen, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := r.db.QueryRow(ctx, `
		SELECT id, email, password_hash, name, profile_picture, status, last_seen, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.ProfilePicture,
		&user.Status, &user.LastSeen, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

// ListExcept returns the directory of everyone except the caller, name
// ascending.
func (r *userRepository) ListExcept(ctx context.Context, excludeID int64) ([]models.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, email, name, profile_picture, status, last_seen, created_at, updated_at
		FROM users
		WHERE id != $1
		ORDER BY name ASC
	`, excludeID)
	if err != nil {
		r.log.Errorw("failed to list users", "error", err)
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID, &user.Email, &user.Name, &user.ProfilePicture,
			&user.Status, &user.LastSeen, &user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return users, nil
}

func (r *userRepository) SetStatus(ctx context.Context, id int64, status string) error {
	_, err := r.db.Exec(ctx,
		"UPDATE users SET status = $1, last_seen = NOW(), updated_at = NOW() WHERE id = $2",
		status, id,
	)
	if err != nil {
		return fmt.Errorf("set status: %w", err)
	}
	return nil
}

func (r *userRepository) SetProfilePicture(ctx context.Context, id int64, filename string) error {
	_, err := r.db.Exec(ctx,
		"UPDATE users SET profile_picture = $1, updated_at = NOW() WHERE id = $2",
		filename, id,
	)
	if err != nil {
		return fmt.Errorf("set profile picture: %w", err)
	}
	return nil
}
