package repositories

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ekinoz/classtrack/internal/app/models"
	"github.com/ekinoz/classtrack/internal/pkg/apperrors"
	"github.com/ekinoz/classtrack/internal/pkg/dberrors"
	"github.com/ekinoz/classtrack/internal/pkg/logger"
)

// userRepository is the pgx implementation of UserRepository.
type userRepository struct {
	DB *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &userRepository{DB: db}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Msg("Error scanning user row")
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user and returns its ID.
func (r *userRepository) Create(ctx context.Context, user *models.User) (int64, error) {
	sql, args, err := psql.Insert("users").
		Columns("username", "email", "password_hash").
		Values(user.Username, user.Email, user.PasswordHash).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create user SQL")
		return 0, err
	}

	var id int64
	err = r.DB.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, "users_username_key"):
			return 0, apperrors.ErrUsernameExists
		case dberrors.IsDuplicateConstraintError(err, "users_email_key"):
			return 0, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Msg("Error executing create user query")
		return 0, err
	}

	return id, nil
}

// GetByID retrieves a user by ID.
func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	sql, args, err := psql.Select("id", "username", "email", "password_hash", "created_at", "updated_at").
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get user by ID SQL")
		return nil, err
	}

	return scanUser(r.DB.QueryRow(ctx, sql, args...))
}

// GetByUsername retrieves a user by username.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	sql, args, err := psql.Select("id", "username", "email", "password_hash", "created_at", "updated_at").
		From("users").
		Where(squirrel.Eq{"username": username}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get user by username SQL")
		return nil, err
	}

	return scanUser(r.DB.QueryRow(ctx, sql, args...))
}

// GetByEmail retrieves a user by email.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	sql, args, err := psql.Select("id", "username", "email", "password_hash", "created_at", "updated_at").
		From("users").
		Where(squirrel.Eq{"email": email}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get user by email SQL")
		return nil, err
	}

	return scanUser(r.DB.QueryRow(ctx, sql, args...))
}
