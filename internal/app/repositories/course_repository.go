package repositories

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ekinoz/classtrack/internal/app/models"
	"github.com/ekinoz/classtrack/internal/pkg/apperrors"
	"github.com/ekinoz/classtrack/internal/pkg/logger"
)

// courseRepository is the pgx implementation of CourseRepository.
type courseRepository struct {
	DB *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(db *pgxpool.Pool) CourseRepository {
	return &courseRepository{DB: db}
}

const courseColumns = "id, user_id, name, color_hex, created_at, updated_at"

func scanCourse(row pgx.Row) (*models.Course, error) {
	var course models.Course
	err := row.Scan(
		&course.ID, &course.UserID, &course.Name, &course.ColorHex,
		&course.CreatedAt, &course.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Msg("Error scanning course row")
		return nil, err
	}
	return &course, nil
}

// Create inserts a new course.
func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	sql, args, err := psql.Insert("courses").
		Columns("user_id", "name", "color_hex").
		Values(course.UserID, course.Name, course.ColorHex).
		Suffix("RETURNING " + courseColumns).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create course SQL")
		return err
	}

	created, err := scanCourse(r.DB.QueryRow(ctx, sql, args...))
	if err != nil {
		logger.Error().Err(err).Str("name", course.Name).Msg("Error executing create course query")
		return err
	}
	*course = *created
	return nil
}

// GetByID retrieves a course owned by the given user.
func (r *courseRepository) GetByID(ctx context.Context, userID int64, id uuid.UUID) (*models.Course, error) {
	sql, args, err := psql.Select("id", "user_id", "name", "color_hex", "created_at", "updated_at").
		From("courses c").
		Where(squirrel.Eq{"c.id": id}).
		Where(courseOwnedBy(userID)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get course by ID SQL")
		return nil, err
	}

	return scanCourse(r.DB.QueryRow(ctx, sql, args...))
}

// GetOrCreate resolves a course by (user, name), creating it with the default
// color when absent. Course names are not unique in the store: this lookup is
// the de-duplication mechanism, so callers must not race it for the same name.
func (r *courseRepository) GetOrCreate(ctx context.Context, userID int64, name, defaultColor string) (*models.Course, bool, error) {
	sql, args, err := psql.Select("id", "user_id", "name", "color_hex", "created_at", "updated_at").
		From("courses").
		Where(squirrel.Eq{"user_id": userID, "name": name}).
		OrderBy("created_at ASC").
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get-or-create course select SQL")
		return nil, false, err
	}

	course, err := scanCourse(r.DB.QueryRow(ctx, sql, args...))
	if err == nil {
		return course, false, nil
	}
	if !errors.Is(err, apperrors.ErrCourseNotFound) {
		return nil, false, err
	}

	course = &models.Course{UserID: userID, Name: name, ColorHex: defaultColor}
	if err := r.Create(ctx, course); err != nil {
		return nil, false, err
	}
	return course, true, nil
}

// ListByUser returns all courses owned by a user, oldest first.
func (r *courseRepository) ListByUser(ctx context.Context, userID int64) ([]models.Course, error) {
	sql, args, err := psql.Select("id", "user_id", "name", "color_hex", "created_at", "updated_at").
		From("courses").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list courses SQL")
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list courses query")
		return nil, err
	}
	defer rows.Close()

	courses := make([]models.Course, 0)
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, *course)
	}

	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error after iterating course rows")
		return nil, err
	}

	return courses, nil
}

// Delete removes a course owned by the given user; lectures and attendances
// cascade in the schema.
func (r *courseRepository) Delete(ctx context.Context, userID int64, id uuid.UUID) error {
	sql, args, err := psql.Delete("courses").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete course SQL")
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete course query")
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}
