package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ekinoz/classtrack/internal/app/models"
	"github.com/ekinoz/classtrack/internal/pkg/apperrors"
	"github.com/ekinoz/classtrack/internal/pkg/logger"
)

// lectureRepository is the pgx implementation of LectureRepository.
type lectureRepository struct {
	DB *pgxpool.Pool
}

// NewLectureRepository creates a new LectureRepository.
func NewLectureRepository(db *pgxpool.Pool) LectureRepository {
	return &lectureRepository{DB: db}
}

func scanLecture(row pgx.Row) (*models.Lecture, error) {
	var lecture models.Lecture
	err := row.Scan(
		&lecture.ID, &lecture.CourseID, &lecture.StartDT, &lecture.EndDT,
		&lecture.Location, &lecture.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLectureNotFound
		}
		logger.Error().Err(err).Msg("Error scanning lecture row")
		return nil, err
	}
	return &lecture, nil
}

// GetOrCreate resolves a lecture by (course_id, start_dt), inserting it when
// absent. A concurrent insert losing the unique-constraint race falls back to
// re-reading the winner's row, so fields of an existing lecture are never
// overwritten.
func (r *lectureRepository) GetOrCreate(ctx context.Context, lecture *models.Lecture) (*models.Lecture, bool, error) {
	existing, err := r.getByDedupKey(ctx, lecture.CourseID, lecture.StartDT)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, apperrors.ErrLectureNotFound) {
		return nil, false, err
	}

	sql, args, err := psql.Insert("lectures").
		Columns("course_id", "start_dt", "end_dt", "location").
		Values(lecture.CourseID, lecture.StartDT, lecture.EndDT, lecture.Location).
		Suffix("ON CONFLICT (course_id, start_dt) DO NOTHING RETURNING id, course_id, start_dt, end_dt, location, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create lecture SQL")
		return nil, false, err
	}

	created, err := scanLecture(r.DB.QueryRow(ctx, sql, args...))
	if err == nil {
		return created, true, nil
	}
	if !errors.Is(err, apperrors.ErrLectureNotFound) {
		logger.Error().Err(err).Msg("Error executing create lecture query")
		return nil, false, err
	}

	// Lost the insert race: the row exists now.
	existing, err = r.getByDedupKey(ctx, lecture.CourseID, lecture.StartDT)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *lectureRepository) getByDedupKey(ctx context.Context, courseID uuid.UUID, startDT time.Time) (*models.Lecture, error) {
	sql, args, err := psql.Select("id", "course_id", "start_dt", "end_dt", "location", "created_at").
		From("lectures").
		Where(squirrel.Eq{"course_id": courseID, "start_dt": startDT}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get lecture by dedup key SQL")
		return nil, err
	}

	return scanLecture(r.DB.QueryRow(ctx, sql, args...))
}

// GetOwnedByID retrieves a lecture whose course is owned by the given user.
func (r *lectureRepository) GetOwnedByID(ctx context.Context, userID int64, id uuid.UUID) (*models.Lecture, error) {
	sql, args, err := psql.Select("l.id", "l.course_id", "l.start_dt", "l.end_dt", "l.location", "l.created_at").
		From("lectures l").
		Join("courses c ON l.course_id = c.id").
		Where(squirrel.Eq{"l.id": id}).
		Where(courseOwnedBy(userID)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get owned lecture SQL")
		return nil, err
	}

	return scanLecture(r.DB.QueryRow(ctx, sql, args...))
}

// ListByUser returns all lectures of the user's courses in ascending start
// order, optionally narrowed to a date window.
func (r *lectureRepository) ListByUser(ctx context.Context, userID int64, filter LectureFilter) ([]LectureWithCourse, error) {
	builder := psql.Select("l.id", "l.course_id", "l.start_dt", "l.end_dt", "l.location", "l.created_at", "c.name as course_name").
		From("lectures l").
		Join("courses c ON l.course_id = c.id").
		Where(courseOwnedBy(userID)).
		OrderBy("l.start_dt ASC")

	if filter.FromDate != nil {
		builder = builder.Where(squirrel.GtOrEq{"l.start_dt": *filter.FromDate})
	}
	if filter.ToDate != nil {
		builder = builder.Where(squirrel.LtOrEq{"l.end_dt": *filter.ToDate})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list lectures SQL")
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list lectures query")
		return nil, err
	}
	defer rows.Close()

	lectures := make([]LectureWithCourse, 0)
	for rows.Next() {
		var lwc LectureWithCourse
		err := rows.Scan(
			&lwc.ID, &lwc.CourseID, &lwc.StartDT, &lwc.EndDT,
			&lwc.Location, &lwc.CreatedAt, &lwc.CourseName,
		)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning lecture with course row")
			return nil, err
		}
		lectures = append(lectures, lwc)
	}

	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error after iterating lecture rows")
		return nil, err
	}

	return lectures, nil
}

// ListByCourse returns all lectures of one course in ascending start order.
func (r *lectureRepository) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Lecture, error) {
	sql, args, err := psql.Select("id", "course_id", "start_dt", "end_dt", "location", "created_at").
		From("lectures").
		Where(squirrel.Eq{"course_id": courseID}).
		OrderBy("start_dt ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list lectures by course SQL")
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list lectures by course query")
		return nil, err
	}
	defer rows.Close()

	lectures := make([]models.Lecture, 0)
	for rows.Next() {
		lecture, err := scanLecture(rows)
		if err != nil {
			return nil, err
		}
		lectures = append(lectures, *lecture)
	}

	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error after iterating lecture rows")
		return nil, err
	}

	return lectures, nil
}
