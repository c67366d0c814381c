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
	"github.com/ekinoz/classtrack/internal/pkg/dberrors"
	"github.com/ekinoz/classtrack/internal/pkg/logger"
)

const attendanceColumns = "id, user_id, lecture_id, attended, note_path, summary, created_at, updated_at"

// attendanceRepository is the pgx implementation of AttendanceRepository.
type attendanceRepository struct {
	DB *pgxpool.Pool
}

// NewAttendanceRepository creates a new AttendanceRepository.
func NewAttendanceRepository(db *pgxpool.Pool) AttendanceRepository {
	return &attendanceRepository{DB: db}
}

func scanAttendance(row pgx.Row) (*models.Attendance, error) {
	var att models.Attendance
	err := row.Scan(
		&att.ID, &att.UserID, &att.LectureID, &att.Attended,
		&att.NotePath, &att.Summary, &att.CreatedAt, &att.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAttendanceNotFound
		}
		logger.Error().Err(err).Msg("Error scanning attendance row")
		return nil, err
	}
	return &att, nil
}

// GetOrCreate resolves the attendance record for (user, lecture), inserting a
// fresh unattended one when absent. Losing a concurrent insert race is
// absorbed by re-reading the existing row.
func (r *attendanceRepository) GetOrCreate(ctx context.Context, userID int64, lectureID uuid.UUID) (*models.Attendance, bool, error) {
	existing, err := r.getByUserAndLecture(ctx, userID, lectureID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, apperrors.ErrAttendanceNotFound) {
		return nil, false, err
	}

	sql, args, err := psql.Insert("attendances").
		Columns("user_id", "lecture_id").
		Values(userID, lectureID).
		Suffix("RETURNING " + attendanceColumns).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create attendance SQL")
		return nil, false, err
	}

	created, err := scanAttendance(r.DB.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			existing, err = r.getByUserAndLecture(ctx, userID, lectureID)
			if err != nil {
				return nil, false, err
			}
			return existing, false, nil
		}
		logger.Error().Err(err).Msg("Error executing create attendance query")
		return nil, false, err
	}

	return created, true, nil
}

func (r *attendanceRepository) getByUserAndLecture(ctx context.Context, userID int64, lectureID uuid.UUID) (*models.Attendance, error) {
	sql, args, err := psql.Select(attendanceColumns).
		From("attendances").
		Where(squirrel.Eq{"user_id": userID, "lecture_id": lectureID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get attendance by lecture SQL")
		return nil, err
	}

	return scanAttendance(r.DB.QueryRow(ctx, sql, args...))
}

// GetByID retrieves an attendance record owned by the given user.
func (r *attendanceRepository) GetByID(ctx context.Context, userID int64, id uuid.UUID) (*models.Attendance, error) {
	sql, args, err := psql.Select(attendanceColumns).
		From("attendances").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get attendance SQL")
		return nil, err
	}

	return scanAttendance(r.DB.QueryRow(ctx, sql, args...))
}

// List returns the user's attendance records, newest lecture first,
// optionally narrowed to one lecture or to courses whose name contains a
// substring.
func (r *attendanceRepository) List(ctx context.Context, userID int64, filter AttendanceFilter) ([]models.Attendance, error) {
	builder := psql.Select(
		"a.id", "a.user_id", "a.lecture_id", "a.attended",
		"a.note_path", "a.summary", "a.created_at", "a.updated_at",
	).
		From("attendances a").
		Join("lectures l ON a.lecture_id = l.id").
		Join("courses c ON l.course_id = c.id").
		Where(squirrel.Eq{"a.user_id": userID}).
		OrderBy("l.start_dt DESC")

	if filter.LectureID != nil {
		builder = builder.Where(squirrel.Eq{"a.lecture_id": *filter.LectureID})
	}
	if filter.CourseNameContains != "" {
		builder = builder.Where(squirrel.ILike{"c.name": "%" + filter.CourseNameContains + "%"})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list attendances SQL")
		return nil, err
	}

	return r.queryAttendances(ctx, sql, args)
}

// ListByCourse returns the user's attendance records for one course's
// lectures.
func (r *attendanceRepository) ListByCourse(ctx context.Context, userID int64, courseID uuid.UUID) ([]models.Attendance, error) {
	sql, args, err := psql.Select(
		"a.id", "a.user_id", "a.lecture_id", "a.attended",
		"a.note_path", "a.summary", "a.created_at", "a.updated_at",
	).
		From("attendances a").
		Join("lectures l ON a.lecture_id = l.id").
		Where(squirrel.Eq{"a.user_id": userID, "l.course_id": courseID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list attendances by course SQL")
		return nil, err
	}

	return r.queryAttendances(ctx, sql, args)
}

func (r *attendanceRepository) queryAttendances(ctx context.Context, sql string, args []interface{}) ([]models.Attendance, error) {
	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list attendances query")
		return nil, err
	}
	defer rows.Close()

	attendances := make([]models.Attendance, 0)
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		attendances = append(attendances, *att)
	}

	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error after iterating attendance rows")
		return nil, err
	}

	return attendances, nil
}

// SetAttended updates the attended flag.
func (r *attendanceRepository) SetAttended(ctx context.Context, id uuid.UUID, attended bool) (*models.Attendance, error) {
	sql, args, err := psql.Update("attendances").
		Set("attended", attended).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + attendanceColumns).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building set attended SQL")
		return nil, err
	}

	return scanAttendance(r.DB.QueryRow(ctx, sql, args...))
}

// SetNote stores a new note reference. Any cached summary belongs to the
// previous note, so it is cleared in the same statement.
func (r *attendanceRepository) SetNote(ctx context.Context, id uuid.UUID, notePath string) (*models.Attendance, error) {
	sql, args, err := psql.Update("attendances").
		Set("note_path", notePath).
		Set("summary", "").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + attendanceColumns).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building set note SQL")
		return nil, err
	}

	return scanAttendance(r.DB.QueryRow(ctx, sql, args...))
}

// SetSummary caches the generated summary for the current note.
func (r *attendanceRepository) SetSummary(ctx context.Context, id uuid.UUID, summary string) error {
	sql, args, err := psql.Update("attendances").
		Set("summary", summary).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building set summary SQL")
		return err
	}

	result, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing set summary query")
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrAttendanceNotFound
	}

	return nil
}
