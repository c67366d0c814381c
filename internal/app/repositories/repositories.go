package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ekinoz/classtrack/internal/app/models"
)

// UserRepository handles database operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// CourseRepository handles database operations for courses. All reads are
// filtered by the owning user at the store boundary.
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, userID int64, id uuid.UUID) (*models.Course, error)
	GetOrCreate(ctx context.Context, userID int64, name, defaultColor string) (*models.Course, bool, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Course, error)
	Delete(ctx context.Context, userID int64, id uuid.UUID) error
}

// LectureFilter narrows lecture listings to an optional date window.
type LectureFilter struct {
	FromDate *time.Time
	ToDate   *time.Time
}

// LectureWithCourse joins a lecture with its course name for list views.
type LectureWithCourse struct {
	models.Lecture
	CourseName string `db:"course_name"`
}

// LectureRepository handles database operations for lectures.
type LectureRepository interface {
	// GetOrCreate resolves a lecture by its (course, start_dt) dedup key,
	// inserting it when absent. Fields of a pre-existing lecture are never
	// overwritten. The second return reports whether a row was created.
	GetOrCreate(ctx context.Context, lecture *models.Lecture) (*models.Lecture, bool, error)
	GetOwnedByID(ctx context.Context, userID int64, id uuid.UUID) (*models.Lecture, error)
	ListByUser(ctx context.Context, userID int64, filter LectureFilter) ([]LectureWithCourse, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Lecture, error)
}

// AttendanceFilter narrows attendance listings.
type AttendanceFilter struct {
	LectureID          *uuid.UUID
	CourseNameContains string
}

// AttendanceRepository handles database operations for attendance records.
type AttendanceRepository interface {
	GetOrCreate(ctx context.Context, userID int64, lectureID uuid.UUID) (*models.Attendance, bool, error)
	GetByID(ctx context.Context, userID int64, id uuid.UUID) (*models.Attendance, error)
	List(ctx context.Context, userID int64, filter AttendanceFilter) ([]models.Attendance, error)
	ListByCourse(ctx context.Context, userID int64, courseID uuid.UUID) ([]models.Attendance, error)
	SetAttended(ctx context.Context, id uuid.UUID, attended bool) (*models.Attendance, error)
	// SetNote stores a new note reference and unconditionally clears any
	// cached summary.
	SetNote(ctx context.Context, id uuid.UUID, notePath string) (*models.Attendance, error)
	SetSummary(ctx context.Context, id uuid.UUID, summary string) error
}

// Repositories is the aggregate of all repository implementations.
type Repositories struct {
	User       UserRepository
	Course     CourseRepository
	Lecture    LectureRepository
	Attendance AttendanceRepository
}

// NewRepositories creates the pgx-backed repository set.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:       NewUserRepository(db),
		Course:     NewCourseRepository(db),
		Lecture:    NewLectureRepository(db),
		Attendance: NewAttendanceRepository(db),
	}
}

// psql builds queries with PostgreSQL placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// courseOwnedBy is the single ownership predicate applied wherever a query
// reaches lecture or attendance rows through their course.
func courseOwnedBy(userID int64) squirrel.Sqlizer {
	return squirrel.Eq{"c.user_id": userID}
}
