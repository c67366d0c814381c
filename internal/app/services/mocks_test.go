package services

import (
	"context"
	"mime/multipart"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ekinoz/classtrack/internal/app/models"
	"github.com/ekinoz/classtrack/internal/app/repositories"
	"github.com/ekinoz/classtrack/internal/pkg/apperrors"
)

// memStore is an in-memory stand-in for the postgres repositories, enforcing
// the same uniqueness and ownership semantics.
type memStore struct {
	mu          sync.Mutex
	courses     map[uuid.UUID]*models.Course
	lectures    map[uuid.UUID]*models.Lecture
	attendances map[uuid.UUID]*models.Attendance
}

func newMemStore() *memStore {
	return &memStore{
		courses:     make(map[uuid.UUID]*models.Course),
		lectures:    make(map[uuid.UUID]*models.Lecture),
		attendances: make(map[uuid.UUID]*models.Attendance),
	}
}

func (s *memStore) courseRepo() repositories.CourseRepository         { return &memCourseRepo{s} }
func (s *memStore) lectureRepo() repositories.LectureRepository       { return &memLectureRepo{s} }
func (s *memStore) attendanceRepo() repositories.AttendanceRepository { return &memAttendanceRepo{s} }

type memCourseRepo struct{ store *memStore }

func (r *memCourseRepo) Create(_ context.Context, course *models.Course) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	course.ID = uuid.New()
	course.CreatedAt = time.Now().UTC()
	course.UpdatedAt = course.CreatedAt
	clone := *course
	r.store.courses[course.ID] = &clone
	return nil
}

func (r *memCourseRepo) GetByID(_ context.Context, userID int64, id uuid.UUID) (*models.Course, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	course, ok := r.store.courses[id]
	if !ok || course.UserID != userID {
		return nil, apperrors.ErrCourseNotFound
	}
	clone := *course
	return &clone, nil
}

func (r *memCourseRepo) GetOrCreate(_ context.Context, userID int64, name, defaultColor string) (*models.Course, bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var oldest *models.Course
	for _, course := range r.store.courses {
		if course.UserID != userID || course.Name != name {
			continue
		}
		if oldest == nil || course.CreatedAt.Before(oldest.CreatedAt) {
			oldest = course
		}
	}
	if oldest != nil {
		clone := *oldest
		return &clone, false, nil
	}

	course := &models.Course{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		ColorHex:  defaultColor,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	r.store.courses[course.ID] = course
	clone := *course
	return &clone, true, nil
}

func (r *memCourseRepo) ListByUser(_ context.Context, userID int64) ([]models.Course, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	courses := make([]models.Course, 0)
	for _, course := range r.store.courses {
		if course.UserID == userID {
			courses = append(courses, *course)
		}
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].CreatedAt.Before(courses[j].CreatedAt) })
	return courses, nil
}

func (r *memCourseRepo) Delete(_ context.Context, userID int64, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	course, ok := r.store.courses[id]
	if !ok || course.UserID != userID {
		return apperrors.ErrCourseNotFound
	}
	delete(r.store.courses, id)
	for lectureID, lecture := range r.store.lectures {
		if lecture.CourseID != id {
			continue
		}
		delete(r.store.lectures, lectureID)
		for attID, att := range r.store.attendances {
			if att.LectureID == lectureID {
				delete(r.store.attendances, attID)
			}
		}
	}
	return nil
}

type memLectureRepo struct{ store *memStore }

func (r *memLectureRepo) GetOrCreate(_ context.Context, lecture *models.Lecture) (*models.Lecture, bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.lectures {
		if existing.CourseID == lecture.CourseID && existing.StartDT.Equal(lecture.StartDT) {
			clone := *existing
			return &clone, false, nil
		}
	}

	created := &models.Lecture{
		ID:        uuid.New(),
		CourseID:  lecture.CourseID,
		StartDT:   lecture.StartDT,
		EndDT:     lecture.EndDT,
		Location:  lecture.Location,
		CreatedAt: time.Now().UTC(),
	}
	r.store.lectures[created.ID] = created
	clone := *created
	return &clone, true, nil
}

func (r *memLectureRepo) GetOwnedByID(_ context.Context, userID int64, id uuid.UUID) (*models.Lecture, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	lecture, ok := r.store.lectures[id]
	if !ok {
		return nil, apperrors.ErrLectureNotFound
	}
	course, ok := r.store.courses[lecture.CourseID]
	if !ok || course.UserID != userID {
		return nil, apperrors.ErrLectureNotFound
	}
	clone := *lecture
	return &clone, nil
}

func (r *memLectureRepo) ListByUser(_ context.Context, userID int64, filter repositories.LectureFilter) ([]repositories.LectureWithCourse, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	lectures := make([]repositories.LectureWithCourse, 0)
	for _, lecture := range r.store.lectures {
		course, ok := r.store.courses[lecture.CourseID]
		if !ok || course.UserID != userID {
			continue
		}
		if filter.FromDate != nil && lecture.StartDT.Before(*filter.FromDate) {
			continue
		}
		if filter.ToDate != nil && lecture.EndDT.After(*filter.ToDate) {
			continue
		}
		lectures = append(lectures, repositories.LectureWithCourse{
			Lecture:    *lecture,
			CourseName: course.Name,
		})
	}
	sort.Slice(lectures, func(i, j int) bool { return lectures[i].StartDT.Before(lectures[j].StartDT) })
	return lectures, nil
}

func (r *memLectureRepo) ListByCourse(_ context.Context, courseID uuid.UUID) ([]models.Lecture, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	lectures := make([]models.Lecture, 0)
	for _, lecture := range r.store.lectures {
		if lecture.CourseID == courseID {
			lectures = append(lectures, *lecture)
		}
	}
	sort.Slice(lectures, func(i, j int) bool { return lectures[i].StartDT.Before(lectures[j].StartDT) })
	return lectures, nil
}

type memAttendanceRepo struct{ store *memStore }

func (r *memAttendanceRepo) GetOrCreate(_ context.Context, userID int64, lectureID uuid.UUID) (*models.Attendance, bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, att := range r.store.attendances {
		if att.UserID == userID && att.LectureID == lectureID {
			clone := *att
			return &clone, false, nil
		}
	}

	att := &models.Attendance{
		ID:        uuid.New(),
		UserID:    userID,
		LectureID: lectureID,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	r.store.attendances[att.ID] = att
	clone := *att
	return &clone, true, nil
}

func (r *memAttendanceRepo) GetByID(_ context.Context, userID int64, id uuid.UUID) (*models.Attendance, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	att, ok := r.store.attendances[id]
	if !ok || att.UserID != userID {
		return nil, apperrors.ErrAttendanceNotFound
	}
	clone := *att
	return &clone, nil
}

func (r *memAttendanceRepo) List(_ context.Context, userID int64, filter repositories.AttendanceFilter) ([]models.Attendance, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	attendances := make([]models.Attendance, 0)
	for _, att := range r.store.attendances {
		if att.UserID != userID {
			continue
		}
		if filter.LectureID != nil && att.LectureID != *filter.LectureID {
			continue
		}
		if filter.CourseNameContains != "" {
			lecture, ok := r.store.lectures[att.LectureID]
			if !ok {
				continue
			}
			course, ok := r.store.courses[lecture.CourseID]
			if !ok || !strings.Contains(strings.ToLower(course.Name), strings.ToLower(filter.CourseNameContains)) {
				continue
			}
		}
		attendances = append(attendances, *att)
	}
	return attendances, nil
}

func (r *memAttendanceRepo) ListByCourse(_ context.Context, userID int64, courseID uuid.UUID) ([]models.Attendance, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	attendances := make([]models.Attendance, 0)
	for _, att := range r.store.attendances {
		if att.UserID != userID {
			continue
		}
		lecture, ok := r.store.lectures[att.LectureID]
		if !ok || lecture.CourseID != courseID {
			continue
		}
		attendances = append(attendances, *att)
	}
	return attendances, nil
}

func (r *memAttendanceRepo) SetAttended(_ context.Context, id uuid.UUID, attended bool) (*models.Attendance, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	att, ok := r.store.attendances[id]
	if !ok {
		return nil, apperrors.ErrAttendanceNotFound
	}
	att.Attended = attended
	att.UpdatedAt = time.Now().UTC()
	clone := *att
	return &clone, nil
}

func (r *memAttendanceRepo) SetNote(_ context.Context, id uuid.UUID, notePath string) (*models.Attendance, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	att, ok := r.store.attendances[id]
	if !ok {
		return nil, apperrors.ErrAttendanceNotFound
	}
	att.NotePath = notePath
	att.Summary = ""
	att.UpdatedAt = time.Now().UTC()
	clone := *att
	return &clone, nil
}

func (r *memAttendanceRepo) SetSummary(_ context.Context, id uuid.UUID, summary string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	att, ok := r.store.attendances[id]
	if !ok {
		return apperrors.ErrAttendanceNotFound
	}
	att.Summary = summary
	att.UpdatedAt = time.Now().UTC()
	return nil
}

// memFileStorage keeps stored files in a map keyed by reference.
type memFileStorage struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemFileStorage() *memFileStorage {
	return &memFileStorage{files: make(map[string][]byte)}
}

func (s *memFileStorage) put(reference string, content []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[reference] = content
}

func (s *memFileStorage) SaveFile(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil {
		return "", nil
	}
	reference := uuid.New().String() + "_" + fileHeader.Filename
	s.put(reference, nil)
	return reference, nil
}

func (s *memFileStorage) ReadFile(reference string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	content, ok := s.files[reference]
	if !ok {
		return nil, os.ErrNotExist
	}
	return content, nil
}

func (s *memFileStorage) DeleteFile(reference string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, reference)
	return nil
}

// stubCompleter counts external calls and returns a canned summary.
type stubCompleter struct {
	mu      sync.Mutex
	calls   int
	delay   time.Duration
	failure error
}

func (c *stubCompleter) Complete(_ context.Context, _, _ string) (string, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()

	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	if c.failure != nil {
		return "", c.failure
	}
	return "a digestible summary", nil
}

func (c *stubCompleter) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}
