package services

import (
	"context"
	"fmt"

	"github.com/ekinoz/classtrack/internal/app/models"
	"github.com/ekinoz/classtrack/internal/app/models/dto"
	"github.com/ekinoz/classtrack/internal/app/repositories"
	"github.com/ekinoz/classtrack/internal/pkg/logger"
)

// ScheduleService defines the interface for timetable import operations
type ScheduleService interface {
	ImportTimetable(ctx context.Context, userID int64, slots []dto.SlotRequest) (int, error)
}

// scheduleServiceImpl implements the ScheduleService interface
type scheduleServiceImpl struct {
	courseRepo     repositories.CourseRepository
	lectureRepo    repositories.LectureRepository
	attendanceRepo repositories.AttendanceRepository
	defaultColor   string
}

// NewScheduleService creates a new schedule service instance
func NewScheduleService(
	courseRepo repositories.CourseRepository,
	lectureRepo repositories.LectureRepository,
	attendanceRepo repositories.AttendanceRepository,
	defaultColor string,
) ScheduleService {
	return &scheduleServiceImpl{
		courseRepo:     courseRepo,
		lectureRepo:    lectureRepo,
		attendanceRepo: attendanceRepo,
		defaultColor:   defaultColor,
	}
}

// ImportTimetable expands every slot into dated lecture occurrences and
// upserts them. Validation is all-or-nothing: one invalid slot rejects the
// batch before any mutation. Mutation is best-effort per slot and built
// entirely on get-or-create, so repeating an import creates nothing new and
// a retry after a mid-batch storage fault completes the remainder.
func (s *scheduleServiceImpl) ImportTimetable(ctx context.Context, userID int64, slotReqs []dto.SlotRequest) (int, error) {
	slots := make([]Slot, 0, len(slotReqs))
	for i, req := range slotReqs {
		slot, err := ParseSlot(req)
		if err != nil {
			return 0, fmt.Errorf("slot %d: %w", i, err)
		}
		slots = append(slots, slot)
	}

	created := 0
	for _, slot := range slots {
		course, courseCreated, err := s.courseRepo.GetOrCreate(ctx, userID, slot.Course, s.defaultColor)
		if err != nil {
			return created, fmt.Errorf("error resolving course %q: %w", slot.Course, err)
		}
		if courseCreated {
			logger.Debug().Str("course", course.Name).Msg("Created course during timetable import")
		}

		for _, occ := range ExpandSlot(slot) {
			lecture, lectureCreated, err := s.lectureRepo.GetOrCreate(ctx, &models.Lecture{
				CourseID: course.ID,
				StartDT:  occ.StartDT,
				EndDT:    occ.EndDT,
				Location: slot.Location,
			})
			if err != nil {
				return created, fmt.Errorf("error creating lecture occurrence: %w", err)
			}
			if lectureCreated {
				created++
			}

			// Every imported occurrence gets an attendance row ready for
			// toggling, without touching an existing one's state.
			if _, _, err := s.attendanceRepo.GetOrCreate(ctx, userID, lecture.ID); err != nil {
				return created, fmt.Errorf("error creating attendance record: %w", err)
			}
		}
	}

	logger.Info().
		Int64("userId", userID).
		Int("slots", len(slots)).
		Int("created", created).
		Msg("Timetable import completed")

	return created, nil
}
