package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/ekinoz/classtrack/internal/app/models"
	"github.com/ekinoz/classtrack/internal/app/models/dto"
	"github.com/ekinoz/classtrack/internal/pkg/apperrors"
	"github.com/ekinoz/classtrack/internal/pkg/helpers"
)

// Slot is a validated weekly-recurrence template: one course, one weekday,
// a time-of-day window and an inclusive date range.
type Slot struct {
	Course    string
	Weekday   time.Weekday
	StartTime time.Time
	EndTime   time.Time
	FromDate  time.Time
	ToDate    time.Time
	Location  string
}

// Occurrence is one concrete dated instance of a slot.
type Occurrence struct {
	StartDT time.Time
	EndDT   time.Time
}

// weekdayIndex maps the canonical Monday-first weekday names to time.Weekday.
var weekdayIndex = func() map[string]time.Weekday {
	m := make(map[string]time.Weekday, len(models.Weekdays))
	for i, name := range models.Weekdays {
		m[name] = time.Weekday((i + 1) % 7)
	}
	return m
}()

// ParseSlot validates one slot request and converts it into its canonical
// form. Every failure reports the offending field so a batch can be rejected
// with a precise message before any mutation.
func ParseSlot(req dto.SlotRequest) (Slot, error) {
	var slot Slot

	slot.Course = strings.TrimSpace(req.Course)
	if slot.Course == "" {
		return Slot{}, apperrors.NewValidationError("course", "course name cannot be empty")
	}

	weekday, ok := weekdayIndex[req.Weekday]
	if !ok {
		return Slot{}, apperrors.NewValidationError("weekday",
			fmt.Sprintf("weekday must be one of %s", strings.Join(models.Weekdays, ", ")))
	}
	slot.Weekday = weekday

	startTime, err := helpers.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return Slot{}, apperrors.NewValidationError("startTime", "startTime must be in HH:MM format")
	}
	endTime, err := helpers.ParseTimeOfDay(req.EndTime)
	if err != nil {
		return Slot{}, apperrors.NewValidationError("endTime", "endTime must be in HH:MM format")
	}
	if !startTime.Before(endTime) {
		return Slot{}, apperrors.NewValidationError("startTime", "startTime must be before endTime")
	}
	slot.StartTime = startTime
	slot.EndTime = endTime

	fromDate, err := helpers.ParseDateOnly(req.FromDate)
	if err != nil {
		return Slot{}, apperrors.NewValidationError("fromDate", "fromDate must be in YYYY-MM-DD format")
	}
	toDate, err := helpers.ParseDateOnly(req.ToDate)
	if err != nil {
		return Slot{}, apperrors.NewValidationError("toDate", "toDate must be in YYYY-MM-DD format")
	}
	// A single-day range is valid; it produces an occurrence only when that
	// day falls on the slot's weekday.
	if fromDate.After(toDate) {
		return Slot{}, apperrors.NewValidationError("fromDate", "fromDate must not be after toDate")
	}
	slot.FromDate = fromDate
	slot.ToDate = toDate

	slot.Location = strings.TrimSpace(req.Location)

	return slot, nil
}

// ExpandSlot materializes every dated occurrence of the slot, in ascending
// order. It is a pure function of its input: walking the inclusive date range
// day by day and emitting each date whose weekday matches.
func ExpandSlot(slot Slot) []Occurrence {
	occurrences := make([]Occurrence, 0)

	for d := slot.FromDate; !d.After(slot.ToDate); d = d.AddDate(0, 0, 1) {
		if d.Weekday() != slot.Weekday {
			continue
		}
		occurrences = append(occurrences, Occurrence{
			StartDT: combine(d, slot.StartTime),
			EndDT:   combine(d, slot.EndTime),
		})
	}

	return occurrences
}

// combine anchors a time-of-day onto a calendar date, in UTC.
func combine(date, timeOfDay time.Time) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		timeOfDay.Hour(), timeOfDay.Minute(), 0, 0,
		time.UTC,
	)
}
