package dto

import "github.com/google/uuid"

// CourseDashboardResponse is the per-course roll-up shown on the dashboard
type CourseDashboardResponse struct {
	ID            uuid.UUID               `json:"id"`
	Name          string                  `json:"name"`
	ColorHex      string                  `json:"colorHex"`
	AttendancePct float64                 `json:"attendancePct"`
	Lectures      []LectureStatusResponse `json:"lectures"`
}

// DashboardResponse is the full dashboard payload
type DashboardResponse struct {
	Courses []CourseDashboardResponse `json:"courses"`
}
