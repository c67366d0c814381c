package dto

import "github.com/google/uuid"

// CreateCourseRequest is the payload for explicit course creation
type CreateCourseRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	ColorHex string `json:"colorHex" binding:"omitempty,hexcolor"`
}

// CourseResponse is the public view of a course
type CourseResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	ColorHex string    `json:"colorHex"`
}
