package dto

// SlotRequest is one weekly-recurrence template of a timetable import. It is
// transient input, never persisted.
type SlotRequest struct {
	Course    string `json:"course" binding:"required,max=100"`
	Weekday   string `json:"weekday" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
	FromDate  string `json:"fromDate" binding:"required"`
	ToDate    string `json:"toDate" binding:"required"`
	Location  string `json:"location" binding:"max=100"`
}

// ImportScheduleRequest is the payload of a timetable import
type ImportScheduleRequest struct {
	Slots []SlotRequest `json:"slots" binding:"required,min=1,dive"`
}

// ImportScheduleResponse reports how many lecture occurrences were created
type ImportScheduleResponse struct {
	Created int `json:"created"`
}
