package dto

import "github.com/TMgolfkid359/Magnolia-App/pkg/fsp"

// ScheduleResponse carries the partitioned schedule. When the scheduler
// lookup fails, Error is populated and both partitions stay empty so clients
// always get a renderable payload.
type ScheduleResponse struct {
	Error    string       `json:"error,omitempty"`
	Upcoming []fsp.Flight `json:"upcoming"`
	Past     []fsp.Flight `json:"past"`
}

// NewScheduleResponse wraps a schedule, never returning nil partitions.
func NewScheduleResponse(schedule fsp.Schedule) ScheduleResponse {
	upcoming := schedule.Upcoming
	if upcoming == nil {
		upcoming = []fsp.Flight{}
	}
	past := schedule.Past
	if past == nil {
		past = []fsp.Flight{}
	}
	return ScheduleResponse{Upcoming: upcoming, Past: past}
}

// NewScheduleErrorResponse builds the degraded payload for a failed lookup.
func NewScheduleErrorResponse(message string) ScheduleResponse {
	return ScheduleResponse{
		Error:    message,
		Upcoming: []fsp.Flight{},
		Past:     []fsp.Flight{},
	}
}

// MatchStudentRequest asks the scheduler for the student record matching an
// email address.
type MatchStudentRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// MatchStudentResponse reports the outcome of a scheduler match.
type MatchStudentResponse struct {
	Matched bool         `json:"matched"`
	Student *fsp.Student `json:"student,omitempty"`
}
