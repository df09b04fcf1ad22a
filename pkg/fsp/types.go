package fsp

// Flight types.
const (
	TypeLesson    = "lesson"
	TypeSolo      = "solo"
	TypeCheckride = "checkride"
	TypeOther     = "other"
)

// Flight statuses.
const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Flight is a normalized flight record from Flight Schedule Pro. Records are
// fetched live and never persisted by the portal.
type Flight struct {
	ID           string `json:"id"`
	StudentID    string `json:"studentId"`
	InstructorID string `json:"instructorId,omitempty"`
	AircraftID   string `json:"aircraftId"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	Date         string `json:"date"`
	Type         string `json:"type"`
	Status       string `json:"status"`
	Notes        string `json:"notes,omitempty"`
}

// Schedule partitions flights into upcoming and past.
type Schedule struct {
	Upcoming []Flight `json:"upcoming"`
	Past     []Flight `json:"past"`
}

// Student is an operator student record from Flight Schedule Pro.
type Student struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
