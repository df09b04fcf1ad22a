package dto

import (
	"time"

	"github.com/TMgolfkid359/Magnolia-App/internal/models"
)

// ProgressResponse is the serialized representation of one (course,user)
// progress record. TimeSpentSeconds includes the live seconds of an open
// session at read time.
type ProgressResponse struct {
	CourseID         string     `json:"courseId"`
	UserID           string     `json:"userId"`
	ViewedMaterials  []string   `json:"viewedMaterials"`
	CompletedExams   []string   `json:"completedExams"`
	LastViewedAt     *time.Time `json:"lastViewedAt,omitempty"`
	TimeSpentSeconds int64      `json:"timeSpentSeconds"`
	SessionOpen      bool       `json:"sessionOpen"`
}

// NewProgressResponse converts a progress record, folding in live session
// time relative to now.
func NewProgressResponse(progress models.CourseProgress, now time.Time) ProgressResponse {
	viewed := progress.ViewedMaterials
	if viewed == nil {
		viewed = []string{}
	}
	completed := progress.CompletedExams
	if completed == nil {
		completed = []string{}
	}

	total := progress.TimeSpentSeconds
	if progress.SessionStartedAt != nil {
		total += int64(now.Sub(*progress.SessionStartedAt).Seconds())
	}

	return ProgressResponse{
		CourseID:         progress.CourseID,
		UserID:           progress.UserID,
		ViewedMaterials:  viewed,
		CompletedExams:   completed,
		LastViewedAt:     progress.LastViewedAt,
		TimeSpentSeconds: total,
		SessionOpen:      progress.SessionStartedAt != nil,
	}
}

// NewProgressResponseSlice converts a slice of progress records.
func NewProgressResponseSlice(records []models.CourseProgress, now time.Time) []ProgressResponse {
	responses := make([]ProgressResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, NewProgressResponse(record, now))
	}
	return responses
}

// TimeSpentResponse reports cumulative course time for a user.
type TimeSpentResponse struct {
	CourseID         string `json:"courseId"`
	UserID           string `json:"userId"`
	TimeSpentSeconds int64  `json:"timeSpentSeconds"`
}
