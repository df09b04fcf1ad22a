package models

import "time"

// CourseProgress aggregates a user's standing in one course: which material
// indices they have opened (stored stringified, in view order), which linked
// exams they have passed, and how long they have spent. SessionStartedAt is
// set while a time-tracking session is open.
type CourseProgress struct {
	CourseID         string     `json:"courseId"`
	UserID           string     `json:"userId"`
	ViewedMaterials  []string   `json:"viewedMaterials"`
	CompletedExams   []string   `json:"completedExams"`
	LastViewedAt     *time.Time `json:"lastViewedAt,omitempty"`
	TimeSpentSeconds int64      `json:"timeSpentSeconds,omitempty"`
	SessionStartedAt *time.Time `json:"sessionStartTime,omitempty"`
}

// HasViewed reports whether the stringified material index is in the viewed set.
func (p CourseProgress) HasViewed(index string) bool {
	for _, viewed := range p.ViewedMaterials {
		if viewed == index {
			return true
		}
	}
	return false
}

// HasCompletedExam reports whether the exam ID is in the completed set.
func (p CourseProgress) HasCompletedExam(examID string) bool {
	for _, completed := range p.CompletedExams {
		if completed == examID {
			return true
		}
	}
	return false
}
