package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// Question types.
const (
	QuestionMultipleChoice = "multiple-choice"
	QuestionTrueFalse      = "true-false"
	QuestionShortAnswer    = "short-answer"
)

// Answer holds one submitted or expected exam answer. On the wire it is
// either a bare string or an array of strings for multi-answer questions.
type Answer struct {
	Values []string
	Multi  bool
}

// SingleAnswer wraps one string as a single-choice answer.
func SingleAnswer(value string) Answer {
	return Answer{Values: []string{value}}
}

// MultiAnswer wraps several strings as a multi-answer value.
func MultiAnswer(values ...string) Answer {
	return Answer{Values: values, Multi: true}
}

// Single returns the answer as one string, empty when unanswered.
func (a Answer) Single() string {
	if len(a.Values) == 0 {
		return ""
	}
	return a.Values[0]
}

// MarshalJSON encodes multi answers as arrays and everything else as a string.
func (a Answer) MarshalJSON() ([]byte, error) {
	if a.Multi {
		values := a.Values
		if values == nil {
			values = []string{}
		}
		return json.Marshal(values)
	}
	return json.Marshal(a.Single())
}

// UnmarshalJSON accepts either wire form.
func (a *Answer) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var values []string
		if err := json.Unmarshal(trimmed, &values); err != nil {
			return err
		}
		*a = Answer{Values: values, Multi: true}
		return nil
	}

	var value string
	if err := json.Unmarshal(trimmed, &value); err != nil {
		return err
	}
	*a = Answer{Values: []string{value}}
	return nil
}

// Question is one scored item within an exam. Options are only present for
// choice questions; CorrectAnswer may be multi-valued.
type Question struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Type          string   `json:"type"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer Answer   `json:"correctAnswer"`
	Points        int      `json:"points"`
}

// Exam is an ordered question set with a pass threshold and optional time
// and attempt limits.
type Exam struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	CourseID        string     `json:"courseId,omitempty"`
	Questions       []Question `json:"questions"`
	PassingScore    int        `json:"passingScore"`
	TimeLimit       int        `json:"timeLimit,omitempty"`
	AttemptsAllowed int        `json:"attemptsAllowed,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// TotalPoints sums the point values of every question.
func (e Exam) TotalPoints() int {
	total := 0
	for _, q := range e.Questions {
		total += q.Points
	}
	return total
}

// ExamAttempt is one instance of a user taking an exam. An attempt with a
// nil CompletedAt is still in progress and does not count toward the
// attempts-allowed cap.
type ExamAttempt struct {
	ID          string            `json:"id"`
	ExamID      string            `json:"examId"`
	UserID      string            `json:"userId"`
	Answers     map[string]Answer `json:"answers"`
	Score       *int              `json:"score,omitempty"`
	Passed      *bool             `json:"passed,omitempty"`
	StartedAt   time.Time         `json:"startedAt"`
	CompletedAt *time.Time        `json:"completedAt,omitempty"`
}

// Completed reports whether the attempt has been finalized.
func (a ExamAttempt) Completed() bool {
	return a.CompletedAt != nil
}

// Deadline returns the auto-submit time for a timed exam, or false when the
// exam has no time limit.
func (a ExamAttempt) Deadline(exam Exam) (time.Time, bool) {
	if exam.TimeLimit <= 0 {
		return time.Time{}, false
	}
	return a.StartedAt.Add(time.Duration(exam.TimeLimit) * time.Minute), true
}
