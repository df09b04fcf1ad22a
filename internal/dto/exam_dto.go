package dto

import (
	"time"

	"github.com/TMgolfkid359/Magnolia-App/internal/models"
)

// QuestionPayload describes one question in a create/update request.
type QuestionPayload struct {
	Question      string        `json:"question" validate:"required"`
	Type          string        `json:"type" validate:"required,oneof=multiple-choice true-false short-answer"`
	Options       []string      `json:"options"`
	CorrectAnswer models.Answer `json:"correctAnswer"`
	Points        int           `json:"points" validate:"required,min=1"`
}

// ExamCreateRequest describes the payload for creating an exam.
type ExamCreateRequest struct {
	Title           string            `json:"title" validate:"required,min=3"`
	Description     string            `json:"description"`
	CourseID        string            `json:"courseId"`
	Questions       []QuestionPayload `json:"questions" validate:"required,min=1,dive"`
	PassingScore    int               `json:"passingScore" validate:"required,min=1,max=100"`
	TimeLimit       int               `json:"timeLimit" validate:"omitempty,min=1"`
	AttemptsAllowed int               `json:"attemptsAllowed" validate:"omitempty,min=1"`
}

// ExamUpdateRequest describes a partial update of an exam.
type ExamUpdateRequest struct {
	Title           *string            `json:"title" validate:"omitempty,min=3"`
	Description     *string            `json:"description"`
	CourseID        *string            `json:"courseId"`
	Questions       *[]QuestionPayload `json:"questions" validate:"omitempty,min=1,dive"`
	PassingScore    *int               `json:"passingScore" validate:"omitempty,min=1,max=100"`
	TimeLimit       *int               `json:"timeLimit" validate:"omitempty,min=0"`
	AttemptsAllowed *int               `json:"attemptsAllowed" validate:"omitempty,min=0"`
}

// QuestionResponse is the serialized representation of a question. The
// answer key is only present on instructor/admin reads.
type QuestionResponse struct {
	ID            string         `json:"id"`
	Question      string         `json:"question"`
	Type          string         `json:"type"`
	Options       []string       `json:"options,omitempty"`
	CorrectAnswer *models.Answer `json:"correctAnswer,omitempty"`
	Points        int            `json:"points"`
}

// ExamResponse is the serialized representation of an exam.
type ExamResponse struct {
	ID              string             `json:"id"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	CourseID        string             `json:"courseId,omitempty"`
	Questions       []QuestionResponse `json:"questions"`
	PassingScore    int                `json:"passingScore"`
	TimeLimit       int                `json:"timeLimit,omitempty"`
	AttemptsAllowed int                `json:"attemptsAllowed,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

// NewExamResponse converts a model into a DTO. includeAnswers controls
// whether the answer key is exposed.
func NewExamResponse(exam models.Exam, includeAnswers bool) ExamResponse {
	questions := make([]QuestionResponse, 0, len(exam.Questions))
	for _, question := range exam.Questions {
		response := QuestionResponse{
			ID:       question.ID,
			Question: question.Question,
			Type:     question.Type,
			Options:  question.Options,
			Points:   question.Points,
		}
		if includeAnswers {
			answer := question.CorrectAnswer
			response.CorrectAnswer = &answer
		}
		questions = append(questions, response)
	}

	return ExamResponse{
		ID:              exam.ID,
		Title:           exam.Title,
		Description:     exam.Description,
		CourseID:        exam.CourseID,
		Questions:       questions,
		PassingScore:    exam.PassingScore,
		TimeLimit:       exam.TimeLimit,
		AttemptsAllowed: exam.AttemptsAllowed,
		CreatedAt:       exam.CreatedAt,
		UpdatedAt:       exam.UpdatedAt,
	}
}

// NewExamResponseSlice converts a slice of models into DTOs.
func NewExamResponseSlice(exams []models.Exam, includeAnswers bool) []ExamResponse {
	responses := make([]ExamResponse, 0, len(exams))
	for _, exam := range exams {
		responses = append(responses, NewExamResponse(exam, includeAnswers))
	}
	return responses
}

// ToQuestions maps request payloads onto the question model.
func ToQuestions(payloads []QuestionPayload) []models.Question {
	questions := make([]models.Question, 0, len(payloads))
	for _, payload := range payloads {
		questions = append(questions, models.Question{
			Question:      payload.Question,
			Type:          payload.Type,
			Options:       payload.Options,
			CorrectAnswer: payload.CorrectAnswer,
			Points:        payload.Points,
		})
	}
	return questions
}

// SubmitAttemptRequest carries the answer set for a submission.
type SubmitAttemptRequest struct {
	Answers map[string]models.Answer `json:"answers" validate:"required"`
}

// AttemptResponse is the serialized representation of an exam attempt.
type AttemptResponse struct {
	ID          string                   `json:"id"`
	ExamID      string                   `json:"examId"`
	UserID      string                   `json:"userId"`
	Answers     map[string]models.Answer `json:"answers"`
	Score       *int                     `json:"score,omitempty"`
	Passed      *bool                    `json:"passed,omitempty"`
	StartedAt   time.Time                `json:"startedAt"`
	CompletedAt *time.Time               `json:"completedAt,omitempty"`
}

// NewAttemptResponse converts a model into a DTO.
func NewAttemptResponse(attempt models.ExamAttempt) AttemptResponse {
	return AttemptResponse(attempt)
}

// NewAttemptResponseSlice converts a slice of models into DTOs.
func NewAttemptResponseSlice(attempts []models.ExamAttempt) []AttemptResponse {
	responses := make([]AttemptResponse, 0, len(attempts))
	for _, attempt := range attempts {
		responses = append(responses, NewAttemptResponse(attempt))
	}
	return responses
}
