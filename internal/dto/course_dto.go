package dto

import "github.com/TMgolfkid359/Magnolia-App/internal/models"

// MaterialPayload describes one material in a create/update request. The
// populated content reference must match the declared type.
type MaterialPayload struct {
	Type     string `json:"type" validate:"required,oneof=document video quiz"`
	Title    string `json:"title" validate:"required,min=1"`
	URL      string `json:"url"`
	FileData string `json:"fileData"`
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
	ExamID   string `json:"examId"`
}

// CourseCreateRequest describes the payload for creating a course.
type CourseCreateRequest struct {
	Title         string            `json:"title" validate:"required,min=3"`
	Description   string            `json:"description" validate:"required"`
	Type          string            `json:"type" validate:"required,oneof=indoc ground preflight other"`
	Required      bool              `json:"required"`
	EstimatedTime string            `json:"estimatedTime" validate:"required"`
	Materials     []MaterialPayload `json:"materials" validate:"dive"`
}

// CourseUpdateRequest describes a partial update of a course. Completion
// state is derived and cannot be patched directly.
type CourseUpdateRequest struct {
	Title         *string            `json:"title" validate:"omitempty,min=3"`
	Description   *string            `json:"description"`
	Type          *string            `json:"type" validate:"omitempty,oneof=indoc ground preflight other"`
	Required      *bool              `json:"required"`
	EstimatedTime *string            `json:"estimatedTime"`
	Materials     *[]MaterialPayload `json:"materials" validate:"omitempty,dive"`
}

// CourseResponse is the serialized representation of a course.
type CourseResponse struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	Type           string            `json:"type"`
	Required       bool              `json:"required"`
	EstimatedTime  string            `json:"estimatedTime"`
	Completed      bool              `json:"completed"`
	CompletionDate string            `json:"completionDate,omitempty"`
	Materials      []models.Material `json:"materials"`
}

// NewCourseResponse converts a model into a DTO.
func NewCourseResponse(course models.Course) CourseResponse {
	materials := course.Materials
	if materials == nil {
		materials = []models.Material{}
	}
	return CourseResponse{
		ID:             course.ID,
		Title:          course.Title,
		Description:    course.Description,
		Type:           course.Type,
		Required:       course.Required,
		EstimatedTime:  course.EstimatedTime,
		Completed:      course.Completed,
		CompletionDate: course.CompletionDate,
		Materials:      materials,
	}
}

// NewCourseResponseSlice converts a slice of models into DTOs.
func NewCourseResponseSlice(courses []models.Course) []CourseResponse {
	responses := make([]CourseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, NewCourseResponse(course))
	}
	return responses
}

// ToMaterials maps request payloads onto the material model.
func ToMaterials(payloads []MaterialPayload) []models.Material {
	materials := make([]models.Material, 0, len(payloads))
	for _, payload := range payloads {
		materials = append(materials, models.Material{
			Type:     payload.Type,
			Title:    payload.Title,
			URL:      payload.URL,
			FileData: payload.FileData,
			FileName: payload.FileName,
			FileType: payload.FileType,
			ExamID:   payload.ExamID,
		})
	}
	return materials
}
