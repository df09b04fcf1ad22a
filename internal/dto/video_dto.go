package dto

import "github.com/TMgolfkid359/Magnolia-App/internal/models"

// VideoCreateRequest describes the payload for adding a video lesson.
type VideoCreateRequest struct {
	Title       string `json:"title" validate:"required,min=3"`
	Description string `json:"description"`
	Category    string `json:"category" validate:"required,oneof=ground flight safety systems"`
	Duration    string `json:"duration"`
	Date        string `json:"date"`
	Thumbnail   string `json:"thumbnail"`
	VideoURL    string `json:"videoUrl" validate:"required,url"`
	Instructor  string `json:"instructor"`
}

// VideoUpdateRequest describes a partial update of a video lesson.
type VideoUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=3"`
	Description *string `json:"description"`
	Category    *string `json:"category" validate:"omitempty,oneof=ground flight safety systems"`
	Duration    *string `json:"duration"`
	Date        *string `json:"date"`
	Thumbnail   *string `json:"thumbnail"`
	VideoURL    *string `json:"videoUrl" validate:"omitempty,url"`
	Instructor  *string `json:"instructor"`
}

// VideoResponse is the serialized representation of a video lesson.
type VideoResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Duration    string `json:"duration"`
	Date        string `json:"date"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	VideoURL    string `json:"videoUrl"`
	Instructor  string `json:"instructor,omitempty"`
}

// NewVideoResponse converts a model into a DTO.
func NewVideoResponse(video models.Video) VideoResponse {
	return VideoResponse(video)
}

// NewVideoResponseSlice converts a slice of models into DTOs.
func NewVideoResponseSlice(videos []models.Video) []VideoResponse {
	responses := make([]VideoResponse, 0, len(videos))
	for _, video := range videos {
		responses = append(responses, NewVideoResponse(video))
	}
	return responses
}
