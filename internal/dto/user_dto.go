package dto

import "github.com/TMgolfkid359/Magnolia-App/internal/models"

// UserCreateRequest describes the payload for creating a portal user.
type UserCreateRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"required,oneof=student instructor admin"`
	Location string `json:"location" validate:"omitempty,max=120"`
}

// UserUpdateRequest describes a partial update of a portal user.
type UserUpdateRequest struct {
	Name                *string   `json:"name" validate:"omitempty,min=2"`
	Email               *string   `json:"email" validate:"omitempty,email"`
	Role                *string   `json:"role" validate:"omitempty,oneof=student instructor admin"`
	Location            *string   `json:"location" validate:"omitempty,max=120"`
	Enrolled            *bool     `json:"enrolled"`
	EnrolledCourses     *[]string `json:"enrolledCourses"`
	AssignedInstructors *[]string `json:"assignedInstructors"`
}

// LinkFSPRequest attaches external scheduler IDs to a user.
type LinkFSPRequest struct {
	FSPStudentID    *string `json:"fspStudentId"`
	FSPInstructorID *string `json:"fspInstructorId"`
}

// UserResponse is the serialized representation of a portal user.
type UserResponse struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Email               string   `json:"email"`
	Role                string   `json:"role"`
	Enrolled            bool     `json:"enrolled"`
	EnrollmentStatus    string   `json:"enrollmentStatus,omitempty"`
	EnrollmentDate      string   `json:"enrollmentDate,omitempty"`
	Location            string   `json:"location,omitempty"`
	EnrolledCourses     []string `json:"enrolledCourses,omitempty"`
	AssignedInstructors []string `json:"assignedInstructors,omitempty"`
	FSPStudentID        string   `json:"fspStudentId,omitempty"`
	FSPInstructorID     string   `json:"fspInstructorId,omitempty"`
	LastLogin           string   `json:"lastLogin,omitempty"`
}

// NewUserResponse converts a model into a DTO.
func NewUserResponse(user models.User) UserResponse {
	return UserResponse(user)
}

// NewUserResponseSlice converts a slice of models into DTOs.
func NewUserResponseSlice(users []models.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, NewUserResponse(user))
	}
	return responses
}
