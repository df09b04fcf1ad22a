package dto

// LoginRequest carries portal credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignupRequest is a self-service student registration. New students start
// with a pending enrollment.
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Location string `json:"location" validate:"omitempty,max=120"`
}

// LoginResponse returns the issued token alongside the account.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
