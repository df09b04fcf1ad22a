package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/TMgolfkid359/Magnolia-App/internal/dto"
	"github.com/TMgolfkid359/Magnolia-App/internal/models"
	"github.com/TMgolfkid359/Magnolia-App/internal/repository"
)

// Auth errors.
var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrEnrollmentNotActive = errors.New("enrollment not active")
	ErrEmailTaken          = errors.New("email already registered")
)

// AuthConfig carries the credential and token settings for the auth service.
type AuthConfig struct {
	PortalPassword string
	JWTSecret      string
	JWTTTL         time.Duration
}

// AuthService handles portal sign-in and self-service registration. The
// portal uses one shared password for every account; identity comes from the
// email address and the gate is the enrollment state, not the secret.
type AuthService interface {
	Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error)
	Signup(ctx context.Context, payload dto.SignupRequest) (dto.UserResponse, error)
}

type authService struct {
	users     repository.UserRepository
	cfg       AuthConfig
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAuthService builds a new auth service.
func NewAuthService(users repository.UserRepository, cfg AuthConfig, validate *validator.Validate, logger zerolog.Logger) AuthService {
	return &authService{
		users:     users,
		cfg:       cfg,
		validator: validate,
		logger:    logger.With().Str("component", "auth_service").Logger(),
		now:       time.Now,
	}
}

func (s *authService) Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LoginResponse{}, err
	}

	user, err := s.users.GetByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.LoginResponse{}, ErrInvalidCredentials
		}
		return dto.LoginResponse{}, err
	}

	if payload.Password != s.cfg.PortalPassword {
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	if !user.CanLogin() {
		s.logger.Info().Str("user_id", user.ID).Str("status", user.EnrollmentStatus).Msg("login blocked, enrollment not active")
		return dto.LoginResponse{}, ErrEnrollmentNotActive
	}

	lastLogin := s.now().UTC().Format(time.RFC3339)
	user, err = s.users.Update(ctx, user.ID, repository.UserPatch{LastLogin: &lastLogin})
	if err != nil {
		return dto.LoginResponse{}, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return dto.LoginResponse{}, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("user logged in")

	return dto.LoginResponse{Token: token, User: dto.NewUserResponse(user)}, nil
}

// Signup registers a new student with a pending enrollment. Pending students
// cannot log in until an admin approves them.
func (s *authService) Signup(ctx context.Context, payload dto.SignupRequest) (dto.UserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	if _, err := s.users.GetByEmail(ctx, payload.Email); err == nil {
		return dto.UserResponse{}, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return dto.UserResponse{}, err
	}

	user := models.User{
		Name:             payload.Name,
		Email:            payload.Email,
		Role:             models.RoleStudent,
		EnrollmentStatus: models.EnrollmentPending,
		EnrollmentDate:   s.now().UTC().Format("2006-01-02"),
		Location:         payload.Location,
	}

	if err := s.users.Create(ctx, &user); err != nil {
		return dto.UserResponse{}, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("student signed up, enrollment pending")

	return dto.NewUserResponse(user), nil
}

func (s *authService) issueToken(user models.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(s.cfg.JWTTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
