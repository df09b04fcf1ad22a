package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/TMgolfkid359/Magnolia-App/internal/dto"
	"github.com/TMgolfkid359/Magnolia-App/internal/models"
	"github.com/TMgolfkid359/Magnolia-App/internal/repository"
)

// ErrUserNotFound indicates the requested user does not exist.
var ErrUserNotFound = errors.New("user not found")

// UserService exposes user administration use cases.
type UserService interface {
	List(ctx context.Context) ([]dto.UserResponse, error)
	Get(ctx context.Context, id string) (dto.UserResponse, error)
	Create(ctx context.Context, payload dto.UserCreateRequest) (dto.UserResponse, error)
	Update(ctx context.Context, id string, payload dto.UserUpdateRequest) (dto.UserResponse, error)
	Delete(ctx context.Context, id string) error
	ApproveEnrollment(ctx context.Context, id string) (dto.UserResponse, error)
	LinkFSP(ctx context.Context, id string, payload dto.LinkFSPRequest) (dto.UserResponse, error)
}

type userService struct {
	repo      repository.UserRepository
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewUserService builds a new user service.
func NewUserService(repo repository.UserRepository, validate *validator.Validate, logger zerolog.Logger) UserService {
	return &userService{
		repo:      repo,
		validator: validate,
		logger:    logger.With().Str("component", "user_service").Logger(),
		now:       time.Now,
	}
}

func (s *userService) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponseSlice(users), nil
}

func (s *userService) Get(ctx context.Context, id string) (dto.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}
	return dto.NewUserResponse(user), nil
}

func (s *userService) Create(ctx context.Context, payload dto.UserCreateRequest) (dto.UserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	if _, err := s.repo.GetByEmail(ctx, payload.Email); err == nil {
		return dto.UserResponse{}, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return dto.UserResponse{}, err
	}

	user := models.User{
		Name:     payload.Name,
		Email:    payload.Email,
		Role:     payload.Role,
		Location: payload.Location,
	}
	if user.Role == models.RoleStudent {
		user.Enrolled = true
		user.EnrollmentStatus = models.EnrollmentApproved
		user.EnrollmentDate = s.now().UTC().Format("2006-01-02")
	}

	if err := s.repo.Create(ctx, &user); err != nil {
		return dto.UserResponse{}, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("user created")

	return dto.NewUserResponse(user), nil
}

func (s *userService) Update(ctx context.Context, id string, payload dto.UserUpdateRequest) (dto.UserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	patch := repository.UserPatch{
		Name:                payload.Name,
		Email:               payload.Email,
		Role:                payload.Role,
		Location:            payload.Location,
		Enrolled:            payload.Enrolled,
		EnrolledCourses:     payload.EnrolledCourses,
		AssignedInstructors: payload.AssignedInstructors,
	}

	user, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user updated")

	return dto.NewUserResponse(user), nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

// ApproveEnrollment flips a pending student to approved and enrolled,
// stamping the enrollment date if it was never set.
func (s *userService) ApproveEnrollment(ctx context.Context, id string) (dto.UserResponse, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}

	approved := models.EnrollmentApproved
	enrolled := true
	patch := repository.UserPatch{EnrollmentStatus: &approved, Enrolled: &enrolled}
	if existing.EnrollmentDate == "" {
		date := s.now().UTC().Format("2006-01-02")
		patch.EnrollmentDate = &date
	}

	user, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return dto.UserResponse{}, err
	}

	s.logger.Info().Str("user_id", id).Msg("enrollment approved")

	return dto.NewUserResponse(user), nil
}

// LinkFSP attaches external scheduler IDs to the account.
func (s *userService) LinkFSP(ctx context.Context, id string, payload dto.LinkFSPRequest) (dto.UserResponse, error) {
	patch := repository.UserPatch{
		FSPStudentID:    payload.FSPStudentID,
		FSPInstructorID: payload.FSPInstructorID,
	}

	user, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("scheduler ids linked")

	return dto.NewUserResponse(user), nil
}
