package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/TMgolfkid359/Magnolia-App/internal/dto"
	"github.com/TMgolfkid359/Magnolia-App/internal/models"
	"github.com/TMgolfkid359/Magnolia-App/internal/repository"
)

// Course errors.
var (
	ErrCourseNotFound  = errors.New("course not found")
	ErrInvalidMaterial = errors.New("invalid material")
)

// CourseService exposes course management use cases.
type CourseService interface {
	List(ctx context.Context) ([]dto.CourseResponse, error)
	ListForUser(ctx context.Context, userID string) ([]dto.CourseResponse, error)
	Get(ctx context.Context, id string) (dto.CourseResponse, error)
	Create(ctx context.Context, payload dto.CourseCreateRequest) (dto.CourseResponse, error)
	Update(ctx context.Context, id string, payload dto.CourseUpdateRequest) (dto.CourseResponse, error)
	Delete(ctx context.Context, id string) error
}

type courseService struct {
	repo       repository.CourseRepository
	completion CompletionService
	validator  *validator.Validate
	sanitizer  *bluemonday.Policy
	logger     zerolog.Logger
}

// NewCourseService builds a new course service.
func NewCourseService(repo repository.CourseRepository, completion CompletionService, validate *validator.Validate, logger zerolog.Logger) CourseService {
	return &courseService{
		repo:       repo,
		completion: completion,
		validator:  validate,
		sanitizer:  bluemonday.UGCPolicy(),
		logger:     logger.With().Str("component", "course_service").Logger(),
	}
}

func (s *courseService) List(ctx context.Context) ([]dto.CourseResponse, error) {
	courses, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewCourseResponseSlice(courses), nil
}

// ListForUser re-evaluates completion for the user before listing, so a
// course earned since the last write shows as completed on load.
func (s *courseService) ListForUser(ctx context.Context, userID string) ([]dto.CourseResponse, error) {
	if err := s.completion.EvaluateAll(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("completion evaluation failed on course list")
	}
	return s.List(ctx)
}

func (s *courseService) Get(ctx context.Context, id string) (dto.CourseResponse, error) {
	course, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.CourseResponse{}, ErrCourseNotFound
		}
		return dto.CourseResponse{}, err
	}
	return dto.NewCourseResponse(course), nil
}

func (s *courseService) Create(ctx context.Context, payload dto.CourseCreateRequest) (dto.CourseResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CourseResponse{}, err
	}
	if err := validateMaterials(payload.Materials); err != nil {
		return dto.CourseResponse{}, err
	}

	course := models.Course{
		Title:         payload.Title,
		Description:   s.sanitizer.Sanitize(payload.Description),
		Type:          payload.Type,
		Required:      payload.Required,
		EstimatedTime: payload.EstimatedTime,
		Materials:     dto.ToMaterials(payload.Materials),
	}

	if err := s.repo.Create(ctx, &course); err != nil {
		return dto.CourseResponse{}, err
	}

	s.logger.Info().Str("course_id", course.ID).Str("type", course.Type).Msg("course created")

	return dto.NewCourseResponse(course), nil
}

func (s *courseService) Update(ctx context.Context, id string, payload dto.CourseUpdateRequest) (dto.CourseResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CourseResponse{}, err
	}

	patch := repository.CoursePatch{
		Title:         payload.Title,
		Type:          payload.Type,
		Required:      payload.Required,
		EstimatedTime: payload.EstimatedTime,
	}
	if payload.Description != nil {
		sanitized := s.sanitizer.Sanitize(*payload.Description)
		patch.Description = &sanitized
	}
	if payload.Materials != nil {
		if err := validateMaterials(*payload.Materials); err != nil {
			return dto.CourseResponse{}, err
		}
		materials := dto.ToMaterials(*payload.Materials)
		patch.Materials = &materials
	}

	course, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.CourseResponse{}, ErrCourseNotFound
		}
		return dto.CourseResponse{}, err
	}

	s.logger.Info().Str("course_id", course.ID).Msg("course updated")

	return dto.NewCourseResponse(course), nil
}

func (s *courseService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCourseNotFound
		}
		return err
	}

	s.logger.Info().Str("course_id", id).Msg("course deleted")
	return nil
}

// validateMaterials checks the content-reference rules: a quiz names an exam,
// other material types carry a URL or an embedded file, and embedded blobs
// must decode and match their declared content type.
func validateMaterials(materials []dto.MaterialPayload) error {
	for i, material := range materials {
		switch material.Type {
		case models.MaterialQuiz:
			if material.ExamID == "" {
				return fmt.Errorf("%w: material %d: quiz requires an examId", ErrInvalidMaterial, i)
			}
		default:
			if material.URL == "" && material.FileData == "" {
				return fmt.Errorf("%w: material %d: requires a url or file data", ErrInvalidMaterial, i)
			}
			if material.FileData != "" {
				if err := validateFileBlob(material.FileData, material.FileType); err != nil {
					return fmt.Errorf("%w: material %d: %v", ErrInvalidMaterial, i, err)
				}
			}
		}
	}
	return nil
}

func validateFileBlob(fileData, declaredType string) error {
	encoded := fileData
	if idx := strings.IndexByte(encoded, ','); idx >= 0 && strings.HasPrefix(encoded, "data:") {
		encoded = encoded[idx+1:]
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return fmt.Errorf("file data is not valid base64: %v", err)
	}

	if declaredType != "" {
		detected := mimetype.Detect(decoded)
		if !detected.Is(declaredType) {
			return fmt.Errorf("file content is %s, declared %s", detected.String(), declaredType)
		}
	}
	return nil
}
