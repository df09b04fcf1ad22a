package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/TMgolfkid359/Magnolia-App/internal/dto"
	"github.com/TMgolfkid359/Magnolia-App/internal/models"
	"github.com/TMgolfkid359/Magnolia-App/internal/repository"
)

// ErrVideoNotFound indicates the requested video does not exist.
var ErrVideoNotFound = errors.New("video not found")

// VideoService exposes the training video library.
type VideoService interface {
	List(ctx context.Context) ([]dto.VideoResponse, error)
	Get(ctx context.Context, id string) (dto.VideoResponse, error)
	Create(ctx context.Context, payload dto.VideoCreateRequest) (dto.VideoResponse, error)
	Update(ctx context.Context, id string, payload dto.VideoUpdateRequest) (dto.VideoResponse, error)
	Delete(ctx context.Context, id string) error
}

type videoService struct {
	repo      repository.VideoRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewVideoService builds a new video service.
func NewVideoService(repo repository.VideoRepository, validate *validator.Validate, logger zerolog.Logger) VideoService {
	return &videoService{
		repo:      repo,
		validator: validate,
		logger:    logger.With().Str("component", "video_service").Logger(),
	}
}

func (s *videoService) List(ctx context.Context) ([]dto.VideoResponse, error) {
	videos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewVideoResponseSlice(videos), nil
}

func (s *videoService) Get(ctx context.Context, id string) (dto.VideoResponse, error) {
	video, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.VideoResponse{}, ErrVideoNotFound
		}
		return dto.VideoResponse{}, err
	}
	return dto.NewVideoResponse(video), nil
}

func (s *videoService) Create(ctx context.Context, payload dto.VideoCreateRequest) (dto.VideoResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.VideoResponse{}, err
	}

	video := models.Video{
		Title:       payload.Title,
		Description: payload.Description,
		Category:    payload.Category,
		Duration:    payload.Duration,
		Date:        payload.Date,
		Thumbnail:   payload.Thumbnail,
		VideoURL:    payload.VideoURL,
		Instructor:  payload.Instructor,
	}

	if err := s.repo.Create(ctx, &video); err != nil {
		return dto.VideoResponse{}, err
	}

	s.logger.Info().Str("video_id", video.ID).Str("category", video.Category).Msg("video created")

	return dto.NewVideoResponse(video), nil
}

func (s *videoService) Update(ctx context.Context, id string, payload dto.VideoUpdateRequest) (dto.VideoResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.VideoResponse{}, err
	}

	patch := repository.VideoPatch{
		Title:       payload.Title,
		Description: payload.Description,
		Category:    payload.Category,
		Duration:    payload.Duration,
		Date:        payload.Date,
		Thumbnail:   payload.Thumbnail,
		VideoURL:    payload.VideoURL,
		Instructor:  payload.Instructor,
	}

	video, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.VideoResponse{}, ErrVideoNotFound
		}
		return dto.VideoResponse{}, err
	}

	s.logger.Info().Str("video_id", video.ID).Msg("video updated")

	return dto.NewVideoResponse(video), nil
}

func (s *videoService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrVideoNotFound
		}
		return err
	}

	s.logger.Info().Str("video_id", id).Msg("video deleted")
	return nil
}
