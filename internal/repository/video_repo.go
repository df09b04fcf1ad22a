package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/TMgolfkid359/Magnolia-App/internal/models"
	"github.com/TMgolfkid359/Magnolia-App/internal/store"
)

// VideoPatch is an explicit partial update for a video lesson.
type VideoPatch struct {
	Title       *string
	Description *string
	Category    *string
	Duration    *string
	Date        *string
	Thumbnail   *string
	VideoURL    *string
	Instructor  *string
}

// VideoRepository defines persistence operations for video lessons.
type VideoRepository interface {
	List(ctx context.Context) ([]models.Video, error)
	GetByID(ctx context.Context, id string) (models.Video, error)
	Create(ctx context.Context, video *models.Video) error
	Update(ctx context.Context, id string, patch VideoPatch) (models.Video, error)
	Delete(ctx context.Context, id string) error
}

type videoRepository struct {
	store store.Store
}

// NewVideoRepository builds a store-backed video repository.
func NewVideoRepository(s store.Store) VideoRepository {
	return &videoRepository{store: s}
}

func (r *videoRepository) List(ctx context.Context) ([]models.Video, error) {
	videos := []models.Video{}
	if err := loadCollection(ctx, r.store, KeyVideos, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *videoRepository) GetByID(ctx context.Context, id string) (models.Video, error) {
	videos, err := r.List(ctx)
	if err != nil {
		return models.Video{}, err
	}
	for _, video := range videos {
		if video.ID == id {
			return video, nil
		}
	}
	return models.Video{}, ErrNotFound
}

func (r *videoRepository) Create(ctx context.Context, video *models.Video) error {
	videos, err := r.List(ctx)
	if err != nil {
		return err
	}

	if video.ID == "" {
		video.ID = uuid.NewString()
	}

	videos = append(videos, *video)
	return r.store.Save(ctx, KeyVideos, videos)
}

func (r *videoRepository) Update(ctx context.Context, id string, patch VideoPatch) (models.Video, error) {
	videos, err := r.List(ctx)
	if err != nil {
		return models.Video{}, err
	}

	for i := range videos {
		if videos[i].ID != id {
			continue
		}
		applyVideoPatch(&videos[i], patch)
		if err := r.store.Save(ctx, KeyVideos, videos); err != nil {
			return models.Video{}, err
		}
		return videos[i], nil
	}

	return models.Video{}, ErrNotFound
}

func (r *videoRepository) Delete(ctx context.Context, id string) error {
	videos, err := r.List(ctx)
	if err != nil {
		return err
	}

	remaining := videos[:0]
	for _, video := range videos {
		if video.ID != id {
			remaining = append(remaining, video)
		}
	}
	if len(remaining) == len(videos) {
		return ErrNotFound
	}

	return r.store.Save(ctx, KeyVideos, remaining)
}

func applyVideoPatch(video *models.Video, patch VideoPatch) {
	if patch.Title != nil {
		video.Title = *patch.Title
	}
	if patch.Description != nil {
		video.Description = *patch.Description
	}
	if patch.Category != nil {
		video.Category = *patch.Category
	}
	if patch.Duration != nil {
		video.Duration = *patch.Duration
	}
	if patch.Date != nil {
		video.Date = *patch.Date
	}
	if patch.Thumbnail != nil {
		video.Thumbnail = *patch.Thumbnail
	}
	if patch.VideoURL != nil {
		video.VideoURL = *patch.VideoURL
	}
	if patch.Instructor != nil {
		video.Instructor = *patch.Instructor
	}
}
