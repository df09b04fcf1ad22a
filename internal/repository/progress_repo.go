package repository

import (
	"context"

	"github.com/TMgolfkid359/Magnolia-App/internal/models"
	"github.com/TMgolfkid359/Magnolia-App/internal/store"
)

// ProgressRepository persists per-(course,user) progress records.
type ProgressRepository interface {
	All(ctx context.Context) ([]models.CourseProgress, error)
	ForUser(ctx context.Context, userID string) ([]models.CourseProgress, error)
	ForCourse(ctx context.Context, courseID string) ([]models.CourseProgress, error)
	Get(ctx context.Context, courseID, userID string) (models.CourseProgress, error)
	Save(ctx context.Context, progress models.CourseProgress) error
}

type progressRepository struct {
	store store.Store
}

// NewProgressRepository builds a store-backed progress repository.
func NewProgressRepository(s store.Store) ProgressRepository {
	return &progressRepository{store: s}
}

func (r *progressRepository) All(ctx context.Context) ([]models.CourseProgress, error) {
	records := []models.CourseProgress{}
	if err := loadCollection(ctx, r.store, KeyProgress, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *progressRepository) ForUser(ctx context.Context, userID string) ([]models.CourseProgress, error) {
	records, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	filtered := []models.CourseProgress{}
	for _, record := range records {
		if record.UserID == userID {
			filtered = append(filtered, record)
		}
	}
	return filtered, nil
}

func (r *progressRepository) ForCourse(ctx context.Context, courseID string) ([]models.CourseProgress, error) {
	records, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	filtered := []models.CourseProgress{}
	for _, record := range records {
		if record.CourseID == courseID {
			filtered = append(filtered, record)
		}
	}
	return filtered, nil
}

func (r *progressRepository) Get(ctx context.Context, courseID, userID string) (models.CourseProgress, error) {
	records, err := r.All(ctx)
	if err != nil {
		return models.CourseProgress{}, err
	}
	for _, record := range records {
		if record.CourseID == courseID && record.UserID == userID {
			return record, nil
		}
	}
	return models.CourseProgress{}, ErrNotFound
}

// Save upserts the record keyed by (courseId, userId).
func (r *progressRepository) Save(ctx context.Context, progress models.CourseProgress) error {
	records, err := r.All(ctx)
	if err != nil {
		return err
	}

	for i := range records {
		if records[i].CourseID == progress.CourseID && records[i].UserID == progress.UserID {
			records[i] = progress
			return r.store.Save(ctx, KeyProgress, records)
		}
	}

	records = append(records, progress)
	return r.store.Save(ctx, KeyProgress, records)
}
