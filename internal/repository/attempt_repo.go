package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/TMgolfkid359/Magnolia-App/internal/models"
	"github.com/TMgolfkid359/Magnolia-App/internal/store"
)

// AttemptRepository persists the exam attempt log. The log is append-only:
// prior completed attempts are never removed or rewritten, only an open
// attempt may be finalized in place.
type AttemptRepository interface {
	ListByUser(ctx context.Context, userID, examID string) ([]models.ExamAttempt, error)
	GetByID(ctx context.Context, id string) (models.ExamAttempt, error)
	Append(ctx context.Context, attempt *models.ExamAttempt) error
	Finalize(ctx context.Context, attempt models.ExamAttempt) error
}

type attemptRepository struct {
	store store.Store
}

// NewAttemptRepository builds a store-backed attempt repository.
func NewAttemptRepository(s store.Store) AttemptRepository {
	return &attemptRepository{store: s}
}

func (r *attemptRepository) all(ctx context.Context) ([]models.ExamAttempt, error) {
	attempts := []models.ExamAttempt{}
	if err := loadCollection(ctx, r.store, KeyAttempts, &attempts); err != nil {
		return nil, err
	}
	return attempts, nil
}

// ListByUser returns the user's attempts, optionally narrowed to one exam.
func (r *attemptRepository) ListByUser(ctx context.Context, userID, examID string) ([]models.ExamAttempt, error) {
	attempts, err := r.all(ctx)
	if err != nil {
		return nil, err
	}

	filtered := []models.ExamAttempt{}
	for _, attempt := range attempts {
		if attempt.UserID != userID {
			continue
		}
		if examID != "" && attempt.ExamID != examID {
			continue
		}
		filtered = append(filtered, attempt)
	}
	return filtered, nil
}

func (r *attemptRepository) GetByID(ctx context.Context, id string) (models.ExamAttempt, error) {
	attempts, err := r.all(ctx)
	if err != nil {
		return models.ExamAttempt{}, err
	}
	for _, attempt := range attempts {
		if attempt.ID == id {
			return attempt, nil
		}
	}
	return models.ExamAttempt{}, ErrNotFound
}

func (r *attemptRepository) Append(ctx context.Context, attempt *models.ExamAttempt) error {
	attempts, err := r.all(ctx)
	if err != nil {
		return err
	}

	if attempt.ID == "" {
		attempt.ID = uuid.NewString()
	}

	attempts = append(attempts, *attempt)
	return r.store.Save(ctx, KeyAttempts, attempts)
}

// Finalize replaces the stored attempt with the completed version.
func (r *attemptRepository) Finalize(ctx context.Context, attempt models.ExamAttempt) error {
	attempts, err := r.all(ctx)
	if err != nil {
		return err
	}

	for i := range attempts {
		if attempts[i].ID == attempt.ID {
			attempts[i] = attempt
			return r.store.Save(ctx, KeyAttempts, attempts)
		}
	}
	return ErrNotFound
}
