package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/TMgolfkid359/Magnolia-App/internal/models"
	"github.com/TMgolfkid359/Magnolia-App/internal/store"
)

// ExamPatch is an explicit partial update for an exam.
type ExamPatch struct {
	Title           *string
	Description     *string
	CourseID        *string
	Questions       *[]models.Question
	PassingScore    *int
	TimeLimit       *int
	AttemptsAllowed *int
}

// ExamRepository defines persistence operations for exams.
type ExamRepository interface {
	List(ctx context.Context) ([]models.Exam, error)
	ListByCourse(ctx context.Context, courseID string) ([]models.Exam, error)
	GetByID(ctx context.Context, id string) (models.Exam, error)
	Create(ctx context.Context, exam *models.Exam) error
	Update(ctx context.Context, id string, patch ExamPatch) (models.Exam, error)
	Delete(ctx context.Context, id string) error
}

type examRepository struct {
	store store.Store
	now   func() time.Time
}

// NewExamRepository builds a store-backed exam repository.
func NewExamRepository(s store.Store) ExamRepository {
	return &examRepository{store: s, now: time.Now}
}

func (r *examRepository) List(ctx context.Context) ([]models.Exam, error) {
	exams := []models.Exam{}
	if err := loadCollection(ctx, r.store, KeyExams, &exams); err != nil {
		return nil, err
	}
	return exams, nil
}

func (r *examRepository) ListByCourse(ctx context.Context, courseID string) ([]models.Exam, error) {
	exams, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	linked := []models.Exam{}
	for _, exam := range exams {
		if exam.CourseID == courseID {
			linked = append(linked, exam)
		}
	}
	return linked, nil
}

func (r *examRepository) GetByID(ctx context.Context, id string) (models.Exam, error) {
	exams, err := r.List(ctx)
	if err != nil {
		return models.Exam{}, err
	}
	for _, exam := range exams {
		if exam.ID == id {
			return exam, nil
		}
	}
	return models.Exam{}, ErrNotFound
}

func (r *examRepository) Create(ctx context.Context, exam *models.Exam) error {
	exams, err := r.List(ctx)
	if err != nil {
		return err
	}

	if exam.ID == "" {
		exam.ID = uuid.NewString()
	}
	now := r.now().UTC()
	exam.CreatedAt = now
	exam.UpdatedAt = now

	for i := range exam.Questions {
		if exam.Questions[i].ID == "" {
			exam.Questions[i].ID = uuid.NewString()
		}
	}

	exams = append(exams, *exam)
	return r.store.Save(ctx, KeyExams, exams)
}

func (r *examRepository) Update(ctx context.Context, id string, patch ExamPatch) (models.Exam, error) {
	exams, err := r.List(ctx)
	if err != nil {
		return models.Exam{}, err
	}

	for i := range exams {
		if exams[i].ID != id {
			continue
		}
		applyExamPatch(&exams[i], patch)
		exams[i].UpdatedAt = r.now().UTC()
		if err := r.store.Save(ctx, KeyExams, exams); err != nil {
			return models.Exam{}, err
		}
		return exams[i], nil
	}

	return models.Exam{}, ErrNotFound
}

func (r *examRepository) Delete(ctx context.Context, id string) error {
	exams, err := r.List(ctx)
	if err != nil {
		return err
	}

	remaining := exams[:0]
	for _, exam := range exams {
		if exam.ID != id {
			remaining = append(remaining, exam)
		}
	}
	if len(remaining) == len(exams) {
		return ErrNotFound
	}

	return r.store.Save(ctx, KeyExams, remaining)
}

func applyExamPatch(exam *models.Exam, patch ExamPatch) {
	if patch.Title != nil {
		exam.Title = *patch.Title
	}
	if patch.Description != nil {
		exam.Description = *patch.Description
	}
	if patch.CourseID != nil {
		exam.CourseID = *patch.CourseID
	}
	if patch.Questions != nil {
		questions := *patch.Questions
		for i := range questions {
			if questions[i].ID == "" {
				questions[i].ID = uuid.NewString()
			}
		}
		exam.Questions = questions
	}
	if patch.PassingScore != nil {
		exam.PassingScore = *patch.PassingScore
	}
	if patch.TimeLimit != nil {
		exam.TimeLimit = *patch.TimeLimit
	}
	if patch.AttemptsAllowed != nil {
		exam.AttemptsAllowed = *patch.AttemptsAllowed
	}
}
