package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/TMgolfkid359/Magnolia-App/internal/models"
	"github.com/TMgolfkid359/Magnolia-App/internal/store"
)

// CoursePatch is an explicit partial update for a course.
type CoursePatch struct {
	Title          *string
	Description    *string
	Type           *string
	Required       *bool
	EstimatedTime  *string
	Completed      *bool
	CompletionDate *string
	Materials      *[]models.Material
}

// CourseRepository defines persistence operations for courses.
type CourseRepository interface {
	List(ctx context.Context) ([]models.Course, error)
	GetByID(ctx context.Context, id string) (models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, id string, patch CoursePatch) (models.Course, error)
	Delete(ctx context.Context, id string) error
}

type courseRepository struct {
	store store.Store
}

// NewCourseRepository builds a store-backed course repository.
func NewCourseRepository(s store.Store) CourseRepository {
	return &courseRepository{store: s}
}

func (r *courseRepository) List(ctx context.Context) ([]models.Course, error) {
	courses := []models.Course{}
	if err := loadCollection(ctx, r.store, KeyCourses, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) GetByID(ctx context.Context, id string) (models.Course, error) {
	courses, err := r.List(ctx)
	if err != nil {
		return models.Course{}, err
	}
	for _, course := range courses {
		if course.ID == id {
			return course, nil
		}
	}
	return models.Course{}, ErrNotFound
}

func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	courses, err := r.List(ctx)
	if err != nil {
		return err
	}

	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	course.Materials = normalizeMaterials(course.Materials)

	courses = append(courses, *course)
	return r.store.Save(ctx, KeyCourses, courses)
}

func (r *courseRepository) Update(ctx context.Context, id string, patch CoursePatch) (models.Course, error) {
	courses, err := r.List(ctx)
	if err != nil {
		return models.Course{}, err
	}

	for i := range courses {
		if courses[i].ID != id {
			continue
		}
		applyCoursePatch(&courses[i], patch)
		if err := r.store.Save(ctx, KeyCourses, courses); err != nil {
			return models.Course{}, err
		}
		return courses[i], nil
	}

	return models.Course{}, ErrNotFound
}

func (r *courseRepository) Delete(ctx context.Context, id string) error {
	courses, err := r.List(ctx)
	if err != nil {
		return err
	}

	remaining := courses[:0]
	for _, course := range courses {
		if course.ID != id {
			remaining = append(remaining, course)
		}
	}
	if len(remaining) == len(courses) {
		return ErrNotFound
	}

	return r.store.Save(ctx, KeyCourses, remaining)
}

func applyCoursePatch(course *models.Course, patch CoursePatch) {
	if patch.Title != nil {
		course.Title = *patch.Title
	}
	if patch.Description != nil {
		course.Description = *patch.Description
	}
	if patch.Type != nil {
		course.Type = *patch.Type
	}
	if patch.Required != nil {
		course.Required = *patch.Required
	}
	if patch.EstimatedTime != nil {
		course.EstimatedTime = *patch.EstimatedTime
	}
	if patch.Completed != nil {
		course.Completed = *patch.Completed
	}
	if patch.CompletionDate != nil {
		course.CompletionDate = *patch.CompletionDate
	}
	if patch.Materials != nil {
		course.Materials = normalizeMaterials(*patch.Materials)
	}
}

// normalizeMaterials enforces the content-reference invariants at the merge
// boundary: quiz materials carry only an exam ID, and a document holds a
// file blob XOR a URL (the blob wins when both are present after an edit).
func normalizeMaterials(materials []models.Material) []models.Material {
	normalized := make([]models.Material, len(materials))
	for i, material := range materials {
		switch material.Type {
		case models.MaterialQuiz:
			material.URL = ""
			material.FileData = ""
			material.FileName = ""
			material.FileType = ""
		default:
			material.ExamID = ""
			if material.FileData != "" {
				material.URL = ""
			} else {
				material.FileName = ""
				material.FileType = ""
			}
		}
		normalized[i] = material
	}
	return normalized
}
