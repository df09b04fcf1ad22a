package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/TMgolfkid359/Magnolia-App/internal/models"
	"github.com/TMgolfkid359/Magnolia-App/internal/store"
)

// UserPatch is an explicit partial update for a user. Nil fields are left
// untouched by the merge.
type UserPatch struct {
	Name                *string
	Email               *string
	Role                *string
	Enrolled            *bool
	EnrollmentStatus    *string
	EnrollmentDate      *string
	Location            *string
	EnrolledCourses     *[]string
	AssignedInstructors *[]string
	FSPStudentID        *string
	FSPInstructorID     *string
	LastLogin           *string
}

// UserRepository defines persistence operations for portal users.
type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, id string, patch UserPatch) (models.User, error)
	Delete(ctx context.Context, id string) error
}

type userRepository struct {
	store store.Store
}

// NewUserRepository builds a store-backed user repository.
func NewUserRepository(s store.Store) UserRepository {
	return &userRepository{store: s}
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := loadCollection(ctx, r.store, KeyUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (models.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return models.User{}, err
	}
	for _, user := range users {
		if user.ID == id {
			return user, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return models.User{}, err
	}
	normalized := strings.ToLower(strings.TrimSpace(email))
	for _, user := range users {
		if strings.ToLower(user.Email) == normalized {
			return user, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	users, err := r.List(ctx)
	if err != nil {
		return err
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	users = append(users, *user)
	return r.store.Save(ctx, KeyUsers, users)
}

func (r *userRepository) Update(ctx context.Context, id string, patch UserPatch) (models.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return models.User{}, err
	}

	for i := range users {
		if users[i].ID != id {
			continue
		}
		applyUserPatch(&users[i], patch)
		if err := r.store.Save(ctx, KeyUsers, users); err != nil {
			return models.User{}, err
		}
		return users[i], nil
	}

	return models.User{}, ErrNotFound
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	users, err := r.List(ctx)
	if err != nil {
		return err
	}

	remaining := users[:0]
	for _, user := range users {
		if user.ID != id {
			remaining = append(remaining, user)
		}
	}
	if len(remaining) == len(users) {
		return ErrNotFound
	}

	return r.store.Save(ctx, KeyUsers, remaining)
}

func applyUserPatch(user *models.User, patch UserPatch) {
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.Role != nil {
		user.Role = *patch.Role
	}
	if patch.Enrolled != nil {
		user.Enrolled = *patch.Enrolled
	}
	if patch.EnrollmentStatus != nil {
		user.EnrollmentStatus = *patch.EnrollmentStatus
	}
	if patch.EnrollmentDate != nil {
		user.EnrollmentDate = *patch.EnrollmentDate
	}
	if patch.Location != nil {
		user.Location = *patch.Location
	}
	if patch.EnrolledCourses != nil {
		user.EnrolledCourses = *patch.EnrolledCourses
	}
	if patch.AssignedInstructors != nil {
		user.AssignedInstructors = *patch.AssignedInstructors
	}
	if patch.FSPStudentID != nil {
		user.FSPStudentID = *patch.FSPStudentID
	}
	if patch.FSPInstructorID != nil {
		user.FSPInstructorID = *patch.FSPInstructorID
	}
	if patch.LastLogin != nil {
		user.LastLogin = *patch.LastLogin
	}
}
