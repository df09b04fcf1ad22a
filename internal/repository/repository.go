package repository

import (
	"context"
	"errors"

	"github.com/TMgolfkid359/Magnolia-App/internal/store"
)

// Collection keys. The key names double as the storage schema version: a
// fresh store has none of them and gets seeded on startup.
const (
	KeyUsers    = "magnolia_users"
	KeyCourses  = "magnolia_courses"
	KeyExams    = "magnolia_exams"
	KeyAttempts = "magnolia_exam_attempts"
	KeyProgress = "magnolia_course_progress"
	KeyVideos   = "magnolia_videos"
)

// ErrNotFound indicates the requested entity does not exist in its collection.
var ErrNotFound = errors.New("entity not found")

// loadCollection reads a whole collection, treating a missing key as empty.
func loadCollection(ctx context.Context, s store.Store, key string, dest interface{}) error {
	if err := s.Load(ctx, key, dest); err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return nil
		}
		return err
	}
	return nil
}
