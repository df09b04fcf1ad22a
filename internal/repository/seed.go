package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/TMgolfkid359/Magnolia-App/internal/models"
	"github.com/TMgolfkid359/Magnolia-App/internal/store"
)

func defaultUsers() []models.User {
	return []models.User{
		{
			ID:             "1",
			Name:           "John Student",
			Email:          "student@example.com",
			Role:           models.RoleStudent,
			Enrolled:       true,
			EnrollmentDate: "2024-01-01",
		},
		{
			ID:             "2",
			Name:           "Jane Instructor",
			Email:          "instructor@example.com",
			Role:           models.RoleInstructor,
			Enrolled:       true,
			EnrollmentDate: "2024-01-01",
		},
		{
			ID:             "3",
			Name:           "Admin User",
			Email:          "admin@magnolia.com",
			Role:           models.RoleAdmin,
			Enrolled:       true,
			EnrollmentDate: "2024-01-01",
		},
	}
}

func defaultCourses() []models.Course {
	return []models.Course{
		{
			ID:            "indoc-1",
			Title:         "Indoctrination Course",
			Description:   "Complete this course before starting your flight training. This covers safety procedures, aircraft familiarization, and basic flight principles.",
			Type:          models.CourseIndoc,
			Required:      true,
			EstimatedTime: "2 hours",
			Materials: []models.Material{
				{Type: models.MaterialDocument, Title: "Safety Manual", URL: "/documents/safety-manual.pdf"},
				{Type: models.MaterialVideo, Title: "Aircraft Familiarization", URL: "/videos/aircraft-familiarization"},
				{Type: models.MaterialDocument, Title: "Pre-Flight Checklist", URL: "/documents/preflight-checklist.pdf"},
				{Type: models.MaterialQuiz, Title: "Indoc Knowledge Test"},
			},
		},
		{
			ID:            "ground-1",
			Title:         "Ground School Basics",
			Description:   "Fundamental ground school concepts including aerodynamics, weather, and navigation.",
			Type:          models.CourseGround,
			Required:      true,
			EstimatedTime: "4 hours",
			Materials: []models.Material{
				{Type: models.MaterialVideo, Title: "Aerodynamics Fundamentals", URL: "/videos/aerodynamics"},
				{Type: models.MaterialDocument, Title: "Weather Basics Guide", URL: "/documents/weather-basics.pdf"},
				{Type: models.MaterialQuiz, Title: "Ground School Quiz"},
			},
		},
		{
			ID:            "preflight-1",
			Title:         "Pre-Flight Inspection",
			Description:   "Learn how to perform a thorough pre-flight inspection of the aircraft.",
			Type:          models.CoursePreflight,
			Required:      true,
			EstimatedTime: "1 hour",
			Materials: []models.Material{
				{Type: models.MaterialVideo, Title: "Pre-Flight Walkthrough", URL: "/videos/preflight-walkthrough"},
				{Type: models.MaterialDocument, Title: "Inspection Checklist", URL: "/documents/inspection-checklist.pdf"},
			},
		},
	}
}

func defaultVideos() []models.Video {
	return []models.Video{
		{ID: "1", Title: "Aircraft Systems Overview", Description: "Comprehensive overview of aircraft systems including engine, electrical, and avionics.", Category: models.VideoSystems, Duration: "45:30", Date: "2024-01-10", VideoURL: "https://www.youtube.com/embed/dQw4w9WgXcQ", Instructor: "John Instructor"},
		{ID: "2", Title: "Pre-Flight Inspection Walkthrough", Description: "Step-by-step guide to performing a thorough pre-flight inspection.", Category: models.VideoFlight, Duration: "32:15", Date: "2024-01-08", VideoURL: "https://www.youtube.com/embed/dQw4w9WgXcQ", Instructor: "Jane Instructor"},
		{ID: "3", Title: "Weather Patterns and Safety", Description: "Understanding weather patterns and how they affect flight safety.", Category: models.VideoSafety, Duration: "55:20", Date: "2024-01-05", VideoURL: "https://www.youtube.com/embed/dQw4w9WgXcQ", Instructor: "John Instructor"},
		{ID: "4", Title: "Aerodynamics Fundamentals", Description: "Basic principles of aerodynamics and how they apply to flight.", Category: models.VideoGround, Duration: "40:10", Date: "2024-01-03", VideoURL: "https://www.youtube.com/embed/dQw4w9WgXcQ", Instructor: "Jane Instructor"},
		{ID: "5", Title: "Radio Communications", Description: "Proper radio communication procedures and phraseology.", Category: models.VideoGround, Duration: "28:45", Date: "2024-01-01", VideoURL: "https://www.youtube.com/embed/dQw4w9WgXcQ", Instructor: "John Instructor"},
		{ID: "6", Title: "Emergency Procedures", Description: "Critical emergency procedures every pilot must know.", Category: models.VideoSafety, Duration: "50:00", Date: "2023-12-28", VideoURL: "https://www.youtube.com/embed/dQw4w9WgXcQ", Instructor: "Jane Instructor"},
	}
}

// EnsureSeeded writes the default datasets for collections that have never
// been saved. It runs once at startup; existing data is never touched.
func EnsureSeeded(ctx context.Context, s store.Store, logger zerolog.Logger) error {
	seeds := []struct {
		key   string
		value interface{}
	}{
		{KeyUsers, defaultUsers()},
		{KeyCourses, defaultCourses()},
		{KeyVideos, defaultVideos()},
	}

	for _, seed := range seeds {
		var probe []map[string]interface{}
		err := s.Load(ctx, seed.key, &probe)
		if err == nil {
			continue
		}
		if !errors.Is(err, store.ErrKeyNotFound) {
			return fmt.Errorf("failed to probe collection %q: %w", seed.key, err)
		}

		if err := s.Save(ctx, seed.key, seed.value); err != nil {
			return fmt.Errorf("failed to seed collection %q: %w", seed.key, err)
		}
		logger.Info().Str("collection", seed.key).Msg("seeded default dataset")
	}

	return nil
}
