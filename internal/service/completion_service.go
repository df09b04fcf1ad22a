package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/TMgolfkid359/Magnolia-App/internal/models"
	"github.com/TMgolfkid359/Magnolia-App/internal/observability"
	"github.com/TMgolfkid359/Magnolia-App/internal/repository"
)

// EventPublisher emits domain events to interested subscribers. Satisfied by
// *nats.Conn.
type EventPublisher interface {
	Publish(subject string, data []byte) error
}

// CourseCompletedEvent is published when a course flips to completed.
type CourseCompletedEvent struct {
	CourseID    string `json:"courseId"`
	UserID      string `json:"userId"`
	CompletedAt string `json:"completedAt"`
}

// CompletionService derives course completion from progress state. A course
// auto-completes once every material has been viewed and every linked exam is
// passed. The exam check consults two records that must agree: the progress
// tracker's completed-exam set and the attempt history itself, which guards
// against the two drifting apart.
type CompletionService interface {
	EvaluateCourse(ctx context.Context, courseID, userID string) (bool, error)
	EvaluateAll(ctx context.Context, userID string) error
}

type completionService struct {
	courses   repository.CourseRepository
	exams     repository.ExamRepository
	attempts  repository.AttemptRepository
	progress  ProgressService
	publisher EventPublisher
	subject   string
	logger    zerolog.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

// NewCompletionService builds a new completion service. The publisher may be
// nil when eventing is disabled.
func NewCompletionService(
	courses repository.CourseRepository,
	exams repository.ExamRepository,
	attempts repository.AttemptRepository,
	progress ProgressService,
	publisher EventPublisher,
	subject string,
	logger zerolog.Logger,
) CompletionService {
	return &completionService{
		courses:   courses,
		exams:     exams,
		attempts:  attempts,
		progress:  progress,
		publisher: publisher,
		subject:   subject,
		logger:    logger.With().Str("component", "completion_service").Logger(),
		tracer:    otel.Tracer("github.com/TMgolfkid359/Magnolia-App/internal/service/completion"),
		now:       time.Now,
	}
}

// EvaluateCourse re-checks one course for a user and persists the completion
// flag when earned. Returns whether the course flipped to completed during
// this evaluation. A course with no materials and no linked exams completes
// vacuously on its first evaluation.
func (s *completionService) EvaluateCourse(ctx context.Context, courseID, userID string) (bool, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, ErrCourseNotFound
		}
		return false, err
	}
	return s.evaluate(ctx, course, userID)
}

// EvaluateAll re-checks every course for the user, typically on course-list
// load.
func (s *completionService) EvaluateAll(ctx context.Context, userID string) error {
	courses, err := s.courses.List(ctx)
	if err != nil {
		return err
	}
	for _, course := range courses {
		if _, err := s.evaluate(ctx, course, userID); err != nil {
			return err
		}
	}
	return nil
}

func (s *completionService) evaluate(ctx context.Context, course models.Course, userID string) (bool, error) {
	if course.Completed {
		return false, nil
	}

	ctx, span := s.tracer.Start(ctx, "completion.evaluate", trace.WithAttributes(
		attribute.String("course.id", course.ID),
		attribute.String("user.id", userID),
	))
	defer span.End()

	linked, err := s.exams.ListByCourse(ctx, course.ID)
	if err != nil {
		return false, err
	}
	requiredExamIDs := make([]string, 0, len(linked))
	for _, exam := range linked {
		requiredExamIDs = append(requiredExamIDs, exam.ID)
	}

	if !s.progress.AllMaterialsViewed(ctx, course.ID, userID, len(course.Materials)) {
		return false, nil
	}
	if !s.progress.AllExamsCompleted(ctx, course.ID, userID, requiredExamIDs) {
		return false, nil
	}

	passed, err := s.allExamsPassedByAttempts(ctx, userID, requiredExamIDs)
	if err != nil {
		return false, err
	}
	if !passed {
		return false, nil
	}

	completed := true
	completionDate := s.now().UTC().Format("2006-01-02")
	patch := repository.CoursePatch{Completed: &completed, CompletionDate: &completionDate}
	if _, err := s.courses.Update(ctx, course.ID, patch); err != nil {
		return false, err
	}

	s.logger.Info().Str("course_id", course.ID).Str("user_id", userID).Str("completion_date", completionDate).Msg("course completed")
	observability.CourseCompletions().Inc()
	s.publish(course.ID, userID)

	return true, nil
}

// allExamsPassedByAttempts re-derives pass status from the attempt log: an
// exam counts as passed when any completed attempt by the user passed.
func (s *completionService) allExamsPassedByAttempts(ctx context.Context, userID string, examIDs []string) (bool, error) {
	for _, examID := range examIDs {
		attempts, err := s.attempts.ListByUser(ctx, userID, examID)
		if err != nil {
			return false, err
		}

		passed := false
		for _, attempt := range attempts {
			if attempt.Completed() && attempt.Passed != nil && *attempt.Passed {
				passed = true
				break
			}
		}
		if !passed {
			return false, nil
		}
	}
	return true, nil
}

func (s *completionService) publish(courseID, userID string) {
	if s.publisher == nil {
		return
	}

	payload, err := json.Marshal(CourseCompletedEvent{
		CourseID:    courseID,
		UserID:      userID,
		CompletedAt: s.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to encode completion event")
		return
	}

	if err := s.publisher.Publish(s.subject, payload); err != nil {
		s.logger.Warn().Err(err).Str("subject", s.subject).Msg("failed to publish completion event")
	}
}
