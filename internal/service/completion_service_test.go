package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/TMgolfkid359/Magnolia-App/internal/models"
	"github.com/TMgolfkid359/Magnolia-App/internal/repository"
	"github.com/TMgolfkid359/Magnolia-App/internal/store"
)

type capturingPublisher struct {
	subjects []string
	payloads [][]byte
}

func (p *capturingPublisher) Publish(subject string, data []byte) error {
	p.subjects = append(p.subjects, subject)
	p.payloads = append(p.payloads, data)
	return nil
}

type completionFixture struct {
	courses   repository.CourseRepository
	exams     repository.ExamRepository
	attempts  repository.AttemptRepository
	progress  ProgressService
	publisher *capturingPublisher
	svc       *completionService
}

func newCompletionFixture(t *testing.T) completionFixture {
	t.Helper()

	mem := store.NewMemory()
	courses := repository.NewCourseRepository(mem)
	exams := repository.NewExamRepository(mem)
	attempts := repository.NewAttemptRepository(mem)
	progress := NewProgressService(repository.NewProgressRepository(mem), zerolog.Nop())
	publisher := &capturingPublisher{}

	svc := NewCompletionService(courses, exams, attempts, progress, publisher, "course.completed", zerolog.Nop()).(*completionService)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 14, 15, 30, 0, 0, time.UTC)
	}

	return completionFixture{
		courses:   courses,
		exams:     exams,
		attempts:  attempts,
		progress:  progress,
		publisher: publisher,
		svc:       svc,
	}
}

func TestEmptyCourseCompletesVacuously(t *testing.T) {
	ctx := context.Background()
	f := newCompletionFixture(t)

	course := models.Course{Title: "Welcome", Type: models.CourseIndoc}
	require.NoError(t, f.courses.Create(ctx, &course))

	flipped, err := f.svc.EvaluateCourse(ctx, course.ID, "user-1")
	require.NoError(t, err)
	require.True(t, flipped)

	stored, err := f.courses.GetByID(ctx, course.ID)
	require.NoError(t, err)
	require.True(t, stored.Completed)
	require.Equal(t, "2026-03-14", stored.CompletionDate)
}

func TestCompletionRequiresBothExamSources(t *testing.T) {
	ctx := context.Background()
	f := newCompletionFixture(t)

	course := models.Course{Title: "Regulations", Type: models.CourseGround}
	require.NoError(t, f.courses.Create(ctx, &course))

	exam := models.Exam{Title: "Regs Quiz", CourseID: course.ID, PassingScore: 80,
		Questions: []models.Question{{Question: "q", Type: models.QuestionTrueFalse, CorrectAnswer: models.SingleAnswer("True"), Points: 1}}}
	require.NoError(t, f.exams.Create(ctx, &exam))

	// Tracker says completed, but there is no passing attempt on record.
	f.progress.MarkExamCompleted(ctx, course.ID, "user-1", exam.ID)

	flipped, err := f.svc.EvaluateCourse(ctx, course.ID, "user-1")
	require.NoError(t, err)
	require.False(t, flipped)

	// A failed attempt still does not satisfy the history check.
	failed := false
	failedAt := time.Date(2026, 3, 13, 10, 0, 0, 0, time.UTC)
	attempt := models.ExamAttempt{ExamID: exam.ID, UserID: "user-1", Passed: &failed, StartedAt: failedAt, CompletedAt: &failedAt}
	require.NoError(t, f.attempts.Append(ctx, &attempt))

	flipped, err = f.svc.EvaluateCourse(ctx, course.ID, "user-1")
	require.NoError(t, err)
	require.False(t, flipped)

	passed := true
	passedAt := failedAt.Add(time.Hour)
	winning := models.ExamAttempt{ExamID: exam.ID, UserID: "user-1", Passed: &passed, StartedAt: passedAt, CompletedAt: &passedAt}
	require.NoError(t, f.attempts.Append(ctx, &winning))

	flipped, err = f.svc.EvaluateCourse(ctx, course.ID, "user-1")
	require.NoError(t, err)
	require.True(t, flipped)

	require.Len(t, f.publisher.subjects, 1)
	require.Equal(t, "course.completed", f.publisher.subjects[0])

	var event CourseCompletedEvent
	require.NoError(t, json.Unmarshal(f.publisher.payloads[0], &event))
	require.Equal(t, course.ID, event.CourseID)
	require.Equal(t, "user-1", event.UserID)
}

func TestCompletionRequiresPassingAttemptInTracker(t *testing.T) {
	ctx := context.Background()
	f := newCompletionFixture(t)

	course := models.Course{Title: "Weather", Type: models.CourseGround}
	require.NoError(t, f.courses.Create(ctx, &course))

	exam := models.Exam{Title: "Wx Quiz", CourseID: course.ID, PassingScore: 50,
		Questions: []models.Question{{Question: "q", Type: models.QuestionTrueFalse, CorrectAnswer: models.SingleAnswer("True"), Points: 1}}}
	require.NoError(t, f.exams.Create(ctx, &exam))

	// Attempt history says passed, but the tracker set was never updated.
	passed := true
	at := time.Date(2026, 3, 13, 10, 0, 0, 0, time.UTC)
	attempt := models.ExamAttempt{ExamID: exam.ID, UserID: "user-1", Passed: &passed, StartedAt: at, CompletedAt: &at}
	require.NoError(t, f.attempts.Append(ctx, &attempt))

	flipped, err := f.svc.EvaluateCourse(ctx, course.ID, "user-1")
	require.NoError(t, err)
	require.False(t, flipped)
}

func TestCompletionGatedOnMaterials(t *testing.T) {
	ctx := context.Background()
	f := newCompletionFixture(t)

	course := models.Course{Title: "Docs", Type: models.CoursePreflight, Materials: []models.Material{
		{Type: models.MaterialDocument, Title: "Checklist", URL: "https://example.com/checklist.pdf"},
		{Type: models.MaterialDocument, Title: "Briefing", URL: "https://example.com/briefing.pdf"},
	}}
	require.NoError(t, f.courses.Create(ctx, &course))

	f.progress.MarkMaterialViewed(ctx, course.ID, "user-1", 0)

	flipped, err := f.svc.EvaluateCourse(ctx, course.ID, "user-1")
	require.NoError(t, err)
	require.False(t, flipped)

	f.progress.MarkMaterialViewed(ctx, course.ID, "user-1", 1)

	flipped, err = f.svc.EvaluateCourse(ctx, course.ID, "user-1")
	require.NoError(t, err)
	require.True(t, flipped)
}

func TestCompletedCoursesAreSkipped(t *testing.T) {
	ctx := context.Background()
	f := newCompletionFixture(t)

	course := models.Course{Title: "Done", Type: models.CourseOther, Completed: true, CompletionDate: "2025-01-01"}
	require.NoError(t, f.courses.Create(ctx, &course))

	flipped, err := f.svc.EvaluateCourse(ctx, course.ID, "user-1")
	require.NoError(t, err)
	require.False(t, flipped)

	stored, err := f.courses.GetByID(ctx, course.ID)
	require.NoError(t, err)
	require.Equal(t, "2025-01-01", stored.CompletionDate)
	require.Empty(t, f.publisher.subjects)
}

func TestEvaluateAllFlipsEligibleCourses(t *testing.T) {
	ctx := context.Background()
	f := newCompletionFixture(t)

	eligible := models.Course{Title: "Empty", Type: models.CourseIndoc}
	require.NoError(t, f.courses.Create(ctx, &eligible))

	blocked := models.Course{Title: "Has material", Type: models.CourseGround, Materials: []models.Material{
		{Type: models.MaterialVideo, Title: "Intro", URL: "https://example.com/intro"},
	}}
	require.NoError(t, f.courses.Create(ctx, &blocked))

	require.NoError(t, f.svc.EvaluateAll(ctx, "user-1"))

	first, err := f.courses.GetByID(ctx, eligible.ID)
	require.NoError(t, err)
	require.True(t, first.Completed)

	second, err := f.courses.GetByID(ctx, blocked.ID)
	require.NoError(t, err)
	require.False(t, second.Completed)
}
