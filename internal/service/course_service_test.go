package service

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/TMgolfkid359/Magnolia-App/internal/dto"
	"github.com/TMgolfkid359/Magnolia-App/internal/models"
	"github.com/TMgolfkid359/Magnolia-App/internal/repository"
	"github.com/TMgolfkid359/Magnolia-App/internal/store"
)

type stubCompletion struct {
	evaluateAllCalls int
}

func (s *stubCompletion) EvaluateCourse(_ context.Context, _, _ string) (bool, error) {
	return false, nil
}

func (s *stubCompletion) EvaluateAll(_ context.Context, _ string) error {
	s.evaluateAllCalls++
	return nil
}

func newCourseFixture(t *testing.T) (repository.CourseRepository, *stubCompletion, CourseService) {
	t.Helper()

	repo := repository.NewCourseRepository(store.NewMemory())
	completion := &stubCompletion{}
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewCourseService(repo, completion, validate, zerolog.Nop())
	return repo, completion, svc
}

func TestCourseCreateSanitizesDescription(t *testing.T) {
	ctx := context.Background()
	_, _, svc := newCourseFixture(t)

	created, err := svc.Create(ctx, dto.CourseCreateRequest{
		Title:         "Ground School",
		Description:   `Read the <b>bold</b> parts.<script>alert("x")</script>`,
		Type:          models.CourseGround,
		EstimatedTime: "4 hours",
	})
	require.NoError(t, err)
	require.Equal(t, "Read the <b>bold</b> parts.", created.Description)
	require.NotEmpty(t, created.ID)
}

func TestCourseCreateRejectsInvalidType(t *testing.T) {
	ctx := context.Background()
	_, _, svc := newCourseFixture(t)

	_, err := svc.Create(ctx, dto.CourseCreateRequest{
		Title:         "Ground School",
		Description:   "desc",
		Type:          "crosscountry",
		EstimatedTime: "4 hours",
	})
	require.Error(t, err)

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
}

func TestCourseMaterialValidation(t *testing.T) {
	ctx := context.Background()
	_, _, svc := newCourseFixture(t)

	base := dto.CourseCreateRequest{
		Title:         "Indoc",
		Description:   "desc",
		Type:          models.CourseIndoc,
		EstimatedTime: "1 hour",
	}

	quizWithoutExam := base
	quizWithoutExam.Materials = []dto.MaterialPayload{{Type: models.MaterialQuiz, Title: "Test"}}
	_, err := svc.Create(ctx, quizWithoutExam)
	require.ErrorIs(t, err, ErrInvalidMaterial)

	docWithoutContent := base
	docWithoutContent.Materials = []dto.MaterialPayload{{Type: models.MaterialDocument, Title: "Handout"}}
	_, err = svc.Create(ctx, docWithoutContent)
	require.ErrorIs(t, err, ErrInvalidMaterial)

	mismatchedBlob := base
	mismatchedBlob.Materials = []dto.MaterialPayload{{
		Type:     models.MaterialDocument,
		Title:    "Handout",
		FileData: base64.StdEncoding.EncodeToString([]byte("plain text")),
		FileType: "application/pdf",
	}}
	_, err = svc.Create(ctx, mismatchedBlob)
	require.ErrorIs(t, err, ErrInvalidMaterial)

	valid := base
	valid.Materials = []dto.MaterialPayload{
		{Type: models.MaterialQuiz, Title: "Test", ExamID: "exam-1"},
		{Type: models.MaterialDocument, Title: "Handout", URL: "/documents/handout.pdf"},
	}
	created, err := svc.Create(ctx, valid)
	require.NoError(t, err)
	require.Len(t, created.Materials, 2)
}

func TestCourseUpdatePatchesOnlyProvidedFields(t *testing.T) {
	ctx := context.Background()
	_, _, svc := newCourseFixture(t)

	created, err := svc.Create(ctx, dto.CourseCreateRequest{
		Title:         "Pre-Flight",
		Description:   "desc",
		Type:          models.CoursePreflight,
		EstimatedTime: "1 hour",
	})
	require.NoError(t, err)

	title := "Pre-Flight Inspection"
	updated, err := svc.Update(ctx, created.ID, dto.CourseUpdateRequest{Title: &title})
	require.NoError(t, err)
	require.Equal(t, title, updated.Title)
	require.Equal(t, "desc", updated.Description)
	require.Equal(t, models.CoursePreflight, updated.Type)
}

func TestCourseListForUserReEvaluatesCompletion(t *testing.T) {
	ctx := context.Background()
	_, completion, svc := newCourseFixture(t)

	_, err := svc.ListForUser(ctx, "u-1")
	require.NoError(t, err)
	require.Equal(t, 1, completion.evaluateAllCalls)
}

func TestCourseGetAndDeleteUnknown(t *testing.T) {
	ctx := context.Background()
	_, _, svc := newCourseFixture(t)

	_, err := svc.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrCourseNotFound)
	require.ErrorIs(t, svc.Delete(ctx, "missing"), ErrCourseNotFound)
}
