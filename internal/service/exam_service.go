package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/TMgolfkid359/Magnolia-App/internal/dto"
	"github.com/TMgolfkid359/Magnolia-App/internal/models"
	"github.com/TMgolfkid359/Magnolia-App/internal/repository"
)

// Exam engine errors.
var (
	ErrExamNotFound        = errors.New("exam not found")
	ErrAttemptNotFound     = errors.New("attempt not found")
	ErrAttemptLimitReached = errors.New("attempt limit reached")
	ErrAttemptFinalized    = errors.New("attempt already finalized")
)

// ExamService exposes exam management and the attempt lifecycle. Attempts are
// an append-only history: starting adds an open attempt, submitting finalizes
// it in place, and nothing ever rewrites a completed attempt.
type ExamService interface {
	List(ctx context.Context, includeAnswers bool) ([]dto.ExamResponse, error)
	ListByCourse(ctx context.Context, courseID string, includeAnswers bool) ([]dto.ExamResponse, error)
	Get(ctx context.Context, id string, includeAnswers bool) (dto.ExamResponse, error)
	Create(ctx context.Context, payload dto.ExamCreateRequest) (dto.ExamResponse, error)
	Update(ctx context.Context, id string, payload dto.ExamUpdateRequest) (dto.ExamResponse, error)
	Delete(ctx context.Context, id string) error

	StartAttempt(ctx context.Context, examID, userID string) (dto.AttemptResponse, error)
	SubmitAttempt(ctx context.Context, attemptID, userID string, payload dto.SubmitAttemptRequest) (dto.AttemptResponse, error)
	GetAttempt(ctx context.Context, attemptID, userID string) (dto.AttemptResponse, error)
	ListAttempts(ctx context.Context, userID, examID string) ([]dto.AttemptResponse, error)
}

type examService struct {
	exams      repository.ExamRepository
	attempts   repository.AttemptRepository
	progress   ProgressService
	completion CompletionService
	validator  *validator.Validate
	logger     zerolog.Logger
	tracer     trace.Tracer
	now        func() time.Time
}

// NewExamService builds a new exam service.
func NewExamService(
	exams repository.ExamRepository,
	attempts repository.AttemptRepository,
	progress ProgressService,
	completion CompletionService,
	validate *validator.Validate,
	logger zerolog.Logger,
) ExamService {
	return &examService{
		exams:      exams,
		attempts:   attempts,
		progress:   progress,
		completion: completion,
		validator:  validate,
		logger:     logger.With().Str("component", "exam_service").Logger(),
		tracer:     otel.Tracer("github.com/TMgolfkid359/Magnolia-App/internal/service/exam"),
		now:        time.Now,
	}
}

// CalculateScore grades an answer set against the exam's answer key. Single
// answers compare case-insensitively after trimming. Multi-answer questions
// require set equality with the correct set, no partial credit. The score is
// the rounded percentage of earned points; an exam with zero total points
// scores zero.
func CalculateScore(exam models.Exam, answers map[string]models.Answer) (int, bool) {
	total := exam.TotalPoints()
	if total == 0 {
		return 0, 0 >= exam.PassingScore
	}

	earned := 0
	for _, question := range exam.Questions {
		if answerMatches(question.CorrectAnswer, answers[question.ID]) {
			earned += question.Points
		}
	}

	score := int(math.Round(100 * float64(earned) / float64(total)))
	return score, score >= exam.PassingScore
}

func answerMatches(correct, submitted models.Answer) bool {
	if correct.Multi {
		if !submitted.Multi {
			return false
		}
		want := normalizeAnswerSet(correct.Values)
		got := normalizeAnswerSet(submitted.Values)
		if len(want) != len(got) {
			return false
		}
		for value := range want {
			if _, ok := got[value]; !ok {
				return false
			}
		}
		return true
	}

	return normalizeAnswer(correct.Single()) == normalizeAnswer(submitted.Single())
}

func normalizeAnswer(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func normalizeAnswerSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		set[normalizeAnswer(value)] = struct{}{}
	}
	return set
}

func (s *examService) List(ctx context.Context, includeAnswers bool) ([]dto.ExamResponse, error) {
	exams, err := s.exams.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewExamResponseSlice(exams, includeAnswers), nil
}

func (s *examService) ListByCourse(ctx context.Context, courseID string, includeAnswers bool) ([]dto.ExamResponse, error) {
	exams, err := s.exams.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return dto.NewExamResponseSlice(exams, includeAnswers), nil
}

func (s *examService) Get(ctx context.Context, id string, includeAnswers bool) (dto.ExamResponse, error) {
	exam, err := s.exams.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.ExamResponse{}, ErrExamNotFound
		}
		return dto.ExamResponse{}, err
	}
	return dto.NewExamResponse(exam, includeAnswers), nil
}

func (s *examService) Create(ctx context.Context, payload dto.ExamCreateRequest) (dto.ExamResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ExamResponse{}, err
	}

	exam := models.Exam{
		Title:           payload.Title,
		Description:     payload.Description,
		CourseID:        payload.CourseID,
		Questions:       dto.ToQuestions(payload.Questions),
		PassingScore:    payload.PassingScore,
		TimeLimit:       payload.TimeLimit,
		AttemptsAllowed: payload.AttemptsAllowed,
	}

	if err := s.exams.Create(ctx, &exam); err != nil {
		return dto.ExamResponse{}, err
	}

	s.logger.Info().Str("exam_id", exam.ID).Str("course_id", exam.CourseID).Msg("exam created")

	return dto.NewExamResponse(exam, true), nil
}

func (s *examService) Update(ctx context.Context, id string, payload dto.ExamUpdateRequest) (dto.ExamResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ExamResponse{}, err
	}

	patch := repository.ExamPatch{
		Title:           payload.Title,
		Description:     payload.Description,
		CourseID:        payload.CourseID,
		PassingScore:    payload.PassingScore,
		TimeLimit:       payload.TimeLimit,
		AttemptsAllowed: payload.AttemptsAllowed,
	}
	if payload.Questions != nil {
		questions := dto.ToQuestions(*payload.Questions)
		patch.Questions = &questions
	}

	exam, err := s.exams.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.ExamResponse{}, ErrExamNotFound
		}
		return dto.ExamResponse{}, err
	}

	s.logger.Info().Str("exam_id", exam.ID).Msg("exam updated")

	return dto.NewExamResponse(exam, true), nil
}

func (s *examService) Delete(ctx context.Context, id string) error {
	if err := s.exams.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExamNotFound
		}
		return err
	}

	s.logger.Info().Str("exam_id", id).Msg("exam deleted")
	return nil
}

// StartAttempt opens a new attempt unless the user has exhausted the allowed
// attempts. Only completed attempts count toward the cap; an abandoned open
// attempt does not burn one.
func (s *examService) StartAttempt(ctx context.Context, examID, userID string) (dto.AttemptResponse, error) {
	exam, err := s.exams.GetByID(ctx, examID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.AttemptResponse{}, ErrExamNotFound
		}
		return dto.AttemptResponse{}, err
	}

	history, err := s.attempts.ListByUser(ctx, userID, examID)
	if err != nil {
		return dto.AttemptResponse{}, err
	}

	if exam.AttemptsAllowed > 0 {
		completed := 0
		for _, prior := range history {
			// An expired open attempt counts once it is finalized, so it
			// cannot dodge the cap by never being read back.
			prior, err := s.reconcile(ctx, prior, exam)
			if err != nil {
				return dto.AttemptResponse{}, err
			}
			if prior.Completed() {
				completed++
			}
		}
		if completed >= exam.AttemptsAllowed {
			return dto.AttemptResponse{}, ErrAttemptLimitReached
		}
	}

	attempt := models.ExamAttempt{
		ExamID:    examID,
		UserID:    userID,
		Answers:   map[string]models.Answer{},
		StartedAt: s.now().UTC(),
	}
	if err := s.attempts.Append(ctx, &attempt); err != nil {
		return dto.AttemptResponse{}, err
	}

	s.logger.Info().Str("exam_id", examID).Str("user_id", userID).Str("attempt_id", attempt.ID).Msg("attempt started")

	return dto.NewAttemptResponse(attempt), nil
}

// SubmitAttempt grades and finalizes an open attempt. When a timed attempt's
// deadline has already passed, the answers saved on the attempt are graded
// instead of the late payload, exactly as the auto-submit would have done.
func (s *examService) SubmitAttempt(ctx context.Context, attemptID, userID string, payload dto.SubmitAttemptRequest) (dto.AttemptResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AttemptResponse{}, err
	}

	attempt, exam, err := s.loadAttempt(ctx, attemptID, userID)
	if err != nil {
		return dto.AttemptResponse{}, err
	}
	if attempt.Completed() {
		return dto.AttemptResponse{}, ErrAttemptFinalized
	}

	if deadline, timed := attempt.Deadline(exam); timed && s.now().After(deadline) {
		finalized, err := s.finalize(ctx, attempt, exam, attempt.Answers, deadline)
		if err != nil {
			return dto.AttemptResponse{}, err
		}
		return dto.NewAttemptResponse(finalized), nil
	}

	finalized, err := s.finalize(ctx, attempt, exam, payload.Answers, s.now().UTC())
	if err != nil {
		return dto.AttemptResponse{}, err
	}
	return dto.NewAttemptResponse(finalized), nil
}

// GetAttempt returns one attempt, lazily finalizing it first when its timed
// deadline has expired.
func (s *examService) GetAttempt(ctx context.Context, attemptID, userID string) (dto.AttemptResponse, error) {
	attempt, exam, err := s.loadAttempt(ctx, attemptID, userID)
	if err != nil {
		return dto.AttemptResponse{}, err
	}

	attempt, err = s.reconcile(ctx, attempt, exam)
	if err != nil {
		return dto.AttemptResponse{}, err
	}
	return dto.NewAttemptResponse(attempt), nil
}

// ListAttempts returns the user's attempt history, optionally narrowed to one
// exam. Expired open attempts are finalized on the way out.
func (s *examService) ListAttempts(ctx context.Context, userID, examID string) ([]dto.AttemptResponse, error) {
	history, err := s.attempts.ListByUser(ctx, userID, examID)
	if err != nil {
		return nil, err
	}

	reconciled := make([]models.ExamAttempt, 0, len(history))
	for _, attempt := range history {
		if !attempt.Completed() {
			exam, err := s.exams.GetByID(ctx, attempt.ExamID)
			if err == nil {
				if attempt, err = s.reconcile(ctx, attempt, exam); err != nil {
					return nil, err
				}
			} else if !errors.Is(err, repository.ErrNotFound) {
				return nil, err
			}
		}
		reconciled = append(reconciled, attempt)
	}
	return dto.NewAttemptResponseSlice(reconciled), nil
}

func (s *examService) loadAttempt(ctx context.Context, attemptID, userID string) (models.ExamAttempt, models.Exam, error) {
	attempt, err := s.attempts.GetByID(ctx, attemptID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.ExamAttempt{}, models.Exam{}, ErrAttemptNotFound
		}
		return models.ExamAttempt{}, models.Exam{}, err
	}
	if attempt.UserID != userID {
		return models.ExamAttempt{}, models.Exam{}, ErrAttemptNotFound
	}

	exam, err := s.exams.GetByID(ctx, attempt.ExamID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.ExamAttempt{}, models.Exam{}, ErrExamNotFound
		}
		return models.ExamAttempt{}, models.Exam{}, err
	}
	return attempt, exam, nil
}

// reconcile finalizes an open attempt whose deadline has passed, grading the
// answers saved on it so far through the normal scoring path.
func (s *examService) reconcile(ctx context.Context, attempt models.ExamAttempt, exam models.Exam) (models.ExamAttempt, error) {
	if attempt.Completed() {
		return attempt, nil
	}
	deadline, timed := attempt.Deadline(exam)
	if !timed || !s.now().After(deadline) {
		return attempt, nil
	}
	return s.finalize(ctx, attempt, exam, attempt.Answers, deadline)
}

func (s *examService) finalize(ctx context.Context, attempt models.ExamAttempt, exam models.Exam, answers map[string]models.Answer, completedAt time.Time) (models.ExamAttempt, error) {
	ctx, span := s.tracer.Start(ctx, "exam.finalize", trace.WithAttributes(
		attribute.String("exam.id", exam.ID),
		attribute.String("attempt.id", attempt.ID),
	))
	defer span.End()

	if answers == nil {
		answers = map[string]models.Answer{}
	}

	score, passed := CalculateScore(exam, answers)
	completedAt = completedAt.UTC()

	attempt.Answers = answers
	attempt.Score = &score
	attempt.Passed = &passed
	attempt.CompletedAt = &completedAt

	if err := s.attempts.Finalize(ctx, attempt); err != nil {
		return models.ExamAttempt{}, err
	}

	s.logger.Info().
		Str("attempt_id", attempt.ID).
		Str("exam_id", exam.ID).
		Str("user_id", attempt.UserID).
		Int("score", score).
		Bool("passed", passed).
		Msg("attempt finalized")

	if passed && exam.CourseID != "" {
		s.progress.MarkExamCompleted(ctx, exam.CourseID, attempt.UserID, exam.ID)
		if _, err := s.completion.EvaluateCourse(ctx, exam.CourseID, attempt.UserID); err != nil {
			s.logger.Warn().Err(err).Str("course_id", exam.CourseID).Msg("completion evaluation failed")
		}
	}

	return attempt, nil
}
