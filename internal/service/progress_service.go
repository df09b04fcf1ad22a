package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/TMgolfkid359/Magnolia-App/internal/dto"
	"github.com/TMgolfkid359/Magnolia-App/internal/models"
	"github.com/TMgolfkid359/Magnolia-App/internal/repository"
)

// ErrProgressNotFound indicates no progress record exists for the pair.
var ErrProgressNotFound = errors.New("progress record not found")

// ProgressService tracks what a user has viewed, completed, and how long they
// have spent per course. The mark and time-tracking operations are best
// effort: when the store is unavailable they log and return without error, so
// a flaky backend never blocks a student working through material.
type ProgressService interface {
	ForUser(ctx context.Context, userID string) ([]dto.ProgressResponse, error)
	ForCourse(ctx context.Context, courseID string) ([]dto.ProgressResponse, error)
	Get(ctx context.Context, courseID, userID string) (dto.ProgressResponse, error)

	MarkMaterialViewed(ctx context.Context, courseID, userID string, materialIndex int)
	MarkExamCompleted(ctx context.Context, courseID, userID, examID string)
	AllMaterialsViewed(ctx context.Context, courseID, userID string, totalMaterials int) bool
	AllExamsCompleted(ctx context.Context, courseID, userID string, requiredExamIDs []string) bool

	StartTimeTracking(ctx context.Context, courseID, userID string)
	StopTimeTracking(ctx context.Context, courseID, userID string)
	TimeSpent(ctx context.Context, courseID, userID string) dto.TimeSpentResponse
}

type progressService struct {
	repo   repository.ProgressRepository
	logger zerolog.Logger
	now    func() time.Time
}

// NewProgressService builds a new progress service.
func NewProgressService(repo repository.ProgressRepository, logger zerolog.Logger) ProgressService {
	return &progressService{
		repo:   repo,
		logger: logger.With().Str("component", "progress_service").Logger(),
		now:    time.Now,
	}
}

func (s *progressService) ForUser(ctx context.Context, userID string) ([]dto.ProgressResponse, error) {
	records, err := s.repo.ForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewProgressResponseSlice(records, s.now()), nil
}

func (s *progressService) ForCourse(ctx context.Context, courseID string) ([]dto.ProgressResponse, error) {
	records, err := s.repo.ForCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return dto.NewProgressResponseSlice(records, s.now()), nil
}

func (s *progressService) Get(ctx context.Context, courseID, userID string) (dto.ProgressResponse, error) {
	record, err := s.repo.Get(ctx, courseID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.ProgressResponse{}, ErrProgressNotFound
		}
		return dto.ProgressResponse{}, err
	}
	return dto.NewProgressResponse(record, s.now()), nil
}

// MarkMaterialViewed idempotently records the stringified material index in
// the viewed set and refreshes the last-viewed timestamp.
func (s *progressService) MarkMaterialViewed(ctx context.Context, courseID, userID string, materialIndex int) {
	record, ok := s.load(ctx, courseID, userID)
	if !ok {
		return
	}

	index := strconv.Itoa(materialIndex)
	if !record.HasViewed(index) {
		record.ViewedMaterials = append(record.ViewedMaterials, index)
	}
	viewedAt := s.now().UTC()
	record.LastViewedAt = &viewedAt

	s.save(ctx, record)
}

// MarkExamCompleted idempotently records the exam in the completed set.
func (s *progressService) MarkExamCompleted(ctx context.Context, courseID, userID, examID string) {
	record, ok := s.load(ctx, courseID, userID)
	if !ok {
		return
	}

	if !record.HasCompletedExam(examID) {
		record.CompletedExams = append(record.CompletedExams, examID)
	}

	s.save(ctx, record)
}

// AllMaterialsViewed reports whether the viewed set has reached the material
// count. The check is on cardinality, not on the specific indices present.
func (s *progressService) AllMaterialsViewed(ctx context.Context, courseID, userID string, totalMaterials int) bool {
	record, ok := s.load(ctx, courseID, userID)
	if !ok {
		return false
	}
	return len(record.ViewedMaterials) >= totalMaterials
}

// AllExamsCompleted reports whether every required exam is in the completed
// set. An empty requirement list is vacuously satisfied.
func (s *progressService) AllExamsCompleted(ctx context.Context, courseID, userID string, requiredExamIDs []string) bool {
	if len(requiredExamIDs) == 0 {
		return true
	}

	record, ok := s.load(ctx, courseID, userID)
	if !ok {
		return false
	}
	for _, examID := range requiredExamIDs {
		if !record.HasCompletedExam(examID) {
			return false
		}
	}
	return true
}

// StartTimeTracking opens a session window. Starting while a window is
// already open is a no-op so a double-start cannot reset the clock.
func (s *progressService) StartTimeTracking(ctx context.Context, courseID, userID string) {
	record, ok := s.load(ctx, courseID, userID)
	if !ok {
		return
	}
	if record.SessionStartedAt != nil {
		return
	}

	startedAt := s.now().UTC()
	record.SessionStartedAt = &startedAt

	s.save(ctx, record)
}

// StopTimeTracking closes the open session window, folding the elapsed whole
// seconds into the cumulative total. Stopping without an open window is a
// no-op.
func (s *progressService) StopTimeTracking(ctx context.Context, courseID, userID string) {
	record, ok := s.load(ctx, courseID, userID)
	if !ok {
		return
	}
	if record.SessionStartedAt == nil {
		return
	}

	elapsed := s.now().Sub(*record.SessionStartedAt)
	if elapsed > 0 {
		record.TimeSpentSeconds += int64(elapsed / time.Second)
	}
	record.SessionStartedAt = nil

	s.save(ctx, record)
}

// TimeSpent returns the cumulative seconds plus, when a session is open, the
// live elapsed seconds of that session. Nothing is persisted.
func (s *progressService) TimeSpent(ctx context.Context, courseID, userID string) dto.TimeSpentResponse {
	response := dto.TimeSpentResponse{CourseID: courseID, UserID: userID}

	record, ok := s.load(ctx, courseID, userID)
	if !ok {
		return response
	}

	response.TimeSpentSeconds = record.TimeSpentSeconds
	if record.SessionStartedAt != nil {
		if elapsed := s.now().Sub(*record.SessionStartedAt); elapsed > 0 {
			response.TimeSpentSeconds += int64(elapsed / time.Second)
		}
	}
	return response
}

// load fetches the record for the pair, creating a fresh one when absent.
// A store failure is logged and reported as not-ok.
func (s *progressService) load(ctx context.Context, courseID, userID string) (models.CourseProgress, bool) {
	record, err := s.repo.Get(ctx, courseID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.CourseProgress{CourseID: courseID, UserID: userID}, true
		}
		s.logger.Warn().Err(err).Str("course_id", courseID).Str("user_id", userID).Msg("progress store unavailable, skipping update")
		return models.CourseProgress{}, false
	}
	return record, true
}

func (s *progressService) save(ctx context.Context, record models.CourseProgress) {
	if err := s.repo.Save(ctx, record); err != nil {
		s.logger.Warn().Err(err).Str("course_id", record.CourseID).Str("user_id", record.UserID).Msg("progress store unavailable, update dropped")
	}
}
