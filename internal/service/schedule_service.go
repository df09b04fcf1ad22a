package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/TMgolfkid359/Magnolia-App/internal/dto"
	"github.com/TMgolfkid359/Magnolia-App/internal/models"
	"github.com/TMgolfkid359/Magnolia-App/internal/observability"
	"github.com/TMgolfkid359/Magnolia-App/internal/repository"
	"github.com/TMgolfkid359/Magnolia-App/pkg/fsp"
)

const (
	scheduleCachePrefix           = "magnolia:schedule:"
	instructorScheduleCachePrefix = "magnolia:schedule:instructor:"
)

// SchedulerClient is the slice of the Flight Schedule Pro client the
// schedule service needs. Satisfied by *fsp.Client.
type SchedulerClient interface {
	MatchStudent(ctx context.Context, email string) (fsp.Student, bool, error)
	Schedule(ctx context.Context, fspStudentID string) (fsp.Schedule, error)
	InstructorSchedule(ctx context.Context, fspInstructorID string) (fsp.Schedule, error)
}

// ScheduleService resolves a portal user to their external scheduler account
// and returns their flight schedule. Lookups never fail past this boundary:
// a scheduler outage or unmatched account yields a response with the error
// field set and empty partitions, so clients branch on that field rather
// than on transport failures.
type ScheduleService interface {
	ForUser(ctx context.Context, userID string) (dto.ScheduleResponse, error)
	MatchStudent(ctx context.Context, userID string) (dto.MatchStudentResponse, error)
}

type scheduleService struct {
	users    repository.UserRepository
	client   SchedulerClient
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewScheduleService builds a new schedule service. The cache client may be
// nil, in which case every lookup goes to the scheduler.
func NewScheduleService(users repository.UserRepository, client SchedulerClient, cache *redis.Client, cacheTTL time.Duration, logger zerolog.Logger) ScheduleService {
	return &scheduleService{
		users:    users,
		client:   client,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger.With().Str("component", "schedule_service").Logger(),
	}
}

// ForUser returns the user's partitioned flight schedule. Instructors are
// served through their linked instructor ID; a student without a linked
// scheduler ID is matched by email first, and a successful match is
// persisted so subsequent lookups skip the roster scan.
func (s *scheduleService) ForUser(ctx context.Context, userID string) (dto.ScheduleResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.ScheduleResponse{}, ErrUserNotFound
		}
		return dto.ScheduleResponse{}, err
	}

	if user.FSPInstructorID != "" || user.Role == models.RoleInstructor {
		return s.forInstructor(ctx, user), nil
	}

	fspID := user.FSPStudentID
	if fspID == "" {
		student, found, err := s.client.MatchStudent(ctx, user.Email)
		if err != nil {
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("scheduler roster lookup failed")
			observability.ScheduleLookups().WithLabelValues("error").Inc()
			return dto.NewScheduleErrorResponse(err.Error()), nil
		}
		if !found {
			observability.ScheduleLookups().WithLabelValues("unmatched").Inc()
			return dto.NewScheduleErrorResponse("no scheduler account matches this email"), nil
		}

		fspID = student.ID
		if _, err := s.users.Update(ctx, userID, repository.UserPatch{FSPStudentID: &fspID}); err != nil {
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to persist matched scheduler id")
		}
	}

	if cached, ok := s.cachedSchedule(ctx, scheduleCachePrefix+fspID); ok {
		observability.ScheduleLookups().WithLabelValues("hit").Inc()
		return dto.NewScheduleResponse(cached), nil
	}

	schedule, err := s.client.Schedule(ctx, fspID)
	if err != nil {
		s.logger.Warn().Err(err).Str("fsp_student_id", fspID).Msg("schedule fetch failed")
		observability.ScheduleLookups().WithLabelValues("error").Inc()
		return dto.NewScheduleErrorResponse(err.Error()), nil
	}

	observability.ScheduleLookups().WithLabelValues("fetched").Inc()
	s.storeSchedule(ctx, scheduleCachePrefix+fspID, schedule)

	return dto.NewScheduleResponse(schedule), nil
}

// forInstructor serves the instructor's schedule through the instructor
// resource. There is no roster to email-match instructors against, so an
// unlinked account gets the error payload straight away.
func (s *scheduleService) forInstructor(ctx context.Context, user models.User) dto.ScheduleResponse {
	if user.FSPInstructorID == "" {
		observability.ScheduleLookups().WithLabelValues("unmatched").Inc()
		return dto.NewScheduleErrorResponse("no scheduler account is linked to this instructor")
	}

	key := instructorScheduleCachePrefix + user.FSPInstructorID
	if cached, ok := s.cachedSchedule(ctx, key); ok {
		observability.ScheduleLookups().WithLabelValues("hit").Inc()
		return dto.NewScheduleResponse(cached)
	}

	schedule, err := s.client.InstructorSchedule(ctx, user.FSPInstructorID)
	if err != nil {
		s.logger.Warn().Err(err).Str("fsp_instructor_id", user.FSPInstructorID).Msg("instructor schedule fetch failed")
		observability.ScheduleLookups().WithLabelValues("error").Inc()
		return dto.NewScheduleErrorResponse(err.Error())
	}

	observability.ScheduleLookups().WithLabelValues("fetched").Inc()
	s.storeSchedule(ctx, key, schedule)

	return dto.NewScheduleResponse(schedule)
}

// MatchStudent runs the email match on demand, persisting the scheduler ID
// when a record is found.
func (s *scheduleService) MatchStudent(ctx context.Context, userID string) (dto.MatchStudentResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.MatchStudentResponse{}, ErrUserNotFound
		}
		return dto.MatchStudentResponse{}, err
	}

	student, found, err := s.client.MatchStudent(ctx, user.Email)
	if err != nil {
		return dto.MatchStudentResponse{}, err
	}
	if !found {
		return dto.MatchStudentResponse{Matched: false}, nil
	}

	if _, err := s.users.Update(ctx, userID, repository.UserPatch{FSPStudentID: &student.ID}); err != nil {
		return dto.MatchStudentResponse{}, err
	}

	s.logger.Info().Str("user_id", userID).Str("fsp_student_id", student.ID).Msg("scheduler account matched")

	return dto.MatchStudentResponse{Matched: true, Student: &student}, nil
}

func (s *scheduleService) cachedSchedule(ctx context.Context, key string) (fsp.Schedule, bool) {
	if s.cache == nil {
		return fsp.Schedule{}, false
	}

	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Msg("schedule cache read failed")
		}
		return fsp.Schedule{}, false
	}

	var schedule fsp.Schedule
	if err := json.Unmarshal(raw, &schedule); err != nil {
		s.logger.Warn().Err(err).Msg("schedule cache entry corrupt, ignoring")
		return fsp.Schedule{}, false
	}
	return schedule, true
}

func (s *scheduleService) storeSchedule(ctx context.Context, key string, schedule fsp.Schedule) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(schedule)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("schedule cache write failed")
	}
}
