package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/TMgolfkid359/Magnolia-App/internal/models"
	"github.com/TMgolfkid359/Magnolia-App/internal/repository"
	"github.com/TMgolfkid359/Magnolia-App/internal/store"
	"github.com/TMgolfkid359/Magnolia-App/pkg/fsp"
)

type fakeSchedulerClient struct {
	students           []fsp.Student
	schedule           fsp.Schedule
	instructorSchedule fsp.Schedule
	err                error
	matchCalls         int
	scheduleCalls      int
	instructorCalls    int
}

func (f *fakeSchedulerClient) MatchStudent(_ context.Context, email string) (fsp.Student, bool, error) {
	f.matchCalls++
	if f.err != nil {
		return fsp.Student{}, false, f.err
	}
	for _, student := range f.students {
		if student.Email == email {
			return student, true, nil
		}
	}
	return fsp.Student{}, false, nil
}

func (f *fakeSchedulerClient) Schedule(_ context.Context, _ string) (fsp.Schedule, error) {
	f.scheduleCalls++
	if f.err != nil {
		return fsp.Schedule{}, f.err
	}
	return f.schedule, nil
}

func (f *fakeSchedulerClient) InstructorSchedule(_ context.Context, _ string) (fsp.Schedule, error) {
	f.instructorCalls++
	if f.err != nil {
		return fsp.Schedule{}, f.err
	}
	return f.instructorSchedule, nil
}

func newScheduleFixture(t *testing.T, client *fakeSchedulerClient) (repository.UserRepository, ScheduleService) {
	t.Helper()

	users := repository.NewUserRepository(store.NewMemory())

	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = cache.Close() })

	svc := NewScheduleService(users, client, cache, time.Minute, zerolog.Nop())
	return users, svc
}

func TestScheduleForLinkedUser(t *testing.T) {
	ctx := context.Background()
	client := &fakeSchedulerClient{schedule: fsp.Schedule{
		Upcoming: []fsp.Flight{{ID: "f1", Date: "2026-04-01", Status: fsp.StatusScheduled}},
		Past:     []fsp.Flight{{ID: "f0", Date: "2026-02-01", Status: fsp.StatusCompleted}},
	}}
	users, svc := newScheduleFixture(t, client)

	user := models.User{Name: "Ada", Email: "ada@example.com", Role: models.RoleStudent, FSPStudentID: "fsp-1"}
	require.NoError(t, users.Create(ctx, &user))

	response, err := svc.ForUser(ctx, user.ID)
	require.NoError(t, err)
	require.Empty(t, response.Error)
	require.Len(t, response.Upcoming, 1)
	require.Len(t, response.Past, 1)
	require.Zero(t, client.matchCalls)

	// Second lookup is served from the cache.
	_, err = svc.ForUser(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, 1, client.scheduleCalls)
}

func TestScheduleMatchesAndPersistsUnlinkedUser(t *testing.T) {
	ctx := context.Background()
	client := &fakeSchedulerClient{students: []fsp.Student{{ID: "fsp-7", Name: "Ada", Email: "ada@example.com"}}}
	users, svc := newScheduleFixture(t, client)

	user := models.User{Name: "Ada", Email: "ada@example.com", Role: models.RoleStudent}
	require.NoError(t, users.Create(ctx, &user))

	response, err := svc.ForUser(ctx, user.ID)
	require.NoError(t, err)
	require.Empty(t, response.Error)

	stored, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "fsp-7", stored.FSPStudentID)
}

func TestScheduleUnmatchedUserGetsErrorPayload(t *testing.T) {
	ctx := context.Background()
	client := &fakeSchedulerClient{}
	users, svc := newScheduleFixture(t, client)

	user := models.User{Name: "Ada", Email: "ada@example.com", Role: models.RoleStudent}
	require.NoError(t, users.Create(ctx, &user))

	response, err := svc.ForUser(ctx, user.ID)
	require.NoError(t, err)
	require.NotEmpty(t, response.Error)
	require.NotNil(t, response.Upcoming)
	require.NotNil(t, response.Past)
	require.Empty(t, response.Upcoming)
	require.Empty(t, response.Past)
}

func TestScheduleClientFailureGetsErrorPayload(t *testing.T) {
	ctx := context.Background()
	client := &fakeSchedulerClient{err: errors.New("upstream down")}
	users, svc := newScheduleFixture(t, client)

	user := models.User{Name: "Ada", Email: "ada@example.com", Role: models.RoleStudent, FSPStudentID: "fsp-1"}
	require.NoError(t, users.Create(ctx, &user))

	response, err := svc.ForUser(ctx, user.ID)
	require.NoError(t, err)
	require.Contains(t, response.Error, "upstream down")
	require.Empty(t, response.Upcoming)
	require.Empty(t, response.Past)
}

func TestScheduleForLinkedInstructor(t *testing.T) {
	ctx := context.Background()
	client := &fakeSchedulerClient{instructorSchedule: fsp.Schedule{
		Upcoming: []fsp.Flight{{ID: "f1", InstructorID: "fsp-i-1", Date: "2026-04-01", Status: fsp.StatusScheduled}},
		Past:     []fsp.Flight{},
	}}
	users, svc := newScheduleFixture(t, client)

	user := models.User{Name: "Grace", Email: "grace@example.com", Role: models.RoleInstructor, FSPInstructorID: "fsp-i-1"}
	require.NoError(t, users.Create(ctx, &user))

	response, err := svc.ForUser(ctx, user.ID)
	require.NoError(t, err)
	require.Empty(t, response.Error)
	require.Len(t, response.Upcoming, 1)
	require.Equal(t, "fsp-i-1", response.Upcoming[0].InstructorID)
	require.Zero(t, client.scheduleCalls)
	require.Zero(t, client.matchCalls)

	// Second lookup is served from the cache.
	_, err = svc.ForUser(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, 1, client.instructorCalls)
}

func TestScheduleUnlinkedInstructorGetsErrorPayload(t *testing.T) {
	ctx := context.Background()
	client := &fakeSchedulerClient{}
	users, svc := newScheduleFixture(t, client)

	user := models.User{Name: "Grace", Email: "grace@example.com", Role: models.RoleInstructor}
	require.NoError(t, users.Create(ctx, &user))

	response, err := svc.ForUser(ctx, user.ID)
	require.NoError(t, err)
	require.NotEmpty(t, response.Error)
	require.Empty(t, response.Upcoming)
	require.Empty(t, response.Past)

	// Instructors are never matched against the student roster.
	require.Zero(t, client.matchCalls)
}

func TestScheduleUnknownUser(t *testing.T) {
	ctx := context.Background()
	_, svc := newScheduleFixture(t, &fakeSchedulerClient{})

	_, err := svc.ForUser(ctx, "missing")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestMatchStudentPersistsID(t *testing.T) {
	ctx := context.Background()
	client := &fakeSchedulerClient{students: []fsp.Student{{ID: "fsp-9", Name: "Ada", Email: "ada@example.com"}}}
	users, svc := newScheduleFixture(t, client)

	user := models.User{Name: "Ada", Email: "ada@example.com", Role: models.RoleStudent}
	require.NoError(t, users.Create(ctx, &user))

	match, err := svc.MatchStudent(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, match.Matched)
	require.Equal(t, "fsp-9", match.Student.ID)

	stored, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "fsp-9", stored.FSPStudentID)
}
