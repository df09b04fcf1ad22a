package fsp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNormalizeFlightResolvesAliases(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	raw := record{
		"flight_id":     "f-17",
		"studentId":     "s-2",
		"instructor_id": "i-4",
		"tailNumber":    "N12345",
		"start_time":    "09:00",
		"endTime":       "10:30",
		"scheduled_date": "2026-04-01",
		"flight_type":   "Checkride",
		"status":        "Scheduled",
		"remarks":       "winds aloft briefing",
	}

	flight := normalizeFlight(raw, "fallback-student", now)
	require.Equal(t, "f-17", flight.ID)
	require.Equal(t, "s-2", flight.StudentID)
	require.Equal(t, "i-4", flight.InstructorID)
	require.Equal(t, "N12345", flight.AircraftID)
	require.Equal(t, "09:00", flight.StartTime)
	require.Equal(t, "10:30", flight.EndTime)
	require.Equal(t, "2026-04-01", flight.Date)
	require.Equal(t, "checkride", flight.Type)
	require.Equal(t, "scheduled", flight.Status)
	require.Equal(t, "winds aloft briefing", flight.Notes)
}

func TestNormalizeFlightFallbacks(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	flight := normalizeFlight(record{}, "s-9", now)
	require.Equal(t, "N/A", flight.ID)
	require.Equal(t, "s-9", flight.StudentID)
	require.Empty(t, flight.InstructorID)
	require.Equal(t, "N/A", flight.AircraftID)
	require.Equal(t, "00:00", flight.StartTime)
	require.Equal(t, "00:00", flight.EndTime)
	require.Equal(t, "2026-03-14", flight.Date)
	require.Equal(t, TypeLesson, flight.Type)
	require.Equal(t, StatusScheduled, flight.Status)
}

func TestNormalizeFlightNumericIDs(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	flight := normalizeFlight(record{"id": float64(42)}, "s-1", now)
	require.Equal(t, "42", flight.ID)
}

func TestPartition(t *testing.T) {
	now := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	flights := []Flight{
		{ID: "past-old", Date: "2026-01-10", Status: StatusCompleted},
		{ID: "up-late", Date: "2026-05-01", Status: StatusScheduled},
		{ID: "cancelled-future", Date: "2026-06-01", Status: StatusCancelled},
		{ID: "up-today", Date: "2026-03-14", Status: StatusScheduled},
		{ID: "past-recent", Date: "2026-03-01", Status: StatusCompleted},
	}

	schedule := partition(flights, now)

	// Upcoming ascending, today inclusive; a cancelled flight is past even
	// with a future date.
	require.Equal(t, []string{"up-today", "up-late"}, flightIDs(schedule.Upcoming))
	require.Equal(t, []string{"cancelled-future", "past-recent", "past-old"}, flightIDs(schedule.Past))
}

func TestParseFlightDateLayouts(t *testing.T) {
	require.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), parseFlightDate("2026-04-01"))
	require.Equal(t, time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC), parseFlightDate("2026-04-01T09:30:00Z"))
	require.Equal(t, time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC), parseFlightDate("2026-04-01T09:30:00"))
	require.True(t, parseFlightDate("next tuesday").IsZero())
}

func TestExtractArrayShapes(t *testing.T) {
	bare, err := extractArray([]byte(`[{"id":"1"},{"id":"2"}]`), "flights")
	require.NoError(t, err)
	require.Len(t, bare, 2)

	wrapped, err := extractArray([]byte(`{"flights":[{"id":"1"}]}`), "flights", "data")
	require.NoError(t, err)
	require.Len(t, wrapped, 1)

	alternate, err := extractArray([]byte(`{"data":[{"id":"1"}]}`), "flights", "data")
	require.NoError(t, err)
	require.Len(t, alternate, 1)

	empty, err := extractArray([]byte(`{"unrelated":true}`), "flights")
	require.NoError(t, err)
	require.Empty(t, empty)

	_, err = extractArray([]byte(`not json`), "flights")
	require.Error(t, err)
}

func flightIDs(flights []Flight) []string {
	ids := make([]string, 0, len(flights))
	for _, flight := range flights {
		ids = append(ids, flight.ID)
	}
	return ids
}
