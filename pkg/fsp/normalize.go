package fsp

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// The upstream schema varies between operators, so every output field is
// resolved through an ordered alias list with a sentinel fallback. The
// tables are package-level so the normalization contract stays testable on
// its own.
var (
	idAliases         = []string{"id", "flightId", "flight_id", "schedule_id", "reservation_id"}
	studentAliases    = []string{"student_id", "studentId"}
	instructorAliases = []string{"instructor_id", "instructorId"}
	aircraftAliases   = []string{"aircraft_id", "aircraftId", "aircraft", "tailNumber", "tail_number"}
	startTimeAliases  = []string{"start_time", "startTime", "start"}
	endTimeAliases    = []string{"end_time", "endTime", "end"}
	dateAliases       = []string{"date", "scheduled_date", "startDate", "start_date"}
	typeAliases       = []string{"type", "flight_type", "flightType", "reservation_type"}
	statusAliases     = []string{"status"}
	notesAliases      = []string{"notes", "remarks", "description"}
)

const (
	fallbackTime     = "00:00"
	fallbackAircraft = "N/A"
)

type record map[string]interface{}

// str returns the first alias that resolves to a non-empty value.
func (r record) str(aliases ...string) string {
	for _, alias := range aliases {
		value, ok := r[alias]
		if !ok || value == nil {
			continue
		}
		switch v := value.(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strings.TrimSuffix(fmt.Sprintf("%v", v), ".0")
		}
	}
	return ""
}

func firstNonEmpty(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

// normalizeFlight maps one raw upstream record to the portal's flight shape.
// studentID is the FSP ID the lookup was made for; it backfills records that
// omit their own student reference.
func normalizeFlight(raw record, studentID string, now time.Time) Flight {
	return Flight{
		ID:           firstNonEmpty(raw.str(idAliases...), fallbackAircraft),
		StudentID:    firstNonEmpty(raw.str(studentAliases...), studentID),
		InstructorID: raw.str(instructorAliases...),
		AircraftID:   firstNonEmpty(raw.str(aircraftAliases...), fallbackAircraft),
		StartTime:    firstNonEmpty(raw.str(startTimeAliases...), fallbackTime),
		EndTime:      firstNonEmpty(raw.str(endTimeAliases...), fallbackTime),
		Date:         firstNonEmpty(raw.str(dateAliases...), now.Format("2006-01-02")),
		Type:         strings.ToLower(firstNonEmpty(raw.str(typeAliases...), TypeLesson)),
		Status:       strings.ToLower(firstNonEmpty(raw.str(statusAliases...), StatusScheduled)),
		Notes:        raw.str(notesAliases...),
	}
}

// partition splits flights into upcoming and past. A flight is upcoming iff
// its date is not before now and its status is neither completed nor
// cancelled; upcoming sorts ascending by date, past descending.
func partition(flights []Flight, now time.Time) Schedule {
	schedule := Schedule{Upcoming: []Flight{}, Past: []Flight{}}

	for _, flight := range flights {
		date := parseFlightDate(flight.Date)
		if !date.Before(now) && flight.Status != StatusCompleted && flight.Status != StatusCancelled {
			schedule.Upcoming = append(schedule.Upcoming, flight)
		} else {
			schedule.Past = append(schedule.Past, flight)
		}
	}

	sort.SliceStable(schedule.Upcoming, func(i, j int) bool {
		return parseFlightDate(schedule.Upcoming[i].Date).Before(parseFlightDate(schedule.Upcoming[j].Date))
	})
	sort.SliceStable(schedule.Past, func(i, j int) bool {
		return parseFlightDate(schedule.Past[j].Date).Before(parseFlightDate(schedule.Past[i].Date))
	})

	return schedule
}

func parseFlightDate(value string) time.Time {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// extractArray pulls the record array out of an upstream body, which may
// nest it under one of several keys or be a bare array.
func extractArray(body []byte, keys ...string) ([]record, error) {
	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "[") {
		var records []record
		if err := json.Unmarshal(body, &records); err != nil {
			return nil, fmt.Errorf("failed to decode response array: %w", err)
		}
		return records, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}

	for _, key := range keys {
		raw, ok := envelope[key]
		if !ok {
			continue
		}
		var records []record
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, fmt.Errorf("failed to decode %q array: %w", key, err)
		}
		return records, nil
	}

	return []record{}, nil
}
