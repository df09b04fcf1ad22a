package fsp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// pathVariants are the guessed URL prefixes tried in order against the same
// host. A 404 means "wrong path shape, try the next"; any other failure is
// treated as a real upstream answer and aborts the chain.
var pathVariants = []string{"", "/api/v1", "/api", "/v1/scheduling"}

// VariantError reports that no endpoint-path variant produced a usable
// response. Attempted carries the full URLs for diagnostics.
type VariantError struct {
	Attempted []string
	Last      error
}

func (e *VariantError) Error() string {
	msg := fmt.Sprintf("all endpoint variants failed (attempted: %s)", strings.Join(e.Attempted, ", "))
	if e.Last != nil {
		msg += ": " + e.Last.Error()
	}
	return msg
}

func (e *VariantError) Unwrap() error { return e.Last }

// Config carries the credentials and addressing for Flight Schedule Pro.
type Config struct {
	BaseURL    string
	APIKey     string
	OperatorID string
}

// Client talks to the Flight Schedule Pro HTTP API.
type Client struct {
	baseURL    string
	apiKey     string
	operatorID string
	httpClient *http.Client
	logger     zerolog.Logger
	now        func() time.Time
}

// New constructs a Flight Schedule Pro client.
func New(cfg Config, logger zerolog.Logger) (*Client, error) {
	if cfg.BaseURL == "" || cfg.APIKey == "" || cfg.OperatorID == "" {
		return nil, fmt.Errorf("fsp base url, api key, and operator id must be provided")
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		operatorID: cfg.OperatorID,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger.With().Str("component", "fsp_client").Logger(),
		now:        time.Now,
	}, nil
}

// Students lists the operator's students.
func (c *Client) Students(ctx context.Context) ([]Student, error) {
	body, err := c.get(ctx, fmt.Sprintf("/operators/%s/students", c.operatorID), nil)
	if err != nil {
		return nil, err
	}

	records, err := extractArray(body, "students", "data")
	if err != nil {
		return nil, err
	}

	students := make([]Student, 0, len(records))
	for _, raw := range records {
		students = append(students, Student{
			ID:    raw.str("id", "studentId", "student_id"),
			Name:  raw.str("name", "fullName", "full_name"),
			Email: raw.str("email", "emailAddress", "email_address"),
		})
	}
	return students, nil
}

// MatchStudent finds the operator student whose email matches, case
// insensitively. Returns an empty student when no record matches.
func (c *Client) MatchStudent(ctx context.Context, email string) (Student, bool, error) {
	students, err := c.Students(ctx)
	if err != nil {
		return Student{}, false, err
	}

	normalized := strings.ToLower(strings.TrimSpace(email))
	for _, student := range students {
		if strings.ToLower(student.Email) == normalized {
			return student, true, nil
		}
	}
	return Student{}, false, nil
}

// Schedule fetches and normalizes the flights for one FSP student ID,
// partitioned into upcoming and past.
func (c *Client) Schedule(ctx context.Context, fspStudentID string) (Schedule, error) {
	query := url.Values{"student_id": {fspStudentID}}
	body, err := c.get(ctx, fmt.Sprintf("/operators/%s/flights", c.operatorID), query)
	if err != nil {
		return Schedule{}, err
	}

	records, err := extractArray(body, "flights", "data")
	if err != nil {
		return Schedule{}, err
	}

	now := c.now()
	flights := make([]Flight, 0, len(records))
	for _, raw := range records {
		flights = append(flights, normalizeFlight(raw, fspStudentID, now))
	}

	return partition(flights, now), nil
}

// InstructorSchedule fetches and normalizes the flights for one FSP
// instructor ID through the instructor schedule resource. Records that omit
// their own instructor reference are backfilled with the queried ID.
func (c *Client) InstructorSchedule(ctx context.Context, fspInstructorID string) (Schedule, error) {
	body, err := c.get(ctx, fmt.Sprintf("/instructors/%s/schedule", fspInstructorID), nil)
	if err != nil {
		return Schedule{}, err
	}

	records, err := extractArray(body, "schedules", "flights", "data")
	if err != nil {
		return Schedule{}, err
	}

	now := c.now()
	flights := make([]Flight, 0, len(records))
	for _, raw := range records {
		flight := normalizeFlight(raw, "", now)
		if flight.InstructorID == "" {
			flight.InstructorID = fspInstructorID
		}
		flights = append(flights, flight)
	}

	return partition(flights, now), nil
}

// get walks the path-variant chain sequentially. The first 2xx wins and the
// remaining variants are not tried. Non-404 failures stop the chain
// immediately so an auth error or outage is surfaced rather than masked.
func (c *Client) get(ctx context.Context, resource string, query url.Values) ([]byte, error) {
	attempted := make([]string, 0, len(pathVariants))

	for _, variant := range pathVariants {
		endpoint := c.baseURL + variant + resource
		if len(query) > 0 {
			endpoint += "?" + query.Encode()
		}
		attempted = append(attempted, endpoint)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("x-subscription-key", c.apiKey)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, &VariantError{Attempted: attempted, Last: err}
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			c.logger.Debug().Str("endpoint", endpoint).Msg("endpoint variant returned 404, trying next")
			continue
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			if readErr != nil {
				return nil, readErr
			}
			return body, nil
		default:
			return nil, &VariantError{
				Attempted: attempted,
				Last:      fmt.Errorf("fsp api error: status %d", resp.StatusCode),
			}
		}
	}

	return nil, &VariantError{Attempted: attempted}
}
