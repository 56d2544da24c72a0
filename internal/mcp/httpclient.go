package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/meltforce/cadax/internal/models"
	"github.com/meltforce/cadax/internal/storage"
)

// errNotFound marks a 404 response so callers can treat a missing resource
// differently from a failure.
var errNotFound = errors.New("not found")

// HTTPClient implements DataSource by calling the CADAX REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL. The API
// key is only needed for writes (log_workout goes through the ingest
// endpoint).
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, params url.Values, payload any) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("httpclient: encode body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" && method != http.MethodGet {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("httpclient: %s: %w", path, errNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, data)
	}

	return data, nil
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, params, nil)
}

func (c *HTTPClient) ListWorkouts(ctx context.Context, _ int) ([]models.WorkoutRecord, error) {
	body, err := c.get(ctx, "/api/v1/workouts", nil)
	if err != nil {
		return nil, err
	}

	var records []models.WorkoutRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("httpclient: decode workouts: %w", err)
	}
	return records, nil
}

func (c *HTTPClient) QueryWorkouts(ctx context.Context, _ int, start, end string) ([]models.WorkoutRecord, error) {
	params := url.Values{}
	params.Set("start", start)
	params.Set("end", end)

	body, err := c.get(ctx, "/api/v1/workouts", params)
	if err != nil {
		return nil, err
	}

	var records []models.WorkoutRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("httpclient: decode workouts: %w", err)
	}
	return records, nil
}

func (c *HTTPClient) UpsertWorkout(ctx context.Context, _ int, date string, groups []string) error {
	payload := map[string]any{
		"records": []models.WorkoutRecord{{Date: date, MuscleGroups: groups}},
	}
	_, err := c.do(ctx, http.MethodPost, "/api/v1/ingest", nil, payload)
	return err
}

func (c *HTTPClient) ReadGoal(ctx context.Context, _ int) (int, error) {
	body, err := c.get(ctx, "/api/v1/goal", nil)
	if err != nil {
		return 0, err
	}

	var resp struct {
		GoalDays int `json:"goalDays"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("httpclient: decode goal: %w", err)
	}
	return resp.GoalDays, nil
}

func (c *HTTPClient) ReadBestStreaks(ctx context.Context, _ int) (models.StreakBests, error) {
	body, err := c.get(ctx, "/api/v1/streaks", nil)
	if err != nil {
		return models.StreakBests{}, err
	}

	var resp struct {
		StoredBests models.StreakBests `json:"storedBests"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return models.StreakBests{}, fmt.Errorf("httpclient: decode streaks: %w", err)
	}
	return resp.StoredBests, nil
}

func (c *HTTPClient) GetRoutine(ctx context.Context, _ int, muscleGroup string) (*models.CustomRoutine, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/v1/routines/"+url.PathEscape(muscleGroup), nil, nil)
	if err != nil {
		// Missing routine means "use the preset", not a failure.
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var routine models.CustomRoutine
	if err := json.Unmarshal(body, &routine); err != nil {
		return nil, fmt.Errorf("httpclient: decode routine: %w", err)
	}
	return &routine, nil
}

func (c *HTTPClient) GetDataStats(ctx context.Context, _ int) (*storage.DataStats, error) {
	body, err := c.get(ctx, "/api/v1/stats", nil)
	if err != nil {
		return nil, err
	}

	var stats storage.DataStats
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, fmt.Errorf("httpclient: decode stats: %w", err)
	}
	return &stats, nil
}
