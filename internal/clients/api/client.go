package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"github.com/maxaizer/job-tracker/internal/domain/models"
	"github.com/samber/lo"
	"golang.org/x/time/rate"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const maxCreateAttempts = 5

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to a JSON-Server compatible REST backend.
type Client struct {
	baseURL     string
	httpClient  HTTPClient
	rateLimiter *rate.Limiter
	now         func() time.Time
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		now:        time.Now,
	}
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

func (c *Client) SetRateLimit(maxRequestsPerSecond float32) {
	if maxRequestsPerSecond <= 0 {
		c.rateLimiter = nil
		return
	}
	c.rateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), 1)
}

func (c *Client) SetClock(now func() time.Time) {
	c.now = now
}

// ListJobs returns the jobs of userID, or every job when userID is empty.
func (c *Client) ListJobs(ctx context.Context, userID string) ([]models.Job, error) {
	params := url.Values{}
	if userID != "" {
		params.Set("userId", userID)
	}

	jobs := []models.Job{}
	if err := c.do(ctx, http.MethodGet, "/jobs", params, nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// GetJob returns nil without error when the server does not know the id.
func (c *Client) GetJob(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	err := c.do(ctx, http.MethodGet, "/jobs/"+url.PathEscape(id), nil, nil, &job)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

func (c *Client) CreateJob(ctx context.Context, job models.Job) (models.Job, error) {
	if job.Status == "" {
		job.Status = models.Applied
	}

	var created models.Job
	err := c.create(ctx, "/jobs", job.ID, func(id string) any {
		job.ID = id
		return job
	}, &created)
	if err != nil {
		return models.Job{}, err
	}
	return created, nil
}

func (c *Client) UpdateJob(ctx context.Context, id string, patch models.JobPatch) (models.Job, error) {
	var updated models.Job
	if err := c.do(ctx, http.MethodPatch, "/jobs/"+url.PathEscape(id), nil, patch, &updated); err != nil {
		return models.Job{}, err
	}
	return updated, nil
}

func (c *Client) DeleteJob(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/jobs/"+url.PathEscape(id), nil, nil, nil)
}

// FindUser returns nil without error when no user matches the credentials.
func (c *Client) FindUser(ctx context.Context, username, password string) (*models.User, error) {
	params := url.Values{}
	params.Set("username", username)
	params.Set("password", password)

	users := []models.User{}
	if err := c.do(ctx, http.MethodGet, "/users", params, nil, &users); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

func (c *Client) UsernameExists(ctx context.Context, username string) (bool, error) {
	params := url.Values{}
	params.Set("username", username)

	users := []models.User{}
	if err := c.do(ctx, http.MethodGet, "/users", params, nil, &users); err != nil {
		return false, err
	}
	return lo.ContainsBy(users, func(u models.User) bool { return u.Username == username }), nil
}

func (c *Client) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	var created models.User
	err := c.create(ctx, "/users", user.ID, func(id string) any {
		user.ID = id
		return user
	}, &created)
	if err != nil {
		return models.User{}, err
	}
	return created, nil
}

// create posts the record built by payload. An empty id is generated and moved to the
// next free value while the server answers 409, a caller supplied id is sent once.
func (c *Client) create(ctx context.Context, path, id string, payload func(id string) any, result any) error {
	generated := id == ""
	tried := map[string]bool{}

	for attempt := 1; ; attempt++ {
		if generated {
			id = models.NewID(c.now(), func(candidate string) bool { return tried[candidate] })
			tried[id] = true
		}

		err := c.do(ctx, http.MethodPost, path, nil, payload(id), result)
		if err == nil || !generated || !isConflict(err) || attempt == maxCreateAttempts {
			return err
		}
	}
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, payload any, result any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return &RequestError{Err: fmt.Errorf("error encoding request: %w", err)}
		}
		body = bytes.NewReader(data)
	}

	apiURL := c.baseURL + path
	if len(params) > 0 {
		apiURL += "?" + params.Encode()
	}

	data, err := c.sendRequest(ctx, method, apiURL, body)
	if err != nil {
		return err
	}

	if result == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err = json.Unmarshal(data, result); err != nil {
		return &RequestError{Err: fmt.Errorf("error decoding JSON response: %w", err)}
	}
	return nil
}

func (c *Client) sendRequest(ctx context.Context, method string, apiURL string, body io.Reader) ([]byte, error) {

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, &RequestError{Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, body)
	if err != nil {
		return nil, &RequestError{Err: fmt.Errorf("error creating request: %w", err)}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	return c.handleResponse(resp)
}

func (c *Client) handleResponse(resp *http.Response) ([]byte, error) {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ServerError{StatusCode: resp.StatusCode, Status: statusText(resp)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Err: fmt.Errorf("error reading response body: %w", err)}
	}
	return body, nil
}

// statusText strips the numeric prefix net/http puts into Response.Status.
func statusText(resp *http.Response) string {
	prefix := fmt.Sprintf("%d ", resp.StatusCode)
	if text := strings.TrimPrefix(resp.Status, prefix); text != "" && text != resp.Status {
		return text
	}
	return http.StatusText(resp.StatusCode)
}

func isNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

func isConflict(err error) bool {
	return hasStatus(err, http.StatusConflict)
}

func hasStatus(err error, code int) bool {
	serverErr, ok := err.(*ServerError)
	return ok && serverErr.StatusCode == code
}
