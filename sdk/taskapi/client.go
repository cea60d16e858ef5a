package taskapi

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

	"github.com/jrazmi/tasktracker/sdk/environment"
)

// ErrNotFound is returned when the API reports that a task does not exist.
var ErrNotFound = errors.New("task not found")

// APIError is a non-2xx answer from the API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
}

// Options is the exportable client configuration.
type Options struct {
	BaseURL string        `env:"API_URL" default:"http://localhost:5000/api"`
	Timeout time.Duration `env:"REQUEST_TIMEOUT" default:"10s"`
}

type options struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*options)

// WithHTTPClient replaces the underlying http.Client. Its Timeout is left as is.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// WithTimeout bounds every request.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// Client calls the task REST API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client rooted at baseURL, e.g. "http://localhost:5000/api".
func New(baseURL string, opts ...Option) *Client {
	return newClient(Options{BaseURL: baseURL, Timeout: 10 * time.Second}, opts...)
}

// NewFromEnv creates a Client from API_URL and REQUEST_TIMEOUT under prefix.
func NewFromEnv(prefix string, opts ...Option) (*Client, error) {
	var cfg Options
	if err := environment.ParseEnvTags(prefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing taskapi client config: %w", err)
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("parsing api url: %w", err)
	}
	return newClient(cfg, opts...), nil
}

func newClient(cfg Options, opts ...Option) *Client {
	o := &options{
		baseURL: cfg.BaseURL,
		timeout: cfg.Timeout,
	}
	for _, opt := range opts {
		opt(o)
	}

	hc := o.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: o.timeout}
	}

	return &Client{
		baseURL: strings.TrimSuffix(o.baseURL, "/"),
		http:    hc,
	}
}

// List returns every task in store order.
func (c *Client) List(ctx context.Context) ([]Task, error) {
	var tasks []Task
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &tasks); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if tasks == nil {
		tasks = []Task{}
	}
	return tasks, nil
}

// Create stores a new task and returns it with its assigned id.
func (c *Client) Create(ctx context.Context, in TaskInput) (Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodPost, "/tasks", in, &task); err != nil {
		return Task{}, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// Update replaces the fields of task id and returns the stored result.
func (c *Client) Update(ctx context.Context, id string, in TaskInput) (Task, error) {
	var task *Task
	if err := c.do(ctx, http.MethodPut, "/tasks/"+url.PathEscape(id), in, &task); err != nil {
		return Task{}, fmt.Errorf("update task %s: %w", id, err)
	}

	// servers that do not signal not-found answer 200 with a null body.
	if task == nil {
		return Task{}, fmt.Errorf("update task %s: %w", id, ErrNotFound)
	}
	return *task, nil
}

// Delete removes task id. Deleting an absent task succeeds.
func (c *Client) Delete(ctx context.Context, id string) error {
	var resp MessageResponse
	if err := c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil, &resp); err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	return nil
}

// Health reports whether the API and its storage backend are reachable.
func (c *Client) Health(ctx context.Context) error {
	var resp HealthResponse
	if err := c.do(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		return fmt.Errorf("health: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var er ErrorResponse
		if json.Unmarshal(data, &er) == nil {
			apiErr.Code = er.Code
			apiErr.Message = er.Message
		}
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %w", ErrNotFound, apiErr)
		}
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
