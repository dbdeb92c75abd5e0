package taskstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nodebucket/nodebucket/internal/employee"
	"github.com/nodebucket/nodebucket/pkg/response"
)

// API is the subset of the task endpoints the Store needs.
type API interface {
	GetTasks(ctx context.Context, employeeID string) (*employee.TaskLists, error)
	AddTask(ctx context.Context, employeeID, text string) (*employee.Employee, error)
	ReplaceTaskLists(ctx context.Context, employeeID string, todo, done []employee.Task) (*employee.Employee, error)
	DeleteTask(ctx context.Context, employeeID, taskID string) (*employee.Employee, error)
}

// APIError is a non-2xx envelope returned by the server.
type APIError struct {
	StatusCode int
	Message    string
	Code       string
	Data       map[string]interface{}
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api: %d %s (%s)", e.StatusCode, e.Message, e.Code)
	}
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

// Client talks to the employee task endpoints over HTTP.
type Client struct {
	baseURL string
	hc      *http.Client
}

// NewClient returns a Client for the server at baseURL. A nil hc uses a
// client with a 10 second timeout.
func NewClient(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), hc: hc}
}

func (c *Client) tasksPath(employeeID string) string {
	return c.baseURL + "/api/employees/" + url.PathEscape(employeeID) + "/tasks"
}

func (c *Client) GetTasks(ctx context.Context, employeeID string) (*employee.TaskLists, error) {
	var out employee.TaskLists
	if err := c.do(ctx, http.MethodGet, c.tasksPath(employeeID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddTask(ctx context.Context, employeeID, text string) (*employee.Employee, error) {
	var out employee.Employee
	body := map[string]string{"text": text}
	if err := c.do(ctx, http.MethodPost, c.tasksPath(employeeID), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ReplaceTaskLists(ctx context.Context, employeeID string, todo, done []employee.Task) (*employee.Employee, error) {
	if todo == nil {
		todo = []employee.Task{}
	}
	if done == nil {
		done = []employee.Task{}
	}
	var out employee.Employee
	body := map[string][]employee.Task{"todo": todo, "done": done}
	if err := c.do(ctx, http.MethodPut, c.tasksPath(employeeID), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTask(ctx context.Context, employeeID, taskID string) (*employee.Employee, error) {
	var out employee.Employee
	if err := c.do(ctx, http.MethodDelete, c.tasksPath(employeeID)+"/"+url.PathEscape(taskID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, target string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, target, err)
	}
	defer res.Body.Close()

	var env response.Response[json.RawMessage]
	decodeErr := json.NewDecoder(res.Body).Decode(&env)
	if res.StatusCode < 200 || res.StatusCode > 299 {
		// proxies and unmatched routes answer without an envelope
		if decodeErr != nil || env.Message == "" {
			return &APIError{StatusCode: res.StatusCode, Message: http.StatusText(res.StatusCode)}
		}
		apiErr := &APIError{StatusCode: res.StatusCode, Message: env.Message}
		if len(env.Data) > 0 && json.Unmarshal(env.Data, &apiErr.Data) == nil {
			apiErr.Code, _ = apiErr.Data["error"].(string)
		}
		return apiErr
	}
	if decodeErr != nil {
		return fmt.Errorf("decode response (%d): %w", res.StatusCode, decodeErr)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}
