package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// ErrSessionExpired is returned when the backend rejects the session cookie.
// Callers surface it as a login redirect, never as a business error.
var ErrSessionExpired = errors.New("upstream session expired")

// Error is a business error reported by the backend with a JSON message.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.Status, e.Message)
}

// Client wraps the backend REST API. Every request carries the session
// cookie held in the jar, mirroring fetch's credentials:include. One client
// (and jar) exists per console session.
type Client struct {
	base      string
	http      *http.Client
	onExpired func()
}

// New creates a Client for the given API base URL. jar holds the backend
// session cookie and may be shared with a sibling client on another base.
// onExpired fires whenever the backend answers 401/403; the caller is
// responsible for making it idempotent.
func New(base string, jar http.CookieJar, onExpired func()) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{
			Timeout: 30 * time.Second,
			Jar:     jar,
		},
		onExpired: onExpired,
	}
}

// errorBody is the backend's error envelope. Some endpoints use "message",
// the rest "error".
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Do performs a JSON request against the backend. body is marshalled when
// non-nil; out is filled from the response when non-nil. Non-2xx statuses
// return *Error carrying the server message, except 401/403 which fire the
// expiry hook and return ErrSessionExpired.
func (c *Client) Do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	return c.send(req, out)
}

func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out interface{}) error {
	return c.Do(ctx, http.MethodDelete, path, nil, out)
}

// PostMultipart uploads a single file field, used for seller photos.
func (c *Client) PostMultipart(ctx context.Context, path, field, filename string, file io.Reader, out interface{}) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("copy file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, &buf)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out interface{}) error {
	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("network error: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden {
		if c.onExpired != nil {
			c.onExpired()
		}
		return ErrSessionExpired
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var body errorBody
		msg := "API request failed"
		if err := json.NewDecoder(res.Body).Decode(&body); err == nil {
			if body.Message != "" {
				msg = body.Message
			} else if body.Error != "" {
				msg = body.Error
			}
		}
		return &Error{Status: res.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
