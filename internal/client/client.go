// Package client talks to the netlist record store and the auth service over
// HTTP. Requests are traced through an otelhttp transport.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// ErrMissingID is returned when a create response carries no record id.
var ErrMissingID = errors.New("create response has no _id")

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// APIError is a non-2xx response. Msg holds the server's top-level "msg"
// field; FieldErrors holds the messages of an "errors" list.
type APIError struct {
	StatusCode  int
	Msg         string
	FieldErrors []string
}

func (e *APIError) Error() string {
	if msg := e.firstMessage(); msg != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, msg)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// firstMessage is Msg, or the first field error when Msg is empty.
func (e *APIError) firstMessage() string {
	if e.Msg != "" {
		return e.Msg
	}
	if len(e.FieldErrors) > 0 {
		return e.FieldErrors[0]
	}
	return ""
}

// Record is a created or fetched record. Body is the full response document.
type Record struct {
	ID   string
	Body json.RawMessage
}

// Client is a JSON client for the record store. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// New returns a Client for the API rooted at baseURL. A zero timeout means
// requests are bounded only by their context.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid api url %q: %w", baseURL, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		http:    newHTTPClient(timeout),
		logger:  logger,
	}, nil
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

// CloseIdleConnections closes keep-alive connections held by the client.
func (c *Client) CloseIdleConnections() {
	c.http.CloseIdleConnections()
}

// Create posts payload to /{resource} and returns the created record.
func (c *Client) Create(ctx context.Context, resource string, payload any) (*Record, error) {
	endpoint, err := url.JoinPath(c.baseURL, resource)
	if err != nil {
		return nil, fmt.Errorf("build url: %w", err)
	}

	start := time.Now()
	body, err := doJSON(ctx, c.http, http.MethodPost, endpoint, payload)
	if err != nil {
		c.logger.Warn("create failed",
			zap.String("resource", resource),
			zap.Duration("latency", time.Since(start)),
			zap.Error(err),
		)
		return nil, err
	}

	var created struct {
		ID string `json:"_id"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("decode create response: %w", err)
	}
	if created.ID == "" {
		return nil, ErrMissingID
	}

	c.logger.Info("record created",
		zap.String("resource", resource),
		zap.String("id", created.ID),
		zap.Duration("latency", time.Since(start)),
	)
	return &Record{ID: created.ID, Body: body}, nil
}

// Get fetches /{resource}/{id}.
func (c *Client) Get(ctx context.Context, resource, id string) (*Record, error) {
	endpoint, err := url.JoinPath(c.baseURL, resource, id)
	if err != nil {
		return nil, fmt.Errorf("build url: %w", err)
	}
	body, err := doJSON(ctx, c.http, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	return &Record{ID: id, Body: body}, nil
}

// errorBody covers both error shapes the services return: a top-level msg and
// a list of field errors.
type errorBody struct {
	Msg    string `json:"msg"`
	Errors []struct {
		Msg string `json:"msg"`
	} `json:"errors"`
}

func (b errorBody) apply(e *APIError) {
	e.Msg = b.Msg
	for _, fe := range b.Errors {
		if fe.Msg != "" {
			e.FieldErrors = append(e.FieldErrors, fe.Msg)
		}
	}
}

// doJSON sends payload (when non-nil) as JSON and returns the response body of
// a 2xx response. Any other status becomes an *APIError.
func doJSON(ctx context.Context, hc *http.Client, method, endpoint string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var eb errorBody
		if err := json.NewDecoder(io.LimitReader(resp.Body, maxErrorBody)).Decode(&eb); err == nil {
			eb.apply(apiErr)
		}
		return nil, apiErr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}
