// Package planclient builds plan requests and sends them to the plan service.
package planclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/josephgoksu/charm/internal/config"
	"github.com/josephgoksu/charm/internal/plan"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 4 << 20

// Config holds configuration for the plan client.
type Config struct {
	// BaseURL is the service root (e.g., "http://localhost:8000")
	BaseURL string

	// Timeout bounds each Submit (default: none beyond the caller's context)
	Timeout time.Duration

	// HTTPClient is optional; http.DefaultClient's transport is used when nil
	HTTPClient *http.Client

	// UserAgent is sent on every request (default: "charm")
	UserAgent string
}

// Client sends plan requests. It performs one call per Submit and never retries.
type Client struct {
	endpoint  string
	timeout   time.Duration
	userAgent string
	http      *http.Client
}

// NewClient creates a plan client.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("plan service base URL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = "charm"
	}

	return &Client{
		endpoint:  strings.TrimRight(cfg.BaseURL, "/") + config.GeneratePlanPath,
		timeout:   cfg.Timeout,
		userAgent: ua,
		http:      httpClient,
	}, nil
}

// Endpoint returns the full URL requests are posted to.
func (c *Client) Endpoint() string { return c.endpoint }

// Submit posts payload and decodes the weekly plan.
// Every failure is a *SubmitError.
func (c *Client) Submit(ctx context.Context, payload RequestPayload) (*plan.WeeklyPlan, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &SubmitError{Kind: KindTransport, Err: fmt.Errorf("marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &SubmitError{Kind: KindTransport, Err: fmt.Errorf("create request: %w", err)}
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		se := classifyTransport(ctx, err)
		slog.Debug("plan request failed", "request_id", requestID, "kind", se.Kind, "error", err)
		return nil, se
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, classifyTransport(ctx, fmt.Errorf("read response: %w", err))
	}
	slog.Debug("plan response", "request_id", requestID, "status", resp.StatusCode,
		"bytes", len(respBody), "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, rejection(resp, respBody)
	}

	weekly, err := plan.Decode(respBody)
	if err != nil {
		slog.Warn("plan service returned a malformed plan",
			"request_id", requestID, "status", resp.StatusCode, "error", err)
		return nil, &SubmitError{Kind: KindMalformed, Status: resp.StatusCode, Err: err}
	}
	return weekly, nil
}
