package tailor

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 4 << 20

// HTTPClient calls a tailoring service over HTTP. The service answers
// {"success": true, "tailoredContent": {...}}.
type HTTPClient struct {
	Endpoint  string
	Client    *http.Client
	UserAgent string
}

// NewHTTPClient creates a client for endpoint, or DefaultEndpoint when empty.
func NewHTTPClient(endpoint string) *HTTPClient {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &HTTPClient{
		Endpoint:  endpoint,
		Client:    &http.Client{},
		UserAgent: "resume-normalizer/1.0",
	}
}

// Tailor posts the request and returns the raw tailoredContent payload.
// Callers bound ctx; every failure is a *ServiceError.
func (c *HTTPClient) Tailor(ctx context.Context, req Request) ([]byte, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, &ServiceError{Kind: KindInvalidRequest, Err: errors.Wrap(err, "failed to encode request")}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &ServiceError{Kind: KindInvalidRequest, Err: errors.Wrap(err, "failed to create HTTP request")}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.httpClient().Do(httpReq)
	if err != nil {
		return nil, Classify(errors.Wrap(err, "HTTP request failed"))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ServiceError{Kind: KindStatus, Status: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, Classify(errors.Wrap(err, "failed to read response body"))
	}

	return extractTailoredContent(data)
}

// Ping reports whether the service is reachable, bounded by PingTimeout.
func (c *HTTPClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, PingTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.Endpoint, nil)
	if err != nil {
		return &ServiceError{Kind: KindInvalidRequest, Err: errors.Wrap(err, "failed to create HTTP request")}
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return Classify(errors.Wrap(err, "HTTP request failed"))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ServiceError{Kind: KindStatus, Status: resp.StatusCode}
	}
	return nil
}

func (c *HTTPClient) httpClient() *http.Client {
	if c.Client != nil {
		return c.Client
	}
	return http.DefaultClient
}

func extractTailoredContent(data []byte) ([]byte, error) {
	if !gjson.ValidBytes(data) {
		return nil, &ServiceError{Kind: KindDecode, Err: errors.New("response is not valid JSON")}
	}

	result := gjson.ParseBytes(data)
	if !result.Get("success").Bool() {
		reason := result.Get("error").String()
		if reason == "" {
			reason = "service reported failure"
		}
		return nil, &ServiceError{Kind: KindRejected, Err: errors.New(reason)}
	}

	content := result.Get("tailoredContent")
	if !content.IsObject() {
		return nil, &ServiceError{Kind: KindDecode, Err: errors.New("response has no tailoredContent object")}
	}
	return []byte(content.Raw), nil
}
