// Package httpx is the blocking HTTP transport for the control plane.
//
// Every call resolves to a (status, body) pair. Transport-level failures
// (connection refused, timeout, DNS) are normalized to status 0 with the
// failure reason as the body, so step logic only ever checks status codes.
package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// maxReadBodySize limits how much of a response body is read.
const maxReadBodySize = 10 * 1024 * 1024 // 10MB

// Request describes a single control-plane call. At most one of JSONBody
// and TextBody may be set; JSONBody is serialized with an
// application/json content type, TextBody is sent as text/plain.
type Request struct {
	Method   string
	URL      string
	JSONBody any
	TextBody string
	Headers  map[string]string
}

// Response is the uniform call result. Status 0 means the request never
// produced an HTTP response; Body then carries the transport error.
type Response struct {
	Status int
	Body   string
}

// OK reports a plain 200 result.
func (r Response) OK() bool { return r.Status == http.StatusOK }

// Client wraps http.Client with the probe's call conventions.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	debug   *DebugLogger
}

// NewClient creates a Client whose every call is bounded by timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		http: &http.Client{Timeout: timeout},
	}
}

// SetRate installs a request rate limit. rps <= 0 removes the limit.
func (c *Client) SetRate(rps int) {
	if rps <= 0 {
		c.limiter = nil
		return
	}
	c.limiter = rate.NewLimiter(rate.Limit(rps), rps)
}

// SetDebug installs a request/response trace logger. A nil logger
// disables tracing.
func (c *Client) SetDebug(d *DebugLogger) {
	c.debug = d
}

// Do executes one call. It never returns an error; see Response.
func (c *Client) Do(ctx context.Context, r Request) Response {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return Response{Status: 0, Body: err.Error()}
		}
	}

	var body io.Reader
	var sent string
	contentType := ""
	switch {
	case r.JSONBody != nil:
		data, err := json.Marshal(r.JSONBody)
		if err != nil {
			return Response{Status: 0, Body: fmt.Sprintf("encoding request body: %v", err)}
		}
		sent = string(data)
		body = bytes.NewReader(data)
		contentType = "application/json"
	case r.TextBody != "":
		sent = r.TextBody
		body = strings.NewReader(r.TextBody)
		contentType = "text/plain"
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, r.URL, body)
	if err != nil {
		return Response{Status: 0, Body: err.Error()}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}

	c.debug.LogRequest(r.Method, r.URL, sent)

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.debug.LogError(r.Method, r.URL, err.Error(), duration)
		return Response{Status: 0, Body: err.Error()}
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxReadBodySize))
	_, _ = io.Copy(io.Discard, resp.Body) // drain errors are ignorable

	c.debug.LogResponse(r.Method, r.URL, resp.StatusCode, respBody, duration)

	return Response{Status: resp.StatusCode, Body: string(respBody)}
}

// Get issues a GET with the given headers.
func (c *Client) Get(ctx context.Context, url string, headers map[string]string) Response {
	return c.Do(ctx, Request{Method: http.MethodGet, URL: url, Headers: headers})
}

// PostJSON issues a POST with a JSON body.
func (c *Client) PostJSON(ctx context.Context, url string, body any, headers map[string]string) Response {
	return c.Do(ctx, Request{Method: http.MethodPost, URL: url, JSONBody: body, Headers: headers})
}

// PostText issues a POST with a text/plain body.
func (c *Client) PostText(ctx context.Context, url, body string, headers map[string]string) Response {
	return c.Do(ctx, Request{Method: http.MethodPost, URL: url, TextBody: body, Headers: headers})
}

// Bearer builds an Authorization header map for a platform API key.
func Bearer(key string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + key}
}

// Token builds an Authorization header map for a Gitea access token.
func Token(token string) map[string]string {
	return map[string]string{"Authorization": "token " + token}
}

// WithAccept returns headers plus an Accept entry.
func WithAccept(headers map[string]string, accept string) map[string]string {
	out := make(map[string]string, len(headers)+1)
	for k, v := range headers {
		out[k] = v
	}
	out["Accept"] = accept
	return out
}
