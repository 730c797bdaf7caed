package api

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"league-registration/internal/constants"

	"github.com/valyala/fasthttp"
)

// APIError is a non-2xx response from an upstream service.
type APIError struct {
	Service    string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s API error: %d", e.Service, e.StatusCode)
	}
	return fmt.Sprintf("%s API error: %d: %s", e.Service, e.StatusCode, e.Message)
}

// Temporary reports whether retrying the same request could succeed.
func (e *APIError) Temporary() bool {
	return e.StatusCode == fasthttp.StatusTooManyRequests || e.StatusCode >= fasthttp.StatusInternalServerError
}

func newHTTPClient() *fasthttp.Client {
	return &fasthttp.Client{
		MaxConnsPerHost:     100,
		ReadTimeout:         constants.ExternalAPITimeout,
		WriteTimeout:        constants.ExternalAPITimeout,
		MaxIdleConnDuration: 1 * time.Minute,
	}
}

type request struct {
	service     string
	method      string
	url         string
	contentType string
	body        []byte
	headers     map[string]string
	// decodeError extracts a message from an error response body.
	decodeError func(body []byte) string
}

func do(ctx context.Context, client *fasthttp.Client, r request) ([]byte, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(r.url)
	req.Header.SetMethod(r.method)
	if r.contentType != "" {
		req.Header.SetContentType(r.contentType)
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}
	if r.body != nil {
		req.SetBody(r.body)
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(constants.ExternalAPITimeout)
	}
	if err := client.DoDeadline(req, resp, deadline); err != nil {
		return nil, 0, fmt.Errorf("%s request failed: %w", r.service, err)
	}

	status := resp.StatusCode()
	body := append([]byte(nil), resp.Body()...)
	if status < 200 || status >= 300 {
		apiErr := &APIError{Service: r.service, StatusCode: status}
		if r.decodeError != nil {
			apiErr.Message = r.decodeError(body)
		}
		return body, status, apiErr
	}
	return body, status, nil
}

func doRequest[T any](ctx context.Context, client *fasthttp.Client, r request) (*T, error) {
	body, _, err := do(ctx, client, r)
	if err != nil {
		return nil, err
	}

	var result T
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", r.service, err)
	}
	return &result, nil
}
