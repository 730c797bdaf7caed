package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"league-registration/internal/config"

	"github.com/valyala/fasthttp"
)

// ResendClient sends transactional email through the Resend API.
type ResendClient struct {
	baseURL string
	apiKey  string
	from    string
	client  *fasthttp.Client
}

func NewResendClient(cfg *config.Config) *ResendClient {
	return newResendClient(cfg.ResendAPIBaseURL, cfg.ResendAPIKey, cfg.MailFrom, newHTTPClient())
}

func newResendClient(baseURL, apiKey, from string, client *fasthttp.Client) *ResendClient {
	return &ResendClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		from:    from,
		client:  client,
	}
}

type Email struct {
	To      []string
	Subject string
	HTML    string
}

type resendEmail struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type resendResponse struct {
	ID string `json:"id"`
}

// Send returns the provider's message id.
func (c *ResendClient) Send(ctx context.Context, email Email) (string, error) {
	if len(email.To) == 0 {
		return "", fmt.Errorf("email has no recipients")
	}

	body, err := json.Marshal(resendEmail{
		From:    c.from,
		To:      email.To,
		Subject: email.Subject,
		HTML:    email.HTML,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode email: %w", err)
	}

	resp, err := doRequest[resendResponse](ctx, c.client, request{
		service:     "resend",
		method:      fasthttp.MethodPost,
		url:         c.baseURL + "/emails",
		contentType: "application/json",
		body:        body,
		headers:     map[string]string{"Authorization": "Bearer " + c.apiKey},
		decodeError: decodeResendError,
	})
	if err != nil {
		return "", err
	}
	return resp.ID, nil
}

func decodeResendError(body []byte) string {
	var payload struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Message == "" {
		return string(body)
	}
	return payload.Message
}
