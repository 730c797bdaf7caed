package api

import (
	"context"

	"league-registration/internal/config"

	"github.com/valyala/fasthttp"
)

// AdminNotifier pokes the notification-queue processor after a new team
// registers. The caller's own session token authorizes the call.
type AdminNotifier struct {
	url    string
	client *fasthttp.Client
}

func NewAdminNotifier(cfg *config.Config) *AdminNotifier {
	return newAdminNotifier(cfg.AdminNotifyURL, newHTTPClient())
}

func newAdminNotifier(url string, client *fasthttp.Client) *AdminNotifier {
	return &AdminNotifier{url: url, client: client}
}

// Enabled is false when no endpoint is configured.
func (n *AdminNotifier) Enabled() bool {
	return n.url != ""
}

// Trigger returns the response status. The body is ignored.
func (n *AdminNotifier) Trigger(ctx context.Context, sessionToken string) (int, error) {
	_, status, err := do(ctx, n.client, request{
		service:     "admin-notify",
		method:      fasthttp.MethodPost,
		url:         n.url,
		contentType: "application/json",
		headers:     map[string]string{"Authorization": "Bearer " + sessionToken},
	})
	return status, err
}
